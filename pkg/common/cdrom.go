// Package common provides common utilities for CD-ROM operations.
// This file contains functions for MSF conversion and CD-ROM related utilities.
package common

import "fmt"

// LBAToMSF converts LBA (Logical Block Address) to MSF (Minutes:Seconds:Frames) format
// LBA to MSF conversion: LBA + 150 (pregap)
func LBAToMSF(lba uint32) string {
	totalFrames := lba + 150

	minutes := totalFrames / (60 * 75)
	seconds := (totalFrames % (60 * 75)) / 75
	frames := totalFrames % 75

	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}

// GetSizeInSectors calculates the number of sectors needed for a given size in bytes
func GetSizeInSectors(sizeBytes uint32) uint32 {
	const sectorSize = 2048
	return (sizeBytes + sectorSize - 1) / sectorSize
}
