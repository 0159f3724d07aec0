// Package cdrom provides CD-ROM Mode 1 sector structures and the EDC/ECC
// encoding engine. This file contains the ISO image reader used as the
// input side of the conversion.
package cdrom

import (
	"fmt"
	"os"
)

// ISOReader provides random access to the 2048 byte data sectors of an ISO
// image file. ReadSector is safe for concurrent use.
type ISOReader struct {
	file         *os.File
	totalSectors int64
}

// NewISOReader opens an ISO image and validates its size. Fails if the file
// size is not an exact multiple of the 2048 byte sector size.
func NewISOReader(filename string) (*ISOReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open ISO file: %w", err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	fileSize := fileInfo.Size()
	if fileSize%CD_DATA_SIZE != 0 {
		file.Close()
		return nil, fmt.Errorf("invalid ISO file size: %d is not a multiple of %d", fileSize, CD_DATA_SIZE)
	}

	return &ISOReader{
		file:         file,
		totalSectors: fileSize / CD_DATA_SIZE,
	}, nil
}

// TotalSectors returns the number of 2048 byte sectors in the image.
func (r *ISOReader) TotalSectors() int64 {
	return r.totalSectors
}

// ReadSector reads the data sector at the given LBA into a freshly
// allocated buffer.
func (r *ISOReader) ReadSector(lba int64) ([]byte, error) {
	if lba < 0 || lba >= r.totalSectors {
		return nil, fmt.Errorf("LBA %d out of bounds (total: %d)", lba, r.totalSectors)
	}

	buffer := make([]byte, CD_DATA_SIZE)
	if _, err := r.file.ReadAt(buffer, lba*CD_DATA_SIZE); err != nil {
		return nil, fmt.Errorf("failed to read sector %d: %w", lba, err)
	}

	return buffer, nil
}

func (r *ISOReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
