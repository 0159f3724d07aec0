package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Error messages
const (
	ErrFailedToOpenISO        = "failed to open ISO image"
	ErrFailedToCreateOutput   = "failed to create output file"
	ErrFailedToReadSector     = "failed to read ISO sector"
	ErrFailedToEncodeSector   = "failed to encode sector"
	ErrFailedToWriteSector    = "failed to write raw sector"
	ErrFailedToCloseOutput    = "failed to finalize output file"
	ErrFailedToExportCue      = "failed to export cue sheet"
	ErrFailedToExportManifest = "failed to export conversion manifest"
	ErrFailedToHashOutput     = "failed to hash output image"
	ErrInputOutputSame        = "input and output files cannot be the same"
	ErrInputNotFound          = "input file does not exist"
)

// Info messages
const (
	InfoConversionStarted  = "Converting %s to %s"
	InfoTotalSectors       = "Total sectors: %d (%.2f MB)"
	InfoUsingWorkers       = "Using %d worker threads"
	InfoConversionComplete = "Conversion completed in %s (%.2f MB/s)"
	InfoCueSheetWritten    = "Cue sheet written to: %s"
	InfoManifestWritten    = "Conversion manifest written to: %s"
)

// Debug messages
const (
	DebugSectorEncoded = "Sector %d: MSF %s"
	DebugBatchEncoded  = "Batch %d-%d encoded (%d sectors)"
	DebugOutputHash    = "Output image SHA-256: %s"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}
