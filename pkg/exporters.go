package pkg

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hansbonini/iso2raw/pkg/common"
	"gopkg.in/yaml.v3"
)

// RawFileExporter implements the RawExporter interface
type RawFileExporter struct{}

// NewRawExporter creates a new exporter instance
func NewRawExporter() *RawFileExporter {
	return &RawFileExporter{}
}

// ExportCueSheet writes a minimal single-track cue sheet describing the
// converted image. The FILE entry references the image by base name so the
// cue sheet stays valid when both files move together.
func (e *RawFileExporter) ExportCueSheet(binPath, cuePath string) error {
	file, err := os.Create(cuePath)
	if err != nil {
		return common.FormatError(common.ErrFailedToExportCue, err)
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, "FILE \"%s\" BINARY\n  TRACK 01 MODE1/2352\n    INDEX 01 00:00:00\n",
		filepath.Base(binPath))
	if err != nil {
		return common.FormatError(common.ErrFailedToExportCue, err)
	}

	common.LogInfo(common.InfoCueSheetWritten, cuePath)
	return nil
}

// ExportManifest hashes the produced image, fills in the manifest checksum
// and writes the manifest as YAML.
func (e *RawFileExporter) ExportManifest(manifest *ConversionManifest, outputFile string) error {
	hash, err := e.hashFile(manifest.Output)
	if err != nil {
		return common.FormatError(common.ErrFailedToHashOutput, err)
	}
	manifest.SHA256 = hash
	common.LogDebug(common.DebugOutputHash, hash)

	file, err := os.Create(outputFile)
	if err != nil {
		return common.FormatError(common.ErrFailedToExportManifest, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()

	if err := encoder.Encode(manifest); err != nil {
		return common.FormatError(common.ErrFailedToExportManifest, err)
	}

	common.LogInfo(common.InfoManifestWritten, outputFile)
	return nil
}

// hashFile computes the SHA-256 of a file's contents.
func (e *RawFileExporter) hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
