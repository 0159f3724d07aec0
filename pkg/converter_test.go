// Package pkg provides tests for the ISO to RAW batch conversion
package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hansbonini/iso2raw/pkg/cdrom"
)

// writeTempISO creates a temporary ISO image filled with the given byte.
func writeTempISO(t *testing.T, sectors int, fill byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.iso")
	data := bytes.Repeat([]byte{fill}, sectors*cdrom.CD_DATA_SIZE)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp ISO: %v", err)
	}
	return path
}

func TestISOProcessor_Convert(t *testing.T) {
	inputFile := writeTempISO(t, 10, 0xAB)
	outputFile := filepath.Join(t.TempDir(), "test.bin")

	processor := NewISOProcessor()
	manifest, err := processor.Convert(inputFile, outputFile, ConvertOptions{Quiet: true})
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}

	if manifest.TotalSectors != 10 {
		t.Errorf("manifest.TotalSectors = %d, want 10", manifest.TotalSectors)
	}
	if manifest.Mode != "MODE1/2352" {
		t.Errorf("manifest.Mode = %q, want MODE1/2352", manifest.Mode)
	}

	raw, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(raw) != 10*cdrom.CD_SECTOR_SIZE {
		t.Fatalf("output size = %d, want %d", len(raw), 10*cdrom.CD_SECTOR_SIZE)
	}

	// Sector 0: timecode 00:02:00, mode 1, data verbatim
	if !bytes.Equal(raw[12:16], []byte{0x00, 0x02, 0x00, 0x01}) {
		t.Errorf("sector 0 header = % 02X, want 00 02 00 01", raw[12:16])
	}
	if !bytes.Equal(raw[16:2064], bytes.Repeat([]byte{0xAB}, cdrom.CD_DATA_SIZE)) {
		t.Error("sector 0 user data should match input verbatim")
	}

	// Sector 9: frame BCD reflects LBA 9 plus the 150 frame pregap
	header9 := raw[9*cdrom.CD_SECTOR_SIZE+12 : 9*cdrom.CD_SECTOR_SIZE+16]
	if !bytes.Equal(header9, []byte{0x00, 0x02, 0x09, 0x01}) {
		t.Errorf("sector 9 header = % 02X, want 00 02 09 01", header9)
	}
}

func TestISOProcessor_ConvertRejectsUnalignedInput(t *testing.T) {
	inputFile := filepath.Join(t.TempDir(), "bad.iso")
	if err := os.WriteFile(inputFile, make([]byte, 3000), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	outputFile := filepath.Join(t.TempDir(), "bad.bin")

	processor := NewISOProcessor()
	if _, err := processor.Convert(inputFile, outputFile, ConvertOptions{Quiet: true}); err == nil {
		t.Error("Convert() should reject input that is not a multiple of 2048 bytes")
	}

	// No partial output may be left behind from before validation
	if _, err := os.Stat(outputFile); err == nil {
		content, _ := os.ReadFile(outputFile)
		if len(content) != 0 {
			t.Error("Convert() should not produce sector output for rejected input")
		}
	}
}

func TestISOProcessor_ConvertWorkerCountInvariant(t *testing.T) {
	inputFile := writeTempISO(t, 150, 0x3C)

	processor := NewISOProcessor()
	var reference []byte

	for _, workers := range []int{1, 2, 8} {
		outputFile := filepath.Join(t.TempDir(), "out.bin")
		if _, err := processor.Convert(inputFile, outputFile, ConvertOptions{Workers: workers, Quiet: true}); err != nil {
			t.Fatalf("Convert() with %d workers failed: %v", workers, err)
		}

		raw, err := os.ReadFile(outputFile)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		if reference == nil {
			reference = raw
			continue
		}
		if !bytes.Equal(raw, reference) {
			t.Errorf("output with %d workers differs from single-threaded output", workers)
		}
	}
}

func TestISOProcessor_ConvertEmptyInput(t *testing.T) {
	inputFile := writeTempISO(t, 0, 0x00)
	outputFile := filepath.Join(t.TempDir(), "empty.bin")

	processor := NewISOProcessor()
	manifest, err := processor.Convert(inputFile, outputFile, ConvertOptions{Quiet: true})
	if err != nil {
		t.Fatalf("Convert() failed on empty input: %v", err)
	}
	if manifest.TotalSectors != 0 {
		t.Errorf("manifest.TotalSectors = %d, want 0", manifest.TotalSectors)
	}

	raw, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("output size = %d, want 0", len(raw))
	}
}
