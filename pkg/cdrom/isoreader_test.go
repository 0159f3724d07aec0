// Package cdrom provides tests for the ISO reader and RAW writer
package cdrom

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeTempISO creates a temporary ISO image with the given number of
// sectors, each filled with a value derived from its LBA.
func writeTempISO(t *testing.T, sectors int) string {
	t.Helper()

	data := make([]byte, sectors*CD_DATA_SIZE)
	for i := range data {
		data[i] = byte(i / CD_DATA_SIZE)
	}

	path := filepath.Join(t.TempDir(), "test.iso")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp ISO: %v", err)
	}
	return path
}

func TestNewISOReader(t *testing.T) {
	path := writeTempISO(t, 4)

	reader, err := NewISOReader(path)
	if err != nil {
		t.Fatalf("NewISOReader() failed: %v", err)
	}
	defer reader.Close()

	if reader.TotalSectors() != 4 {
		t.Errorf("TotalSectors() = %d, want 4", reader.TotalSectors())
	}
}

func TestNewISOReader_InvalidSize(t *testing.T) {
	testCases := []struct {
		name string
		size int
	}{
		{"not sector aligned", 1000},
		{"one byte short", CD_DATA_SIZE - 1},
		{"one byte over", CD_DATA_SIZE + 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.iso")
			if err := os.WriteFile(path, make([]byte, tc.size), 0644); err != nil {
				t.Fatalf("failed to write temp file: %v", err)
			}

			if _, err := NewISOReader(path); err == nil {
				t.Errorf("NewISOReader() should reject a %d byte file", tc.size)
			}
		})
	}
}

func TestNewISOReader_MissingFile(t *testing.T) {
	if _, err := NewISOReader(filepath.Join(t.TempDir(), "missing.iso")); err == nil {
		t.Error("NewISOReader() should fail for a missing file")
	}
}

func TestISOReader_ReadSector(t *testing.T) {
	path := writeTempISO(t, 3)

	reader, err := NewISOReader(path)
	if err != nil {
		t.Fatalf("NewISOReader() failed: %v", err)
	}
	defer reader.Close()

	for lba := int64(0); lba < 3; lba++ {
		data, err := reader.ReadSector(lba)
		if err != nil {
			t.Fatalf("ReadSector(%d) failed: %v", lba, err)
		}
		if len(data) != CD_DATA_SIZE {
			t.Fatalf("ReadSector(%d) returned %d bytes, want %d", lba, len(data), CD_DATA_SIZE)
		}
		if !bytes.Equal(data, bytes.Repeat([]byte{byte(lba)}, CD_DATA_SIZE)) {
			t.Errorf("ReadSector(%d) returned wrong content", lba)
		}
	}
}

func TestISOReader_ReadSectorOutOfBounds(t *testing.T) {
	path := writeTempISO(t, 2)

	reader, err := NewISOReader(path)
	if err != nil {
		t.Fatalf("NewISOReader() failed: %v", err)
	}
	defer reader.Close()

	for _, lba := range []int64{-1, 2, 100} {
		if _, err := reader.ReadSector(lba); err == nil {
			t.Errorf("ReadSector(%d) should fail out of bounds", lba)
		}
	}
}
