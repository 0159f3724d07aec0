// Package pkg provides tests for the cue sheet and manifest exporters
package pkg

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRawFileExporter_ExportCueSheet(t *testing.T) {
	dir := t.TempDir()
	binPath := filepath.Join(dir, "game.bin")
	cuePath := filepath.Join(dir, "game.cue")

	exporter := NewRawExporter()
	if err := exporter.ExportCueSheet(binPath, cuePath); err != nil {
		t.Fatalf("ExportCueSheet() failed: %v", err)
	}

	content, err := os.ReadFile(cuePath)
	if err != nil {
		t.Fatalf("failed to read cue sheet: %v", err)
	}

	expected := "FILE \"game.bin\" BINARY\n  TRACK 01 MODE1/2352\n    INDEX 01 00:00:00\n"
	if string(content) != expected {
		t.Errorf("cue sheet = %q, want %q", string(content), expected)
	}
}

func TestRawFileExporter_ExportManifest(t *testing.T) {
	dir := t.TempDir()

	// Fake output image with known content
	binPath := filepath.Join(dir, "game.bin")
	imageData := []byte("not a real image, but hashable")
	if err := os.WriteFile(binPath, imageData, 0644); err != nil {
		t.Fatalf("failed to write fake image: %v", err)
	}

	manifest := &ConversionManifest{
		Input:        "game.iso",
		Output:       binPath,
		Mode:         "MODE1/2352",
		TotalSectors: 10,
		InputSize:    20480,
		OutputSize:   23520,
	}

	manifestPath := filepath.Join(dir, "game.yaml")
	exporter := NewRawExporter()
	if err := exporter.ExportManifest(manifest, manifestPath); err != nil {
		t.Fatalf("ExportManifest() failed: %v", err)
	}

	content, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}

	var decoded ConversionManifest
	if err := yaml.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("manifest is not valid YAML: %v", err)
	}

	if decoded.TotalSectors != 10 || decoded.Mode != "MODE1/2352" {
		t.Errorf("decoded manifest = %+v, want original values", decoded)
	}

	sum := sha256.Sum256(imageData)
	if decoded.SHA256 != hex.EncodeToString(sum[:]) {
		t.Errorf("manifest SHA256 = %s, want %s", decoded.SHA256, hex.EncodeToString(sum[:]))
	}
}

func TestRawFileExporter_ExportManifestMissingImage(t *testing.T) {
	dir := t.TempDir()
	manifest := &ConversionManifest{Output: filepath.Join(dir, "missing.bin")}

	exporter := NewRawExporter()
	if err := exporter.ExportManifest(manifest, filepath.Join(dir, "out.yaml")); err == nil {
		t.Error("ExportManifest() should fail when the output image does not exist")
	}
}
