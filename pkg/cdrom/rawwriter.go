// Package cdrom provides CD-ROM Mode 1 sector structures and the EDC/ECC
// encoding engine. This file contains the buffered writer used as the
// output side of the conversion.
package cdrom

import (
	"bufio"
	"fmt"
	"os"
)

// RawWriter writes 2352 byte raw sectors sequentially to an output file
// through a 1 MiB buffer.
type RawWriter struct {
	file           *os.File
	writer         *bufio.Writer
	sectorsWritten int64
}

// NewRawWriter creates (or truncates) the output image file.
func NewRawWriter(filename string) (*RawWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &RawWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, 1024*1024),
	}, nil
}

// WriteSector appends one raw sector to the output. Fails if data is not
// exactly 2352 bytes.
func (w *RawWriter) WriteSector(data []byte) error {
	if len(data) != CD_SECTOR_SIZE {
		return fmt.Errorf("invalid RAW sector size: expected %d, got %d", CD_SECTOR_SIZE, len(data))
	}

	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write sector %d: %w", w.sectorsWritten, err)
	}
	w.sectorsWritten++

	return nil
}

// SectorsWritten returns the number of sectors written so far.
func (w *RawWriter) SectorsWritten() int64 {
	return w.sectorsWritten
}

// Close flushes the buffer and closes the output file.
func (w *RawWriter) Close() error {
	if w.writer != nil {
		if err := w.writer.Flush(); err != nil {
			w.file.Close()
			return fmt.Errorf("failed to flush output file: %w", err)
		}
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
