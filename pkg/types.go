package pkg

// SectorJob pairs a logical block address with its 2048 bytes of user data.
type SectorJob struct {
	LBA  uint32
	Data []byte
}

// ConvertOptions carries the user-facing knobs of a conversion run.
type ConvertOptions struct {
	Workers int  // worker goroutines, 0 selects the default
	Quiet   bool // suppress progress output
}

// ConversionManifest summarizes a completed conversion
type ConversionManifest struct {
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	Mode         string `yaml:"mode"`
	TotalSectors int64  `yaml:"total_sectors"`
	InputSize    int64  `yaml:"input_size"`
	OutputSize   int64  `yaml:"output_size"`
	SHA256       string `yaml:"sha256,omitempty"`
}

// ISOConverter interface defines methods for converting ISO images
type ISOConverter interface {
	Convert(inputFile, outputFile string, options ConvertOptions) (*ConversionManifest, error)
}

// RawExporter interface defines methods for exporting artifacts that
// describe a converted image
type RawExporter interface {
	ExportCueSheet(binPath, cuePath string) error
	ExportManifest(manifest *ConversionManifest, outputFile string) error
}
