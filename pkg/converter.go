package pkg

import (
	"fmt"

	"github.com/hansbonini/iso2raw/pkg/cdrom"
	"github.com/hansbonini/iso2raw/pkg/common"
)

// ISOProcessor handles ISO to RAW (MODE1/2352) conversion
type ISOProcessor struct{}

// NewISOProcessor creates a new ISO processor instance
func NewISOProcessor() *ISOProcessor {
	return &ISOProcessor{}
}

// Convert reads every 2048 byte sector of the input image, encodes it into
// a raw Mode 1 sector and writes the result sequentially to the output
// file. Sectors are encoded in parallel batches but always written in
// strict ascending LBA order. Any sector failure aborts the whole run; no
// partial sector is ever emitted.
func (p *ISOProcessor) Convert(inputFile, outputFile string, options ConvertOptions) (*ConversionManifest, error) {
	reader, err := cdrom.NewISOReader(inputFile)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenISO, err)
	}
	defer reader.Close()

	writer, err := cdrom.NewRawWriter(outputFile)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToCreateOutput, err)
	}

	encoder := NewParallelEncoder(options.Workers)
	totalSectors := reader.TotalSectors()

	if !options.Quiet {
		fmt.Printf(common.InfoUsingWorkers+"\n", encoder.Workers())
	}

	if err := p.convertSectors(reader, writer, encoder, options.Quiet); err != nil {
		writer.Close()
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, common.FormatError(common.ErrFailedToCloseOutput, err)
	}

	return &ConversionManifest{
		Input:        inputFile,
		Output:       outputFile,
		Mode:         "MODE1/2352",
		TotalSectors: totalSectors,
		InputSize:    totalSectors * cdrom.CD_DATA_SIZE,
		OutputSize:   totalSectors * cdrom.CD_SECTOR_SIZE,
	}, nil
}

// convertSectors runs the batch loop: read a batch, encode it in parallel,
// write the results in order.
func (p *ISOProcessor) convertSectors(reader *cdrom.ISOReader, writer *cdrom.RawWriter, encoder *ParallelEncoder, quiet bool) error {
	totalSectors := reader.TotalSectors()
	batchSize := int64(encoder.BatchSize())

	for batchStart := int64(0); batchStart < totalSectors; batchStart += batchSize {
		batchEnd := batchStart + batchSize
		if batchEnd > totalSectors {
			batchEnd = totalSectors
		}

		jobs := make([]SectorJob, 0, batchEnd-batchStart)
		for lba := batchStart; lba < batchEnd; lba++ {
			data, err := reader.ReadSector(lba)
			if err != nil {
				return common.FormatError(common.ErrFailedToReadSector, err)
			}

			lba32, err := common.SafeInt64ToUint32(lba)
			if err != nil {
				return common.FormatError(common.ErrFailedToEncodeSector, err)
			}

			if common.VerboseMode {
				common.LogDebug(common.DebugSectorEncoded, lba32, common.LBAToMSF(lba32))
			}

			jobs = append(jobs, SectorJob{LBA: lba32, Data: data})
		}

		results, err := encoder.EncodeBatch(jobs)
		if err != nil {
			return common.FormatError(common.ErrFailedToEncodeSector, err)
		}

		for _, raw := range results {
			if err := writer.WriteSector(raw); err != nil {
				return common.FormatError(common.ErrFailedToWriteSector, err)
			}
		}

		common.LogDebug(common.DebugBatchEncoded, batchStart, batchEnd-1, batchEnd-batchStart)

		if !quiet {
			fmt.Printf("\rConverting... %d/%d sectors (%.1f%%)",
				writer.SectorsWritten(), totalSectors,
				float64(writer.SectorsWritten())*100.0/float64(totalSectors))
		}
	}

	if !quiet && totalSectors > 0 {
		fmt.Println()
	}

	return nil
}
