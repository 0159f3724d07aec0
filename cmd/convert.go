// Package cmd provides command-line interface for ISO image conversion.
// This file contains the convert command that turns an ISO image into a
// RAW (MODE1/2352) image.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hansbonini/iso2raw/pkg"
	"github.com/hansbonini/iso2raw/pkg/common"
	"github.com/spf13/cobra"
)

// convertCmd converts an ISO image into a RAW (MODE1/2352) image.
var convertCmd = &cobra.Command{
	Use:   "convert [input.iso] [output.bin]",
	Short: "Convert an ISO image to a RAW (MODE1/2352) image",
	Long: `Convert an ISO image to a RAW (MODE1/2352) image.

This command reads an ISO image (2048 bytes per sector), prepends the sync
pattern and BCD timecode header to every sector and computes the EDC
checksum and the P/Q error correction parity, producing a 2352 bytes per
sector .bin image suitable for burning or emulation.

Arguments:
  input.iso     Input ISO image
  output.bin    Output RAW image (defaults to the input name with .bin)

Flags:
  -j, --jobs        Number of worker threads (default: CPU cores, capped at 8)
  -q, --quiet       Disable progress output
  -v, --verbose     Enable verbose output (show debug messages)
      --cue         Write a cue sheet next to the output image
      --manifest    Write a YAML conversion manifest to the given path

Examples:
  iso2raw convert game.iso
  iso2raw convert game.iso game.bin
  iso2raw convert -j 4 --cue game.iso
  iso2raw convert -q --manifest game.yaml game.iso game.bin`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		// Default output path: input with a .bin extension
		outputFile := replaceExtension(inputFile, ".bin")
		if len(args) == 2 {
			outputFile = args[1]
		}

		// Enable verbose mode if requested
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return fmt.Errorf("error getting verbose flag: %w", err)
		}
		common.SetVerboseMode(verbose)

		quiet, err := cmd.Flags().GetBool("quiet")
		if err != nil {
			return fmt.Errorf("error getting quiet flag: %w", err)
		}

		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return fmt.Errorf("error getting jobs flag: %w", err)
		}

		cue, err := cmd.Flags().GetBool("cue")
		if err != nil {
			return fmt.Errorf("error getting cue flag: %w", err)
		}

		manifestFile, err := cmd.Flags().GetString("manifest")
		if err != nil {
			return fmt.Errorf("error getting manifest flag: %w", err)
		}

		fileInfo, err := os.Stat(inputFile)
		if err != nil {
			return fmt.Errorf("%s: %s", common.ErrInputNotFound, inputFile)
		}
		if inputFile == outputFile {
			return fmt.Errorf("%s", common.ErrInputOutputSame)
		}

		fmt.Printf(common.InfoConversionStarted+"\n", inputFile, outputFile)
		if size, err := common.SafeInt64ToUint32(fileInfo.Size()); err == nil {
			fmt.Printf(common.InfoTotalSectors+"\n",
				common.GetSizeInSectors(size), float64(fileInfo.Size())/(1024.0*1024.0))
		}

		// Create ISO processor for handling the conversion
		processor := pkg.NewISOProcessor()

		start := time.Now()

		manifest, err := processor.Convert(inputFile, outputFile, pkg.ConvertOptions{
			Workers: jobs,
			Quiet:   quiet,
		})
		if err != nil {
			return fmt.Errorf("failed to convert ISO image: %w", err)
		}

		elapsed := time.Since(start)
		mbPerSec := float64(manifest.OutputSize) / (1024.0 * 1024.0) / elapsed.Seconds()

		fmt.Printf(common.InfoConversionComplete+"\n", elapsed.Round(time.Millisecond), mbPerSec)
		fmt.Printf("Output file: %s\n", outputFile)

		// Write the optional companion artifacts
		exporter := pkg.NewRawExporter()

		if cue {
			cuePath := replaceExtension(outputFile, ".cue")
			if err := exporter.ExportCueSheet(outputFile, cuePath); err != nil {
				return fmt.Errorf("failed to write cue sheet: %w", err)
			}
			fmt.Printf("Cue sheet: %s\n", cuePath)
		}

		if manifestFile != "" {
			if err := exporter.ExportManifest(manifest, manifestFile); err != nil {
				return fmt.Errorf("failed to write manifest: %w", err)
			}
			fmt.Printf("Manifest: %s\n", manifestFile)
		}

		return nil
	},
}

// replaceExtension swaps the extension of path for ext (which includes the
// leading dot). Paths without an extension get ext appended.
func replaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// init initializes the convert command with its flags.
func init() {
	// Add the convert command to the root command
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().IntP("jobs", "j", 0, "Number of worker threads (0 = auto)")
	convertCmd.Flags().BoolP("quiet", "q", false, "Disable progress output")
	convertCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output (show debug messages)")
	convertCmd.Flags().Bool("cue", false, "Write a cue sheet next to the output image")
	convertCmd.Flags().String("manifest", "", "Write a YAML conversion manifest to the given path")
}
