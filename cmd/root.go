// Package cmd provides command-line interface functionality for iso2raw.
// iso2raw converts ISO images into RAW (MODE1/2352) CD-ROM images with
// bit-exact EDC/ECC redundancy.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the iso2raw application.
var rootCmd = &cobra.Command{
	Use:   "iso2raw",
	Short: "Convert ISO images to RAW (MODE1/2352) format",
	Long: `iso2raw - A utility for converting ISO images to RAW (MODE1/2352)
CD-ROM images.

Each 2048 byte data sector of the input is wrapped into a full 2352 byte
Mode 1 sector: sync pattern, BCD timecode header, EDC checksum and the
P/Q Reed-Solomon parity required by the Yellow Book format. The produced
redundancy bytes are bit-exact with cdrdao/EDCRE output.

Examples:
  iso2raw convert game.iso
  iso2raw convert game.iso game.bin
  iso2raw convert -j 4 --cue game.iso
  iso2raw convert -q --manifest game.yaml game.iso game.bin

Use 'iso2raw [command] --help' for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
