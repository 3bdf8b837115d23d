package main

import (
	"fmt"
	"os"

	"github.com/changwulf/dxf-viewer/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dxfview",
	Short: "Inspect and measure 2D DXF drawings",
	Long: `dxfview reads ASCII DXF drawings from files or http(s) URLs and measures
lines, holes and regions the same way the interactive viewer does.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
