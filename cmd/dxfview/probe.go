package main

import (
	"fmt"
	"io"
	"os"

	"github.com/changwulf/dxf-viewer/internal/probe"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe [file|url] [script|-]",
	Short: "Replay a gesture script against a drawing",
	Long: `Replay tool, click, drag, view and layer commands and print every
measurement. Coordinates in scripts are model coordinates.

  view center 0 0 scale 2 size 800 600
  tool hole
  click 20 20
  tool region
  drag -1 -1 to 11 11
  layer "WALLS" off`,
	Args: cobra.ExactArgs(2),
	Run:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) {
	c := loadDrawing(args[0])

	var reader io.Reader = os.Stdin
	name := "stdin"
	if args[1] != "-" {
		f, err := os.Open(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader, name = f, args[1]
	}

	script, err := probe.Parse(name, reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing script: %v\n", err)
		os.Exit(1)
	}

	results, err := probe.NewRunner(c, os.Stdout).Run(script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running script: %v\n", err)
		os.Exit(1)
	}

	selected := 0
	for _, r := range results {
		if r.Info != nil {
			selected++
		}
	}
	fmt.Printf("\n%d of %d gestures selected something\n", selected, len(results))
}
