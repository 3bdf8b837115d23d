package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var layersCmd = &cobra.Command{
	Use:   "layers [file|url]",
	Short: "List the layers of a DXF drawing",
	Args:  cobra.ExactArgs(1),
	Run:   runLayers,
}

func init() {
	rootCmd.AddCommand(layersCmd)
}

func runLayers(cmd *cobra.Command, args []string) {
	c := loadDrawing(args[0])
	layers := c.Layers()

	if len(layers) == 0 {
		fmt.Println("No layers found")
		return
	}

	fmt.Printf("%-24s %-8s %s\n", "Layer", "Color", "Name")
	for _, l := range layers {
		fmt.Printf("%-24s %-8s %s\n", l.Label, l.Color, l.Name)
	}
}
