// Command recolor scans a directory for JPEG files and rewrites every
// near-black pixel to pure blue, saving the result as a modified_ copy.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"finnet/internal/imaging"
	"finnet/pkg/logging"
)

func main() {
	logging.Setup()

	var (
		dir       string
		threshold int
	)

	root := &cobra.Command{
		Use:          "recolor",
		Short:        "Rewrite near-black pixels in JPEG files to blue",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if threshold < 0 || threshold > 255 {
				return fmt.Errorf("threshold must be between 0 and 255, got %d", threshold)
			}
			return run(dir, uint8(threshold))
		},
	}
	root.Flags().StringVar(&dir, "dir", ".", "directory to scan for JPEG files")
	root.Flags().IntVar(&threshold, "threshold", imaging.DefaultThreshold, "channel value at or below which a pixel counts as black")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(dir string, threshold uint8) error {
	files, err := imaging.ScanDir(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No JPG files found in the directory!")
		return nil
	}

	fmt.Printf("Found %d JPG files\n", len(files))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"File", "Output", "Status"})

	processed := 0
	for _, file := range files {
		output, err := imaging.ProcessFile(file, threshold)
		if err != nil {
			// One bad file does not abort the batch.
			slog.Error("Processing failed", "file", file, "error", err)
			t.AppendRow(table.Row{filepath.Base(file), "", "error: " + err.Error()})
			continue
		}
		processed++
		t.AppendRow(table.Row{filepath.Base(file), filepath.Base(output), "ok"})
	}

	t.Render()
	fmt.Printf("Processed %d of %d files\n", processed, len(files))
	return nil
}
