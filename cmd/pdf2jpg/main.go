// Command pdf2jpg scans a directory for PDF files and renders each page
// to a JPEG image at 300 DPI using poppler's pdftoppm.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"finnet/internal/rasterize"
	"finnet/pkg/logging"
)

func main() {
	logging.Setup()

	var (
		dir    string
		dpi    int
		binary string
	)

	root := &cobra.Command{
		Use:          "pdf2jpg",
		Short:        "Render every page of the directory's PDF files to JPEG",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, dir, binary, dpi)
		},
	}
	root.Flags().StringVar(&dir, "dir", ".", "directory to scan for PDF files")
	root.Flags().IntVar(&dpi, "dpi", rasterize.DefaultDPI, "render resolution")
	root.Flags().StringVar(&binary, "pdftoppm", "pdftoppm", "path to the pdftoppm binary")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, dir, binary string, dpi int) error {
	// Missing poppler is fatal before any work starts; the error carries
	// installation instructions.
	client, err := rasterize.New(binary, dpi)
	if err != nil {
		return err
	}

	files, err := rasterize.ScanDir(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No PDF files found in the directory!")
		return nil
	}

	fmt.Printf("Found %d PDF files\n", len(files))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"File", "Pages", "Status"})

	totalPages := 0
	for _, file := range files {
		pages, err := client.Convert(cmd.Context(), file)
		if err != nil {
			// One bad file does not abort the batch.
			slog.Error("Conversion failed", "file", file, "error", err)
			t.AppendRow(table.Row{filepath.Base(file), 0, "error: " + err.Error()})
			continue
		}
		totalPages += len(pages)
		t.AppendRow(table.Row{filepath.Base(file), len(pages), "ok"})
	}

	t.Render()
	fmt.Printf("Total PDF files processed: %d\n", len(files))
	fmt.Printf("Total pages converted to JPG: %d\n", totalPages)
	return nil
}
