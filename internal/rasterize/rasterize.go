// Package rasterize renders PDF pages to JPEG images using poppler's
// pdftoppm binary.
package rasterize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultDPI is the render resolution.
const DefaultDPI = 300

// ErrBinaryMissing is returned when the pdftoppm binary cannot be found.
var ErrBinaryMissing = errors.New("pdftoppm not found")

// Remediation explains how to install the native rasterization dependency.
const Remediation = `this tool requires Poppler:
  - Debian/Ubuntu: sudo apt-get install poppler-utils
  - macOS: brew install poppler
  - Windows: download from https://github.com/oschwartz10612/poppler-windows/releases/`

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %s: %w", binary, msg, err)
		}
		return fmt.Errorf("%s: %w", binary, err)
	}
	return nil
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps pdftoppm invocations.
type Client struct {
	binary string
	dpi    int
	exec   Executor
}

// New constructs a rasterizer client. It fails with installation
// remediation when the binary is not on PATH.
func New(binary string, dpi int, opts ...Option) (*Client, error) {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	client := &Client{binary: binary, dpi: dpi, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}

	// Skip the PATH probe when a custom executor is injected.
	if _, isReal := client.exec.(commandExecutor); isReal {
		if _, err := exec.LookPath(client.binary); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBinaryMissing, Remediation)
		}
	}
	return client, nil
}

// Convert renders every page of pdfPath as a JPEG beside it, named
// <stem>_page_<k>.jpg with k starting at 1. Returns the output paths in
// page order.
func (c *Client) Convert(ctx context.Context, pdfPath string) ([]string, error) {
	dir := filepath.Dir(pdfPath)
	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))

	// pdftoppm zero-pads its page numbers depending on the page count, so
	// render into a scratch directory and rename to the fixed scheme.
	tmpDir, err := os.MkdirTemp(dir, ".rasterize-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	args := []string{
		"-jpeg",
		"-r", strconv.Itoa(c.dpi),
		pdfPath,
		filepath.Join(tmpDir, "page"),
	}
	if err := c.exec.Run(ctx, c.binary, args); err != nil {
		return nil, fmt.Errorf("failed to rasterize %s: %w", pdfPath, err)
	}

	rendered, err := filepath.Glob(filepath.Join(tmpDir, "page-*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("failed to list rendered pages: %w", err)
	}
	if len(rendered) == 0 {
		return nil, fmt.Errorf("no pages rendered from %s", pdfPath)
	}
	// pdftoppm pads page numbers uniformly, so name order is page order.
	sort.Strings(rendered)

	var outputs []string
	for i, page := range rendered {
		outPath := filepath.Join(dir, fmt.Sprintf("%s_page_%d.jpg", stem, i+1))
		if err := os.Rename(page, outPath); err != nil {
			return nil, fmt.Errorf("failed to move page %d: %w", i+1, err)
		}
		outputs = append(outputs, outPath)
	}
	return outputs, nil
}

// IsPDF reports whether name has a .pdf extension, case-insensitive.
func IsPDF(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".pdf"
}

// ScanDir lists the PDF files directly inside dir, sorted by name.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsPDF(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
