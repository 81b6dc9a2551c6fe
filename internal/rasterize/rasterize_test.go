package rasterize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeExecutor pretends to be pdftoppm by writing page files to the
// output prefix found in the arguments.
type fakeExecutor struct {
	pages int
	err   error
	args  []string
}

func (f *fakeExecutor) Run(_ context.Context, _ string, args []string) error {
	f.args = args
	if f.err != nil {
		return f.err
	}
	prefix := args[len(args)-1]
	for i := 1; i <= f.pages; i++ {
		// pdftoppm zero-pads according to the page count.
		name := fmt.Sprintf("%s-%02d.jpg", prefix, i)
		if err := os.WriteFile(name, []byte("jpeg"), 0644); err != nil {
			return err
		}
	}
	return nil
}

func writePDF(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	pdf := writePDF(t, dir, "report.pdf")

	exec := &fakeExecutor{pages: 3}
	client, err := New("pdftoppm", DefaultDPI, WithExecutor(exec))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	outputs, err := client.Convert(context.Background(), pdf)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	want := []string{"report_page_1.jpg", "report_page_2.jpg", "report_page_3.jpg"}
	if len(outputs) != len(want) {
		t.Fatalf("Expected %d outputs, got %d", len(want), len(outputs))
	}
	for i, w := range want {
		if filepath.Base(outputs[i]) != w {
			t.Errorf("Output %d: got %s, want %s", i, filepath.Base(outputs[i]), w)
		}
		if _, err := os.Stat(outputs[i]); err != nil {
			t.Errorf("Output %s missing: %v", w, err)
		}
	}

	// The render resolution must be passed through.
	joined := strings.Join(exec.args, " ")
	if !strings.Contains(joined, "-r 300") {
		t.Errorf("Expected -r 300 in args, got %q", joined)
	}
	if !strings.Contains(joined, "-jpeg") {
		t.Errorf("Expected -jpeg in args, got %q", joined)
	}
}

func TestConvertFailure(t *testing.T) {
	dir := t.TempDir()
	pdf := writePDF(t, dir, "broken.pdf")

	renderErr := errors.New("syntax error")
	client, err := New("pdftoppm", DefaultDPI, WithExecutor(&fakeExecutor{err: renderErr}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := client.Convert(context.Background(), pdf); !errors.Is(err, renderErr) {
		t.Errorf("Expected wrapped render error, got %v", err)
	}

	// No partial outputs left behind.
	leftovers, _ := filepath.Glob(filepath.Join(dir, "broken_page_*.jpg"))
	if len(leftovers) != 0 {
		t.Errorf("Unexpected leftovers: %v", leftovers)
	}
}

func TestConvertNoPages(t *testing.T) {
	dir := t.TempDir()
	pdf := writePDF(t, dir, "empty.pdf")

	client, err := New("pdftoppm", DefaultDPI, WithExecutor(&fakeExecutor{pages: 0}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := client.Convert(context.Background(), pdf); err == nil {
		t.Error("Expected error for zero rendered pages, got nil")
	}
}

func TestNewMissingBinary(t *testing.T) {
	_, err := New("definitely-not-a-real-binary-xyz", DefaultDPI)
	if !errors.Is(err, ErrBinaryMissing) {
		t.Fatalf("Expected ErrBinaryMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "Poppler") {
		t.Errorf("Expected installation remediation in error, got %q", err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.PDF", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 PDF files, got %d: %v", len(files), files)
	}
}
