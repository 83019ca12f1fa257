package trace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Writer streams rows into outDir/tmp and moves the file into outDir on Finalize,
// so readers never observe a partially written trace.
type Writer struct {
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[StepRow]

	rows int
}

// NewWriter opens outDir/tmp/<name>.parquet for writing.
func NewWriter(outDir, name string) (*Writer, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	file := name + ".parquet"
	tmpPath := filepath.Join(tmpDir, file)
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[StepRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", Schema)

	return &Writer{
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, file),
		file:    f,
		writer:  w,
	}, nil
}

func (w *Writer) Rows() int { return w.rows }

// Write appends rows to the open file.
func (w *Writer) Write(rows ...StepRow) error {
	if w.writer == nil {
		return fmt.Errorf("trace writer is closed")
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := w.writer.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	w.rows += len(rows)
	return nil
}

// Finalize closes the file and renames it into place. With no rows written the
// temp file is removed and the returned path is empty.
func (w *Writer) Finalize() (string, error) {
	if w.writer == nil && w.file == nil {
		return "", nil
	}

	var closeErr, fileErr error
	if w.writer != nil {
		closeErr = w.writer.Close()
		w.writer = nil
	}
	if w.file != nil {
		_ = w.file.Sync()
		fileErr = w.file.Close()
		w.file = nil
	}
	if closeErr != nil {
		_ = os.Remove(w.tmpPath)
		return "", fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		_ = os.Remove(w.tmpPath)
		return "", fmt.Errorf("close parquet file: %w", fileErr)
	}

	if w.rows == 0 {
		_ = os.Remove(w.tmpPath)
		return "", nil
	}
	if err := os.Rename(w.tmpPath, w.outPath); err != nil {
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return w.outPath, nil
}
