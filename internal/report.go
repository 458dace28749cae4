package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReportError wraps any failure while generating a report or chart file.
// The operation is aborted and no partial file is left behind.
type ReportError struct {
	Kind string // "pdf", "xlsx", "chart"
	Err  error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("generating %s report: %v", e.Kind, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

// writeReportFile renders into a temp file in the target directory and only
// renames it into place when the render succeeded, so an aborted generation
// never leaves a partial report.
func writeReportFile(dir, filename, kind string, render func(f *os.File) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &ReportError{Kind: kind, Err: fmt.Errorf("creating reports directory: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, "."+filename+".*")
	if err != nil {
		return "", &ReportError{Kind: kind, Err: fmt.Errorf("creating temp file: %w", err)}
	}

	if err := render(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", &ReportError{Kind: kind, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", &ReportError{Kind: kind, Err: fmt.Errorf("writing temp file: %w", err)}
	}

	final := filepath.Join(dir, filename)
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", &ReportError{Kind: kind, Err: fmt.Errorf("moving report into place: %w", err)}
	}
	return final, nil
}
