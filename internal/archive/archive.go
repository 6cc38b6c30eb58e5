// Package archive stores uploaded bank-statement documents under a
// deterministic directory layout keyed by owner, bank, year and month.
//
// The canonical path is a pure function of the request's key fields:
//
//	<archive-root>/raw/<year>/<month>/<owner>_<bank>.<extension>
//
// The original uploaded filename contributes only its extension. Two valid
// requests with identical key fields map to the same path, so an occupied
// destination is rejected unless the caller explicitly asks to overwrite.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Request is one validated-at-the-boundary ingestion request.
// Owner and Bank are already members of their closed sets; Year, Month and
// the filename extension are validated by Resolve.
type Request struct {
	Owner     Owner
	Bank      Bank
	Year      int
	Month     int
	Filename  string
	Overwrite bool
}

// Resolve validates the request fields and computes the canonical
// destination path. Checks are ordered and short-circuit: year, then month,
// then extension. No filesystem access happens here.
func Resolve(req Request, archiveRoot string) (string, error) {
	if req.Year < 1900 || req.Year > 2100 {
		return "", &ValidationError{Message: "Invalid year. Must be between 1900 and 2100."}
	}
	if req.Month < 1 || req.Month > 12 {
		return "", &ValidationError{Message: "Invalid month. Must be between 1 and 12."}
	}
	ext, ok := extensionOf(req.Filename)
	if !ok {
		return "", &ValidationError{Message: "Invalid file type. Only PDF, CSV, and Excel files are accepted."}
	}

	return filepath.Join(
		archiveRoot,
		"raw",
		strconv.Itoa(req.Year),
		strconv.Itoa(req.Month),
		fmt.Sprintf("%s_%s.%s", req.Owner, req.Bank, ext),
	), nil
}

// Store resolves the destination and writes the content stream to it.
//
// If the destination exists and Overwrite is false, Store fails with a
// *ConflictError and the existing file is left untouched. With Overwrite the
// file is truncated and rewritten. Intermediate directories are created
// idempotently. The write is not atomic: an interrupted transfer can leave a
// partial file, which is accepted.
func Store(req Request, archiveRoot string, content io.Reader) (string, error) {
	path, err := Resolve(req, archiveRoot)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		if !req.Overwrite {
			return "", &ConflictError{Path: path}
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", path, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return "", fmt.Errorf("write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file %s: %w", path, err)
	}

	return path, nil
}
