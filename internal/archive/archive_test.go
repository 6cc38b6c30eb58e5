package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validRequest() Request {
	return Request{
		Owner:    OwnerG,
		Bank:     BankBNP,
		Year:     2025,
		Month:    8,
		Filename: "statement.pdf",
	}
}

func TestResolve_CanonicalPath(t *testing.T) {
	path, err := Resolve(validRequest(), "/archive")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	want := filepath.Join("/archive", "raw", "2025", "8", "G_BNP.pdf")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestResolve_FilenameOnlyContributesExtension(t *testing.T) {
	req := validRequest()
	req.Filename = "August statement FINAL (2).PDF"

	path, err := Resolve(req, "/archive")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if filepath.Base(path) != "G_BNP.pdf" {
		t.Errorf("base = %q, want G_BNP.pdf", filepath.Base(path))
	}
}

func TestResolve_YearBounds(t *testing.T) {
	for _, year := range []int{1899, 2101} {
		req := validRequest()
		req.Year = year
		// Out-of-range month too: year must win, checks are ordered.
		req.Month = 13

		_, err := Resolve(req, "/archive")
		if !IsValidationError(err) {
			t.Fatalf("year %d: want ValidationError, got %v", year, err)
		}
		if !strings.Contains(err.Error(), "year") {
			t.Errorf("year %d: error %q should mention year", year, err)
		}
	}
}

func TestResolve_MonthBounds(t *testing.T) {
	for _, month := range []int{0, 13} {
		req := validRequest()
		req.Month = month

		_, err := Resolve(req, "/archive")
		if !IsValidationError(err) {
			t.Fatalf("month %d: want ValidationError, got %v", month, err)
		}
		if !strings.Contains(err.Error(), "month") {
			t.Errorf("month %d: error %q should mention month", month, err)
		}
	}
}

func TestResolve_ExtensionPolicy(t *testing.T) {
	tests := []struct {
		filename string
		ok       bool
	}{
		{"a.pdf", true},
		{"a.PDF", true},
		{"a.csv", true},
		{"a.xlsx", true},
		{"a.xls", true},
		{"report.2025.csv", true},
		{"a.txt", false},
		{"a.exe", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		req := validRequest()
		req.Filename = tt.filename

		_, err := Resolve(req, "/archive")
		if tt.ok && err != nil {
			t.Errorf("Resolve(%q) failed: %v", tt.filename, err)
		}
		if !tt.ok && !IsValidationError(err) {
			t.Errorf("Resolve(%q): want ValidationError, got %v", tt.filename, err)
		}
	}
}

func TestParseOwner(t *testing.T) {
	for _, valid := range []string{"G", "N"} {
		if _, err := ParseOwner(valid); err != nil {
			t.Errorf("ParseOwner(%q) failed: %v", valid, err)
		}
	}
	for _, invalid := range []string{"g", "X", ""} {
		if _, err := ParseOwner(invalid); err == nil {
			t.Errorf("ParseOwner(%q) should fail", invalid)
		}
	}
}

func TestParseBank(t *testing.T) {
	for _, valid := range []string{"BNP", "Revolut", "HSBC", "BNC"} {
		if _, err := ParseBank(valid); err != nil {
			t.Errorf("ParseBank(%q) failed: %v", valid, err)
		}
	}
	// Case matters: the enum symbol is "Revolut".
	for _, invalid := range []string{"REVOLUT", "bnp", "INVALID_BANK", ""} {
		if _, err := ParseBank(invalid); err == nil {
			t.Errorf("ParseBank(%q) should fail", invalid)
		}
	}
}

func TestStore_WritesFileAndCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	req := validRequest()

	path, err := Store(req, root, bytes.NewReader([]byte("%PDF-1.4 content")))
	if err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	want := filepath.Join(root, "raw", "2025", "8", "G_BNP.pdf")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "%PDF-1.4 content" {
		t.Errorf("content = %q", data)
	}
}

func TestStore_ConflictLeavesExistingUntouched(t *testing.T) {
	root := t.TempDir()
	req := validRequest()

	if _, err := Store(req, root, bytes.NewReader([]byte("original"))); err != nil {
		t.Fatalf("first Store() failed: %v", err)
	}

	_, err := Store(req, root, bytes.NewReader([]byte("intruder")))
	if !IsConflictError(err) {
		t.Fatalf("want ConflictError, got %v", err)
	}

	path, _ := Resolve(req, root)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("existing content changed to %q", data)
	}
}

func TestStore_OverwriteReplacesBytes(t *testing.T) {
	root := t.TempDir()
	req := validRequest()

	if _, err := Store(req, root, bytes.NewReader([]byte("aaaaaaaaaaaaaaaa"))); err != nil {
		t.Fatalf("first Store() failed: %v", err)
	}

	req.Overwrite = true
	// Shorter content: truncate semantics, no leftover tail from A.
	path, err := Store(req, root, bytes.NewReader([]byte("bb")))
	if err != nil {
		t.Fatalf("overwrite Store() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "bb" {
		t.Errorf("content = %q, want %q", data, "bb")
	}
}

func TestStore_ValidationRejectsBeforeAnyWrite(t *testing.T) {
	root := t.TempDir()
	req := validRequest()
	req.Filename = "statement.txt"

	if _, err := Store(req, root, bytes.NewReader([]byte("x"))); !IsValidationError(err) {
		t.Fatalf("want ValidationError, got %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("archive root should be empty, found %d entries", len(entries))
	}
}

func TestStore_Idempotent_DirectoryCreation(t *testing.T) {
	root := t.TempDir()
	req := validRequest()
	req.Overwrite = true

	for i := 0; i < 3; i++ {
		if _, err := Store(req, root, bytes.NewReader([]byte("x"))); err != nil {
			t.Fatalf("Store() attempt %d failed: %v", i, err)
		}
	}
}
