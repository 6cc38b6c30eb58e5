package archive

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Owner identifies whose statement a document is. Closed set.
type Owner string

const (
	OwnerG Owner = "G"
	OwnerN Owner = "N"
)

// Bank identifies the issuing bank. Closed set; symbols are stored verbatim
// in filenames, including case ("Revolut").
type Bank string

const (
	BankBNP     Bank = "BNP"
	BankRevolut Bank = "Revolut"
	BankHSBC    Bank = "HSBC"
	BankBNC     Bank = "BNC"
)

// Extension is an accepted document type. Closed set, always lower case.
type Extension string

const (
	ExtPDF  Extension = "pdf"
	ExtCSV  Extension = "csv"
	ExtXLSX Extension = "xlsx"
	ExtXLS  Extension = "xls"
)

// ParseOwner validates a textual owner against the closed set.
// Rejection here is a boundary-level error, not a ValidationError.
func ParseOwner(s string) (Owner, error) {
	switch Owner(s) {
	case OwnerG, OwnerN:
		return Owner(s), nil
	}
	return "", fmt.Errorf("unknown owner %q (valid: G, N)", s)
}

// ParseBank validates a textual bank against the closed set.
func ParseBank(s string) (Bank, error) {
	switch Bank(s) {
	case BankBNP, BankRevolut, BankHSBC, BankBNC:
		return Bank(s), nil
	}
	return "", fmt.Errorf("unknown bank %q (valid: BNP, Revolut, HSBC, BNC)", s)
}

// extensionOf extracts the accepted extension from an uploaded filename.
//
// The filename is NFC-normalized first (macOS browsers upload NFD names),
// then the substring after the last dot is case-folded and matched against
// the closed set. A name with no dot has no extension.
func extensionOf(filename string) (Extension, bool) {
	name := norm.NFC.String(filename)
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return "", false
	}
	switch Extension(strings.ToLower(name[idx+1:])) {
	case ExtPDF:
		return ExtPDF, true
	case ExtCSV:
		return ExtCSV, true
	case ExtXLSX:
		return ExtXLSX, true
	case ExtXLS:
		return ExtXLS, true
	}
	return "", false
}
