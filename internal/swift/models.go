// Package swift holds the SWIFT directory domain model and the store
// contract shared by the service, the loader, and the store implementations.
package swift

import "strings"

// hqSuffix is the reserved code suffix that marks a headquarters record.
const hqSuffix = "XXX"

// PrefixLength is the number of leading code characters shared by a
// headquarters and its branches.
const PrefixLength = 8

// Record is the canonical persisted entity, keyed by SwiftCode.
type Record struct {
	SwiftCode     string
	BankName      string
	Address       string
	CountryISO2   string
	CountryName   string
	IsHeadquarter bool
}

// IsHeadquarterCode reports whether code denotes a headquarters. The
// classification is purely structural: it holds iff the code ends in "XXX".
func IsHeadquarterCode(code string) bool {
	return strings.HasSuffix(code, hqSuffix)
}

// Prefix returns the 8-character institution prefix used to group a
// headquarters with its branches. Codes shorter than the prefix are returned
// unchanged.
func Prefix(code string) string {
	if len(code) < PrefixLength {
		return code
	}
	return code[:PrefixLength]
}
