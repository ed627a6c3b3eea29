package handler

import (
	"regexp"
	"strings"

	"swiftindex/internal/swift"
)

// Validation patterns for path and body parameters.
var (
	swiftCodeRe   = regexp.MustCompile(`^[A-Z0-9]{8,11}$`)
	countryISO2Re = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Validation messages, one per violated constraint; the handler joins them
// with ", " into a single response message.
const (
	msgWrongSwiftFormat = "Must be containing capital letters or numbers, and have 8-11 length"
	msgWrongISO2Format  = "Country ISO2 code must consist of two uppercase letters"
	msgCantBeBlank      = "Parameter can't be blank"
)

// AddRequest is the body of POST /v1/swift-codes. All fields are required.
type AddRequest struct {
	Address       string `json:"address"`
	BankName      string `json:"bankName"`
	CountryISO2   string `json:"countryISO2"`
	CountryName   string `json:"countryName"`
	IsHeadquarter *bool  `json:"isHeadquarter"`
	SwiftCode     string `json:"swiftCode"`
}

// Validate checks every field and aggregates all violations into one
// message. An empty return means the request is well formed.
func (r AddRequest) Validate() string {
	var violations []string

	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	if blank(r.Address) {
		violations = append(violations, msgCantBeBlank)
	}
	if blank(r.BankName) {
		violations = append(violations, msgCantBeBlank)
	}
	if blank(r.CountryISO2) {
		violations = append(violations, msgCantBeBlank)
	} else if !countryISO2Re.MatchString(r.CountryISO2) {
		violations = append(violations, msgWrongISO2Format)
	}
	if blank(r.CountryName) {
		violations = append(violations, msgCantBeBlank)
	}
	if r.IsHeadquarter == nil {
		violations = append(violations, msgCantBeBlank)
	}
	if blank(r.SwiftCode) {
		violations = append(violations, msgCantBeBlank)
	} else if !swiftCodeRe.MatchString(r.SwiftCode) {
		violations = append(violations, msgWrongSwiftFormat)
	}

	return strings.Join(violations, ", ")
}

// ToRecord converts a validated request to the canonical record.
func (r AddRequest) ToRecord() swift.Record {
	return swift.Record{
		SwiftCode:     r.SwiftCode,
		BankName:      r.BankName,
		Address:       r.Address,
		CountryISO2:   r.CountryISO2,
		CountryName:   r.CountryName,
		IsHeadquarter: r.IsHeadquarter != nil && *r.IsHeadquarter,
	}
}
