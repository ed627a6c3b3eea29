package handler

import (
	"swiftindex/internal/swift"
	"swiftindex/internal/swift/service"
)

// Success messages for mutations.
const (
	msgAddSuccess    = "Added successfully data with swift code %s"
	msgDeleteSuccess = "Deleted successfully data with swift code %s"
)

// BranchEntry is the short record shape used for branch lists and country
// listings; it omits the country name.
type BranchEntry struct {
	Address       string `json:"address"`
	BankName      string `json:"bankName"`
	CountryISO2   string `json:"countryISO2"`
	IsHeadquarter bool   `json:"isHeadquarter"`
	SwiftCode     string `json:"swiftCode"`
}

// CodeResponse is the aggregate view of a code lookup. Branches is a pointer
// so that a headquarters without branches still serializes an empty list
// while a plain branch record omits the field entirely.
type CodeResponse struct {
	Address       string         `json:"address"`
	BankName      string         `json:"bankName"`
	CountryISO2   string         `json:"countryISO2"`
	CountryName   string         `json:"countryName"`
	IsHeadquarter bool           `json:"isHeadquarter"`
	SwiftCode     string         `json:"swiftCode"`
	Branches      *[]BranchEntry `json:"branches,omitempty"`
}

// CountryResponse lists every record of a country.
type CountryResponse struct {
	CountryISO2 string        `json:"countryISO2"`
	CountryName string        `json:"countryName"`
	SwiftCodes  []BranchEntry `json:"swiftCodes"`
}

func toBranchEntry(rec swift.Record) BranchEntry {
	return BranchEntry{
		Address:       rec.Address,
		BankName:      rec.BankName,
		CountryISO2:   rec.CountryISO2,
		IsHeadquarter: rec.IsHeadquarter,
		SwiftCode:     rec.SwiftCode,
	}
}

func toBranchEntries(records []swift.Record) []BranchEntry {
	out := make([]BranchEntry, 0, len(records))
	for _, rec := range records {
		out = append(out, toBranchEntry(rec))
	}
	return out
}

func toCodeResponse(agg *service.CodeAggregate) CodeResponse {
	resp := CodeResponse{
		Address:       agg.Record.Address,
		BankName:      agg.Record.BankName,
		CountryISO2:   agg.Record.CountryISO2,
		CountryName:   agg.Record.CountryName,
		IsHeadquarter: agg.Record.IsHeadquarter,
		SwiftCode:     agg.Record.SwiftCode,
	}
	if agg.Branches != nil {
		entries := toBranchEntries(agg.Branches)
		resp.Branches = &entries
	}
	return resp
}

func toCountryResponse(agg *service.CountryAggregate) CountryResponse {
	return CountryResponse{
		CountryISO2: agg.CountryISO2,
		CountryName: agg.CountryName,
		SwiftCodes:  toBranchEntries(agg.Records),
	}
}
