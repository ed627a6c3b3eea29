// Package ingest loads the SWIFT reference dataset into the store at
// startup. Parsing and applying are separate steps with separate failure
// modes: a parse error aborts before any write, a bulk error means the store
// may hold a partial dataset.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"swiftindex/internal/swift"
)

// Dataset column headers. Binding is header-driven, so column order in the
// file does not matter.
const (
	colCountryISO2 = "COUNTRY ISO2 CODE"
	colSwiftCode   = "SWIFT CODE"
	colCodeType    = "CODE TYPE"
	colName        = "NAME"
	colAddress     = "ADDRESS"
	colTownName    = "TOWN NAME"
	colCountryName = "COUNTRY NAME"
	colTimeZone    = "TIME ZONE"
)

// requiredColumns are the headers that must be present; the rest are
// accepted but ignored.
var requiredColumns = []string{colCountryISO2, colSwiftCode, colName, colAddress, colCountryName}

// Row is one raw dataset row. CodeType, TownName and TimeZone are carried
// through parsing but never persisted.
type Row struct {
	CountryISO2Code string
	SwiftCode       string
	CodeType        string
	Name            string
	Address         string
	TownName        string
	CountryName     string
	TimeZone        string
}

// ToRecord converts a raw row to the canonical record. The headquarters flag
// is derived from the code suffix, not from the row's CODE TYPE marker.
func (r Row) ToRecord() swift.Record {
	return swift.Record{
		SwiftCode:     r.SwiftCode,
		BankName:      r.Name,
		Address:       r.Address,
		CountryISO2:   r.CountryISO2Code,
		CountryName:   r.CountryName,
		IsHeadquarter: swift.IsHeadquarterCode(r.SwiftCode),
	}
}

// Parse reads the whole dataset. Any unreadable or malformed row fails the
// parse; callers must not apply a partially parsed dataset.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, Row{
			CountryISO2Code: field(record, colCountryISO2),
			SwiftCode:       field(record, colSwiftCode),
			CodeType:        field(record, colCodeType),
			Name:            field(record, colName),
			Address:         field(record, colAddress),
			TownName:        field(record, colTownName),
			CountryName:     field(record, colCountryName),
			TimeZone:        field(record, colTimeZone),
		})
	}
	return rows, nil
}
