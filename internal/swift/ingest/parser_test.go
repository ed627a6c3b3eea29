package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `COUNTRY ISO2 CODE,SWIFT CODE,CODE TYPE,NAME,ADDRESS,TOWN NAME,COUNTRY NAME,TIME ZONE
PL, AAAABBCCXXX,BIC11, ALPHA BANK, 1 Main St,WARSZAWA, POLAND,Europe/Warsaw
PL,AAAABBCC001,BIC11,ALPHA BANK BRANCH,2 Side St,KRAKOW,POLAND,Europe/Warsaw
`

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// leading whitespace in values is ignored
	assert.Equal(t, "AAAABBCCXXX", rows[0].SwiftCode)
	assert.Equal(t, "ALPHA BANK", rows[0].Name)
	assert.Equal(t, "1 Main St", rows[0].Address)
	assert.Equal(t, "POLAND", rows[0].CountryName)
	assert.Equal(t, "PL", rows[0].CountryISO2Code)

	// non-persisted columns are still bound
	assert.Equal(t, "BIC11", rows[0].CodeType)
	assert.Equal(t, "WARSZAWA", rows[0].TownName)
	assert.Equal(t, "Europe/Warsaw", rows[0].TimeZone)
}

func TestParseHeaderDrivenBinding(t *testing.T) {
	// shuffled column order must not matter
	shuffled := `NAME,COUNTRY NAME,SWIFT CODE,ADDRESS,COUNTRY ISO2 CODE
ALPHA BANK,POLAND,AAAABBCCXXX,1 Main St,PL
`
	rows, err := Parse(strings.NewReader(shuffled))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AAAABBCCXXX", rows[0].SwiftCode)
	assert.Equal(t, "PL", rows[0].CountryISO2Code)
	assert.Empty(t, rows[0].TimeZone)
}

func TestParseMissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("NAME,ADDRESS\nA,B\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SWIFT CODE")
}

func TestParseMalformedRow(t *testing.T) {
	malformed := sampleCSV + "PL,\"unterminated\n"
	_, err := Parse(strings.NewReader(malformed))
	require.Error(t, err)
}

func TestRowToRecordDerivesHeadquarterFromSuffix(t *testing.T) {
	hq := Row{SwiftCode: "AAAABBCCXXX", Name: "ALPHA", CountryISO2Code: "PL", CountryName: "POLAND", CodeType: "BIC11"}
	rec := hq.ToRecord()
	assert.True(t, rec.IsHeadquarter)
	assert.Equal(t, "ALPHA", rec.BankName)

	branch := Row{SwiftCode: "AAAABBCC001"}
	assert.False(t, branch.ToRecord().IsHeadquarter)
}
