package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftindex/internal/audit"
	"swiftindex/internal/platform/logger"
	"swiftindex/internal/swift"
	"swiftindex/internal/swift/store"
	dErrors "swiftindex/pkg/domain-errors"
)

func newService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	svc := New(mem, logger.New("error"), nil, audit.NopPublisher{})
	return svc, mem
}

func hqRecord(code string) swift.Record {
	return swift.Record{
		SwiftCode:     code,
		BankName:      "TEST BANK",
		Address:       "1 Main St",
		CountryISO2:   "PL",
		CountryName:   "POLAND",
		IsHeadquarter: true,
	}
}

func branchRecord(code string) swift.Record {
	r := hqRecord(code)
	r.IsHeadquarter = false
	return r
}

func TestGetByCodeNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetByCode(context.Background(), "ZZZZZZZZ")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	assert.Contains(t, err.Error(), "ZZZZZZZZ")
}

func TestGetByCodeGroupsBranchesUnderHeadquarters(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	require.NoError(t, mem.UpsertBatch(ctx, []swift.Record{
		hqRecord("AAAABBCCXXX"),
		branchRecord("AAAABBCC001"),
		branchRecord("AAAABBCC002"),
		branchRecord("AAAAZZZZ001"), // different prefix, must not appear
	}))

	agg, err := svc.GetByCode(ctx, "AAAABBCCXXX")
	require.NoError(t, err)
	assert.True(t, agg.Record.IsHeadquarter)
	require.NotNil(t, agg.Branches)
	require.Len(t, agg.Branches, 2)
	codes := []string{agg.Branches[0].SwiftCode, agg.Branches[1].SwiftCode}
	assert.ElementsMatch(t, []string{"AAAABBCC001", "AAAABBCC002"}, codes)
}

func TestGetByCodeBranchHasNoBranchList(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	require.NoError(t, mem.UpsertBatch(ctx, []swift.Record{
		hqRecord("AAAABBCCXXX"),
		branchRecord("AAAABBCC001"),
	}))

	agg, err := svc.GetByCode(ctx, "AAAABBCC001")
	require.NoError(t, err)
	assert.False(t, agg.Record.IsHeadquarter)
	assert.Nil(t, agg.Branches)
}

func TestGetByCodeHeadquartersWithoutBranches(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	require.NoError(t, mem.Insert(ctx, hqRecord("AAAABBCCXXX")))

	agg, err := svc.GetByCode(ctx, "AAAABBCCXXX")
	require.NoError(t, err)
	require.NotNil(t, agg.Branches)
	assert.Empty(t, agg.Branches)
}

func TestGetByCountry(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	a := hqRecord("AAAABBCCXXX")
	a.CountryISO2, a.CountryName = "US", "UNITED STATES"
	b := branchRecord("DDDDEEFF001")
	b.CountryISO2, b.CountryName = "US", "UNITED STATES"
	require.NoError(t, mem.UpsertBatch(ctx, []swift.Record{a, b, hqRecord("GGGGHHIIXXX")}))

	agg, err := svc.GetByCountry(ctx, "US")
	require.NoError(t, err)
	assert.Equal(t, "US", agg.CountryISO2)
	assert.Equal(t, "UNITED STATES", agg.CountryName)
	assert.Len(t, agg.Records, 2)

	_, err = svc.GetByCountry(ctx, "ZZ")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	assert.Contains(t, err.Error(), "ZZ")
}

func TestAddRejectsXXXMismatchBeforeDuplicateCheck(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	require.NoError(t, mem.Insert(ctx, hqRecord("AAAABBCCXXX")))

	// malformed and duplicate at once: the format error must win
	bad := hqRecord("AAAABBCCXXX")
	bad.IsHeadquarter = false
	err := svc.Add(ctx, bad)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	assert.Equal(t, "Swift code ending with 'XXX' must be used for headquarters", err.Error())

	// branch claiming to be a headquarters is equally invalid
	bad2 := branchRecord("AAAABBCC001")
	bad2.IsHeadquarter = true
	err = svc.Add(ctx, bad2)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
}

func TestAddDuplicate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, hqRecord("AAAABBCCXXX")))

	err := svc.Add(ctx, hqRecord("AAAABBCCXXX"))
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	assert.Contains(t, err.Error(), "AAAABBCCXXX")
}

// raceStore simulates two writers passing the existence check before either
// inserts: Exists lies, so only the store-level uniqueness catches the race.
type raceStore struct {
	swift.Store
}

func (r raceStore) Exists(context.Context, string) (bool, error) { return false, nil }

func TestAddLostInsertRaceSurfacesConflict(t *testing.T) {
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Insert(context.Background(), hqRecord("AAAABBCCXXX")))

	svc := New(raceStore{mem}, logger.New("error"), nil, audit.NopPublisher{})
	err := svc.Add(context.Background(), hqRecord("AAAABBCCXXX"))
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Delete(context.Background(), "ZZZZZZZZ")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestDeleteHeadquartersLeavesBranchesOrphaned(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	require.NoError(t, mem.UpsertBatch(ctx, []swift.Record{
		hqRecord("AAAABBCCXXX"),
		branchRecord("AAAABBCC001"),
	}))

	require.NoError(t, svc.Delete(ctx, "AAAABBCCXXX"))

	// the branch record survives and still resolves alone
	agg, err := svc.GetByCode(ctx, "AAAABBCC001")
	require.NoError(t, err)
	assert.Nil(t, agg.Branches)

	_, err = svc.GetByCode(ctx, "AAAABBCCXXX")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestAddDeleteLifecycle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, hqRecord("AAAABBCCXXX")))

	err := svc.Add(ctx, hqRecord("AAAABBCCXXX"))
	assert.True(t, dErrors.Is(err, dErrors.CodeConflict))

	require.NoError(t, svc.Delete(ctx, "AAAABBCCXXX"))

	_, err = svc.GetByCode(ctx, "AAAABBCCXXX")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}
