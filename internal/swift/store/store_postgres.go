package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"swiftindex/internal/swift"
)

const (
	tableSwiftCodes = "swift_codes"

	// pgUniqueViolation is the postgres error code raised when Insert loses
	// a race on the primary key.
	pgUniqueViolation = "23505"

	// upsertChunkSize bounds one pgx batch during bulk load.
	upsertChunkSize = 500
	// upsertWorkers caps concurrent batches against the pool.
	upsertWorkers = 4
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var swiftColumns = []string{
	"swift_code", "bank_name", "address", "country_iso2", "country_name", "is_headquarter",
}

// swiftRow mirrors the swift_codes table.
type swiftRow struct {
	SwiftCode     string `db:"swift_code"`
	BankName      string `db:"bank_name"`
	Address       string `db:"address"`
	CountryISO2   string `db:"country_iso2"`
	CountryName   string `db:"country_name"`
	IsHeadquarter bool   `db:"is_headquarter"`
}

func (r swiftRow) toRecord() swift.Record {
	return swift.Record(r)
}

// PostgresStore persists swift records in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetByCode(ctx context.Context, code string) (*swift.Record, error) {
	query, args, err := psql.Select(swiftColumns...).
		From(tableSwiftCodes).
		Where(sq.Eq{"swift_code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var row swiftRow
	if err := pgxscan.Get(ctx, s.pool, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, swift.ErrNotFound
		}
		return nil, fmt.Errorf("get by code: %w", err)
	}
	rec := row.toRecord()
	return &rec, nil
}

func (s *PostgresStore) GetByCountry(ctx context.Context, countryISO2 string) ([]swift.Record, error) {
	query, args, err := psql.Select(swiftColumns...).
		From(tableSwiftCodes).
		Where(sq.Eq{"country_iso2": countryISO2}).
		OrderBy("swift_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build country query: %w", err)
	}
	return s.selectRecords(ctx, query, args)
}

func (s *PostgresStore) GetBranches(ctx context.Context, prefix string) ([]swift.Record, error) {
	query, args, err := psql.Select(swiftColumns...).
		From(tableSwiftCodes).
		Where(sq.Like{"swift_code": prefix + "%"}).
		Where(sq.Eq{"is_headquarter": false}).
		OrderBy("swift_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build branches query: %w", err)
	}
	return s.selectRecords(ctx, query, args)
}

func (s *PostgresStore) selectRecords(ctx context.Context, query string, args []any) ([]swift.Record, error) {
	var rows []swiftRow
	if err := pgxscan.Select(ctx, s.pool, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	out := make([]swift.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func (s *PostgresStore) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM swift_codes WHERE swift_code = $1)", code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return exists, nil
}

// UpsertBatch applies records in unordered chunks. Each chunk is one pgx
// batch round-trip; chunks run concurrently against the pool. A failed chunk
// fails the whole call, but already-applied chunks are not rolled back.
func (s *PostgresStore) UpsertBatch(ctx context.Context, records []swift.Record) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertWorkers)

	for start := 0; start < len(records); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]
		g.Go(func() error {
			return s.upsertChunk(ctx, chunk)
		})
	}
	return g.Wait()
}

func (s *PostgresStore) upsertChunk(ctx context.Context, records []swift.Record) error {
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`INSERT INTO swift_codes
			(swift_code, bank_name, address, country_iso2, country_name, is_headquarter)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (swift_code) DO UPDATE SET
				bank_name = EXCLUDED.bank_name,
				address = EXCLUDED.address,
				country_iso2 = EXCLUDED.country_iso2,
				country_name = EXCLUDED.country_name,
				is_headquarter = EXCLUDED.is_headquarter`,
			rec.SwiftCode, rec.BankName, rec.Address, rec.CountryISO2, rec.CountryName, rec.IsHeadquarter,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, record swift.Record) error {
	query, args, err := psql.Insert(tableSwiftCodes).
		Columns(swiftColumns...).
		Values(record.SwiftCode, record.BankName, record.Address,
			record.CountryISO2, record.CountryName, record.IsHeadquarter).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return swift.ErrDuplicate
		}
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM swift_codes WHERE swift_code = $1", code)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return swift.ErrNotFound
	}
	return nil
}
