package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	pferrors "github.com/finderlab/pfsearch/internal/errors"
)

// prefixedColumns are the canonical fields that carry derived prefix
// columns in the persons table.
var prefixedColumns = []string{
	FieldGivenName, FieldFamilyName, FieldFullName, FieldAlternateNames,
}

// filterableColumns is the set of column names Query.Filter accepts.
// Restricting filters to known columns keeps the WHERE clause free of
// caller-controlled identifiers.
var filterableColumns = buildFilterableColumns()

func buildFilterableColumns() map[string]struct{} {
	cols := make(map[string]struct{})
	for _, f := range prefixedColumns {
		cols[f] = struct{}{}
		cols[f+SuffixNormalized] = struct{}{}
		cols[f+SuffixFirst1] = struct{}{}
		cols[f+SuffixFirst2] = struct{}{}
	}
	return cols
}

// SQLiteStore is a RecordStore backed by a single SQLite database.
// Reads and writes use separate connection pools: WAL mode lets readers
// run against a snapshot while the single writer commits, so a Put can
// proceed while a query iterator is still open.
type SQLiteStore struct {
	reads  *sql.DB
	writes *sql.DB
	path   string
	closed atomic.Bool
}

// sqliteDSN carries the pragmas as DSN parameters so the
// modernc.org/sqlite driver applies them to every pooled connection,
// not just the one a PRAGMA statement happens to run on.
func sqliteDSN(path string) string {
	return "file:" + path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"
}

// OpenSQLite opens (creating if needed) the record database at path.
// WAL mode allows the federation server and CLI to share one database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	writes, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open record database: %w", err)
	}
	// Single writer to prevent lock contention.
	writes.SetMaxOpenConns(1)
	writes.SetMaxIdleConns(1)
	writes.SetConnMaxLifetime(0)

	reads, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		_ = writes.Close()
		return nil, fmt.Errorf("open record database: %w", err)
	}
	reads.SetMaxOpenConns(4)
	reads.SetConnMaxLifetime(0)

	s := &SQLiteStore{reads: reads, writes: writes, path: path}
	if err := s.initSchema(); err != nil {
		_ = reads.Close()
		_ = writes.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	var b strings.Builder
	b.WriteString(`
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS persons (
		repo TEXT NOT NULL,
		record_id TEXT NOT NULL,
		given_name TEXT NOT NULL DEFAULT '',
		family_name TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		alternate_names TEXT NOT NULL DEFAULT '',
		home_street TEXT NOT NULL DEFAULT '',
		home_neighborhood TEXT NOT NULL DEFAULT '',
		home_city TEXT NOT NULL DEFAULT '',
		home_state TEXT NOT NULL DEFAULT '',
		home_postal_code TEXT NOT NULL DEFAULT '',
		home_country TEXT NOT NULL DEFAULT '',
		expiry INTEGER NOT NULL DEFAULT 0,
		expired INTEGER NOT NULL DEFAULT 0,
		entry_date INTEGER NOT NULL DEFAULT 0,
`)
	for _, f := range prefixedColumns {
		fmt.Fprintf(&b, "\t\t%s%s TEXT NOT NULL DEFAULT '',\n", f, SuffixNormalized)
		fmt.Fprintf(&b, "\t\t%s%s TEXT NOT NULL DEFAULT '',\n", f, SuffixFirst1)
		fmt.Fprintf(&b, "\t\t%s%s TEXT NOT NULL DEFAULT '',\n", f, SuffixFirst2)
	}
	b.WriteString(`		PRIMARY KEY (repo, record_id)
	);
`)
	// Bucket columns are what approximate prefix queries filter on;
	// index them so a bucket scan is O(bucket size), not O(table size).
	for _, f := range prefixedColumns {
		fmt.Fprintf(&b,
			"\tCREATE INDEX IF NOT EXISTS idx_persons_%s_n2 ON persons(repo, %s%s);\n",
			f, f, SuffixFirst2)
		fmt.Fprintf(&b,
			"\tCREATE INDEX IF NOT EXISTS idx_persons_%s_n1 ON persons(repo, %s%s);\n",
			f, f, SuffixFirst1)
	}
	b.WriteString("\tINSERT OR IGNORE INTO schema_version (version) VALUES (1);\n")

	_, err := s.writes.Exec(b.String())
	return err
}

// personColumns is the SELECT column list, kept in one place so scans
// stay in sync with the schema.
var personColumns = func() string {
	cols := []string{
		"repo", "record_id",
		"given_name", "family_name", "full_name", "alternate_names",
		"home_street", "home_neighborhood", "home_city",
		"home_state", "home_postal_code", "home_country",
		"expiry", "expired", "entry_date",
	}
	for _, f := range prefixedColumns {
		cols = append(cols, f+SuffixNormalized, f+SuffixFirst1, f+SuffixFirst2)
	}
	return strings.Join(cols, ", ")
}()

func scanPerson(rows *sql.Rows) (*Person, error) {
	var p Person
	var expiry, entryDate int64
	var expired int
	prefixVals := make([]string, len(prefixedColumns)*3)

	dest := []any{
		&p.Repo, &p.RecordID,
		&p.GivenName, &p.FamilyName, &p.FullName, &p.AlternateNames,
		&p.HomeStreet, &p.HomeNeighborhood, &p.HomeCity,
		&p.HomeState, &p.HomePostalCode, &p.HomeCountry,
		&expiry, &expired, &entryDate,
	}
	for i := range prefixVals {
		dest = append(dest, &prefixVals[i])
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	if expiry != 0 {
		p.Expiry = time.Unix(expiry, 0).UTC()
	}
	p.Expired = expired != 0
	if entryDate != 0 {
		p.EntryDate = time.Unix(entryDate, 0).UTC()
	}
	p.Prefix = make(map[string]PrefixEntry, len(prefixedColumns))
	for i, f := range prefixedColumns {
		p.Prefix[f] = PrefixEntry{
			N:  prefixVals[i*3],
			N1: prefixVals[i*3+1],
			N2: prefixVals[i*3+2],
		}
	}
	return &p, nil
}

// GetByKeys implements RecordStore.
func (s *SQLiteStore) GetByKeys(ctx context.Context, repo string, ids []string) ([]*Person, error) {
	if s.closed.Load() {
		return nil, pferrors.ErrStoreClosed
	}
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, repo)
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM persons WHERE repo = ? AND record_id IN (%s)",
		personColumns, placeholders)
	rows, err := s.reads.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pferrors.ErrStoreIO.WithCause(fmt.Errorf("get by keys: %w", err))
	}
	defer rows.Close()

	byID := make(map[string]*Person, len(ids))
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		byID[p.RecordID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*Person, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return out, nil
}

// Put implements RecordStore.
func (s *SQLiteStore) Put(ctx context.Context, persons ...*Person) error {
	if s.closed.Load() {
		return pferrors.ErrStoreClosed
	}
	if len(persons) == 0 {
		return nil
	}
	tx, err := s.writes.BeginTx(ctx, nil)
	if err != nil {
		return pferrors.ErrStoreIO.WithCause(fmt.Errorf("begin put: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	cols := strings.Split(personColumns, ", ")
	stmt := fmt.Sprintf(
		"INSERT OR REPLACE INTO persons (%s) VALUES (%s)",
		personColumns, strings.TrimSuffix(strings.Repeat("?,", len(cols)), ","))

	for _, p := range persons {
		var expiry, entryDate int64
		if !p.Expiry.IsZero() {
			expiry = p.Expiry.Unix()
		}
		if !p.EntryDate.IsZero() {
			entryDate = p.EntryDate.Unix()
		}
		expired := 0
		if p.Expired {
			expired = 1
		}
		args := []any{
			p.Repo, p.RecordID,
			p.GivenName, p.FamilyName, p.FullName, p.AlternateNames,
			p.HomeStreet, p.HomeNeighborhood, p.HomeCity,
			p.HomeState, p.HomePostalCode, p.HomeCountry,
			expiry, expired, entryDate,
		}
		for _, f := range prefixedColumns {
			entry := p.Prefix[f]
			args = append(args, entry.N, entry.N1, entry.N2)
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return pferrors.ErrStoreIO.WithCause(fmt.Errorf("put %s: %w", p.RecordID, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return pferrors.ErrStoreIO.WithCause(err)
	}
	return nil
}

// Query implements RecordStore.
func (s *SQLiteStore) Query(repo string) Query {
	return &sqliteQuery{store: s, repo: repo, limit: -1}
}

// Close implements RecordStore.
func (s *SQLiteStore) Close() error {
	s.closed.Store(true)
	readErr := s.reads.Close()
	if err := s.writes.Close(); err != nil {
		return err
	}
	return readErr
}

type sqliteQuery struct {
	store   *SQLiteStore
	repo    string
	filters []filterClause
	limit   int
	err     error
}

func (q *sqliteQuery) Filter(field, value string) Query {
	if _, ok := filterableColumns[field]; !ok {
		q.err = fmt.Errorf("unfilterable field %q", field)
		return q
	}
	q.filters = append(q.filters, filterClause{field: field, value: value})
	return q
}

func (q *sqliteQuery) Limit(n int) Query {
	q.limit = n
	return q
}

func (q *sqliteQuery) Run(ctx context.Context) Iterator {
	if q.store.closed.Load() {
		return &errIterator{err: pferrors.ErrStoreClosed}
	}
	if q.err != nil {
		return &errIterator{err: q.err}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM persons WHERE repo = ?", personColumns)
	args := []any{q.repo}
	for _, f := range q.filters {
		fmt.Fprintf(&b, " AND %s = ?", f.field)
		args = append(args, f.value)
	}
	b.WriteString(" ORDER BY record_id")
	if q.limit >= 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}

	rows, err := q.store.reads.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return &errIterator{err: err}
	}
	return &sqliteIterator{rows: rows}
}

type sqliteIterator struct {
	rows *sql.Rows
	err  error
}

func (it *sqliteIterator) Next() (*Person, bool) {
	if it.err != nil || !it.rows.Next() {
		if it.err == nil {
			it.err = it.rows.Err()
		}
		return nil, false
	}
	p, err := scanPerson(it.rows)
	if err != nil {
		it.err = err
		return nil, false
	}
	return p, true
}

func (it *sqliteIterator) Err() error {
	return it.err
}

func (it *sqliteIterator) Close() error {
	return it.rows.Close()
}

type errIterator struct{ err error }

func (it *errIterator) Next() (*Person, bool) { return nil, false }
func (it *errIterator) Err() error            { return it.err }
func (it *errIterator) Close() error          { return nil }
