package sandbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("record not found")

// Store keeps every resource as JSON documents in one SQLite table.
type Store struct {
	db *sqlx.DB
}

func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox database: %w", err)
	}
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	s, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewStore(db *sqlx.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.initTables(); err != nil {
		return nil, fmt.Errorf("failed to create sandbox tables: %w", err)
	}
	return s, nil
}

func (s *Store) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS records (
			resource TEXT NOT NULL,
			id TEXT NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY (resource, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_resource ON records(resource)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Query selects documents of one resource. Field names are top level JSON keys.
type Query struct {
	Search       string
	SearchFields []string
	Equals       map[string]any
	Contains     map[string]string // array field -> element
	SortField    string
	Desc         bool
	Offset       int
	Limit        int // 0 returns every match
}

func (s *Store) List(ctx context.Context, resource string, q Query) ([]json.RawMessage, int, error) {
	where, args := buildWhere(resource, q)

	var total int
	countQuery := `SELECT COUNT(*) FROM records WHERE ` + where
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", resource, err)
	}

	query := `SELECT data FROM records WHERE ` + where
	if q.SortField != "" {
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		path := "$." + q.SortField
		query += fmt.Sprintf(` ORDER BY json_extract(data, ?) IS NULL, json_extract(data, ?) COLLATE NOCASE %s, rowid`, dir)
		args = append(args, path, path)
	} else {
		query += ` ORDER BY rowid`
	}
	if q.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, q.Limit, q.Offset)
	}

	var rows []string
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", resource, err)
	}

	docs := make([]json.RawMessage, len(rows))
	for i, row := range rows {
		docs[i] = json.RawMessage(row)
	}
	return docs, total, nil
}

func buildWhere(resource string, q Query) (string, []any) {
	clauses := []string{"resource = ?"}
	args := []any{resource}

	for _, field := range sortedKeys(q.Equals) {
		v := q.Equals[field]
		if b, ok := v.(bool); ok {
			// json_extract yields 1/0 for JSON booleans
			v = 0
			if b {
				v = 1
			}
		}
		clauses = append(clauses, "json_extract(data, ?) = ?")
		args = append(args, "$."+field, v)
	}

	for _, field := range sortedKeys(q.Contains) {
		clauses = append(clauses, "EXISTS (SELECT 1 FROM json_each(data, ?) WHERE json_each.value = ?)")
		args = append(args, "$."+field, q.Contains[field])
	}

	if term := strings.TrimSpace(q.Search); term != "" && len(q.SearchFields) > 0 {
		pattern := "%" + escapeLike(term) + "%"
		ors := make([]string, len(q.SearchFields))
		for i, field := range q.SearchFields {
			ors[i] = `json_extract(data, ?) LIKE ? ESCAPE '\'`
			args = append(args, "$."+field, pattern)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) Get(ctx context.Context, resource, id string) (map[string]any, error) {
	var data string
	err := s.db.GetContext(ctx, &data, `SELECT data FROM records WHERE resource = ? AND id = ?`, resource, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", resource, id, err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", resource, id, err)
	}
	return doc, nil
}

// Put inserts or replaces the document stored under id.
func (s *Store) Put(ctx context.Context, resource, id string, doc map[string]any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", resource, id, err)
	}

	query := `
		INSERT INTO records (resource, id, data) VALUES (?, ?, ?)
		ON CONFLICT(resource, id) DO UPDATE SET data = excluded.data
	`
	if _, err := s.db.ExecContext(ctx, query, resource, id, string(data)); err != nil {
		return fmt.Errorf("failed to store %s/%s: %w", resource, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, resource, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE resource = ? AND id = ?`, resource, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", resource, id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Taken reports whether another document of resource has field == value.
func (s *Store) Taken(ctx context.Context, resource, field, value, exceptID string) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM records WHERE resource = ? AND json_extract(data, ?) = ? AND id != ?`
	if err := s.db.GetContext(ctx, &n, query, resource, "$."+field, value, exceptID); err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", field, err)
	}
	return n > 0, nil
}

// CountBy groups the documents of resource by a string field.
func (s *Store) CountBy(ctx context.Context, resource, field string) (map[string]int, error) {
	var rows []struct {
		Value sql.NullString `db:"value"`
		N     int            `db:"n"`
	}
	query := `
		SELECT json_extract(data, ?) AS value, COUNT(*) AS n
		FROM records WHERE resource = ?
		GROUP BY value
	`
	if err := s.db.SelectContext(ctx, &rows, query, "$."+field, resource); err != nil {
		return nil, fmt.Errorf("failed to count %s by %s: %w", resource, field, err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		if r.Value.Valid {
			counts[r.Value.String] = r.N
		}
	}
	return counts, nil
}

// Count returns how many documents resource has, or all resources together when empty.
func (s *Store) Count(ctx context.Context, resource string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM records WHERE (? = '' OR resource = ?)`, resource, resource); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", resource, err)
	}
	return n, nil
}

// Clear removes every document of resource, or of all resources when empty.
func (s *Store) Clear(ctx context.Context, resource string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE (? = '' OR resource = ?)`, resource, resource); err != nil {
		return fmt.Errorf("failed to clear %s: %w", resource, err)
	}
	return nil
}
