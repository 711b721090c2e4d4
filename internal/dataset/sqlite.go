package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLSource reads rows from a table with the columns interest, keywords,
// careers and personality_traits. Rows come back in insertion order.
type SQLSource struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens the SQLite database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// NewSQLSource reads table from db.
func NewSQLSource(db *sql.DB, table string) (*SQLSource, error) {
	if table == "" {
		table = "careers"
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLSource{db: db, table: table}, nil
}

// Rows queries the whole table.
func (s *SQLSource) Rows(ctx context.Context) ([]Row, error) {
	query := fmt.Sprintf(`
		SELECT interest, COALESCE(keywords, ''), COALESCE(careers, ''), COALESCE(personality_traits, '')
		FROM %s
		ORDER BY rowid
	`, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Interest, &r.Keywords, &r.Careers, &r.PersonalityTraits); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
