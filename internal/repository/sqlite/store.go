// Package sqlite provides a SQLite-backed card lookup.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arcanaland/cardpool/internal/card"
	"github.com/arcanaland/cardpool/internal/repository"
	"github.com/arcanaland/cardpool/internal/repository/sqlite/migrations"
)

const migrationTable = "schema_migrations"

// Store persists cards in SQLite and serves card lookups.
type Store struct {
	sqlDB *sql.DB
}

var _ repository.Lookup = (*Store)(nil)

// Open opens a SQLite card store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AddCards inserts cards in a single transaction.
func (s *Store) AddCards(ctx context.Context, cards ...card.Info) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (name, set_code, card_number, rarity, color, types, supertypes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			_ = tx.Rollback()
			return fmt.Errorf("card name is required")
		}
		setCode := strings.ToUpper(strings.TrimSpace(c.SetCode))
		if setCode == "" {
			_ = tx.Rollback()
			return fmt.Errorf("set code is required for %s", name)
		}
		if _, err := stmt.ExecContext(ctx,
			name,
			setCode,
			c.CardNumber,
			c.Rarity,
			int64(c.Color),
			joinTypes(c.Types),
			joinSupertypes(c.Supertypes),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert card %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	slog.Debug("Stored cards", "count", len(cards))
	return nil
}

// FindCards returns the cards matching criteria.
func (s *Store) FindCards(ctx context.Context, criteria repository.Criteria) ([]card.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT name, set_code, card_number, rarity, color, types, supertypes FROM cards`
	var args []any
	if len(criteria.SetCodes) > 0 {
		placeholders := make([]string, len(criteria.SetCodes))
		for i, code := range criteria.SetCodes {
			placeholders[i] = "?"
			args = append(args, strings.ToUpper(strings.TrimSpace(code)))
		}
		query += ` WHERE set_code IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY id`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []card.Info
	for rows.Next() {
		var (
			info       card.Info
			color      int64
			types      string
			supertypes string
		)
		if err := rows.Scan(
			&info.Name,
			&info.SetCode,
			&info.CardNumber,
			&info.Rarity,
			&color,
			&types,
			&supertypes,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		info.Color = card.Color(color)
		info.Types = splitTypes(types)
		info.Supertypes = splitSupertypes(supertypes)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return out, nil
}

// Count returns the number of stored cards.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

// SetCount is the number of stored cards of one set.
type SetCount struct {
	Code  string
	Count int
}

// CountBySet returns the number of stored cards per set, ordered by set code.
func (s *Store) CountBySet(ctx context.Context) ([]SetCount, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT set_code, COUNT(*) FROM cards GROUP BY set_code ORDER BY set_code`)
	if err != nil {
		return nil, fmt.Errorf("count cards by set: %w", err)
	}
	defer rows.Close()

	var counts []SetCount
	for rows.Next() {
		var c SetCount
		if err := rows.Scan(&c.Code, &c.Count); err != nil {
			return nil, fmt.Errorf("scan set count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func joinTypes(types []card.CardType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func joinSupertypes(types []card.SuperType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitTypes(s string) []card.CardType {
	if s == "" {
		return nil
	}
	var out []card.CardType
	for _, part := range strings.Split(s, ",") {
		out = append(out, card.CardType(part))
	}
	return out
}

func splitSupertypes(s string) []card.SuperType {
	if s == "" {
		return nil
	}
	var out []card.SuperType
	for _, part := range strings.Split(s, ",") {
		out = append(out, card.SuperType(part))
	}
	return out
}

// applyMigrations executes each embedded migration at most once.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range sqlFiles {
		var found int
		err := sqlDB.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, file).Scan(&found)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := sqlDB.Begin()
		if err != nil {
			return fmt.Errorf("begin migration transaction %s: %w", file, err)
		}
		if _, err := tx.Exec(upMigration(string(content))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			file,
			time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// upMigration returns the SQL in the "-- +migrate Up" section.
func upMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	upIdx := strings.Index(content, up)
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, down)
	if downIdx == -1 {
		return content[upIdx+len(up):]
	}
	return content[upIdx+len(up) : downIdx]
}
