package clubs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clubhub/internal/core/domain"
	"clubhub/internal/core/ports"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the club catalog, a read-mostly document store.
type SQLiteRepository struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

var _ ports.ClubRepository = (*SQLiteRepository)(nil)

func (r *SQLiteRepository) migrate() error {
	_, err := r.db.Exec(`
CREATE TABLE IF NOT EXISTS clubs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	subtitle TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT '',
	logo TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	base_url TEXT NOT NULL DEFAULT '',
	api_key TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func iso(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

const clubColumns = "id, name, subtitle, type, logo, category, base_url, api_key, active, created_at, updated_at"

func scanClub(row interface{ Scan(...any) error }) (*domain.Club, error) {
	var (
		club               domain.Club
		active             int
		createdAt, updated string
	)
	err := row.Scan(
		&club.ID, &club.Name, &club.Subtitle, &club.Type, &club.Logo,
		&club.Category, &club.BaseURL, &club.APIKey, &active,
		&createdAt, &updated,
	)
	if err != nil {
		return nil, err
	}
	club.Active = active != 0
	club.CreatedAt = parseISO(createdAt)
	club.UpdatedAt = parseISO(updated)
	return &club, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*domain.Club, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clubColumns+` FROM clubs WHERE active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*domain.Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}
	return clubs, rows.Err()
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id domain.ClubID) (*domain.Club, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM clubs WHERE id = ?`, string(id))

	club, err := scanClub(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClubNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	return club, nil
}

func (r *SQLiteRepository) Search(ctx context.Context, term string) ([]*domain.Club, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clubColumns+` FROM clubs
		 WHERE active = 1 AND (
			lower(name) LIKE ? OR lower(subtitle) LIKE ? OR lower(type) LIKE ?
		 )
		 ORDER BY name`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*domain.Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}
	return clubs, rows.Err()
}

func (r *SQLiteRepository) Upsert(ctx context.Context, club *domain.Club) error {
	now := time.Now()
	if club.CreatedAt.IsZero() {
		club.CreatedAt = now
	}
	club.UpdatedAt = now

	active := 0
	if club.Active {
		active = 1
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO clubs (`+clubColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	subtitle = excluded.subtitle,
	type = excluded.type,
	logo = excluded.logo,
	category = excluded.category,
	base_url = excluded.base_url,
	api_key = excluded.api_key,
	active = excluded.active,
	updated_at = excluded.updated_at
`,
		string(club.ID), club.Name, club.Subtitle, club.Type, club.Logo,
		club.Category, club.BaseURL, club.APIKey, active,
		iso(club.CreatedAt), iso(club.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert club: %w", err)
	}
	return nil
}
