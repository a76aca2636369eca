// Package catalog is a SQLite-backed media catalog that supplies a gallery
// session and serves item pages. Items are grouped into one bucket per
// calendar month, newest month first.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/go-theft-auto/gallery"
)

//go:embed schema.sql
var schemaSQL string

const (
	monthKey    = "2006-01"
	monthLabel  = "January 2006"
	defaultStep = 60
)

// ErrClosed is returned by operations on a closed catalog.
var ErrClosed = errors.New("catalog: closed")

// Photo is one catalog entry.
type Photo struct {
	ID      string // Generated when empty
	Kind    gallery.ItemKind
	TakenAt time.Time
}

// Catalog stores photos in SQLite. It implements gallery.Supplier and
// gallery.Fetcher.
type Catalog struct {
	db   *sql.DB
	step int
}

var (
	_ gallery.Supplier = (*Catalog)(nil)
	_ gallery.Fetcher  = (*Catalog)(nil)
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithStepSize sets the step size advertised in the session.
func WithStepSize(n int) Option {
	return func(c *Catalog) { c.step = n }
}

// Open opens or creates the catalog database at path.
func Open(path string, opts ...Option) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	c := &Catalog{db: db, step: defaultStep}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Add inserts photos, assigning IDs to those without one.
func (c *Catalog) Add(ctx context.Context, photos ...Photo) error {
	if c.db == nil {
		return ErrClosed
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (id, kind, taken_at, month) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range photos {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Kind == "" {
			p.Kind = gallery.KindPhoto
		}
		taken := p.TakenAt.UTC()
		if _, err := stmt.ExecContext(ctx, p.ID, string(p.Kind), taken.Unix(), taken.Format(monthKey)); err != nil {
			return fmt.Errorf("insert %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Seed fills the catalog with months of random photos ending at the month
// of now. Each month gets between 1 and maxPerMonth items; roughly one in
// eight is a video. Returns the number of photos added.
func (c *Catalog) Seed(ctx context.Context, rng *rand.Rand, now time.Time, months, maxPerMonth int) (int, error) {
	if months <= 0 || maxPerMonth <= 0 {
		return 0, nil
	}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var photos []Photo
	for m := 0; m < months; m++ {
		first := start.AddDate(0, -m, 0)
		span := first.AddDate(0, 1, 0).Sub(first)
		n := 1 + rng.Intn(maxPerMonth)
		for i := 0; i < n; i++ {
			kind := gallery.KindPhoto
			if rng.Intn(8) == 0 {
				kind = gallery.KindVideo
			}
			photos = append(photos, Photo{
				ID:      uuid.NewString(),
				Kind:    kind,
				TakenAt: first.Add(time.Duration(rng.Int63n(int64(span)))),
			})
		}
	}
	if err := c.Add(ctx, photos...); err != nil {
		return 0, err
	}
	return len(photos), nil
}

// Session returns one bucket per month that has photos, newest first.
func (c *Catalog) Session(ctx context.Context) (gallery.Session, error) {
	if c.db == nil {
		return gallery.Session{}, ErrClosed
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT month, COUNT(*) FROM items GROUP BY month ORDER BY month DESC`)
	if err != nil {
		return gallery.Session{}, fmt.Errorf("querying buckets: %w", err)
	}
	defer rows.Close()

	session := gallery.Session{StepSize: c.step}
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return gallery.Session{}, fmt.Errorf("scanning bucket: %w", err)
		}
		month, err := time.Parse(monthKey, key)
		if err != nil {
			return gallery.Session{}, fmt.Errorf("bad month %q: %w", key, err)
		}
		session.Buckets = append(session.Buckets, gallery.BucketSpec{
			Label: month.Format(monthLabel),
			Count: count,
		})
	}
	if err := rows.Err(); err != nil {
		return gallery.Session{}, fmt.Errorf("querying buckets: %w", err)
	}
	return session, nil
}

// Fetch returns items [from, to) of a month bucket, newest first.
func (c *Catalog) Fetch(ctx context.Context, bucket gallery.BucketRef, from, to int) ([]gallery.Item, error) {
	if c.db == nil {
		return nil, ErrClosed
	}
	if to <= from {
		return nil, nil
	}
	month, err := time.Parse(monthLabel, bucket.Label)
	if err != nil {
		return nil, fmt.Errorf("bucket %q is not a month: %w", bucket.Label, err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, kind FROM items WHERE month = ? ORDER BY taken_at DESC, id LIMIT ? OFFSET ?`,
		month.Format(monthKey), to-from, from)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := make([]gallery.Item, 0, to-from)
	for rows.Next() {
		var it gallery.Item
		var kind string
		if err := rows.Scan(&it.ID, &kind); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		it.Kind = gallery.ItemKind(kind)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	return items, nil
}

// Count returns the number of photos in the catalog.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	if c.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}
