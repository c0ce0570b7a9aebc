// Package analytics records page views in the embedded SQLite database and
// computes the aggregate statistics served by the stats endpoint.
//
// The store is append-only: rows are created by the track endpoint and never
// updated or deleted. One Service is constructed at startup and shared by all
// request handlers; SQLite's WAL mode gives concurrent readers a single
// serialized writer, and a writer that cannot acquire the lock within the
// busy timeout surfaces an error instead of blocking.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// MaxFieldLen is the stored length cap for path, referrer and user agent.
const MaxFieldLen = 500

const schema = `
CREATE TABLE IF NOT EXISTS page_views (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    path         TEXT NOT NULL,
    visitor_hash TEXT NOT NULL DEFAULT '',
    referrer     TEXT NOT NULL DEFAULT '',
    screen_width INTEGER NOT NULL DEFAULT 0,
    user_agent   TEXT NOT NULL DEFAULT '',
    created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_views_created ON page_views(created_at);
CREATE INDEX IF NOT EXISTS idx_views_path ON page_views(path);
`

// View holds the caller-supplied fields of one page view. The id and creation
// time are assigned by the store at insert.
type View struct {
	Path        string
	Referrer    string
	ScreenWidth int
	UserAgent   string
	VisitorHash string
}

// PageCount is one entry of the per-path view ranking.
type PageCount struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DayCount is one entry of the per-day view series.
type DayCount struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// RecentView is one of the most recently recorded views.
type RecentView struct {
	Path        string `json:"path"`
	Timestamp   string `json:"timestamp"`
	ScreenWidth int    `json:"screenWidth"`
}

// Snapshot is the aggregate statistics payload for one trailing window.
//
// The fields are computed as independent read-only queries against the
// current committed state; a concurrent insert landing between two of them
// may be visible in one and not the other. That window is accepted, not a
// transactional snapshot.
type Snapshot struct {
	TotalViews     int          `json:"totalViews"`
	UniqueVisitors int          `json:"uniqueVisitors"`
	Today          int          `json:"today"`
	Pages          []PageCount  `json:"pages"`
	Recent         []RecentView `json:"recent"`
	Daily          []DayCount   `json:"daily"`
}

// Config holds the settings needed to create a Service.
type Config struct {
	DB *sql.DB
}

// Service is the process-wide view store handle.
type Service struct {
	db *sql.DB
}

// New creates a Service and applies the page_views schema. The schema is
// idempotent, so New is safe to call on every startup against an existing
// database.
func New(cfg Config) (*Service, error) {
	if cfg.DB == nil {
		return nil, fmt.Errorf("analytics: DB is required")
	}
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := cfg.DB.Exec(stmt); err != nil {
			return nil, fmt.Errorf("analytics schema: %w", err)
		}
	}
	return &Service{db: cfg.DB}, nil
}

// Close releases the underlying database handle. Optional: normal process
// termination is safe without it.
func (s *Service) Close() error { return s.db.Close() }

// Record inserts exactly one page view row. The creation time is assigned
// here, in UTC. Storage failures (I/O, writer-lock timeout) propagate to the
// caller; nothing is written on error.
func (s *Service) Record(ctx context.Context, v View) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_views (path, visitor_hash, referrer, screen_width, user_agent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		v.Path, v.VisitorHash, v.Referrer, v.ScreenWidth, v.UserAgent, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("analytics: record view: %w", err)
	}
	return nil
}

// Stats computes the aggregate snapshot over rows created in the trailing
// windowDays days. Today's count uses the current UTC calendar date and the
// recent list is not window-limited.
func (s *Service) Stats(ctx context.Context, windowDays int) (*Snapshot, error) {
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -windowDays).Unix()
	snap := &Snapshot{
		Pages:  []PageCount{},
		Recent: []RecentView{},
		Daily:  []DayCount{},
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page_views WHERE created_at >= ?`, since,
	).Scan(&snap.TotalViews); err != nil {
		return nil, fmt.Errorf("analytics: total views: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT visitor_hash) FROM page_views
		 WHERE created_at >= ? AND visitor_hash != ''`, since,
	).Scan(&snap.UniqueVisitors); err != nil {
		return nil, fmt.Errorf("analytics: unique visitors: %w", err)
	}

	today := now.Format("2006-01-02")
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page_views WHERE date(created_at, 'unixepoch') = ?`, today,
	).Scan(&snap.Today); err != nil {
		return nil, fmt.Errorf("analytics: today views: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, COUNT(*) AS views FROM page_views
		 WHERE created_at >= ? GROUP BY path ORDER BY views DESC, path ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("analytics: top pages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PageCount
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("analytics: top pages scan: %w", err)
		}
		snap.Pages = append(snap.Pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics: top pages rows: %w", err)
	}

	recentRows, err := s.db.QueryContext(ctx,
		`SELECT path, created_at, screen_width FROM page_views
		 ORDER BY created_at DESC, id DESC LIMIT 50`)
	if err != nil {
		return nil, fmt.Errorf("analytics: recent views: %w", err)
	}
	defer recentRows.Close()
	for recentRows.Next() {
		var r RecentView
		var createdAt int64
		if err := recentRows.Scan(&r.Path, &createdAt, &r.ScreenWidth); err != nil {
			return nil, fmt.Errorf("analytics: recent views scan: %w", err)
		}
		r.Timestamp = time.Unix(createdAt, 0).UTC().Format(time.RFC3339)
		snap.Recent = append(snap.Recent, r)
	}
	if err := recentRows.Err(); err != nil {
		return nil, fmt.Errorf("analytics: recent views rows: %w", err)
	}

	dailyRows, err := s.db.QueryContext(ctx,
		`SELECT date(created_at, 'unixepoch') AS day, COUNT(*) AS views
		 FROM page_views WHERE created_at >= ?
		 GROUP BY day ORDER BY day ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("analytics: daily series: %w", err)
	}
	defer dailyRows.Close()
	for dailyRows.Next() {
		var d DayCount
		if err := dailyRows.Scan(&d.Date, &d.Views); err != nil {
			return nil, fmt.Errorf("analytics: daily series scan: %w", err)
		}
		snap.Daily = append(snap.Daily, d)
	}
	if err := dailyRows.Err(); err != nil {
		return nil, fmt.Errorf("analytics: daily series rows: %w", err)
	}

	return snap, nil
}
