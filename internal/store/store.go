// Package store persists tenants and their marketing content in sqlite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tenants (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	subdomain  TEXT NOT NULL UNIQUE,
	status     TEXT NOT NULL DEFAULT 'active',
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS brand_profiles (
	id              TEXT PRIMARY KEY,
	tenant_id       TEXT NOT NULL REFERENCES tenants(id),
	company_name    TEXT NOT NULL,
	tagline         TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	contact         TEXT,
	address         TEXT,
	primary_color   TEXT NOT NULL DEFAULT '',
	secondary_color TEXT NOT NULL DEFAULT '',
	font_primary    TEXT NOT NULL DEFAULT '',
	font_secondary  TEXT NOT NULL DEFAULT '',
	logo_url        TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_brand_tenant ON brand_profiles(tenant_id);

CREATE TABLE IF NOT EXISTS generated_images (
	id           TEXT PRIMARY KEY,
	tenant_id    TEXT NOT NULL REFERENCES tenants(id),
	template_id  TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL DEFAULT '',
	caption      TEXT NOT NULL DEFAULT '',
	hashtags     TEXT NOT NULL DEFAULT '',
	out_url      TEXT NOT NULL,
	aspect_ratio TEXT NOT NULL,
	width        INTEGER NOT NULL DEFAULT 0,
	height       INTEGER NOT NULL DEFAULT 0,
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS ix_genimg_tenant_created ON generated_images(tenant_id, created_at);

CREATE TABLE IF NOT EXISTS posts (
	id           TEXT PRIMARY KEY,
	tenant_id    TEXT NOT NULL REFERENCES tenants(id),
	platform     TEXT NOT NULL,
	media_url    TEXT NOT NULL,
	caption      TEXT NOT NULL DEFAULT '',
	hashtags     TEXT NOT NULL DEFAULT '',
	scheduled_at INTEGER,
	status       TEXT NOT NULL DEFAULT 'draft',
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS ix_posts_tenant_sched ON posts(tenant_id, scheduled_at);
`

type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type BrandProfile struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenantId"`
	CompanyName    string          `json:"companyName"`
	Tagline        string          `json:"tagline,omitempty"`
	Description    string          `json:"description,omitempty"`
	Contact        json.RawMessage `json:"contact,omitempty"`
	Address        json.RawMessage `json:"address,omitempty"`
	PrimaryColor   string          `json:"primaryColor,omitempty"`
	SecondaryColor string          `json:"secondaryColor,omitempty"`
	FontPrimary    string          `json:"fontPrimary,omitempty"`
	FontSecondary  string          `json:"fontSecondary,omitempty"`
	LogoURL        string          `json:"logoUrl,omitempty"`
}

type GeneratedImage struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	TemplateID  string    `json:"templateId,omitempty"`
	Title       string    `json:"title,omitempty"`
	Caption     string    `json:"caption,omitempty"`
	Hashtags    string    `json:"hashtags,omitempty"`
	OutURL      string    `json:"outUrl"`
	AspectRatio string    `json:"aspectRatio"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Post struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenantId"`
	Platform    string     `json:"platform"`
	MediaURL    string     `json:"mediaUrl"`
	Caption     string     `json:"caption,omitempty"`
	Hashtags    string     `json:"hashtags,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Store wraps the sqlite handle. All methods are safe for concurrent use;
// sqlite serialises writers behind the busy timeout.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Pragmas follow the WAL + busy_timeout recipe.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 10000;",
		"PRAGMA synchronous = NORMAL;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// FirstTenant returns the oldest tenant, or nil when none exists yet.
func (s *Store) FirstTenant(ctx context.Context) (*Tenant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, subdomain, status, created_at FROM tenants ORDER BY created_at ASC LIMIT 1`)
	var t Tenant
	var created int64
	err := row.Scan(&t.ID, &t.Name, &t.Subdomain, &t.Status, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query first tenant: %w", err)
	}
	t.CreatedAt = time.Unix(created, 0).UTC()
	return &t, nil
}

func (s *Store) CreateTenant(ctx context.Context, name, subdomain string) (*Tenant, error) {
	t := Tenant{
		ID:        uuid.New().String(),
		Name:      name,
		Subdomain: subdomain,
		Status:    "active",
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, subdomain, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Subdomain, t.Status, t.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}
	return &t, nil
}

// BrandProfileByTenant returns the tenant's brand profile, or nil when the
// tenant has not saved one.
func (s *Store) BrandProfileByTenant(ctx context.Context, tenantID string) (*BrandProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, company_name, tagline, description, contact, address,
		        primary_color, secondary_color, font_primary, font_secondary, logo_url
		 FROM brand_profiles WHERE tenant_id = ? LIMIT 1`, tenantID)

	var p BrandProfile
	var contact, address sql.NullString
	err := row.Scan(&p.ID, &p.TenantID, &p.CompanyName, &p.Tagline, &p.Description,
		&contact, &address, &p.PrimaryColor, &p.SecondaryColor, &p.FontPrimary, &p.FontSecondary, &p.LogoURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query brand profile: %w", err)
	}
	if contact.Valid && contact.String != "" {
		p.Contact = json.RawMessage(contact.String)
	}
	if address.Valid && address.String != "" {
		p.Address = json.RawMessage(address.String)
	}
	return &p, nil
}

// UpsertBrandProfile updates the tenant's existing profile or inserts a new
// one. Returns the stored row.
func (s *Store) UpsertBrandProfile(ctx context.Context, p BrandProfile) (*BrandProfile, error) {
	existing, err := s.BrandProfileByTenant(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}

	contact := nullableJSON(p.Contact)
	address := nullableJSON(p.Address)

	if existing != nil {
		p.ID = existing.ID
		_, err = s.db.ExecContext(ctx,
			`UPDATE brand_profiles SET company_name = ?, tagline = ?, description = ?, contact = ?, address = ?,
			        primary_color = ?, secondary_color = ?, font_primary = ?, font_secondary = ?, logo_url = ?
			 WHERE id = ?`,
			p.CompanyName, p.Tagline, p.Description, contact, address,
			p.PrimaryColor, p.SecondaryColor, p.FontPrimary, p.FontSecondary, p.LogoURL, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update brand profile: %w", err)
		}
		return &p, nil
	}

	p.ID = uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO brand_profiles (id, tenant_id, company_name, tagline, description, contact, address,
		        primary_color, secondary_color, font_primary, font_secondary, logo_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.CompanyName, p.Tagline, p.Description, contact, address,
		p.PrimaryColor, p.SecondaryColor, p.FontPrimary, p.FontSecondary, p.LogoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to insert brand profile: %w", err)
	}
	return &p, nil
}

// InsertGeneratedImage persists the image record, assigning id and creation
// time, and returns the stored row.
func (s *Store) InsertGeneratedImage(ctx context.Context, img GeneratedImage) (*GeneratedImage, error) {
	img.ID = uuid.New().String()
	img.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generated_images (id, tenant_id, template_id, title, caption, hashtags, out_url, aspect_ratio, width, height, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		img.ID, img.TenantID, img.TemplateID, img.Title, img.Caption, img.Hashtags,
		img.OutURL, img.AspectRatio, img.Width, img.Height, img.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert generated image: %w", err)
	}
	return &img, nil
}

// GeneratedImagesByTenant lists the tenant's images, newest first.
func (s *Store) GeneratedImagesByTenant(ctx context.Context, tenantID string) ([]GeneratedImage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, template_id, title, caption, hashtags, out_url, aspect_ratio, width, height, created_at
		 FROM generated_images WHERE tenant_id = ? ORDER BY created_at DESC, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query generated images: %w", err)
	}
	defer rows.Close()

	images := []GeneratedImage{}
	for rows.Next() {
		var img GeneratedImage
		var created int64
		if err := rows.Scan(&img.ID, &img.TenantID, &img.TemplateID, &img.Title, &img.Caption, &img.Hashtags,
			&img.OutURL, &img.AspectRatio, &img.Width, &img.Height, &created); err != nil {
			return nil, fmt.Errorf("failed to scan generated image: %w", err)
		}
		img.CreatedAt = time.Unix(created, 0).UTC()
		images = append(images, img)
	}
	return images, rows.Err()
}

// InsertPost persists the post, assigning id, status and creation time, and
// returns the stored row. Scheduled posts start queued, the rest as drafts.
func (s *Store) InsertPost(ctx context.Context, p Post) (*Post, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()
	if p.ScheduledAt != nil {
		p.Status = "queued"
	} else {
		p.Status = "draft"
	}

	var scheduled sql.NullInt64
	if p.ScheduledAt != nil {
		scheduled = sql.NullInt64{Int64: p.ScheduledAt.Unix(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, tenant_id, platform, media_url, caption, hashtags, scheduled_at, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Platform, p.MediaURL, p.Caption, p.Hashtags, scheduled, p.Status, p.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return &p, nil
}

// PostsByTenant lists the tenant's posts, newest first.
func (s *Store) PostsByTenant(ctx context.Context, tenantID string) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, platform, media_url, caption, hashtags, scheduled_at, status, created_at
		 FROM posts WHERE tenant_id = ? ORDER BY created_at DESC, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		var scheduled sql.NullInt64
		var created int64
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Platform, &p.MediaURL, &p.Caption, &p.Hashtags,
			&scheduled, &p.Status, &created); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		if scheduled.Valid {
			at := time.Unix(scheduled.Int64, 0).UTC()
			p.ScheduledAt = &at
		}
		p.CreatedAt = time.Unix(created, 0).UTC()
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
