package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestFirstTenant(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	got, err := st.FirstTenant(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("empty database should yield nil, got %+v", got)
	}

	created, err := st.CreateTenant(ctx, "Demo Tenant", "demo")
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	if created.ID == "" || created.Status != "active" {
		t.Errorf("unexpected tenant: %+v", created)
	}

	got, err = st.FirstTenant(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != created.ID || got.Name != "Demo Tenant" || got.Subdomain != "demo" {
		t.Errorf("first tenant = %+v, want %+v", got, created)
	}
}

func TestBrandProfileUpsert(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tenant, err := st.CreateTenant(ctx, "T", "t")
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	missing, err := st.BrandProfileByTenant(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("unsaved profile should be nil, got %+v", missing)
	}

	first, err := st.UpsertBrandProfile(ctx, BrandProfile{
		TenantID:    tenant.ID,
		CompanyName: "Flour & Co",
		Tagline:     "Fresh daily",
		Contact:     json.RawMessage(`{"phone":"123"}`),
	})
	if err != nil {
		t.Fatalf("failed to insert brand profile: %v", err)
	}
	if first.ID == "" {
		t.Fatal("insert should assign an id")
	}

	second, err := st.UpsertBrandProfile(ctx, BrandProfile{
		TenantID:    tenant.ID,
		CompanyName: "Flour & Co",
		Tagline:     "Baked fresh",
	})
	if err != nil {
		t.Fatalf("failed to update brand profile: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert must keep the row id: %q vs %q", second.ID, first.ID)
	}

	stored, err := st.BrandProfileByTenant(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Tagline != "Baked fresh" {
		t.Errorf("tagline = %q, want updated value", stored.Tagline)
	}
	// The second upsert carried no contact JSON, so it was cleared.
	if stored.Contact != nil {
		t.Errorf("contact should be cleared, got %s", stored.Contact)
	}
}

func TestBrandProfileJSONRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tenant, err := st.CreateTenant(ctx, "T", "t")
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	if _, err := st.UpsertBrandProfile(ctx, BrandProfile{
		TenantID:    tenant.ID,
		CompanyName: "Acme",
		Contact:     json.RawMessage(`{"phone":"555","email":"hi@acme.test"}`),
		Address:     json.RawMessage(`{"city":"Springfield"}`),
	}); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	stored, err := st.BrandProfileByTenant(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var contact map[string]string
	if err := json.Unmarshal(stored.Contact, &contact); err != nil {
		t.Fatalf("contact is not valid JSON: %v", err)
	}
	if contact["phone"] != "555" || contact["email"] != "hi@acme.test" {
		t.Errorf("contact = %v", contact)
	}
	var address map[string]string
	if err := json.Unmarshal(stored.Address, &address); err != nil || address["city"] != "Springfield" {
		t.Errorf("address = %s (err %v)", stored.Address, err)
	}
}

func TestGeneratedImages(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tenant, err := st.CreateTenant(ctx, "T", "t")
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	other, err := st.CreateTenant(ctx, "Other", "other")
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	a, err := st.InsertGeneratedImage(ctx, GeneratedImage{
		TenantID:    tenant.ID,
		TemplateID:  "sale",
		Title:       "Big Sale",
		OutURL:      "https://img/a",
		AspectRatio: "1:1",
		Width:       1024,
		Height:      1024,
	})
	if err != nil {
		t.Fatalf("failed to insert image: %v", err)
	}
	if a.ID == "" || a.CreatedAt.IsZero() {
		t.Errorf("insert should assign id and timestamp: %+v", a)
	}

	b, err := st.InsertGeneratedImage(ctx, GeneratedImage{
		TenantID:    tenant.ID,
		OutURL:      "https://img/b",
		AspectRatio: "4:5",
	})
	if err != nil {
		t.Fatalf("failed to insert image: %v", err)
	}
	if _, err := st.InsertGeneratedImage(ctx, GeneratedImage{
		TenantID:    other.ID,
		OutURL:      "https://img/c",
		AspectRatio: "1:1",
	}); err != nil {
		t.Fatalf("failed to insert image: %v", err)
	}

	images, err := st.GeneratedImagesByTenant(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("images = %d, want 2 (tenant-scoped)", len(images))
	}
	// Rows inserted within the same second share a created_at; membership is
	// what matters, not ordering.
	seen := map[string]bool{}
	for _, img := range images {
		seen[img.ID] = true
	}
	if !seen[a.ID] || !seen[b.ID] {
		t.Errorf("missing inserted rows: %v", seen)
	}

	empty, err := st.GeneratedImagesByTenant(ctx, "no-such-tenant")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("unknown tenant should yield an empty slice, got %v", empty)
	}
}

func TestInsertPostStatus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tenant, err := st.CreateTenant(ctx, "T", "t")
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	draft, err := st.InsertPost(ctx, Post{
		TenantID: tenant.ID,
		Platform: "instagram",
		MediaURL: "https://cdn/x.png",
	})
	if err != nil {
		t.Fatalf("failed to insert post: %v", err)
	}
	if draft.Status != "draft" {
		t.Errorf("unscheduled post status = %q, want draft", draft.Status)
	}

	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	queued, err := st.InsertPost(ctx, Post{
		TenantID:    tenant.ID,
		Platform:    "facebook",
		MediaURL:    "https://cdn/y.png",
		ScheduledAt: &at,
	})
	if err != nil {
		t.Fatalf("failed to insert post: %v", err)
	}
	if queued.Status != "queued" {
		t.Errorf("scheduled post status = %q, want queued", queued.Status)
	}

	posts, err := st.PostsByTenant(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	for _, p := range posts {
		if p.ID == queued.ID {
			if p.ScheduledAt == nil || !p.ScheduledAt.Equal(at) {
				t.Errorf("scheduledAt = %v, want %v", p.ScheduledAt, at)
			}
		}
		if p.ID == draft.ID && p.ScheduledAt != nil {
			t.Errorf("draft post should have nil scheduledAt, got %v", p.ScheduledAt)
		}
	}
}
