package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dreams.db")
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	s, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.CreateAgeGroup(ctx, domain.AgeGroup{ID: "g1", Group: "10-14", CreatedAt: day}); err != nil {
		t.Fatalf("create age group: %v", err)
	}
	if err := s.CreateMaterial(ctx, domain.Material{ID: "m1", Name: "Pens", Stock: 10, TargetGroupID: "g1", CreatedAt: day}); err != nil {
		t.Fatalf("create material: %v", err)
	}
	if _, err := s.CreateUser(ctx, domain.User{Username: "admin", IsActive: true}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	m, err := reopened.GetMaterial(ctx, "m1")
	if err != nil {
		t.Fatalf("get material: %v", err)
	}
	if m.Stock != 10 || m.TargetGroupID != "g1" || !m.CreatedAt.Equal(day) {
		t.Fatalf("unexpected material after reopen: %+v", m)
	}
	u, err := reopened.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected user id 1, got %d", u.ID)
	}
	if reopened.Path() != path {
		t.Fatalf("expected path %q, got %q", path, reopened.Path())
	}
}

func TestStore_FailedWriteNotPersisted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dreams.db")

	s, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.CreateParticipant(ctx, domain.Participant{ID: "p1", AgeGroupID: "missing"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	ps, err := reopened.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("list participants: %v", err)
	}
	if len(ps) != 0 {
		t.Fatalf("expected no participants, got %d", len(ps))
	}
}
