package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSettings_SetAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Settings().Set("hold_duration_sec", "15"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Settings().Get("hold_duration_sec")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "15" {
		t.Errorf("value = %q, want %q", got, "15")
	}
}

func TestSettings_SetOverwrites(t *testing.T) {
	s := newTestStore(t)

	s.Settings().Set("line_ratio", "0.7")
	if err := s.Settings().Set("line_ratio", "0.65"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	got, err := s.Settings().Get("line_ratio")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "0.65" {
		t.Errorf("value = %q, want %q", got, "0.65")
	}
}

func TestSettings_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Settings().Get("does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestSettings_Delete(t *testing.T) {
	s := newTestStore(t)

	s.Settings().Set("angle_tolerance_deg", "12")

	if err := s.Settings().Delete("angle_tolerance_deg"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.Settings().Get("angle_tolerance_deg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	if err := s.Settings().Delete("angle_tolerance_deg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() missing error = %v, want ErrNotFound", err)
	}
}

func TestSettings_All(t *testing.T) {
	s := newTestStore(t)

	all, err := s.Settings().All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty settings, got %v", all)
	}

	s.Settings().Set("session_budget_sec", "90")
	s.Settings().Set("hold_duration_sec", "5")

	all, err = s.Settings().All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 settings, got %d", len(all))
	}
	if all["session_budget_sec"] != "90" {
		t.Errorf("session_budget_sec = %q, want %q", all["session_budget_sec"], "90")
	}
}
