package catalog

import (
	"testing"
)

func TestMigrateUpAndVersion(t *testing.T) {
	store := setupTestStore(t)

	if err := store.MigrateUp("migrations"); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	version, dirty, err := store.MigrateVersion("migrations")
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if dirty {
		t.Error("expected clean migration state")
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// Re-running is a no-op.
	if err := store.MigrateUp("migrations"); err != nil {
		t.Errorf("second MigrateUp failed: %v", err)
	}
}

func TestMigrateVersionBeforeAnyMigration(t *testing.T) {
	store := setupTestStore(t)

	version, dirty, err := store.MigrateVersion("migrations")
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 0 || dirty {
		t.Errorf("expected version 0 clean, got %d dirty=%v", version, dirty)
	}
}

func TestMigrateDown(t *testing.T) {
	store := setupTestStore(t)

	if err := store.MigrateUp("migrations"); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	if err := store.MigrateDown("migrations"); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}

	version, _, err := store.MigrateVersion("migrations")
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 after down, got %d", version)
	}
}
