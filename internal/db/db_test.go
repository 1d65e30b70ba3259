package db

import "testing"

func TestMigrateIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var count int
	err := database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('waste_items', 'settings')`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 tables, got %d", count)
	}
}

func TestMemoryDatabaseSharedAcrossQueries(t *testing.T) {
	database := NewTestDB(t)

	if _, err := database.Exec(`INSERT INTO settings (key, value) VALUES ('k', 'v')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var v string
	if err := database.QueryRow(`SELECT value FROM settings WHERE key = 'k'`).Scan(&v); err != nil {
		t.Fatalf("select: %v", err)
	}
	if v != "v" {
		t.Errorf("expected 'v', got %q", v)
	}
}

func TestMigrateCreatesEmailIndex(t *testing.T) {
	database := NewTestDB(t)

	var name string
	err := database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'waste_items' AND name = 'idx_waste_items_email'`,
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected idx_waste_items_email after Migrate: %v", err)
	}
}

func TestSchemaAloneHasNoEmailIndex(t *testing.T) {
	database, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	var count int
	err = database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_waste_items_email'`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	if count != 0 {
		t.Errorf("expected index to come from migrations only, got %d", count)
	}
}
