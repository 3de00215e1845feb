package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestUp_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := Up(ctx, db, SQLite); err != nil {
			t.Fatalf("Up (run %d): %v", i+1, err)
		}
	}

	for _, table := range []string{"accounts", "weight_entries", "account_preferences", "sessions"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestUp_UnknownDialect(t *testing.T) {
	if err := Up(context.Background(), nil, "mysql"); err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}
