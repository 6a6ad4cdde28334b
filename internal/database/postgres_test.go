package database

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestPendingFiles_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"010_later.sql":            {Data: []byte("SELECT 1")},
		"001_contact_messages.sql": {Data: []byte("SELECT 1")},
		"README.md":                {Data: []byte("notes")},
		"abc_invalid.sql":          {Data: []byte("SELECT 1")},
		"002_nested/x.sql":         {Data: []byte("SELECT 1")},
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	got := pendingFiles(entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 migrations, got %d: %+v", len(got), got)
	}
	if got[0].version != 1 || got[0].name != "001_contact_messages.sql" {
		t.Fatalf("unexpected first migration: %+v", got[0])
	}
	if got[1].version != 10 {
		t.Fatalf("expected version 10 second, got %d", got[1].version)
	}
}
