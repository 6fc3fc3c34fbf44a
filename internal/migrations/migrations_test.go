package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsAreAnnotated(t *testing.T) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(names) < 2 {
		t.Fatalf("expected embedded migrations, got %v", names)
	}
	for _, name := range names {
		data, err := fs.ReadFile(files, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		body := string(data)
		if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
			t.Fatalf("%s lacks goose annotations", name)
		}
	}
}

func TestUsersEmailIsUnique(t *testing.T) {
	data, err := fs.ReadFile(files, "00001_create_users.sql")
	if err != nil {
		t.Fatalf("read users migration: %v", err)
	}
	if !strings.Contains(string(data), "UNIQUE (email)") {
		t.Fatalf("users.email must carry a unique constraint")
	}
}
