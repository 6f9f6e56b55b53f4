package config

import (
	"testing"
)

func TestDatabaseDriver(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "sqlite3", false},
		{"SQLite", "sqlite3", false},
		{"postgresql", "postgres", false},
		{"pgx", "pgx", false},
		{"mysql", "", true},
	}
	for _, c := range cases {
		cfg := &Config{Database: DatabaseConfig{Driver: c.in}}
		got, err := cfg.DatabaseDriver()
		if (err != nil) != c.wantErr || got != c.want {
			t.Errorf("DatabaseDriver(%q) = (%q, %v), want %q", c.in, got, err, c.want)
		}
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5433,
		Name:     "learn",
		User:     "u",
		Password: "p",
		SSLMode:  "disable",
	}}
	got, err := cfg.DatabaseURL()
	if err != nil {
		t.Fatalf("DatabaseURL: %v", err)
	}
	if want := "postgres://u:p@db:5433/learn?sslmode=disable"; got != want {
		t.Errorf("DatabaseURL() = %q, want %q", got, want)
	}

	cfg = &Config{Database: DatabaseConfig{Driver: "sqlite3", Name: "learn"}}
	if got, _ := cfg.DatabaseURL(); got != "file:learn.db?cache=shared&_busy_timeout=5000&_fk=1" {
		t.Errorf("unexpected sqlite dsn %q", got)
	}

	cfg = &Config{Database: DatabaseConfig{Driver: "mysql", DSN: " custom "}}
	if got, err := cfg.DatabaseURL(); err != nil || got != "custom" {
		t.Errorf("explicit dsn = (%q, %v)", got, err)
	}
}

func TestContentSource(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", ContentSourceDatabase, false},
		{"FILE", ContentSourceFile, false},
		{" database ", ContentSourceDatabase, false},
		{"s3", "", true},
	}
	for _, c := range cases {
		cfg := &Config{Content: ContentConfig{Source: c.in}}
		got, err := cfg.ContentSource()
		if (err != nil) != c.wantErr || got != c.want {
			t.Errorf("ContentSource(%q) = (%q, %v), want %q", c.in, got, err, c.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONTENT_SOURCE", "file")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != 8080 || cfg.Log.Level != "info" || cfg.Content.KeywordCount != 3 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Content.Source != "file" {
		t.Errorf("env override ignored: %q", cfg.Content.Source)
	}
}
