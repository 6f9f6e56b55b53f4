package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/infrastructure/config"
	"github.com/eslsoft/learnmode/internal/repository"
)

const lessonYAML = `id: greetings
title: Greetings
contentBlocks:
  - id: p1
    type: paragraph
    content:
      english: Hello there.
      chinese: 你好。
`

func TestProvideLessonRepository_File(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greetings.yaml"), []byte(lessonYAML), 0o600); err != nil {
		t.Fatalf("write lesson: %v", err)
	}
	log, _ := logtest.NewNullLogger()
	cfg := &config.Config{Content: config.ContentConfig{Source: "file", Dir: dir}}

	repo, cleanup, err := ProvideLessonRepository(cfg, log)
	if err != nil {
		t.Fatalf("ProvideLessonRepository: %v", err)
	}
	defer cleanup()

	lesson, err := repo.FetchLessonContent(context.Background(), "greetings")
	if err != nil {
		t.Fatalf("FetchLessonContent: %v", err)
	}
	if lesson.Title != "Greetings" || len(lesson.ContentBlocks) != 1 {
		t.Errorf("unexpected lesson %+v", lesson)
	}
	if _, err := repo.Upsert(context.Background(), lesson); !errors.Is(err, entity.ErrReadOnlyStore) {
		t.Errorf("expected read-only store, got %v", err)
	}
}

func TestProvideLessonRepository_Database(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite3", DSN: "file:app_providers?mode=memory&cache=shared&_fk=1"},
		Content:  config.ContentConfig{Source: "database"},
	}

	repo, cleanup, err := ProvideLessonRepository(cfg, log)
	if err != nil {
		t.Fatalf("ProvideLessonRepository: %v", err)
	}
	defer cleanup()

	_, total, err := repo.List(context.Background(), &repository.ListLessonQuery{
		Pagination: repository.Pagination{PageNo: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("List on migrated store: %v", err)
	}
	if total != 0 {
		t.Errorf("expected empty store, got %d", total)
	}
}

func TestProvideLessonRepository_UnknownSource(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	cfg := &config.Config{Content: config.ContentConfig{Source: "s3"}}
	if _, _, err := ProvideLessonRepository(cfg, log); !errors.Is(err, entity.ErrUnsupportedContentType) {
		t.Fatalf("expected unsupported content source, got %v", err)
	}
}
