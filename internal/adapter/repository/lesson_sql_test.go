package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/infrastructure/database"
	"github.com/eslsoft/learnmode/internal/repository"
)

func newSQLiteLessonRepo(t *testing.T) *SQLLessonRepository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)
	drv, cleanup, err := database.Open(database.DriverSQLite, dsn, false, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(cleanup)
	if err := database.Migrate(context.Background(), drv); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSQLLessonRepository(drv)
}

func testLesson(id, title string, level entity.Level, created time.Time) *entity.Lesson {
	l := &entity.Lesson{
		ID:          id,
		Title:       title,
		Description: "Lesson " + title,
		Level:       level,
		Tags:        []string{"daily"},
		ContentBlocks: []entity.ContentBlock{
			{ID: id + "-h", Order: 0, Body: entity.HeadingBlock{Text: title, Level: 1}},
			{ID: id + "-p", Order: 1, Body: entity.ParagraphBlock{English: "Hello there.", Chinese: "你好。"}},
			{ID: id + "-d", Order: 2, Body: entity.DialogBlock{
				Speakers: []entity.Speaker{{ID: "a", Name: "Anna"}},
				Lines:    []entity.DialogLine{{SpeakerID: "a", English: "How are you?", Chinese: "你好吗？"}},
			}},
		},
		CreatedAt: created,
	}
	l.Normalize(created)
	return l
}

func TestSQLLessonRepository_UpsertAndFetch(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteLessonRepo(t)
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	lesson := testLesson("greetings", "Greetings", entity.LevelBeginner, created)

	saved, err := repo.Upsert(ctx, lesson)
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if diff := cmp.Diff(lesson, saved); diff != "" {
		t.Fatalf("saved lesson mismatch (-want +got):\n%s", diff)
	}

	fetched, err := repo.FetchLessonContent(ctx, "greetings")
	if err != nil {
		t.Fatalf("FetchLessonContent returned error: %v", err)
	}
	if diff := cmp.Diff(lesson, fetched); diff != "" {
		t.Fatalf("fetched lesson mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLLessonRepository_UpsertKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteLessonRepo(t)
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	if _, err := repo.Upsert(ctx, testLesson("l1", "First", entity.LevelBeginner, created)); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	later := created.Add(48 * time.Hour)
	update := testLesson("l1", "First (revised)", entity.LevelIntermediate, later)
	saved, err := repo.Upsert(ctx, update)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !saved.CreatedAt.Equal(created) {
		t.Errorf("created_at changed: got %v want %v", saved.CreatedAt, created)
	}
	if !saved.UpdatedAt.Equal(later) {
		t.Errorf("updated_at not refreshed: got %v want %v", saved.UpdatedAt, later)
	}
	if saved.Title != "First (revised)" || saved.Level != entity.LevelIntermediate {
		t.Errorf("lesson not updated: %+v", saved.Summary())
	}
}

func TestSQLLessonRepository_FetchMissing(t *testing.T) {
	repo := newSQLiteLessonRepo(t)
	_, err := repo.FetchLessonContent(context.Background(), "nope")
	if !errors.Is(err, entity.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func seedLessons(t *testing.T, repo repository.LessonRepository) {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, l := range []*entity.Lesson{
		testLesson("a", "Airport", entity.LevelBeginner, base),
		testLesson("b", "Bank", entity.LevelIntermediate, base.Add(time.Hour)),
		testLesson("c", "Cafe", entity.LevelBeginner, base.Add(2*time.Hour)),
		testLesson("d", "Debate", entity.LevelAdvanced, base.Add(3*time.Hour)),
	} {
		if _, err := repo.Upsert(context.Background(), l); err != nil {
			t.Fatalf("seed lesson %d: %v", i, err)
		}
	}
}

func summaryIDs(items []entity.LessonSummary) []string {
	ids := make([]string, 0, len(items))
	for _, s := range items {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSQLLessonRepository_List(t *testing.T) {
	repo := newSQLiteLessonRepo(t)
	seedLessons(t, repo)
	runListCases(t, repo)
}

// runListCases is shared by every LessonRepository implementation.
func runListCases(t *testing.T, repo repository.LessonRepository) {
	t.Helper()
	tests := []struct {
		name    string
		query   repository.ListLessonQuery
		want    []string
		total   int64
		wantErr bool
	}{
		{
			name:  "default order is newest first",
			query: repository.ListLessonQuery{Pagination: repository.Pagination{PageNo: 1, PageSize: 10}},
			want:  []string{"d", "c", "b", "a"},
			total: 4,
		},
		{
			name: "level equality",
			query: repository.ListLessonQuery{
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 10},
				FilterOrder: repository.FilterOrder{Filter: "level == 'beginner'", OrderBy: "title"},
			},
			want:  []string{"a", "c"},
			total: 2,
		},
		{
			name: "level in list",
			query: repository.ListLessonQuery{
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 10},
				FilterOrder: repository.FilterOrder{Filter: "level in ['advanced', 'intermediate']", OrderBy: "id asc"},
			},
			want:  []string{"b", "d"},
			total: 2,
		},
		{
			name: "title prefix",
			query: repository.ListLessonQuery{
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 10},
				FilterOrder: repository.FilterOrder{Filter: "title.startsWith('Ba')"},
			},
			want:  []string{"b"},
			total: 1,
		},
		{
			name: "created range",
			query: repository.ListLessonQuery{
				Pagination: repository.Pagination{PageNo: 1, PageSize: 10},
				FilterOrder: repository.FilterOrder{
					Filter:  "created_at >= timestamp('2025-01-01T01:00:00Z') && created_at <= timestamp('2025-01-01T02:00:00Z')",
					OrderBy: "created_at asc",
				},
			},
			want:  []string{"b", "c"},
			total: 2,
		},
		{
			name: "pagination",
			query: repository.ListLessonQuery{
				Pagination:  repository.Pagination{PageNo: 2, PageSize: 3},
				FilterOrder: repository.FilterOrder{OrderBy: "title desc"},
			},
			want:  []string{"a"},
			total: 4,
		},
		{
			name: "unknown filter field",
			query: repository.ListLessonQuery{
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 10},
				FilterOrder: repository.FilterOrder{Filter: "author == 'x'"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(context.Background(), &tt.query)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if total != tt.total {
				t.Errorf("total = %d, want %d", total, tt.total)
			}
			if diff := cmp.Diff(tt.want, summaryIDs(items)); diff != "" {
				t.Errorf("unexpected lessons (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSQLLessonRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteLessonRepo(t)
	seedLessons(t, repo)

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FetchLessonContent(ctx, "a"); !errors.Is(err, entity.ErrLessonNotFound) {
		t.Fatalf("expected deleted lesson to be gone, got %v", err)
	}
	if err := repo.Delete(ctx, "a"); !errors.Is(err, entity.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound on second delete, got %v", err)
	}
}
