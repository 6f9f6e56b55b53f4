package usecase

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/repository"
)

type fakeLessonRepo struct {
	mu        sync.RWMutex
	items     map[string]*entity.Lesson
	fetchErr  error
	lastQuery *repository.ListLessonQuery
}

func newFakeLessonRepo(lessons ...*entity.Lesson) *fakeLessonRepo {
	r := &fakeLessonRepo{items: make(map[string]*entity.Lesson)}
	for _, l := range lessons {
		r.items[l.ID] = cloneLesson(l)
	}
	return r
}

func cloneLesson(l *entity.Lesson) *entity.Lesson {
	out := *l
	out.ContentBlocks = slices.Clone(l.ContentBlocks)
	out.SentencePairs = slices.Clone(l.SentencePairs)
	out.Tags = slices.Clone(l.Tags)
	return &out
}

func (r *fakeLessonRepo) FetchLessonContent(ctx context.Context, id string) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.items[id]
	if !ok {
		return nil, entity.ErrLessonNotFound
	}
	return cloneLesson(l), nil
}

func (r *fakeLessonRepo) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.LessonSummary, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	q := *query
	r.lastQuery = &q

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]entity.LessonSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id].Summary())
	}
	return out, int64(len(out)), nil
}

func (r *fakeLessonRepo) Upsert(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneLesson(lesson)
	if existing, ok := r.items[lesson.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	r.items[lesson.ID] = stored
	return cloneLesson(stored), nil
}

func (r *fakeLessonRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entity.ErrLessonNotFound
	}
	delete(r.items, id)
	return nil
}

func newTestLessonUsecase(repo repository.LessonRepository, now time.Time) LessonUsecase {
	return &lessonUsecase{repo: repo, clock: func() time.Time { return now }}
}

func TestLessonUsecase_SaveNormalizesAndValidates(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeLessonRepo()
	uc := newTestLessonUsecase(repo, now)

	saved, err := uc.Save(context.Background(), &entity.Lesson{ID: "  l1 ", Title: " Greetings "})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.ID != "l1" || saved.Title != "Greetings" {
		t.Errorf("expected trimmed id and title, got %q %q", saved.ID, saved.Title)
	}
	if !saved.CreatedAt.Equal(now) || !saved.UpdatedAt.Equal(now) {
		t.Errorf("expected timestamps to be set, got %v %v", saved.CreatedAt, saved.UpdatedAt)
	}
	if saved.ContentBlocks == nil || saved.Tags == nil {
		t.Errorf("expected empty slices instead of nil")
	}
}

func TestLessonUsecase_SaveRejectsInvalid(t *testing.T) {
	uc := newTestLessonUsecase(newFakeLessonRepo(), time.Now())
	tests := []struct {
		name   string
		lesson *entity.Lesson
		want   error
	}{
		{name: "nil", lesson: nil, want: entity.ErrInvalidLessonID},
		{name: "missing id", lesson: &entity.Lesson{Title: "x"}, want: entity.ErrInvalidLessonID},
		{name: "missing title", lesson: &entity.Lesson{ID: "x"}, want: entity.ErrInvalidLessonTitle},
		{
			name: "block without id",
			lesson: &entity.Lesson{ID: "x", Title: "x", ContentBlocks: []entity.ContentBlock{
				{Body: entity.HeadingBlock{Text: "h"}},
			}},
			want: entity.ErrInvalidContentBlock,
		},
		{
			name: "duplicate block id",
			lesson: &entity.Lesson{ID: "x", Title: "x", ContentBlocks: []entity.ContentBlock{
				{ID: "b", Body: entity.HeadingBlock{Text: "h"}},
				{ID: "b", Body: entity.ParagraphBlock{English: "a", Chinese: "甲"}},
			}},
			want: entity.ErrDuplicateContentBlock,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Save(context.Background(), tt.lesson); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLessonUsecase_ListNormalizesPagination(t *testing.T) {
	repo := newFakeLessonRepo(&entity.Lesson{ID: "a", Title: "A"})
	uc := newTestLessonUsecase(repo, time.Now())

	if _, _, err := uc.List(context.Background(), &repository.ListLessonQuery{
		Pagination: repository.Pagination{PageNo: 0, PageSize: 50000},
	}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastQuery.PageNo != 1 || repo.lastQuery.PageSize != _maxLimit {
		t.Errorf("unexpected pagination passed to repo: %+v", repo.lastQuery.Pagination)
	}

	if _, _, err := uc.List(context.Background(), nil); err != nil {
		t.Fatalf("List(nil) returned error: %v", err)
	}
	if repo.lastQuery.PageSize != _defaultLimit {
		t.Errorf("expected default page size, got %d", repo.lastQuery.PageSize)
	}
}

func TestLessonUsecase_GetAndDeleteRequireID(t *testing.T) {
	uc := newTestLessonUsecase(newFakeLessonRepo(), time.Now())
	if _, err := uc.Get(context.Background(), " "); !errors.Is(err, entity.ErrInvalidLessonID) {
		t.Errorf("Get: expected ErrInvalidLessonID, got %v", err)
	}
	if err := uc.Delete(context.Background(), ""); !errors.Is(err, entity.ErrInvalidLessonID) {
		t.Errorf("Delete: expected ErrInvalidLessonID, got %v", err)
	}
	if err := uc.Delete(context.Background(), "missing"); !errors.Is(err, entity.ErrLessonNotFound) {
		t.Errorf("Delete: expected ErrLessonNotFound, got %v", err)
	}
}
