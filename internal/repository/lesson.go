package repository

import (
	"context"

	"github.com/eslsoft/learnmode/internal/entity"
)

// ListLessonQuery holds parameters for listing lessons.
type ListLessonQuery struct {
	Pagination
	FilterOrder
}

// LessonContentProvider is the read side the learning content pipeline depends on.
type LessonContentProvider interface {
	// FetchLessonContent returns the lesson with its content blocks, or
	// entity.ErrLessonNotFound.
	FetchLessonContent(ctx context.Context, id string) (*entity.Lesson, error)
}

// LessonRepository abstracts lesson persistence to keep usecases storage agnostic.
type LessonRepository interface {
	LessonContentProvider
	List(ctx context.Context, query *ListLessonQuery) ([]entity.LessonSummary, int64, error)
	Upsert(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
	Delete(ctx context.Context, id string) error
}
