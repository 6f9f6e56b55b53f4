package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/repository"
)

// LessonUsecase manages the lesson catalog.
type LessonUsecase interface {
	Get(ctx context.Context, id string) (*entity.Lesson, error)
	List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.LessonSummary, int64, error)
	Save(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
	Delete(ctx context.Context, id string) error
}

const (
	_defaultLimit = int32(20)
	_maxLimit     = int32(10000)
)

// NewLessonUsecase wires the repository with default behaviour.
func NewLessonUsecase(repo repository.LessonRepository) LessonUsecase {
	return &lessonUsecase{
		repo:  repo,
		clock: time.Now,
	}
}

type lessonUsecase struct {
	repo  repository.LessonRepository
	clock func() time.Time
}

func (u *lessonUsecase) Get(ctx context.Context, id string) (*entity.Lesson, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, entity.ErrInvalidLessonID
	}
	return u.repo.FetchLessonContent(ctx, id)
}

func (u *lessonUsecase) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.LessonSummary, int64, error) {
	if query == nil {
		query = &repository.ListLessonQuery{}
	}
	q := *query
	if q.PageNo <= 0 {
		q.PageNo = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = _defaultLimit
	}
	if q.PageSize > _maxLimit {
		q.PageSize = _maxLimit
	}
	return u.repo.List(ctx, &q)
}

func (u *lessonUsecase) Save(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if lesson == nil {
		return nil, entity.ErrInvalidLessonID
	}
	out := *lesson
	out.Normalize(u.clock().UTC())
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return u.repo.Upsert(ctx, &out)
}

func (u *lessonUsecase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return entity.ErrInvalidLessonID
	}
	return u.repo.Delete(ctx, id)
}
