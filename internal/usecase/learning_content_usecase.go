package usecase

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/repository"
	"github.com/eslsoft/learnmode/internal/usecase/modeadapter"
)

// LearningContentUsecase reshapes lesson content into learning-mode exercises.
type LearningContentUsecase interface {
	GetLearningContent(ctx context.Context, lessonID string, mode entity.Mode) (*entity.LearningContent, error)
	GetModeContent(ctx context.Context, lessonID string, mode entity.Mode, opts ModeContentOptions) (*entity.ModeContentResponse, error)
}

// ModeContentOptions tunes a mode content request.
type ModeContentOptions struct {
	// UserLevel keeps only items whose sentence suits the level. Empty keeps everything.
	UserLevel entity.Level
	// FocusAreas and UserPreferences are recorded but do not change the result.
	FocusAreas      []string
	UserPreferences map[string]string
	// Limit caps the number of items; zero or negative means no cap.
	Limit int
	// SkipIDs removes items the learner has already seen.
	SkipIDs []string
}

// NewLearningContentUsecase wires the lesson provider with the mode adapter.
func NewLearningContentUsecase(provider repository.LessonContentProvider, adapter *modeadapter.Adapter, log logrus.FieldLogger) LearningContentUsecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if adapter == nil {
		adapter = modeadapter.New(modeadapter.WithLogger(log))
	}
	return &learningContentUsecase{provider: provider, adapter: adapter, log: log}
}

type learningContentUsecase struct {
	provider repository.LessonContentProvider
	adapter  *modeadapter.Adapter
	log      logrus.FieldLogger
}

func (u *learningContentUsecase) GetLearningContent(ctx context.Context, lessonID string, mode entity.Mode) (*entity.LearningContent, error) {
	content, _, err := u.load(ctx, lessonID, mode)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (u *learningContentUsecase) GetModeContent(ctx context.Context, lessonID string, mode entity.Mode, opts ModeContentOptions) (*entity.ModeContentResponse, error) {
	content, pairs, err := u.load(ctx, lessonID, mode)
	if err != nil {
		return nil, err
	}

	if len(opts.FocusAreas) > 0 || len(opts.UserPreferences) > 0 {
		u.log.WithFields(logrus.Fields{
			"lesson_id":        lessonID,
			"focus_areas":      opts.FocusAreas,
			"user_preferences": opts.UserPreferences,
		}).Debug("mode content preferences received")
	}

	items := content.ContentItems
	if opts.UserLevel != entity.LevelUnspecified {
		suited := lo.Associate(modeadapter.Classify(pairs, opts.UserLevel), func(p entity.SentencePair) (string, struct{}) {
			return p.ID, struct{}{}
		})
		items = lo.Filter(items, func(item entity.ModeContentItem, _ int) bool {
			_, ok := suited[item.ID]
			return ok
		})
	}
	if len(opts.SkipIDs) > 0 {
		skip := lo.Associate(opts.SkipIDs, func(id string) (string, struct{}) {
			return strings.TrimSpace(id), struct{}{}
		})
		items = lo.Filter(items, func(item entity.ModeContentItem, _ int) bool {
			_, skipped := skip[item.ID]
			return !skipped
		})
	}
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	content.ContentItems = items

	return &entity.ModeContentResponse{
		LearningContent: *content,
		Metadata: entity.ModeContentMetadata{
			TotalItems:           len(items),
			Difficulty:           opts.UserLevel,
			EstimatedTimeMinutes: EstimateMinutes(len(items)),
			Tags:                 []string{},
		},
	}, nil
}

// EstimateMinutes budgets half a minute per item, rounded up.
func EstimateMinutes(items int) int {
	return (items + 1) / 2
}

// load fetches the lesson and runs extraction and formatting. Every failure
// is logged and returned as *entity.LearningContentError.
func (u *learningContentUsecase) load(ctx context.Context, lessonID string, mode entity.Mode) (*entity.LearningContent, []entity.SentencePair, error) {
	lessonID = strings.TrimSpace(lessonID)
	mode = entity.ParseMode(string(mode))
	fields := logrus.Fields{"lesson_id": lessonID, "mode": string(mode)}

	fail := func(err error) error {
		u.log.WithFields(fields).WithError(err).Error("load learning content failed")
		return &entity.LearningContentError{LessonID: lessonID, Err: err}
	}

	if lessonID == "" {
		return nil, nil, fail(entity.ErrInvalidLessonID)
	}
	lesson, err := u.provider.FetchLessonContent(ctx, lessonID)
	if err != nil {
		return nil, nil, fail(err)
	}
	if lesson == nil {
		return nil, nil, fail(entity.ErrLessonNotFound)
	}

	blocks := sourceBlocks(lesson)
	pairs := u.adapter.Extract(blocks)
	origins := modeadapter.BuildBlockOrigins(blocks)
	items := u.adapter.FormatForMode(mode, pairs, origins)

	u.log.WithFields(fields).WithField("items", len(items)).Debug("learning content built")
	return &entity.LearningContent{
		LessonID:     lesson.ID,
		Mode:         mode,
		Title:        lesson.Title,
		Description:  lesson.Description,
		ContentItems: items,
	}, pairs, nil
}

// sourceBlocks returns the lesson's blocks, or a single sentences block named
// after the lesson when it only carries stored pairs.
func sourceBlocks(lesson *entity.Lesson) []entity.ContentBlock {
	if len(lesson.ContentBlocks) > 0 || len(lesson.SentencePairs) == 0 {
		return lesson.ContentBlocks
	}
	return []entity.ContentBlock{{
		ID:   lesson.ID,
		Body: entity.SentencesBlock{Pairs: lesson.SentencePairs},
	}}
}
