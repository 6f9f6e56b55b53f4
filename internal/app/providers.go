package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/learnmode/internal/adapter/repository"
	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/infrastructure/config"
	"github.com/eslsoft/learnmode/internal/infrastructure/database"
	repo "github.com/eslsoft/learnmode/internal/repository"
	"github.com/eslsoft/learnmode/internal/usecase/modeadapter"
)

// ProvideLessonRepository opens the lesson store selected by content.source.
// The database store is migrated before use.
func ProvideLessonRepository(cfg *config.Config, log *logrus.Logger) (repo.LessonRepository, func(), error) {
	source, err := cfg.ContentSource()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", entity.ErrUnsupportedContentType, err)
	}

	if source == config.ContentSourceFile {
		files, err := repository.NewFileLessonRepository(cfg.Content.Dir, log)
		if err != nil {
			return nil, nil, fmt.Errorf("load lesson files: %w", err)
		}
		return files, func() {}, nil
	}

	drv, cleanup, err := database.NewDriver(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(context.Background(), drv); err != nil {
		cleanup()
		return nil, nil, err
	}
	return repository.NewSQLLessonRepository(drv), cleanup, nil
}

// ProvideModeAdapter builds the mode adapter from content settings.
func ProvideModeAdapter(cfg *config.Config, log *logrus.Logger) *modeadapter.Adapter {
	return modeadapter.New(
		modeadapter.WithConfig(modeadapter.Config{
			KeywordCount:    cfg.Content.KeywordCount,
			DistractorCount: cfg.Content.DistractorCount,
		}),
		modeadapter.WithLogger(log),
	)
}
