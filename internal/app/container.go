package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/learnmode/internal/infrastructure/server"
	"github.com/eslsoft/learnmode/internal/repository"
	"github.com/eslsoft/learnmode/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger  *logrus.Logger
	Server  *server.Server
	Lessons repository.LessonRepository
	Content usecase.LearningContentUsecase
	Catalog usecase.LessonUsecase
}
