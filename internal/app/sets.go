package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/learnmode/internal/adapter/connectrpc"
	"github.com/eslsoft/learnmode/internal/infrastructure/config"
	"github.com/eslsoft/learnmode/internal/infrastructure/server"
	"github.com/eslsoft/learnmode/internal/repository"
	"github.com/eslsoft/learnmode/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var repositorySet = wire.NewSet(
	ProvideLessonRepository,
	wire.Bind(new(repository.LessonContentProvider), new(repository.LessonRepository)),
)

var usecaseSet = wire.NewSet(
	ProvideModeAdapter,
	usecase.NewLearningContentUsecase,
	usecase.NewLessonUsecase,
)

var serviceSet = wire.NewSet(
	connectrpc.NewLearningContentServiceServer,
	wire.Bind(new(connectrpc.LearningContentServiceHandler), new(*connectrpc.LearningContentServiceServer)),
)

var serverSet = wire.NewSet(
	server.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
	server.NewServer,
)
