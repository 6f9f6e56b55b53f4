package connectrpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eslsoft/learnmode/internal/entity"
)

// LearningContentServiceName is the fully-qualified name of the service.
const LearningContentServiceName = "learnmode.v1.LearningContentService"

const (
	GetLearningContentProcedure = "/" + LearningContentServiceName + "/GetLearningContent"
	GetModeContentProcedure     = "/" + LearningContentServiceName + "/GetModeContent"
	ListLessonsProcedure        = "/" + LearningContentServiceName + "/ListLessons"
	GetLessonProcedure          = "/" + LearningContentServiceName + "/GetLesson"
	SaveLessonProcedure         = "/" + LearningContentServiceName + "/SaveLesson"
	DeleteLessonProcedure       = "/" + LearningContentServiceName + "/DeleteLesson"
)

// LearningContentServiceHandler serves learning content and the lesson catalog.
type LearningContentServiceHandler interface {
	GetLearningContent(context.Context, *connect.Request[GetLearningContentRequest]) (*connect.Response[entity.LearningContent], error)
	GetModeContent(context.Context, *connect.Request[GetModeContentRequest]) (*connect.Response[entity.ModeContentResponse], error)
	ListLessons(context.Context, *connect.Request[ListLessonsRequest]) (*connect.Response[ListLessonsResponse], error)
	GetLesson(context.Context, *connect.Request[LessonIDRequest]) (*connect.Response[entity.Lesson], error)
	SaveLesson(context.Context, *connect.Request[SaveLessonRequest]) (*connect.Response[entity.Lesson], error)
	DeleteLesson(context.Context, *connect.Request[LessonIDRequest]) (*connect.Response[Empty], error)
}

// NewLearningContentServiceHandler builds an HTTP handler for every procedure
// of the service. It returns the path to mount it on.
func NewLearningContentServiceHandler(svc LearningContentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	readOpts := append(opts[:len(opts):len(opts)], connect.WithIdempotency(connect.IdempotencyNoSideEffects))
	handlers := map[string]http.Handler{
		GetLearningContentProcedure: connect.NewUnaryHandler(GetLearningContentProcedure, svc.GetLearningContent, readOpts...),
		GetModeContentProcedure:     connect.NewUnaryHandler(GetModeContentProcedure, svc.GetModeContent, readOpts...),
		ListLessonsProcedure:        connect.NewUnaryHandler(ListLessonsProcedure, svc.ListLessons, readOpts...),
		GetLessonProcedure:          connect.NewUnaryHandler(GetLessonProcedure, svc.GetLesson, readOpts...),
		SaveLessonProcedure:         connect.NewUnaryHandler(SaveLessonProcedure, svc.SaveLesson, opts...),
		DeleteLessonProcedure:       connect.NewUnaryHandler(DeleteLessonProcedure, svc.DeleteLesson, opts...),
	}
	return "/" + LearningContentServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
