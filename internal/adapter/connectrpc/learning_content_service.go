package connectrpc

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"github.com/eslsoft/learnmode/internal/adapter/mapping"
	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/repository"
	"github.com/eslsoft/learnmode/internal/usecase"
)

var _ LearningContentServiceHandler = (*LearningContentServiceServer)(nil)

type LearningContentServiceServer struct {
	content usecase.LearningContentUsecase
	lessons usecase.LessonUsecase
}

func NewLearningContentServiceServer(content usecase.LearningContentUsecase, lessons usecase.LessonUsecase) *LearningContentServiceServer {
	return &LearningContentServiceServer{content: content, lessons: lessons}
}

func (s *LearningContentServiceServer) GetLearningContent(ctx context.Context, req *connect.Request[GetLearningContentRequest]) (*connect.Response[entity.LearningContent], error) {
	msg := req.Msg
	if msg == nil || strings.TrimSpace(msg.LessonID) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("lessonId required"))
	}

	result, err := s.content.GetLearningContent(ctx, msg.LessonID, entity.Mode(msg.Mode))
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(result), nil
}

func (s *LearningContentServiceServer) GetModeContent(ctx context.Context, req *connect.Request[GetModeContentRequest]) (*connect.Response[entity.ModeContentResponse], error) {
	msg := req.Msg
	if msg == nil || strings.TrimSpace(msg.LessonID) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("lessonId required"))
	}
	if msg.Limit < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("limit must not be negative"))
	}

	opts := usecase.ModeContentOptions{
		UserLevel:       entity.ParseLevel(msg.UserLevel),
		FocusAreas:      msg.FocusAreas,
		UserPreferences: msg.UserPreferences,
		Limit:           int(msg.Limit),
		SkipIDs:         lo.Filter(msg.SkipIDs, func(id string, _ int) bool { return strings.TrimSpace(id) != "" }),
	}
	result, err := s.content.GetModeContent(ctx, msg.LessonID, entity.Mode(msg.Mode), opts)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(result), nil
}

func (s *LearningContentServiceServer) ListLessons(ctx context.Context, req *connect.Request[ListLessonsRequest]) (*connect.Response[ListLessonsResponse], error) {
	msg := req.Msg
	if msg == nil {
		msg = &ListLessonsRequest{}
	}
	query := &repository.ListLessonQuery{
		Pagination: convertPagination(msg.Pagination),
		FilterOrder: repository.FilterOrder{
			Filter:  msg.Filter,
			OrderBy: msg.OrderBy,
		},
	}
	items, total, err := s.lessons.List(ctx, query)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}

	total32, err := safeInt32("total lessons", total)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &ListLessonsResponse{
		Lessons: items,
		Pagination: PaginationResponse{
			Total:    total32,
			PageNo:   query.PageNo,
			PageSize: query.PageSize,
		},
	}
	if resp.Lessons == nil {
		resp.Lessons = []entity.LessonSummary{}
	}
	return connect.NewResponse(resp), nil
}

func (s *LearningContentServiceServer) GetLesson(ctx context.Context, req *connect.Request[LessonIDRequest]) (*connect.Response[entity.Lesson], error) {
	if req.Msg == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id required"))
	}

	result, err := s.lessons.Get(ctx, req.Msg.ID)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(result), nil
}

func (s *LearningContentServiceServer) SaveLesson(ctx context.Context, req *connect.Request[SaveLessonRequest]) (*connect.Response[entity.Lesson], error) {
	if req.Msg == nil || req.Msg.Lesson == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("lesson payload required"))
	}

	result, err := s.lessons.Save(ctx, req.Msg.Lesson)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(result), nil
}

func (s *LearningContentServiceServer) DeleteLesson(ctx context.Context, req *connect.Request[LessonIDRequest]) (*connect.Response[Empty], error) {
	if req.Msg == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id required"))
	}

	if err := s.lessons.Delete(ctx, req.Msg.ID); err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&Empty{}), nil
}
