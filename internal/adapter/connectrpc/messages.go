package connectrpc

import (
	"github.com/eslsoft/learnmode/internal/entity"
)

type PaginationRequest struct {
	PageNo   int32 `json:"pageNo"`
	PageSize int32 `json:"pageSize"`
}

type PaginationResponse struct {
	Total    int32 `json:"total"`
	PageNo   int32 `json:"pageNo"`
	PageSize int32 `json:"pageSize"`
}

type GetLearningContentRequest struct {
	LessonID string `json:"lessonId"`
	Mode     string `json:"mode"`
}

type GetModeContentRequest struct {
	LessonID        string            `json:"lessonId"`
	Mode            string            `json:"mode"`
	UserLevel       string            `json:"userLevel,omitempty"`
	FocusAreas      []string          `json:"focusAreas,omitempty"`
	UserPreferences map[string]string `json:"userPreferences,omitempty"`
	Limit           int32             `json:"limit,omitempty"`
	SkipIDs         []string          `json:"skipIds,omitempty"`
}

type ListLessonsRequest struct {
	Pagination *PaginationRequest `json:"pagination,omitempty"`
	Filter     string             `json:"filter,omitempty"`
	OrderBy    string             `json:"orderBy,omitempty"`
}

type ListLessonsResponse struct {
	Lessons    []entity.LessonSummary `json:"lessons"`
	Pagination PaginationResponse     `json:"pagination"`
}

type LessonIDRequest struct {
	ID string `json:"id"`
}

type SaveLessonRequest struct {
	Lesson *entity.Lesson `json:"lesson"`
}

type Empty struct{}
