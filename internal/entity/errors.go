package entity

import (
	"errors"
	"fmt"
)

// Domain errors for lessons and learning content.
var (
	ErrLessonNotFound         = errors.New("lesson not found")
	ErrInvalidLessonID        = errors.New("invalid lesson ID")
	ErrInvalidLessonTitle     = errors.New("invalid lesson title")
	ErrInvalidContentBlock    = errors.New("content block id required")
	ErrDuplicateContentBlock  = errors.New("duplicate content block id")
	ErrReadOnlyStore          = errors.New("lesson store is read-only")
	ErrUnsupportedBackup      = errors.New("unsupported backup format")
	ErrUnsupportedContentType = errors.New("unsupported content source")
)

// LearningContentError is the single error type returned when a learning
// content request fails, whatever the underlying cause.
type LearningContentError struct {
	LessonID string
	Err      error
}

func (e *LearningContentError) Error() string {
	if e.Err == nil {
		return "无法获取学习内容"
	}
	return fmt.Sprintf("无法获取学习内容: %v", e.Err)
}

func (e *LearningContentError) Unwrap() error { return e.Err }
