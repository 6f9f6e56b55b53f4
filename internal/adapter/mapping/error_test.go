package mapping

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/pkg/filterexpr"
)

func TestToConnectError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"not found", entity.ErrLessonNotFound, connect.CodeNotFound},
		{"wrapped not found", &entity.LearningContentError{LessonID: "x", Err: entity.ErrLessonNotFound}, connect.CodeNotFound},
		{"invalid id", &entity.LearningContentError{Err: entity.ErrInvalidLessonID}, connect.CodeInvalidArgument},
		{"invalid title", entity.ErrInvalidLessonTitle, connect.CodeInvalidArgument},
		{"duplicate block", fmt.Errorf("save: %w", entity.ErrDuplicateContentBlock), connect.CodeInvalidArgument},
		{"bad filter", fmt.Errorf("%w: filter: boom", filterexpr.ErrInvalidExpression), connect.CodeInvalidArgument},
		{"read only", entity.ErrReadOnlyStore, connect.CodeFailedPrecondition},
		{"canceled", context.Canceled, connect.CodeCanceled},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), connect.CodeDeadlineExceeded},
		{"unknown", errors.New("disk on fire"), connect.CodeInternal},
		{"already connect", connect.NewError(connect.CodeUnavailable, errors.New("later")), connect.CodeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToConnectError(tt.err)
			if code := connect.CodeOf(got); code != tt.want {
				t.Fatalf("code = %v, want %v", code, tt.want)
			}
			if !errors.Is(got, tt.err) && !errors.Is(got, errors.Unwrap(tt.err)) {
				t.Errorf("mapped error lost its cause: %v", got)
			}
		})
	}

	if ToConnectError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
