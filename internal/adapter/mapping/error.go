package mapping

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/pkg/filterexpr"
)

// ToConnectError maps domain errors onto Connect status codes. Errors that
// already carry a Connect code pass through unchanged.
func ToConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, entity.ErrInvalidLessonID),
		errors.Is(err, entity.ErrInvalidLessonTitle),
		errors.Is(err, entity.ErrInvalidContentBlock),
		errors.Is(err, entity.ErrDuplicateContentBlock),
		errors.Is(err, filterexpr.ErrInvalidExpression):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, entity.ErrLessonNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, entity.ErrReadOnlyStore):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
