package apperrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAppErrors(t *testing.T) {
	t.Run(`validation error wrap check`, func(t *testing.T) {
		err := errors.Wrap(NewValidationError("stage", "этап %q не настроен", "Unknown"), "advance")
		require.True(t, IsValidation(err))
		require.False(t, IsNotFound(err))
		require.Contains(t, err.Error(), `stage: этап "Unknown" не настроен`)
	})

	t.Run(`transition error unwrap check`, func(t *testing.T) {
		cause := errors.New("disk full")
		err := error(&TransitionError{CandidateID: "c1", TargetStage: "Interview", Step: "create-tasks", Err: cause})
		require.True(t, IsTransition(err))
		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "этап кандидата не изменен")
	})

	t.Run(`sentinel errors check`, func(t *testing.T) {
		err := errors.Wrap(ErrCapacityExceeded, "session s1")
		require.ErrorIs(t, err, ErrCapacityExceeded)
		require.False(t, IsTransition(err))
	})
}
