package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourtOf(t *testing.T) {
	id, err := CourtOf([]*model.Reservation{
		reservation(4, datetime(2024, 1, 1, 19, 0), 60),
		reservation(4, datetime(2024, 1, 8, 19, 0), 60),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	_, err = CourtOf(nil)
	assert.ErrorIs(t, err, ErrMissingCourtReference)

	_, err = CourtOf([]*model.Reservation{reservation(0, datetime(2024, 1, 1, 19, 0), 60)})
	assert.ErrorIs(t, err, ErrMissingCourtReference)

	_, err = CourtOf([]*model.Reservation{
		reservation(1, datetime(2024, 1, 1, 19, 0), 60),
		reservation(2, datetime(2024, 1, 8, 19, 0), 60),
	})
	assert.ErrorIs(t, err, ErrMissingCourtReference)
}

func TestSpan(t *testing.T) {
	from, to := Span([]*model.Reservation{
		reservation(1, datetime(2024, 1, 8, 19, 0), 60),
		reservation(1, datetime(2024, 1, 1, 19, 0), 60),
		reservation(1, datetime(2024, 1, 15, 23, 30), 60),
	})
	assert.Equal(t, date(2024, 1, 1), from)
	assert.Equal(t, date(2024, 1, 17), to)
}

func TestFindConflicts(t *testing.T) {
	proposed := []*model.Reservation{
		reservation(1, datetime(2024, 1, 1, 19, 0), 60),
		reservation(1, datetime(2024, 1, 8, 19, 0), 60),
		reservation(1, datetime(2024, 1, 15, 19, 0), 60),
		reservation(1, datetime(2024, 1, 22, 19, 0), 60),
	}

	t.Run("no existing", func(t *testing.T) {
		assert.Empty(t, FindConflicts(proposed, nil))
	})

	t.Run("one collision", func(t *testing.T) {
		existing := []*model.Reservation{
			reservation(1, datetime(2024, 1, 15, 19, 30), 60),
			reservation(1, datetime(2024, 1, 8, 20, 0), 60),
			reservation(2, datetime(2024, 1, 22, 19, 0), 60),
		}
		assert.Equal(t, []time.Time{datetime(2024, 1, 15, 19, 0)}, FindConflicts(proposed, existing))
	})

	t.Run("each proposal reported once", func(t *testing.T) {
		existing := []*model.Reservation{
			reservation(1, datetime(2024, 1, 1, 18, 30), 60),
			reservation(1, datetime(2024, 1, 1, 19, 30), 60),
		}
		assert.Equal(t, []time.Time{datetime(2024, 1, 1, 19, 0)}, FindConflicts(proposed, existing))
	})
}

func TestConflictError(t *testing.T) {
	err := error(&ConflictError{Starts: []time.Time{datetime(2024, 1, 15, 19, 0)}})

	assert.ErrorIs(t, err, ErrConflictDetected)
	assert.Contains(t, err.Error(), "2024-01-15 19:00")

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Len(t, ce.Starts, 1)
}

func TestPersistence(t *testing.T) {
	cause := errors.New("connection reset")
	err := Persistence("insert reservation", cause)

	assert.ErrorIs(t, err, ErrPersistenceFailure)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Persistence("noop", nil))

	// уже классифицированные ошибки не оборачиваются повторно
	assert.Same(t, err, Persistence("outer", err))
	conflict := &ConflictError{}
	assert.Same(t, error(conflict), Persistence("outer", conflict))
}
