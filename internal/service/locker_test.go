package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/court_booking/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	locker := service.NewLocalLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, 1)
	require.NoError(t, err)

	// другая площадка не ждёт
	unlockOther, err := locker.Lock(ctx, 2)
	require.NoError(t, err)
	unlockOther()

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()

	again, err := locker.Lock(ctx, 1)
	require.NoError(t, err)
	again()
}
