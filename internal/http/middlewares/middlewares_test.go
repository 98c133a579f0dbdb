package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
)

func TestMemoryLimiter_WindowResets(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return clock }
	ctx := context.Background()

	for range 2 {
		ok, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok, "keys are counted separately")

	clock = clock.Add(time.Minute + time.Second)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
}

func TestMemoryLimiter_DropsExpiredKeys(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, time.Minute)
	l.now = func() time.Time { return clock }
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		_, err := l.Allow(ctx, key)
		require.NoError(t, err)
	}
	assert.Len(t, l.buckets, 3)

	clock = clock.Add(2 * time.Minute)
	ok, err := l.Allow(ctx, "d")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "d")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, assert.AnError
}

func TestRateLimiter(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e := echo.New()

	mw := RateLimiter(NewMemoryLimiter(1, time.Minute), zaptest.NewLogger(t))(ok)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, mw(c))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.ErrorIs(t, mw(c), apperrors.ErrRateLimited)

	open := RateLimiter(failingLimiter{}, zaptest.NewLogger(t))(ok)
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NoError(t, open(c))
}
