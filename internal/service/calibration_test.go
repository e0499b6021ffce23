package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/errors"
	"github.com/myscribe/myscribe-server/internal/texts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalibration(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.PutUser(ctx, domain.NewUser("user-1", "Reader")))

	svc := NewCalibrationService(st, slog.New(slog.DiscardHandler))

	now := time.Now()
	svc.now = func() time.Time { return now }

	cal := svc.Start("user-1")
	assert.Equal(t, texts.CalibrationPassage, cal.Passage)
	assert.Equal(t, texts.CalibrationWordCount, cal.WordCount)
	assert.NotEmpty(t, cal.ID)

	// Finish after exactly two minutes of wall-clock time.
	svc.now = func() time.Time { return now.Add(2 * time.Minute) }

	wpm, err := svc.Finish(ctx, cal)
	require.NoError(t, err)
	assert.Equal(t, cal.WordCount/2, wpm)

	user, err := st.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, wpm, user.ReadingSpeed)
}

func TestCalibrationTooFast(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.PutUser(ctx, domain.NewUser("user-1", "Reader")))

	svc := NewCalibrationService(st, slog.New(slog.DiscardHandler))

	now := time.Now()
	svc.now = func() time.Time { return now }
	cal := svc.Start("user-1")
	svc.now = func() time.Time { return now.Add(200 * time.Millisecond) }

	_, err := svc.Finish(ctx, cal)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	// The stored speed is untouched.
	user, err := st.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReadingSpeedWPM, user.ReadingSpeed)
}

func TestCalibrationUnknownUser(t *testing.T) {
	st := setupTestStore(t)
	svc := NewCalibrationService(st, slog.New(slog.DiscardHandler))

	now := time.Now()
	svc.now = func() time.Time { return now }
	cal := svc.Start("user-missing")
	svc.now = func() time.Time { return now.Add(time.Minute) }

	_, err := svc.Finish(context.Background(), cal)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
