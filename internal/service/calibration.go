package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/myscribe/myscribe-server/internal/errors"
	"github.com/myscribe/myscribe-server/internal/id"
	"github.com/myscribe/myscribe-server/internal/store"
	"github.com/myscribe/myscribe-server/internal/texts"
)

// CalibrationService measures a user's reading speed. The user reads a
// fixed passage against the wall clock; words over elapsed minutes gives
// their personal words-per-minute, which replaces the default estimate.
type CalibrationService struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewCalibrationService creates a calibration service.
func NewCalibrationService(st store.Store, logger *slog.Logger) *CalibrationService {
	return &CalibrationService{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Calibration is a running speed test.
type Calibration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Passage   string    `json:"passage"`
	WordCount int       `json:"word_count"`
	StartedAt time.Time `json:"started_at"`
}

// Start begins a calibration run. The clock starts now; the caller shows
// the passage to the user immediately.
func (s *CalibrationService) Start(userID string) *Calibration {
	return &Calibration{
		ID:        id.MustGenerate("cal"),
		UserID:    userID,
		Passage:   texts.CalibrationPassage,
		WordCount: texts.CalibrationWordCount,
		StartedAt: s.now(),
	}
}

// Finish stops the clock, computes the speed, and persists it. Returns
// the measured words per minute. Sub-second finishes are rejected as
// button mashing rather than reading.
func (s *CalibrationService) Finish(ctx context.Context, cal *Calibration) (int, error) {
	elapsed := s.now().Sub(cal.StartedAt)
	if elapsed < time.Second {
		return 0, errors.Validation("that was too fast to be a real read, try again")
	}

	minutes := elapsed.Minutes()
	wpm := int(float64(cal.WordCount) / minutes)
	if wpm <= 0 {
		return 0, errors.Validation("measured speed came out to zero, try again")
	}

	if err := s.store.UpdateReadingSpeed(ctx, cal.UserID, wpm); err != nil {
		return 0, err
	}

	s.logger.Info("calibrated reading speed",
		"user", cal.UserID,
		"wpm", wpm,
		"elapsed", elapsed.Round(time.Second),
	)
	return wpm, nil
}
