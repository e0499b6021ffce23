package domain

import "time"

// DefaultReadingSpeedWPM is the words-per-minute assumed for users who
// have never run the reading-speed calibration.
const DefaultReadingSpeedWPM = 300

// User represents a tracked reader.
// ID is assigned by the messaging platform and is immutable.
type User struct {
	ID           string    `json:"id" validate:"required"`
	DisplayName  string    `json:"display_name"`
	ReadingSpeed int       `json:"reading_speed" validate:"gt=0"` // WPM
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// NewUser creates a user profile with the default reading speed.
func NewUser(id, displayName string) *User {
	return &User{
		ID:           id,
		DisplayName:  displayName,
		ReadingSpeed: DefaultReadingSpeedWPM,
		CreatedAt:    time.Now(),
	}
}

// SpeedOrDefault returns the user's reading speed, falling back to the
// system average when the stored value is unusable.
func (u *User) SpeedOrDefault() int {
	if u == nil || u.ReadingSpeed <= 0 {
		return DefaultReadingSpeedWPM
	}
	return u.ReadingSpeed
}
