package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadingStatus_Valid(t *testing.T) {
	assert.True(t, StatusReading.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusWishlist.Valid())
	assert.False(t, ReadingStatus("abandoned").Valid())
	assert.False(t, ReadingStatus("").Valid())
}

func TestStatusEntry_PagesReadOrZero(t *testing.T) {
	var nilEntry *StatusEntry
	assert.Equal(t, 0, nilEntry.PagesReadOrZero())

	entry := &StatusEntry{}
	assert.Equal(t, 0, entry.PagesReadOrZero())

	pages := 42
	entry.PagesRead = &pages
	assert.Equal(t, 42, entry.PagesReadOrZero())
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{300, "5 hours and 0 minutes"},
		{90.7, "1 hours and 30 minutes"},
		{59, "0 hours and 59 minutes"},
		{0, "0 hours and 0 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.minutes))
		})
	}
}

func TestUser_SpeedOrDefault(t *testing.T) {
	var nilUser *User
	assert.Equal(t, DefaultReadingSpeedWPM, nilUser.SpeedOrDefault())

	u := NewUser("tg-1", "Ada")
	assert.Equal(t, DefaultReadingSpeedWPM, u.ReadingSpeed)

	u.ReadingSpeed = 420
	assert.Equal(t, 420, u.SpeedOrDefault())

	u.ReadingSpeed = 0
	assert.Equal(t, DefaultReadingSpeedWPM, u.SpeedOrDefault())
}

func TestBook_KeyNormalizesTitle(t *testing.T) {
	b := &Book{Title: "  The Left   Hand of Darkness "}
	assert.Equal(t, "the left hand of darkness", b.Key())
}

func TestBook_Details(t *testing.T) {
	b := &Book{Title: "dune", Author: "frank herbert", TotalPages: 412}
	details := b.Details()

	assert.Contains(t, details, "Title : dune")
	assert.Contains(t, details, "Author : frank herbert")
	assert.Contains(t, details, "Total Pages : 412")
	assert.Contains(t, details, "Genre : Unknown")
}
