package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/myscribe/myscribe-server/internal/errors"
)

type testRecord struct {
	Title      string `json:"title" validate:"required"`
	TotalPages int    `json:"total_pages" validate:"omitempty,gt=0"`
	Rating     int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()
	err := v.Validate(testRecord{Title: "dune", TotalPages: 412, Rating: 5})
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	v := New()
	err := v.Validate(testRecord{TotalPages: 100})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestValidate_FieldNamesUseJSONTags(t *testing.T) {
	v := New()
	err := v.Validate(testRecord{Title: "dune", TotalPages: -1})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.True(t, domainerrors.As(err, &derr))

	details, ok := derr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "total_pages")
}

func TestValidate_RatingRange(t *testing.T) {
	v := New()
	assert.Error(t, v.Validate(testRecord{Title: "dune", Rating: 7}))
	assert.NoError(t, v.Validate(testRecord{Title: "dune", Rating: 4}))
}
