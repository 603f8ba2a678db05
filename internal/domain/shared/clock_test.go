package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBusinessDate(t *testing.T) {
	t.Run("parses to midnight in business zone", func(t *testing.T) {
		got, err := ParseBusinessDate("2024-01-10")
		require.NoError(t, err)
		assert.Equal(t, 2024, got.Year())
		assert.Equal(t, time.January, got.Month())
		assert.Equal(t, 10, got.Day())
		assert.Equal(t, 0, got.Hour())
		_, offset := got.Zone()
		assert.Equal(t, 9*60*60, offset)
	})

	t.Run("rejects empty value", func(t *testing.T) {
		_, err := ParseBusinessDate("  ")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("rejects malformed value", func(t *testing.T) {
		_, err := ParseBusinessDate("2024/01/10")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})
}

func TestNewDateRange(t *testing.T) {
	now := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC) // 2024-03-06 08:30 KST

	t.Run("defaults to today in business zone", func(t *testing.T) {
		r, err := NewDateRange("", "", now)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-06", r.Start.Format(DateLayout))
		assert.Equal(t, "2024-03-07", r.End.Format(DateLayout))
	})

	t.Run("end is inclusive", func(t *testing.T) {
		r, err := NewDateRange("2024-01-01", "2024-01-31", now)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", r.Start.Format(DateLayout))
		assert.Equal(t, "2024-02-01", r.End.Format(DateLayout))
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := NewDateRange("2024-02-01", "2024-01-01", now)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})
}

func TestDomainError_Is(t *testing.T) {
	err := NewNotFound("customer %q not found", "Acme")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))

	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, `customer "Acme" not found`, de.Message)
}
