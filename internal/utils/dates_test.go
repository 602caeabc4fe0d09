package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate(" 2024-06-01T10:30:00Z ")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("June 1st")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), m)

	_, err = ParseMonth("2024-6")
	assert.Error(t, err)
}

func TestFormatters(t *testing.T) {
	ts := time.Date(2024, time.June, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01", FormatDate(ts))
	assert.Equal(t, "2024-06", FormatMonth(ts))
	assert.Equal(t, "2024-06-01T10:30:00Z", FormatTimestamp(ts))
}
