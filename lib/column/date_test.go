package column

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	col := NewDate()
	in := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, col.AppendRow(in))
	assert.Equal(t, in, col.row(0))
}

func TestDateMaxBoundary(t *testing.T) {
	col := NewDate()
	max := time.Unix(dateMaxDay*secInDay, 0).UTC()
	require.NoError(t, col.AppendRow(max))
	assert.Equal(t, max, col.row(0))

	pastMax := max.Add(24 * time.Hour)
	require.Error(t, col.AppendRow(pastMax))
}

func TestDateMinBoundary(t *testing.T) {
	col := NewDate()
	epoch := time.Unix(0, 0).UTC()
	require.NoError(t, col.AppendRow(epoch))

	beforeEpoch := epoch.Add(-24 * time.Hour)
	require.Error(t, col.AppendRow(beforeEpoch))
}

// Days above 2059 overflow a signed int16's positive range; this exercises
// that the day count is carried as an unsigned u16 instead.
func TestDateBeyondSignedInt16Range(t *testing.T) {
	col := NewDate()
	in := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, col.AppendRow(in))
	assert.Equal(t, in, col.row(0))
}
