package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGridFullDay(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	slots := GenerateGrid(date, 9, 17, 30, now)

	// 8 hours of 30 minute slots
	require.Len(t, slots, 16)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC), slots[0].End)
	assert.Equal(t, time.Date(2024, 6, 3, 16, 30, 0, 0, time.UTC), slots[15].Start)
	assert.Equal(t, time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC), slots[15].End)

	// ascending, gapless grid
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
}

func TestGenerateGridIsDeterministic(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	first := GenerateGrid(date, 9, 17, 30, now)
	second := GenerateGrid(date, 9, 17, 30, now)

	assert.Equal(t, first, second)
}

func TestGenerateGridExcludesPastStarts(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	// mid-day: everything up to and including the 12:00 start is gone
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

	slots := GenerateGrid(date, 9, 17, 30, now)

	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2024, 6, 3, 12, 30, 0, 0, time.UTC), slots[0].Start)
	for _, s := range slots {
		assert.True(t, s.Start.After(now))
	}
}

func TestGenerateGridPartialTrailingSlotDropped(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	// 45 minute slots in an 8 hour window: the last partial step does not fit
	slots := GenerateGrid(date, 9, 17, 45, now)

	require.NotEmpty(t, slots)
	last := slots[len(slots)-1]
	assert.False(t, last.End.After(time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC)))
}

func TestGenerateGridDegenerateInputs(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	assert.Nil(t, GenerateGrid(date, 17, 9, 30, now))
	assert.Nil(t, GenerateGrid(date, 9, 17, 0, now))
}

func TestDefaultGrid(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	assert.Equal(t, GenerateGrid(date, 9, 17, 30, now), DefaultGrid(date, now))
}
