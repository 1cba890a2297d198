package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 10, hour, minute, 0, 0, time.UTC)
}

func TestOverlapsSymmetry(t *testing.T) {
	aStart, aEnd := at(10, 0), at(10, 30)
	bStart, bEnd := at(10, 15), at(10, 45)

	assert.True(t, Overlaps(aStart, aEnd, bStart, bEnd))
	assert.True(t, Overlaps(bStart, bEnd, aStart, aEnd))
}

func TestOverlapsSelf(t *testing.T) {
	assert.True(t, Overlaps(at(10, 0), at(10, 30), at(10, 0), at(10, 30)))
}

func TestOverlapsAdjacentIntervals(t *testing.T) {
	// [10:00, 10:30) and [10:30, 11:00) touch but do not overlap
	assert.False(t, Overlaps(at(10, 0), at(10, 30), at(10, 30), at(11, 0)))
	assert.False(t, Overlaps(at(10, 30), at(11, 0), at(10, 0), at(10, 30)))
}

func TestOverlapsContainment(t *testing.T) {
	// a contains b
	assert.True(t, Overlaps(at(9, 0), at(12, 0), at(10, 0), at(10, 30)))
	// b contains a
	assert.True(t, Overlaps(at(10, 0), at(10, 30), at(9, 0), at(12, 0)))
}

func TestOverlapsDisjoint(t *testing.T) {
	assert.False(t, Overlaps(at(9, 0), at(9, 30), at(14, 0), at(14, 30)))
}

func TestIntervalOverlapsMethod(t *testing.T) {
	a := Interval{Start: at(10, 0), End: at(10, 30)}
	b := Interval{Start: at(10, 15), End: at(10, 45)}
	c := Interval{Start: at(10, 30), End: at(11, 0)}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.Equal(t, 30*time.Minute, a.Duration())
}
