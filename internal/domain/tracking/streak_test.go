package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStreakFrom(t *testing.T) {
	today := date(2025, time.March, 10)

	tests := []struct {
		name      string
		completed []time.Time
		expected  int
	}{
		{
			name:      "no records",
			completed: nil,
			expected:  0,
		},
		{
			name:      "only today",
			completed: []time.Time{today},
			expected:  1,
		},
		{
			name: "three consecutive days ending today",
			completed: []time.Time{
				date(2025, time.March, 8),
				date(2025, time.March, 9),
				today,
			},
			expected: 3,
		},
		{
			name: "today pending does not break the run",
			completed: []time.Time{
				date(2025, time.March, 8),
				date(2025, time.March, 9),
			},
			expected: 2,
		},
		{
			name: "gap before yesterday resets",
			completed: []time.Time{
				date(2025, time.March, 5),
				date(2025, time.March, 6),
				date(2025, time.March, 9),
				today,
			},
			expected: 2,
		},
		{
			name: "missed day three breaks an earlier run",
			completed: []time.Time{
				date(2025, time.March, 4),
				date(2025, time.March, 5),
				date(2025, time.March, 6),
				date(2025, time.March, 8),
				date(2025, time.March, 9),
				today,
			},
			expected: 3,
		},
		{
			name: "last completion two days ago counts as broken",
			completed: []time.Time{
				date(2025, time.March, 7),
				date(2025, time.March, 8),
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak := streakFrom(completedSet(tt.completed), today)
			assert.Equal(t, tt.expected, streak)
		})
	}
}

func TestStreakFromIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2025, time.March, 10, 23, 45, 12, 0, time.UTC)
	completed := completedSet([]time.Time{
		time.Date(2025, time.March, 9, 6, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 10, 18, 30, 0, 0, time.UTC),
	})

	assert.Equal(t, 2, streakFrom(completed, today))
}

func TestBestRun(t *testing.T) {
	tests := []struct {
		name      string
		completed []time.Time
		expected  int
	}{
		{
			name:      "empty",
			completed: nil,
			expected:  0,
		},
		{
			name:      "single day",
			completed: []time.Time{date(2025, time.January, 15)},
			expected:  1,
		},
		{
			name: "longest run in the middle",
			completed: []time.Time{
				date(2025, time.January, 1),
				date(2025, time.January, 5),
				date(2025, time.January, 6),
				date(2025, time.January, 7),
				date(2025, time.January, 9),
			},
			expected: 3,
		},
		{
			name: "two equal runs",
			completed: []time.Time{
				date(2025, time.January, 1),
				date(2025, time.January, 2),
				date(2025, time.January, 10),
				date(2025, time.January, 11),
			},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bestRun(completedSet(tt.completed)))
		})
	}
}

func TestLatestCompleted(t *testing.T) {
	assert.Nil(t, latestCompleted(nil))

	dates := []time.Time{
		date(2025, time.February, 1),
		date(2025, time.February, 10),
		date(2025, time.February, 5),
	}
	latest := latestCompleted(dates)
	assert.NotNil(t, latest)
	assert.Equal(t, date(2025, time.February, 10), *latest)
}
