package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterNames(t *testing.T) {
	roster := Roster{
		{ID: "u1", Name: "Alice"},
		{ID: "u2"},
	}

	assert.Equal(t, "Alice, u2", roster.Names())
	assert.Equal(t, "N/A", Roster{}.Names())
	assert.Equal(t, "N/A", Roster(nil).Names())
}

func TestParticipantDisplayNameFallsBackToID(t *testing.T) {
	assert.Equal(t, "u3", Participant{ID: "u3"}.DisplayName())
	assert.Equal(t, "  ", Participant{ID: "u5", Name: "  "}.DisplayName())
	assert.Equal(t, "Bob", Participant{ID: "u4", Name: "Bob"}.DisplayName())
}

func TestSessionWindowDuration(t *testing.T) {
	one := 1.0
	zero := 0.0
	negative := -5.0
	half := 0.5

	d, ok := SessionWindow{DurationMinutes: &one}.Duration()
	require.True(t, ok)
	assert.Equal(t, time.Minute, d)

	d, ok = SessionWindow{DurationMinutes: &half}.Duration()
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, d)

	_, ok = SessionWindow{DurationMinutes: &zero}.Duration()
	assert.False(t, ok)
	_, ok = SessionWindow{DurationMinutes: &negative}.Duration()
	assert.False(t, ok)
	_, ok = SessionWindow{}.Duration()
	assert.False(t, ok)
}

func TestSessionWindowDurationSaturates(t *testing.T) {
	huge := 1e9
	d, ok := SessionWindow{DurationMinutes: &huge}.Duration()
	require.True(t, ok)
	assert.Equal(t, time.Duration(math.MaxInt64), d)

	inf := math.Inf(1)
	d, ok = SessionWindow{DurationMinutes: &inf}.Duration()
	require.True(t, ok)
	assert.Positive(t, d)
}

func TestNewSessionWindowCopiesInputs(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	minutes := 45.0

	window := NewSessionWindow(&start, &minutes)
	start = start.Add(time.Hour)
	minutes = 1

	require.NotNil(t, window.StartsAt)
	assert.Equal(t, 9, window.StartsAt.Hour())
	assert.Equal(t, 45.0, *window.DurationMinutes)
}

func TestElapsedMinutesBetween(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, ElapsedMinutes{Minutes: 1, Known: true}, ElapsedMinutesBetween(&start, start.Add(119*time.Second)))
	assert.Equal(t, ElapsedMinutes{Minutes: -1, Known: true}, ElapsedMinutesBetween(&start, start.Add(-time.Second)))
	assert.Equal(t, ElapsedMinutes{}, ElapsedMinutesBetween(nil, start))
	assert.Equal(t, "unknown", ElapsedMinutes{}.String())
	assert.Equal(t, "12 minutes", ElapsedMinutes{Minutes: 12, Known: true}.String())
}

func TestSummaryDescription(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30*time.Minute + 15*time.Second)

	summary := NewSummary(SessionWindow{StartsAt: &start}, end, Roster{{ID: "u1", Name: "Alice"}, {ID: "u2"}})

	assert.Equal(t, "2026-03-01T09:00:00.000Z", summary.StartTime)
	assert.Equal(t, "2026-03-01T09:30:15.000Z", summary.EndTime)
	assert.Equal(t,
		"Start Time: 2026-03-01T09:00:00.000Z, End Time: 2026-03-01T09:30:15.000Z, Duration: 30 minutes, Participants: Alice, u2",
		summary.Description(),
	)
}

func TestSummaryWithoutStartOrParticipants(t *testing.T) {
	end := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	summary := NewSummary(SessionWindow{}, end, nil)

	assert.Equal(t, "N/A", summary.StartTime)
	assert.False(t, summary.Duration.Known)
	assert.Equal(t, "Start Time: N/A, End Time: 2026-03-01T09:00:00.000Z, Duration: unknown, Participants: N/A", summary.Description())
}

func TestCallLayoutCycle(t *testing.T) {
	assert.Equal(t, LayoutSpeakerLeft, DefaultLayout())
	assert.Equal(t, LayoutSpeakerRight, LayoutSpeakerLeft.Next())
	assert.Equal(t, LayoutGrid, LayoutSpeakerRight.Next())
	assert.Equal(t, LayoutSpeakerLeft, CallLayout("unknown").Next())

	layout, err := ParseCallLayout("grid")
	require.NoError(t, err)
	assert.Equal(t, LayoutGrid, layout)
	assert.Equal(t, "Grid", layout.Label())

	_, err = ParseCallLayout("carousel")
	require.Error(t, err)
}
