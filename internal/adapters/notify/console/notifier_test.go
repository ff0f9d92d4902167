package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNotifierWritesTitleAndDescription(t *testing.T) {
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	notifier := NewNotifier(out, logging.New(logging.Config{Level: logging.LevelInfo, JSON: true, Output: logs}), WithActionHint("type 'e' + Enter to extend"))

	at := time.Date(2026, 3, 2, 14, 0, 30, 0, time.UTC)
	notifier.Notify(domain.NotificationEvent{
		Kind:        domain.NotificationWarning,
		Source:      domain.SourceSchedule,
		Title:       domain.TitleWarning,
		Description: "Start Time: N/A, End Time: 2026-03-02T14:00:30.000Z, Duration: unknown, Participants: N/A",
		Action:      &domain.Action{Label: domain.ActionExtend, Invoke: func() {}},
		EmittedAt:   at,
	})

	assert.Contains(t, out.String(), "2026-03-02T14:00:30.000Z Meeting will end in 30 seconds")
	assert.Contains(t, out.String(), "Duration: unknown")
	assert.Contains(t, out.String(), "type 'e' + Enter to extend")
	assert.Contains(t, logs.String(), `"kind":"warning"`)
	assert.Contains(t, logs.String(), `"message":"Meeting will end in 30 seconds"`)
}

func TestNotifierOmitsHintWithoutAction(t *testing.T) {
	out := &bytes.Buffer{}
	notifier := NewNotifier(out, logging.New(logging.Config{Level: logging.LevelError, Output: &bytes.Buffer{}}), WithActionHint("extend"))

	notifier.Notify(domain.NotificationEvent{Kind: domain.NotificationEnded, Title: domain.TitleEnded, Description: "done"})

	assert.Contains(t, out.String(), "Meeting Ended")
	assert.NotContains(t, out.String(), "extend")
}

func TestNotifierPrefixesElapsed(t *testing.T) {
	out := &bytes.Buffer{}
	notifier := NewNotifier(out, logging.New(logging.Config{Level: logging.LevelError, Output: &bytes.Buffer{}}),
		WithElapsed(func() string { return "00:01:00" }))

	notifier.Notify(domain.NotificationEvent{
		Kind:      domain.NotificationEnded,
		Title:     domain.TitleEnded,
		EmittedAt: time.Date(2026, 3, 2, 14, 1, 0, 0, time.UTC),
	})

	assert.Contains(t, out.String(), "[00:01:00] 2026-03-02T14:01:00.000Z Meeting Ended")
}
