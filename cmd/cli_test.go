package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simulationStart = "2026-03-02T14:00:00Z"

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestMeetingAddThenList(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"meeting", "add",
		"--id", "standup",
		"--title", "Daily standup",
		"--duration", "15",
		"--participant", "u1:Alice",
		"--participant", "u2",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "added meeting standup")

	stdout, _, err = executeCLI(t, home, "meeting", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "standup\tDaily standup\t15 min\tAlice, u2")

	info, err := os.Stat(filepath.Join(home, ".meetroom", "meetings.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMeetingListEmpty(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "meeting", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no meetings stored")
}

func TestMeetingAddGeneratesID(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "meeting", "add", "--title", "Ad hoc", "--json")
	require.NoError(t, err)

	var view struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	assert.Len(t, view.ID, 36)
	assert.Equal(t, "Ad hoc", view.Title)
}

func TestMeetingShowFromFixture(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeMeetingsFixture(home))

	stdout, _, err := executeCLI(t, home, "meeting", "show", "retro")
	require.NoError(t, err)
	assert.Contains(t, stdout, "title: Sprint retro")
	assert.Contains(t, stdout, "starts at: 2026-03-02T16:00:00.000Z")
	assert.Contains(t, stdout, "duration: 30 min")
	assert.Contains(t, stdout, "participants: Alice, u2")

	stdout, _, err = executeCLI(t, home, "meeting", "show", "retro", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"duration_minutes\": 30")
}

func TestMeetingShowUnknownMeeting(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "meeting", "show", "nope")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMeetingNotFound.Error())
}

func TestMeetingAddRejectsDuplicateAndInvalidInput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeMeetingsFixture(home))

	_, _, err := executeCLI(t, home, "meeting", "add", "--id", "retro")
	require.Error(t, err)
	assert.ErrorContains(t, err, "meeting already exists")

	_, _, err = executeCLI(t, home, "meeting", "add", "--id", "bad", "--duration=-5")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidDuration.Error())

	_, _, err = executeCLI(t, home, "meeting", "add", "--id", "bad", "--participant", ":Bob")
	require.Error(t, err)
	assert.ErrorContains(t, err, "participant id is empty")

	_, _, err = executeCLI(t, home, "meeting", "add", "--id", "bad", "--starts-at", "tomorrow")
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse --starts-at")
}

func TestMeetingParticipantsAndRemove(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeMeetingsFixture(home))

	stdout, _, err := executeCLI(t, home, "meeting", "participants", "retro", "--participant", "u9:Zoe")
	require.NoError(t, err)
	assert.Contains(t, stdout, "meeting retro participants: Zoe")

	stdout, _, err = executeCLI(t, home, "meeting", "remove", "retro")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed meeting retro")

	_, _, err = executeCLI(t, home, "meeting", "remove", "retro")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMeetingNotFound.Error())
}

func TestMeetingsPathFromEnvironment(t *testing.T) {
	home := t.TempDir()
	custom := filepath.Join(t.TempDir(), "rooms.toml")
	t.Setenv("MEETROOM_MEETINGS_PATH", custom)

	_, _, err := executeCLI(t, home, "meeting", "add", "--id", "standup")
	require.NoError(t, err)

	_, err = os.Stat(custom)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".meetroom", "meetings.toml"))
	assert.True(t, os.IsNotExist(err))
}

func TestSimulatePrintsWarningAndEnd(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(),
		"simulate",
		"--duration", "1",
		"--starts-at", simulationStart,
		"--participant", "u1:Alice",
		"--participant", "u2",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "[00:00:30] 2026-03-02T14:00:30.000Z Meeting will end in 30 seconds")
	assert.Contains(t, stdout, "Start Time: 2026-03-02T14:00:00.000Z, End Time: 2026-03-02T14:00:30.000Z, Duration: 0 minutes, Participants: Alice, u2")
	assert.Contains(t, stdout, "[Extend available]")
	assert.Contains(t, stdout, "[00:01:00] 2026-03-02T14:01:00.000Z Meeting Ended")
	assert.Contains(t, stdout, "Duration: 1 minutes")
	assert.Contains(t, stdout, "elapsed 00:01:00, timer fired, 2 notification(s)")
}

func TestSimulateExtendMovesEnd(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(),
		"simulate",
		"--duration", "1",
		"--starts-at", simulationStart,
		"--extend-at", "45s",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "[00:10:45] 2026-03-02T14:10:45.000Z Meeting Ended")
	assert.NotContains(t, stdout, "rejected")
}

func TestSimulateCallEndedJSON(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(),
		"simulate",
		"--duration", "1",
		"--starts-at", simulationStart,
		"--call-ended-at", "20s",
		"--output", "json",
	)
	require.NoError(t, err)

	var report simulationReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Notifications, 1)
	assert.Equal(t, "call_ended", report.Notifications[0].Source)
	assert.Equal(t, "00:00:20", report.Notifications[0].Elapsed)
	assert.Equal(t, "00:00:20", report.Elapsed)
	assert.Equal(t, "idle", report.TimerState)
}

func TestSimulatePersonalRoomRejectsCallEnded(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(),
		"simulate",
		"--duration", "1",
		"--personal",
		"--starts-at", simulationStart,
		"--call-ended-at", "20s",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "rejected call ended at 20s: "+domain.ErrPersonalRoomEndCall.Error())
	assert.Contains(t, stdout, "Meeting Ended")
}

func TestSimulateYAMLOutput(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(),
		"simulate",
		"--duration", "1",
		"--starts-at", simulationStart,
		"-o", "yaml",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "kind: warning")
	assert.Contains(t, stdout, "kind: ended")
	assert.Contains(t, stdout, "action: Extend")
}

func TestSimulateRejectsUnknownOutput(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "simulate", "--duration", "1", "--output", "xml")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported output format \"xml\"")
}

func TestReplayScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "standup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
meeting:
  title: Daily standup
  starts_at: 2026-03-02T14:00:00Z
  duration_minutes: 1
  participants:
    - id: u1
      name: Alice
tail: 1m
steps:
  - at: 0s
    signal: join
  - at: 10s
    signal: extend
`), 0o600))

	stdout, _, err := executeCLI(t, t.TempDir(), "replay", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "rejected step 2 (extend at 10s): "+domain.ErrNoPendingExtension.Error())
	assert.Contains(t, stdout, "[00:00:30] 2026-03-02T14:00:30.000Z Meeting will end in 30 seconds")
	assert.Contains(t, stdout, "[00:01:00] 2026-03-02T14:01:00.000Z Meeting Ended")
}

func TestReplayReportsScriptErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - at: 0s\n    signal: wave\n"), 0o600))

	_, _, err := executeCLI(t, t.TempDir(), "replay", path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "step 1 (line 2): unknown signal \"wave\"")

	_, _, err = executeCLI(t, t.TempDir(), "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "open script")
}

func TestRoomRejectsUnknownMeetingAndLayout(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeMeetingsFixture(home))

	_, _, err := executeCLI(t, home, "room", "nope")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMeetingNotFound.Error())

	_, _, err = executeCLI(t, home, "room", "retro", "--layout", "mosaic")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported call layout")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeMeetingsFixture(home string) error {
	configDir := filepath.Join(home, ".meetroom")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	meetings := `version = 1

[[meetings]]
id = "retro"
title = "Sprint retro"
starts_at = "2026-03-02T16:00:00Z"
duration_minutes = 30.0

[[meetings.participants]]
id = "u1"
name = "Alice"

[[meetings.participants]]
id = "u2"
`

	return os.WriteFile(filepath.Join(configDir, "meetings.toml"), []byte(meetings), 0o644)
}
