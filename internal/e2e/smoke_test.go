package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runMeetroom(t, binaryPath, home,
		"meeting", "add",
		"--id", "standup",
		"--title", "Daily standup",
		"--duration", "1",
		"--participant", "u1:Alice",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runMeetroom(t, binaryPath, home, "meeting", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "standup\tDaily standup")

	stdout, stderr, err = runMeetroom(t, binaryPath, home,
		"simulate", "--duration", "1", "--starts-at", "2026-03-02T14:00:00Z",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "[00:00:30]")
	assert.Contains(t, stdout, "[00:01:00] 2026-03-02T14:01:00.000Z Meeting Ended")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "meetroom-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/meetroom")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build meetroom binary: %s", string(output))
	return binaryPath
}

func runMeetroom(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
