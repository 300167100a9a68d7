package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes the CLI without letting exit codes terminate the test binary.
func run(t *testing.T, args ...string) cli.ExitCoder {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SCRUB_LOG_FILE", filepath.Join(dir, "scrub.log"))
	t.Setenv("SCRUB_MPRIS", "false")

	a := newApp()
	a.Writer = io.Discard
	a.ErrWriter = io.Discard
	a.ExitErrHandler = func(*cli.Context, error) {}

	err := a.Run(append([]string{"scrub"}, args...))
	require.Error(t, err)
	var ec cli.ExitCoder
	require.ErrorAs(t, err, &ec)
	return ec
}

func TestRun_MissingArgument(t *testing.T) {
	ec := run(t)

	assert.Equal(t, 1, ec.ExitCode())
	assert.Contains(t, ec.Error(), "usage: scrub")
}

func TestRun_NonexistentVideo(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.mp4")

	ec := run(t, "--protocol", "halfblock", missing)

	assert.Equal(t, 1, ec.ExitCode())
	assert.Contains(t, ec.Error(), "Failed to open video")
	assert.Contains(t, ec.Error(), "missing.mp4")
}

func TestRun_UnknownProtocol(t *testing.T) {
	ec := run(t, "--protocol", "ascii", "clip.mp4")

	assert.Equal(t, 1, ec.ExitCode())
	assert.Contains(t, ec.Error(), "unknown image protocol")
}

func TestSubcommand_MissingArgument(t *testing.T) {
	ec := run(t, "probe")

	assert.Equal(t, 1, ec.ExitCode())
	assert.Contains(t, ec.Error(), "usage: scrub probe")
}
