package console

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestServeStopsOnStopCommand(t *testing.T) {
	logger, _ := test.NewNullLogger()
	entry := logrus.NewEntry(logger)

	stopped := false
	c := New(strings.NewReader("help\nstop\nunreached\n"), entry, func() { stopped = true })
	c.Serve()

	require.True(t, stopped)
}

func TestServeLogsUnknownCommands(t *testing.T) {
	logger, hook := test.NewNullLogger()
	entry := logrus.NewEntry(logger)

	c := New(strings.NewReader("frobnicate\n"), entry, func() {})
	c.Serve()

	require.Len(t, hook.Entries, 1)
	require.Contains(t, hook.Entries[0].Message, "Unknown command: frobnicate")
}
