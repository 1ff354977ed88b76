// Package console runs the line-oriented stdin command loop. Grounded
// on original_source's core/console.py: a background read loop that
// recognizes "stop" and otherwise logs "Unknown command: …".
package console

import (
	"bufio"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// StopFunc is invoked once when "stop" is entered.
type StopFunc func()

// Console reads commands from r until it sees "stop" or r reaches EOF.
type Console struct {
	r      *bufio.Scanner
	logger *logrus.Entry
	stop   StopFunc
}

// New wraps r as the console's command source.
func New(r io.Reader, logger *logrus.Entry, stop StopFunc) *Console {
	return &Console{r: bufio.NewScanner(r), logger: logger, stop: stop}
}

// Serve runs the read loop until stdin closes or "stop" is entered.
// It blocks the calling goroutine and returns once the loop ends.
func (c *Console) Serve() {
	for c.r.Scan() {
		command := strings.TrimSpace(c.r.Text())
		if command == "stop" {
			c.stop()
			return
		}
		c.logger.Infof("Unknown command: %s", command)
	}
}
