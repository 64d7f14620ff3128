package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/seekerror/logw"
)

// ReadStdinLines starts a goroutine scanning stdin and returns a channel of the lines
// it reads, one command per line for the console driver. The channel closes when stdin
// is exhausted.
func ReadStdinLines(ctx context.Context) <-chan string {
	lines := make(chan string, 1)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			logw.Debugf(ctx, "console recv: %v", line)
			lines <- line
		}
	}()
	return lines
}

// WriteStdoutLines drains out to stdout, one line at a time, until the channel closes.
func WriteStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, "console send: %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
