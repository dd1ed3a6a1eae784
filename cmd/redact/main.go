// Command redact copies log lines from stdin to stdout with API keys, bearer
// tokens and email addresses scrubbed. It applies the same rules the server
// uses before logging provider errors, so captured logs or provider error
// dumps can be shared safely:
//
//	kubectl logs deploy/blogsmith-api | redact > logs.txt
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/blogsmith-api/internal/platform/logger"
	"github.com/phrazzld/blogsmith-api/internal/redact"
)

// maxLineSize is the longest line accepted; JSON log lines can be long.
const maxLineSize = 1024 * 1024

func main() {
	l := logger.New(os.Stderr, "info")

	lines, err := scrub(os.Stdin, os.Stdout)
	if err != nil {
		l.Error("redaction failed", slog.Int("lines", lines), slog.String("error", err.Error()))
		os.Exit(1)
	}
	l.Debug("redaction completed", slog.Int("lines", lines))
}

// scrub redacts every line of r into w and returns the number of lines written.
func scrub(r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	out := bufio.NewWriter(w)

	lines := 0
	for scanner.Scan() {
		if _, err := fmt.Fprintln(out, redact.String(scanner.Text())); err != nil {
			return lines, fmt.Errorf("failed to write line %d: %w", lines+1, err)
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("failed to read input: %w", err)
	}
	if err := out.Flush(); err != nil {
		return lines, fmt.Errorf("failed to flush output: %w", err)
	}
	return lines, nil
}
