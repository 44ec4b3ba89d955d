// Package logparse extracts transition events from line-oriented log
// output. It understands the fixed TRANSITION line format emitted by the
// tracker and an implicit STATE form for logs that only announce state
// changes. Everything it finds flows into a single recording operation;
// malformed lines are silently skipped.
package logparse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mberan/tfm"
)

var (
	// transitionPattern matches explicit transition logs:
	//   TRANSITION: Parse -> Execute FAILURE ERROR: boom
	// Keyword matching is case-insensitive; state labels are word
	// characters only. The trailing error message is optional and runs to
	// the end of the line or to a closing quote, so messages survive both
	// raw lines and slog text-handler output (msg="TRANSITION: ...").
	transitionPattern = regexp.MustCompile(`(?i)TRANSITION:\s*(\w+)\s*->\s*(\w+)\s*(SUCCESS|FAILURE)(?:\s*ERROR:\s*([^"]*))?`)

	// statePattern matches implicit state announcements: STATE: <NAME>.
	statePattern = regexp.MustCompile(`STATE:\s*(\w+)`)

	// errorPattern flags an implicit transition as a failure when any
	// error keyword appears on the line. This is a known precision
	// limitation: the substring match can false-positive on state names
	// or unrelated text containing these words.
	errorPattern = regexp.MustCompile(`(?i)(ERROR|EXCEPTION|FAILED|FAILURE)`)
)

// Recorder is the single ledger operation the parser needs.
type Recorder interface {
	Record(from, to string, success bool, durationMS float64, opts ...tfm.RecordOption)
}

// Parser reads log lines and replays the transitions it finds into a
// Recorder. The zero value is ready to use.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// ParseFile parses the log file at path into rec.
func (p *Parser) ParseFile(path string, rec Recorder) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()
	return p.Parse(f, rec)
}

// Parse scans r line by line and records every transition it finds.
// Lines that match no pattern are skipped; parsing never aborts on
// malformed content.
func (p *Parser) Parse(r io.Reader, rec Recorder) error {
	scanner := bufio.NewScanner(r)
	// Log lines can exceed the default 64KiB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// current tracks the last seen state for implicit transitions.
	current := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := transitionPattern.FindStringSubmatch(line); m != nil {
			from, to := m[1], m[2]
			success := strings.EqualFold(m[3], "SUCCESS")
			if msg := strings.TrimSpace(m[4]); msg != "" {
				rec.Record(from, to, success, 0, tfm.WithError(msg))
			} else {
				rec.Record(from, to, success, 0)
			}
			if success {
				current = to
			} else {
				current = from
			}
			continue
		}

		if m := statePattern.FindStringSubmatch(line); m != nil {
			next := m[1]
			if current != "" && current != next {
				isError := errorPattern.MatchString(line)
				rec.Record(current, next, !isError, 0)
			}
			current = next
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	return nil
}
