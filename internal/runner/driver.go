// Package runner drives a session from line-oriented input.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/cancelreader"

	"qm/internal/question"
	"qm/internal/session"
	"qm/internal/verbose"
)

// Options configures the plain driver.
type Options struct {
	Verbose *verbose.Logger
	// After starts the wall-clock timer for a question. Defaults to time.After.
	After func(time.Duration) <-chan time.Time
}

// Play runs s to a terminal state, reading one answer per line from in and
// writing prompts and outcomes to out. When a question's time limit passes
// before an answer arrives the question is expired. A QuitToken line, the end
// of input or ctx cancellation aborts the session; cancellation also returns
// ctx.Err(). Reads from an *os.File input are cancelled when Play returns;
// other readers keep one pending Read until they yield data or close.
func Play(ctx context.Context, s *session.Session, in io.Reader, out io.Writer, opts Options) error {
	after := opts.After
	if after == nil {
		after = time.After
	}
	lines, stop := readLines(in, opts.Verbose)
	defer stop()

	for {
		p, err := s.Next()
		if err != nil {
			return err
		}
		if p.Complete {
			printSummary(out, s)
			return nil
		}
		printPresentation(out, p, s.Mode())

		var timeout <-chan time.Time
		if deadline, ok := s.Deadline(); ok {
			timeout = after(time.Until(deadline))
		}
		status, err := awaitAnswer(ctx, s, p, lines, timeout, out, opts.Verbose)
		if err != nil {
			return err
		}
		if status == statusStop {
			if err := s.Abort(); err != nil {
				return err
			}
			printSummary(out, s)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		}
	}
}

type answerStatus int

const (
	statusRecorded answerStatus = iota
	statusStop
)

// awaitAnswer reads lines until the awaiting question is recorded, the timer
// fires or the caller stops.
func awaitAnswer(ctx context.Context, s *session.Session, p session.Presentation, lines <-chan string, timeout <-chan time.Time, out io.Writer, log *verbose.Logger) (answerStatus, error) {
	var pending map[string]string
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return statusStop, nil
		case <-timeout:
			fmt.Fprintln(out)
			result, err := s.Expire()
			if err != nil {
				return statusRecorded, err
			}
			printResult(out, result)
			return statusRecorded, nil
		case line, ok := <-lines:
			if !ok {
				log.Logf(verbose.StyleDefault, "input closed during question %d", p.Index+1)
				fmt.Fprintln(out)
				return statusStop, nil
			}
			if IsQuit(line) {
				return statusStop, nil
			}
			if s.Mode() == session.ModeFlashcard {
				answer, err := s.Reveal()
				if err != nil {
					return statusRecorded, err
				}
				fmt.Fprintf(out, "Answer: %s\n", answer)
				_, err = s.Submit(question.TextResponse(line))
				return statusRecorded, err
			}

			resp, err := ParseAnswer(p, line)
			if err == nil && p.Kind == question.KindMatch && resp.Pairs != nil {
				pending = mergePairs(pending, resp.Pairs)
				if len(pending) < len(p.Left) {
					fmt.Fprintf(out, "%d of %d pairs given, next pair (empty line to submit): ", len(pending), len(p.Left))
					continue
				}
				resp = question.PairsResponse(pending)
			} else if err == nil && p.Kind == question.KindMatch && pending != nil {
				resp = question.PairsResponse(pending)
			}
			if err != nil {
				fmt.Fprintf(out, "%v\nTry again: ", err)
				continue
			}

			result, err := s.Submit(resp)
			if errors.Is(err, question.ErrUnrecognizedToken) || errors.Is(err, question.ErrResponseShape) {
				fmt.Fprintf(out, "%v\nTry again: ", err)
				continue
			}
			if err != nil {
				return statusRecorded, err
			}
			printResult(out, result)
			return statusRecorded, nil
		}
	}
}

func mergePairs(into, from map[string]string) map[string]string {
	if into == nil {
		into = make(map[string]string, len(from))
	}
	for key, value := range from {
		into[key] = value
	}
	return into
}

// readLines forwards lines from in until EOF or stop is called. stop
// interrupts a blocked read when in supports cancellation.
func readLines(in io.Reader, log *verbose.Logger) (<-chan string, func()) {
	done := make(chan struct{})
	cancel := func() bool { return false }
	closeReader := func() {}
	if reader, err := cancelreader.NewReader(in); err == nil {
		in = reader
		cancel = reader.Cancel
		closeReader = func() { _ = reader.Close() }
	} else {
		log.Logf(verbose.StyleDefault, "input is not cancelable: %v", err)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		defer closeReader()
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return lines, func() {
		once.Do(func() {
			close(done)
			cancel()
		})
	}
}
