package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tidelight/aipane/pkg/events"
	"github.com/tidelight/aipane/pkg/logger"
)

// AdmitFunc hands one decoded event to the pipeline.
type AdmitFunc func(ev events.Event) error

// Replayer feeds a recorded JSONL event stream into the pipeline, one event
// per line, with an optional fixed delay between events to simulate live
// streaming pace.
type Replayer struct {
	delay time.Duration
	admit AdmitFunc
}

// NewReplayer creates a replayer delivering to admit.
func NewReplayer(delay time.Duration, admit AdmitFunc) *Replayer {
	return &Replayer{delay: delay, admit: admit}
}

// ReplayFile replays the recording at path.
func (r *Replayer) ReplayFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()
	return r.Replay(ctx, f)
}

// Replay reads JSONL events from src and admits them in order. Blank lines
// and #-prefixed comment lines are skipped. A malformed line aborts the
// replay; an admit error is logged and the replay continues, matching live
// transport behavior where one bad event does not stop the stream.
func (r *Replayer) Replay(ctx context.Context, src io.Reader) error {
	log := logger.WithComponent("replay")
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := Decode([]byte(line))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := r.admit(ev); err != nil {
			log.WithError(err).WithField("line", lineNo).Warn("event rejected by pipeline")
		}

		if r.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.delay):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read replay stream: %w", err)
	}
	log.WithField("events", lineNo).Debug("replay finished")
	return nil
}
