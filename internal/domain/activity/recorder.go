package activity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Appender persists audit entries. Satisfied by *Service.
type Appender interface {
	Append(ctx context.Context, e Entry) error
}

// Recorder writes audit entries off the request path. Record never blocks:
// when the buffer is full the entry is dropped and a warning logged, so a
// slow audit store cannot slow down request handling.
type Recorder struct {
	appender Appender
	buf      chan Entry
	done     chan struct{}
	once     sync.Once
}

const appendTimeout = 5 * time.Second

func NewRecorder(appender Appender, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	r := &Recorder{
		appender: appender,
		buf:      make(chan Entry, buffer),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer close(r.done)
	for e := range r.buf {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		if err := r.appender.Append(ctx, e); err != nil {
			slog.Warn("activity log write failed", "module", e.Module, "action", e.Action, "err", err)
		}
		cancel()
	}
}

func (r *Recorder) Record(e Entry) {
	select {
	case r.buf <- e:
	default:
		slog.Warn("activity log buffer full, dropping entry", "module", e.Module, "action", e.Action)
	}
}

// Close drains the buffer and waits for the worker to finish.
func (r *Recorder) Close() {
	r.once.Do(func() { close(r.buf) })
	<-r.done
}
