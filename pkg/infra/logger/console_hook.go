package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors formatted entries to a console writer. With a buffer it
// writes from a background goroutine and drops entries while the buffer is full,
// so a slow terminal never blocks a request.
type ConsoleHook struct {
	out   io.Writer
	lines chan []byte
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewConsoleHook writes synchronously when bufferSize is zero.
func NewConsoleHook(out io.Writer, bufferSize int) *ConsoleHook {
	h := &ConsoleHook{out: out}
	if bufferSize <= 0 {
		return h
	}
	h.lines = make(chan []byte, bufferSize)
	h.done = make(chan struct{})
	h.wg.Add(1)
	go h.drain()
	return h
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	if h.lines == nil {
		_, err = h.out.Write(line)
		return err
	}
	select {
	case h.lines <- append([]byte(nil), line...):
	default:
	}
	return nil
}

func (h *ConsoleHook) drain() {
	defer h.wg.Done()
	for {
		select {
		case line := <-h.lines:
			_, _ = h.out.Write(line) //nolint:errcheck
		case <-h.done:
			for len(h.lines) > 0 {
				_, _ = h.out.Write(<-h.lines) //nolint:errcheck
			}
			return
		}
	}
}

// Close flushes buffered entries. It is safe to call more than once.
func (h *ConsoleHook) Close() error {
	if h.lines == nil {
		return nil
	}
	h.once.Do(func() {
		close(h.done)
		h.wg.Wait()
	})
	return nil
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
