package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// Tracker receives the bytes of one transfer as they are written.
type Tracker interface {
	io.Writer
	// Finish ends the display; err is the transfer outcome.
	Finish(err error)
}

// Reporter creates a Tracker per transfer.
type Reporter interface {
	Track(name string, total int64) Tracker
}

// NewReporter returns an animated bar on terminals and periodic plain lines
// elsewhere.
func NewReporter(out io.Writer) Reporter {
	if IsTerminal(out) {
		return &BarReporter{out: out}
	}
	return &LineReporter{out: out, interval: 5 * time.Second}
}

// NopReporter discards progress.
type NopReporter struct{}

func (NopReporter) Track(string, int64) Tracker { return nopTracker{} }

type nopTracker struct{}

func (nopTracker) Write(p []byte) (int, error) { return len(p), nil }
func (nopTracker) Finish(error)                {}

// sizeText renders "1.2 MB / 3.4 MB", or just the done part when the total
// is unknown.
func sizeText(done, total int64) string {
	if total <= 0 {
		return humanize.Bytes(uint64(done))
	}
	return fmt.Sprintf("%s / %s", humanize.Bytes(uint64(done)), humanize.Bytes(uint64(total)))
}

// LineReporter prints progress as plain lines, at most once per interval.
type LineReporter struct {
	out      io.Writer
	interval time.Duration
}

func (r *LineReporter) Track(name string, total int64) Tracker {
	return &lineTracker{r: r, name: name, total: total, last: time.Now()}
}

type lineTracker struct {
	r     *LineReporter
	name  string
	total int64
	done  int64
	last  time.Time
}

func (t *lineTracker) Write(p []byte) (int, error) {
	t.done += int64(len(p))
	if now := time.Now(); now.Sub(t.last) >= t.r.interval {
		t.last = now
		fmt.Fprintf(t.r.out, "%s: %s\n", t.name, sizeText(t.done, t.total))
	}
	return len(p), nil
}

func (t *lineTracker) Finish(err error) {
	if err != nil {
		fmt.Fprintf(t.r.out, "%s: failed after %s: %v\n", t.name, humanize.Bytes(uint64(t.done)), err)
		return
	}
	fmt.Fprintf(t.r.out, "%s: done (%s)\n", t.name, humanize.Bytes(uint64(t.done)))
}

// BarReporter draws a bubbletea progress bar per transfer.
type BarReporter struct {
	out io.Writer
}

const (
	barMaxWidth   = 40
	barSendPeriod = 100 * time.Millisecond
)

type bytesMsg int64

type finishMsg struct{ err error }

type barModel struct {
	name     string
	total    int64
	done     int64
	bar      progress.Model
	err      error
	finished bool
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bytesMsg:
		m.done = int64(msg)
	case finishMsg:
		m.err = msg.err
		m.finished = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = min(barMaxWidth, max(10, msg.Width/3))
	}
	return m, nil
}

func (m barModel) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = min(1, float64(m.done)/float64(m.total))
	}
	line := fmt.Sprintf("%s %s %s", m.name, m.bar.ViewAs(pct), sizeText(m.done, m.total))
	if m.finished {
		if m.err != nil {
			line += " failed"
		}
		line += "\n"
	}
	return line
}

func (r *BarReporter) Track(name string, total int64) Tracker {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = barMaxWidth

	prog := tea.NewProgram(
		barModel{name: name, total: total, bar: bar},
		tea.WithOutput(r.out),
		tea.WithInput(nil),
	)

	t := &barTracker{prog: prog, exited: make(chan struct{})}
	go func() {
		defer close(t.exited)
		_, _ = prog.Run()
	}()
	return t
}

type barTracker struct {
	prog     *tea.Program
	exited   chan struct{}
	done     atomic.Int64
	mu       sync.Mutex
	lastSend time.Time
	once     sync.Once
}

func (t *barTracker) Write(p []byte) (int, error) {
	n := t.done.Add(int64(len(p)))

	t.mu.Lock()
	due := time.Since(t.lastSend) >= barSendPeriod
	if due {
		t.lastSend = time.Now()
	}
	t.mu.Unlock()

	if due {
		t.prog.Send(bytesMsg(n))
	}
	return len(p), nil
}

func (t *barTracker) Finish(err error) {
	t.once.Do(func() {
		t.prog.Send(bytesMsg(t.done.Load()))
		t.prog.Send(finishMsg{err: err})
		<-t.exited
	})
}
