package listview

import "time"

const DefaultDebounce = 300 * time.Millisecond

type DebounceState int

const (
	DebounceIdle DebounceState = iota
	DebounceTyping
	DebounceCommitted
)

func (s DebounceState) String() string {
	switch s {
	case DebounceTyping:
		return "typing"
	case DebounceCommitted:
		return "committed"
	default:
		return "idle"
	}
}

// Ticket identifies one scheduled commit. Only the newest ticket can fire.
type Ticket struct {
	Seq  uint64
	Text string
}

// Debouncer collapses a burst of keystrokes into one committed query.
// It holds no timer: the caller schedules Fire after Window, which keeps it
// usable from a bubbletea tick as well as from plain tests.
type Debouncer struct {
	Window    time.Duration
	seq       uint64
	state     DebounceState
	committed string
}

func NewDebouncer(window time.Duration) Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return Debouncer{Window: window}
}

// Keystroke restarts the window and supersedes any pending ticket.
func (d *Debouncer) Keystroke(text string) Ticket {
	d.seq++
	d.state = DebounceTyping
	return Ticket{Seq: d.seq, Text: text}
}

// Fire commits the ticket's text if it is still the latest one and differs
// from the last committed query.
func (d *Debouncer) Fire(t Ticket) (string, bool) {
	if t.Seq != d.seq || d.state != DebounceTyping {
		return "", false
	}
	d.state = DebounceCommitted
	if t.Text == d.committed {
		return "", false
	}
	d.committed = t.Text
	return t.Text, true
}

// Settle moves a committed debouncer back to idle once its effect is applied.
func (d *Debouncer) Settle() {
	if d.state == DebounceCommitted {
		d.state = DebounceIdle
	}
}

// Reset drops pending tickets and treats text as already committed.
func (d *Debouncer) Reset(text string) {
	d.seq++
	d.state = DebounceIdle
	d.committed = text
}

func (d *Debouncer) State() DebounceState {
	return d.state
}

func (d *Debouncer) Committed() string {
	return d.committed
}
