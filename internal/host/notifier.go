package host

import (
	"io"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/joeycumines/ten-slots/internal/activation"
)

var (
	floatingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true).
			PaddingLeft(1)

	messageBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// TerminalNotifier renders notifications to a terminal. Floating messages
// are a single styled line; message boxes are framed. Safe for concurrent
// use.
type TerminalNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminalNotifier returns a notifier writing to out.
func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

// FloatingMessage prints text on one line. The duration has no meaning on a
// scrolling terminal.
func (n *TerminalNotifier) FloatingMessage(text string, _ time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = lipgloss.Fprintln(n.out, floatingStyle.Render(strings.ReplaceAll(text, "\n", " ")))
}

// MessageBox prints text in a frame.
func (n *TerminalNotifier) MessageBox(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = lipgloss.Fprintln(n.out, messageBoxStyle.Render(text))
}

// Note is one recorded notification.
type Note struct {
	Text     string `json:"text"`
	Floating bool   `json:"floating"`
}

// Recorder records notifications and forwards them to Next, if set. Safe for
// concurrent use.
type Recorder struct {
	Next activation.Notifier

	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) FloatingMessage(text string, d time.Duration) {
	r.record(Note{Text: text, Floating: true})
	if r.Next != nil {
		r.Next.FloatingMessage(text, d)
	}
}

func (r *Recorder) MessageBox(text string) {
	r.record(Note{Text: text})
	if r.Next != nil {
		r.Next.MessageBox(text)
	}
}

func (r *Recorder) record(n Note) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

// Drain returns the recorded notes and forgets them.
func (r *Recorder) Drain() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	notes := r.notes
	r.notes = nil
	return notes
}
