package tui

import (
	"io"
	"sync"

	"github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

const updateBuffer = 64

var (
	_ progrock.Writer = (*Display)(nil)
	_ TapeSource      = (*Display)(nil)
)

// Display is a progrock.Writer that renders the recorded vertices with
// Bubble Tea. Updates written after the program quit are dropped.
type Display struct {
	mu      sync.RWMutex
	closed  bool
	started bool
	updates chan *progrock.StatusUpdate
	done    chan struct{}
	program *tea.Program
}

// NewDisplay creates a Display drawing to out. It never reads the
// terminal, so a passthrough command keeps its stdin.
func NewDisplay(out io.Writer, opts ...tea.ProgramOption) *Display {
	d := &Display{
		updates: make(chan *progrock.StatusUpdate, updateBuffer),
		done:    make(chan struct{}),
	}
	opts = append([]tea.ProgramOption{tea.WithOutput(out), tea.WithInput(nil)}, opts...)
	d.program = tea.NewProgram(NewModel(d), opts...)
	return d
}

// Start runs the program in the background.
func (d *Display) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	go func() {
		defer close(d.done)
		_, _ = d.program.Run()
	}()
}

// WriteStatus implements progrock.Writer.
func (d *Display) WriteStatus(update *progrock.StatusUpdate) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil
	}

	select {
	case d.updates <- update:
	case <-d.done:
	}
	return nil
}

// Read implements TapeSource. It returns io.EOF once the display is closed
// and every pending update was consumed.
func (d *Display) Read() (*progrock.StatusUpdate, error) {
	update, ok := <-d.updates
	if !ok {
		return nil, io.EOF
	}
	return update, nil
}

// Close ends the update stream and waits for the final frame.
func (d *Display) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	started := d.started
	close(d.updates)
	d.mu.Unlock()

	if started {
		<-d.done
	}
	return nil
}
