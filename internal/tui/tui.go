// Package tui renders one Bubble Tea progress bar per running download.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dlprogress "github.com/handiism/ds-patches-downloader/internal/progress"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// State of a single row.
type State int

const (
	StatePending State = iota
	StateRunning
	StateDone
	StateFailed
)

type row struct {
	name    string
	total   int64
	written int64
	state   State
	err     error
}

// Message types
type (
	// StartMsg announces a download.
	StartMsg struct {
		Position int
		Name     string
		Total    int64
	}

	// AdvanceMsg carries the cumulative bytes written for a download.
	AdvanceMsg struct {
		Position int
		Written  int64
		Total    int64
	}

	// FinishMsg marks a download terminal.
	FinishMsg struct {
		Position int
		Err      error
	}

	// DoneMsg is sent once every download has finished and quits the program.
	DoneMsg struct{}
)

// Model is the Bubble Tea model holding one row per position.
type Model struct {
	title    string
	rows     map[int]*row
	order    []int
	bar      progress.Model
	nameW    int
	onCancel func()
}

// NewModel creates a new model. onCancel is called when the user presses
// ctrl+c; it may be nil.
func NewModel(title string, onCancel func()) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return Model{
		title:    title,
		rows:     make(map[int]*row),
		bar:      bar,
		onCancel: onCancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - m.nameW - 30
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.onCancel != nil {
			m.onCancel()
		}

	case StartMsg:
		r := m.row(msg.Position)
		r.name = msg.Name
		r.total = msg.Total
		r.state = StateRunning
		if w := lipgloss.Width(msg.Name); w > m.nameW {
			m.nameW = w
		}

	case AdvanceMsg:
		r := m.row(msg.Position)
		r.written = msg.Written
		if msg.Total > 0 {
			r.total = msg.Total
		}

	case FinishMsg:
		r := m.row(msg.Position)
		r.err = msg.Err
		if msg.Err != nil {
			r.state = StateFailed
		} else {
			r.state = StateDone
		}

	case DoneMsg:
		return m, tea.Quit
	}

	return m, nil
}

// row returns the row for position, creating it in position order.
func (m *Model) row(position int) *row {
	if r, ok := m.rows[position]; ok {
		return r
	}
	r := &row{name: fmt.Sprintf("#%d", position)}
	m.rows[position] = r

	i := len(m.order)
	for i > 0 && m.order[i-1] > position {
		i--
	}
	m.order = append(m.order, 0)
	copy(m.order[i+1:], m.order[i:])
	m.order[i] = position
	return r
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n")
	}

	var done, failed int
	for _, pos := range m.order {
		r := m.rows[pos]
		b.WriteString(m.renderRow(r))
		b.WriteString("\n")

		switch r.state {
		case StateDone:
			done++
		case StateFailed:
			failed++
		}
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("Files: %d/%d done", done, len(m.order))))
	if failed > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf(" | %d failed", failed)))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRow(r *row) string {
	name := nameStyle.Render(r.name + strings.Repeat(" ", max(0, m.nameW-lipgloss.Width(r.name))))

	switch r.state {
	case StateFailed:
		return fmt.Sprintf("%s %s", name, errorStyle.Render("✗ "+r.err.Error()))
	case StateDone:
		return fmt.Sprintf("%s %s %s", name, m.bar.ViewAs(1), successStyle.Render("✓ "+dlprogress.FormatBytes(r.written)))
	}

	var percent float64
	if r.total > 0 {
		percent = min(float64(r.written)/float64(r.total), 1)
	}
	sizes := dlprogress.FormatBytes(r.written)
	if r.total > 0 {
		sizes += " / " + dlprogress.FormatBytes(r.total)
	}
	return fmt.Sprintf("%s %s %s", name, m.bar.ViewAs(percent), infoStyle.Render(sizes))
}

// Display drives a Bubble Tea program from download progress callbacks.
//
// Display implements the download package's ProgressSink. Its methods may be
// called from any goroutine.
//
// Example usage:
//
//	display := tui.NewDisplay(os.Stderr, "Downloading patches", cancel)
//	display.Show()
//	result := manager.Run(ctx, specs) // manager built WithProgress(display)
//	err := display.Close()
type Display struct {
	program *tea.Program
	done    chan error
}

// NewDisplay creates a display rendering to out.
func NewDisplay(out io.Writer, title string, onCancel func()) *Display {
	p := tea.NewProgram(NewModel(title, onCancel), tea.WithOutput(out))
	return &Display{
		program: p,
		done:    make(chan error, 1),
	}
}

// Show runs the program in the background. Call it before the first
// progress callback.
func (d *Display) Show() {
	go func() {
		_, err := d.program.Run()
		d.done <- err
	}()
}

// Close renders the final state, stops the program and returns its error.
func (d *Display) Close() error {
	d.program.Send(DoneMsg{})
	return <-d.done
}

// Start implements download.ProgressSink.
func (d *Display) Start(position int, name string, total int64) {
	d.program.Send(StartMsg{Position: position, Name: name, Total: total})
}

// Advance implements download.ProgressSink.
func (d *Display) Advance(position int, written, total int64) {
	d.program.Send(AdvanceMsg{Position: position, Written: written, Total: total})
}

// Finish implements download.ProgressSink.
func (d *Display) Finish(position int, err error) {
	d.program.Send(FinishMsg{Position: position, Err: err})
}
