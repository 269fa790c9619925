package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/inovacc/pokedex/internal/syncer"
)

// SyncRunner performs one batch, reporting every item through onItem.
type SyncRunner func(ctx context.Context, onItem func(res syncer.ItemResult, done, total int)) *syncer.Report

// SyncModel represents the state of the sync progress TUI
type SyncModel struct {
	title string
	run   SyncRunner

	ctx    context.Context
	cancel context.CancelFunc

	// Progress tracking
	done   int
	total  int
	stored int
	failed int

	// Recent activity log (last N completed items)
	activity []syncer.ItemResult

	// UI components
	spinner  spinner.Model
	progress progress.Model

	cancelling bool
	finished   bool
	report     *syncer.Report

	events chan tea.Msg
}

// Message types
type syncItemMsg struct {
	res   syncer.ItemResult
	done  int
	total int
}

type syncDoneMsg struct {
	report *syncer.Report
}

// NewSyncModel creates a progress model for run. Cancelling the parent ctx or
// pressing q interrupts the batch after the current item.
func NewSyncModel(ctx context.Context, title string, run SyncRunner) *SyncModel {
	ctx, cancel := context.WithCancel(ctx)

	m := &SyncModel{
		title:    title,
		run:      run,
		ctx:      ctx,
		cancel:   cancel,
		activity: make([]syncer.ItemResult, 0, 10),
		events:   make(chan tea.Msg, 16),
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = spinnerStyle

	m.progress = progress.New(progress.WithDefaultGradient())

	return m
}

func (m *SyncModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.start(),
		m.waitForEvents(),
	)
}

// start runs the batch in the background; events are drained by waitForEvents.
func (m *SyncModel) start() tea.Cmd {
	return func() tea.Msg {
		go func() {
			report := m.run(m.ctx, func(res syncer.ItemResult, done, total int) {
				m.events <- syncItemMsg{res: res, done: done, total: total}
			})

			m.events <- syncDoneMsg{report: report}
			close(m.events)
		}()

		return nil
	}
}

func (m *SyncModel) waitForEvents() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.events
		if !ok {
			return nil
		}

		return msg
	}
}

func (m *SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Keep running until the batch reports back as interrupted.
			m.cancelling = true
			m.cancel()
		}

		return m, nil

	case syncItemMsg:
		m.done = msg.done
		m.total = msg.total

		if msg.res.OK() {
			m.stored++
		} else {
			m.failed++
		}

		m.activity = append(m.activity, msg.res)
		if len(m.activity) > 5 {
			m.activity = m.activity[len(m.activity)-5:]
		}

		return m, m.waitForEvents()

	case syncDoneMsg:
		m.finished = true
		m.report = msg.report
		m.cancel()

		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *SyncModel) View() string {
	if m.finished {
		return m.renderComplete()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(boldStyle.Render(m.title))
	b.WriteString("\n\n")

	b.WriteString(successStyle.Render(fmt.Sprintf("  Stored: %d\n", m.stored)))
	b.WriteString(errorStyle.Render(fmt.Sprintf("  Failed: %d\n", m.failed)))
	b.WriteString("\n")

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}

	b.WriteString(m.progress.ViewAs(pct))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %d/%d\n\n", m.done, m.total)))

	if len(m.activity) > 0 {
		b.WriteString(boldStyle.Render("Recent activity:"))
		b.WriteString("\n")

		for _, res := range m.activity {
			if res.OK() {
				b.WriteString(successStyle.Render(fmt.Sprintf("  [OK] #%d %s\n", res.ID, res.Name)))
				continue
			}

			message := ansi.Truncate(res.Err.Error(), 60, "...")

			b.WriteString(errorStyle.Render(fmt.Sprintf("  [FAIL] #%d", res.ID)))
			b.WriteString(dimStyle.Render(fmt.Sprintf(" - %s: %s\n", res.Stage, message)))
		}

		b.WriteString("\n")
	}

	if m.cancelling {
		b.WriteString(warningStyle.Render("Stopping after the current item..."))
	} else {
		b.WriteString(dimStyle.Render("Press 'q' to cancel"))
	}

	b.WriteString("\n")

	return b.String()
}

func (m *SyncModel) renderComplete() string {
	var b strings.Builder

	b.WriteString("\n")

	switch {
	case m.report == nil:
	case m.report.Err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s failed: %v", m.title, m.report.Err)))
	case m.report.Interrupted:
		b.WriteString(warningStyle.Render(fmt.Sprintf("%s interrupted", m.title)))
	default:
		b.WriteString(successStyle.Render(fmt.Sprintf("%s complete!", m.title)))
	}

	b.WriteString("\n\n")

	return b.String()
}

// Report returns the finished batch report, or nil if the batch never ended.
func (m *SyncModel) Report() *syncer.Report {
	return m.report
}
