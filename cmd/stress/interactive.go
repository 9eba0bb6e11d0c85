package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type stressModel struct {
	cfg     Config
	st      *stats
	spin    spinner.Model
	res     result
	err     error
	stopped bool
}

type doneMsg struct {
	res result
	err error
}

type tickMsg time.Time

func newStressModel(cfg Config) *stressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &stressModel{
		cfg:  cfg,
		st:   &stats{},
		spin: sp,
	}
}

func (m *stressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startRun, tick())
}

func (m *stressModel) startRun() tea.Msg {
	res, err := runStress(m.cfg, m.st)
	return doneMsg{res: res, err: err}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *stressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case doneMsg:
		m.stopped = true
		m.res = msg.res
		m.err = msg.err
		return m, nil

	case tickMsg:
		if m.stopped {
			return m, nil
		}
		return m, tick()

	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
}

func (m *stressModel) View() string {
	s := titleStyle.Render("runtime-bridge stress") + "\n\n"
	s += fmt.Sprintf("objects: %d  workers: %d  iterations: %d\n\n",
		m.cfg.Objects, m.cfg.Goroutines, m.cfg.Iterations)

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
		s += helpStyle.Render("q to quit")
		return s
	}

	if !m.stopped {
		s += m.spin.View() + " running\n\n"
	}

	s += counterStyle.Render(fmt.Sprintf("ops:        %d\n", m.st.ops.Load()))
	s += counterStyle.Render(fmt.Sprintf("flips:      %d\n", m.st.flips.Load()))
	s += counterStyle.Render(fmt.Sprintf("slot drops: %d\n", m.st.slotDrops.Load()))

	violations := m.st.violations.Load()
	if violations == 0 {
		s += okStyle.Render("violations: 0") + "\n"
	} else {
		s += errorStyle.Render(fmt.Sprintf("violations: %d", violations)) + "\n"
	}

	if m.stopped {
		s += "\n"
		if m.res.Violations == 0 && m.res.SlotDrops == int64(m.res.OwnedAtEnd) {
			s += okStyle.Render("teardown clean: every owned binding released exactly once") + "\n"
		} else {
			s += errorStyle.Render("teardown mismatch") + "\n"
		}
		s += fmt.Sprintf("owned at end: %d, wrappers left to runtime: %d\n",
			m.res.OwnedAtEnd, m.res.Leftover)
	}

	s += "\n" + helpStyle.Render("q to quit")
	return s
}

func runInteractive(cfg Config) error {
	p := tea.NewProgram(newStressModel(cfg))
	_, err := p.Run()
	return err
}
