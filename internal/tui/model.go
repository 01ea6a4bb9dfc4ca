// Package tui provides the interactive mission board: live countdowns for
// upcoming missions, the completed and archived lists, and the launch or
// archive prompt for missions whose countdown ended.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/example/tesseract/internal/ctxutil"
	"github.com/example/tesseract/internal/ports/primary"
)

const tickInterval = time.Second

// tabs are the partitions the board can show, in tab order.
var tabs = []string{
	primary.PartitionUpcoming,
	primary.PartitionCompleted,
	primary.PartitionArchived,
}

// Countdowns supplies live countdown text and keeps timers in step with
// the upcoming partition.
type Countdowns interface {
	Sync(ctx context.Context) error
	Display(missionID int64) string
}

// loadedMsg carries a fresh snapshot of every partition.
type loadedMsg struct {
	lists   map[string][]*primary.Mission
	pending []*primary.Mission
	err     error
}

// tickMsg is sent once per tickInterval.
type tickMsg time.Time

// actionMsg reports the outcome of a keypress that changed a mission.
type actionMsg struct {
	status string
	err    error
}

// Model is the Bubbletea model for the mission board.
type Model struct {
	ctx      context.Context
	missions primary.MissionService
	timers   Countdowns

	// Dimensions
	width, height int

	// Data
	lists    map[string][]*primary.Mission
	pending  []*primary.Mission
	tab      int
	selected int

	// UI state
	keys     KeyMap
	help     help.Model
	showHelp bool
	status   string
	err      error
}

// New creates a board driven by missions. Keypresses are logged as the
// interactive user.
func New(ctx context.Context, missions primary.MissionService, timers Countdowns) *Model {
	h := help.New()
	h.ShowAll = false

	return &Model{
		ctx:      ctxutil.WithActorID(ctx, ctxutil.ActorUser),
		missions: missions,
		timers:   timers,
		lists:    make(map[string][]*primary.Mission),
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

// Init fetches missions from the backend and starts the clock.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.load(true),
		m.tick(),
		tea.SetWindowTitle("Mission Control"),
	)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// load snapshots every partition. With refresh it first pulls the backend;
// a failed refresh is reported but the local lists are still shown.
func (m *Model) load(refresh bool) tea.Cmd {
	return func() tea.Msg {
		var refreshErr error
		if refresh {
			refreshErr = m.missions.Refresh(m.ctx)
		}
		if err := m.timers.Sync(m.ctx); err != nil {
			return loadedMsg{err: err}
		}

		lists := make(map[string][]*primary.Mission, len(tabs))
		for _, p := range tabs {
			ms, err := m.missions.ListMissions(m.ctx, primary.MissionFilters{Partition: p})
			if err != nil {
				return loadedMsg{err: err}
			}
			lists[p] = ms
		}
		pending, err := m.missions.PendingDecisions(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{lists: lists, pending: pending, err: refreshErr}
	}
}

func (m *Model) act(status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(m.ctx); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: status}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		return m, tea.Batch(m.load(false), m.tick())

	case loadedMsg:
		if msg.lists != nil {
			m.lists = msg.lists
			m.pending = msg.pending
			m.clampSelection()
		}
		m.err = msg.err

	case actionMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.status
		}
		return m, m.load(false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// An expired mission blocks the board until it is launched or archived.
	if len(m.pending) > 0 {
		head := m.pending[0]
		switch {
		case key.Matches(msg, m.keys.Launch):
			return m, m.resolve(head, primary.DecisionLaunch, "Launched")
		case key.Matches(msg, m.keys.Archive):
			return m, m.resolve(head, primary.DecisionArchive, "Archived")
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.current())-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % len(tabs)
		m.selected = 0

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + len(tabs) - 1) % len(tabs)
		m.selected = 0

	case key.Matches(msg, m.keys.Refresh):
		m.status = "Refreshing..."
		return m, m.load(true)

	case key.Matches(msg, m.keys.Complete):
		mission := m.selectedMission()
		if mission == nil || tabs[m.tab] != primary.PartitionUpcoming {
			return m, nil
		}
		return m, m.act(fmt.Sprintf("Completed %s", mission.Name), func(ctx context.Context) error {
			return m.missions.CompleteMission(ctx, mission.ID)
		})

	case key.Matches(msg, m.keys.Delete):
		mission := m.selectedMission()
		if mission == nil {
			return m, nil
		}
		return m, m.act(fmt.Sprintf("Deleted %s", mission.Name), func(ctx context.Context) error {
			return m.missions.DeleteMission(ctx, mission.ID)
		})
	}

	return m, nil
}

func (m *Model) resolve(mission *primary.Mission, decision, verb string) tea.Cmd {
	return m.act(fmt.Sprintf("%s %s", verb, mission.Name), func(ctx context.Context) error {
		return m.missions.ResolveDecision(ctx, primary.ResolveDecisionRequest{
			MissionID: mission.ID,
			Decision:  decision,
		})
	})
}

func (m *Model) current() []*primary.Mission {
	return m.lists[tabs[m.tab]]
}

func (m *Model) selectedMission() *primary.Mission {
	list := m.current()
	if m.selected < 0 || m.selected >= len(list) {
		return nil
	}
	return list[m.selected]
}

func (m *Model) clampSelection() {
	if n := len(m.current()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

// View renders the board.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Mission Control"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())

	if len(m.pending) > 0 {
		b.WriteString(m.renderPrompt())
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderTabs() string {
	rendered := make([]string, len(tabs))
	for i, name := range tabs {
		label := fmt.Sprintf("%s (%d)", name, len(m.lists[name]))
		if i == m.tab {
			rendered[i] = activeTabStyle.Render(label)
		} else {
			rendered[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderList() string {
	list := m.current()
	if len(list) == 0 {
		return mutedStyle.Render("  No missions") + "\n"
	}

	upcoming := tabs[m.tab] == primary.PartitionUpcoming
	var b strings.Builder
	for i, mission := range list {
		line := fmt.Sprintf("%-24s %-26s", truncate(mission.Name, 24), mission.Date)
		if upcoming {
			line += " " + countdownStyle.Render(m.timers.Display(mission.ID))
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.selected {
			cursor = "> "
			style = selectedItemStyle
		}
		b.WriteString(cursor + style.Render(line) + "\n")
	}
	return b.String()
}

func (m *Model) renderPrompt() string {
	head := m.pending[0]
	text := fmt.Sprintf("T-0 reached for %s.\nLaunch (l) or archive (a)?", head.Name)
	if waiting := len(m.pending) - 1; waiting > 0 {
		text += mutedStyle.Render(fmt.Sprintf("\n%d more waiting", waiting))
	}
	return promptStyle.Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
