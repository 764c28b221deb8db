package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
	"github.com/vovakirdan/ringrun/internal/registry"
	"github.com/vovakirdan/ringrun/internal/storage"
)

const (
	minWidthForZones = 90  // below this the zone panel is hidden
	zonePanelWidth   = 28  // width of the zone panel content
	zoneBarWidth     = 12  // bar length in the zone panel
	maxRuns          = 100 // max runs loaded per mode
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevMode, k.NextMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevMode, k.NextMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// zoneBarColors matches the in-game zone colors.
var zoneBarColors = map[sim.HitZone]lipgloss.Color{
	sim.ZoneCore:   "11",
	sim.ZoneInner:  "3",
	sim.ZoneMiddle: "208",
	sim.ZoneOuter:  "1",
	sim.ZoneMiss:   "245",
}

// ScoreboardModel shows the best runs of each mode next to the mode's
// lifetime statistics.
type ScoreboardModel struct {
	modes      []registry.GameInfo
	modeCursor int
	store      *storage.Store
	runs       []storage.RunEntry
	stats      *storage.ModeStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	if len(m.modes) > 0 {
		m.loadMode()
	}
	return m
}

func (m ScoreboardModel) showZones() bool {
	return m.width >= minWidthForZones
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Streak", Width: 6},
		{Title: "Peak", Width: 4},
		{Title: "Acc", Width: 5},
		{Title: "Core", Width: 5},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadMode loads the top runs and lifetime stats of the selected mode.
func (m *ScoreboardModel) loadMode() {
	m.runs = nil
	m.stats = nil
	if m.store != nil {
		mode := m.modes[m.modeCursor].ID
		if runs, err := m.store.TopRuns(mode, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetModeStats(mode); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.BestStreak),
			multiplierLabel(r.PeakMultiplier),
			fmt.Sprintf("%.0f%%", r.Accuracy),
			fmt.Sprintf("%.0f%%", r.CoreAccuracy),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) moveMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	n := len(m.modes)
	m.modeCursor = ((m.modeCursor+delta)%n + n) % n
	m.loadMode()
}

func multiplierLabel(m int) string {
	return fmt.Sprintf("×%d", m)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.moveMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.moveMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		if len(m.modes) > 0 {
			m.loadMode()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("BEST RUNS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(boardDimStyle.Render(line), m.width))
	}
	b.WriteString("\n")

	body := boardPanelStyle.Render(m.renderRuns())
	if m.showZones() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", boardPanelStyle.Render(m.renderZones()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(max(m.width, lipgloss.Width(body)), lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.modeCursor {
			tabs[i] = boardActiveTab.Render(g.ID)
		} else {
			tabs[i] = boardTabStyle.Render(g.ID)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderRuns() string {
	if len(m.runs) == 0 {
		return boardDimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nFinish a run to set a high score!")
	}
	return m.table.View()
}

// renderZones draws the lifetime share of each hit zone as a bar.
func (m ScoreboardModel) renderZones() string {
	var b strings.Builder
	b.WriteString("Rings by zone\n")
	b.WriteString(strings.Repeat("─", zonePanelWidth))
	b.WriteString("\n")

	var hits sim.ZoneCounts
	if m.stats != nil {
		hits = m.stats.Hits
	}
	total := hits.Total()
	for _, z := range sim.Zones {
		n := hits.Get(z)
		filled := 0
		if total > 0 {
			filled = n * zoneBarWidth / total
		}
		bar := lipgloss.NewStyle().Foreground(zoneBarColors[z]).Render(strings.Repeat("█", filled)) +
			boardDimStyle.Render(strings.Repeat("░", zoneBarWidth-filled))
		fmt.Fprintf(&b, "%-6s %s %5d\n", z.String(), bar, n)
	}
	return b.String()
}

// statsLine summarizes the lifetime stats of the current mode.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs · best streak %d · peak %s · accuracy %.0f%% · %s played",
		m.stats.GamesCount, m.stats.LongestStreak, multiplierLabel(m.stats.PeakMultiplier),
		m.stats.Accuracy(), formatPlayTime(m.stats.PlayTime))
}

// formatPlayTime renders seconds as a short duration.
func formatPlayTime(secs float64) string {
	d := int(secs)
	switch {
	case d < 60:
		return fmt.Sprintf("%ds", d)
	case d < 3600:
		return fmt.Sprintf("%dm%02ds", d/60, d%60)
	default:
		return fmt.Sprintf("%dh%02dm", d/3600, (d%3600)/60)
	}
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
