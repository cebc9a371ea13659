package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-paddle/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 50  // Minimum table width
	maxRounds     = 100 // Max rounds to load
)

// History is the round history the scoreboard reads.
type History interface {
	TopRounds(limit int) ([]storage.Round, error)
	RecentRounds(limit int) ([]storage.Round, error)
	Stats() (*storage.Stats, error)
}

// boardView selects which ordering the table shows.
type boardView int

const (
	viewTop boardView = iota
	viewRecent
)

func (v boardView) title() string {
	if v == viewRecent {
		return "RECENT ROUNDS"
	}
	return "TOP ROUNDS"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "top/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	history  History
	best     int
	view     boardView
	rounds   []storage.Round
	stats    *storage.Stats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model. history may be nil
// when the backend keeps no rounds; only the best score is shown then.
func NewScoreboardModel(history History, best, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		history: history,
		best:    best,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	// Give the date column whatever is left
	tableWidth := max(m.width-6, tableMinWidth)
	used := 0
	for _, c := range columns[:4] {
		used += c.Width
	}
	columns[4].Width = min(20, max(14, tableWidth-used-len(columns)*2))

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // Leave room for header, stats, help and margins
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

// load reads the rounds for the current view and the aggregate stats.
func (m *ScoreboardModel) load() {
	m.rounds, m.stats, m.loadErr = nil, nil, nil
	if m.history == nil {
		m.updateTableRows()
		return
	}

	var err error
	if m.view == viewRecent {
		m.rounds, err = m.history.RecentRounds(maxRounds)
	} else {
		m.rounds, err = m.history.TopRounds(maxRounds)
	}
	if err != nil {
		m.loadErr = err
		m.rounds = nil
	}

	if stats, err := m.history.Stats(); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rounds.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			formatTicks(r.Ticks),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatTicks renders a round length at the classic 5ms frame.
func formatTicks(ticks uint64) string {
	secs := ticks / 200
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.view == viewTop {
				m.view = viewRecent
			} else {
				m.view = viewTop
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString(titleStyle.Render(centerText("PADDLE - "+m.view.title(), m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary returns the best score and aggregate stats line.
func (m ScoreboardModel) summary() string {
	line := fmt.Sprintf("Best: %d", m.best)
	if m.stats != nil && m.stats.Rounds > 0 {
		line += fmt.Sprintf("   Rounds: %d   Avg: %.1f   Max level: %d", m.stats.Rounds, m.stats.AvgScore, m.stats.MaxLevel)
	}
	return line
}

// renderTableContent renders the table or an empty/error message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.history == nil:
		return emptyStyle.Render("Round history needs the sqlite store.\nRun with --store sqlite to keep it.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load rounds:\n" + m.loadErr.Error())
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsQuitting returns true if user closed the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(history History, best, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(history, best, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// centerText pads text with spaces to center it within width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	pad := (width - textWidth) / 2
	return strings.Repeat(" ", pad) + text
}
