package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gate-runner/internal/storage"
)

// Journal browser layout constants
const (
	maxBrowserRuns = 100 // Max runs to load
	browserChrome  = 8   // Rows taken by title, borders and help
)

// BrowserKeyMap defines the key bindings for the journal browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Back, k.Delete, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "show gates"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "h"),
			key.WithHelp("esc/b", "back to runs"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalBrowser is the Bubble Tea model for browsing the gate journal.
// It shows the recent runs; opening one lists the gates generated during it.
type JournalBrowser struct {
	store   *storage.Store
	runs    []storage.Run
	gates   []storage.GateRecord
	current *storage.Run // run whose gates are shown, nil on the run list
	table   table.Model
	help    help.Model
	keys    BrowserKeyMap
	status  string
	width   int
	height  int
	quit    bool
}

// NewJournalBrowser creates a browser over store.
func NewJournalBrowser(store *storage.Store, width, height int) JournalBrowser {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := JournalBrowser{
		store:  store,
		keys:   DefaultBrowserKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.loadRuns()
	return m
}

func (m *JournalBrowser) loadRuns() {
	runs, err := m.store.RecentRuns(maxBrowserRuns)
	if err != nil {
		m.status = fmt.Sprintf("cannot load runs: %v", err)
		runs = nil
	}
	m.runs = runs
	m.current = nil
	m.gates = nil
	m.table = m.runTable()
}

func (m *JournalBrowser) loadGates(run storage.Run) {
	records, err := m.store.Gates(run.ID)
	if err != nil {
		m.status = fmt.Sprintf("cannot load gates: %v", err)
		return
	}
	m.current = &run
	m.gates = records
	m.table = m.gateTable()
}

func (m *JournalBrowser) newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-browserChrome, 3)),
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

func (m *JournalBrowser) runTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 12},
		{Title: "Player", Width: 12},
		{Title: "Level", Width: 8},
		{Title: "Gates", Width: 6},
		{Title: "Seed", Width: 20},
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		started := r.StartedAt.Format("Jan 02 15:04")
		if r.EndedAt.IsZero() {
			started += "*"
		}
		rows[i] = table.Row{
			started,
			r.Player,
			r.Difficulty,
			fmt.Sprintf("%d", r.GateCount),
			fmt.Sprintf("%d", r.Seed),
		}
	}
	return m.newTable(columns, rows)
}

func (m *JournalBrowser) gateTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Reason", Width: 6},
		{Title: "Score", Width: 5},
		{Title: "Lives", Width: 5},
		{Title: "Level", Width: 5},
		{Title: "Gap", Width: 6},
		{Title: "Forward", Width: 7},
		{Title: "Earlier", Width: 7},
		{Title: "Tries", Width: 5},
	}

	rows := make([]table.Row, len(m.gates))
	for i, g := range m.gates {
		earlier := "-"
		if g.UseEarlier {
			earlier = fmt.Sprintf("%.3f", g.EarlierTop)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", g.Seq),
			g.Reason,
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d", g.Lives),
			fmt.Sprintf("%d", g.Level),
			fmt.Sprintf("%.3f", g.Gap),
			fmt.Sprintf("%.3f", g.ForwardTop),
			earlier,
			fmt.Sprintf("%d", g.Attempts),
		}
	}
	return m.newTable(columns, rows)
}

// Init initializes the browser.
func (m JournalBrowser) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m JournalBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if m.current == nil && len(m.runs) > 0 {
				m.status = ""
				m.loadGates(m.runs[m.table.Cursor()])
			}
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.current != nil {
				m.status = ""
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if m.current == nil && len(m.runs) > 0 {
				run := m.runs[m.table.Cursor()]
				if err := m.store.DeleteRun(run.ID); err != nil {
					m.status = fmt.Sprintf("cannot delete run: %v", err)
					return m, nil
				}
				m.loadRuns()
				m.status = "deleted run " + run.ID
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-browserChrome, 3))
		return m, nil
	}

	// Pass scrolling and everything else to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m JournalBrowser) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "GATE JOURNAL"
	if m.current != nil {
		title = fmt.Sprintf("GATE JOURNAL - run %s (seed %d)", m.current.ID, m.current.Seed)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	empty := m.current == nil && len(m.runs) == 0
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No runs recorded yet.\nPlay a game to start the journal!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Showing returns the run whose gates are displayed, or nil on the run list.
func (m JournalBrowser) Showing() *storage.Run {
	return m.current
}

// RunJournalBrowser runs the browser in the local terminal.
func RunJournalBrowser(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewJournalBrowser(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
