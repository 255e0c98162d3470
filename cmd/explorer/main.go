package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-graphview/pkg/config"
	"github.com/dd0wney/cluso-graphview/pkg/expansion"
	"github.com/dd0wney/cluso-graphview/pkg/graphview"
	"github.com/dd0wney/cluso-graphview/pkg/layout"
	"github.com/dd0wney/cluso-graphview/pkg/logging"
	"github.com/dd0wney/cluso-graphview/pkg/metrics"
	"github.com/dd0wney/cluso-graphview/pkg/repository"
	"github.com/dd0wney/cluso-graphview/pkg/search"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	graphPane view = iota
	searchPane
	statsPane
)

const paneCount = 3

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next pane"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev pane"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search / open hit"),
	),
	Expand: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "expand"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "collapse"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Expand, k.Collapse, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Expand, k.Collapse, k.Enter},
		{k.Quit},
	}
}

// resultItem adapts a search hit to the bubbles list.
type resultItem struct {
	result search.Result
}

func (i resultItem) FilterValue() string { return i.result.Title }
func (i resultItem) Title() string       { return i.result.Title }
func (i resultItem) Description() string {
	return fmt.Sprintf("%s %s  score %.3f", i.result.Type, i.result.Key, i.result.Score)
}

type model struct {
	repo   *repository.Repository
	engine *expansion.Engine
	index  *search.Index
	state  *graphview.State
	cfg    *config.Config

	currentPane view
	searchInput textinput.Model
	resultList  list.Model
	nodeTable   table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
}

func initialModel(repo *repository.Repository, engine *expansion.Engine, idx *search.Index, cfg *config.Config) model {
	ti := textinput.New()
	ti.Placeholder = "search records and documents"
	ti.CharLimit = 120
	ti.Width = 50

	columns := []table.Column{
		{Title: "Node", Width: 32},
		{Title: "Kind", Width: 10},
		{Title: "Title", Width: 28},
		{Title: "Children", Width: 8},
		{Title: "Expanded", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	rl := list.New(nil, list.NewDefaultDelegate(), 60, 14)
	rl.Title = "Results"
	rl.SetShowStatusBar(false)
	rl.SetFilteringEnabled(false)

	return model{
		repo:        repo,
		engine:      engine,
		index:       idx,
		state:       graphview.NewState(),
		cfg:         cfg,
		currentPane: graphPane,
		searchInput: ti,
		resultList:  rl,
		nodeTable:   t,
		help:        help.New(),
		keys:        keys,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.switchPane((m.currentPane + 1) % paneCount)

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentPane == 0 {
				m.switchPane(paneCount - 1)
			} else {
				m.switchPane(m.currentPane - 1)
			}

		case key.Matches(msg, m.keys.Enter):
			if m.currentPane == searchPane {
				if m.searchInput.Focused() {
					m.runSearch()
				} else {
					m.openSelectedHit()
				}
			}

		case key.Matches(msg, m.keys.Expand):
			if m.currentPane == graphPane {
				m.expandSelected()
			}

		case key.Matches(msg, m.keys.Collapse):
			if m.currentPane == graphPane {
				m.collapseSelected()
			}
		}
	}

	// Update focused component
	switch m.currentPane {
	case searchPane:
		if m.searchInput.Focused() {
			m.searchInput, cmd = m.searchInput.Update(msg)
		} else {
			m.resultList, cmd = m.resultList.Update(msg)
		}
		cmds = append(cmds, cmd)
	case graphPane:
		m.nodeTable, cmd = m.nodeTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) switchPane(pane view) {
	m.currentPane = pane
	if pane == searchPane {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
}

func (m *model) runSearch() {
	query := m.searchInput.Value()
	hits := m.index.Search(query, nil, m.cfg.Search.Limit)

	items := make([]list.Item, 0, len(hits))
	for _, hit := range hits {
		items = append(items, resultItem{result: hit})
	}
	m.resultList.SetItems(items)

	if strings.TrimSpace(query) == "" {
		m.message = "Empty query"
		m.messageErr = true
		return
	}
	m.message = fmt.Sprintf("%d results for %q", len(hits), query)
	m.messageErr = false
	if len(hits) > 0 {
		m.searchInput.Blur()
	}
}

// openSelectedHit seeds the selected hit into the visible graph and wires
// it in through its visible ancestors.
func (m *model) openSelectedHit() {
	item, ok := m.resultList.SelectedItem().(resultItem)
	if !ok {
		return
	}
	hit := item.result

	kind := graphview.KindRecord
	if hit.Category == search.CategoryDocument {
		kind = graphview.KindDocument
	}
	node, ok := m.engine.SeedNode(kind, hit.Key, graphview.Position{X: 100, Y: 100}, m.state)
	if !ok {
		m.message = fmt.Sprintf("Entity %s no longer exists", hit.Key)
		m.messageErr = true
		return
	}

	if err := m.engine.ExpandPath(context.Background(), node.ID, m.state); err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}

	m.refreshNodeTable()
	m.message = fmt.Sprintf("Opened %s", hit.Title)
	m.messageErr = false
	m.currentPane = graphPane
}

func (m *model) expandSelected() {
	id := m.selectedNodeID()
	if id == "" {
		m.message = "Nothing selected"
		m.messageErr = true
		return
	}

	if err := m.engine.Expand(context.Background(), id, m.state); err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}
	m.refreshNodeTable()
	m.message = fmt.Sprintf("Expanded %s", id)
	m.messageErr = false
}

func (m *model) collapseSelected() {
	id := m.selectedNodeID()
	if id == "" {
		m.message = "Nothing selected"
		m.messageErr = true
		return
	}

	m.engine.Collapse(id, m.state)
	m.refreshNodeTable()
	m.message = fmt.Sprintf("Collapsed %s", id)
	m.messageErr = false
}

func (m *model) selectedNodeID() string {
	row := m.nodeTable.SelectedRow()
	if row == nil {
		return ""
	}
	return row[0]
}

func (m *model) refreshNodeTable() {
	rows := make([]table.Row, 0, len(m.state.Nodes))
	for _, n := range m.state.Nodes {
		rows = append(rows, table.Row{
			n.ID,
			string(n.Kind),
			truncate(n.Title, 28),
			fmt.Sprintf("%d", n.ChildCount),
			fmt.Sprintf("%v", n.Expanded),
		})
	}
	m.nodeTable.SetRows(rows)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Cluso GraphView Explorer"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentPane {
	case graphPane:
		s.WriteString(m.renderGraph())
	case searchPane:
		s.WriteString(m.renderSearch())
	case statsPane:
		s.WriteString(m.renderStats())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Graph", "Search", "Stats"}
	var rendered []string
	for i, tab := range tabs {
		if view(i) == m.currentPane {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderGraph() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Visible Graph"))
	s.WriteString("\n\n")

	if len(m.state.Nodes) == 0 {
		s.WriteString(helpStyle.Render("Nothing visible yet.\n\nSearch for an entity and press enter to seed it."))
		return contentStyle.Render(s.String())
	}

	s.WriteString(m.nodeTable.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(fmt.Sprintf("%d nodes, %d edges visible", len(m.state.Nodes), len(m.state.Edges))))

	return contentStyle.Render(s.String())
}

func (m model) renderSearch() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Search"))
	s.WriteString("\n\n")
	s.WriteString(m.searchInput.View())
	s.WriteString("\n\n")
	s.WriteString(m.resultList.View())

	return contentStyle.Render(s.String())
}

func (m model) renderStats() string {
	stats := m.engine.Stats(m.state)

	content := fmt.Sprintf(`Session
━━━━━━━━━━━━━━━
ID:         %s
Expansions: %d
Collapses:  %d

Graph
━━━━━━━━━━━━━━━
Visible nodes: %d
Visible edges: %d
Memoized:      %d

Repository
━━━━━━━━━━━━━━━
Records:   %d
Documents: %d`,
		stats.SessionID,
		stats.Expansions,
		stats.Collapses,
		stats.VisibleNodes,
		stats.VisibleEdges,
		stats.MemoizedNodes,
		m.repo.RecordCount(),
		m.repo.DocumentCount(),
	)

	return contentStyle.Render(statsBoxStyle.Render(content))
}

// logWriter keeps JSON logs off the terminal the TUI owns.
func logWriter() io.Writer {
	f, err := os.OpenFile("explorer.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}

func main() {
	var (
		dataFile   = flag.String("data", "dataset.json", "Entity dataset file")
		configFile = flag.String("config", "", "Explorer configuration file")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	logger := logging.NewJSONLogger(logWriter(), cfg.LogLevel())

	records, documents, err := LoadDataset(*dataFile)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	reg := metrics.DefaultRegistry()

	repo := repository.New(logger).WithMetrics(reg)
	for _, r := range records {
		repo.UpsertRecord(r)
	}
	for _, d := range documents {
		repo.UpsertDocument(d)
	}
	reg.UpdateRepository(repo.RecordCount(), repo.DocumentCount())

	// Hierarchical stays nil so the engine roots each relayout at the
	// expanded node instead of a fixed global root.
	var layoutAlgo layout.Layout
	if cfg.Layout.Algorithm != "" && cfg.Layout.Algorithm != "hierarchical" {
		layoutAlgo, err = cfg.BuildLayout()
		if err != nil {
			log.Fatalf("Failed to build layout: %v", err)
		}
	}

	engine := expansion.New(expansion.Config{
		Repository: repo,
		Layout:     layoutAlgo,
		Logger:     logger,
		Metrics:    reg,
	})

	idx := search.BuildIndex(repo).WithMetrics(reg)

	p := tea.NewProgram(initialModel(repo, engine, idx, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
