package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pobsd/catalog"
	"pobsd/game"
	"pobsd/logger"
	"pobsd/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [DATABASE]",
	Short: "Browse the games interactively",
	Long:  `Launch an interactive TUI to list, search and inspect the games of the database.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// searchMode is the field the search box filters on.
type searchMode int

const (
	searchName searchMode = iota
	searchTag
	searchGenre
	searchModeCount
)

func (s searchMode) String() string {
	switch s {
	case searchTag:
		return "Tag"
	case searchGenre:
		return "Genre"
	default:
		return "Name"
	}
}

func (s searchMode) field() game.Field {
	switch s {
	case searchTag:
		return game.FieldTags
	case searchGenre:
		return game.FieldGenre
	default:
		return game.FieldGame
	}
}

// browseModel represents the state of the TUI.
type browseModel struct {
	all        catalog.GameResult
	games      []*game.Game
	selected   int
	searching  bool
	mode       searchMode
	input      textinput.Model
	errorLines []int
	width      int
	height     int
}

func newBrowseModel(cat *catalog.Catalog, errorLines []int) browseModel {
	input := textinput.New()
	input.Placeholder = "type to search"
	input.Prompt = "/ "
	input.CharLimit = 64

	all := cat.GetAll()
	return browseModel{
		all:        all,
		games:      all.Items,
		input:      input,
		errorLines: errorLines,
		width:      100,
		height:     30,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKeyMsg(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *browseModel) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case "home", "g":
		m.selected = 0
	case "end", "G":
		m.moveSelection(len(m.games))
	case "s", "/":
		m.searching = true
		return m.input.Focus()
	case "tab":
		m.cycleMode()
	case "esc":
		m.clearSearch()
	}
	return nil
}

func (m *browseModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.clearSearch()
		return nil
	case "enter":
		m.searching = false
		m.input.Blur()
		return nil
	case "tab":
		m.cycleMode()
		return nil
	case "up":
		m.moveSelection(-1)
		return nil
	case "down":
		m.moveSelection(1)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return cmd
}

func (m *browseModel) cycleMode() {
	m.mode = (m.mode + 1) % searchModeCount
	m.refresh()
}

func (m *browseModel) clearSearch() {
	m.searching = false
	m.input.Blur()
	m.input.SetValue("")
	m.refresh()
}

// refresh recomputes the visible games from the search text.
func (m *browseModel) refresh() {
	text := m.input.Value()
	switch {
	case text == "":
		m.games = m.all.Items
	case m.mode == searchName:
		m.games = m.all.SearchByName(text).Items
	default:
		m.games = m.all.FilterBySubstring(m.mode.field(), text).Items
	}
	m.moveSelection(0)
}

// moveSelection moves the cursor by delta, clamped to the visible games.
func (m *browseModel) moveSelection(delta int) {
	m.selected += delta
	if m.selected > len(m.games)-1 {
		m.selected = len(m.games) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m browseModel) current() (*game.Game, bool) {
	if len(m.games) == 0 {
		return nil, false
	}
	return m.games[m.selected], true
}

// View renders the UI
func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(ui.HeaderStyle.Render(fmt.Sprintf("PlayOnBSD games  %d/%d", len(m.games), m.all.Len())))
	b.WriteString("\n")
	if len(m.errorLines) > 0 {
		b.WriteString(ui.ErrorStyle.Render("Malformed records at lines " + formatLines(m.errorLines)))
		b.WriteString("\n")
	}
	if m.searching || m.input.Value() != "" {
		b.WriteString(ui.OKStyle.Render("["+m.mode.String()+"]") + " " + m.input.View() + "\n")
	}
	b.WriteString("\n")

	if len(m.games) == 0 {
		b.WriteString("No games found.\n")
	} else {
		listWidth := 40
		list := m.renderList(listWidth)
		g, _ := m.current()
		detail := lipgloss.NewStyle().PaddingLeft(2).Width(max(m.width-listWidth-4, 30)).Render(renderDetail(g))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))
		b.WriteString("\n")
	}

	b.WriteString("\n" + renderFooter(m.searching))
	return b.String()
}

// listHeight is the number of rows the game list may use.
func (m browseModel) listHeight() int {
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return h
}

func (m browseModel) renderList(width int) string {
	height := m.listHeight()
	start := m.selected - height/2
	if start > len(m.games)-height {
		start = len(m.games) - height
	}
	if start < 0 {
		start = 0
	}
	end := min(start+height, len(m.games))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := fmt.Sprintf("%-*s", width-2, truncate(m.games[i].Name, width-2))
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == m.selected {
			style = style.Inherit(ui.SelectedStyle)
		}
		rows = append(rows, style.Render(row))
	}
	return strings.Join(rows, "\n")
}

func renderDetail(g *game.Game) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(g.Name))
	b.WriteString("\n")
	for _, f := range game.AllFields[1:] {
		label := ui.LabelStyle.Render(f.Tag())
		if f == game.FieldStore && len(g.Stores) > 0 {
			for i, link := range g.Stores {
				if i > 0 {
					label = ui.LabelStyle.Render("")
				}
				b.WriteString(label + ui.StoreBadge(link) + "\n")
			}
			continue
		}
		v, ok := g.Value(f)
		if !ok {
			v = "-"
		}
		b.WriteString(label + v + "\n")
	}
	return b.String()
}

func renderFooter(searching bool) string {
	if searching {
		return ui.FooterStyle.Render("type: search  tab: Name/Tag/Genre  ↑/↓: move  enter: keep  esc: clear")
	}
	return ui.FooterStyle.Render("↑/k: up  ↓/j: down  s: search  tab: search field  esc: clear  q: quit")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen-3]) + "..."
	}
	return s
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cat, res, err := loadCatalog(cmd, databasePath(args))
	if err != nil {
		return err
	}

	p := tea.NewProgram(newBrowseModel(cat, res.ErrorLines), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Errorw("Failed to run browser", zap.Error(err))
		return err
	}
	return nil
}
