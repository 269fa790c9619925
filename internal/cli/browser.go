package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inovacc/pokedex/internal/core"
	"github.com/inovacc/pokedex/internal/model"
	"github.com/inovacc/pokedex/internal/query"
)

type pokemonItem struct {
	p model.Pokemon
}

func (i pokemonItem) Title() string {
	fav := ""
	if i.p.Favorite {
		fav = "⭐ "
	}

	return fmt.Sprintf("%s#%03d %s", fav, i.p.ID, i.p.Name)
}

func (i pokemonItem) Description() string {
	desc := strings.Join(i.p.Types, "/")

	highest := i.p.HighestStat()
	desc = fmt.Sprintf("%s | Best: %s %d", desc, highest.Name, highest.Value)

	if i.p.HasSprites() {
		desc += " | sprites cached"
	}

	return desc
}

func (i pokemonItem) FilterValue() string {
	return i.p.Name
}

// BrowserModel is the interactive catalog list.
type BrowserModel struct {
	catalog *core.Catalog
	pred    query.Predicate
	snap    core.Snapshot

	list      list.Model
	search    textinput.Model
	searching bool

	selected *model.Pokemon
	status   string
	err      error
	quitting bool
}

// NewBrowser loads the first snapshot for pred.
func NewBrowser(c *core.Catalog, pred query.Predicate) (BrowserModel, error) {
	snap, err := c.Snapshot(pred)
	if err != nil {
		return BrowserModel{err: err}, err
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowStatusBar(true)
	// Filtering is done by the catalog predicate, not the list.
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "search by name"
	ti.CharLimit = 64
	ti.SetValue(pred.Search)

	m := BrowserModel{
		catalog: c,
		pred:    pred,
		list:    l,
		search:  ti,
	}
	m.apply(snap)

	return m, nil
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// apply replaces the displayed snapshot, keeping the cursor on the same
// record when it is still visible.
func (m *BrowserModel) apply(snap core.Snapshot) {
	keepID := 0
	if i, ok := m.list.SelectedItem().(pokemonItem); ok {
		keepID = i.p.ID
	}

	m.snap = snap

	items := make([]list.Item, len(snap.Entries))
	cursor := 0

	for i, p := range snap.Entries {
		items[i] = pokemonItem{p: p}

		if p.ID == keepID {
			cursor = i
		}
	}

	m.list.SetItems(items)
	m.list.Select(cursor)
	m.list.Title = m.title()
}

func (m *BrowserModel) title() string {
	title := "All Pokemon"
	if m.pred.FavoritesOnly {
		title = "Favorite Pokemon"
	}

	if s := strings.TrimSpace(m.pred.Search); s != "" {
		title = fmt.Sprintf("%s matching %q", title, s)
	}

	return fmt.Sprintf("%s (%d/%d stored, %d expected)", title, m.snap.Len(), m.snap.Total, m.snap.Expected)
}

func (m *BrowserModel) refresh() {
	snap, err := m.catalog.Snapshot(m.pred)
	if err != nil {
		m.err = err
		return
	}

	m.apply(snap)
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-1)

		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(pokemonItem)
			if ok {
				m.selected = &i.p
			}

			return m, tea.Quit

		case "f":
			i, ok := m.list.SelectedItem().(pokemonItem)
			if !ok {
				return m, nil
			}

			fav, snap, err := m.catalog.ToggleFavorite(i.p.ID, m.pred)
			if err != nil {
				m.err = err
				return m, nil
			}

			m.status = favoriteStatus(i.p.Name, fav)
			m.apply(snap)

			return m, nil

		case "v":
			m.pred.FavoritesOnly = !m.pred.FavoritesOnly
			m.status = ""
			m.refresh()

			return m, nil

		case "/":
			m.searching = true
			m.status = ""
			cmd := m.search.Focus()

			return m, cmd
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// updateSearch edits the search text, re-querying on every keystroke.
func (m BrowserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()

		return m, nil

	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.pred.Search = ""
		m.refresh()

		return m, nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)

	if m.search.Value() != m.pred.Search {
		m.pred.Search = m.search.Value()
		m.refresh()
	}

	return m, cmd
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	var footer string

	switch {
	case m.searching:
		footer = m.search.View()
	case m.status != "":
		footer = successStyle.Render(m.status)
	default:
		footer = dimStyle.Render("f favorite • v favorites only • / search • enter select • q quit")
	}

	return docStyle.Render(m.list.View() + "\n" + footer)
}

// Selected returns the record chosen with enter, or nil.
func (m BrowserModel) Selected() *model.Pokemon {
	return m.selected
}

// Predicate returns the filter in effect when the browser closed.
func (m BrowserModel) Predicate() query.Predicate {
	return m.pred
}

// Snapshot returns the snapshot currently displayed.
func (m BrowserModel) Snapshot() core.Snapshot {
	return m.snap
}

// Err returns the last error raised by a catalog call.
func (m BrowserModel) Err() error {
	return m.err
}

func favoriteStatus(name string, fav bool) string {
	if fav {
		return fmt.Sprintf("✓ Marked %s as favorite", name)
	}

	return fmt.Sprintf("✓ Removed %s from favorites", name)
}
