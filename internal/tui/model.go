// Package tui is a terminal front end for the directory: the same controller
// the web pages use, drawn with lipgloss instead of HTML.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vytor/userdirectory/internal/directory"
	"github.com/vytor/userdirectory/internal/logger"
	"github.com/vytor/userdirectory/internal/models"
	"github.com/vytor/userdirectory/internal/randomuser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// profilesLoadedMsg carries the outcome of the one fetch a session makes.
type profilesLoadedMsg struct {
	profiles []models.Profile
	err      error
}

// Model is the bubbletea model. It is also the controller's Renderer, so the
// controller decides what is visible and View only draws it.
type Model struct {
	ctx     context.Context
	source  randomuser.ClientInterface
	request randomuser.FetchRequest
	ctrl    *directory.Controller
	log     *logger.Logger

	search   textinput.Model
	cards    []directory.Card
	overlay  *directory.OverlayView
	selected int
	loading  bool
	err      error
	title    cases.Caser
}

var (
	_ tea.Model          = (*Model)(nil)
	_ directory.Renderer = (*Model)(nil)
)

// New builds a model that fetches req from source once Init runs.
func New(ctx context.Context, source randomuser.ClientInterface, req randomuser.FetchRequest) *Model {
	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "
	search.CharLimit = 64
	search.Width = 40

	m := &Model{
		ctx:     ctx,
		source:  source,
		request: req,
		log:     logger.FromContext(ctx).WithPrefix("tui"),
		search:  search,
		loading: true,
		title:   cases.Title(language.English),
	}
	// The fetch runs in a tea.Cmd, so the controller never sees the source.
	m.ctrl = directory.New(nil, m, directory.WithFetchRequest(req), directory.WithLogger(m.log))
	return m
}

func (m *Model) RenderList(cards []directory.Card) {
	m.cards = cards
	if m.selected >= len(cards) {
		m.selected = max(len(cards)-1, 0)
	}
}

func (m *Model) RenderOverlay(view directory.OverlayView) {
	m.overlay = &view
}

func (m *Model) CloseOverlay() {
	m.overlay = nil
}

func (m *Model) fetch() tea.Msg {
	profiles, err := m.source.FetchProfiles(m.ctx, m.request)
	return profilesLoadedMsg{profiles: profiles, err: err}
}

func (m *Model) Init() tea.Cmd {
	return m.fetch
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profilesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.log.Error("failed to fetch profiles: %v", msg.err)
			return m, nil
		}
		m.ctrl.Restore(msg.profiles)
		m.log.Info("loaded %d profiles", len(msg.profiles))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.search.Focused():
			return m.handleSearchKeys(msg)
		case m.overlay != nil:
			return m.handleOverlayKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.ctrl.Query() {
		m.selected = 0
		m.ctrl.Search(m.search.Value())
	}
	return m, cmd
}

func (m *Model) handleOverlayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		if state := m.ctrl.Overlay(); m.ctrl.Close() {
			m.selected = state.Index
		}
	case "right", "l", "n":
		m.ctrl.Next()
	case "left", "h", "p":
		m.ctrl.Prev()
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "/":
		return m, m.search.Focus()
	case "right", "l", "tab":
		m.move(1)
	case "left", "h", "shift+tab":
		m.move(-1)
	case "down", "j":
		m.move(cardsPerRow)
	case "up", "k":
		m.move(-cardsPerRow)
	case "enter":
		if len(m.cards) > 0 {
			if err := m.ctrl.OpenCard(m.selected); err != nil {
				m.log.Warn("open card: %v", err)
			}
		}
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if len(m.cards) == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.cards)-1)
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("AWESOME STARTUP EMPLOYEE DIRECTORY"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(styleMuted.Render("Loading profiles..."))
	case m.err != nil:
		b.WriteString(styleError.Render("Could not load profiles: " + m.err.Error()))
	case m.overlay != nil:
		b.WriteString(m.overlayView(*m.overlay))
	case len(m.cards) == 0:
		b.WriteString(styleMuted.Render("No matches."))
	default:
		b.WriteString(m.galleryView())
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render(m.helpLine()))
	return b.String()
}

func (m *Model) galleryView() string {
	var rows []string
	for start := 0; start < len(m.cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(m.cards))
		var row []string
		for i := start; i < end; i++ {
			row = append(row, m.cardView(m.cards[i], i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) cardView(c directory.Card, selected bool) string {
	style := styleCard
	if selected {
		style = styleCardSelected
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		styleName.Render(m.title.String(c.Name)),
		c.Email,
		styleMuted.Render(m.title.String(c.Location)),
	))
}

func (m *Model) overlayView(o directory.OverlayView) string {
	nav := fmt.Sprintf("%d of %d", o.Index+1, o.Total)
	if o.ShowPrev {
		nav = "← prev   " + nav
	}
	if o.ShowNext {
		nav += "   next →"
	}

	return styleOverlay.Render(lipgloss.JoinVertical(lipgloss.Center,
		styleName.Render(m.title.String(o.Name)),
		o.Email,
		m.title.String(o.City),
		styleMuted.Render(strings.Repeat("─", 30)),
		o.Phone,
		o.Address,
		o.Birthday,
		"",
		styleMuted.Render(nav),
	))
}

func (m *Model) helpLine() string {
	switch {
	case m.search.Focused():
		return "type to filter • enter/esc: done"
	case m.overlay != nil:
		return "←/h: prev • →/l: next • esc: close • q: quit"
	default:
		return "arrows/hjkl: move • enter: open • /: search • q: quit"
	}
}
