// Package tui is the terminal front end: a bubbletea program that feeds typed
// guesses into the game engine and renders the indicator, clues, and history.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/thecivilword/civilword/internal/debounce"
	"github.com/thecivilword/civilword/internal/game"
	"github.com/thecivilword/civilword/internal/puzzle"
	"github.com/thecivilword/civilword/internal/share"
)

// noticeTTL is how long the copy notice stays on screen.
const noticeTTL = 1500 * time.Millisecond

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	hiddenStyle  = lipgloss.NewStyle().Faint(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8000"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0080FF"))
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// Options configures the model.
type Options struct {
	// Pick chooses the record for each new game (daily or practice).
	Pick      func() (puzzle.Record, error)
	Now       func() time.Time
	Debounce  time.Duration
	Copier    *share.Copier
	ShareSite string
}

// Model is the bubbletea model for one play session.
type Model struct {
	opts   Options
	game   *game.Game
	input  textinput.Model
	gate   *debounce.Gate
	last   game.Outcome
	notice string
	alert  string
}

// clearNoticeMsg hides the copy notice.
type clearNoticeMsg struct{}

// New builds a model and starts the first game.
func New(opts Options) (*Model, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ti := textinput.New()
	ti.Placeholder = "your guess"
	ti.Prompt = "> "
	ti.Focus()

	m := &Model{opts: opts, input: ti}
	if err := m.newGame(); err != nil {
		return nil, err
	}
	return m, nil
}

// Game exposes the current game (read-only use).
func (m *Model) Game() *game.Game { return m.game }

// newGame replaces the current game with a fresh one.
func (m *Model) newGame() error {
	rec, err := m.opts.Pick()
	if err != nil {
		return err
	}
	m.game = game.New(rec)
	m.gate = debounce.New(m.opts.Debounce)
	m.last = game.Ignored
	m.notice, m.alert = "", ""
	m.input.Reset()
	m.input.Focus()
	log.Debug().Str("game", m.game.ID).Msg("new game")
	return nil
}

func (m *Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyCtrlN:
			if err := m.newGame(); err != nil {
				m.alert = err.Error()
			}
			return m, nil
		case tea.KeyCtrlS:
			return m, m.share()
		}
	case clearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit forwards the typed guess when play is open and the debounce allows it.
// Input is cleared only when the guess was counted.
func (m *Model) submit() {
	if !m.game.Playing() || !m.gate.Allow(m.opts.Now()) {
		return
	}
	res := m.game.Submit(m.input.Value())
	if res.Outcome == game.Ignored {
		return
	}
	m.last = res.Outcome
	m.input.Reset()
	if !m.game.Playing() {
		m.input.Blur()
	}
}

// share copies the result once the game is over.
func (m *Model) share() tea.Cmd {
	if m.game.Playing() {
		return nil
	}
	text := share.Text(m.game.Indicator(), m.opts.Now(), m.opts.ShareSite)
	if m.opts.Copier == nil {
		m.alert = share.ErrCopyFailed.Error()
		return nil
	}
	if err := m.opts.Copier.Copy(text); err != nil {
		log.Warn().Err(err).Msg("share copy failed")
		m.alert = "Could not copy result to clipboard."
		return nil
	}
	m.alert = ""
	m.notice = "Copied result to clipboard"
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{} })
}

func (m *Model) View() string {
	g := m.game
	var b strings.Builder

	b.WriteString(titleStyle.Render(share.Title))
	b.WriteString("\n\n  ")
	b.WriteString(g.Indicator())
	b.WriteString("\n\n")

	for n := 1; n <= puzzle.ClueCount; n++ {
		fmt.Fprintf(&b, "  %d. %s\n", n, orHidden(g.Clue(n)))
	}
	fmt.Fprintf(&b, "  length: %s\n\n", orHidden(g.LengthHint()))

	if g.Playing() {
		b.WriteString("  " + m.input.View() + "\n")
	}
	switch m.last {
	case game.Won:
		b.WriteString("  " + correctStyle.Render("correct") + "\n")
	case game.Incorrect, game.Lost:
		b.WriteString("  " + wrongStyle.Render("not quite") + "\n")
	}
	if h := g.HistoryText(); h != "" {
		b.WriteString("  " + h + "\n")
	}
	if sol := g.Solution(); sol != "" {
		b.WriteString("  - " + sol + " -\n")
	}
	if m.notice != "" {
		b.WriteString("  " + m.notice + "\n")
	}
	if m.alert != "" {
		b.WriteString("  " + alertStyle.Render(m.alert) + "\n")
	}

	help := "enter guess • ctrl+n new game • esc quit"
	if !g.Playing() {
		help = "ctrl+s share • " + help
	}
	b.WriteString("\n" + helpStyle.Render(help) + "\n")
	return b.String()
}

func orHidden(s string) string {
	if s == "" {
		return hiddenStyle.Render("-")
	}
	return s
}

// Run starts the program on the terminal and blocks until the player quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
