package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// helpMinHeight is the terminal height from which the key help line is shown
// below the playfield.
const helpMinHeight = 27

// Finisher is implemented by games that report a full result at game over.
type Finisher interface {
	Final(player string) tetris.FinalScore
}

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// Options tunes a game model.
type Options struct {
	PlayerName string      // Prefilled name for the score prompt
	Logger     *log.Logger // nil discards log output
	Standalone bool        // Back quits instead of returning to a menu
}

// discardLogger returns a logger that writes nowhere.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// GameModel is the Bubble Tea model for running one game mode.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	nameInput  textinput.Model
	entering   bool   // Name prompt is open
	scoreSaved bool   // Score handled for the current game over
	saveMsg    string // Outcome shown after the prompt closes
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	input := textinput.New()
	input.Placeholder = storage.DefaultPlayerName
	input.CharLimit = storage.MaxPlayerName
	input.Width = storage.MaxPlayerName + 1
	input.Prompt = "> "

	m := GameModel{
		game:       game,
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger.With("game", game.ID()),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		nameInput:  input,
	}
	m.screen = core.NewScreen(m.playArea())
	return m
}

// playArea returns the screen size handed to the game, leaving a row for
// the help line when there is room.
func (m GameModel) playArea() (int, int) {
	h := m.config.ScreenH
	if h >= helpMinHeight {
		h--
	}
	return m.config.ScreenW, h
}

func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenW, cfg.ScreenH = m.playArea()
	return cfg
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Debug("game started", "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.entering {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input while playing.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			return m.leave()
		}
		// Esc while playing pauses first.
		m.inputFrame.Set(core.ActionPause)
		return m, nil

	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
		return m, nil

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.opts.Standalone {
		return m, tea.Quit
	}
	return m, nil
}

// handleNameKey drives the score prompt.
func (m GameModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.saveScore(m.nameInput.Value())
		return m, nil
	case tea.KeyEsc:
		m.entering = false
		m.scoreSaved = true
		m.saveMsg = "Score not saved"
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(m.playArea())
	m.help.Width = msg.Width

	if r, ok := m.game.(Resizer); ok {
		r.Resize(m.playArea())
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.saveMsg = ""
		m.inputFrame.Clear()
		m.logger.Debug("game restarted", "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	for _, e := range result.Events {
		switch e.Kind {
		case core.EventLevelUp:
			m.logger.Debug("level up", "level", e.Value)
		case core.EventLinesCleared:
			m.logger.Debug("lines cleared", "count", e.Value)
		}
	}

	var cmd tea.Cmd
	if m.gameState.GameOver && !wasOver {
		m.logger.Info("game over",
			"score", m.gameState.Score,
			"level", m.gameState.Level,
			"rows", m.gameState.Lines,
		)
		cmd = m.promptForName()
	}

	return m, tea.Batch(cmd, tickCmd(m.config.TickRate))
}

// promptForName opens the name prompt when there is something worth saving.
func (m *GameModel) promptForName() tea.Cmd {
	if m.scoreSaved || m.store == nil || m.gameState.Score <= 0 {
		m.scoreSaved = true
		return nil
	}
	m.entering = true
	m.nameInput.SetValue(m.opts.PlayerName)
	m.nameInput.CursorEnd()
	return m.nameInput.Focus()
}

// result builds the final score for name.
func (m GameModel) result(name string) tetris.FinalScore {
	if f, ok := m.game.(Finisher); ok {
		return f.Final(name)
	}
	return tetris.FinalScore{
		Score:      m.gameState.Score,
		Level:      max(1, m.gameState.Level),
		Rows:       m.gameState.Lines,
		PlayerName: name,
	}
}

// saveScore records the finished game and closes the prompt.
func (m *GameModel) saveScore(name string) {
	m.entering = false
	m.scoreSaved = true
	m.nameInput.Blur()

	name = storage.NormalizePlayerName(name)
	m.opts.PlayerName = name

	if _, err := m.store.SaveScore(m.game.ID(), m.result(name)); err != nil {
		m.logger.Error("could not save score", "err", err)
		m.saveMsg = "Could not save score"
		return
	}
	m.logger.Info("score saved", "player", name, "score", m.gameState.Score)

	m.saveMsg = fmt.Sprintf("Saved for %s", name)
	if best, ok, err := m.store.PlayerBest(m.game.ID(), name); err == nil && ok {
		m.saveMsg = fmt.Sprintf("Saved for %s (best %d)", name, best.Score)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var (
	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	promptTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	promptHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.entering {
		return m.promptView()
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	out := RenderScreen(m.screen)

	if m.config.ScreenH >= helpMinHeight {
		line := m.help.View(m.keyMapper.Keys())
		if m.gameState.GameOver {
			line = promptHintStyle.Render("r restart • esc menu • q quit")
			if m.saveMsg != "" {
				line = promptHintStyle.Render(m.saveMsg + " • r restart • esc menu • q quit")
			}
		}
		out += "\n" + line
	}
	return out
}

func (m GameModel) promptView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		promptTitleStyle.Render("GAME OVER"),
		"",
		fmt.Sprintf("Score %d   Level %d   Lines %d", m.gameState.Score, m.gameState.Level, m.gameState.Lines),
		"",
		"Enter your name:",
		m.nameInput.View(),
		"",
		promptHintStyle.Render("enter save • esc skip"),
	)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH,
		lipgloss.Center, lipgloss.Center, promptBoxStyle.Render(body))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// PlayerName returns the name last used for a saved score, or the prefilled one.
func (m GameModel) PlayerName() string {
	return m.opts.PlayerName
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (GameModel, error) {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(GameModel); ok {
		model = m
	}
	return model, err
}
