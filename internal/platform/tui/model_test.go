package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// stubGame records the frames it is stepped with.
type stubGame struct {
	id      string // defaults to "stub"
	state   core.GameState
	frames  []core.InputFrame
	resets  int
	resized [2]int
}

func (g *stubGame) ID() string {
	if g.id == "" {
		return "stub"
	}
	return g.id
}

func (g *stubGame) Title() string { return "Title " + g.ID() }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Level: 1}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if in.Count(core.ActionPause)%2 == 1 {
		g.state.Paused = !g.state.Paused
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func newTestModel(t *testing.T, g *stubGame, store *storage.Store, opts Options) GameModel {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1}
	m := NewGameModel(g, store, cfg, opts)
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestModelForwardsKeysOnTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{})

	m = update(t, m, runeKey("a"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})

	if len(g.frames) != 1 {
		t.Fatalf("game stepped %d times, want 1", len(g.frames))
	}
	seq := g.frames[0].Sequence()
	if len(seq) != 2 || seq[0] != core.ActionLeft || seq[1] != core.ActionHardDrop {
		t.Errorf("frame sequence = %v, want [Left HardDrop]", seq)
	}

	m = update(t, m, TickMsg{})
	if len(g.frames[1].Sequence()) != 0 {
		t.Error("frame was not cleared after a tick")
	}
}

func TestModelEscPausesThenLeaves(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("esc while playing should pause")
	}
	if m.BackToMenu() {
		t.Fatal("first esc must not leave the game")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}
}

func TestModelStandaloneBackQuits(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{Standalone: true})
	g.state.GameOver = true
	m = update(t, m, TickMsg{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(GameModel).BackToMenu() {
		t.Fatal("back not recorded")
	}
	if cmd == nil {
		t.Fatal("standalone back should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("standalone back should quit the program")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &stubGame{}, nil, Options{})
	m = update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{})

	m = update(t, m, runeKey("r"))
	m = update(t, m, TickMsg{})
	if g.resets != 1 {
		t.Fatalf("restart while playing reset the game (%d resets)", g.resets)
	}

	g.state.GameOver = true
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("r"))
	m = update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.gameState.GameOver {
		t.Error("state still game over after restart")
	}
}

func TestModelNoPromptWithoutStore(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{})
	g.state.Score = 500
	g.state.GameOver = true

	m = update(t, m, TickMsg{})
	if m.entering {
		t.Error("prompt opened without a store")
	}
}

func TestModelSavesNamedScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := &stubGame{}
	m := newTestModel(t, g, store, Options{})
	g.state = core.GameState{Score: 1200, Level: 2, Lines: 12, GameOver: true}

	m = update(t, m, TickMsg{})
	if !m.entering {
		t.Fatal("prompt should open at game over")
	}
	if !strings.Contains(m.View(), "Enter your name") {
		t.Error("prompt view missing")
	}

	m = update(t, m, runeKey("ada"))
	m = update(t, m, runeKey("q")) // typed, not a quit
	if m.IsQuitting() {
		t.Fatal("keys typed into the prompt must not quit")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.entering {
		t.Fatal("prompt still open after enter")
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("stored %d scores, want 1", len(scores))
	}
	got := scores[0]
	if got.PlayerName != "adaq" || got.Score != 1200 || got.Level != 2 || got.RowsCleared != 12 {
		t.Errorf("stored %+v", got)
	}
	if !strings.Contains(m.saveMsg, "adaq") {
		t.Errorf("saveMsg = %q", m.saveMsg)
	}

	// Further ticks while over never save twice.
	m = update(t, m, TickMsg{})
	if all, _ := store.AllScores("stub"); len(all) != 1 {
		t.Errorf("stored %d scores after extra tick, want 1", len(all))
	}
}

func TestModelSkipPrompt(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := &stubGame{}
	m := newTestModel(t, g, store, Options{PlayerName: "bob"})
	g.state = core.GameState{Score: 300, Level: 1, GameOver: true}

	m = update(t, m, TickMsg{})
	if got := m.nameInput.Value(); got != "bob" {
		t.Errorf("prefilled name = %q, want bob", got)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.entering || m.BackToMenu() {
		t.Fatal("esc in the prompt should only close it")
	}
	if all, _ := store.AllScores("stub"); len(all) != 0 {
		t.Errorf("skipped prompt stored %d scores", len(all))
	}
}

func TestModelResizeUsesResizer(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{})

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resets != 1 {
		t.Errorf("resize restarted the game (%d resets)", g.resets)
	}
	if g.resized != [2]int{100, 39} {
		t.Errorf("resized to %v, want [100 39] with a help row", g.resized)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if g.resized != [2]int{60, 20} {
		t.Errorf("resized to %v, want [60 20] with no help row", g.resized)
	}
	if lines := strings.Split(m.View(), "\n"); len(lines) != 20 {
		t.Errorf("view has %d lines, want 20", len(lines))
	}
}
