package core

// RuntimeConfig is handed to a game whenever it is reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed, 0 lets the platform pick one
}

// DefaultConfig returns the config used when the terminal size is unknown.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
	}
}

// GameState is the status a game reports to the platform after every step.
type GameState struct {
	Score    int
	Level    int
	Lines    int
	GameOver bool
	Paused   bool
}

// EventKind classifies something noteworthy that happened during a step.
type EventKind int

const (
	EventPieceLocked EventKind = iota + 1
	EventLinesCleared
	EventHold
	EventLevelUp
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventPieceLocked:
		return "piece_locked"
	case EventLinesCleared:
		return "lines_cleared"
	case EventHold:
		return "hold"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step for collaborators such as loggers or sound.
type Event struct {
	Kind  EventKind
	Value int // Lines cleared, new level or final score depending on Kind
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
