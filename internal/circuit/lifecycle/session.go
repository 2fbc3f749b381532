package lifecycle

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

// Result summarizes a solved puzzle.
type Result struct {
	LevelID    string
	Difficulty string
	Seed       int64
	GridSize   int
	Moves      int
	MinMoves   int
	Elapsed    time.Duration
	Stars      int
}

// SessionConfig configures a play session.
type SessionConfig struct {
	Difficulty core.Difficulty
	Logger     *log.Logger
	Clock      func() time.Time // nil uses time.Now
}

// Session sequences puzzles through the state machine: it loads a level,
// routes rotations while playing, and moves to the next puzzle after victory.
// Running out of time on a timed difficulty loses the puzzle; the player
// may then retry it with Reset or skip it with Next.
type Session struct {
	cfg     SessionConfig
	machine *Machine
	manager *Manager
	timer   *Timer
	logger  *log.Logger
	solved  int
}

// NewSession creates a session drawing levels from source.
func NewSession(source LevelSource, cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		cfg:     cfg,
		machine: NewMachine(),
		manager: NewManager(source, logger),
		timer:   NewTimer(cfg.Difficulty.TimeLimit, cfg.Clock),
		logger:  logger,
	}
	s.machine.OnTransition(func(ev Event) {
		logger.Debug("state changed", "from", ev.From, "to", ev.To)
	})
	return s
}

// Machine exposes the state machine, e.g. to subscribe to events.
func (s *Session) Machine() *Machine {
	return s.machine
}

// Manager exposes the level manager for read-only queries.
func (s *Session) Manager() *Manager {
	return s.manager
}

// Timer exposes the play timer.
func (s *Session) Timer() *Timer {
	return s.timer
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.machine.State()
}

// Difficulty returns the active difficulty.
func (s *Session) Difficulty() core.Difficulty {
	return s.cfg.Difficulty
}

// Solved returns the number of puzzles completed in this session.
func (s *Session) Solved() int {
	return s.solved
}

// Start loads the first puzzle. If generation fails the session stays in
// Loading and Start may be called again.
func (s *Session) Start() error {
	if s.machine.State() == StateInit {
		if err := s.machine.Transition(StateLoading); err != nil {
			return err
		}
	}
	if s.machine.State() != StateLoading {
		return &TransitionError{From: s.machine.State(), To: StateLoading}
	}
	return s.load()
}

// StartWith loads a prepared level instead of generating one. It is valid
// from Init, Loading, Victory and TimeUp, so callers that generate levels
// elsewhere can use it for every puzzle of the session.
func (s *Session) StartWith(level *core.Level) error {
	if st := s.machine.State(); st == StateInit || st == StateVictory || st == StateTimeUp {
		if err := s.machine.Transition(StateLoading); err != nil {
			return err
		}
	}
	if s.machine.State() != StateLoading {
		return &TransitionError{From: s.machine.State(), To: StateLoading}
	}
	s.manager.Load(level)
	return s.play()
}

func (s *Session) load() error {
	if _, err := s.manager.Generate(s.cfg.Difficulty); err != nil {
		s.logger.Warn("could not generate level", "difficulty", s.cfg.Difficulty.Name, "error", err)
		return fmt.Errorf("load level: %w", err)
	}
	return s.play()
}

func (s *Session) play() error {
	if err := s.machine.Transition(StatePlaying); err != nil {
		return err
	}
	s.timer.Start()
	// An unscrambled puzzle is won on arrival.
	if s.manager.IsSolved() {
		s.timer.Stop()
		s.solved++
		return s.machine.Transition(StateVictory)
	}
	return nil
}

// CheckTimeout moves a playing session whose time limit has run out to
// TimeUp. It reports whether the puzzle is lost.
func (s *Session) CheckTimeout() bool {
	if s.machine.State() == StateTimeUp {
		return true
	}
	if s.machine.State() != StatePlaying || !s.timer.Expired() {
		return false
	}
	s.timer.Stop()
	if err := s.machine.Transition(StateTimeUp); err != nil {
		s.logger.Error("time-up transition rejected", "error", err)
		return false
	}
	level := s.manager.Level()
	s.logger.Info("time limit reached",
		"difficulty", s.cfg.Difficulty.Name,
		"level", level.ID,
		"limit", s.timer.Limit(),
		"moves", s.manager.MoveCount(),
	)
	return true
}

// TimedOut reports whether the current puzzle was lost to the time limit.
func (s *Session) TimedOut() bool {
	return s.machine.State() == StateTimeUp
}

// Rotate forwards a rotation while playing. It reports whether the tile
// turned. Solving the puzzle moves the session to Victory; once the time
// limit has passed no rotation is accepted.
func (s *Session) Rotate(x, y int) bool {
	if s.machine.State() != StatePlaying || s.CheckTimeout() {
		return false
	}
	if !s.manager.RotateTile(x, y) {
		return false
	}
	if s.manager.IsSolved() {
		s.timer.Stop()
		s.solved++
		if err := s.machine.Transition(StateVictory); err != nil {
			s.logger.Error("victory transition rejected", "error", err)
		}
	}
	return true
}

// Reset restores the current puzzle's starting state and restarts the timer.
// After a timeout it starts a fresh attempt at the same puzzle.
func (s *Session) Reset() error {
	switch s.machine.State() {
	case StatePlaying:
	case StateTimeUp:
		if err := s.machine.Transition(StatePlaying); err != nil {
			return err
		}
	default:
		return &TransitionError{From: s.machine.State(), To: StatePlaying}
	}
	if err := s.manager.Reset(); err != nil {
		return err
	}
	s.timer.Start()
	return nil
}

// Next advances from Victory or TimeUp to a freshly generated puzzle.
func (s *Session) Next() error {
	if err := s.machine.Transition(StateLoading); err != nil {
		return err
	}
	return s.load()
}

// Pause suspends play and the timer. An expired puzzle cannot be paused.
func (s *Session) Pause() error {
	if s.CheckTimeout() {
		return &TransitionError{From: StateTimeUp, To: StatePaused}
	}
	if err := s.machine.Transition(StatePaused); err != nil {
		return err
	}
	s.timer.Pause()
	return nil
}

// Resume continues a paused puzzle.
func (s *Session) Resume() error {
	if err := s.machine.Transition(StatePlaying); err != nil {
		return err
	}
	s.timer.Resume()
	return nil
}

// TogglePause pauses while playing and resumes while paused.
func (s *Session) TogglePause() error {
	if s.machine.State() == StatePaused {
		return s.Resume()
	}
	return s.Pause()
}

// Quit moves to Exiting.
func (s *Session) Quit() error {
	s.timer.Stop()
	return s.machine.Transition(StateExiting)
}

// Result returns the outcome of the puzzle just solved. The second value
// is false unless the session is in Victory.
func (s *Session) Result() (Result, bool) {
	level := s.manager.Level()
	if s.machine.State() != StateVictory || level == nil {
		return Result{}, false
	}
	minMoves := s.manager.MinimumMoves()
	elapsed := s.timer.Elapsed()
	return Result{
		LevelID:    level.ID,
		Difficulty: level.Difficulty,
		Seed:       level.Seed,
		GridSize:   level.Size(),
		Moves:      s.manager.MoveCount(),
		MinMoves:   minMoves,
		Elapsed:    elapsed,
		Stars:      Stars(elapsed, s.timer.Limit(), s.manager.MoveCount(), minMoves),
	}, true
}
