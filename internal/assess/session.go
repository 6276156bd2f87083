package assess

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ayusman/armline/internal/detector"
	"github.com/google/uuid"
)

// SessionState is the lifecycle state of an assessment session.
type SessionState int

const (
	StateNotStarted SessionState = iota
	StateRunning
	StateCompleted
	StateTimedOut
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateTimedOut:
		return "timed_out"
	default:
		return "not_started"
	}
}

// MarshalJSON encodes the state as its string name.
func (s SessionState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a state from its string name.
func (s *SessionState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "not_started":
		*s = StateNotStarted
	case "running":
		*s = StateRunning
	case "completed":
		*s = StateCompleted
	case "timed_out":
		*s = StateTimedOut
	default:
		return fmt.Errorf("unknown session state %q", name)
	}
	return nil
}

// Status is the externally observable state of a session. Consumers must
// treat it as read-only.
type Status struct {
	SessionID     string       `json:"session_id"`
	State         SessionState `json:"state"`
	Side          Side         `json:"side"`
	Right         SideStatus   `json:"right"`
	Left          SideStatus   `json:"left"`
	Holding       bool         `json:"holding"`
	HoldRemaining int          `json:"hold_remaining"`
	SecondsLeft   int          `json:"seconds_left"`
}

// Session owns all mutable assessment state: lifecycle state, current side,
// the hold countdown, and the session timer. All access is serialized
// through one mutex; the detection tick, the 1Hz session timer, and the
// delayed hold decrement never race each other.
type Session struct {
	cfg Config

	mu            sync.Mutex
	id            string
	state         SessionState
	side          Side
	right, left   SideStatus
	holding       bool
	holdRemaining int
	secondsLeft   int
	allComplete   bool

	// gen invalidates timer callbacks armed before a reset or restart.
	// A callback that fires with a stale generation is ignored.
	gen uint64

	// holdEpoch invalidates decrement callbacks from a cancelled hold
	// within the same run. Stop on an already-expired timer is a no-op,
	// so its callback can still fire after a cancel and re-arm; a stale
	// epoch marks it as belonging to the dead hold.
	holdEpoch uint64
	holdTimer *time.Timer
	stopCh    chan struct{}

	onComplete    func(Status)
	completeFired bool
}

// NewSession creates a session with the given configuration. The session
// starts in StateNotStarted; call Start to begin.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:         cfg,
		state:       StateNotStarted,
		side:        SideRight,
		secondsLeft: cfg.SessionBudget,
	}
}

// OnComplete registers a callback fired exactly once per session run, on
// the transition into StateCompleted. The callback runs outside the session
// lock and may call Status.
func (s *Session) OnComplete(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = fn
}

// Start begins a new assessment run. Calling Start while the session is
// already running is a no-op.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return
	}

	s.gen++
	s.cancelHoldLocked()
	s.stopTimerLocked()

	s.id = uuid.New().String()
	s.state = StateRunning
	s.side = SideRight
	s.right = SideStatus{}
	s.left = SideStatus{}
	s.secondsLeft = s.cfg.SessionBudget
	s.allComplete = false
	s.completeFired = false

	s.stopCh = make(chan struct{})
	go s.runTimer(s.stopCh, s.gen)
}

// Reset returns the session to StateNotStarted and clears all derived
// state. It is safe to call at any time, including mid-hold; sub-ticks
// scheduled before the reset are invalidated and ignored when they fire.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.cancelHoldLocked()
	s.stopTimerLocked()

	s.id = ""
	s.state = StateNotStarted
	s.side = SideRight
	s.right = SideStatus{}
	s.left = SideStatus{}
	s.secondsLeft = s.cfg.SessionBudget
	s.allComplete = false
	s.completeFired = false
}

// OnFrame consumes one frame's detections and advances the state machine.
// It is a no-op unless the session is running. The returned Status reflects
// the state after this frame.
func (s *Session) OnFrame(pose *detector.Pose, hands []detector.HandLandmarks, frameHeight float64) Status {
	s.mu.Lock()

	if s.state != StateRunning {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st
	}

	s.right, s.left = Classify(pose, hands, frameHeight, s.cfg)

	current := s.right
	if s.side == SideLeft {
		current = s.left
	}

	var fire func(Status)
	switch {
	case !current.Qualified():
		// Any disqualifying frame restarts the hold. No partial
		// credit, no grace period.
		s.cancelHoldLocked()

	case !s.holding:
		s.holding = true
		s.holdRemaining = s.cfg.HoldDuration
		s.armHoldLocked()

	case s.holdRemaining == 0:
		// Hold satisfied for this side.
		s.cancelHoldLocked()
		if s.side == SideRight {
			s.side = SideLeft
		} else {
			s.allComplete = true
			fire = s.finishLocked(StateCompleted)
		}

	case s.holdTimer == nil:
		// The previous one-shot decrement has fired; arm the next.
		// Only ever one decrement timer in flight, so rapid ticks
		// cannot push the countdown faster than 1Hz.
		s.armHoldLocked()
	}

	st := s.snapshotLocked()
	s.mu.Unlock()

	if fire != nil {
		fire(st)
	}
	return st
}

// Status returns the current observable state without side effects.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// runTimer is the 1Hz session countdown. It stops when the session leaves
// StateRunning or when stop is closed.
func (s *Session) runTimer(stop chan struct{}, gen uint64) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.tickSecond(gen) {
				return
			}
		}
	}
}

// tickSecond decrements the session countdown by one second. It returns
// false once the timer should stop ticking.
func (s *Session) tickSecond(gen uint64) bool {
	s.mu.Lock()

	if gen != s.gen || s.state != StateRunning {
		s.mu.Unlock()
		return false
	}

	s.secondsLeft--
	if s.secondsLeft > 0 {
		s.mu.Unlock()
		return true
	}
	s.secondsLeft = 0

	// Budget exhausted: the session ends now, success or not.
	var fire func(Status)
	if s.allComplete {
		fire = s.finishLocked(StateCompleted)
	} else {
		s.finishLocked(StateTimedOut)
	}

	st := s.snapshotLocked()
	s.mu.Unlock()

	if fire != nil {
		fire(st)
	}
	return false
}

// armHoldLocked schedules the next 1-second hold decrement. Callers must
// hold the mutex and ensure no timer is currently armed.
func (s *Session) armHoldLocked() {
	gen, epoch := s.gen, s.holdEpoch
	s.holdTimer = time.AfterFunc(time.Second, func() {
		s.holdElapsed(gen, epoch)
	})
}

// holdElapsed is the delayed hold decrement. A stale generation means the
// session was reset or restarted after this timer was armed; a stale epoch
// means the hold it belonged to was cancelled. Either way the fire is
// ignored.
func (s *Session) holdElapsed(gen, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || epoch != s.holdEpoch || s.state != StateRunning || !s.holding {
		return
	}

	s.holdTimer = nil
	if s.holdRemaining > 0 {
		s.holdRemaining--
	}
}

// cancelHoldLocked stops any pending decrement and drops the hold back to
// idle. Callers must hold the mutex.
func (s *Session) cancelHoldLocked() {
	s.holdEpoch++
	if s.holdTimer != nil {
		s.holdTimer.Stop()
		s.holdTimer = nil
	}
	s.holding = false
	s.holdRemaining = 0
}

// stopTimerLocked stops the session countdown goroutine if one is running.
// Callers must hold the mutex.
func (s *Session) stopTimerLocked() {
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
}

// finishLocked moves the session into a terminal state and returns the
// completion callback to fire after the lock is released, if any. Callers
// must hold the mutex.
func (s *Session) finishLocked(state SessionState) func(Status) {
	s.state = state
	s.cancelHoldLocked()
	s.stopTimerLocked()

	if state == StateCompleted && !s.completeFired && s.onComplete != nil {
		s.completeFired = true
		return s.onComplete
	}
	return nil
}

func (s *Session) snapshotLocked() Status {
	return Status{
		SessionID:     s.id,
		State:         s.state,
		Side:          s.side,
		Right:         s.right,
		Left:          s.left,
		Holding:       s.holding,
		HoldRemaining: s.holdRemaining,
		SecondsLeft:   s.secondsLeft,
	}
}
