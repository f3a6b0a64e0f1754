// Package bearrun implements the game-state core of Bear Run, a side-scrolling
// runner. The character jumps over procedurally spawned obstacles under a
// countdown, while random blackouts hide the scene, until it reaches the goal.
//
// The core never loops or sleeps. A scheduler.Scheduler delivers frame
// timestamps and one-shot timer callbacks from a single goroutine, and the
// session is owned by that goroutine. Rendering, input and audio are external
// collaborators: the session exposes a Snapshot, accepts RequestJump and
// RequestRestart, and emits Cues.
package bearrun

import (
	"time"

	"github.com/vovakirdan/bear-run/internal/config"
	"github.com/vovakirdan/bear-run/internal/scheduler"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Waiting for the first tick
	PhaseRunning
	PhaseLost
	PhaseWon
)

// String returns the storage/log name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseLost:
		return "lost"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Over reports whether the phase is terminal.
func (p Phase) Over() bool {
	return p == PhaseLost || p == PhaseWon
}

// EndReason says why a session ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndCollision
	EndTimeout
	EndGoal
)

// String returns the storage/log name of the reason.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndCollision:
		return "collision"
	case EndTimeout:
		return "timeout"
	case EndGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// world is everything a restart rebuilds from scratch.
type world struct {
	character    Character
	obstacles    []Obstacle
	goal         Goal
	goalRevealed bool
	goalReached  bool

	spawner       spawner
	spawnInterval time.Duration
	spawnTimer    scheduler.Timer
	blackout      blackout

	epoch   time.Duration // Timestamp of the first tick
	now     time.Duration // Timestamp of the latest tick
	elapsed time.Duration
	speed   float64
	frames  int
	jumps   int
}

// Session is one single-player run. It is not safe for concurrent use: all
// calls, ticks and timer callbacks must come from the scheduler's goroutine.
type Session struct {
	cfg     config.RunConfig
	surface Size
	scale   float64
	ground  float64

	sched scheduler.Scheduler
	rng   Source
	cues  Cues

	phase    Phase
	reason   EndReason
	gen      uint64 // Bumped on restart and stop; stale callbacks compare against it
	launched bool
	stopped  bool
	w        *world
}

// Option configures a Session.
type Option func(*Session)

// WithSource sets the random source used for spawns and blackouts.
func WithSource(src Source) Option {
	return func(s *Session) {
		s.rng = src
	}
}

// WithCues sets the audio cue sink.
func WithCues(c Cues) Option {
	return func(s *Session) {
		s.cues = c
	}
}

// NewSession builds a session for a render surface of the given size.
// The scale factor is derived once here and applied to every constant.
func NewSession(cfg config.RunConfig, surface Size, sched scheduler.Scheduler, opts ...Option) *Session {
	s := &Session{
		cfg:     cfg,
		surface: surface,
		sched:   sched,
		cues:    NopCues{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewSource(time.Now().UnixNano())
	}

	s.scale = Scale(Size{W: cfg.Design.Width, H: cfg.Design.Height}, surface)
	s.ground = surface.H - cfg.Design.GroundOffset*s.scale
	s.w = s.newWorld()
	return s
}

// newWorld constructs fresh entities and timers.
func (s *Session) newWorld() *world {
	sc := s.scale
	ch := s.cfg.Character
	gl := s.cfg.Goal

	goalHeight := gl.Height * sc
	return &world{
		character: Character{
			X:        ch.X * sc,
			Y:        s.ground,
			Width:    ch.Width * sc,
			Height:   ch.Height * sc,
			Jump:     ch.JumpImpulse * sc,
			Gravity:  ch.Gravity * sc,
			Grounded: true,
		},
		obstacles: make([]Obstacle, 0, 16),
		goal: Goal{
			X:      gl.X * sc,
			Y:      s.ground - goalHeight,
			Width:  gl.Width * sc,
			Height: goalHeight,
		},
		spawner:  newSpawner(s.cfg.Obstacles, sc, s.surface.W, s.ground),
		blackout: newBlackout(s.cfg.Blackout),
		speed:    s.cfg.Speed.Base * sc,
	}
}

// Start begins the session: music cue and the first frame request. The
// first tick then sets the epoch and starts the blackout and spawn timers.
// Later calls do nothing.
func (s *Session) Start() {
	if s.launched || s.stopped {
		return
	}
	s.launched = true
	s.launch()
}

func (s *Session) launch() {
	s.cues.OnSessionStart()
	s.requestTick()
}

// Stop tears the session down for good: timers are cancelled and pending
// frames are ignored. It is used when the owner goes away.
func (s *Session) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.gen++
	s.cancelTimers()
	if s.launched && !s.phase.Over() {
		s.cues.OnSessionEnd()
	}
}

// RequestJump applies the jump impulse. It only works while running and
// grounded and reports whether the jump happened.
func (s *Session) RequestJump() bool {
	c := &s.w.character
	if s.stopped || s.phase != PhaseRunning || !c.Grounded {
		return false
	}
	c.VY = c.Jump
	c.Grounded = false
	s.w.jumps++
	s.cues.OnJump()
	return true
}

// RequestRestart rebuilds the session after a win or loss and reports
// whether it did. Nothing is reused: the new world has no obstacles until
// the next tick, which becomes the new epoch.
func (s *Session) RequestRestart() bool {
	if s.stopped || !s.phase.Over() {
		return false
	}
	s.cancelTimers()
	s.gen++
	s.w = s.newWorld()
	s.phase = PhaseNotStarted
	s.reason = EndNone
	s.launch()
	return true
}

// requestTick asks the scheduler for the next frame, tagged with the
// current generation.
func (s *Session) requestTick() {
	gen := s.gen
	s.sched.RequestTick(func(now time.Duration) {
		s.tick(gen, now)
	})
}

// tick is the frame driver: blackout check, physics, collision, goal,
// pruning, timeout and reveal, then the next frame request.
func (s *Session) tick(gen uint64, now time.Duration) {
	if gen != s.gen || s.phase.Over() {
		return
	}
	w := s.w

	if s.phase == PhaseNotStarted {
		s.phase = PhaseRunning
		w.epoch = now
		w.blackout.scheduleNext(now, s.rng)
		s.scheduleRecurringSpawns()
	}
	w.now = now
	w.elapsed = now - w.epoch
	w.frames++

	s.checkBlackout(now)

	w.speed = s.cfg.Speed.At(s.cfg.Timing.Progress(w.elapsed)) * s.scale
	stepCharacter(&w.character, s.ground)
	for i := range w.obstacles {
		w.obstacles[i].X -= w.speed
	}
	if w.goalRevealed {
		w.goal.X -= w.speed
	}

	if s.firstCollision(now) >= 0 {
		s.end(PhaseLost, EndCollision)
		return
	}

	if w.goalRevealed && !w.goalReached && reachesGoal(w.character, w.goal) {
		w.goalReached = true
		s.end(PhaseWon, EndGoal)
		return
	}

	w.obstacles = pruneObstacles(w.obstacles)

	if w.elapsed >= s.cfg.Timing.Total {
		s.end(PhaseLost, EndTimeout)
		return
	}

	if !w.goalRevealed && s.cfg.Timing.Total-w.elapsed <= s.cfg.Goal.RevealAt {
		s.revealGoal()
	}

	s.requestTick()
}

// checkBlackout starts a blackout window when one is due. The window is
// closed by a deferred timer, not by polling.
func (s *Session) checkBlackout(now time.Duration) {
	b := &s.w.blackout
	if !b.due(now) {
		return
	}
	gen := s.gen
	timer := s.sched.After(b.duration, func() {
		s.endBlackout(gen)
	})
	b.begin(now, timer)
}

func (s *Session) endBlackout(gen uint64) {
	if gen != s.gen || !s.w.blackout.active {
		return
	}
	s.w.blackout.finish(s.rng)
}

// firstCollision returns the index of the first obstacle, in spawn order,
// that the character overlaps at time now, or -1.
func (s *Session) firstCollision(now time.Duration) int {
	c := s.w.character
	for i, o := range s.w.obstacles {
		if Overlaps(c, o.X, o.Width, s.obstacleTop(o, now)) {
			return i
		}
	}
	return -1
}

// obstacleTop returns the obstacle's top edge including the bob at now.
func (s *Session) obstacleTop(o Obstacle, now time.Duration) float64 {
	return o.BaseY + bobOffset(now, o.Phase, s.cfg.Obstacles.BobAmplitude*s.scale, s.cfg.Obstacles.BobPeriod)
}

// revealGoal shows the goal for the rest of the session and spawns the
// one-time approach burst.
func (s *Session) revealGoal() {
	s.w.goalRevealed = true
	for range s.cfg.Goal.Burst {
		s.spawnObstacles()
	}
}

// scheduleRecurringSpawns spawns immediately, then keeps spawning on an
// interval drawn once per session.
func (s *Session) scheduleRecurringSpawns() {
	s.spawnObstacles()
	obs := s.cfg.Obstacles
	s.w.spawnInterval = obs.IntervalMin + fraction(obs.IntervalMax-obs.IntervalMin, s.rng.Float64())
	s.armSpawnTimer(s.gen)
}

func (s *Session) armSpawnTimer(gen uint64) {
	s.w.spawnTimer = s.sched.After(s.w.spawnInterval, func() {
		s.onSpawnTimer(gen)
	})
}

func (s *Session) onSpawnTimer(gen uint64) {
	if gen != s.gen || s.phase.Over() {
		return
	}
	s.armSpawnTimer(gen)

	// Ease off near the end
	if s.w.goalRevealed && s.rng.Float64() < s.cfg.Obstacles.RevealSkipChance {
		return
	}
	s.spawnObstacles()
}

func (s *Session) spawnObstacles() {
	s.w.obstacles = append(s.w.obstacles, s.w.spawner.spawn(s.rng)...)
}

// end moves to a terminal phase, stops all timers and emits cues. Running
// out of time only stops the music; the loss cue is for crashes.
func (s *Session) end(phase Phase, reason EndReason) {
	s.phase = phase
	s.reason = reason
	s.cancelTimers()

	s.cues.OnSessionEnd()
	switch reason {
	case EndGoal:
		s.cues.OnWin()
	case EndCollision:
		s.cues.OnLoss()
	}
}

func (s *Session) cancelTimers() {
	if s.w.spawnTimer != nil {
		s.w.spawnTimer.Stop()
		s.w.spawnTimer = nil
	}
	s.w.blackout.cancel()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Reason returns why the session ended, or EndNone.
func (s *Session) Reason() EndReason {
	return s.reason
}

// Generation returns the restart counter.
func (s *Session) Generation() uint64 {
	return s.gen
}

// Scale returns the factor applied to the design constants.
func (s *Session) Scale() float64 {
	return s.scale
}

// Ground returns the ground line in surface pixels.
func (s *Session) Ground() float64 {
	return s.ground
}

// Config returns the session's configuration.
func (s *Session) Config() config.RunConfig {
	return s.cfg
}
