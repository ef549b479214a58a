// Package session is the rules engine orchestrator. A Session owns the board,
// the piece queue, the active effects, the score engine and the shop, and is
// driven entirely through its command methods and explicit time deltas.
//
// A Session is not safe for concurrent use. Hosts read state through Snapshot
// between commands.
package session

import (
	"io"
	"log"
	"math"

	"github.com/plus3/roguetris/board"
	"github.com/plus3/roguetris/config"
	"github.com/plus3/roguetris/effect"
	"github.com/plus3/roguetris/piece"
	"github.com/plus3/roguetris/score"
	"github.com/plus3/roguetris/shop"
)

// Phase is the session state machine state.
type Phase int

const (
	PhasePlaying Phase = iota
	// PhaseLineClearAnimation is reserved for hosts that want to pause on clears;
	// the engine never enters it on its own.
	PhaseLineClearAnimation
	PhaseGameOver
	PhaseVictory
	PhaseShop
)

var phaseNames = [...]string{"Playing", "LineClearAnimation", "GameOver", "Victory", "Shop"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}

// Direction is a one-cell translation.
type Direction int

const (
	Left Direction = iota
	Right
	Down
	// Up is accepted but no standard binding issues it.
	Up
)

func (d Direction) delta() board.Point {
	switch d {
	case Left:
		return board.Point{X: -1}
	case Right:
		return board.Point{X: 1}
	case Down:
		return board.Point{Y: -1}
	case Up:
		return board.Point{Y: 1}
	}
	return board.Point{}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return "unknown"
}

// Outcome classifies what a command did.
type Outcome int

const (
	// Rejected means the command is not allowed in the current phase.
	Rejected Outcome = iota
	// Idle means the command was accepted but changed nothing visible.
	Idle
	Spawned
	Moved
	// Blocked means the move or rotation was reverted.
	Blocked
	// Locked means the piece was placed without clearing lines.
	Locked
	Cleared
	GameOver
	Victory
)

var outcomeNames = [...]string{"rejected", "idle", "spawned", "moved", "blocked", "locked", "cleared", "game over", "victory"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Result reports the effect of a command.
type Result struct {
	Outcome       Outcome
	Lines         int
	ScoreDelta    int
	CurrencyDelta int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session is the aggregate root of a game.
type Session struct {
	cfg config.Balance
	log *log.Logger

	board     *board.Board
	gen       *piece.Generator
	scorer    *score.Engine
	effects   *effect.Set
	shop      *shop.Engine
	scheduler *Scheduler

	phase     Phase
	score     int
	target    int
	currency  int
	elapsed   float64
	round     int
	lines     int
	fallTimer float64
	fallScale float64
	shopOpen  bool

	current *piece.Piece
	next    *piece.Piece
}

// Source is the randomness a session draws pieces and shop offers from.
type Source interface {
	IntN(n int) int
}

// New validates cfg, builds a session and starts the first round. A nil src
// falls back to a fixed seed.
func New(cfg config.Balance, src Source, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	entries, err := cfg.Entries()
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = piece.NewSource(0)
	}

	s := &Session{
		cfg:     cfg,
		log:     log.New(io.Discard, "", 0),
		board:   board.New(cfg.BoardWidth, cfg.BoardHeight),
		gen:     piece.NewGenerator(src, cfg.ColorCount),
		scorer:  score.NewEngine(cfg.LineScores, cfg.CurrencyRate),
		effects: effect.NewSet(),
		shop:    shop.NewEngine(entries, cfg.ShopBatchSize, cfg.ShopCostGrowth, src),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.scheduler = NewScheduler(s)
	s.scheduler.Register(ClockSystem{})
	s.scheduler.Register(EffectSystem{})
	s.scheduler.Register(GravitySystem{})

	s.Restart()
	return s, nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the running score.
func (s *Session) Score() int { return s.score }

// Target returns the score needed to win the current round.
func (s *Session) Target() int { return s.target }

// Currency returns the spendable balance.
func (s *Session) Currency() int { return s.currency }

// Elapsed returns the play time accumulated while playing.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Round returns how many shops have been closed since the last restart.
func (s *Session) Round() int { return s.round }

// Current returns the falling piece.
func (s *Session) Current() (piece.Piece, bool) {
	if s.current == nil {
		return piece.Piece{}, false
	}
	return *s.current, true
}

// Next returns the queued piece.
func (s *Session) Next() (piece.Piece, bool) {
	if s.next == nil {
		return piece.Piece{}, false
	}
	return *s.next, true
}

// FallInterval returns the effective auto-fall interval in seconds.
func (s *Session) FallInterval() float64 {
	return s.cfg.FallInterval * s.fallScale
}

// SchedulerStats returns the tick system timings.
func (s *Session) SchedulerStats() *SchedulerStats {
	return s.scheduler.Stats()
}

// Restart resets every piece of session state to its start-of-game value and
// spawns the first piece.
func (s *Session) Restart() Result {
	s.board.Clear()
	s.effects.Clear()
	s.shop.Discard()

	s.phase = PhasePlaying
	s.score = 0
	s.target = s.cfg.InitialTarget
	s.currency = 0
	s.elapsed = 0
	s.round = 0
	s.lines = 0
	s.fallTimer = 0
	s.fallScale = 1
	s.shopOpen = false
	s.current = nil
	s.next = nil

	s.log.Printf("session started: %dx%d board, target %d", s.board.Width(), s.board.Height(), s.target)
	return s.Spawn()
}

// Spawn promotes the queued piece (generating one if the queue is empty) to
// the spawn point and queues a fresh next piece. A spawn that collides ends
// the game.
func (s *Session) Spawn() Result {
	if s.phase != PhasePlaying {
		return Result{Outcome: Rejected}
	}

	var p piece.Piece
	if s.next != nil {
		p = *s.next
	} else {
		p = s.gen.Next()
	}
	next := s.gen.Next()
	s.next = &next

	p.Rotation = 0
	p.Anchor = s.spawnPoint()
	s.current = &p

	if !p.Fits(s.board) {
		s.phase = PhaseGameOver
		s.log.Printf("game over: %s blocked at spawn, score %d", p.Shape, s.score)
		return Result{Outcome: GameOver}
	}
	return Result{Outcome: Spawned}
}

func (s *Session) spawnPoint() board.Point {
	return board.Point{X: s.board.Width()/2 - 1, Y: s.board.Height() - 2}
}

// SetNext replaces the queued piece with one of the given shape.
func (s *Session) SetNext(shape piece.Shape) bool {
	if s.phase != PhasePlaying || !shape.Valid() {
		return false
	}
	color := 1
	if s.next != nil {
		color = s.next.Color
	}
	p := s.gen.New(shape, color)
	s.next = &p
	return true
}

// Move translates the current piece one cell. A reverted downward move locks
// the piece in place.
func (s *Session) Move(dir Direction) Result {
	if s.phase != PhasePlaying || s.current == nil {
		return Result{Outcome: Rejected}
	}

	moved := s.current.Moved(dir.delta())
	if moved.Fits(s.board) {
		s.current = &moved
		return Result{Outcome: Moved}
	}
	if dir == Down {
		return s.place()
	}
	return Result{Outcome: Blocked}
}

// Rotate turns the current piece clockwise, reverting if it does not fit.
func (s *Session) Rotate() Result {
	if s.phase != PhasePlaying || s.current == nil {
		return Result{Outcome: Rejected}
	}

	rotated := s.current.Rotated()
	if !rotated.Fits(s.board) {
		return Result{Outcome: Blocked}
	}
	s.current = &rotated
	return Result{Outcome: Moved}
}

// SoftDrop moves the piece down one cell and restarts the auto-fall timer.
func (s *Session) SoftDrop() Result {
	res := s.Move(Down)
	if res.Outcome != Rejected {
		s.fallTimer = 0
	}
	return res
}

// HardDrop drops the current piece as far as it goes and locks it.
func (s *Session) HardDrop() Result {
	if s.phase != PhasePlaying || s.current == nil {
		return Result{Outcome: Rejected}
	}

	p := *s.current
	for {
		below := p.Moved(Down.delta())
		if !below.Fits(s.board) {
			break
		}
		p = below
	}
	s.current = &p
	s.fallTimer = 0
	return s.place()
}

// place writes the current piece into the board, scores any full rows and
// either ends the round or spawns the next piece.
func (s *Session) place() Result {
	p := *s.current
	s.current = nil
	for _, c := range p.WorldPositions() {
		s.board.PlaceBlock(c, p.Color)
	}

	full := s.board.FullLines()
	if len(full) == 0 {
		res := s.Spawn()
		if res.Outcome == GameOver {
			return res
		}
		return Result{Outcome: Locked}
	}

	scored := s.scorer.ProcessLineClears(len(full), p, s.effects.Active())
	s.score += scored.Score
	s.currency += scored.Currency
	s.lines += s.board.ClearLines(full)

	res := Result{
		Outcome:       Cleared,
		Lines:         len(full),
		ScoreDelta:    scored.Score,
		CurrencyDelta: scored.Currency,
	}

	if s.score >= s.target {
		s.phase = PhaseVictory
		res.Outcome = Victory
		s.log.Printf("victory: score %d reached target %d in round %d", s.score, s.target, s.round)
		return res
	}

	if s.Spawn().Outcome == GameOver {
		res.Outcome = GameOver
	}
	return res
}

// Advance moves time forward by delta seconds while playing. Negative,
// infinite and NaN deltas count as zero.
func (s *Session) Advance(delta float64) Result {
	if s.phase != PhasePlaying {
		return Result{Outcome: Rejected}
	}
	if !(delta > 0) || math.IsInf(delta, 1) {
		delta = 0
	}

	res := Result{Outcome: Idle}
	for _, r := range s.scheduler.Once(delta) {
		if r.Outcome != Rejected {
			res = r
		}
	}
	return res
}

// UpdateEffects ages the active effects by delta.
func (s *Session) UpdateEffects(delta float64) {
	s.effects.Update(delta)
}

// OpenShop enters the shop after a victory and generates a batch of offers.
func (s *Session) OpenShop() bool {
	if s.phase != PhaseVictory {
		return false
	}
	s.phase = PhaseShop
	s.shopOpen = true
	items := s.shop.Generate(shop.Progress{Round: s.round})
	s.log.Printf("shop opened: %d items, %d currency", len(items), s.currency)
	return true
}

// CloseShop leaves the shop, raises the target for the next round and resumes
// play.
func (s *Session) CloseShop() bool {
	if s.phase != PhaseShop {
		return false
	}
	s.shop.Discard()
	s.shopOpen = false
	s.target = int(math.RoundToEven(float64(s.target) * s.cfg.TargetGrowth))
	s.round++
	s.fallTimer = 0
	s.phase = PhasePlaying
	s.log.Printf("round %d: target %d", s.round, s.target)

	if s.current == nil {
		s.Spawn()
	}
	return true
}

// Purchase buys an offered item. It fails outside the shop, for ids that are
// not in the current batch and when currency does not cover the cost.
func (s *Session) Purchase(id shop.ItemID) bool {
	if s.phase != PhaseShop {
		return false
	}
	item, _ := s.shop.Lookup(id)
	if !s.shop.Purchase(id, wallet{s}) {
		return false
	}
	s.log.Printf("purchased %q for %d, %d currency left", item.Name, item.Cost, s.currency)
	return true
}

// wallet exposes the session's currency and payload application to the shop.
type wallet struct{ s *Session }

func (w wallet) Balance() int { return w.s.currency }

func (w wallet) Debit(amount int) { w.s.currency -= amount }

func (w wallet) Apply(p shop.Payload) {
	s := w.s
	switch p.Kind {
	case shop.GrantEffect:
		s.effects.Add(effect.New(p.Effect, p.Duration, p.Value))
	case shop.ScoreBonus:
		s.score += max(int(math.Round(p.Value)), 0)
	case shop.CurrencyBonus:
		s.currency += max(int(math.Round(p.Value)), 0)
	case shop.SlowFall:
		if p.Value > 0 {
			s.fallScale *= p.Value
		}
	}
}
