package combat

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-skirmish/internal/event"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// Timing holds the fixed delays, in seconds, of deferred combat actions.
type Timing struct {
	AIDeliberation float64 // Before an AI unit decides
	AttackRecover  float64 // Attacking -> Idle
	DefendEnd      float64 // Defend -> end of turn
	AIEndTurn      float64 // AI attack -> end of turn
	AIPoll         float64 // AI movement completion poll interval
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{
		AIDeliberation: 0.8,
		AttackRecover:  0.6,
		DefendEnd:      0.5,
		AIEndTurn:      0.6,
		AIPoll:         0.1,
	}
}

// Options configures an Orchestrator.
type Options struct {
	Timing    Timing
	MoveSpeed float64 // World units per second
	TurnRate  float64 // Facing easing in radians per second

	// AutoEndTurn ends a friendly turn once the unit has moved and acted.
	AutoEndTurn bool
	// AutoFriendly hands friendly turns to the AI policy as well.
	AutoFriendly bool

	AI     AIWeights
	Seed   int64
	Logger *log.Logger
	Events *event.Dispatcher
}

// DefaultOptions returns options with the standard timing and weights.
func DefaultOptions() Options {
	return Options{
		Timing:      DefaultTiming(),
		MoveSpeed:   4,
		TurnRate:    10,
		AutoEndTurn: true,
		AI:          DefaultAIWeights(),
		Seed:        1,
	}
}

// Participant is a roster entry handed to the orchestrator.
type Participant struct {
	Name   string
	Entity Entity
	Stats  StatsOverrides
}

// Orchestrator owns the unit roster and resolves every combat intent.
// It is single-threaded: all calls must come from the frame loop.
type Orchestrator struct {
	grid   *hexgrid.Grid
	opts   Options
	log    *log.Logger
	events *event.Dispatcher
	rng    *rand.Rand

	timers *Timers
	sched  *TurnScheduler
	ai     *AIPolicy

	units       []*Unit
	started     bool
	over        bool
	friendlyWon bool
	turnSeq     uint64
	// turnTimers holds actions scheduled on behalf of the current turn.
	turnTimers []uint64
}

// New creates an orchestrator for the given board.
func New(grid *hexgrid.Grid, opts Options) *Orchestrator {
	if opts.MoveSpeed <= 0 {
		opts.MoveSpeed = DefaultOptions().MoveSpeed
	}
	if opts.TurnRate <= 0 {
		opts.TurnRate = DefaultOptions().TurnRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	o := &Orchestrator{
		grid:   grid,
		opts:   opts,
		log:    logger,
		events: opts.Events,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		timers: NewTimers(),
	}
	o.ai = newAIPolicy(o, opts.AI)
	o.sched = o.newScheduler()
	return o
}

func (o *Orchestrator) newScheduler() *TurnScheduler {
	s := NewTurnScheduler(o.rng)
	s.OnTurnStart = o.onTurnStart
	s.OnTurnEnd = o.onTurnEnd
	s.OnRoundStart = func(round int) {
		o.log.Debug("round started", "round", round)
		o.logEvent(event.KindInfo, fmt.Sprintf("Round %d", round))
	}
	s.IsOver = func() bool {
		over, _ := o.outcome()
		return over
	}
	return s
}

// Prepare builds the roster and enters the setup phase. Supplied stats are
// merged over the defaults. Participants without an entity are skipped.
func (o *Orchestrator) Prepare(friendlies, enemies []Participant) {
	if len(o.units) > 0 {
		o.Reset()
	}
	o.addSide(friendlies, true)
	o.addSide(enemies, false)
	o.syncOccupancy()
	o.log.Info("roster prepared", "friendly", len(o.Alive(true)), "enemy", len(o.Alive(false)))
}

func (o *Orchestrator) addSide(ps []Participant, friendly bool) {
	side := "enemy"
	if friendly {
		side = "friendly"
	}
	for i, p := range ps {
		if p.Entity == nil {
			o.log.Warn("participant has no entity", "name", p.Name, "side", side)
			continue
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("%s %d", side, i+1)
		}
		stats := NewStats(p.Stats)
		u := &Unit{
			ID:          fmt.Sprintf("%s-%d", side, i+1),
			Name:        name,
			Entity:      p.Entity,
			Stats:       stats,
			Friendly:    friendly,
			Alive:       true,
			BaseDefense: stats.Defense,
			State:       StateIdle,
		}
		p.Entity.SetExternalControl(true)
		u.mirrorHealth()
		o.units = append(o.units, u)
	}
}

// Start rolls initiative and hands out the first turn. It reports false
// when there is no roster or combat already started.
func (o *Orchestrator) Start() bool {
	if o.started || len(o.units) == 0 {
		return false
	}
	o.started = true
	o.syncOccupancy()
	o.log.Info("combat started", "session", o.timers.Session(), "units", len(o.units))
	o.logEvent(event.KindInfo, "Combat started")
	o.sched.StartCombat(o.units)
	o.checkVictory()
	return true
}

// InitializeCombat prepares the roster with player as the first friendly
// unit and starts combat immediately.
func (o *Orchestrator) InitializeCombat(player Participant, friendlies, enemies []Participant) bool {
	side := make([]Participant, 0, len(friendlies)+1)
	side = append(side, player)
	side = append(side, friendlies...)
	o.Prepare(side, enemies)
	return o.Start()
}

// Update advances the session by dt seconds: movement, deferred actions,
// occupancy sync and victory detection, in that order.
func (o *Orchestrator) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	if !o.started {
		o.syncOccupancy()
		return
	}
	if o.over {
		return
	}
	o.advanceMovement(dt)
	o.timers.Tick(dt)
	o.syncOccupancy()
	o.checkVictory()
}

// syncOccupancy re-derives every alive unit's cell from its live position.
// Stationary units claim cells first; a unit that lands on a claimed cell
// falls back to its previous cell or the nearest free one.
func (o *Orchestrator) syncOccupancy() {
	o.grid.ClearOccupancy()
	for pass := 0; pass < 2; pass++ {
		for _, u := range o.units {
			if !u.Alive || (u.State == StateMoving) != (pass == 1) {
				continue
			}
			pos := u.Entity.Position()
			cell := o.grid.GetGridPosition(pos)
			if o.grid.IsCellOccupied(cell) {
				switch {
				case u.HasCell() && !o.grid.IsCellOccupied(*u.Cell):
					cell = *u.Cell
				default:
					free, ok := o.grid.NearestFree(cell)
					if !ok {
						o.log.Error("board full, unit left unplaced", "unit", u.Name)
						continue
					}
					cell = free
				}
				if u.State != StateMoving {
					center := o.grid.CellCenter(cell)
					center.Y = pos.Y
					u.Entity.SetPosition(center)
				}
			}
			c := cell
			u.Cell = &c
			o.grid.SetCellOccupied(c, true)
		}
	}
}

// advanceMovement moves every MOVING unit along its path at MoveSpeed and
// eases its facing toward the next step.
func (o *Orchestrator) advanceMovement(dt float64) {
	for _, u := range o.units {
		if !u.Alive || u.State != StateMoving {
			continue
		}
		pos := u.Entity.Position()
		if next, ok := u.NextStep(); ok {
			o.easeFacing(u, o.grid.CellCenter(next), dt)
		}

		budget := o.opts.MoveSpeed * dt
		for budget > 0 && len(u.path) > 0 {
			target := o.grid.CellCenter(u.path[0])
			target.Y = pos.Y
			dist := pos.PlanarDist(target)
			if dist <= budget {
				pos = target
				budget -= dist
				u.path = u.path[1:]
				continue
			}
			pos = pos.Add(target.Sub(pos).Scale(budget / dist))
			budget = 0
		}
		u.Entity.SetPosition(pos)

		if len(u.path) == 0 {
			// Deferred actions run before the next occupancy sync and
			// must see the arrival cell.
			c := o.grid.GetGridPosition(pos)
			u.Cell = &c
			u.path = nil
			u.setState(StateIdle)
			o.log.Debug("move finished", "unit", u.Name)
			o.maybeAutoEnd(u)
		}
	}
}

func (o *Orchestrator) easeFacing(u *Unit, target hexgrid.Vec3, dt float64) {
	pos := u.Entity.Position()
	dx, dz := target.X-pos.X, target.Z-pos.Z
	if dx == 0 && dz == 0 {
		return
	}
	current := u.Entity.Facing()
	diff := wrapAngle(math.Atan2(dx, dz) - current)
	limit := o.opts.TurnRate * dt
	if diff > limit {
		diff = limit
	} else if diff < -limit {
		diff = -limit
	}
	u.Entity.SetFacing(wrapAngle(current + diff))
}

// faceToward turns the unit to face other immediately.
func faceToward(u, other *Unit) {
	a, b := u.Entity.Position(), other.Entity.Position()
	dx, dz := b.X-a.X, b.Z-a.Z
	if dx == 0 && dz == 0 {
		return
	}
	u.Entity.SetFacing(math.Atan2(dx, dz))
}

// wrapAngle maps a to (-pi, pi].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// ExecuteMove starts moving u along path. The path must be contiguous from
// the unit's cell, pass through free cells only and cost no more than the
// unit's remaining movement.
func (o *Orchestrator) ExecuteMove(u *Unit, path []hexgrid.Cell) bool {
	if !o.canAct(u, "move") {
		return false
	}
	if u.State != StateIdle {
		return o.reject(u, "move", "busy: "+u.State.String())
	}
	if u.Stats.HasMovedThisTurn {
		return o.reject(u, "move", "already moved this turn")
	}
	if len(path) == 0 {
		return o.reject(u, "move", "no path")
	}
	if len(path) > u.Stats.CurrentMovement {
		return o.reject(u, "move", fmt.Sprintf("path costs %d, only %d movement left", len(path), u.Stats.CurrentMovement))
	}
	if !u.HasCell() {
		return o.reject(u, "move", "not on the board")
	}
	prev := *u.Cell
	for _, step := range path {
		if !o.grid.InBounds(step) || hexgrid.Distance(prev, step) != 1 {
			return o.reject(u, "move", "path is not contiguous")
		}
		if o.grid.IsCellOccupied(step) {
			return o.reject(u, "move", "path is blocked at "+step.String())
		}
		prev = step
	}

	u.Stats.CurrentMovement -= len(path)
	u.Stats.HasMovedThisTurn = true
	u.path = append([]hexgrid.Cell(nil), path...)
	u.setState(StateMoving)
	o.log.Debug("move", "unit", u.Name, "from", u.Cell.String(), "to", prev.String(), "cost", len(path))
	o.logEvent(event.KindInfo, fmt.Sprintf("%s moves to %s", u.Name, prev))
	return true
}

// Damage returns the damage attacker deals to defender.
func Damage(attacker, defender *Unit) float64 {
	return math.Max(1, attacker.Stats.Damage-0.5*defender.Stats.Defense)
}

// ExecuteAttack resolves one attack. The attacker must hold the turn, be
// IDLE, not have acted yet and have the defender within range.
func (o *Orchestrator) ExecuteAttack(attacker, defender *Unit) bool {
	if !o.canAct(attacker, "attack") {
		return false
	}
	if defender == nil || !defender.Alive {
		return o.reject(attacker, "attack", "no living target")
	}
	if defender.Friendly == attacker.Friendly {
		return o.reject(attacker, "attack", "target is on the same side")
	}
	if attacker.State != StateIdle {
		return o.reject(attacker, "attack", "busy: "+attacker.State.String())
	}
	if attacker.Stats.HasActedThisTurn {
		return o.reject(attacker, "attack", "already acted this turn")
	}
	if !o.InRange(attacker, defender) {
		return o.reject(attacker, "attack", defender.Name+" is out of range")
	}

	faceToward(attacker, defender)
	attacker.setState(StateAttacking)
	if a, ok := attacker.Entity.(Animator); ok {
		a.PlayAttack()
	}

	dmg := Damage(attacker, defender)
	defender.Stats.Health -= dmg
	defender.mirrorHealth()
	attacker.Stats.HasActedThisTurn = true
	attacker.Target = defender
	lethal := defender.Stats.Health <= 0

	o.log.Info("attack", "attacker", attacker.Name, "defender", defender.Name, "damage", dmg, "health", defender.Stats.Health)
	o.events.Emit(event.UnitAttacked, event.UnitAttackedData{
		AttackerID: attacker.ID,
		DefenderID: defender.ID,
		Damage:     dmg,
		Lethal:     lethal,
	})
	o.logEvent(event.KindAttack, fmt.Sprintf("%s hits %s for %.0f", attacker.Name, defender.Name, dmg))

	seq := o.turnSeq
	o.timers.After(o.opts.Timing.AttackRecover, func() {
		if attacker.State == StateAttacking {
			attacker.setState(StateIdle)
		}
		if o.turnValid(attacker, seq) {
			o.maybeAutoEnd(attacker)
		}
	})

	if lethal {
		o.KillUnit(defender)
	}
	return true
}

// Defend raises the unit's defense by half for the rest of the turn,
// consumes its action and ends the turn after a short delay.
func (o *Orchestrator) Defend(u *Unit) bool {
	if !o.canAct(u, "defend") {
		return false
	}
	if u.State != StateIdle {
		return o.reject(u, "defend", "busy: "+u.State.String())
	}
	if u.Stats.HasActedThisTurn {
		return o.reject(u, "defend", "already acted this turn")
	}
	u.Stats.Defense = u.BaseDefense * 1.5
	u.Stats.HasActedThisTurn = true
	u.setState(StateDefending)
	o.log.Info("defend", "unit", u.Name, "defense", u.Stats.Defense)
	o.logEvent(event.KindInfo, fmt.Sprintf("%s defends", u.Name))
	o.endTurnAfter(u, o.turnSeq, o.opts.Timing.DefendEnd)
	return true
}

// EndTurn gives up the rest of u's turn.
func (o *Orchestrator) EndTurn(u *Unit) bool {
	if !o.canAct(u, "end turn") {
		return false
	}
	if u.State == StateMoving || u.State == StateAttacking {
		return o.reject(u, "end turn", "busy: "+u.State.String())
	}
	o.advanceTurn(u, o.turnSeq)
	return true
}

// Wait defers u to the end of the round.
func (o *Orchestrator) Wait(u *Unit) bool {
	if !o.canAct(u, "wait") {
		return false
	}
	if u.State != StateIdle {
		return o.reject(u, "wait", "busy: "+u.State.String())
	}
	name := u.Name
	if !o.sched.WaitCurrentTurn() {
		return o.reject(u, "wait", "already committed this turn or round")
	}
	o.log.Debug("wait", "unit", name)
	o.logEvent(event.KindInfo, name+" waits")
	o.checkVictory()
	return true
}

// KillUnit marks u dead and hides its visual. The unit stays in the roster.
func (o *Orchestrator) KillUnit(u *Unit) {
	if u == nil || !u.Alive {
		return
	}
	u.Alive = false
	u.setState(StateDead)
	u.path = nil
	if u.HasCell() {
		o.grid.SetCellOccupied(*u.Cell, false)
	}
	if h, ok := u.Entity.(Hideable); ok {
		h.SetVisible(false)
	}
	o.log.Info("unit died", "unit", u.Name, "side", u.Side())
	o.events.Emit(event.UnitDied, event.UnitDiedData{UnitID: u.ID, Friendly: u.Friendly})
	o.logEvent(event.KindDeath, u.Name+" is defeated")

	if o.started && !o.over && o.sched.Current() == u {
		o.sched.NextTurn()
	}
	o.checkVictory()
}

// Reset discards the roster, scheduler and every pending deferred action.
func (o *Orchestrator) Reset() {
	for _, u := range o.units {
		u.Entity.SetExternalControl(false)
	}
	o.timers.Reset()
	o.turnTimers = nil
	o.units = nil
	o.started = false
	o.over = false
	o.friendlyWon = false
	o.turnSeq = 0
	o.sched = o.newScheduler()
	o.grid.ClearOccupancy()
	o.log.Debug("combat reset", "session", o.timers.Session())
}

func (o *Orchestrator) onTurnStart(u *Unit) {
	o.turnSeq++
	seq := o.turnSeq
	round := o.sched.Round()

	o.log.Debug("turn started", "unit", u.Name, "side", u.Side(), "round", round)
	o.events.Emit(event.TurnChanged, event.TurnChangedData{UnitID: u.ID, Friendly: u.Friendly, Round: round})
	o.logEvent(event.KindTurn, fmt.Sprintf("%s's turn", u.Name))

	if o.aiControlled(u) {
		o.afterInTurn(o.opts.Timing.AIDeliberation, func() {
			if o.turnValid(u, seq) {
				o.ai.TakeTurn(u)
			}
		})
	}
}

// onTurnEnd drops whatever the finished turn still had scheduled.
func (o *Orchestrator) onTurnEnd(u *Unit) {
	for _, id := range o.turnTimers {
		o.timers.Cancel(id)
	}
	o.log.Debug("turn ended", "unit", u.Name, "cancelled", len(o.turnTimers))
	o.turnTimers = o.turnTimers[:0]
}

// afterInTurn schedules fn like Timers.After, but the action is cancelled
// as soon as the current turn ends.
func (o *Orchestrator) afterInTurn(delay float64, fn func()) {
	o.turnTimers = append(o.turnTimers, o.timers.After(delay, fn))
}

func (o *Orchestrator) aiControlled(u *Unit) bool {
	return !u.Friendly || o.opts.AutoFriendly
}

// turnValid reports whether u still holds the turn numbered seq.
func (o *Orchestrator) turnValid(u *Unit, seq uint64) bool {
	return o.started && !o.over && u.Alive && o.turnSeq == seq && o.sched.Current() == u
}

// advanceTurn hands the turn on if u still holds turn seq.
func (o *Orchestrator) advanceTurn(u *Unit, seq uint64) {
	if !o.turnValid(u, seq) {
		return
	}
	o.sched.NextTurn()
	o.checkVictory()
}

func (o *Orchestrator) endTurnAfter(u *Unit, seq uint64, delay float64) {
	o.afterInTurn(delay, func() {
		o.advanceTurn(u, seq)
	})
}

// maybeAutoEnd ends a human-driven turn once nothing is left to do.
func (o *Orchestrator) maybeAutoEnd(u *Unit) {
	if !o.opts.AutoEndTurn || o.aiControlled(u) {
		return
	}
	if u.State != StateIdle || !u.Stats.HasMovedThisTurn || !u.Stats.HasActedThisTurn {
		return
	}
	o.advanceTurn(u, o.turnSeq)
}

// canAct checks the turn-level preconditions shared by every intent.
func (o *Orchestrator) canAct(u *Unit, intent string) bool {
	switch {
	case u == nil:
		o.log.Warn("intent rejected", "intent", intent, "reason", "no unit")
		return false
	case !o.started:
		return o.reject(u, intent, "combat has not started")
	case o.over:
		return o.reject(u, intent, "combat is over")
	case !u.Alive:
		return o.reject(u, intent, "unit is dead")
	case o.sched.Current() != u:
		return o.reject(u, intent, "not this unit's turn")
	}
	return true
}

func (o *Orchestrator) reject(u *Unit, intent, reason string) bool {
	o.log.Warn("intent rejected", "unit", u.Name, "intent", intent, "reason", reason)
	o.logEvent(event.KindWarning, fmt.Sprintf("%s cannot %s: %s", u.Name, intent, reason))
	return false
}

// notice logs an AI decision that ends the turn early.
func (o *Orchestrator) notice(msg string, u *Unit, then string) {
	o.log.Info(msg, "unit", u.Name, "then", then)
	o.logEvent(event.KindWarning, fmt.Sprintf("%s: %s, %s", u.Name, msg, then))
}

func (o *Orchestrator) logEvent(kind event.LogKind, msg string) {
	o.events.Emit(event.Log, event.LogData{Message: msg, Kind: kind})
}

// outcome reports whether one side has been wiped out and who won.
func (o *Orchestrator) outcome() (over, friendlyWon bool) {
	if len(o.units) == 0 {
		return false, false
	}
	friendly, enemy := 0, 0
	for _, u := range o.units {
		if !u.Alive {
			continue
		}
		if u.Friendly {
			friendly++
		} else {
			enemy++
		}
	}
	if friendly == 0 {
		return true, false
	}
	if enemy == 0 {
		return true, true
	}
	return false, false
}

func (o *Orchestrator) checkVictory() {
	if !o.started || o.over {
		return
	}
	if over, won := o.outcome(); over {
		o.endCombat(won)
	}
}

func (o *Orchestrator) endCombat(friendlyWon bool) {
	o.over = true
	o.friendlyWon = friendlyWon
	round := o.sched.Round()
	o.sched.Stop()
	o.timers.Reset()
	for _, u := range o.units {
		if u.State == StateMoving || u.State == StateAttacking {
			u.path = nil
			u.setState(StateIdle)
		}
		u.Entity.SetExternalControl(false)
	}

	winner := "enemy"
	if friendlyWon {
		winner = "friendly"
	}
	o.log.Info("combat ended", "winner", winner, "round", round)
	o.events.Emit(event.CombatEnded, event.CombatEndedData{FriendlyWon: friendlyWon, Round: round})
	if friendlyWon {
		o.logEvent(event.KindVictory, "Victory!")
	} else {
		o.logEvent(event.KindVictory, "Defeat.")
	}
}

// Units returns the whole roster, dead units included.
func (o *Orchestrator) Units() []*Unit {
	out := make([]*Unit, len(o.units))
	copy(out, o.units)
	return out
}

// Alive returns the living units of one side.
func (o *Orchestrator) Alive(friendly bool) []*Unit {
	var out []*Unit
	for _, u := range o.units {
		if u.Alive && u.Friendly == friendly {
			out = append(out, u)
		}
	}
	return out
}

// UnitAt returns the living unit occupying cell, or nil.
func (o *Orchestrator) UnitAt(cell hexgrid.Cell) *Unit {
	for _, u := range o.units {
		if u.Alive && u.HasCell() && *u.Cell == cell {
			return u
		}
	}
	return nil
}

// UnitForEntity returns the unit driving e, or nil. Entities must be
// comparable (pointer types in practice).
func (o *Orchestrator) UnitForEntity(e Entity) *Unit {
	if e == nil {
		return nil
	}
	for _, u := range o.units {
		if u.Entity == e {
			return u
		}
	}
	return nil
}

// ActiveUnit returns the unit holding the turn, or nil.
func (o *Orchestrator) ActiveUnit() *Unit {
	if !o.started || o.over {
		return nil
	}
	return o.sched.Current()
}

// InRange reports whether b is within a's attack range.
func (o *Orchestrator) InRange(a, b *Unit) bool {
	if a == nil || b == nil || !a.HasCell() || !b.HasCell() {
		return false
	}
	return hexgrid.Distance(*a.Cell, *b.Cell) <= a.Stats.AttackRange
}

// InSetup reports whether a roster is placed but combat has not started.
func (o *Orchestrator) InSetup() bool {
	return !o.started && len(o.units) > 0
}

// Started reports whether Start has run for the current roster.
func (o *Orchestrator) Started() bool {
	return o.started
}

// Phase returns the scheduler phase.
func (o *Orchestrator) Phase() Phase {
	return o.sched.Phase()
}

// Round returns the current round number.
func (o *Orchestrator) Round() int {
	return o.sched.Round()
}

// Queue returns the units still to act this round.
func (o *Orchestrator) Queue() []*Unit {
	return o.sched.Queue()
}

// Waiting returns the units that deferred their turn this round, in the
// order they will act once the queue drains.
func (o *Orchestrator) Waiting() []*Unit {
	return o.sched.Waited()
}

// Outcome reports whether combat is over and whether the friendly side won.
func (o *Orchestrator) Outcome() (over, friendlyWon bool) {
	return o.over, o.friendlyWon
}

// Score rates a finished or running battle for the friendly side:
// 100 per defeated enemy plus the remaining friendly health.
func (o *Orchestrator) Score() int {
	score := 0.0
	for _, u := range o.units {
		switch {
		case !u.Friendly && !u.Alive:
			score += 100
		case u.Friendly && u.Alive:
			score += math.Max(0, u.Stats.Health)
		}
	}
	return int(math.Round(score))
}

// Summary is a battle outcome snapshot.
type Summary struct {
	Over              bool
	FriendlyWon       bool
	Rounds            int
	FriendlySurvivors int
	EnemySurvivors    int
	EnemiesDefeated   int
	Score             int
}

// Summary reports the battle outcome so far.
func (o *Orchestrator) Summary() Summary {
	s := Summary{
		Over:        o.over,
		FriendlyWon: o.friendlyWon,
		Rounds:      o.sched.Round(),
		Score:       o.Score(),
	}
	for _, u := range o.units {
		switch {
		case u.Friendly && u.Alive:
			s.FriendlySurvivors++
		case !u.Friendly && u.Alive:
			s.EnemySurvivors++
		case !u.Friendly:
			s.EnemiesDefeated++
		}
	}
	return s
}

// Grid returns the board.
func (o *Orchestrator) Grid() *hexgrid.Grid {
	return o.grid
}

// Timers returns the session's deferred-action scheduler.
func (o *Orchestrator) Timers() *Timers {
	return o.timers
}
