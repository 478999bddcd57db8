package combat

import (
	"sort"

	"github.com/google/uuid"
)

// Timers is the per-session scheduler of deferred actions. Time only moves
// when Tick is called from the frame loop, so delays are deterministic and
// testable without a wall clock.
type Timers struct {
	session string
	now     float64
	nextID  uint64
	pending []*deferred
}

type deferred struct {
	id      uint64
	due     float64
	session string
	fn      func()
}

// NewTimers creates an empty scheduler with a fresh session id.
func NewTimers() *Timers {
	return &Timers{session: uuid.NewString()}
}

// Session returns the current session id.
func (t *Timers) Session() string {
	return t.session
}

// Now returns the scheduler's elapsed time in seconds.
func (t *Timers) Now() float64 {
	return t.now
}

// After schedules fn to run once delay seconds have been ticked.
// The action is bound to the current session.
func (t *Timers) After(delay float64, fn func()) uint64 {
	if delay < 0 {
		delay = 0
	}
	t.nextID++
	t.pending = append(t.pending, &deferred{
		id:      t.nextID,
		due:     t.now + delay,
		session: t.session,
		fn:      fn,
	})
	return t.nextID
}

// Cancel drops a pending action. Unknown ids are ignored.
func (t *Timers) Cancel(id uint64) {
	for i, d := range t.pending {
		if d.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of scheduled actions.
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Tick advances time by dt and runs every action that has come due, in
// due-time then scheduling order. Actions scheduled while firing wait for
// the next Tick. Returns how many actions ran.
func (t *Timers) Tick(dt float64) int {
	if dt > 0 {
		t.now += dt
	}

	var due, keep []*deferred
	for _, d := range t.pending {
		if d.due <= t.now {
			due = append(due, d)
		} else {
			keep = append(keep, d)
		}
	}
	if len(due) == 0 {
		return 0
	}
	t.pending = keep

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	fired := 0
	for _, d := range due {
		// A Reset from an earlier action invalidates the rest of the batch.
		if d.session != t.session {
			continue
		}
		d.fn()
		fired++
	}
	return fired
}

// Reset drops every pending action and starts a new session, so actions
// captured by the old session can never fire.
func (t *Timers) Reset() {
	t.pending = nil
	t.now = 0
	t.session = uuid.NewString()
}
