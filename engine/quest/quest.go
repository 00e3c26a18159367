// Package quest tracks quest lifecycle and objective evaluation. A quest
// moves Available → Active → Completed and never back; only Active quests
// are ever evaluated.
package quest

import (
	"errors"

	"github.com/okrause/emberfell/types"
)

// Status is a quest's lifecycle state.
type Status string

const (
	Available Status = "available"
	Active    Status = "active"
	Completed Status = "completed"
)

// ErrNotAvailable rejects accepting a quest that is already active or done.
var ErrNotAvailable = errors.New("quest is not available")

// Quest is a runtime quest instance over an immutable definition.
type Quest struct {
	types.QuestDef
	Status Status
}

// Progress is the campaign state quest predicates are evaluated against.
// The caller supplies it after every combat resolution or travel action.
type Progress struct {
	EnemiesDefeated int
	Location        string // current location ID
}

// Accept transitions Available → Active. Any other starting state is
// rejected.
func (q *Quest) Accept() error {
	if q.Status != Available {
		return ErrNotAvailable
	}
	q.Status = Active
	return nil
}

// satisfied evaluates the objective predicate against campaign progress.
func (q *Quest) satisfied(p Progress) bool {
	switch q.Objective.Kind {
	case types.ObjectiveDefeat:
		return p.EnemiesDefeated >= q.Objective.Count
	case types.ObjectiveReach:
		return p.Location == q.Objective.Location
	default:
		return false
	}
}

// Evaluate checks an Active quest's objective and, when satisfied,
// transitions it to Completed and reports true. Quests in any other state
// are inert: re-evaluating a completed quest is a no-op, so rewards are
// granted exactly once.
func (q *Quest) Evaluate(p Progress) bool {
	if q.Status != Active {
		return false
	}
	if !q.satisfied(p) {
		return false
	}
	q.Status = Completed
	return true
}

// Tracker holds a campaign's quest instances in definition order.
type Tracker struct {
	Quests []*Quest
}

// NewTracker creates quest instances from definitions, all Available.
func NewTracker(defs []types.QuestDef) *Tracker {
	t := &Tracker{}
	for _, d := range defs {
		t.Quests = append(t.Quests, &Quest{QuestDef: d, Status: Available})
	}
	return t
}

// ByID returns the quest with the given definition ID, or nil.
func (t *Tracker) ByID(id string) *Quest {
	for _, q := range t.Quests {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// WithStatus returns the quests currently in the given state, in order.
func (t *Tracker) WithStatus(s Status) []*Quest {
	var out []*Quest
	for _, q := range t.Quests {
		if q.Status == s {
			out = append(out, q)
		}
	}
	return out
}

// EvaluateAll evaluates every active quest against p and returns those that
// completed on this pass.
func (t *Tracker) EvaluateAll(p Progress) []*Quest {
	var done []*Quest
	for _, q := range t.Quests {
		if q.Evaluate(p) {
			done = append(done, q)
		}
	}
	return done
}
