package engine

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

// Executor applies actions to a session and collects their output.
type Executor struct {
	world  *world.World
	sess   *session.Session
	logger *zap.Logger
}

// NewExecutor creates an Executor over w and s.
//
// Precondition: w and s must be non-nil.
func NewExecutor(w *world.World, s *session.Session, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{world: w, sess: s, logger: logger}
}

// ExecuteEvent runs event eventIndex of fp. A UseItem event without an
// ItemID is an authoring defect: it reports that instead of running.
//
// Postcondition: Returns the output lines; an out-of-range index yields none.
func (e *Executor) ExecuteEvent(fp *world.FocalPoint, eventIndex int) []string {
	if fp == nil || eventIndex < 0 || eventIndex >= len(fp.Events) {
		return nil
	}
	ev := &fp.Events[eventIndex]
	if ev.Kind == world.UseItem && ev.ItemID == "" {
		e.logger.Warn("use-item event without item",
			zap.String("focal_point", fp.Name),
			zap.Int("event", eventIndex),
		)
		return []string{MsgEventNeedsItem}
	}
	return e.ExecuteActions(ev.Actions)
}

// ExecuteActions applies actions strictly in order.
func (e *Executor) ExecuteActions(actions []world.Action) []string {
	var out []string
	for _, a := range actions {
		out = append(out, e.ExecuteAction(a)...)
	}
	return out
}

// ExecuteAction applies a single action.
//
// Postcondition: Only DisplayMessage produces output. MoveToLocation is not
// bounds-checked; a bad index leaves the player nowhere until moved again.
func (e *Executor) ExecuteAction(a world.Action) []string {
	switch act := a.(type) {
	case world.DisplayMessage:
		return []string{act.Text}
	case world.AddItemToScene:
		e.sess.Spawn(act.ItemID)
		e.sess.AddSceneItem(e.sess.CurrentMap, e.sess.CurrentLocation, act.ItemID)
	case world.RemoveItemFromInventory:
		e.sess.RemoveFromInventory(act.ItemID)
	case world.MoveToLocation:
		e.sess.CurrentLocation = act.Index
	case world.SetFlag:
		e.sess.SetFlag(act.Name, act.Value)
	case world.InvalidAction:
		e.logger.Debug("skipping invalid action",
			zap.Int("opcode", act.Opcode),
			zap.String("reason", act.Reason),
		)
	}
	return nil
}
