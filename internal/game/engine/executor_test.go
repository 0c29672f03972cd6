package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

func newExecutor(t *testing.T) (*Executor, *world.World, *session.Session) {
	t.Helper()
	w := testWorld()
	s := session.New(w)
	return NewExecutor(w, s, zaptest.NewLogger(t)), w, s
}

func TestExecuteAction_DisplayMessageOnlyOutput(t *testing.T) {
	e, _, s := newExecutor(t)

	assert.Equal(t, []string{"hi"}, e.ExecuteAction(world.NewDisplayMessage("hi")))
	assert.Empty(t, e.ExecuteAction(world.NewSetFlag("door", true)))
	assert.True(t, s.Flag("door"))
}

func TestExecuteAction_AddItemToScene(t *testing.T) {
	e, w, s := newExecutor(t)

	e.ExecuteAction(world.NewAddItemToScene("lamp"))
	e.ExecuteAction(world.NewAddItemToScene("lamp"))

	assert.True(t, s.IsSpawned("lamp"))
	assert.Equal(t, []string{"lamp"}, s.SceneItems[session.LocationKey(0, 0)])
	assert.Equal(t, []string{"crowbar", "wire", "battery"}, w.Maps[0].Locations[0].Items)
}

func TestExecuteAction_RemoveItemFromInventory(t *testing.T) {
	e, _, s := newExecutor(t)
	s.AddToInventory("rope")

	e.ExecuteAction(world.NewRemoveItemFromInventory("rope"))
	e.ExecuteAction(world.NewRemoveItemFromInventory("rope"))

	assert.Empty(t, s.Inventory)
}

func TestExecuteAction_MoveIsNotBoundsChecked(t *testing.T) {
	e, _, s := newExecutor(t)

	e.ExecuteAction(world.NewMoveToLocation(99))

	assert.Equal(t, 99, s.CurrentLocation)
}

func TestExecuteAction_InvalidIsNoop(t *testing.T) {
	e, _, s := newExecutor(t)
	before := snapshot(t, s)

	out := e.ExecuteAction(world.InvalidAction{Opcode: 7, Reason: "unknown opcode"})

	assert.Empty(t, out)
	assert.Equal(t, before, snapshot(t, s))
}

func TestExecuteActions_InOrder(t *testing.T) {
	e, _, s := newExecutor(t)

	out := e.ExecuteActions([]world.Action{
		world.NewDisplayMessage("one"),
		world.NewSetFlag("x", true),
		world.NewDisplayMessage("two"),
		world.NewSetFlag("x", false),
	})

	assert.Equal(t, []string{"one", "two"}, out)
	assert.False(t, s.Flag("x"))
}

func TestExecuteEvent_OutOfRange(t *testing.T) {
	e, w, _ := newExecutor(t)
	fp := &w.Maps[0].Locations[0].FocalPoints[1]

	assert.Empty(t, e.ExecuteEvent(fp, -1))
	assert.Empty(t, e.ExecuteEvent(fp, len(fp.Events)))
	assert.Empty(t, e.ExecuteEvent(nil, 0))
}

func TestExecuteEvent_UseItemWithoutItem(t *testing.T) {
	e, w, s := newExecutor(t)
	sign := &w.Maps[0].Locations[0].FocalPoints[4]
	before := snapshot(t, s)

	out := e.ExecuteEvent(sign, 0)

	assert.Equal(t, []string{MsgEventNeedsItem}, out)
	assert.Equal(t, before, snapshot(t, s))
}
