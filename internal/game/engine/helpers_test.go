package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

// testWorld is a small two-map world exercising every event and action kind.
//
// Map 0:
//
//	0 Cellar: Crate (alias "smash" needs crowbar; alias "pry" needs lever_pulled),
//	          Lever (interact sets lever_pulled, moves to 1),
//	          Hatch (visible once lever_pulled; events move to 1 and 2),
//	          Workbench (use-with-item: wire joins battery),
//	          Broken Sign (use-item event with no item id)
//	1 Yard:   Gate (examine-only), items: rope
//	2 Attic:  empty
func testWorld() *world.World {
	return &world.World{
		Items: []world.Item{
			{ID: "crowbar", Name: "Crowbar", Description: "Bent iron."},
			{ID: "wire", Name: "Copper Wire", Description: "A coil of wire."},
			{ID: "battery", Name: "Battery", Description: "Still charged."},
			{ID: "rope", Name: "Rope", Description: "Frayed rope."},
			{ID: "lamp", Name: "Lamp", Description: "An oil lamp."},
		},
		Maps: []world.Map{
			{
				Name:         "Farmhouse",
				Introduction: "You wake in a cellar.",
				Locations: []world.Location{
					{
						Name:        "Cellar",
						Description: "A damp cellar.",
						Items:       []string{"crowbar", "wire", "battery"},
						FocalPoints: []world.FocalPoint{
							{
								Name:        "Crate",
								Description: "A nailed-shut crate.",
								Aliases: []world.CommandAlias{
									{
										Verb:          "smash",
										RequiredItems: []string{"crowbar", "lamp"},
										Actions: []world.Action{
											world.NewDisplayMessage("The crate splinters."),
											world.NewAddItemToScene("lamp"),
										},
									},
									{
										Verb:          "pry",
										RequiredFlags: []world.Flag{{Name: "lever_pulled", Value: true}},
										Actions: []world.Action{
											world.NewDisplayMessage("The lid comes loose."),
											world.NewSetFlag("crate_open", true),
											world.NewAddItemToScene("lamp"),
										},
									},
								},
							},
							{
								Name:        "Lever",
								Description: "A rusty lever.",
								Events: []world.Event{
									{Kind: world.Interact, Actions: []world.Action{
										world.NewDisplayMessage("Clunk."),
										world.NewSetFlag("lever_pulled", true),
									}},
								},
								Aliases: []world.CommandAlias{
									{Verb: "pull", Actions: []world.Action{world.NewSetFlag("lever_pulled", true)}},
								},
							},
							{
								Name:        "Hatch",
								Description: "A hatch in the ceiling.",
								Flags:       []world.Flag{{Name: "lever_pulled", Value: true}},
								Events: []world.Event{
									{Kind: world.Interact, Actions: []world.Action{
										world.NewDisplayMessage("You climb out."),
										world.NewMoveToLocation(1),
									}},
									{Kind: world.Examine, Actions: []world.Action{world.NewMoveToLocation(2)}},
									{Kind: world.Examine, Actions: []world.Action{world.NewMoveToLocation(1)}},
								},
							},
							{
								Name:        "Workbench",
								Description: "Tools everywhere.",
								Events: []world.Event{
									{Kind: world.UseWithItem, ItemID: "wire", Actions: []world.Action{
										world.NewDisplayMessage("Sparks fly."),
										world.NewRemoveItemFromInventory("wire"),
										world.NewSetFlag("powered", true),
									}},
								},
							},
							{
								Name:        "Broken Sign",
								Description: "Unreadable.",
								Events: []world.Event{
									{Kind: world.UseItem, Actions: []world.Action{world.NewDisplayMessage("unreachable")}},
								},
							},
						},
					},
					{
						Name:        "Yard",
						Description: "An overgrown yard.",
						Items:       []string{"rope"},
						FocalPoints: []world.FocalPoint{
							{Name: "Gate", Description: "A locked gate."},
						},
					},
					{Name: "Attic", Description: "Dusty rafters."},
				},
			},
		},
	}
}

func newInterpreter(t *testing.T, w *world.World) *Interpreter {
	t.Helper()
	return New(w, nil, zaptest.NewLogger(t))
}

// snapshot encodes s for before/after comparisons.
func snapshot(t *testing.T, s *session.Session) string {
	t.Helper()
	data, err := s.Marshal()
	require.NoError(t, err)
	return string(data)
}

func run(in *Interpreter, commands ...string) []string {
	var out []string
	for _, c := range commands {
		out = in.HandleCommand(c)
	}
	return out
}
