package world

import "fmt"

// Lint reports authoring defects that loading tolerates: duplicate item IDs,
// references to unknown items, out-of-range movement targets, undecodable
// actions, and item events without an ItemID. The engine never fails on any
// of these; they surface as messages or no-ops during play.
//
// Postcondition: Returns one human-readable warning per defect, in document order.
func (w *World) Lint() []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	seen := make(map[string]bool, len(w.Items))
	for _, it := range w.Items {
		if seen[it.ID] {
			warn("item %q: duplicate id", it.ID)
		}
		seen[it.ID] = true
	}

	checkItem := func(where, id string) {
		if !seen[id] {
			warn("%s: unknown item %q", where, id)
		}
	}

	for mi, mp := range w.Maps {
		for li, loc := range mp.Locations {
			locWhere := fmt.Sprintf("map %d location %d (%s)", mi, li, loc.Name)
			for _, id := range loc.Items {
				checkItem(locWhere, id)
			}
			names := make(map[string]bool, len(loc.FocalPoints))
			for _, fp := range loc.FocalPoints {
				fpWhere := fmt.Sprintf("%s focal point %q", locWhere, fp.Name)
				if names[fp.Name] {
					warn("%s: duplicate focal point name", fpWhere)
				}
				names[fp.Name] = true

				checkActions := func(where string, actions []Action) {
					for ai, a := range actions {
						actWhere := fmt.Sprintf("%s action %d", where, ai)
						switch act := a.(type) {
						case InvalidAction:
							warn("%s: %s", actWhere, describeAction(act))
						case AddItemToScene:
							checkItem(actWhere, act.ItemID)
						case RemoveItemFromInventory:
							checkItem(actWhere, act.ItemID)
						case MoveToLocation:
							if act.Index < 0 || act.Index >= len(mp.Locations) {
								warn("%s: %s targets a location outside map %d", actWhere, describeAction(act), mi)
							}
						}
					}
				}

				for ei, ev := range fp.Events {
					evWhere := fmt.Sprintf("%s event %d", fpWhere, ei)
					switch ev.Kind {
					case Examine, Interact:
					case UseItem, UseWithItem:
						if ev.ItemID == "" {
							warn("%s: %s event has no item", evWhere, ev.Kind)
						} else {
							checkItem(evWhere, ev.ItemID)
						}
					default:
						warn("%s: unknown event kind %d", evWhere, int(ev.Kind))
					}
					checkActions(evWhere, ev.Actions)
				}
				for ai, al := range fp.Aliases {
					alWhere := fmt.Sprintf("%s alias %d (%s)", fpWhere, ai, al.Verb)
					for _, id := range al.RequiredItems {
						checkItem(alWhere, id)
					}
					checkActions(alWhere, al.Actions)
				}
			}
		}
	}
	return warnings
}
