package engine

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/focalpoint/internal/game/command"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

func (in *Interpreter) runStandard(cmd *command.Command, parsed command.ParseResult, raw string) []string {
	switch cmd.Handler {
	case command.HandlerLook:
		return in.look()
	case command.HandlerExamine:
		return in.examine(parsed.Target)
	case command.HandlerInteract:
		return in.interact(parsed.Target)
	case command.HandlerMove:
		return in.move(parsed.Target)
	case command.HandlerInventory:
		return in.inventory()
	case command.HandlerUse:
		return in.use(raw)
	case command.HandlerTake:
		return in.take(parsed.Target)
	case command.HandlerHelp:
		return in.registry.Help()
	default:
		return []string{MsgUnknownCommand}
	}
}

// findFocalPoint returns the visible focal point named name, ignoring case.
func (in *Interpreter) findFocalPoint(name string) (*world.FocalPoint, bool) {
	for _, fp := range VisibleFocalPoints(in.world, in.sess) {
		if strings.EqualFold(fp.Name, name) {
			return fp, true
		}
	}
	return nil, false
}

func (in *Interpreter) look() []string {
	loc, ok := CurrentLocation(in.world, in.sess)
	if !ok {
		return []string{MsgNowhere}
	}
	out := []string{loc.Description}

	if points := VisibleFocalPoints(in.world, in.sess); len(points) > 0 {
		out = append(out, "", MsgYouCanSee)
		for _, fp := range points {
			out = append(out, fmt.Sprintf(listEntryFmt, fp.Name))
		}
	}
	if items := VisibleItems(in.world, in.sess); len(items) > 0 {
		out = append(out, "", MsgItemsInArea)
		for _, it := range items {
			out = append(out, fmt.Sprintf(listEntryFmt, it.Name))
		}
	}
	return out
}

func (in *Interpreter) examine(target string) []string {
	fp, ok := in.findFocalPoint(target)
	if !ok {
		return []string{MsgNotHere}
	}
	return []string{fp.Description}
}

func (in *Interpreter) interact(target string) []string {
	fp, ok := in.findFocalPoint(target)
	if !ok {
		return []string{MsgNotHere}
	}
	idx := fp.FirstEvent(world.Interact)
	if idx < 0 {
		return []string{MsgNothingHappens}
	}
	return in.exec.ExecuteEvent(fp, idx)
}

func (in *Interpreter) move(target string) []string {
	dests := AvailableLocations(in.world, in.sess)

	if target == "" {
		if len(dests) == 0 {
			return []string{MsgNowhereToGo}
		}
		out := []string{MsgCanGoTo}
		for _, d := range dests {
			out = append(out, fmt.Sprintf(destinationFmt, d.Name, d.Via))
		}
		return out
	}

	for _, d := range dests {
		if !strings.EqualFold(d.Name, target) {
			continue
		}
		in.sess.CurrentLocation = d.Index
		loc, ok := CurrentLocation(in.world, in.sess)
		if !ok {
			return []string{MsgNowhere}
		}
		return []string{fmt.Sprintf(locationHeaderFmt, loc.Name, loc.Description)}
	}
	return []string{MsgCantGoThere}
}

func (in *Interpreter) inventory() []string {
	var names []string
	for _, id := range in.sess.Inventory {
		if it, ok := in.world.Item(id); ok {
			names = append(names, it.Name)
		}
	}
	if len(names) == 0 {
		return []string{MsgNotCarrying}
	}
	out := []string{MsgCarrying}
	for _, name := range names {
		out = append(out, fmt.Sprintf(listEntryFmt, name))
	}
	return out
}

// take matches the target against items in the current scene, preferring
// an exact name over a partial one. An item that is listed in the scene but
// no longer spawned cannot be taken again.
func (in *Interpreter) take(target string) []string {
	if target == "" {
		return []string{MsgNotHere}
	}
	if it, ok := matchItem(VisibleItems(in.world, in.sess), target); ok {
		if !in.sess.Take(it.ID) {
			return []string{MsgCantTake}
		}
		return []string{fmt.Sprintf(takeFmt, it.Name)}
	}

	var gone []*world.Item
	for _, id := range in.sess.SceneItemIDs(in.world) {
		if in.sess.IsSpawned(id) {
			continue
		}
		if it, ok := in.world.Item(id); ok {
			gone = append(gone, it)
		}
	}
	if _, ok := matchItem(gone, target); ok {
		return []string{MsgCantTake}
	}
	return []string{MsgNotHere}
}

// matchItem finds the item named name, falling back to the first item whose
// name contains it.
func matchItem(items []*world.Item, name string) (*world.Item, bool) {
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), name) {
			return it, true
		}
	}
	return nil, false
}

func (in *Interpreter) use(raw string) []string {
	parsed, ok := command.ParseUse(raw)
	if !ok {
		return []string{MsgUseSyntax}
	}

	item, ok := in.world.FindItemByName(in.sess.Inventory, parsed.Item)
	if !ok {
		return []string{fmt.Sprintf(dontHaveFmt, parsed.Item)}
	}

	if fp, ok := in.findFocalPoint(parsed.Target); ok {
		idx := fp.ItemEvent(world.UseItem, item.ID)
		if idx < 0 {
			return []string{fmt.Sprintf(cantUseOnFmt, item.Name)}
		}
		return in.exec.ExecuteEvent(fp, idx)
	}

	other, ok := in.world.FindItemByName(in.sess.Inventory, parsed.Target)
	if !ok {
		return []string{fmt.Sprintf(noUseTargetFmt, parsed.Target)}
	}
	if loc, ok := CurrentLocation(in.world, in.sess); ok {
		for i := range loc.FocalPoints {
			fp := &loc.FocalPoints[i]
			if idx := fp.ItemEvent(world.UseWithItem, item.ID); idx >= 0 {
				return in.exec.ExecuteEvent(fp, idx)
			}
		}
	}
	return []string{fmt.Sprintf(cantUseWithFmt, item.Name, other.Name)}
}
