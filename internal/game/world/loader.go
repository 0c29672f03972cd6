package world

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedWorld is returned when a world document lacks array-shaped
// Items or Maps.
var ErrMalformedWorld = errors.New("malformed world document")

// Format is a world document encoding.
type Format string

// Supported world document encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension.
//
// Postcondition: Returns FormatYAML for .yaml/.yml, FormatJSON for .json, or an error.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported world file extension %q", filepath.Ext(path))
	}
}

// wireWorld is the document shape written by the world editor.
type wireWorld struct {
	Items []wireItem `json:"Items" yaml:"Items"`
	Maps  []wireMap  `json:"Maps" yaml:"Maps"`
}

type wireItem struct {
	ID          string `json:"Id" yaml:"Id"`
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type wireMap struct {
	Name         string         `json:"Name" yaml:"Name"`
	Description  string         `json:"Description" yaml:"Description"`
	Introduction string         `json:"Introduction" yaml:"Introduction"`
	Locations    []wireLocation `json:"Locations" yaml:"Locations"`
}

type wireLocation struct {
	Name        string           `json:"Name" yaml:"Name"`
	Description string           `json:"Description" yaml:"Description"`
	Items       []string         `json:"Items" yaml:"Items"`
	FocalPoints []wireFocalPoint `json:"FocalPoints,omitempty" yaml:"FocalPoints,omitempty"`
	// FoculPoints is the spelling used by early editor exports.
	FoculPoints []wireFocalPoint `json:"FoculPoints,omitempty" yaml:"FoculPoints,omitempty"`
}

type wireFocalPoint struct {
	Name        string      `json:"Name" yaml:"Name"`
	Description string      `json:"Description" yaml:"Description"`
	Events      []wireEvent `json:"Events" yaml:"Events"`
	Flags       []wireFlag  `json:"Flags" yaml:"Flags"`
	Aliases     []wireAlias `json:"Aliases,omitempty" yaml:"Aliases,omitempty"`
}

type wireEvent struct {
	Event   int          `json:"Event" yaml:"Event"`
	ItemID  string       `json:"ItemId,omitempty" yaml:"ItemId,omitempty"`
	Actions []wireAction `json:"Actions" yaml:"Actions"`
}

type wireAction struct {
	Event     int      `json:"Event" yaml:"Event"`
	Arguments []string `json:"Arguments" yaml:"Arguments"`
}

type wireFlag struct {
	Flag bool   `json:"Flag" yaml:"Flag"`
	Name string `json:"Name" yaml:"Name"`
}

type wireAlias struct {
	Verb          string       `json:"Verb" yaml:"Verb"`
	Actions       []wireAction `json:"Actions" yaml:"Actions"`
	RequiredItems []string     `json:"RequiredItems,omitempty" yaml:"RequiredItems,omitempty"`
	RequiredFlags []wireFlag   `json:"RequiredFlags,omitempty" yaml:"RequiredFlags,omitempty"`
}

// LoadFromFile reads a world document, choosing the encoding by extension.
//
// Precondition: path must name a .json, .yaml or .yml file.
// Postcondition: Returns a World or a non-nil error.
func LoadFromFile(path string) (*World, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}
	w, err := LoadFromBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading world from %s: %w", path, err)
	}
	return w, nil
}

// LoadFromBytes parses a world document. Only the top-level shape is
// validated: Items and Maps must both be arrays. Defects deeper in the
// document load as no-op actions and are reported by Lint.
//
// Postcondition: Returns a World or a non-nil error; shape errors wrap ErrMalformedWorld.
func LoadFromBytes(data []byte, format Format) (*World, error) {
	var ww wireWorld
	switch format {
	case FormatJSON:
		if err := checkJSONShape(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &ww); err != nil {
			return nil, fmt.Errorf("parsing world JSON: %w", err)
		}
	case FormatYAML:
		if err := checkYAMLShape(data); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &ww); err != nil {
			return nil, fmt.Errorf("parsing world YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported world format %q", format)
	}
	return convertWire(ww), nil
}

func checkJSONShape(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedWorld, err)
	}
	for _, key := range []string{"Items", "Maps"} {
		raw := bytes.TrimSpace(top[key])
		if len(raw) == 0 || raw[0] != '[' {
			return fmt.Errorf("%w: %s must be an array", ErrMalformedWorld, key)
		}
	}
	return nil
}

func checkYAMLShape(data []byte) error {
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedWorld, err)
	}
	for _, key := range []string{"Items", "Maps"} {
		node, ok := top[key]
		if !ok || node.Kind != yaml.SequenceNode {
			return fmt.Errorf("%w: %s must be an array", ErrMalformedWorld, key)
		}
	}
	return nil
}

// Encode writes w in the editor's document shape.
//
// Postcondition: Returns the encoded document or a non-nil error.
func Encode(w *World, format Format) ([]byte, error) {
	ww := toWire(w)
	switch format {
	case FormatJSON:
		return json.MarshalIndent(ww, "", "  ")
	case FormatYAML:
		return yaml.Marshal(ww)
	default:
		return nil, fmt.Errorf("unsupported world format %q", format)
	}
}

func convertWire(ww wireWorld) *World {
	w := &World{
		Items: make([]Item, 0, len(ww.Items)),
		Maps:  make([]Map, 0, len(ww.Maps)),
	}
	for _, wi := range ww.Items {
		w.Items = append(w.Items, Item{ID: wi.ID, Name: wi.Name, Description: wi.Description})
	}
	for _, wm := range ww.Maps {
		mp := Map{
			Name:         wm.Name,
			Description:  wm.Description,
			Introduction: wm.Introduction,
		}
		for _, wl := range wm.Locations {
			loc := Location{
				Name:        wl.Name,
				Description: wl.Description,
				Items:       wl.Items,
			}
			fps := wl.FocalPoints
			if fps == nil {
				fps = wl.FoculPoints
			}
			for _, wf := range fps {
				loc.FocalPoints = append(loc.FocalPoints, convertFocalPoint(wf))
			}
			mp.Locations = append(mp.Locations, loc)
		}
		w.Maps = append(w.Maps, mp)
	}
	return w
}

func convertFocalPoint(wf wireFocalPoint) FocalPoint {
	fp := FocalPoint{
		Name:        wf.Name,
		Description: wf.Description,
		Flags:       convertFlags(wf.Flags),
	}
	for _, we := range wf.Events {
		fp.Events = append(fp.Events, Event{
			Kind:    EventKind(we.Event),
			ItemID:  we.ItemID,
			Actions: convertActions(we.Actions),
		})
	}
	for _, wa := range wf.Aliases {
		fp.Aliases = append(fp.Aliases, CommandAlias{
			Verb:          wa.Verb,
			Actions:       convertActions(wa.Actions),
			RequiredItems: wa.RequiredItems,
			RequiredFlags: convertFlags(wa.RequiredFlags),
		})
	}
	return fp
}

func convertFlags(wfs []wireFlag) []Flag {
	if len(wfs) == 0 {
		return nil
	}
	flags := make([]Flag, 0, len(wfs))
	for _, f := range wfs {
		flags = append(flags, Flag{Name: f.Name, Value: f.Flag})
	}
	return flags
}

func convertActions(was []wireAction) []Action {
	actions := make([]Action, 0, len(was))
	for _, wa := range was {
		actions = append(actions, decodeAction(wa))
	}
	return actions
}

// decodeAction maps an opcode and its positional arguments onto the typed
// action. Anything that does not fit becomes an InvalidAction.
func decodeAction(wa wireAction) Action {
	invalid := func(reason string) Action {
		return InvalidAction{Opcode: wa.Event, Arguments: wa.Arguments, Reason: reason}
	}
	arg := func(i int) (string, bool) {
		if i < len(wa.Arguments) {
			return wa.Arguments[i], true
		}
		return "", false
	}

	switch ActionKind(wa.Event) {
	case KindDisplayMessage:
		text, ok := arg(0)
		if !ok {
			return invalid("missing message text")
		}
		return NewDisplayMessage(text)
	case KindAddItemToScene:
		id, ok := arg(0)
		if !ok {
			return invalid("missing item id")
		}
		return NewAddItemToScene(id)
	case KindRemoveItemFromInventory:
		id, ok := arg(0)
		if !ok {
			return invalid("missing item id")
		}
		return NewRemoveItemFromInventory(id)
	case KindMoveToLocation:
		raw, ok := arg(0)
		if !ok {
			return invalid("missing location index")
		}
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return invalid(fmt.Sprintf("location index %q is not a number", raw))
		}
		return NewMoveToLocation(idx)
	case KindSetFlag:
		name, ok := arg(0)
		if !ok {
			return invalid("missing flag name")
		}
		value, _ := arg(1)
		return NewSetFlag(name, value == "true")
	default:
		return invalid("unknown opcode")
	}
}

func toWire(w *World) wireWorld {
	ww := wireWorld{
		Items: make([]wireItem, 0, len(w.Items)),
		Maps:  make([]wireMap, 0, len(w.Maps)),
	}
	for _, it := range w.Items {
		ww.Items = append(ww.Items, wireItem{ID: it.ID, Name: it.Name, Description: it.Description})
	}
	for _, mp := range w.Maps {
		wm := wireMap{Name: mp.Name, Description: mp.Description, Introduction: mp.Introduction}
		for _, loc := range mp.Locations {
			wl := wireLocation{Name: loc.Name, Description: loc.Description, Items: loc.Items}
			if wl.Items == nil {
				wl.Items = []string{}
			}
			wl.FocalPoints = make([]wireFocalPoint, 0, len(loc.FocalPoints))
			for _, fp := range loc.FocalPoints {
				wl.FocalPoints = append(wl.FocalPoints, focalPointToWire(fp))
			}
			wm.Locations = append(wm.Locations, wl)
		}
		ww.Maps = append(ww.Maps, wm)
	}
	return ww
}

func focalPointToWire(fp FocalPoint) wireFocalPoint {
	wf := wireFocalPoint{
		Name:        fp.Name,
		Description: fp.Description,
		Events:      make([]wireEvent, 0, len(fp.Events)),
		Flags:       flagsToWire(fp.Flags),
	}
	for _, ev := range fp.Events {
		wf.Events = append(wf.Events, wireEvent{
			Event:   int(ev.Kind),
			ItemID:  ev.ItemID,
			Actions: actionsToWire(ev.Actions),
		})
	}
	for _, al := range fp.Aliases {
		wf.Aliases = append(wf.Aliases, wireAlias{
			Verb:          al.Verb,
			Actions:       actionsToWire(al.Actions),
			RequiredItems: al.RequiredItems,
			RequiredFlags: flagsToWire(al.RequiredFlags),
		})
	}
	return wf
}

func flagsToWire(flags []Flag) []wireFlag {
	out := make([]wireFlag, 0, len(flags))
	for _, f := range flags {
		out = append(out, wireFlag{Flag: f.Value, Name: f.Name})
	}
	return out
}

func actionsToWire(actions []Action) []wireAction {
	out := make([]wireAction, 0, len(actions))
	for _, a := range actions {
		out = append(out, encodeAction(a))
	}
	return out
}

func encodeAction(a Action) wireAction {
	switch act := a.(type) {
	case DisplayMessage:
		return wireAction{Event: int(KindDisplayMessage), Arguments: []string{act.Text}}
	case AddItemToScene:
		return wireAction{Event: int(KindAddItemToScene), Arguments: []string{act.ItemID}}
	case RemoveItemFromInventory:
		return wireAction{Event: int(KindRemoveItemFromInventory), Arguments: []string{act.ItemID}}
	case MoveToLocation:
		return wireAction{Event: int(KindMoveToLocation), Arguments: []string{strconv.Itoa(act.Index)}}
	case SetFlag:
		return wireAction{Event: int(KindSetFlag), Arguments: []string{act.Name, strconv.FormatBool(act.Value)}}
	case InvalidAction:
		args := act.Arguments
		if args == nil {
			args = []string{}
		}
		return wireAction{Event: act.Opcode, Arguments: args}
	default:
		return wireAction{Event: int(KindInvalid), Arguments: []string{}}
	}
}
