package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/focalpoint/internal/game/command"
	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

// Interpreter turns command lines into session mutations and output lines.
// It exclusively owns its Session; the World may be shared read-only between
// interpreters. An Interpreter is not safe for concurrent use.
type Interpreter struct {
	world    *world.World
	sess     *session.Session
	exec     *Executor
	registry *command.Registry
	logger   *zap.Logger
}

// New creates an Interpreter for w playing session s. A nil s starts a new
// session; a nil logger discards logs.
//
// Precondition: w must be non-nil.
// Postcondition: Returns an Interpreter ready to accept commands.
func New(w *world.World, s *session.Session, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if s == nil {
		s = session.New(w)
	}
	in := &Interpreter{
		world:    w,
		registry: command.DefaultRegistry(),
		logger:   logger,
	}
	in.attach(s)
	return in
}

func (in *Interpreter) attach(s *session.Session) {
	in.sess = s
	in.exec = NewExecutor(in.world, s, in.logger)
}

// World returns the world being played.
func (in *Interpreter) World() *world.World { return in.world }

// Session returns the live session. Callers must not modify it while a
// command is running.
func (in *Interpreter) Session() *session.Session { return in.sess }

// Snapshot encodes the current session.
//
// Postcondition: Returns bytes accepted by Restore, or a non-nil error.
func (in *Interpreter) Snapshot() ([]byte, error) {
	return in.sess.Marshal()
}

// Restore replaces the session wholesale with a snapshot.
//
// Postcondition: On error the current session is unchanged.
func (in *Interpreter) Restore(data []byte) error {
	s, err := session.Unmarshal(data)
	if err != nil {
		return err
	}
	in.attach(s)
	return nil
}

// Reset starts the world over with a fresh session.
func (in *Interpreter) Reset() {
	in.attach(session.New(in.world))
}

// Introduction returns the lines shown when play begins: the map's
// introduction, the starting location, and a hint about help.
func (in *Interpreter) Introduction() []string {
	var lines []string
	if mp, ok := in.world.Map(in.sess.CurrentMap); ok && mp.Introduction != "" {
		lines = append(lines, mp.Introduction)
	}
	if loc, ok := CurrentLocation(in.world, in.sess); ok {
		lines = append(lines, fmt.Sprintf(locationHeaderFmt, loc.Name, loc.Description))
	}
	return append(lines, "", MsgHelpHint)
}

// HandleCommand resolves one line of input and applies it. Standard verbs
// always win; otherwise the first custom verb on a visible focal point that
// matches is used. Every outcome, including failure, is reported as output;
// a command rejected by its preconditions leaves the session unchanged.
//
// Postcondition: Returns the output lines in order. Actions that emit no
// message can make the result empty.
func (in *Interpreter) HandleCommand(raw string) []string {
	parsed := command.Parse(raw)

	if cmd, ok := in.registry.Resolve(parsed.Command); ok {
		out := in.runStandard(cmd, parsed, raw)
		in.logCommand(parsed, "standard", out)
		return out
	}

	if out, ok := in.runAlias(parsed); ok {
		in.logCommand(parsed, "alias", out)
		return out
	}

	in.logCommand(parsed, "unknown", nil)
	return []string{MsgUnknownCommand}
}

// runAlias scans visible focal points for a custom verb. The first alias
// whose verb matches decides the outcome, even if its preconditions fail.
func (in *Interpreter) runAlias(parsed command.ParseResult) ([]string, bool) {
	if parsed.Command == "" {
		return nil, false
	}
	for _, fp := range VisibleFocalPoints(in.world, in.sess) {
		if len(fp.Aliases) == 0 {
			continue
		}
		if parsed.Target != "" && !strings.Contains(strings.ToLower(fp.Name), parsed.Target) {
			continue
		}
		for i := range fp.Aliases {
			alias := &fp.Aliases[i]
			if !strings.EqualFold(alias.Verb, parsed.Command) {
				continue
			}
			if missing := in.sess.MissingItems(alias.RequiredItems); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, id := range missing {
					names = append(names, in.world.ItemName(id))
				}
				return []string{fmt.Sprintf(missingItemsFmt, strings.Join(names, " and "))}, true
			}
			if !in.sess.FlagsMatch(alias.RequiredFlags) {
				return []string{MsgCantDoThatNow}, true
			}
			return in.exec.ExecuteActions(alias.Actions), true
		}
	}
	return nil, false
}

func (in *Interpreter) logCommand(parsed command.ParseResult, route string, out []string) {
	if ce := in.logger.Check(zap.DebugLevel, "command handled"); ce != nil {
		ce.Write(
			zap.String("verb", parsed.Command),
			zap.String("target", parsed.Target),
			zap.String("route", route),
			zap.Int("lines", len(out)),
			zap.Int("map", in.sess.CurrentMap),
			zap.Int("location", in.sess.CurrentLocation),
		)
	}
}

// Step runs one command against a copy of s and returns the updated copy
// with the output. The session passed in is never modified.
//
// Precondition: w and s must be non-nil.
func Step(w *world.World, s *session.Session, raw string) (*session.Session, []string) {
	next := s.Clone()
	out := New(w, next, nil).HandleCommand(raw)
	return next, out
}
