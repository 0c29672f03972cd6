package handlers

import (
	"strings"

	"github.com/cory-johannsen/focalpoint/internal/frontend/telnet"
	"github.com/cory-johannsen/focalpoint/internal/game/engine"
)

// Prompt is written after every response.
const Prompt = "> "

// TextRenderer styles engine output for a Telnet terminal. With color
// disabled every method returns its input unchanged.
type TextRenderer struct {
	color bool
}

// NewTextRenderer creates a renderer; color enables ANSI styling.
func NewTextRenderer(color bool) *TextRenderer {
	return &TextRenderer{color: color}
}

// RenderLines styles each engine output line according to engine.Classify.
//
// Postcondition: Returns a slice the same length as lines.
func (r *TextRenderer) RenderLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = r.RenderLine(l)
	}
	return out
}

// RenderLine styles one engine output line.
func (r *TextRenderer) RenderLine(line string) string {
	if !r.color {
		return line
	}
	switch engine.Classify(line) {
	case engine.LineLocation:
		header, rest, found := strings.Cut(line, "\n")
		header = telnet.Colorize(telnet.BrightYellow, header)
		if !found {
			return header
		}
		return header + "\n" + rest
	case engine.LineHeading:
		return telnet.Colorize(telnet.Cyan, line)
	case engine.LineRefusal:
		return telnet.Colorize(telnet.Dim, line)
	default:
		return line
	}
}

// Notice styles a message produced by the session itself rather than the world.
func (r *TextRenderer) Notice(text string) string {
	if !r.color {
		return text
	}
	return telnet.Colorize(telnet.Green, text)
}

// Error styles a failed session command.
func (r *TextRenderer) Error(text string) string {
	if !r.color {
		return text
	}
	return telnet.Colorize(telnet.Red, text)
}

// Prompt returns the input prompt.
func (r *TextRenderer) Prompt() string {
	if !r.color {
		return Prompt
	}
	return telnet.Colorize(telnet.BrightWhite, Prompt)
}
