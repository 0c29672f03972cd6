package command

import (
	"regexp"
	"strings"
)

// ParseResult holds the parsed verb and target from a line of input.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command, lowercased.
	Args []string
	// Target is Args joined with single spaces.
	Target string
}

// Parse lowercases a line, splits it on whitespace, and separates the verb
// from its target.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	words := strings.Fields(strings.ToLower(line))
	if len(words) == 0 {
		return ParseResult{}
	}
	result := ParseResult{Command: words[0]}
	if len(words) > 1 {
		result.Args = words[1:]
		result.Target = strings.Join(result.Args, " ")
	}
	return result
}

var usePattern = regexp.MustCompile(`(?i)use\s+(.+?)\s+on\s+(.+)`)

// UseResult holds the two names of a "use X on Y" command.
type UseResult struct {
	// Item is the name of the carried item being used, lowercased.
	Item string
	// Target is the name of the focal point or second item, lowercased.
	Target string
}

// ParseUse matches the fixed "use <item> on <target>" form, ignoring case.
// The item name is the shortest text before an " on ".
//
// Postcondition: Returns (result, true) on a match, or (UseResult{}, false) otherwise.
func ParseUse(line string) (UseResult, bool) {
	m := usePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return UseResult{}, false
	}
	return UseResult{
		Item:   strings.ToLower(strings.TrimSpace(m[1])),
		Target: strings.ToLower(strings.TrimSpace(m[2])),
	}, true
}
