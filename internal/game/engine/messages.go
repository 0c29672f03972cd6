package engine

import "strings"

// Fixed player-facing responses. Every failure the engine can meet is one of
// these lines; none are returned as errors.
const (
	MsgUnknownCommand = "I don't understand that command."
	MsgNotHere        = "You don't see that here."
	MsgNothingHappens = "Nothing happens."
	MsgCantGoThere    = "You can't go there from here."
	MsgNowhereToGo    = "There's nowhere you can go from here."
	MsgCanGoTo        = "You can go to:"
	MsgCarrying       = "You are carrying:"
	MsgNotCarrying    = "You're not carrying anything."
	MsgCantTake       = "You can't take that."
	MsgCantDoThatNow  = "You can't do that right now."
	MsgUseSyntax      = "Use what on what? (Format: use [item] on [object])"
	MsgEventNeedsItem = "This event requires an item."
	MsgYouCanSee      = "You can see:"
	MsgItemsInArea    = "Items in the area:"
	MsgNowhere        = "There is nothing here."
	MsgHelpHint       = `Type "help" for available commands.`
	locationHeaderFmt = "Location: %s\n%s"
	missingItemsFmt   = "You need %s to do that."
	dontHaveFmt       = "You don't have a %s."
	cantUseOnFmt      = "You can't use the %s on that."
	cantUseWithFmt    = "You can't use the %s with the %s."
	noUseTargetFmt    = "You don't see a %s to use that on."
	takeFmt           = "You take the %s."
	destinationFmt    = "- %s (via %s)"
	listEntryFmt      = "- %s"
)

// LineKind classifies an output line so frontends can style it.
type LineKind int

const (
	// LineText is narrative or list output.
	LineText LineKind = iota
	// LineLocation is a "Location: <name>\n<description>" header.
	LineLocation
	// LineHeading introduces a list, such as "You can see:".
	LineHeading
	// LineRefusal reports that a command did nothing.
	LineRefusal
)

var refusals = map[string]bool{
	MsgUnknownCommand: true,
	MsgNotHere:        true,
	MsgNothingHappens: true,
	MsgCantGoThere:    true,
	MsgCantTake:       true,
	MsgCantDoThatNow:  true,
	MsgUseSyntax:      true,
	MsgEventNeedsItem: true,
	MsgNowhere:        true,
}

var refusalPrefixes = []string{"You need ", "You don't have a ", "You can't use the ", "You don't see a "}

var headings = map[string]bool{
	MsgCanGoTo:     true,
	MsgCarrying:    true,
	MsgYouCanSee:   true,
	MsgItemsInArea: true,
}

// Classify reports how line should be presented. Lines authored in a world
// are LineText unless they repeat one of the engine's fixed responses.
func Classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, "Location: "):
		return LineLocation
	case headings[line]:
		return LineHeading
	case refusals[line]:
		return LineRefusal
	}
	for _, p := range refusalPrefixes {
		if strings.HasPrefix(line, p) && strings.HasSuffix(line, ".") {
			return LineRefusal
		}
	}
	return LineText
}
