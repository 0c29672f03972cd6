// Package telnet serves the game over Telnet: line input with protocol
// negotiation stripped, CRLF output, and ANSI styling helpers.
package telnet

// ANSI SGR sequences used by the renderers.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red          = "\033[31m"
	Green        = "\033[32m"
	Cyan         = "\033[36m"
	BrightYellow = "\033[93m"
	BrightWhite  = "\033[97m"
)

// Colorize wraps text with the given ANSI color code and a reset suffix.
// Empty text is returned unchanged.
//
// Postcondition: Returns text wrapped with the color code and Reset.
func Colorize(color, text string) string {
	if text == "" {
		return text
	}
	return color + text + Reset
}

// StripANSI removes all ANSI SGR sequences from a string.
//
// Postcondition: Returns s with every \033[...m sequence removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j
				continue
			}
		}
		result = append(result, s[i])
	}
	return string(result)
}
