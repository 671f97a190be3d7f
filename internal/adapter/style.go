package adapter

import (
	"bytes"
	"strings"
)

// DetectStyle guesses the quote character, indentation step and line ending
// used by source, falling back to DefaultPrintOptions for whatever it cannot
// tell.
func DetectStyle(source []byte) PrintOptions {
	opts := DefaultPrintOptions()

	if single, double := countQuotes(source); single > double {
		opts.Quote = '\''
	}

	if indent := detectIndent(string(source)); indent != "" {
		opts.Indent = indent
	}

	opts.Newline = detectNewline(source)

	return opts
}

// detectNewline returns "\r\n" when most lines of source end that way.
func detectNewline(source []byte) string {
	lines := bytes.Count(source, []byte("\n"))
	crlf := bytes.Count(source, []byte("\r\n"))

	if crlf > lines-crlf {
		return "\r\n"
	}

	return "\n"
}

// countQuotes counts string literals opened with each quote character,
// skipping comments and escaped characters.
func countQuotes(source []byte) (single, double int) {
	var open byte

	for i := 0; i < len(source); i++ {
		c := source[i]

		switch {
		case open != 0:
			if c == '\\' {
				i++
			} else if c == open || c == '\n' {
				open = 0
			}
		case c == '/' && i+1 < len(source) && source[i+1] == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(source) && source[i+1] == '*':
			end := strings.Index(string(source[i+2:]), "*/")
			if end < 0 {
				return single, double
			}

			i += end + 3
		case c == '\'':
			single++
			open = c
		case c == '"':
			double++
			open = c
		}
	}

	return single, double
}

// detectIndent returns a tab when most indented lines use tabs, otherwise
// the smallest run of leading spaces.
func detectIndent(source string) string {
	tabs, spaced, smallest := 0, 0, 0

	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lead := leadingSpace(line)

		switch {
		case lead == "":
		case lead[0] == '\t':
			tabs++
		default:
			n := len(lead) - len(strings.TrimLeft(lead, " "))
			spaced++

			if smallest == 0 || n < smallest {
				smallest = n
			}
		}
	}

	if tabs > spaced {
		return "\t"
	}

	if smallest > 0 && smallest <= 8 {
		return strings.Repeat(" ", smallest)
	}

	return ""
}
