// Package racefile parses the delimited text files holding a single race.
//
// A race file consists of (blank lines ignored)
//
//	6 metadata lines    key,value[,value...]
//	1 header line       column names
//	N table rows        cells aligned to the header
//	1 separator line    empty or commas only
//	M link rows         label,url
//
// Parsing is done by a small state machine which tags every line with its
// kind. Malformed input never fails, missing sections are simply empty.
package racefile

import (
	"strings"
)

type LineKind int

const (
	LineMetadata LineKind = iota
	LineHeader
	LineRow
	LineSeparator
	LineLink
)

func (k LineKind) String() string {
	switch k {
	case LineMetadata:
		return "metadata"
	case LineHeader:
		return "header"
	case LineRow:
		return "row"
	case LineSeparator:
		return "separator"
	case LineLink:
		return "link"
	default:
		return "unknown"
	}
}

// Line is a classified non-blank line of a race file
type Line struct {
	Kind   LineKind
	Num    int // 1-based line number in the original text
	Text   string
	Fields []string
}

type state int

const (
	stateMetadata state = iota
	stateHeader
	stateTable
	stateLinks
)

// MetadataLines is the number of leading non-blank lines holding metadata
const MetadataLines = 6

// IsSeparator reports whether line consists of commas and whitespace only
func IsSeparator(line string) bool {
	return strings.TrimSpace(strings.ReplaceAll(line, ",", "")) == ""
}

type machine struct {
	state    state
	metaSeen int
	split    Splitter
}

func (m *machine) next(num int, text string) Line {
	line := Line{Num: num, Text: text}
	switch m.state {
	case stateMetadata:
		line.Kind = LineMetadata
		m.metaSeen++
		if m.metaSeen == MetadataLines {
			m.state = stateHeader
		}
	case stateHeader:
		line.Kind = LineHeader
		m.state = stateTable
	case stateTable:
		if IsSeparator(text) {
			line.Kind = LineSeparator
			m.state = stateLinks
		} else {
			line.Kind = LineRow
		}
	case stateLinks:
		if IsSeparator(text) {
			line.Kind = LineSeparator
		} else {
			line.Kind = LineLink
		}
	}
	if line.Kind != LineSeparator {
		line.Fields = m.split(text)
	}
	return line
}

// Classify splits text into lines, trims them, drops blank ones and
// tags each remaining line with its kind.
func Classify(text string, split Splitter) []Line {
	if split == nil {
		split = SplitPlain
	}
	m := &machine{split: split}
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	ret := make([]Line, 0, len(raw))
	for i, l := range raw {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		ret = append(ret, m.next(i+1, trimmed))
	}
	return ret
}
