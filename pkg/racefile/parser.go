package racefile

import (
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/race-results-hub/pkg/model"
)

type Option func(*Parser)

// WithQuotedFields selects SplitQuoted if quoted is true
func WithQuotedFields(quoted bool) Option {
	return func(p *Parser) {
		if quoted {
			p.split = SplitQuoted
		}
	}
}

type Parser struct {
	split Splitter
}

func NewParser(opts ...Option) *Parser {
	ret := &Parser{split: SplitPlain}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Lines returns the classified lines of text
func (p *Parser) Lines(text string) []Line {
	return Classify(text, p.split)
}

// Parse assembles a RaceRecord from text.
// Separator lines are dropped, invalid links are kept (the renderer skips them).
func (p *Parser) Parse(text string) *model.RaceRecord {
	ret := &model.RaceRecord{
		Metadata: make(map[string]string),
		Header:   []string{},
		Rows:     [][]string{},
		Links:    []model.Link{},
	}
	for _, line := range p.Lines(text) {
		switch line.Kind {
		case LineMetadata:
			key, value := metadataEntry(line.Fields)
			ret.Metadata[key] = value
		case LineHeader:
			ret.Header = line.Fields
		case LineRow:
			ret.Rows = append(ret.Rows, line.Fields)
		case LineLink:
			ret.Links = append(ret.Links, linkEntry(line.Fields))
		case LineSeparator:
		}
	}
	return ret
}

// metadataEntry uses the first field as key. The remaining non-blank fields
// are joined with ", " so values containing commas survive the split.
func metadataEntry(fields []string) (key, value string) {
	if len(fields) == 0 {
		return "", ""
	}
	key = strings.TrimSpace(fields[0])
	rest := lo.FilterMap(fields[1:], func(f string, _ int) (string, bool) {
		f = strings.TrimSpace(f)
		return f, f != ""
	})
	return key, strings.TrimSpace(strings.Join(rest, ", "))
}

func linkEntry(fields []string) model.Link {
	ret := model.Link{}
	if len(fields) > 0 {
		ret.Label = strings.TrimSpace(fields[0])
	}
	if len(fields) > 1 {
		ret.URL = strings.TrimSpace(fields[1])
	}
	return ret
}

// Parse is a shortcut for NewParser(opts...).Parse(text)
func Parse(text string, opts ...Option) *model.RaceRecord {
	return NewParser(opts...).Parse(text)
}
