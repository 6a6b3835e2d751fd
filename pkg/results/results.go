// Package results turns a parsed race file into a presentation model:
// metadata panel, links panel and the highlighted results table.
// All front ends (web, terminal, check) render from this model.
package results

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/racefile"
)

const (
	NotFound = -1

	ClassPodium1 = "podium-1"
	ClassPodium2 = "podium-2"
	ClassPodium3 = "podium-3"
	ClassDNF     = "dnf-row"

	MetaPlaceholder  = "-"
	FastestLapMarker = "⭐"
	FastestLapTitle  = "Fastest Lap"
)

var podiumClasses = []string{ClassPodium1, ClassPodium2, ClassPodium3}

type MetaRow struct {
	Key   string
	Value string
}

type Cell struct {
	Text       string
	FastestLap bool
}

// Display is the cell text as shown, including the fastest lap marker
func (c Cell) Display() string {
	if c.FastestLap {
		return c.Text + " " + FastestLapMarker
	}
	return c.Text
}

type Row struct {
	Cells   []Cell
	Classes []string
	Hidden  bool
}

func (r Row) Class() string {
	return strings.Join(r.Classes, " ")
}

func (r Row) HasClass(class string) bool {
	return slices.Contains(r.Classes, class)
}

func (r Row) IsDNF() bool {
	return r.HasClass(ClassDNF)
}

// Podium returns 1..3 for podium rows, 0 otherwise
func (r Row) Podium() int {
	for i, c := range podiumClasses {
		if r.HasClass(c) {
			return i + 1
		}
	}
	return 0
}

// Text is the rendered text of the row (cell texts concatenated).
// The driver filter matches against this value.
func (r Row) Text() string {
	var sb strings.Builder
	for _, c := range r.Cells {
		sb.WriteString(c.Display())
	}
	return sb.String()
}

type Detail struct {
	Metadata   []MetaRow
	Links      []model.Link // valid links only
	Header     []string
	Rows       []Row
	BestLapIdx int
	RacePosIdx int
	FastestLap racefile.LapTime
}

// ShowLinks is false if there is no valid link. The panel is hidden then.
func (d *Detail) ShowLinks() bool {
	return len(d.Links) > 0
}

func (d *Detail) Meta(key string) string {
	for _, m := range d.Metadata {
		if m.Key == key {
			return m.Value
		}
	}
	return MetaPlaceholder
}

// Build creates the presentation model for rec
func Build(rec *model.RaceRecord) *Detail {
	ret := &Detail{
		Metadata:   metadataRows(rec.Metadata),
		Links:      lo.Filter(rec.Links, func(l model.Link, _ int) bool { return l.Valid() }),
		Header:     rec.Header,
		BestLapIdx: slices.Index(rec.Header, model.ColBestLap),
		RacePosIdx: slices.Index(rec.Header, model.ColRacePosition),
	}
	ret.FastestLap = fastestLap(rec.Rows, ret.BestLapIdx)
	ret.Rows = make([]Row, 0, len(rec.Rows))
	for idx, cells := range rec.Rows {
		ret.Rows = append(ret.Rows, ret.buildRow(idx, cells))
	}
	return ret
}

func metadataRows(meta map[string]string) []MetaRow {
	return lo.Map(model.MetadataKeys, func(key string, _ int) MetaRow {
		val, ok := meta[key]
		if !ok || val == "" {
			val = MetaPlaceholder
		}
		return MetaRow{Key: key, Value: val}
	})
}

func fastestLap(rows [][]string, bestLapIdx int) racefile.LapTime {
	var ret racefile.LapTime
	if bestLapIdx == NotFound {
		return ret
	}
	for _, cells := range rows {
		if bestLapIdx >= len(cells) {
			continue
		}
		if t := racefile.ParseLapTime(cells[bestLapIdx]); racefile.FasterThan(t, ret) {
			ret = t
		}
	}
	return ret
}

func (d *Detail) buildRow(idx int, cells []string) Row {
	row := Row{Cells: make([]Cell, len(cells)), Classes: []string{}}
	for i, text := range cells {
		row.Cells[i] = Cell{Text: text}
		if i == d.BestLapIdx {
			row.Cells[i].FastestLap = racefile.SameTime(
				racefile.ParseLapTime(text), d.FastestLap)
		}
	}
	if idx < len(podiumClasses) {
		row.Classes = append(row.Classes, podiumClasses[idx])
	}
	if d.RacePosIdx != NotFound && d.RacePosIdx < len(cells) &&
		strings.EqualFold(strings.TrimSpace(cells[d.RacePosIdx]), "DNF") {
		row.Classes = lo.Without(row.Classes, podiumClasses...)
		row.Classes = append(row.Classes, ClassDNF)
	}
	return row
}

// FilterRows hides every row whose text does not contain term
// (case-insensitive). Rows are never removed. Returns the visible count.
func (d *Detail) FilterRows(term string) int {
	needle := strings.ToLower(term)
	visible := 0
	for i := range d.Rows {
		d.Rows[i].Hidden = !strings.Contains(strings.ToLower(d.Rows[i].Text()), needle)
		if !d.Rows[i].Hidden {
			visible++
		}
	}
	return visible
}
