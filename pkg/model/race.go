package model

import (
	"fmt"
	"strings"
)

//nolint:tagliatelle // manifest compatibility
type RaceDescriptor struct {
	Date     string `json:"date"`
	Series   string `json:"series"`
	RaceNum  string `json:"race_num"`
	Map      string `json:"map"`
	Car      string `json:"car"`
	Division string `json:"division"`
	Filename string `json:"filename"`
}

// Slug returns the filename without the .csv extension (case-insensitive).
// This is the value used in the race query parameter.
func (r RaceDescriptor) Slug() string {
	return StripExt(r.Filename)
}

// Title is the single line representation used in race lists
func (r RaceDescriptor) Title() string {
	return fmt.Sprintf("%s - %s - #%s - %s - %s - Div %s",
		r.Date, r.Series, r.RaceNum, r.Map, r.Car, r.Division)
}

// Fields returns the string form of every field, used for searching
func (r RaceDescriptor) Fields() []string {
	return []string{r.Date, r.Series, r.RaceNum, r.Map, r.Car, r.Division, r.Filename}
}

// RaceFileExt is the extension of race files
const RaceFileExt = ".csv"

func StripExt(filename string) string {
	if len(filename) >= len(RaceFileExt) &&
		strings.EqualFold(filename[len(filename)-len(RaceFileExt):], RaceFileExt) {
		return filename[:len(filename)-len(RaceFileExt)]
	}
	return filename
}

const (
	MetaDate     = "Date"
	MetaSeries   = "Race Series"
	MetaRaceNum  = "Race #"
	MetaMap      = "Map"
	MetaCar      = "Car"
	MetaDivision = "Division"
)

// MetadataKeys is the fixed display order of the metadata panel
var MetadataKeys = []string{MetaDate, MetaSeries, MetaRaceNum, MetaMap, MetaCar, MetaDivision}

const (
	ColBestLap      = "Best Lap"
	ColRacePosition = "Race Position"
)

type Link struct {
	Label string
	URL   string
}

func (l Link) Valid() bool {
	return strings.TrimSpace(l.Label) != "" && strings.TrimSpace(l.URL) != ""
}

// RaceRecord is the parsed content of a single race file.
// It is rebuilt on every detail view and never cached.
type RaceRecord struct {
	Metadata map[string]string
	Header   []string
	Rows     [][]string
	Links    []Link
}
