package racefile

import (
	"encoding/csv"
	"strings"
)

// Splitter splits a single trimmed line into its fields
type Splitter func(line string) []string

// SplitPlain splits on every comma. Commas inside values are not supported.
func SplitPlain(line string) []string {
	return strings.Split(line, ",")
}

// SplitQuoted supports double quoted fields ("Spa, Belgium").
// Lines which cannot be read as a record fall back to SplitPlain.
func SplitQuoted(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return SplitPlain(line)
	}
	return fields
}
