package racefile

import (
	"testing"

	"github.com/shopspring/decimal"
	"gotest.tools/v3/assert"
)

func TestParseLapTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // empty means unset
	}{
		{name: "regular", input: "1:23.456", want: "83.456"},
		{name: "surrounding space", input: " 1:22.000 ", want: "82"},
		{name: "zero minutes", input: "0:59.9", want: "59.9"},
		{name: "dnf", input: "DNF", want: ""},
		{name: "dnf lower", input: "dnf", want: ""},
		{name: "no colon", input: "83.456", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "garbage minutes", input: "x:12.0", want: ""},
		{name: "garbage seconds", input: "1:ab", want: ""},
		{name: "unit suffix", input: "1:23.456s", want: "83.456"},
		{name: "trailing text on minutes", input: "1m:05.5", want: "65.5"},
		{name: "hours part ignored", input: "1:02:03.5", want: "62"},
		{name: "leading dot seconds", input: "0:.5", want: "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLapTime(tt.input)
			v, ok := got.Get()
			if tt.want == "" {
				assert.Assert(t, !ok, "expected unset, got %v", v)
				return
			}
			assert.Assert(t, ok)
			assert.Assert(t, v.Equal(decimal.RequireFromString(tt.want)), "got %s", v)
		})
	}
}

func TestLapTimeCompare(t *testing.T) {
	fast := ParseLapTime("1:22.000")
	slow := ParseLapTime("1:23.456")
	unset := ParseLapTime("DNF")

	assert.Assert(t, FasterThan(fast, slow))
	assert.Assert(t, !FasterThan(slow, fast))
	assert.Assert(t, FasterThan(slow, unset))
	assert.Assert(t, !FasterThan(unset, slow))
	assert.Assert(t, !FasterThan(unset, unset))

	assert.Assert(t, SameTime(fast, ParseLapTime("1:22.0")))
	assert.Assert(t, !SameTime(unset, unset))
}
