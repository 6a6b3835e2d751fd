package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaceDescriptor_Slug(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "lower ext", filename: "2024-01-05_gt3.csv", want: "2024-01-05_gt3"},
		{name: "upper ext", filename: "2024-01-05_gt3.CSV", want: "2024-01-05_gt3"},
		{name: "no ext", filename: "2024-01-05_gt3", want: "2024-01-05_gt3"},
		{name: "other ext", filename: "race.txt", want: "race.txt"},
		{name: "only ext", filename: ".csv", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RaceDescriptor{Filename: tt.filename}.Slug())
		})
	}
}

func TestRaceDescriptor_Title(t *testing.T) {
	r := RaceDescriptor{
		Date: "2024-01-05", Series: "GT Cup", RaceNum: "3", Map: "Spa",
		Car: "Porsche", Division: "2", Filename: "x.csv",
	}
	assert.Equal(t, "2024-01-05 - GT Cup - #3 - Spa - Porsche - Div 2", r.Title())
}

func TestLink_Valid(t *testing.T) {
	assert.True(t, Link{Label: "Replay", URL: "https://example.com"}.Valid())
	assert.False(t, Link{Label: "Replay"}.Valid())
	assert.False(t, Link{Label: " ", URL: "https://example.com"}.Valid())
}
