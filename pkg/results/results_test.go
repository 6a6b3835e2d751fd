//nolint:funlen // ok for tests
package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/racefile"
	"github.com/mpapenbr/race-results-hub/testsupport/basedata"
)

func TestBuild_sample(t *testing.T) {
	d := Build(racefile.Parse(basedata.SampleRace))

	assert.Equal(t, []MetaRow{
		{Key: "Date", Value: "2024-03-02"},
		{Key: "Race Series", Value: "GT Sprint"},
		{Key: "Race #", Value: "1"},
		{Key: "Map", Value: "Spa, Francorchamps"},
		{Key: "Car", Value: "Porsche 911 GT3 R"},
		{Key: "Division", Value: "1"},
	}, d.Metadata)
	assert.True(t, d.ShowLinks())
	assert.Len(t, d.Links, 2)
	assert.Equal(t, 4, d.BestLapIdx)
	assert.Equal(t, 0, d.RacePosIdx)

	require.Len(t, d.Rows, 3)
	assert.False(t, d.Rows[0].Cells[4].FastestLap)
	assert.True(t, d.Rows[1].Cells[4].FastestLap, "1:22.000 is the fastest lap")
	assert.Equal(t, "1:22.000 "+FastestLapMarker, d.Rows[1].Cells[4].Display())
	assert.False(t, d.Rows[2].Cells[4].FastestLap, "DNF never gets the marker")

	assert.Equal(t, 1, d.Rows[0].Podium())
	assert.Equal(t, 2, d.Rows[1].Podium())
	assert.Equal(t, 0, d.Rows[2].Podium(), "DNF in third place gets no podium")
	assert.Equal(t, ClassDNF, d.Rows[2].Class())
}

func TestBuild_dnfOverridesPodium(t *testing.T) {
	d := Build(racefile.Parse(basedata.SampleRaceDNFWinner))
	require.Len(t, d.Rows, 4)

	first := d.Rows[0]
	assert.True(t, first.IsDNF())
	assert.Equal(t, 0, first.Podium())
	assert.Equal(t, ClassDNF, first.Class())

	assert.Equal(t, ClassPodium2, d.Rows[1].Class())
	assert.Equal(t, ClassPodium3, d.Rows[2].Class())
	assert.Empty(t, d.Rows[3].Class())

	// the DNF row still has the fastest lap, the marker is independent of position
	assert.True(t, first.Cells[2].FastestLap)
	// equal but slower times get no marker
	assert.False(t, d.Rows[1].Cells[2].FastestLap)
	assert.False(t, d.Rows[3].Cells[2].FastestLap)
}

func TestBuild_ties(t *testing.T) {
	rec := &model.RaceRecord{
		Header: []string{"Driver", "Best Lap"},
		Rows: [][]string{
			{"A", "1:30.5"},
			{"B", "1:30.500"},
			{"C", "1:31.0"},
		},
	}
	d := Build(rec)
	assert.True(t, d.Rows[0].Cells[1].FastestLap)
	assert.True(t, d.Rows[1].Cells[1].FastestLap)
	assert.False(t, d.Rows[2].Cells[1].FastestLap)
}

func TestBuild_missingColumnsAndMetadata(t *testing.T) {
	rec := &model.RaceRecord{
		Metadata: map[string]string{"Map": "Spa", "Weather": "rain"},
		Header:   []string{"Pos", "Driver", "Lap"},
		Rows: [][]string{
			{"DNF", "A", "1:30.5"},
			{"2", "B"},
		},
	}
	d := Build(rec)
	assert.Equal(t, NotFound, d.BestLapIdx)
	assert.Equal(t, NotFound, d.RacePosIdx)
	assert.Equal(t, "Spa", d.Meta(model.MetaMap))
	assert.Equal(t, MetaPlaceholder, d.Meta(model.MetaDate))
	assert.Len(t, d.Metadata, len(model.MetadataKeys))
	assert.False(t, d.ShowLinks())

	// without a race position column there is no DNF detection
	assert.Equal(t, ClassPodium1, d.Rows[0].Class())
	for _, r := range d.Rows {
		for _, c := range r.Cells {
			assert.False(t, c.FastestLap)
		}
	}
}

func TestBuild_allLinksInvalid(t *testing.T) {
	d := Build(racefile.Parse(basedata.SampleRaceBrokenLinks))
	assert.False(t, d.ShowLinks())
	assert.Empty(t, d.Links)
}

func TestDetail_FilterRows(t *testing.T) {
	d := Build(racefile.Parse(basedata.SampleRace))
	tests := []struct {
		name        string
		term        string
		wantVisible int
		wantHidden  []bool
	}{
		{name: "empty", term: "", wantVisible: 3, wantHidden: []bool{false, false, false}},
		{name: "driver", term: "bob", wantVisible: 1, wantHidden: []bool{true, false, true}},
		{name: "case", term: "CAROL", wantVisible: 1, wantHidden: []bool{true, true, false}},
		{name: "marker", term: FastestLapMarker, wantVisible: 1, wantHidden: []bool{true, false, true}},
		{name: "none", term: "zzz", wantVisible: 0, wantHidden: []bool{true, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.FilterRows(tt.term)
			assert.Equal(t, tt.wantVisible, got)
			assert.Len(t, d.Rows, 3, "rows are never removed")
			for i, h := range tt.wantHidden {
				assert.Equal(t, h, d.Rows[i].Hidden, "row %d", i)
			}
		})
	}
}
