package basedata

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/source"
)

const SampleManifest = `[
  {"date":"2024-03-02","series":"GT Sprint","race_num":1,"map":"Spa","car":"Porsche 911 GT3 R","division":1,"filename":"2024-03-02_gt_sprint_r1.csv"},
  {"date":"2024-03-09","series":"GT Sprint","race_num":2,"map":"Monza","car":"Ferrari 296 GT3","division":"1","filename":"2024-03-09_gt_sprint_r2.csv"},
  {"date":"2024-04-13","series":"Formula Vee","race_num":"7","map":"Laguna Seca","car":"Formula Vee","division":4,"filename":"2024-04-13_fvee_r7.CSV"}
]`

// SampleRace has 6 metadata lines, a header, 3 rows, a separator and 2 links.
// Blank lines are sprinkled in, they must not count.
// The third row did not finish.
const SampleRace = `Date,2024-03-02

Race Series,GT Sprint
Race #,1
Map,Spa,Francorchamps,
Car,Porsche 911 GT3 R
Division,1
Race Position,Driver,Car #,Laps,Best Lap,Total Time
1,Alice Example,11,20,1:23.456,35:01.123
2,Bob Sample,22,20,1:22.000,35:04.876
DNF,Carol Test,33,20,DNF,DNF
,,,,,
Replay,https://example.com/replay/1
Broadcast,https://example.com/broadcast/1
`

// SampleRaceDNFWinner has a DNF in the first row
const SampleRaceDNFWinner = `Date,2024-03-09
Race Series,GT Sprint
Race #,2
Map,Monza
Car,Ferrari 296 GT3
Division,1
Race Position,Driver,Best Lap
DNF,Dave Crash,1:40.000
2,Eve Steady,1:41.500
3,Frank Slow,1:42.100
4,Grace Last,1:41.500
`

// SampleRaceBrokenLinks has link rows without urls only
const SampleRaceBrokenLinks = `Date,2024-04-13
Race Series,Formula Vee
Race #,7
Map,Laguna Seca
Car,Formula Vee
Division,4
Race Position,Driver,Best Lap
1,Heidi Quick,1:31.100
,,
Stream only label
,,
Onboard,
`

func SampleRaces() []model.RaceDescriptor {
	return []model.RaceDescriptor{
		{
			Date: "2024-03-02", Series: "GT Sprint", RaceNum: "1", Map: "Spa",
			Car: "Porsche 911 GT3 R", Division: "1", Filename: "2024-03-02_gt_sprint_r1.csv",
		},
		{
			Date: "2024-03-09", Series: "GT Sprint", RaceNum: "2", Map: "Monza",
			Car: "Ferrari 296 GT3", Division: "1", Filename: "2024-03-09_gt_sprint_r2.csv",
		},
		{
			Date: "2024-04-13", Series: "Formula Vee", RaceNum: "7", Map: "Laguna Seca",
			Car: "Formula Vee", Division: "4", Filename: "2024-04-13_fvee_r7.CSV",
		},
	}
}

// SampleSource provides the sample manifest and race files from memory.
// The race file for the third manifest entry is missing by intention.
// An extra file "unlisted.csv" exists which is not part of the manifest.
//
//nolint:thelper // setup
func SampleSource(t *testing.T) *source.DirSource {
	mem := afero.NewMemMapFs()
	files := map[string]string{
		"/results/manifest.json":               SampleManifest,
		"/results/2024-03-02_gt_sprint_r1.csv": SampleRace,
		"/results/2024-03-09_gt_sprint_r2.csv": SampleRaceDNFWinner,
		"/results/unlisted.csv":                SampleRaceBrokenLinks,
	}
	for name, content := range files {
		if err := afero.WriteFile(mem, name, []byte(content), 0o644); err != nil {
			t.Fatalf("could not write %s: %v", name, err)
		}
	}
	return source.NewDirSource(mem, "/results")
}
