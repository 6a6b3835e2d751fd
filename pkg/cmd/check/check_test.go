package check

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/race-results-hub/pkg/config"
	"github.com/mpapenbr/race-results-hub/pkg/route"
	"github.com/mpapenbr/race-results-hub/testsupport/basedata"
)

func sampleDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		config.ManifestName:           basedata.SampleManifest,
		"2024-03-02_gt_sprint_r1.csv": basedata.SampleRace,
		"2024-03-09_gt_sprint_r2.csv": basedata.SampleRaceDNFWinner,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	old := config.Source
	config.Source = dir
	t.Cleanup(func() { config.Source = old })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCheckCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckManifest(t *testing.T) {
	sampleDir(t)

	out, err := run(t, "manifest")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-02_gt_sprint_r1")
	assert.Contains(t, out, "2024-04-13_fvee_r7")
	assert.Contains(t, out, "Laguna Seca")

	out, err = run(t, "manifest", "--search", "porsche")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-02_gt_sprint_r1")
	assert.NotContains(t, out, "2024-03-09_gt_sprint_r2")
	config.Search = ""
}

func TestCheckRace(t *testing.T) {
	sampleDir(t)

	out, err := run(t, "race", "2024-03-02_gt_sprint_r1")
	require.NoError(t, err)
	assert.Contains(t, out, "GT Sprint #1")
	assert.Contains(t, out, "Spa, Francorchamps")
	assert.Contains(t, out, "https://example.com/replay/1")
	assert.Contains(t, out, "1:22.000 ⭐")
	assert.Contains(t, out, "podium-1")
	assert.Contains(t, out, "dnf-row")
	assert.NotContains(t, out, "podium-3")

	out, err = run(t, "race", "2024-03-02_gt_sprint_r1", "--driver", "carol")
	require.NoError(t, err)
	assert.NotContains(t, out, "Alice Example")
	assert.Contains(t, out, "Carol Test")
	driver = ""

	_, err = run(t, "race", "2024-04-13_fvee_r7")
	assert.ErrorIs(t, err, route.ErrFallbackToList)
}
