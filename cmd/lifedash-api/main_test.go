package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	config := `server:
  api_token: s3cret
data:
  dir: ` + dir + `
log:
  level: error
insight:
  timezone: UTC
  reset_start: "2025-03-01"
  weight_checkpoints:
    Mar: 235
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	signals := "date,metric,value,notes\n2025-03-13,weed,1,\n2025-03-14,weed,1,\n2025-03-14,weight,238.5,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "signals.csv"), []byte(signals), 0o644))
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCommands(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeTestConfig(t)

	out := run(t, "--config", path, "config")
	assert.Contains(t, out, "<redacted>")
	assert.NotContains(t, out, "s3cret")
	assert.Contains(t, out, "2025-03-01")

	out = run(t, "--config", path, "insight", "--date", "2025-03-14")
	assert.Contains(t, out, "Day 14 of the reset")
	assert.Contains(t, out, "Weed-free: 2 days (personal best!)")

	out = run(t, "--config", path, "insight", "--date", "2025-03-14", "--json")
	var report struct {
		AsOf     string `json:"as_of"`
		ResetDay int    `json:"reset_day"`
		Weight   struct {
			Current    float64 `json:"current"`
			MonthLabel string  `json:"month_label"`
		} `json:"weight"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "2025-03-14", report.AsOf)
	assert.Equal(t, 14, report.ResetDay)
	assert.Equal(t, 238.5, report.Weight.Current)
	assert.Equal(t, "Mar", report.Weight.MonthLabel)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
