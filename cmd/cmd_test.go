package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenline/sdnscreen/config"
	"github.com/screenline/sdnscreen/pkg/logging"
	"github.com/screenline/sdnscreen/pkg/reference"
	"github.com/screenline/sdnscreen/pkg/resolve"
)

func testSet() *reference.Set {
	return &reference.Set{
		Entities: []reference.Entity{
			{UID: 100, SDNType: "Individual", FirstName: "Ali", LastName: "Hassan", Remarks: "Hizballah facilitator"},
			{UID: 200, SDNType: "Entity", LastName: "ACME TRADING CO."},
		},
		Aliases: []reference.Alias{
			{EntityUID: 100, AKAUID: 1, FirstName: "Ali", LastName: "Hasan"},
		},
		Addresses: []reference.Address{
			{EntityUID: 100, AddressUID: 10, City: "Beirut", Country: "Lebanon"},
		},
		IdentityDocuments: []reference.IdentityDocument{
			{EntityUID: 100, IDUID: 20, IDType: "Passport", IDNumber: "RL0123456", IDCountry: "Lebanon"},
		},
		Programs: []reference.Program{
			{EntityUID: 100, Program: "SDGT"},
		},
	}
}

func testDeps(output config.OutputFormat) *Deps {
	cfg := config.DefaultConfig()
	cfg.Output = output
	return &Deps{
		Config: cfg,
		Logger: logging.NewNopLogger(),
		Engine: resolve.NewEngine(testSet(), resolve.WithLogger(logging.NewNopLogger())),
	}
}

func runCommand(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	if args == nil {
		// SetArgs(nil) would fall back to os.Args.
		args = []string{}
	}
	c.SetArgs(args)
	err := c.Execute()
	return buf.String(), err
}

func TestMatchCommand_Exact(t *testing.T) {
	c := NewMatchCommand(testDeps(config.OutputFormatText))
	out, err := runCommand(t, c, "Ali Hassan")
	require.NoError(t, err)
	assert.Contains(t, out, "Exact match: ALI HASSAN")
	assert.Contains(t, out, "uid 100")
}

func TestMatchCommand_FuzzyJSON(t *testing.T) {
	c := NewMatchCommand(testDeps(config.OutputFormatJSON))
	out, err := runCommand(t, c, "Ali Hassam", "--threshold", "80")
	require.NoError(t, err)

	var result struct {
		Query     string `json:"query"`
		MatchType string `json:"match_type"`
		Fuzzy     []struct {
			UID   int64 `json:"uid"`
			Score int   `json:"match_score"`
		} `json:"fuzzy_matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "fuzzy", result.MatchType)
	require.NotEmpty(t, result.Fuzzy)
	assert.Equal(t, int64(100), result.Fuzzy[0].UID)
	assert.Equal(t, 90, result.Fuzzy[0].Score)
}

func TestMatchCommand_NoMatch(t *testing.T) {
	c := NewMatchCommand(testDeps(config.OutputFormatText))
	out, err := runCommand(t, c, "Unrelated Person")
	require.NoError(t, err)
	assert.Contains(t, out, "No match")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intel.csv")
	csv := "full_name,country\nAli Hassan,Lebanon\nNobody Known,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	c := NewBatchCommand(testDeps(config.OutputFormatJSON))
	out, err := runCommand(t, c, path, "--name-column", "full_name", "--location-column", "country")
	require.NoError(t, err)

	var verdicts []resolve.Verdict
	require.NoError(t, json.Unmarshal([]byte(out), &verdicts))
	require.Len(t, verdicts, 2)

	assert.Equal(t, resolve.MatchExact, verdicts[0].MatchType)
	require.NotNil(t, verdicts[0].UID)
	assert.Equal(t, int64(100), *verdicts[0].UID)
	require.NotNil(t, verdicts[0].LocationMatches)
	assert.Equal(t, 1, *verdicts[0].LocationMatches)

	assert.Equal(t, resolve.MatchNone, verdicts[1].MatchType)
	assert.Equal(t, resolve.ConfidenceNewEntity, verdicts[1].Confidence)
}

func TestBatchCommand_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intel.csv")
	require.NoError(t, os.WriteFile(path, []byte("other\nx\n"), 0o600))

	c := NewBatchCommand(testDeps(config.OutputFormatText))
	_, err := runCommand(t, c, path, "--name-column", "full_name")
	require.Error(t, err)
}

func TestProfileCommand(t *testing.T) {
	c := NewProfileCommand(testDeps(config.OutputFormatText))
	out, err := runCommand(t, c, "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Entity 100 (Individual)")
	assert.Contains(t, out, "Ali Hassan")
	assert.Contains(t, out, "SDGT")
	assert.Contains(t, out, "Beirut")
}

func TestProfileCommand_UnknownUID(t *testing.T) {
	c := NewProfileCommand(testDeps(config.OutputFormatText))
	_, err := runCommand(t, c, "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entity")
}

func TestProfileCommand_BadUID(t *testing.T) {
	c := NewProfileCommand(testDeps(config.OutputFormatText))
	_, err := runCommand(t, c, "not-a-uid")
	require.Error(t, err)
}

func TestScreenCommand_ByProgram(t *testing.T) {
	c := NewScreenCommand(testDeps(config.OutputFormatJSON))
	out, err := runCommand(t, c, "--program", "SDGT")
	require.NoError(t, err)

	var result screenResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, int64(100), result.Entities[0].UID)
}

func TestScreenCommand_NoCriteria(t *testing.T) {
	c := NewScreenCommand(testDeps(config.OutputFormatText))
	_, err := runCommand(t, c)
	require.Error(t, err)
}

func TestDefaultDeps_WiresObservability(t *testing.T) {
	deps := DefaultDeps(config.DefaultConfig())
	assert.NotNil(t, deps.Metrics)
	assert.NotNil(t, deps.Tracer)
	assert.NotNil(t, deps.Logger)
	assert.NotNil(t, deps.LoadSet)
}

func TestIDsCommand_ByNumber(t *testing.T) {
	c := NewIDsCommand(testDeps(config.OutputFormatJSON))
	out, err := runCommand(t, c, "--number", "rl0123")
	require.NoError(t, err)

	var result idsResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, int64(100), result.Documents[0].EntityUID)
	assert.Equal(t, "RL0123456", result.Documents[0].IDNumber)
}

func TestIDsCommand_ByType(t *testing.T) {
	c := NewIDsCommand(testDeps(config.OutputFormatText))
	out, err := runCommand(t, c, "--type", "passport")
	require.NoError(t, err)
	assert.Contains(t, out, "1 matching documents")
	assert.Contains(t, out, "RL0123456")
}

func TestIDsCommand_NoCriteria(t *testing.T) {
	c := NewIDsCommand(testDeps(config.OutputFormatText))
	_, err := runCommand(t, c)
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short ascii", "Ali Hassan", 30, "Ali Hassan"},
		{"long ascii", "A Very Long Organization Name Indeed", 20, "A Very Long Organ..."},
		{"multibyte intact", "Þórður Guðjónsson", 30, "Þórður Guðjónsson"},
		{"multibyte cut on rune boundary", "Þórður Þórður Þórður Þórður", 10, "Þórður ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
