package display

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/dtsgen/declgen"
	"github.com/teranos/dtsgen/errors"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func sampleReport() *declgen.Report {
	return &declgen.Report{
		OutputDir: "types",
		Files: []declgen.File{
			{Class: "Ember.Route", Name: "Route.d.ts", Members: 12},
			{Class: "Ns.Widget", Name: "Widget.d.ts", Members: 1},
		},
		IndexFile: "types/index.d.ts",
	}
}

func TestCLIReporterGenerated(t *testing.T) {
	var buf bytes.Buffer
	NewCLIReporter(&buf, 0).Generated(sampleReport())
	out := buf.String()
	assert.Contains(t, out, "Generated 2 declaration files in types")
	assert.NotContains(t, out, "Route.d.ts")

	buf.Reset()
	NewCLIReporter(&buf, 1).Generated(sampleReport())
	out = buf.String()
	assert.Contains(t, out, "Route.d.ts (12 members)")
	assert.Contains(t, out, "Widget.d.ts (1 members)")
	assert.Contains(t, out, "index.d.ts")
}

func TestCLIReporterChecked(t *testing.T) {
	var buf bytes.Buffer
	r := NewCLIReporter(&buf, 0)

	r.Checked(&declgen.CheckResult{UpToDate: true})
	assert.Contains(t, buf.String(), "up to date")

	buf.Reset()
	r.Checked(&declgen.CheckResult{Missing: []string{"Route.d.ts"}, Stale: []string{"Widget.d.ts"}, Extra: []string{"Old.d.ts"}})
	out := buf.String()
	assert.Contains(t, out, "out of date")
	assert.Contains(t, out, "missing: Route.d.ts")
	assert.Contains(t, out, "stale: Widget.d.ts")
	assert.Contains(t, out, "extra: Old.d.ts")
}

func TestCLIReporterErrorAndInfo(t *testing.T) {
	var buf bytes.Buffer
	r := NewCLIReporter(&buf, 0)
	r.Error("load", errors.New("unexpected end of JSON input"))
	r.Info("Watching docs/data.json")

	out := buf.String()
	assert.Contains(t, out, "Error in load: unexpected end of JSON input")
	assert.Contains(t, out, "Watching docs/data.json")
}

func decodeEvents(t *testing.T, out string) []Event {
	t.Helper()
	var events []Event
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var e Event
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		events = append(events, e)
	}
	return events
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true, 0)

	r.Generated(sampleReport())
	r.Checked(&declgen.CheckResult{UpToDate: true})
	r.Error("generate", errors.WithHint(errors.New("boom"), "try again"))
	r.Info("hello")

	events := decodeEvents(t, buf.String())
	require.Len(t, events, 4)

	assert.Equal(t, "generated", events[0].Type)
	assert.Equal(t, "types", events[0].Data["output_dir"])
	assert.Len(t, events[0].Data["files"], 2)

	assert.Equal(t, "check", events[1].Type)
	assert.Equal(t, true, events[1].Data["up_to_date"])
	assert.Equal(t, []interface{}{}, events[1].Data["missing"])

	assert.Equal(t, "error", events[2].Type)
	assert.Equal(t, "boom", events[2].Data["error"])
	assert.Equal(t, []interface{}{"try again"}, events[2].Data["hints"])

	assert.Equal(t, "info", events[3].Type)
	assert.Equal(t, "hello", events[3].Data["message"])
}

func TestNewReporter(t *testing.T) {
	assert.IsType(t, &CLIReporter{}, NewReporter(&bytes.Buffer{}, false, 0))
	assert.IsType(t, &JSONReporter{}, NewReporter(&bytes.Buffer{}, true, 0))
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]string{"version": "dev"}))
	assert.Equal(t, "{\n  \"version\": \"dev\"\n}\n", buf.String())
}

func TestShouldOutputJSON(t *testing.T) {
	assert.False(t, ShouldOutputJSON(nil))

	root := &cobra.Command{Use: "dtsgen"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "version", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(child)

	assert.False(t, ShouldOutputJSON(child))
	require.NoError(t, root.PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(child))
}
