package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/dtsgen/display"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

const widgetJSON = `{
  "project": {"name": "Widgets", "version": "1.4.0"},
  "classes": {
    "Ns.Widget": {"name": "Ns.Widget", "file": "lib/widget.js"},
    "Container": {"name": "Container"}
  },
  "classitems": [
    {"class": "Ns.Widget", "name": "spin", "itemtype": "method", "line": 12,
     "params": [{"name": "speed", "type": "Number"}], "return": {"type": "Boolean"}},
    {"class": "Container", "name": "owner", "itemtype": "property", "line": 3, "type": "Ember.Object"}
  ]
}`

// workspace isolates HOME and the working directory and writes data.json.
func workspace(t *testing.T) (dir, input string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir = t.TempDir()
	chdir(t, dir)
	input = filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(input, []byte(widgetJSON), 0644))
	return dir, input
}

func run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = Execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestUsageError(t *testing.T) {
	workspace(t)

	for _, args := range [][]string{nil, {"data.json"}} {
		code, stdout, stderr := run(args...)
		assert.Equal(t, 1, code)
		assert.Equal(t, usageLine+"\n", stdout)
		assert.Empty(t, stderr)
	}
}

func TestGenerate(t *testing.T) {
	dir, input := workspace(t)
	outdir := filepath.Join(dir, "types")

	code, stdout, stderr := run(input, outdir)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Generated 2 declaration files")

	widget := readFile(t, filepath.Join(outdir, "Widget.d.ts"))
	assert.Contains(t, widget, "declare namespace Ns {")
	assert.Contains(t, widget, "class Widget {")
	assert.Contains(t, widget, "spin(speed: number): boolean;")

	container := readFile(t, filepath.Join(outdir, "Container.d.ts"))
	assert.Contains(t, container, "declare namespace Ember {")
	assert.Contains(t, container, "owner: Ember.Object;")
	assert.NoFileExists(t, filepath.Join(outdir, "index.d.ts"))
}

func TestGenerateFlags(t *testing.T) {
	dir, input := workspace(t)
	outdir := filepath.Join(dir, "types")

	code, _, stderr := run(input, outdir, "--namespace", "Glimmer", "--fallback", "conservative", "--index")
	require.Equal(t, 0, code, stderr)

	container := readFile(t, filepath.Join(outdir, "Container.d.ts"))
	assert.Contains(t, container, "declare namespace Glimmer {")
	assert.Contains(t, container, "owner: any;")
	assert.Contains(t, readFile(t, filepath.Join(outdir, "index.d.ts")), `/// <reference path="./Widget.d.ts" />`)
}

func TestGenerateVerboseListsFiles(t *testing.T) {
	dir, input := workspace(t)

	code, stdout, _ := run(input, filepath.Join(dir, "types"), "-v")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Widget.d.ts (1 members)")
}

func TestGenerateJSONOutput(t *testing.T) {
	dir, input := workspace(t)

	code, stdout, _ := run(input, filepath.Join(dir, "types"), "--json")
	require.Equal(t, 0, code)

	var event display.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &event))
	assert.Equal(t, "generated", event.Type)
	assert.Len(t, event.Data["files"], 2)
}

func TestGenerateProjectConfig(t *testing.T) {
	dir, input := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dtsgen.toml"), []byte("[output]\nindex = true\nnewline = \"crlf\"\n"), 0644))
	outdir := filepath.Join(dir, "types")

	code, _, stderr := run(input, outdir)
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(outdir, "index.d.ts"))
	assert.Contains(t, readFile(t, filepath.Join(outdir, "Widget.d.ts")), "\r\n")
}

func TestGenerateErrors(t *testing.T) {
	dir, input := workspace(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing input", []string{filepath.Join(dir, "missing.json"), "types"}, "missing.json"},
		{"invalid fallback", []string{input, "types", "--fallback", "strict"}, "types.fallback"},
		{"missing config file", []string{input, "types", "--config", "nope.toml"}, "nope.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestCheck(t *testing.T) {
	dir, input := workspace(t)
	outdir := filepath.Join(dir, "types")

	code, stdout, _ := run("check", input, outdir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "missing: Widget.d.ts")

	code, _, _ = run(input, outdir)
	require.Equal(t, 0, code)

	code, stdout, stderr := run("check", input, outdir)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "up to date")

	require.NoError(t, os.WriteFile(filepath.Join(outdir, "Widget.d.ts"), []byte("stale\n"), 0644))
	code, stdout, stderr = run("check", input, outdir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "stale: Widget.d.ts")
	assert.Contains(t, stderr, "out of date")
	assert.Contains(t, stderr, "hint:")
}

func TestGenerateRemoteInput(t *testing.T) {
	dir, _ := workspace(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(widgetJSON))
	}))
	t.Cleanup(srv.Close)
	url := srv.URL + "/docs/data.json"
	outdir := filepath.Join(dir, "types")

	t.Run("loopback blocked by default", func(t *testing.T) {
		code, _, stderr := run(url, outdir)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "private IP address blocked")
	})

	t.Run("allowed by config", func(t *testing.T) {
		t.Setenv("DTSGEN_INPUT_ALLOW_PRIVATE_HOSTS", "true")
		code, _, stderr := run(url, outdir)
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, readFile(t, filepath.Join(outdir, "Widget.d.ts")), "spin(speed: number): boolean;")
	})

	t.Run("watch needs a local file", func(t *testing.T) {
		code, _, stderr := run(url, outdir, "--watch")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "cannot watch")
	})
}

func TestCheckUsage(t *testing.T) {
	workspace(t)
	code, stdout, stderr := run("check", "data.json")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Usage: dtsgen check")
	assert.Empty(t, stderr)
}

func TestConfigShow(t *testing.T) {
	workspace(t)

	code, stdout, _ := run("config", "show")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "[types]")
	assert.Contains(t, stdout, "permissive")

	code, stdout, _ = run("config", "show", "--format", "json", "--namespace", "Glimmer")
	require.Equal(t, 0, code)
	var cfg map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "Glimmer", cfg["namespace"]["default"])

	code, _, stderr := run("config", "show", "--format", "ini")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown format")
}

func TestConfigGet(t *testing.T) {
	workspace(t)
	t.Setenv("DTSGEN_OUTPUT_NEWLINE", "crlf")

	code, stdout, _ := run("config", "get", "output.newline")
	require.Equal(t, 0, code)
	assert.Equal(t, "crlf\n", stdout)

	code, _, stderr := run("config", "get", "output.colour")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not found")
}

func TestConfigValidate(t *testing.T) {
	dir, _ := workspace(t)
	path := filepath.Join(dir, "dtsgen.toml")

	code, stdout, _ := run("config", "validate")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Configuration is valid")

	require.NoError(t, os.WriteFile(path, []byte("[output]\nindx = true\n"), 0644))
	code, _, stderr := run("config", "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "output.indx")

	require.NoError(t, os.WriteFile(path, []byte("[output]\nnewline = \"cr\"\n"), 0644))
	code, _, stderr = run("config", "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "output.newline")

	require.NoError(t, os.WriteFile(path, []byte("[output\n"), 0644))
	code, _, stderr = run("config", "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "dtsgen.toml")
}

func TestConfigWhere(t *testing.T) {
	dir, _ := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dtsgen.toml"), []byte(""), 0644))

	code, stdout, _ := run("config", "where")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "[user]")
	assert.Contains(t, stdout, "[project]")
	assert.Contains(t, stdout, "DTSGEN_*")

	code, stdout, _ = run("config", "where", "--json")
	require.Equal(t, 0, code)
	var sources []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &sources))
	require.Len(t, sources, 2)
	assert.Equal(t, "project", sources[1]["kind"])
	assert.Equal(t, true, sources[1]["exists"])
}

func TestConfigInit(t *testing.T) {
	dir, _ := workspace(t)

	code, stdout, _ := run("config", "init")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Wrote dtsgen.toml")
	assert.FileExists(t, filepath.Join(dir, "dtsgen.toml"))

	code, _, _ = run("config", "validate")
	assert.Equal(t, 0, code, "the written defaults validate")

	code, _, stderr := run("config", "init")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "already exists")
}

func TestVersion(t *testing.T) {
	workspace(t)

	code, stdout, _ := run("version")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "dtsgen "))
	assert.Contains(t, stdout, "Platform:")

	code, stdout, _ = run("version", "--json")
	require.Equal(t, 0, code)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info["go_version"])
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	abs, err := os.Getwd()
	require.NoError(t, err)
	t.Setenv("PWD", abs)
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
