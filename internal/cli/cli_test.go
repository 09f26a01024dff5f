// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-debug/internal/ui/debugview"
	"github.com/jeranaias/rigrun-debug/internal/ui/settings"
)

// harness runs commands against a private home and data directory.
type harness struct {
	t       *testing.T
	home    string
	dataDir string
	pages   []tea.Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return &harness{t: t, home: home, dataDir: filepath.Join(home, "data")}
}

func (h *harness) options() *options {
	o := defaultOptions()
	o.getenv = func(string) string { return "" }
	o.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
	o.runTUI = func(_ string, m tea.Model) error {
		h.pages = append(h.pages, m)
		return nil
	}
	return o
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := newRootCommand(h.options())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", h.dataDir}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "rigrun %s: %s", strings.Join(args, " "), out)
	return out
}

func decodeResponse(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

// =============================================================================
// VERSION
// =============================================================================

func TestVersion_JSON(t *testing.T) {
	h := newHarness(t)
	resp := decodeResponse(t, h.mustRun("version", "--json"))

	require.Equal(t, true, resp["success"])
	require.Equal(t, "version", resp["command"])
	data := resp["data"].(map[string]interface{})
	require.Equal(t, "rigrun", data["name"])
}

func TestVersion_Text(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("version")
	require.Contains(t, out, "rigrun")
	require.Contains(t, out, "Commit:")
}

// =============================================================================
// DEBUG
// =============================================================================

func TestDebugExport_WritesNamedFile(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	out := h.mustRun("debug", "export", "--dir", dir)
	want := filepath.Join(dir, "rigrun_debug_20250304-050607.json")
	require.Contains(t, out, want)

	data, err := os.ReadFile(want)
	require.NoError(t, err)

	var snap map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Contains(t, snap, "client")
	require.Contains(t, snap, "agi")
	require.Contains(t, snap, "backend")

	st := snap["agi"]["state"].(map[string]interface{})
	require.Equal(t, float64(0), st["chatsCount"])
	require.Equal(t, float64(12), st["newsCurrent"])
	require.Equal(t, float64(1), st["reloads"])
}

func TestDebugExport_TwiceSameSecondDoesNotCollide(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	h.mustRun("debug", "export", "--dir", dir)
	h.mustRun("debug", "export", "--dir", dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestDebugExport_JSON(t *testing.T) {
	h := newHarness(t)
	resp := decodeResponse(t, h.mustRun("debug", "export", "--dir", t.TempDir(), "--json"))

	require.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	require.True(t, strings.HasSuffix(data["path"].(string), ".json"))
	require.Greater(t, data["bytes"].(float64), float64(0))
}

func TestDebugExport_Stdout(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("debug", "export", "--stdout")

	var snap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap, 3)
	require.Contains(t, out, "\n  \"agi\": {")
}

func TestDebugShow_Plain(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("debug", "show", "--plain")

	for _, want := range []string{"# rigrun Debug", "## Client", "## AGI", "## Backend", "newsCurrent: 12"} {
		require.Contains(t, out, want)
	}
}

func TestDebugShow_JSON(t *testing.T) {
	h := newHarness(t)
	resp := decodeResponse(t, h.mustRun("debug", "show", "--json"))

	data := resp["data"].(map[string]interface{})
	backend := data["backend"].(map[string]interface{})
	deployment := backend["deployment"].(map[string]interface{})
	require.Equal(t, h.dataDir, deployment["dataDir"])
	require.Equal(t, "https://github.com/jeranaias/rigrun", deployment["home"])
}

func TestDebugPage_OpensModel(t *testing.T) {
	h := newHarness(t)
	h.mustRun("debug")

	require.Len(t, h.pages, 1)
	_, ok := h.pages[0].(debugview.Model)
	require.True(t, ok, "debug runs the debug page, got %T", h.pages[0])

	_, err := os.Stat(filepath.Join(h.dataDir, "rigrun.log"))
	require.NoError(t, err, "interactive pages log to a file")
}

// =============================================================================
// LANGUAGE
// =============================================================================

func TestLanguage_SetAndList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("language", "set", "es-MX")
	require.Contains(t, out, "es-MX")

	resp := decodeResponse(t, h.mustRun("language", "list", "--json"))
	data := resp["data"].(map[string]interface{})
	require.Equal(t, "es-MX", data["current"])
	require.NotEmpty(t, data["languages"])
}

func TestLanguage_SetUnknown(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("language", "set", "xx-XX")
	require.Error(t, err)
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestLanguage_ListText(t *testing.T) {
	h := newHarness(t)
	h.mustRun("language", "set", "ja-JP")
	out := h.mustRun("language", "list")

	require.Contains(t, out, "日本語")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "ja-JP") {
			require.True(t, strings.HasPrefix(line, "* "), "current language marked: %q", line)
		}
	}
}

func TestLanguage_PickerAndSettingsPages(t *testing.T) {
	h := newHarness(t)
	h.mustRun("language")
	h.mustRun("settings")

	require.Len(t, h.pages, 2)
	for _, p := range h.pages {
		_, ok := p.(settings.Model)
		require.True(t, ok, "got %T", p)
	}
}

// =============================================================================
// LABS
// =============================================================================

func TestLabs_EnableShowsInSnapshot(t *testing.T) {
	h := newHarness(t)
	h.mustRun("labs", "enable", "showCost", "attachPrompts")
	h.mustRun("labs", "disable", "attachPrompts")

	resp := decodeResponse(t, h.mustRun("labs", "list", "--json"))
	labs := resp["data"].([]interface{})
	enabled := map[string]bool{}
	for _, l := range labs {
		lab := l.(map[string]interface{})
		enabled[lab["name"].(string)] = lab["enabled"].(bool)
	}
	require.True(t, enabled["showCost"])
	require.False(t, enabled["attachPrompts"])

	out := h.mustRun("debug", "export", "--stdout")
	require.Contains(t, out, `"labsActive": "showCost"`)
}

func TestLabs_EnableUnknown(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("labs", "enable", "warpDrive")
	require.Error(t, err)
	require.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// CHATS, CONFIG, NEWS
// =============================================================================

func TestChats_ListEmpty(t *testing.T) {
	h := newHarness(t)
	require.Contains(t, h.mustRun("chats", "list"), "No saved conversations")
}

func TestConfig_InitAndShow(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.home, "custom.toml")

	h.mustRun("--config", path, "config", "init")
	_, err := os.Stat(path)
	require.NoError(t, err)

	_, err = h.run("--config", path, "config", "init")
	require.Error(t, err, "init refuses to overwrite")

	h.mustRun("--config", path, "config", "init", "--force")

	out := h.mustRun("--config", path, "config", "show")
	require.Contains(t, out, "# source: "+path)
	require.Contains(t, out, "[brand]")
}

func TestMaskSecrets(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.home, "keys.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cloud]\nopenrouter_key = \"sk-or-secret\"\n"), 0600))

	out := h.mustRun("--config", path, "config", "show")
	require.NotContains(t, out, "sk-or-secret")
	require.Contains(t, out, "********")
}

func TestNews_MarksSeen(t *testing.T) {
	h := newHarness(t)
	require.Contains(t, h.mustRun("news"), "Release notes")
	require.Contains(t, h.mustRun("news"), "up to date")

	resp := decodeResponse(t, h.mustRun("debug", "show", "--json"))
	st := resp["data"].(map[string]interface{})["agi"].(map[string]interface{})["state"].(map[string]interface{})
	require.Equal(t, float64(12), st["newsSeen"])
}

// =============================================================================
// EXECUTE
// =============================================================================

func TestExecute_ReportsErrors(t *testing.T) {
	h := newHarness(t)
	o := h.options()
	var stderr bytes.Buffer

	code := execute(context.Background(), newRootCommand(o), []string{"--data-dir", h.dataDir, "language", "set", "xx-XX"}, &stderr)
	require.Equal(t, ExitUsageError, code)
	require.Contains(t, stderr.String(), "unknown language code")

	code = execute(context.Background(), newRootCommand(h.options()), []string{"--data-dir", h.dataDir, "version"}, &stderr)
	require.Equal(t, ExitSuccess, code)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{&ValidationError{Field: "dir", Reason: "missing"}, ExitUsageError},
		{&CommandError{Command: "debug", Action: "export", Reason: "failed"}, ExitGeneralError},
	}
	for _, tc := range tests {
		if got := GetExitCode(tc.err); got != tc.want {
			t.Errorf("GetExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestDisplayError_JSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, &ValidationError{Field: "code", Reason: "unknown"}, true)

	resp := decodeResponse(t, buf.String())
	require.Equal(t, false, resp["success"])
	require.Equal(t, "validation_error", resp["error_type"])
}
