// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debug

import "testing"

func TestPrettify(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		deleteChars int
		quotes      bool
		comma       bool
		want        string
	}{
		{"dense defaults", "  \"a\": 1,\n  \"b\": 2,", 2, true, true, "a: 1\nb: 2"},
		{"nested indentation survives", "  \"a\": 1,\n    \"b\": 2,", 2, true, true, "a: 1\n  b: 2"},
		{"short lines become empty", "{\n  \"a\": 1\n}", 2, true, true, "a: 1"},
		{"only one trailing comma removed", "x,,", 0, false, true, "x,"},
		{"quotes kept", "  \"a\": \"b\",", 2, false, true, `"a": "b"`},
		{"comma kept", "  \"a\": 1,", 2, true, false, "a: 1,"},
		{"not json at all", "hello", 10, true, true, ""},
		{"multibyte characters", "éé\"ü\",", 1, true, true, "éü"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Prettify(tc.in, tc.deleteChars, tc.quotes, tc.comma)
			if got != tc.want {
				t.Errorf("Prettify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPrettify_IdempotentOnDenseInput(t *testing.T) {
	dense := Prettify("{\n  \"a\": 1,\n  \"b\": {\n    \"c\": \"d\"\n  }\n}", 2, true, true)

	once := Prettify(dense, 0, true, true)
	twice := Prettify(once, 0, true, true)

	if once != dense {
		t.Errorf("Prettify(dense) = %q, want unchanged %q", once, dense)
	}
	if twice != once {
		t.Errorf("second pass changed output: %q -> %q", once, twice)
	}
}

func TestSection_Render(t *testing.T) {
	sec := Section{
		Title: "x",
		Data: map[string]any{
			"a": 1,
			"b": map[string]any{"c": "d"},
		},
	}

	got := sec.Render(DefaultPrettyOptions)
	want := "a: 1\nb: {\n  c: d\n}"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSection_RenderUnencodable(t *testing.T) {
	sec := Section{Title: "bad", Data: map[string]any{"ch": make(chan int)}}
	if got := sec.Render(DefaultPrettyOptions); got != "" {
		t.Errorf("Render() = %q, want empty for unencodable data", got)
	}
}
