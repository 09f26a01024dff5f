// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package debug

import (
	"strings"

	"github.com/jeranaias/rigrun-debug/internal/util"
)

// PrettyOptions parameterize Prettify.
type PrettyOptions struct {
	DeleteChars        int
	StripQuotes        bool
	StripTrailingComma bool
}

// DefaultPrettyOptions is the dense rendering used on the debug page.
var DefaultPrettyOptions = PrettyOptions{DeleteChars: 2, StripQuotes: true, StripTrailingComma: true}

// Prettify turns indented JSON into a denser, YAML-looking text. For each
// line it drops the first deleteChars characters (the whole line if it is
// shorter), optionally deletes every double quote, then optionally drops a
// single trailing comma. Lines are joined with "\n" and the result is
// trimmed. The input is not validated and the output is for display only.
func Prettify(jsonText string, deleteChars int, removeDoubleQuotes, removeTrailComma bool) string {
	lines := strings.Split(jsonText, "\n")
	for i, l := range lines {
		if deleteChars > 0 {
			l = util.DropRunes(l, deleteChars)
		}
		if removeDoubleQuotes {
			l = strings.ReplaceAll(l, `"`, "")
		}
		if removeTrailComma {
			l = strings.TrimSuffix(l, ",")
		}
		lines[i] = l
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
