// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Diff display configuration
const diffContext = 3 // unchanged lines around each hunk

// 🎯 FormatDiff renders a unified diff between the old and new content of path.
// Identical content yields an empty string.
func FormatDiff(path string, before, after []byte, colored bool) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(normalizeEOL(string(before))),
		B:        difflib.SplitLines(normalizeEOL(string(after))),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContext,
	}

	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", errors.Errorf("rendering diff for %s: %w", path, err)
	}

	if !colored {
		return out, nil
	}
	return colorizeDiff(out), nil
}

// colorizeDiff colors headers, hunks, additions and removals
func colorizeDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(color.CyanString("%s", line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(color.RedString("%s", line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// normalizeEOL keeps CRLF files from showing every line as changed
func normalizeEOL(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
