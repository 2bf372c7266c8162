package text

import (
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

const (
	lf = "\n"
	cr = "\r"
)

// SplitLines splits content on "\n". A CRLF line keeps its trailing "\r",
// so files with mixed line endings split into one entry per line.
func SplitLines(content string) []string {
	return strings.Split(content, lf)
}

// JoinLines is the inverse of SplitLines
func JoinLines(lines []string) string {
	return strings.Join(lines, lf)
}

// withLineEndings gives replacement lines the line ending of the span they
// replace. The span's first line decides; when the span ends the text, its
// last line decides for the final replacement line.
func withLineEndings(repl, span []string, endsText bool) []string {
	if len(repl) == 0 || len(span) == 0 {
		return repl
	}
	crlf := strings.HasSuffix(span[0], cr)
	out := make([]string, len(repl))
	for i, l := range repl {
		out[i] = l
		if crlf {
			out[i] += cr
		}
	}
	if endsText {
		last := len(out) - 1
		out[last] = strings.TrimSuffix(out[last], cr)
		if strings.HasSuffix(span[len(span)-1], cr) {
			out[last] += cr
		}
	}
	return out
}

// checkText rejects content that is not text
func checkText(content string) error {
	if !utf8.ValidString(content) {
		return errors.Errorf("%w: content is not valid UTF-8", ErrInvalidInput)
	}
	if i := strings.IndexByte(content, 0); i >= 0 {
		return errors.Errorf("%w: content contains a NUL byte at offset %d", ErrInvalidInput, i)
	}
	return nil
}

// targetLines trims the snippet as a whole, splits it and trims every line.
// A nil result means the snippet has no non-blank line.
func targetLines(target string) []string {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil
	}
	return trimLines(strings.Split(target, lf))
}

// trimLines returns a trimmed copy of lines
func trimLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

// replacementLines splits a replacement into the lines to splice in.
// The empty string yields no lines and a single trailing line break is
// dropped, so "x\n" and "x" both give one line.
func replacementLines(replacement string) []string {
	if replacement == "" {
		return []string{}
	}
	replacement = strings.TrimSuffix(replacement, lf)
	replacement = strings.TrimSuffix(replacement, cr)
	lines := strings.Split(replacement, lf)
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, cr)
	}
	return lines
}
