// Package chunker splits journal text into passages, used to show the part
// of an entry a search matched.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxRunes is the passage length used when none is given.
const DefaultMaxRunes = 280

// Passage is a run of text with its 1-based line span in the source.
type Passage struct {
	Text      string
	StartLine int
	EndLine   int
}

// Split breaks text into passages. Blank lines and markdown headings start
// a new passage; a passage longer than maxRunes is split at line breaks,
// and a single over-long line at word boundaries.
func Split(text string, maxRunes int) []Passage {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	var out []Passage
	for _, p := range paragraphs(text) {
		out = append(out, fit(p, maxRunes)...)
	}
	return out
}

// Find returns the first passage of text containing query, ignoring case.
func Find(text, query string, maxRunes int) (Passage, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range Split(text, maxRunes) {
		if strings.Contains(strings.ToLower(p.Text), q) {
			return p, true
		}
	}
	return Passage{}, false
}

func paragraphs(text string) []Passage {
	lines := strings.Split(text, "\n")
	var out []Passage
	var cur []string
	start := 0

	flush := func(end int) {
		if len(cur) > 0 {
			out = append(out, Passage{Text: strings.Join(cur, "\n"), StartLine: start, EndLine: end})
		}
		cur = nil
	}

	for i, line := range lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush(n - 1)
		case strings.HasPrefix(trimmed, "#"):
			flush(n - 1)
			cur, start = []string{trimmed}, n
		default:
			if len(cur) == 0 {
				start = n
			}
			cur = append(cur, trimmed)
		}
	}
	flush(len(lines))
	return out
}

// fit splits p on line boundaries so no passage exceeds max runes.
func fit(p Passage, max int) []Passage {
	if utf8.RuneCountInString(p.Text) <= max {
		return []Passage{p}
	}

	var out []Passage
	var cur []string
	curStart, curLen := p.StartLine, 0
	for i, line := range strings.Split(p.Text, "\n") {
		n := p.StartLine + i
		l := utf8.RuneCountInString(line)
		if len(cur) > 0 && curLen+1+l > max {
			out = append(out, Passage{Text: strings.Join(cur, "\n"), StartLine: curStart, EndLine: n - 1})
			cur, curLen = nil, 0
		}
		if l > max {
			for _, piece := range wrap(line, max) {
				out = append(out, Passage{Text: piece, StartLine: n, EndLine: n})
			}
			continue
		}
		if len(cur) == 0 {
			curStart, curLen = n, l
		} else {
			curLen += 1 + l
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		out = append(out, Passage{Text: strings.Join(cur, "\n"), StartLine: curStart, EndLine: p.EndLine})
	}
	return out
}

// wrap breaks a line into pieces of at most max runes at spaces. A word
// longer than max is cut.
func wrap(line string, max int) []string {
	var out []string
	var b strings.Builder
	n := 0
	for _, w := range strings.Fields(line) {
		wl := utf8.RuneCountInString(w)
		if n > 0 && n+1+wl > max {
			out = append(out, b.String())
			b.Reset()
			n = 0
		}
		for wl > max {
			r := []rune(w)
			out = append(out, string(r[:max]))
			w, wl = string(r[max:]), wl-max
		}
		if wl == 0 {
			continue
		}
		if n > 0 {
			b.WriteByte(' ')
			n++
		}
		b.WriteString(w)
		n += wl
	}
	if n > 0 {
		out = append(out, b.String())
	}
	return out
}
