package hookbind

import (
	"regexp"
	"strings"
)

// ="expr"
var lexValue = regexp.MustCompile(`^\s*=\s*"([^"]*)"`)

// =" without its closing quote
var lexValueOpen = regexp.MustCompile(`^\s*=\s*"`)

// Marker is one occurrence of the marker attribute. Start and End are byte
// offsets into the scanned source, Line and Column are 1-based.
// Err is set when the occurrence can't be rewritten.
type Marker struct {
	Expr   string
	Start  int
	End    int
	Line   int
	Column int
	Err    error
}

// Valid reports whether the marker can be rewritten
func (m Marker) Valid() bool {
	return m.Err == nil
}

// Lexicon scans a source for marker occurrences
type Lexicon struct {
	src     string
	prefix  string
	markers []Marker

	// position cache, so line numbers are found in one pass
	lastPos  int
	lastLine int
	lastCol  int
}

// NewLexicon creates a lexicon for prefix over src
func NewLexicon(src, prefix string) *Lexicon {
	return &Lexicon{src: src, prefix: prefix, lastLine: 1, lastCol: 1}
}

// Lex returns every marker occurrence in src
func Lex(src, prefix string) []Marker {
	lex := NewLexicon(src, prefix)
	lex.ParseMarkers(0, len(src))
	return lex.Markers()
}

// Markers returns the occurrences found by ParseMarkers
func (l *Lexicon) Markers() []Marker {
	return l.markers
}

// ParseMarkers finds the occurrences that start in src[lo:hi]. A value must
// close before hi.
func (l *Lexicon) ParseMarkers(lo, hi int) {
	if l.prefix == "" {
		return
	}

	window := l.src[:hi]
	pos := lo
	for pos < hi {
		idx := strings.Index(window[pos:], l.prefix)
		if idx == -1 {
			break
		}

		start := pos + idx
		after := start + len(l.prefix)
		m := Marker{Start: start, End: after}
		m.Line, m.Column = l.position(start)

		rest := window[after:]
		if loc := lexValue.FindStringSubmatchIndex(rest); loc != nil {
			m.End = after + loc[1]
			m.Expr = strings.TrimSpace(rest[loc[2]:loc[3]])
			if m.Expr == "" {
				m.Err = l.errorAt(m, "empty expression")
			}
		} else if lexValueOpen.MatchString(rest) {
			m.Err = l.errorAt(m, "unterminated attribute value")
		} else {
			m.Err = l.errorAt(m, `expected ="..." after `+l.prefix)
		}

		l.markers = append(l.markers, m)
		pos = m.End
	}
}

func (l *Lexicon) errorAt(m Marker, reason string) error {
	return &MarkerError{Line: m.Line, Column: m.Column, Reason: reason}
}

// position returns the line and column of offset. Offsets must be
// requested in increasing order.
func (l *Lexicon) position(offset int) (int, int) {
	if offset < l.lastPos {
		l.lastPos, l.lastLine, l.lastCol = 0, 1, 1
	}

	for _, r := range l.src[l.lastPos:offset] {
		if r == '\n' {
			l.lastLine++
			l.lastCol = 1
			continue
		}
		l.lastCol++
	}
	l.lastPos = offset

	return l.lastLine, l.lastCol
}
