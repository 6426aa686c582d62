package steam_vdf

import "strings"

// Text ACF/VDF manifests are tab-indented and hold no commas or colons.
// Every line after the first (the outer object's name, which callers skip)
// has one of four shapes:
//
//	line   = pair | open | close | other
//	pair   = TAB+ '"' key '"' TAB TAB '"' value '"'
//	open   = TAB+ '"' name '"'
//	close  = TAB+ ... '}'
//	other  = anything else (in practice the '{' lines that begin each object)
//
// Shapes are tested in that order; the first match wins.

type LineKind int

const (
	LineKeyValue LineKind = iota
	LineObjectOpen
	LineObjectClose
	LineOther
)

// Line is one classified manifest line. Key and Value hold the text between
// the quotes, untouched (VDF escape sequences included); Raw is the line as
// read.
type Line struct {
	Kind  LineKind
	Key   string
	Value string
	Raw   string
}

func Classify(raw string) Line {
	if key, value, ok := matchKeyValue(raw); ok {
		return Line{Kind: LineKeyValue, Key: key, Value: value, Raw: raw}
	}
	if strings.HasPrefix(raw, "\t") && strings.HasSuffix(raw, "}") {
		return Line{Kind: LineObjectClose, Raw: raw}
	}
	if name, ok := matchSoleToken(raw); ok {
		return Line{Kind: LineObjectOpen, Key: name, Raw: raw}
	}
	return Line{Kind: LineOther, Raw: raw}
}

func ClassifyAll(raws []string) []Line {
	lines := make([]Line, len(raws))
	for i, raw := range raws {
		lines[i] = Classify(raw)
	}
	return lines
}

// matchKeyValue matches tab-indented `"key"		"value"` lines: one or more
// leading tabs, a quoted token, exactly two tabs, a quoted token, end of line.
func matchKeyValue(raw string) (key, value string, ok bool) {
	rest, ok := skipTabs(raw)
	if !ok {
		return "", "", false
	}
	key, rest, ok = quotedToken(rest)
	if !ok {
		return "", "", false
	}
	if !strings.HasPrefix(rest, "\t\t") {
		return "", "", false
	}
	value, rest, ok = quotedToken(rest[2:])
	if !ok || rest != "" {
		return "", "", false
	}
	return key, value, true
}

// matchSoleToken matches object-name lines: one or more leading tabs, a
// single quoted token, nothing after it.
func matchSoleToken(raw string) (name string, ok bool) {
	rest, ok := skipTabs(raw)
	if !ok {
		return "", false
	}
	name, rest, ok = quotedToken(rest)
	if !ok || rest != "" {
		return "", false
	}
	return name, true
}

// skipTabs consumes the leading run of tabs and requires at least one.
func skipTabs(s string) (string, bool) {
	trimmed := strings.TrimLeft(s, "\t")
	if len(trimmed) == len(s) {
		return "", false
	}
	return trimmed, true
}

// quotedToken reads a `"..."` token off the front of s. The token ends at the
// next quote character; escape sequences are not interpreted here, matching
// how Steam writes these files.
func quotedToken(s string) (token, rest string, ok bool) {
	if len(s) == 0 || s[0] != '"' {
		return "", "", false
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return "", "", false
	}
	return s[1 : 1+end], s[end+2:], true
}
