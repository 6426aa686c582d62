package steam_vdf

import "strings"

// Transform rewrites classified manifest lines into strict JSON text. The
// source format omits the colon after nested-object names and every comma, so
// both are synthesized here.
//
// The pass is a single forward walk with one line of lookahead and no notion
// of nesting depth: a line is the last member of its enclosing object exactly
// when the next line is a close-marker. That is the whole separator rule:
//
//   - key/value pair  -> `"k": "v"`, comma unless the next line closes an object
//   - object name     -> `"name":` (its `{` body follows), never a comma
//   - close-marker    -> `}`, comma unless the next line is also a close-marker
//     or there is no next line
//   - anything else   -> emitted as-is (the `{` lines)
//
// Callers pass the file's lines with line 0 (the outer object name) already
// dropped, so the output is one JSON object.
func Transform(lines []Line) string {
	var b strings.Builder
	for i, line := range lines {
		nextCloses := i+1 < len(lines) && lines[i+1].Kind == LineObjectClose
		hasNext := i+1 < len(lines)
		switch line.Kind {
		case LineKeyValue:
			b.WriteByte('"')
			b.WriteString(line.Key)
			b.WriteString(`": "`)
			b.WriteString(line.Value)
			b.WriteByte('"')
			if hasNext && !nextCloses {
				b.WriteByte(',')
			}
		case LineObjectOpen:
			b.WriteByte('"')
			b.WriteString(line.Key)
			b.WriteString(`":`)
		case LineObjectClose:
			b.WriteByte('}')
			if hasNext && !nextCloses {
				b.WriteByte(',')
			}
		case LineOther:
			b.WriteString(line.Raw)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
