package steam_vdf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedManifest reports a manifest whose content does not decode into
// a value tree. Callers treat this as "skip this file".
var ErrMalformedManifest = errors.New("malformed manifest")

type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueObject
)

// Value is one node of the decoded tree: a string, a number (kept as its
// source literal), or a nested object.
type Value struct {
	Kind ValueKind
	Str  string
	Obj  *Object
}

// Object is an object node. Key order is preserved from the source, but
// lookups are what matter; order carries no meaning in these files.
type Object struct {
	keys   []string
	fields map[string]Value
}

func (o *Object) Keys() []string { return o.keys }

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// FirstOf returns the value of the first present candidate key. Lookup is
// case-sensitive, which is what makes candidate priority meaningful.
func (o *Object) FirstOf(keys ...string) (Value, bool) {
	for _, key := range keys {
		if v, ok := o.fields[key]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Int parses the node as a base-10 integer. Both string and number nodes are
// accepted; manifests quote everything, so numbers arrive as strings.
func (v Value) Int() (int, error) {
	if v.Kind == ValueObject {
		return 0, fmt.Errorf("value is an object, not a number")
	}
	n, err := strconv.Atoi(v.Str)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", v.Str)
	}
	return n, nil
}

// ParseManifest runs the whole codec over a manifest file's content: split
// into lines, drop line 0 (the outer object's name), classify, transform to
// JSON, decode. Any failure comes back as ErrMalformedManifest.
func ParseManifest(data []byte) (*Object, error) {
	lines := splitLines(data)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: too short", ErrMalformedManifest)
	}
	transformed := Transform(ClassifyAll(lines[1:]))
	return Decode([]byte(transformed))
}

// Decode parses strict JSON (as produced by Transform) into the generic
// tree. It walks the token stream directly so source key order survives.
func Decode(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: document is not an object", ErrMalformedManifest)
	}
	obj, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content", ErrMalformedManifest)
	}
	return obj, nil
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{fields: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrMalformedManifest)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		// Duplicate keys: last one wins, first position kept.
		if _, exists := obj.fields[key]; !exists {
			obj.keys = append(obj.keys, key)
		}
		obj.fields[key] = value
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	switch t := tok.(type) {
	case string:
		return Value{Kind: ValueString, Str: t}, nil
	case json.Number:
		return Value{Kind: ValueNumber, Str: t.String()}, nil
	case json.Delim:
		if t != '{' {
			return Value{}, fmt.Errorf("%w: unexpected %v", ErrMalformedManifest, t)
		}
		obj, err := decodeObject(dec)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueObject, Obj: obj}, nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected token %v", ErrMalformedManifest, tok)
	}
}

// splitLines splits on newlines and drops carriage returns, since Steam on
// Windows writes CRLF.
func splitLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	// Drop the empty element a trailing newline leaves behind, so the last
	// real line is the final close-marker and gets no separator after it.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
