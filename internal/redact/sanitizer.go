// Package redact replaces sensitive payment fields in arbitrary nested data
// before it is logged or handed to another system.
package redact

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// DefaultMarker replaces every redacted value.
const DefaultMarker = "[REDACTED]"

// DefaultMaxDepth bounds container nesting. Deeper subtrees are replaced by
// the marker. A map or slice that contains itself is cut at the first
// repeat regardless of depth.
const DefaultMaxDepth = 64

// DefaultKeys are matched as case-insensitive substrings of mapping keys.
var DefaultKeys = []string{
	"cardnumber",
	"card_number",
	"number",
	"cvv",
	"cvc",
	"securitycode",
	"security_code",
}

// Options configures a Sanitizer. Zero fields take the defaults.
type Options struct {
	ExtraKeys []string
	Marker    string
	MaxDepth  int
}

// Sanitizer builds redacted copies of payload trees. It holds no mutable
// state and is safe for concurrent use.
type Sanitizer struct {
	keys     []string
	marker   string
	maxDepth int
}

// New returns a Sanitizer matching DefaultKeys plus opts.ExtraKeys.
func New(opts Options) Sanitizer {
	keys := append([]string(nil), DefaultKeys...)
	for _, k := range opts.ExtraKeys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keys = append(keys, k)
		}
	}
	s := Sanitizer{keys: keys, marker: opts.Marker, maxDepth: opts.MaxDepth}
	if s.marker == "" {
		s.marker = DefaultMarker
	}
	if s.maxDepth <= 0 {
		s.maxDepth = DefaultMaxDepth
	}
	return s
}

// Default returns a Sanitizer with the default key set, marker and depth.
func Default() Sanitizer {
	return New(Options{})
}

// Sanitize returns a redacted copy of v using Default.
func Sanitize(v any) any {
	return Default().Value(v)
}

// Marker returns the redaction marker.
func (s Sanitizer) Marker() string {
	return s.marker
}

// IsSensitive reports whether key names a field that must be redacted.
func (s Sanitizer) IsSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range s.keys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Value returns a redacted deep copy of v as plain Go values.
func (s Sanitizer) Value(v any) any {
	return s.Node(v).Value()
}

// Node returns a redacted tree for v. Maps become mappings with keys
// sorted, slices and arrays become sequences. Any other value, including
// structs and pointers, is kept as an opaque scalar.
func (s Sanitizer) Node(v any) Node {
	if n, ok := v.(Node); ok {
		return s.Tree(n)
	}
	return s.build(v, 0)
}

// Tree returns a redacted copy of n.
func (s Sanitizer) Tree(n Node) Node {
	return s.tree(n, 0)
}

func (s Sanitizer) redacted() Node {
	return Scalar(s.marker)
}

func (s Sanitizer) entry(key string, value func() Node) Entry {
	if s.IsSensitive(key) {
		return Entry{Key: key, Value: s.redacted()}
	}
	return Entry{Key: key, Value: value()}
}

func (s Sanitizer) tree(n Node, depth int) Node {
	switch n.kind {
	case SequenceNode:
		if depth >= s.maxDepth {
			return s.redacted()
		}
		items := make([]Node, len(n.items))
		for i, item := range n.items {
			items[i] = s.tree(item, depth+1)
		}
		return Sequence(items...)
	case MappingNode:
		if depth >= s.maxDepth {
			return s.redacted()
		}
		entries := make([]Entry, len(n.entries))
		for i, e := range n.entries {
			entries[i] = s.entry(e.Key, func() Node { return s.tree(e.Value, depth+1) })
		}
		return Mapping(entries...)
	default:
		return n
	}
}

// walk builds one tree. path holds the maps and slices currently being
// descended into; meeting one again is a cycle and yields the marker.
type walk struct {
	s    Sanitizer
	path map[uintptr]struct{}
}

func (s Sanitizer) build(v any, depth int) Node {
	w := &walk{s: s, path: make(map[uintptr]struct{})}
	return w.build(v, depth)
}

// enter marks rv as on the current path. It reports false when rv is
// already there.
func (w *walk) enter(rv reflect.Value) bool {
	ptr := rv.Pointer()
	if _, ok := w.path[ptr]; ok {
		return false
	}
	w.path[ptr] = struct{}{}
	return true
}

func (w *walk) leave(rv reflect.Value) {
	delete(w.path, rv.Pointer())
}

func (w *walk) build(v any, depth int) Node {
	switch v.(type) {
	case nil:
		return Scalar(nil)
	case string, bool, float64, float32, int, int64, int32, uint, uint64, []byte:
		return Scalar(v)
	}
	return w.buildReflect(reflect.ValueOf(v), depth)
}

func (w *walk) buildReflect(rv reflect.Value, depth int) Node {
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return Scalar(rv.Interface())
		}
		if depth >= w.s.maxDepth || !w.enter(rv) {
			return w.s.redacted()
		}
		defer w.leave(rv)

		type kv struct {
			key   string
			value reflect.Value
		}
		pairs := make([]kv, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, kv{key: fmt.Sprint(iter.Key().Interface()), value: iter.Value()})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
		entries := make([]Entry, len(pairs))
		for i, p := range pairs {
			entries[i] = w.s.entry(p.key, func() Node { return w.build(p.value.Interface(), depth+1) })
		}
		return Mapping(entries...)
	case reflect.Slice:
		if rv.IsNil() {
			return Scalar(rv.Interface())
		}
		if depth >= w.s.maxDepth || !w.enter(rv) {
			return w.s.redacted()
		}
		defer w.leave(rv)
		return w.sequence(rv, depth)
	case reflect.Array:
		if depth >= w.s.maxDepth {
			return w.s.redacted()
		}
		return w.sequence(rv, depth)
	default:
		return Scalar(rv.Interface())
	}
}

func (w *walk) sequence(rv reflect.Value, depth int) Node {
	items := make([]Node, rv.Len())
	for i := range items {
		items[i] = w.build(rv.Index(i).Interface(), depth+1)
	}
	return Sequence(items...)
}
