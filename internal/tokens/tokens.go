// Package tokens flattens a configuration tree into {{dotted.path}} placeholders.
//
// Objects contribute their keys as path segments, arrays their element indexes.
// Every scalar leaf becomes one placeholder whose value is the scalar's string
// form. Extraction is deterministic: object keys are visited in lexicographic
// order and array elements in index order, depth first.
package tokens

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Entry is one placeholder and the literal value it expands to.
type Entry struct {
	Key   string
	Value string
}

// Map is an ordered, duplicate-free set of placeholder entries.
type Map struct {
	entries []Entry
	index   map[string]int
}

// Placeholder renders a dotted path as a template placeholder.
func Placeholder(path string) string {
	return openDelim + path + closeDelim
}

// Extract flattens root into a token map. Any value accepted by the config
// loader is valid input; a scalar root has no path and yields an empty map.
func Extract(root any) *Map {
	m := &Map{index: make(map[string]int)}
	switch root.(type) {
	case map[string]any, []any:
		m.walk("", root)
	}
	return m
}

func (m *Map) walk(prefix string, node any) {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m.visit(prefix+k, v[k])
		}
	case []any:
		for i, elem := range v {
			m.visit(prefix+strconv.Itoa(i), elem)
		}
	}
}

func (m *Map) visit(path string, value any) {
	switch value.(type) {
	case map[string]any, []any:
		m.walk(path+".", value)
	default:
		m.add(Placeholder(path), FormatScalar(value))
	}
}

func (m *Map) add(key, value string) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Len returns the number of placeholders.
func (m *Map) Len() int {
	return len(m.entries)
}

// Get returns the value for a placeholder key such as "{{site.name}}".
func (m *Map) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.entries[i].Value, true
}

// Keys returns the placeholder keys in extraction order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in extraction order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Replacer builds a literal, single-pass replacer for every placeholder.
// Keys are never interpreted as patterns, and a value that happens to contain
// placeholder text is inserted verbatim rather than expanded again.
func (m *Map) Replacer() *strings.Replacer {
	pairs := make([]string, 0, 2*len(m.entries))
	for _, e := range m.entries {
		pairs = append(pairs, e.Key, e.Value)
	}
	return strings.NewReplacer(pairs...)
}

// FormatScalar returns the string a scalar configuration value expands to.
// Integral numbers print without a fraction, other numbers in their shortest
// decimal form, null as the empty string.
func FormatScalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		if math.IsInf(s, 0) || math.IsNaN(s) {
			return strconv.FormatFloat(s, 'g', -1, 64)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case *big.Int:
		return s.String()
	case *big.Float:
		return s.Text('f', -1)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}
