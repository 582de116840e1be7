package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"

	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
)

// Lookup resolves a dotted path such as "site.name" or "nav.0.label".
// Numeric segments index into arrays; everywhere else they are plain object keys.
func (d *Document) Lookup(path string) (any, bool) {
	x, found, err := d.expr(path, false)
	if err != nil || !found {
		return nil, false
	}
	results := x.Get(d.root)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// LookupString resolves path and returns the value only if it is a string.
func (d *Document) LookupString(path string) (string, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set assigns a string value at a dotted path. Missing intermediate objects are
// created; array indexes must already exist.
func (d *Document) Set(path, value string) error {
	if d.root == nil {
		d.root = map[string]any{}
	}
	if _, ok := d.root.(map[string]any); !ok {
		return errors.ValidationError("overrides require an object at the configuration root").
			WithContext("path", path).
			Build()
	}
	x, _, err := d.expr(path, true)
	if err != nil {
		return errors.ValidationError("invalid override path").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	if err := x.Set(d.root, value); err != nil {
		return errors.ValidationError("failed to apply override").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	return nil
}

// expr builds a JSONPath expression for a dotted path, choosing child or index
// steps by inspecting the tree as it descends. found reports whether every
// segment exists.
func (d *Document) expr(path string, create bool) (jp.Expr, bool, error) {
	if strings.TrimSpace(path) == "" {
		return nil, false, fmt.Errorf("empty path")
	}
	x := jp.R()
	cur := d.root
	found := true
	segs := strings.Split(path, ".")
	for i, seg := range segs {
		if seg == "" {
			return nil, false, fmt.Errorf("empty segment in %q", path)
		}
		switch node := cur.(type) {
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, false, fmt.Errorf("segment %q is not an array index", seg)
			}
			if idx < 0 || idx >= len(node) {
				return nil, false, fmt.Errorf("index %d out of range", idx)
			}
			x = x.N(idx)
			cur = node[idx]
		case map[string]any:
			x = x.C(seg)
			next, ok := node[seg]
			if !ok {
				found = false
			}
			if next == nil && create && i < len(segs)-1 {
				next = map[string]any{}
				node[seg] = next
			}
			cur = next
		case nil:
			return x, false, nil
		default:
			return nil, false, fmt.Errorf("cannot descend into scalar at %q", seg)
		}
	}
	return x, found, nil
}
