package tokens

import (
	"math/big"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderPattern = regexp.MustCompile(`^\{\{[^{}]+\}\}$`)

func TestExtractNestedObjects(t *testing.T) {
	m := Extract(map[string]any{
		"site": map[string]any{
			"name":    "Acme Rescue",
			"contact": map[string]any{"email": "hi@acme.example"},
		},
	})

	require.Equal(t, 2, m.Len())
	name, ok := m.Get("{{site.name}}")
	require.True(t, ok)
	assert.Equal(t, "Acme Rescue", name)
	email, _ := m.Get("{{site.contact.email}}")
	assert.Equal(t, "hi@acme.example", email)
}

func TestExtractArrayOfObjects(t *testing.T) {
	m := Extract(map[string]any{
		"nav": []any{
			map[string]any{"label": "Home"},
			map[string]any{"label": "About"},
		},
	})

	home, ok := m.Get("{{nav.0.label}}")
	require.True(t, ok)
	assert.Equal(t, "Home", home)
	about, ok := m.Get("{{nav.1.label}}")
	require.True(t, ok)
	assert.Equal(t, "About", about)
}

func TestExtractArrayOfScalars(t *testing.T) {
	m := Extract(map[string]any{
		"tags":  []any{"dogs", "cats"},
		"grid":  []any{[]any{int64(1), int64(2)}},
		"empty": []any{},
		"none":  map[string]any{},
	})

	assert.Equal(t, []string{"{{grid.0.0}}", "{{grid.0.1}}", "{{tags.0}}", "{{tags.1}}"}, m.Keys())
	v, _ := m.Get("{{tags.1}}")
	assert.Equal(t, "cats", v)
	v, _ = m.Get("{{grid.0.1}}")
	assert.Equal(t, "2", v)
}

func TestExtractScalarFormatting(t *testing.T) {
	m := Extract(map[string]any{
		"int":    int64(42),
		"float":  2.5,
		"whole":  float64(1234567),
		"yes":    true,
		"no":     false,
		"null":   nil,
		"string": "plain",
	})

	want := map[string]string{
		"{{int}}":    "42",
		"{{float}}":  "2.5",
		"{{whole}}":  "1234567",
		"{{yes}}":    "true",
		"{{no}}":     "false",
		"{{null}}":   "",
		"{{string}}": "plain",
	}
	for key, value := range want {
		got, ok := m.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, value, got, key)
	}
}

func TestExtractScalarRoot(t *testing.T) {
	assert.Equal(t, 0, Extract("just a string").Len())
	assert.Equal(t, 0, Extract(nil).Len())
}

func TestExtractTopLevelArray(t *testing.T) {
	m := Extract([]any{map[string]any{"a": "x"}, "y"})
	assert.Equal(t, []string{"{{0.a}}", "{{1}}"}, m.Keys())
}

func TestExtractKeysAreUniqueAndWellFormed(t *testing.T) {
	m := Extract(map[string]any{
		"site": map[string]any{"name": "A", "url": "https://a.example"},
		"nav": []any{
			map[string]any{"label": "Home", "children": []any{map[string]any{"label": "Dogs"}}},
			"plain",
		},
		"counts": []any{int64(1), 2.5, true, nil},
	})

	seen := make(map[string]bool)
	for _, key := range m.Keys() {
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
		assert.Regexp(t, placeholderPattern, key)
	}
	assert.Equal(t, len(seen), m.Len())
}

func TestExtractIsDeterministic(t *testing.T) {
	build := func() map[string]any {
		return map[string]any{
			"z": "last", "a": "first", "m": map[string]any{"y": "1", "b": "2"},
		}
	}
	first := Extract(build()).Keys()
	for range 20 {
		assert.Equal(t, first, Extract(build()).Keys())
	}
	assert.Equal(t, []string{"{{a}}", "{{m.b}}", "{{m.y}}", "{{z}}"}, first)
}

func TestReplacerSubstitutesEveryOccurrence(t *testing.T) {
	m := Extract(map[string]any{"site": map[string]any{"name": "Acme Rescue"}})
	out := m.Replacer().Replace("<h1>{{site.name}}</h1><title>{{site.name}}</title>")

	assert.Equal(t, "<h1>Acme Rescue</h1><title>Acme Rescue</title>", out)
	assert.NotContains(t, out, "{{site.name}}")
}

func TestReplacerTreatsKeysLiterally(t *testing.T) {
	m := Extract(map[string]any{"price (usd)": "$5", "a+b": "sum", "x": "{{a+b}}"})
	out := m.Replacer().Replace("{{price (usd)}} {{a+b}} {{x}} {{unknown}}")

	assert.Equal(t, "$5 sum {{a+b}} {{unknown}}", out)
}

func TestReplacerDistinguishesIndexPrefixes(t *testing.T) {
	items := make([]any, 12)
	for i := range items {
		items[i] = strings.Repeat("x", i)
	}
	m := Extract(map[string]any{"items": items})
	out := m.Replacer().Replace("[{{items.1}}][{{items.10}}][{{items.11}}]")
	assert.Equal(t, "[x][xxxxxxxxxx][xxxxxxxxxxx]", out)
}

func TestEmptyMapReplacerIsIdentity(t *testing.T) {
	m := Extract(map[string]any{})
	assert.Equal(t, "{{site.name}}", m.Replacer().Replace("{{site.name}}"))
}

func TestFormatScalarBigNumbers(t *testing.T) {
	n, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, "123456789012345678901234567890", FormatScalar(n))
	assert.Equal(t, "7", FormatScalar(7))
}

func TestEntriesReturnsCopy(t *testing.T) {
	m := Extract(map[string]any{"a": "1"})
	entries := m.Entries()
	entries[0].Value = "changed"
	v, _ := m.Get("{{a}}")
	assert.Equal(t, "1", v)
}
