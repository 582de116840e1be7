package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
)

func sampleDocument() *Document {
	return NewDocument(map[string]any{
		"site": map[string]any{"name": "Acme Rescue"},
		"nav": []any{
			map[string]any{"label": "Home"},
		},
		"phone": "555-0100",
	})
}

func TestSetOverridesExistingValue(t *testing.T) {
	doc := sampleDocument()
	require.NoError(t, doc.Set("site.name", "Happy Paws"))

	name, _ := doc.LookupString("site.name")
	assert.Equal(t, "Happy Paws", name)
}

func TestSetCreatesMissingObjects(t *testing.T) {
	doc := sampleDocument()
	require.NoError(t, doc.Set("social.facebook.handle", "acme"))

	handle, ok := doc.LookupString("social.facebook.handle")
	require.True(t, ok)
	assert.Equal(t, "acme", handle)
}

func TestSetArrayElement(t *testing.T) {
	doc := sampleDocument()
	require.NoError(t, doc.Set("nav.0.label", "Start"))

	label, _ := doc.LookupString("nav.0.label")
	assert.Equal(t, "Start", label)
}

func TestSetRejectsBadPaths(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"empty segment":  "site..name",
		"out of range":   "nav.3.label",
		"non index":      "nav.first.label",
		"through scalar": "phone.area",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			err := sampleDocument().Set(path, "x")
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestSetOnNilRootCreatesObject(t *testing.T) {
	doc := NewDocument(nil)
	require.NoError(t, doc.Set("site.name", "Acme"))
	name, _ := doc.LookupString("site.name")
	assert.Equal(t, "Acme", name)
}

func TestSetRequiresObjectRoot(t *testing.T) {
	doc := NewDocument([]any{"a"})
	err := doc.Set("0", "b")
	require.Error(t, err)
}

func TestLookupStringRejectsNonStrings(t *testing.T) {
	doc := NewDocument(map[string]any{"count": int64(3)})
	_, ok := doc.LookupString("count")
	assert.False(t, ok)
}
