package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomizationsSplitsVariants(t *testing.T) {
	cs := ParseCustomizations(map[string]interface{}{
		"headerTitle": "Flat Title",
		"customizations": map[string]interface{}{
			"headerTitle": "Nested Title",
			"buttonText":  "Nested Button",
		},
	})

	assert.Equal(t, "Flat Title", cs.Flat["headerTitle"])
	assert.Equal(t, "Nested Title", cs.Nested["headerTitle"])
	assert.NotContains(t, cs.Flat, "customizations")
}

func TestResolveOrder(t *testing.T) {
	cs := ParseCustomizations(map[string]interface{}{
		"headerTitle": "flat",
		"customizations": map[string]interface{}{
			"headerTitle": "nested",
			"buttonText":  "nested-button",
		},
	})

	// Flat wins over nested, nested wins over fallback
	assert.Equal(t, "flat", cs.Resolve("headerTitle", "default"))
	assert.Equal(t, "nested-button", cs.Resolve("buttonText", "default"))
	assert.Equal(t, "default", cs.Resolve("mainHeading", "default"))
}

func TestResolveNilValueFallsThrough(t *testing.T) {
	cs := ParseCustomizations(map[string]interface{}{
		"headerTitle": nil,
		"customizations": map[string]interface{}{
			"headerTitle": "nested",
		},
	})

	assert.Equal(t, "nested", cs.Resolve("headerTitle", "default"))
}

func TestResolveStringRejectsNonStrings(t *testing.T) {
	cs := ParseCustomizations(map[string]interface{}{
		"textSize": 16,
	})

	assert.Equal(t, "16px", cs.ResolveString("textSize", "16px"))
}

func TestEmptyCustomizationSetResolvesDefaults(t *testing.T) {
	cs := ParseCustomizations(nil)
	assert.Equal(t, "fallback", cs.Resolve("anything", "fallback"))
	assert.Nil(t, cs.CustomMedia())
	assert.Nil(t, cs.CustomComponents())
}

func TestCustomMediaDecoding(t *testing.T) {
	cs := ParseCustomizations(map[string]interface{}{
		"customMedia": []interface{}{
			map[string]interface{}{"id": "m1", "url": "https://cdn.example.com/a.png", "insertAfter": "greeting"},
			map[string]interface{}{"id": "m2", "url": "https://cdn.example.com/b.png", "insertAfter": "nowhere"},
			map[string]interface{}{"id": "m3", "url": "https://cdn.example.com/c.png"},
		},
	})

	media := cs.CustomMedia()
	require.Len(t, media, 2)
	assert.Equal(t, "m1", media[0].ID)
	assert.Equal(t, AnchorGreeting, media[0].InsertAfter)
	// Missing anchor defaults to end; unknown anchor is dropped
	assert.Equal(t, "m3", media[1].ID)
	assert.Equal(t, AnchorEnd, media[1].InsertAfter)
}

func TestCustomComponentsDropUnknownTypes(t *testing.T) {
	cs := ParseCustomizations(map[string]interface{}{
		"customComponents": []interface{}{
			map[string]interface{}{"id": "c1", "type": "cta", "properties": map[string]interface{}{"text": "Go"}},
			map[string]interface{}{"id": "c2", "type": "carousel"},
			map[string]interface{}{"id": "c3", "type": "banner"},
		},
	})

	components := cs.CustomComponents()
	require.Len(t, components, 2)
	assert.Equal(t, "cta", components[0].Type)
	assert.Equal(t, "banner", components[1].Type)
}

func TestAnchorVocabulary(t *testing.T) {
	for _, anchor := range MediaAnchors {
		assert.True(t, IsValidAnchor(anchor), anchor)
	}
	assert.False(t, IsValidAnchor("header"))
	assert.False(t, IsValidAnchor(""))

	assert.True(t, IsValidComponentType("countdown"))
	assert.False(t, IsValidComponentType("video"))
}
