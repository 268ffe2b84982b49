package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTemplate(t *testing.T) {
	template, err := LookupTemplate("professional_partnership")
	require.NoError(t, err)
	assert.Equal(t, "professional_partnership", template.ID)
	assert.Equal(t, "partnership", template.Category)
	assert.Equal(t, 3, template.Structure.Paragraphs)
}

func TestLookupTemplateUnknownID(t *testing.T) {
	_, err := LookupTemplate("vintage_newsletter")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.Contains(t, err.Error(), "vintage_newsletter")
}

func TestLookupTemplateEmptyID(t *testing.T) {
	_, err := LookupTemplate("")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestTemplateIDsOrderIsStable(t *testing.T) {
	assert.Equal(t, TemplateIDs(""), TemplateIDs(""))
	assert.Len(t, TemplateIDs(""), 6)
	assert.Equal(t, "professional_partnership", TemplateIDs("")[0])
}

func TestTemplateIDsCategoryFilter(t *testing.T) {
	assert.Equal(t, []string{"professional_partnership", "executive_outreach"}, TemplateIDs("partnership"))
	assert.Equal(t, []string{"event_invitation"}, TemplateIDs("event"))
	assert.Empty(t, TemplateIDs("newsletter"))
}

func TestDefaultTemplateExists(t *testing.T) {
	_, err := LookupTemplate(DefaultTemplateID)
	assert.NoError(t, err)
}

func TestEveryTemplateHasCompleteDefaults(t *testing.T) {
	required := []string{
		"subject", "greeting", "signature", "headerTitle", "mainHeading",
		"buttonText", "buttonUrl", "primaryColor", "accentColor",
		"testimonialText", "testimonialAuthor", "textSize", "textColor",
		"fontWeight", "fontStyle", "features",
	}

	for _, template := range AllTemplates() {
		for _, field := range required {
			assert.Contains(t, template.Defaults, field, "%s missing %s", template.ID, field)
		}
		assert.NotEmpty(t, template.PromptHint, template.ID)
		assert.Positive(t, template.Structure.Paragraphs, template.ID)
	}
}

func TestLookupTemplateReturnsCopy(t *testing.T) {
	first, err := LookupTemplate("modern_tech")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := LookupTemplate("modern_tech")
	require.NoError(t, err)
	assert.Equal(t, "Modern Tech", second.Name)
}
