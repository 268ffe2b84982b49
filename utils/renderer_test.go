package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBindings() Bindings {
	return Bindings{
		Name:          "Sarah Johnson",
		Company:       "TechCorp",
		SenderName:    "James Wilson",
		SenderCompany: "Mailcraft",
	}
}

func TestRenderHTMLDefaults(t *testing.T) {
	renderer := NewTemplateRenderer()
	html, err := renderer.RenderHTML("professional_partnership", ParseCustomizations(nil), sampleBindings(),
		"First paragraph.\n\nSecond paragraph.")
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Hi Sarah Johnson,")
	assert.Contains(t, html, "Revolutionizing TechCorp with AI-Powered Solutions")
	assert.Contains(t, html, "Schedule Partnership Discussion")
	assert.Contains(t, html, "#28a745")
	assert.Contains(t, html, "First paragraph.")
	assert.Contains(t, html, "Second paragraph.")
	// Signature defaults carry escaped newlines that must resolve to real ones
	assert.Contains(t, html, "Best regards,\nJames Wilson\nMailcraft")
	assert.NotContains(t, html, `\n`)
}

func TestRenderHTMLUnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()
	_, err := renderer.RenderHTML("nope", ParseCustomizations(nil), sampleBindings(), "")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestRenderHTMLCustomizationsOverrideDefaults(t *testing.T) {
	renderer := NewTemplateRenderer()
	cs := ParseCustomizations(map[string]interface{}{
		"headerTitle": "Custom Header for {company}",
		"customizations": map[string]interface{}{
			"buttonText":   "Nested Button",
			"primaryColor": "#000000",
		},
	})

	html, err := renderer.RenderHTML("modern_tech", cs, sampleBindings(), "Body.")
	require.NoError(t, err)

	assert.Contains(t, html, "Custom Header for TechCorp")
	assert.Contains(t, html, "Nested Button")
	assert.Contains(t, html, "#000000")
	assert.NotContains(t, html, "Transform Your Business with AI</h1>")
}

func TestRenderHTMLFontSizeAliasing(t *testing.T) {
	renderer := NewTemplateRenderer()

	// textSize override flows into fontSize when fontSize is not set
	cs := ParseCustomizations(map[string]interface{}{"textSize": "18px"})
	html, err := renderer.RenderHTML("modern_tech", cs, sampleBindings(), "Body.")
	require.NoError(t, err)
	assert.Contains(t, html, "font-size: 18px")

	// an explicit fontSize wins for paragraph text
	cs = ParseCustomizations(map[string]interface{}{"textSize": "18px", "fontSize": "20px"})
	html, err = renderer.RenderHTML("modern_tech", cs, sampleBindings(), "Body.")
	require.NoError(t, err)
	assert.Contains(t, html, "font-size: 20px")
}

func TestRenderHTMLMediaAnchors(t *testing.T) {
	renderer := NewTemplateRenderer()
	cs := ParseCustomizations(map[string]interface{}{
		"customMedia": []interface{}{
			map[string]interface{}{"id": "m1", "url": "https://cdn.example.com/top.png", "insertAfter": "start"},
			map[string]interface{}{"id": "m2", "url": "https://cdn.example.com/p1.png", "insertAfter": "paragraph-1", "width": "200px", "alignment": "left"},
			map[string]interface{}{"id": "m3", "url": "https://cdn.example.com/bottom.png"},
		},
	})

	html, err := renderer.RenderHTML("professional_partnership", cs, sampleBindings(),
		"One.\n\nTwo.\n\nThree.")
	require.NoError(t, err)

	assert.Contains(t, html, "https://cdn.example.com/top.png")
	assert.Contains(t, html, "https://cdn.example.com/p1.png")
	assert.Contains(t, html, "width: 200px")
	assert.Contains(t, html, "text-align: left")
	assert.Contains(t, html, "https://cdn.example.com/bottom.png")

	// start media renders before the header, default-anchor media at the end
	assert.Less(t, strings.Index(html, "top.png"), strings.Index(html, "<h1"))
	assert.Greater(t, strings.Index(html, "bottom.png"), strings.Index(html, "One."))
}

func TestRenderHTMLCustomComponents(t *testing.T) {
	renderer := NewTemplateRenderer()
	cs := ParseCustomizations(map[string]interface{}{
		"customComponents": []interface{}{
			map[string]interface{}{"id": "c1", "type": "banner", "properties": map[string]interface{}{"text": "Limited offer"}},
			map[string]interface{}{"id": "c2", "type": "cta", "properties": map[string]interface{}{"text": "Act Now", "url": "https://example.com/go"}},
			map[string]interface{}{"id": "c3", "type": "unsupported"},
		},
	})

	html, err := renderer.RenderHTML("product_launch", cs, sampleBindings(), "Body.")
	require.NoError(t, err)

	assert.Contains(t, html, "Limited offer")
	assert.Contains(t, html, "Act Now")
	assert.Contains(t, html, `href="https://example.com/go"`)
}

func TestRenderHTMLEmptyBody(t *testing.T) {
	renderer := NewTemplateRenderer()
	html, err := renderer.RenderHTML("professional_partnership", ParseCustomizations(nil), sampleBindings(), "")
	require.NoError(t, err)
	assert.Contains(t, html, "Email content will be inserted here")
}

func TestRenderPlainText(t *testing.T) {
	renderer := NewTemplateRenderer()
	text, err := renderer.RenderPlainText("executive_outreach", ParseCustomizations(nil), sampleBindings(),
		"Paragraph one.\n\nParagraph two.")
	require.NoError(t, err)

	assert.Contains(t, text, "Strategic Partnership Proposal for TechCorp")
	assert.Contains(t, text, "Dear Sarah Johnson,")
	assert.Contains(t, text, "Paragraph one.")
	assert.Contains(t, text, "Respectfully,\nJames Wilson\nMailcraft")
	assert.NotContains(t, text, "<")
}

func TestSplitParagraphs(t *testing.T) {
	got := splitParagraphs("One\nline wrapped.\n\n\n\nTwo.\n\n  \n")
	assert.Equal(t, []string{"One line wrapped.", "Two."}, got)
}

func TestResolveTemplateConfigFeatures(t *testing.T) {
	template, err := LookupTemplate("modern_tech")
	require.NoError(t, err)

	// Defaults come through as-is
	config := ResolveTemplateConfig(template, ParseCustomizations(nil), sampleBindings())
	assert.Equal(t, []string{"40% Cost Reduction", "10x Faster Processing", "100% Compliance", "Global Scalability"}, config.Features)

	// JSON-decoded overrides arrive as []interface{} and are converted
	cs := ParseCustomizations(map[string]interface{}{
		"features": []interface{}{"One", "Two"},
	})
	config = ResolveTemplateConfig(template, cs, sampleBindings())
	assert.Equal(t, []string{"One", "Two"}, config.Features)
}
