package utils

import (
	"fmt"
	"strings"
)

// TemplateConfig is the flat, fully resolved configuration the renderer
// consumes. Every field went through the flat > nested > default lookup.
type TemplateConfig struct {
	Subject           string
	Greeting          string
	Signature         string
	Logo              string
	HeaderTitle       string
	MainHeading       string
	ButtonText        string
	ButtonURL         string
	PrimaryColor      string
	AccentColor       string
	TestimonialText   string
	TestimonialAuthor string
	TextSize          string
	TextColor         string
	FontWeight        string
	FontStyle         string
	// FontSize aliases TextSize: same default, independently overridable.
	FontSize string
	Features []string

	Media      []MediaItem
	Components []CustomComponent
}

// ResolveTemplateConfig merges a customization set over a template's defaults
// and substitutes placeholders into the text fields.
func ResolveTemplateConfig(template *Template, cs CustomizationSet, bindings Bindings) TemplateConfig {
	str := func(field string) string {
		fallback, _ := template.Defaults[field].(string)
		return cs.ResolveString(field, fallback)
	}
	sub := func(field string) string {
		return Substitute(str(field), bindings)
	}

	textSize := str("textSize")

	config := TemplateConfig{
		Subject:           sub("subject"),
		Greeting:          sub("greeting"),
		Signature:         sub("signature"),
		Logo:              str("logo"),
		HeaderTitle:       sub("headerTitle"),
		MainHeading:       sub("mainHeading"),
		ButtonText:        sub("buttonText"),
		ButtonURL:         str("buttonUrl"),
		PrimaryColor:      str("primaryColor"),
		AccentColor:       str("accentColor"),
		TestimonialText:   sub("testimonialText"),
		TestimonialAuthor: sub("testimonialAuthor"),
		TextSize:          textSize,
		TextColor:         str("textColor"),
		FontWeight:        str("fontWeight"),
		FontStyle:         str("fontStyle"),
		FontSize:          cs.ResolveString("fontSize", textSize),
		Media:             cs.CustomMedia(),
		Components:        cs.CustomComponents(),
	}

	if features, ok := cs.Resolve("features", template.Defaults["features"]).([]string); ok {
		config.Features = features
	} else if raw := cs.Resolve("features", template.Defaults["features"]); raw != nil {
		var features []string
		if err := remarshal(raw, &features); err == nil {
			config.Features = features
		}
	}

	return config
}

// TemplateRenderer produces the HTML and plain-text renditions of a catalog
// template with customizations applied. It is the server-side twin of the
// browser preview, so both must resolve fields through the same path.
type TemplateRenderer struct{}

func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

// RenderHTML renders the template identified by templateID with the given
// customizations, bindings and generated body paragraphs.
func (tr *TemplateRenderer) RenderHTML(templateID string, cs CustomizationSet, bindings Bindings, body string) (string, error) {
	template, err := LookupTemplate(templateID)
	if err != nil {
		return "", err
	}
	config := ResolveTemplateConfig(template, cs, bindings)

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	b.WriteString(`<title>` + config.Subject + `</title></head>`)
	b.WriteString(`<body style="margin: 0; padding: 20px; background-color: #f5f5f5; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;">`)
	b.WriteString(`<div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1);">`)

	tr.writeMediaAt(&b, config, AnchorStart)

	// Header banner
	b.WriteString(fmt.Sprintf(`<div style="background: linear-gradient(135deg, %s 0%%, %s 100%%); padding: 30px; text-align: center; color: white;">`, config.PrimaryColor, config.AccentColor))
	if config.Logo != "" {
		b.WriteString(`<img src="` + config.Logo + `" alt="Logo" style="max-width: 180px; margin-bottom: 10px;">`)
	}
	b.WriteString(`<h1 style="margin: 0; font-size: 24px;">` + config.HeaderTitle + `</h1>`)
	b.WriteString(`</div>`)
	tr.writeMediaAt(&b, config, AnchorLogo)

	b.WriteString(`<div style="padding: 40px 30px;">`)
	b.WriteString(fmt.Sprintf(`<p style="margin: 0 0 20px 0; color: %s; font-size: %s;">%s</p>`, config.TextColor, config.TextSize, config.Greeting))
	tr.writeMediaAt(&b, config, AnchorGreeting)

	b.WriteString(fmt.Sprintf(`<h2 style="color: %s; margin: 0 0 20px 0;">%s</h2>`, config.TextColor, config.MainHeading))

	// Generated paragraphs with per-paragraph media anchors
	paragraphs := splitParagraphs(body)
	if len(paragraphs) == 0 {
		b.WriteString(`<p style="color: #999;">Email content will be inserted here...</p>`)
	}
	for i, paragraph := range paragraphs {
		b.WriteString(fmt.Sprintf(
			`<p style="font-size: %s; line-height: 1.6; color: %s; font-weight: %s; font-style: %s; margin: 0 0 20px 0;">%s</p>`,
			config.FontSize, config.TextColor, config.FontWeight, config.FontStyle, paragraph,
		))
		if i < 3 {
			tr.writeMediaAt(&b, config, fmt.Sprintf("paragraph-%d", i+1))
		}
	}

	// CTA button
	b.WriteString(`<div style="text-align: center; margin: 35px 0;">`)
	b.WriteString(fmt.Sprintf(
		`<a href="%s" style="display: inline-block; background: %s; color: white; padding: 14px 30px; text-decoration: none; border-radius: 6px; font-weight: 600; font-size: 16px;">%s</a>`,
		config.ButtonURL, config.PrimaryColor, config.ButtonText,
	))
	b.WriteString(`</div>`)
	tr.writeMediaAt(&b, config, AnchorCTA)

	// Testimonial
	if config.TestimonialText != "" {
		b.WriteString(fmt.Sprintf(
			`<div style="background: #f8f9fa; border-left: 4px solid %s; padding: 20px; margin: 30px 0; border-radius: 0 6px 6px 0;">`,
			config.PrimaryColor,
		))
		b.WriteString(`<blockquote style="margin: 0; font-style: italic; color: #495057;">` + config.TestimonialText + `</blockquote>`)
		b.WriteString(`<cite style="display: block; text-align: right; margin-top: 12px; color: #6c757d; font-weight: 600;">— ` + config.TestimonialAuthor + `</cite>`)
		b.WriteString(`</div>`)
	}
	tr.writeMediaAt(&b, config, AnchorTestimonial)

	// Custom layout components
	for _, component := range config.Components {
		tr.writeComponent(&b, config, component)
	}

	// Signature
	b.WriteString(`<div style="margin-top: 40px; padding-top: 20px; border-top: 1px solid #e9ecef;">`)
	b.WriteString(`<div style="color: #555; line-height: 1.5; white-space: pre-line;">` + config.Signature + `</div>`)
	b.WriteString(`</div>`)
	tr.writeMediaAt(&b, config, AnchorSignature)

	b.WriteString(`</div>`)
	tr.writeMediaAt(&b, config, AnchorEnd)
	b.WriteString(`</div></body></html>`)

	return b.String(), nil
}

// RenderPlainText renders the text-only rendition of the same configuration.
func (tr *TemplateRenderer) RenderPlainText(templateID string, cs CustomizationSet, bindings Bindings, body string) (string, error) {
	template, err := LookupTemplate(templateID)
	if err != nil {
		return "", err
	}
	config := ResolveTemplateConfig(template, cs, bindings)

	var b strings.Builder
	b.WriteString(config.Subject + "\n\n")
	b.WriteString(config.Greeting + "\n\n")
	if body != "" {
		b.WriteString(body + "\n\n")
	}
	b.WriteString(config.Signature)
	return b.String(), nil
}

func (tr *TemplateRenderer) writeMediaAt(b *strings.Builder, config TemplateConfig, anchor string) {
	for _, media := range config.Media {
		if media.InsertAfter != anchor {
			continue
		}
		width := valueOr(media.Width, "400px")
		alignment := valueOr(media.Alignment, "center")
		margin := "0 auto"
		switch alignment {
		case "left":
			margin = "0"
		case "right":
			margin = "0 0 0 auto"
		}
		b.WriteString(fmt.Sprintf(
			`<div style="margin: 20px 0; text-align: %s;"><img src="%s" alt="Custom media" style="width: %s; max-width: 100%%; display: block; margin: %s;"></div>`,
			alignment, media.URL, width, margin,
		))
	}
}

func (tr *TemplateRenderer) writeComponent(b *strings.Builder, config TemplateConfig, component CustomComponent) {
	prop := func(key, fallback string) string {
		if v, ok := component.Properties[key].(string); ok && v != "" {
			return v
		}
		return fallback
	}

	switch component.Type {
	case "logo":
		b.WriteString(`<div style="text-align: center; padding: 20px;"><img src="` + prop("logoUrl", "") + `" alt="` + prop("altText", "Logo") + `" style="max-width: 180px;"></div>`)
	case "greeting":
		b.WriteString(`<p style="font-size: 16px; margin: 20px 0;">` + prop("text", config.Greeting) + `</p>`)
	case "paragraph":
		b.WriteString(`<p style="font-size: ` + config.FontSize + `; line-height: 1.6; color: ` + config.TextColor + `; margin: 20px 0;">` + prop("text", "") + `</p>`)
	case "cta":
		b.WriteString(`<div style="text-align: center; margin: 30px 0;"><a href="` + prop("url", config.ButtonURL) + `" style="display: inline-block; background: ` + prop("backgroundColor", config.PrimaryColor) + `; color: white; padding: 14px 30px; text-decoration: none; border-radius: 6px; font-weight: 600;">` + prop("text", config.ButtonText) + `</a></div>`)
	case "testimonial":
		b.WriteString(`<div style="background: #f8f9fa; border-left: 4px solid ` + prop("borderColor", config.PrimaryColor) + `; padding: 20px; margin: 30px 0;"><blockquote style="margin: 0; font-style: italic;">` + prop("quote", "") + `</blockquote><cite style="display: block; text-align: right; margin-top: 12px;">— ` + prop("author", "") + `</cite></div>`)
	case "features":
		b.WriteString(`<table style="width: 100%; margin: 30px 0;"><tr>`)
		for _, feature := range config.Features {
			b.WriteString(`<td style="padding: 10px; text-align: center; font-size: 14px; color: ` + config.TextColor + `;">✓ ` + feature + `</td>`)
		}
		b.WriteString(`</tr></table>`)
	case "stats":
		b.WriteString(`<div style="display: flex; justify-content: space-around; margin: 30px 0; text-align: center;"><div><strong style="font-size: 24px; color: ` + config.PrimaryColor + `;">` + prop("value", "") + `</strong><p style="margin: 5px 0 0; color: #6c757d;">` + prop("label", "") + `</p></div></div>`)
	case "countdown":
		b.WriteString(`<div style="text-align: center; margin: 30px 0; padding: 20px; background: #fef3c7; border-radius: 8px;"><strong>` + prop("label", "Offer ends soon") + `</strong><p style="margin: 5px 0 0; font-size: 20px;">` + prop("deadline", "") + `</p></div>`)
	case "banner":
		b.WriteString(`<div style="background: ` + prop("backgroundColor", config.PrimaryColor) + `; color: white; text-align: center; padding: 15px; margin: 20px 0;">` + prop("text", "") + `</div>`)
	}
}

func splitParagraphs(body string) []string {
	var paragraphs []string
	for _, chunk := range strings.Split(body, "\n\n") {
		chunk = strings.TrimSpace(strings.ReplaceAll(chunk, "\n", " "))
		if chunk != "" {
			paragraphs = append(paragraphs, chunk)
		}
	}
	return paragraphs
}
