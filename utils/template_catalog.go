package utils

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplate is returned when a template id is not in the catalog.
// There is deliberately no default template: consumers must surface the error
// so template selection stays an explicit user decision.
var ErrUnknownTemplate = errors.New("unknown template")

// DefaultTemplateID is used only when rotation is disabled and no explicit
// template was pinned.
const DefaultTemplateID = "professional_partnership"

// TemplateStructure describes the generated-content shape of a template.
type TemplateStructure struct {
	Paragraphs int      `json:"paragraphs"`
	Components []string `json:"components"`
}

// Template is an immutable catalog entry. Entries are created at process
// start from static data and never mutated; customization happens through
// CustomizationSet overlays, not by editing the catalog.
type Template struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Structure   TemplateStructure `json:"structure"`

	// PromptHint steers the text generator toward this template's paragraph
	// structure and tone.
	PromptHint string `json:"-"`

	// Defaults holds every customizable field's default value. All rendered
	// fields must be read through CustomizationSet.Resolve against this map.
	Defaults map[string]interface{} `json:"defaults"`
}

// templateOrder fixes the rotation order of the catalog.
var templateOrder = []string{
	"professional_partnership",
	"modern_tech",
	"executive_outreach",
	"product_launch",
	"consultative_sales",
	"event_invitation",
}

var emailTemplates = map[string]Template{
	"professional_partnership": {
		ID:          "professional_partnership",
		Name:        "Professional Partnership",
		Description: "Clean, minimal design perfect for B2B partnership outreach",
		Category:    "partnership",
		Structure: TemplateStructure{
			Paragraphs: 3,
			Components: []string{"logo", "cta_button", "testimonial"},
		},
		PromptHint: "Write exactly 3 paragraphs: why you are reaching out to {company}, the mutual value of a partnership, and next steps.",
		Defaults: map[string]interface{}{
			"subject":           "Partnership Opportunity with {company}",
			"greeting":          "Hi {name},",
			"signature":         "Best regards,\\n{senderName}\\n{senderCompany}",
			"headerTitle":       "Building Strategic Partnerships",
			"mainHeading":       "Revolutionizing {company} with AI-Powered Solutions",
			"buttonText":        "Schedule Partnership Discussion",
			"buttonUrl":         "https://calendly.com/partnership",
			"primaryColor":      "#28a745",
			"accentColor":       "#1e7e34",
			"testimonialText":   "\"This partnership exceeded our expectations. We saw immediate results in market expansion and lead quality.\"",
			"testimonialAuthor": "Sarah Chen, CEO at GrowthTech",
			"textSize":          "16px",
			"textColor":         "#333333",
			"fontWeight":        "normal",
			"fontStyle":         "normal",
			"features":          []string{"40% Cost Reduction", "10x Faster Processing", "100% Compliance", "Global Scalability"},
		},
	},
	"modern_tech": {
		ID:          "modern_tech",
		Name:        "Modern Tech",
		Description: "Bold gradient design for technology-forward companies",
		Category:    "technology",
		Structure: TemplateStructure{
			Paragraphs: 3,
			Components: []string{"header_banner", "feature_grid", "cta_button", "social_proof"},
		},
		PromptHint: "Write exactly 3 paragraphs pitching a modern AI platform to {company}: hook, capability overview, and an invitation to a demo.",
		Defaults: map[string]interface{}{
			"subject":           "Transform Your Business with AI-Powered Solutions",
			"greeting":          "Hi {name},",
			"signature":         "Best regards,\\n{senderName}\\n{senderCompany}",
			"headerTitle":       "Transform Your Business with AI",
			"mainHeading":       "Revolutionizing {company} with AI-Powered Solutions",
			"buttonText":        "Schedule Your Free Demo",
			"buttonUrl":         "https://calendly.com/meeting",
			"primaryColor":      "#3b82f6",
			"accentColor":       "#1d4ed8",
			"testimonialText":   "\"This solution transformed our operations. We saw remarkable results in just weeks.\"",
			"testimonialAuthor": "CTO, Industry Leader",
			"textSize":          "16px",
			"textColor":         "#333333",
			"fontWeight":        "normal",
			"fontStyle":         "normal",
			"features":          []string{"40% Cost Reduction", "10x Faster Processing", "100% Compliance", "Global Scalability"},
		},
	},
	"executive_outreach": {
		ID:          "executive_outreach",
		Name:        "Executive Outreach",
		Description: "Authoritative layout aimed at C-level decision makers",
		Category:    "partnership",
		Structure: TemplateStructure{
			Paragraphs: 4,
			Components: []string{"executive_header", "stats_showcase", "testimonial"},
		},
		PromptHint: "Write exactly 4 concise executive-level paragraphs for {company}: strategic context, opportunity, proof, and a direct ask.",
		Defaults: map[string]interface{}{
			"subject":           "Strategic Partnership Proposal for {company}",
			"greeting":          "Dear {name},",
			"signature":         "Respectfully,\\n{senderName}\\n{senderCompany}",
			"headerTitle":       "Executive Partnership Proposal",
			"mainHeading":       "A Strategic Opportunity for {company}",
			"buttonText":        "Request Executive Briefing",
			"buttonUrl":         "https://calendly.com/executive-briefing",
			"primaryColor":      "#7c3aed",
			"accentColor":       "#5b21b6",
			"testimonialText":   "\"Their team understood our board-level priorities from day one.\"",
			"testimonialAuthor": "Chairman, Fortune 500 Company",
			"textSize":          "16px",
			"textColor":         "#1f2937",
			"fontWeight":        "normal",
			"fontStyle":         "normal",
			"features":          []string{"Board-Ready Reporting", "Enterprise Security", "Dedicated Success Team"},
		},
	},
	"product_launch": {
		ID:          "product_launch",
		Name:        "Product Launch",
		Description: "High-energy announcement layout with countdown and feature highlights",
		Category:    "product",
		Structure: TemplateStructure{
			Paragraphs: 3,
			Components: []string{"product_hero", "feature_highlights", "countdown_timer", "cta_button"},
		},
		PromptHint: "Write exactly 3 enthusiastic paragraphs announcing early access for {company}: the launch, what it unlocks, and why to act now.",
		Defaults: map[string]interface{}{
			"subject":           "🚀 Exclusive Early Access: Revolutionary New Platform",
			"greeting":          "Hi {name},",
			"signature":         "Cheers,\\n{senderName}\\n{senderCompany}",
			"headerTitle":       "Introducing Revolutionary Solutions",
			"mainHeading":       "Early Access for {company}",
			"buttonText":        "Claim Early Access",
			"buttonUrl":         "https://yourcompany.com/early-access",
			"primaryColor":      "#f59e0b",
			"accentColor":       "#b45309",
			"testimonialText":   "\"We joined the beta and never looked back.\"",
			"testimonialAuthor": "Head of Product, Beta Customer",
			"textSize":          "16px",
			"textColor":         "#333333",
			"fontWeight":        "normal",
			"fontStyle":         "normal",
			"features":          []string{"Launch Pricing", "Priority Onboarding", "Lifetime Updates"},
		},
	},
	"consultative_sales": {
		ID:          "consultative_sales",
		Name:        "Consultative Sales",
		Description: "Expert-positioning layout built around methodology and case studies",
		Category:    "sales",
		Structure: TemplateStructure{
			Paragraphs: 4,
			Components: []string{"expert_header", "methodology", "case_study", "cta_consultation"},
		},
		PromptHint: "Write exactly 4 consultative paragraphs for {company}: observed challenge, methodology, comparable case study, and a low-pressure next step.",
		Defaults: map[string]interface{}{
			"subject":           "Strategic Assessment Opportunity for {company}",
			"greeting":          "Hello {name},",
			"signature":         "Best,\\n{senderName}\\n{senderCompany}",
			"headerTitle":       "Strategic Business Partnership",
			"mainHeading":       "A Tailored Assessment for {company}",
			"buttonText":        "Book a Free Consultation",
			"buttonUrl":         "https://calendly.com/consultation",
			"primaryColor":      "#0d9488",
			"accentColor":       "#0f766e",
			"testimonialText":   "\"The assessment alone was worth the engagement.\"",
			"testimonialAuthor": "VP Operations, Regional Leader",
			"textSize":          "16px",
			"textColor":         "#333333",
			"fontWeight":        "normal",
			"fontStyle":         "normal",
			"features":          []string{"Proven Methodology", "Industry Benchmarks", "Actionable Roadmap"},
		},
	},
	"event_invitation": {
		ID:          "event_invitation",
		Name:        "Event Invitation",
		Description: "Invitation layout with agenda timeline and speaker showcase",
		Category:    "event",
		Structure: TemplateStructure{
			Paragraphs: 3,
			Components: []string{"event_hero", "agenda_timeline", "speaker_showcase", "registration_cta"},
		},
		PromptHint: "Write exactly 3 inviting paragraphs for {name} at {company}: the event and why it matters, what they will learn, and how to register.",
		Defaults: map[string]interface{}{
			"subject":           "You're Invited: Future of Business Summit",
			"greeting":          "Hi {name},",
			"signature":         "See you there,\\n{senderName}\\n{senderCompany}",
			"headerTitle":       "Industry Innovation Summit",
			"mainHeading":       "Join Industry Leaders from Companies Like {company}",
			"buttonText":        "Reserve Your Seat",
			"buttonUrl":         "https://yourcompany.com/summit",
			"primaryColor":      "#dc2626",
			"accentColor":       "#991b1b",
			"testimonialText":   "\"Best industry event I attended last year.\"",
			"testimonialAuthor": "Director of Innovation, Summit Attendee",
			"textSize":          "16px",
			"textColor":         "#333333",
			"fontWeight":        "normal",
			"fontStyle":         "normal",
			"features":          []string{"20+ Speakers", "Hands-On Workshops", "Networking Sessions"},
		},
	},
}

// LookupTemplate returns the catalog entry for id. A missing id is a hard
// error, never a silent fallback.
func LookupTemplate(id string) (*Template, error) {
	template, ok := emailTemplates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	return &template, nil
}

// TemplateIDs returns the catalog's template ids in rotation order,
// optionally filtered to a category. An empty category means all templates.
func TemplateIDs(category string) []string {
	if category == "" {
		ids := make([]string, len(templateOrder))
		copy(ids, templateOrder)
		return ids
	}
	var ids []string
	for _, id := range templateOrder {
		if emailTemplates[id].Category == category {
			ids = append(ids, id)
		}
	}
	return ids
}

// AllTemplates returns the catalog entries in rotation order.
func AllTemplates() []Template {
	templates := make([]Template, 0, len(templateOrder))
	for _, id := range templateOrder {
		templates = append(templates, emailTemplates[id])
	}
	return templates
}
