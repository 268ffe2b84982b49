package utils

import (
	"context"
	"regexp"
	"strings"

	"mailcraft/models"

	"github.com/sirupsen/logrus"
)

// Template-used tags on a generated email.
const (
	TemplateUsedAI       = "ai_personalized"
	TemplateUsedUser     = "user_template"
	TemplateUsedFallback = "fallback"
)

// SenderInfo identifies who the email is sent as.
type SenderInfo struct {
	SenderName  string `json:"senderName"`
	SenderEmail string `json:"senderEmail"`
}

// BusinessContext carries the campaign-level sender/company information the
// generator personalizes against.
type BusinessContext struct {
	CompanyName   string     `json:"companyName"`
	Industry      string     `json:"industry"`
	Product       string     `json:"product"`
	TargetWebsite string     `json:"targetWebsite"`
	Sender        SenderInfo `json:"senderInfo"`
}

// InlineTemplate is a fully user-built HTML template. When supplied, text
// generation is skipped entirely and placeholders are substituted directly.
type InlineTemplate struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// EmailContent is the immutable result of one generation call.
type EmailContent struct {
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	HTML           string `json:"html"`
	TemplateUsed   string `json:"template_used"`
	ContentType    string `json:"content_type"`
	RecipientEmail string `json:"recipient_email"`
	SenderName     string `json:"sender_name"`
	SenderEmail    string `json:"sender_email"`
}

// GenerationResult always carries a usable email; generation-service failures
// are absorbed into the fallback path, never surfaced to the caller.
type GenerationResult struct {
	Success bool         `json:"success"`
	Email   EmailContent `json:"email"`
}

// PersonalizedEmailGenerator orchestrates template selection, text
// generation and HTML assembly for one prospect at a time.
type PersonalizedEmailGenerator struct {
	Ollama  *OllamaClient
	Rotator *TemplateRotator
	Logger  *logrus.Logger
}

func NewPersonalizedEmailGenerator(ollama *OllamaClient, rotator *TemplateRotator, logger *logrus.Logger) *PersonalizedEmailGenerator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PersonalizedEmailGenerator{
		Ollama:  ollama,
		Rotator: rotator,
		Logger:  logger,
	}
}

var (
	subjectLineRe = regexp.MustCompile(`(?im)^\s*subject:.*$`)
	blankLinesRe  = regexp.MustCompile(`\n\s*\n+`)
	nonLettersRe  = regexp.MustCompile(`[^a-zA-Z]+`)
)

// GeneratePersonalizedEmail produces subject, plain-text body and HTML body
// for one prospect. With an inline template it substitutes placeholders
// directly; otherwise it calls the text-generation service and falls back to
// canned content on any failure.
func (g *PersonalizedEmailGenerator) GeneratePersonalizedEmail(ctx context.Context, prospect *models.Prospect, business BusinessContext, campaignGoal string, inline *InlineTemplate) GenerationResult {
	senderName := g.resolveSenderName(prospect, business)
	senderEmail := g.resolveSenderEmail(prospect, business)
	companyName := valueOr(business.CompanyName, "Your Company")
	prospectName := prospectDisplayName(prospect)
	prospectCompany := prospectCompanyName(prospect)
	websiteURL := g.resolveCTAURL(prospect, business)

	if inline != nil && inline.HTML != "" {
		return g.generateFromUserTemplate(prospect, inline, Bindings{
			Name:          prospectName,
			Company:       prospectCompany,
			SenderName:    senderName,
			SenderCompany: companyName,
		}, senderEmail)
	}

	prompt := g.buildEmailPrompt(prospect, prospectName, prospectCompany, companyName, senderName, business, campaignGoal)

	generated, err := g.Ollama.Generate(ctx, prompt)
	if err != nil {
		g.Logger.WithFields(logrus.Fields{
			"prospect": prospect.Email,
			"error":    err,
		}).Warn("text generation failed, using fallback email")
		return g.GenerateFallbackEmail(prospect, business)
	}

	body := cleanEmailContent(generated)
	if body == "" {
		g.Logger.WithField("prospect", prospect.Email).Warn("text generation returned empty content, using fallback email")
		return g.GenerateFallbackEmail(prospect, business)
	}

	ctaText := g.resolveCTAText(prospect)
	html := generateHTMLEmail(body, companyName, senderName, websiteURL, ctaText)
	subject := g.generateSubject(prospectCompany)

	return GenerationResult{
		Success: true,
		Email: EmailContent{
			Subject:        subject,
			Body:           body,
			HTML:           html,
			TemplateUsed:   TemplateUsedAI,
			ContentType:    "html",
			RecipientEmail: prospect.Email,
			SenderName:     senderName,
			SenderEmail:    senderEmail,
		},
	}
}

func (g *PersonalizedEmailGenerator) generateFromUserTemplate(prospect *models.Prospect, inline *InlineTemplate, bindings Bindings, senderEmail string) GenerationResult {
	html := Substitute(inline.HTML, bindings)
	subject := Substitute(valueOr(inline.Subject, "Partnership Opportunity"), bindings)

	return GenerationResult{
		Success: true,
		Email: EmailContent{
			Subject:        subject,
			Body:           html,
			HTML:           html,
			TemplateUsed:   TemplateUsedUser,
			ContentType:    "html",
			RecipientEmail: prospect.Email,
			SenderName:     bindings.SenderName,
			SenderEmail:    senderEmail,
		},
	}
}

// GenerateFallbackEmail fills a canned paragraph structure from the same
// prospect/sender fields. It is deterministic and cannot fail.
func (g *PersonalizedEmailGenerator) GenerateFallbackEmail(prospect *models.Prospect, business BusinessContext) GenerationResult {
	prospectName := valueOr(prospect.Name, "there")
	prospectCompany := valueOr(prospect.Company, "your company")
	senderName := valueOr(business.Sender.SenderName, "The Team")
	companyName := valueOr(business.CompanyName, "Your Company")

	body := "Dear " + prospectName + ",\n\n" +
		"I hope this message finds you well. I am reaching out from " + companyName +
		" because I believe we can help " + prospectCompany + " achieve remarkable results.\n\n" +
		"Our platform has helped similar companies:\n" +
		"- Increase efficiency by 40%\n" +
		"- Reduce operational costs by 25%\n" +
		"- Improve customer satisfaction by 35%\n\n" +
		"I would love to schedule a brief 15-minute call to discuss how " + companyName +
		" can support " + prospectCompany + " growth.\n\n" +
		"Best regards,\n" + senderName + "\n" + companyName

	websiteURL := valueOr(business.TargetWebsite, "https://yourcompany.com")

	return GenerationResult{
		Success: true,
		Email: EmailContent{
			Subject:        "Partnership Opportunity - " + prospectCompany,
			Body:           body,
			HTML:           generateHTMLEmail(body, companyName, senderName, websiteURL, "Learn More"),
			TemplateUsed:   TemplateUsedFallback,
			ContentType:    "html",
			RecipientEmail: prospect.Email,
			SenderName:     senderName,
			SenderEmail:    g.resolveSenderEmail(prospect, business),
		},
	}
}

func (g *PersonalizedEmailGenerator) buildEmailPrompt(prospect *models.Prospect, prospectName, prospectCompany, companyName, senderName string, business BusinessContext, campaignGoal string) string {
	industry := valueOr(business.Industry, "technology")
	product := valueOr(business.Product, "AI-powered solutions")
	role := valueOr(prospect.Role, "Executive")
	goal := valueOr(campaignGoal, "partnership")

	var b strings.Builder
	b.WriteString("Write a professional business " + goal + " email.\n\n")
	b.WriteString("RECIPIENT:\n")
	b.WriteString("- Name: " + prospectName + "\n")
	b.WriteString("- Company: " + prospectCompany + "\n")
	b.WriteString("- Role: " + role + "\n\n")
	b.WriteString("OUR COMPANY:\n")
	b.WriteString("- Company: " + companyName + "\n")
	b.WriteString("- Sender: " + senderName + "\n")
	b.WriteString("- Industry: " + industry + "\n")
	b.WriteString("- Product: " + product + "\n\n")
	b.WriteString("Write a personalized email that:\n")
	b.WriteString("1. Addresses " + prospectName + " personally\n")
	b.WriteString("2. References " + prospectCompany + " business\n")
	b.WriteString("3. Explains how " + companyName + " can help them\n")
	b.WriteString("4. Includes 2-3 specific benefits\n")
	b.WriteString("5. Has a clear call-to-action\n")
	b.WriteString("6. Is 150-200 words\n\n")

	if tmpl, err := LookupTemplate(prospect.PreferredTemplate); err == nil && tmpl.PromptHint != "" {
		b.WriteString("STRUCTURE: " + Substitute(tmpl.PromptHint, Bindings{Name: prospectName, Company: prospectCompany}) + "\n\n")
	}

	b.WriteString("Write the complete email body only. No subject line. Use real names.")
	return b.String()
}

// generateSubject rotates through fixed subject patterns parameterized by the
// prospect's company. It shares the template rotator's counter so subject
// variety tracks template variety across a run.
func (g *PersonalizedEmailGenerator) generateSubject(prospectCompany string) string {
	subjects := []string{
		"Partnership Opportunity - " + prospectCompany,
		"Quick question for " + prospectCompany,
		prospectCompany + ": Strategic collaboration?",
		"Idea for " + prospectCompany,
		prospectCompany + " + AI = Growth?",
	}
	subject, err := g.Rotator.Next(subjects)
	if err != nil {
		return subjects[0]
	}
	return subject
}

func (g *PersonalizedEmailGenerator) resolveSenderName(prospect *models.Prospect, business BusinessContext) string {
	if prospect.TemplateData != nil && prospect.TemplateData.SenderName != "" {
		return prospect.TemplateData.SenderName
	}
	return valueOr(business.Sender.SenderName, "The Team")
}

func (g *PersonalizedEmailGenerator) resolveSenderEmail(prospect *models.Prospect, business BusinessContext) string {
	if prospect.TemplateData != nil && prospect.TemplateData.SenderEmail != "" {
		return prospect.TemplateData.SenderEmail
	}
	return valueOr(business.Sender.SenderEmail, "contact@company.com")
}

func (g *PersonalizedEmailGenerator) resolveCTAURL(prospect *models.Prospect, business BusinessContext) string {
	if prospect.TemplateData != nil && prospect.TemplateData.CTAURL != "" {
		return prospect.TemplateData.CTAURL
	}
	return valueOr(business.TargetWebsite, "https://yourcompany.com")
}

func (g *PersonalizedEmailGenerator) resolveCTAText(prospect *models.Prospect) string {
	if prospect.TemplateData != nil && prospect.TemplateData.CTAText != "" {
		return prospect.TemplateData.CTAText
	}
	return "Learn More"
}

// cleanEmailContent strips a leading Subject: line the model may have echoed,
// collapses runs of blank lines and trims surrounding whitespace. Lossy on
// purpose: generated bodies never legitimately need multiple blank lines.
func cleanEmailContent(content string) string {
	content = subjectLineRe.ReplaceAllString(content, "")
	content = blankLinesRe.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// generateHTMLEmail wraps plain-text paragraphs into the fixed HTML envelope:
// header banner, body paragraphs, one CTA button and a signature block.
func generateHTMLEmail(content, companyName, senderName, websiteURL, ctaText string) string {
	var paragraphs strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		paragraphs.WriteString(`<p style="margin-bottom: 15px; line-height: 1.6;">` + line + `</p>`)
	}

	return `<div style="font-family: Segoe UI, Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #ffffff;">` +
		`<div style="background: linear-gradient(135deg, #4338ca 0%, #7c3aed 100%); padding: 30px; text-align: center; color: white;">` +
		`<h1 style="margin: 0; font-size: 24px;">` + companyName + `</h1>` +
		`</div>` +
		`<div style="padding: 30px; color: #333;">` +
		paragraphs.String() +
		`</div>` +
		`<div style="text-align: center; padding: 20px;">` +
		`<a href="` + websiteURL + `" style="display: inline-block; padding: 12px 30px; background: linear-gradient(135deg, #4338ca 0%, #7c3aed 100%); color: white; text-decoration: none; border-radius: 8px; font-weight: bold;">` + ctaText + `</a>` +
		`</div>` +
		`<div style="background: #f5f5f5; padding: 20px; text-align: center; color: #666;">` +
		`<p style="margin: 0;">Best regards,<br><strong>` + senderName + `</strong><br>` + companyName + `</p>` +
		`</div>` +
		`</div>`
}

// prospectDisplayName derives a usable name, falling back to the email local
// part with non-letters stripped.
func prospectDisplayName(prospect *models.Prospect) string {
	if prospect.Name != "" {
		return prospect.Name
	}
	local := prospect.Email
	if at := strings.Index(local, "@"); at > 0 {
		local = local[:at]
	}
	derived := strings.TrimSpace(nonLettersRe.ReplaceAllString(local, " "))
	return valueOr(derived, "there")
}

// prospectCompanyName derives a company, falling back to the first label of
// the email domain.
func prospectCompanyName(prospect *models.Prospect) string {
	if prospect.Company != "" {
		return prospect.Company
	}
	if at := strings.Index(prospect.Email, "@"); at > 0 && at < len(prospect.Email)-1 {
		domain := prospect.Email[at+1:]
		if dot := strings.Index(domain, "."); dot > 0 {
			return domain[:dot]
		}
		if domain != "" {
			return domain
		}
	}
	return "your company"
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
