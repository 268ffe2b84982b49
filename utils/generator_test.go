package utils

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailcraft/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestGenerator(serverURL string) *PersonalizedEmailGenerator {
	ollama := NewOllamaClient(OllamaOptions{
		URL:     serverURL,
		Model:   "qwen2.5:0.5b",
		Timeout: 2 * time.Second,
	})
	return NewPersonalizedEmailGenerator(ollama, NewTemplateRotator(), testLogger())
}

func ollamaStub(t *testing.T, response string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": response})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testBusiness() BusinessContext {
	return BusinessContext{
		CompanyName:   "Mailcraft",
		Industry:      "software",
		Product:       "outreach automation",
		TargetWebsite: "https://mailcraft.io",
		Sender: SenderInfo{
			SenderName:  "James Wilson",
			SenderEmail: "james@mailcraft.io",
		},
	}
}

func TestGeneratePersonalizedEmailAI(t *testing.T) {
	srv := ollamaStub(t, "Dear Sarah,\n\nI noticed TechCorp is growing fast.\n\nBest regards")
	g := newTestGenerator(srv.URL)

	prospect := &models.Prospect{
		Email:   "sarah@techcorp.com",
		Name:    "Sarah Johnson",
		Company: "TechCorp",
	}

	result := g.GeneratePersonalizedEmail(context.Background(), prospect, testBusiness(), "partnership", nil)

	assert.True(t, result.Success)
	assert.Equal(t, TemplateUsedAI, result.Email.TemplateUsed)
	assert.Equal(t, "Partnership Opportunity - TechCorp", result.Email.Subject)
	assert.Equal(t, "sarah@techcorp.com", result.Email.RecipientEmail)
	assert.Equal(t, "James Wilson", result.Email.SenderName)
	assert.Equal(t, "james@mailcraft.io", result.Email.SenderEmail)
	assert.Contains(t, result.Email.Body, "TechCorp is growing fast")
	assert.Contains(t, result.Email.HTML, "Mailcraft")
	assert.Contains(t, result.Email.HTML, `href="https://mailcraft.io"`)
}

func TestGeneratePersonalizedEmailStripsEchoedSubject(t *testing.T) {
	srv := ollamaStub(t, "Subject: Big Opportunity\n\nDear Sarah,\n\n\n\nLet's talk.")
	g := newTestGenerator(srv.URL)

	result := g.GeneratePersonalizedEmail(context.Background(), &models.Prospect{
		Email: "sarah@techcorp.com",
	}, testBusiness(), "partnership", nil)

	assert.NotContains(t, result.Email.Body, "Subject:")
	assert.NotContains(t, result.Email.Body, "\n\n\n")
	assert.True(t, strings.HasPrefix(result.Email.Body, "Dear Sarah,"))
}

func TestGeneratePersonalizedEmailFallbackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	g := newTestGenerator(srv.URL)

	prospect := &models.Prospect{
		Email:   "sarah@techcorp.com",
		Name:    "Sarah",
		Company: "TechCorp",
	}

	result := g.GeneratePersonalizedEmail(context.Background(), prospect, testBusiness(), "partnership", nil)

	// The fallback is still a successful generation
	assert.True(t, result.Success)
	assert.Equal(t, TemplateUsedFallback, result.Email.TemplateUsed)
	assert.Equal(t, "Partnership Opportunity - TechCorp", result.Email.Subject)
	assert.Contains(t, result.Email.Body, "Dear Sarah,")
	assert.Contains(t, result.Email.Body, "Increase efficiency by 40%")
	assert.NotEmpty(t, result.Email.HTML)
}

func TestGeneratePersonalizedEmailFallbackOnEmptyContent(t *testing.T) {
	srv := ollamaStub(t, "   \n\n  ")
	g := newTestGenerator(srv.URL)

	result := g.GeneratePersonalizedEmail(context.Background(), &models.Prospect{
		Email: "sarah@techcorp.com",
	}, testBusiness(), "partnership", nil)

	assert.True(t, result.Success)
	assert.Equal(t, TemplateUsedFallback, result.Email.TemplateUsed)
}

func TestGenerateFromUserTemplate(t *testing.T) {
	// No server: the inline path must never call the generation service
	g := newTestGenerator("http://127.0.0.1:0")

	prospect := &models.Prospect{
		Email:   "sarah@techcorp.com",
		Name:    "Sarah",
		Company: "TechCorp",
	}
	inline := &InlineTemplate{
		Subject: "Hello {name} at {company}",
		HTML:    "<p>Hi {name}, {senderName} from {senderCompany} here.</p>",
	}

	result := g.GeneratePersonalizedEmail(context.Background(), prospect, testBusiness(), "partnership", inline)

	assert.True(t, result.Success)
	assert.Equal(t, TemplateUsedUser, result.Email.TemplateUsed)
	assert.Equal(t, "Hello Sarah at TechCorp", result.Email.Subject)
	assert.Equal(t, "<p>Hi Sarah, James Wilson from Mailcraft here.</p>", result.Email.HTML)
	assert.NotContains(t, result.Email.HTML, "{")
}

func TestGenerateDerivesNamesFromEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	g := newTestGenerator(srv.URL)

	result := g.GeneratePersonalizedEmail(context.Background(), &models.Prospect{
		Email: "jane.doe42@acme.io",
	}, BusinessContext{}, "", nil)

	// No name or company on the prospect: the fallback addresses generically
	assert.True(t, result.Success)
	assert.Equal(t, TemplateUsedFallback, result.Email.TemplateUsed)
	assert.Contains(t, result.Email.Body, "Dear there,")
	assert.Equal(t, "Partnership Opportunity - your company", result.Email.Subject)
}

func TestSubjectRotation(t *testing.T) {
	srv := ollamaStub(t, "Some generated body text.")
	g := newTestGenerator(srv.URL)

	prospect := &models.Prospect{Email: "sam@acme.io", Company: "Acme"}

	subjects := map[string]bool{}
	for i := 0; i < 5; i++ {
		result := g.GeneratePersonalizedEmail(context.Background(), prospect, testBusiness(), "partnership", nil)
		subjects[result.Email.Subject] = true
	}

	// Five consecutive generations cycle through five distinct subjects
	assert.Len(t, subjects, 5)
	assert.True(t, subjects["Partnership Opportunity - Acme"])
	assert.True(t, subjects["Quick question for Acme"])
}

func TestTemplateDataOverridesSender(t *testing.T) {
	srv := ollamaStub(t, "Body text.")
	g := newTestGenerator(srv.URL)

	prospect := &models.Prospect{
		Email: "sam@acme.io",
		TemplateData: &models.TemplateDataOverride{
			SenderName:  "Override Name",
			SenderEmail: "override@other.io",
			CTAText:     "Book Now",
			CTAURL:      "https://other.io/book",
		},
	}

	result := g.GeneratePersonalizedEmail(context.Background(), prospect, testBusiness(), "partnership", nil)

	require.True(t, result.Success)
	assert.Equal(t, "Override Name", result.Email.SenderName)
	assert.Equal(t, "override@other.io", result.Email.SenderEmail)
	assert.Contains(t, result.Email.HTML, "Book Now")
	assert.Contains(t, result.Email.HTML, `href="https://other.io/book"`)
}

func TestBuildEmailPromptIncludesTemplateHint(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Prompt
		json.NewEncoder(w).Encode(map[string]string{"response": "Body."})
	}))
	defer srv.Close()
	g := newTestGenerator(srv.URL)

	prospect := &models.Prospect{
		Email:             "sam@acme.io",
		Company:           "Acme",
		PreferredTemplate: "executive_outreach",
	}
	g.GeneratePersonalizedEmail(context.Background(), prospect, testBusiness(), "partnership", nil)

	assert.Contains(t, prompt, "RECIPIENT:")
	assert.Contains(t, prompt, "OUR COMPANY:")
	assert.Contains(t, prompt, "150-200 words")
	assert.Contains(t, prompt, "STRUCTURE:")
	assert.Contains(t, prompt, "4 concise executive-level paragraphs for Acme")
}

func TestCleanEmailContent(t *testing.T) {
	got := cleanEmailContent("Subject: Hi there\n\n\nFirst line.\n\n\n\nSecond line.\n\n")
	assert.Equal(t, "First line.\n\nSecond line.", got)
}
