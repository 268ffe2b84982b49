package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailcraft/models"
)

func TestGenerateBatch(t *testing.T) {
	srv := ollamaStub(t, "Generated body text.")
	g := newTestGenerator(srv.URL)

	prospects := []models.Prospect{
		{Email: "a@acme.io", Company: "Acme"},
		{Email: "b@globex.com", Company: "Globex"},
		{Email: "not-an-email", Company: "Broken"},
		{Email: "c@initech.net", Company: "Initech"},
		{Email: "d@umbrella.org", Company: "Umbrella"},
	}

	result := g.GenerateBatch(context.Background(), prospects, testBusiness(), "partnership", time.Millisecond)

	assert.Equal(t, 5, result.TotalProcessed)
	assert.Equal(t, 4, result.SuccessfulEmails)
	assert.Equal(t, 1, result.FailedEmails)
	require.Len(t, result.Results, 5)

	// Results stay in input order
	for i, r := range result.Results {
		assert.Equal(t, prospects[i].Email, r.Prospect.Email)
	}

	failed := result.Results[2]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.Error, "invalid prospect email")
	assert.Nil(t, failed.Email)

	for _, i := range []int{0, 1, 3, 4} {
		r := result.Results[i]
		assert.True(t, r.Success)
		require.NotNil(t, r.Email)
		assert.Equal(t, prospects[i].Email, r.Email.RecipientEmail)
	}
}

func TestGenerateBatchServiceDownStillSucceeds(t *testing.T) {
	// Service unreachable: every prospect gets the fallback email
	g := newTestGenerator("http://127.0.0.1:0")

	prospects := []models.Prospect{
		{Email: "a@acme.io"},
		{Email: "b@globex.com"},
	}

	result := g.GenerateBatch(context.Background(), prospects, testBusiness(), "partnership", time.Millisecond)

	assert.Equal(t, 2, result.SuccessfulEmails)
	assert.Equal(t, 0, result.FailedEmails)
	for _, r := range result.Results {
		require.NotNil(t, r.Email)
		assert.Equal(t, TemplateUsedFallback, r.Email.TemplateUsed)
	}
}

func TestGenerateBatchEmpty(t *testing.T) {
	g := newTestGenerator("http://127.0.0.1:0")
	result := g.GenerateBatch(context.Background(), nil, testBusiness(), "partnership", time.Millisecond)

	assert.Equal(t, 0, result.TotalProcessed)
	assert.Empty(t, result.Results)
}

func TestGenerateBatchSubjectsRotate(t *testing.T) {
	srv := ollamaStub(t, "Body.")
	g := newTestGenerator(srv.URL)

	prospects := []models.Prospect{
		{Email: "a@acme.io", Company: "Acme"},
		{Email: "b@acme.io", Company: "Acme"},
		{Email: "c@acme.io", Company: "Acme"},
	}

	result := g.GenerateBatch(context.Background(), prospects, testBusiness(), "partnership", time.Millisecond)

	subjects := map[string]bool{}
	for _, r := range result.Results {
		require.NotNil(t, r.Email)
		subjects[r.Email.Subject] = true
	}
	assert.Len(t, subjects, 3)
}
