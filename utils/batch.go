package utils

import (
	"context"
	"time"

	"mailcraft/models"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"
)

// ProspectResult is the per-prospect outcome of a batch run, kept in input
// order.
type ProspectResult struct {
	Prospect *models.Prospect `json:"prospect"`
	Success  bool             `json:"success"`
	Email    *EmailContent    `json:"email,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// BatchResult aggregates a sequential generation run over a prospect list.
type BatchResult struct {
	TotalProcessed   int              `json:"total_processed"`
	SuccessfulEmails int              `json:"successful_emails"`
	FailedEmails     int              `json:"failed_emails"`
	Results          []ProspectResult `json:"results"`
}

// DefaultBatchDelay is the pause between prospects, assumed to match the
// rate limit of the local text-generation service.
const DefaultBatchDelay = 1 * time.Second

// GenerateBatch drives the generator over prospects strictly sequentially
// with a fixed inter-request delay. A per-prospect failure is recorded and
// never aborts the batch; there is no retry at this layer.
func (g *PersonalizedEmailGenerator) GenerateBatch(ctx context.Context, prospects []models.Prospect, business BusinessContext, campaignGoal string, delay time.Duration) BatchResult {
	if delay <= 0 {
		delay = DefaultBatchDelay
	}

	g.Logger.WithField("count", len(prospects)).Info("starting batch email generation")

	results := make([]ProspectResult, 0, len(prospects))
	successCount := 0

	for i := range prospects {
		prospect := &prospects[i]
		g.Logger.WithFields(logrus.Fields{
			"position": i + 1,
			"total":    len(prospects),
			"prospect": prospect.Email,
		}).Info("generating email")

		if err := checkmail.ValidateFormat(prospect.Email); err != nil {
			results = append(results, ProspectResult{
				Prospect: prospect,
				Success:  false,
				Error:    "invalid prospect email: " + err.Error(),
			})
			continue
		}

		result := g.GeneratePersonalizedEmail(ctx, prospect, business, campaignGoal, nil)
		results = append(results, ProspectResult{
			Prospect: prospect,
			Success:  result.Success,
			Email:    &result.Email,
		})
		if result.Success {
			successCount++
		}

		if i < len(prospects)-1 {
			time.Sleep(delay)
		}
	}

	g.Logger.WithFields(logrus.Fields{
		"successful": successCount,
		"total":      len(prospects),
	}).Info("batch email generation complete")

	return BatchResult{
		TotalProcessed:   len(prospects),
		SuccessfulEmails: successCount,
		FailedEmails:     len(prospects) - successCount,
		Results:          results,
	}
}
