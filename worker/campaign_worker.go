package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mailcraft/config"
	"mailcraft/models"
	"mailcraft/utils"
)

// CampaignWorker drives campaigns marked as sending: it selects a template
// per prospect, generates the email, injects tracking and delivers it.
type CampaignWorker struct {
	DB     *gorm.DB
	Mailer *utils.CampaignMailer
	Logger *logrus.Logger
}

func NewCampaignWorker(db *gorm.DB, mailer *utils.CampaignMailer, logger *logrus.Logger) *CampaignWorker {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CampaignWorker{
		DB:     db,
		Mailer: mailer,
		Logger: logger,
	}
}

func (cw *CampaignWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	cw.Logger.Info("Campaign worker started")

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cw.Logger.Info("Campaign worker shutting down...")
			return
		case <-ticker.C:
			cw.processSendingCampaigns(ctx)
		}
	}
}

func (cw *CampaignWorker) processSendingCampaigns(ctx context.Context) {
	var campaigns []models.Campaign
	if err := cw.DB.Preload("Selection").Where("status = ?", "sending").Find(&campaigns).Error; err != nil {
		cw.Logger.WithError(err).Error("Error fetching sending campaigns")
		return
	}

	for _, campaign := range campaigns {
		if err := cw.processCampaign(ctx, campaign); err != nil {
			cw.Logger.WithFields(logrus.Fields{
				"campaign": campaign.ID,
				"error":    err,
			}).Error("Error processing campaign")
		}
	}
}

func (cw *CampaignWorker) processCampaign(ctx context.Context, campaign models.Campaign) error {
	prospects, err := cw.loadPendingProspects(campaign)
	if err != nil {
		return fmt.Errorf("failed to load prospects: %w", err)
	}

	if len(prospects) == 0 {
		return cw.completeCampaign(campaign)
	}

	cw.Logger.WithFields(logrus.Fields{
		"campaign":  campaign.ID,
		"prospects": len(prospects),
	}).Info("Processing campaign")

	if err := cw.DB.Model(&campaign).
		Update("total_recipients", gorm.Expr("sent_count + failed_count + ?", len(prospects))).Error; err != nil {
		cw.Logger.WithError(err).Warn("Failed to update recipient count")
	}

	generator := cw.newGenerator()
	business := businessContext(campaign)
	delay := time.Duration(config.AppConfig.BatchDelaySeconds) * time.Second

	for i, prospect := range prospects {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Stop picks up between prospects, not mid-send
		var status string
		if err := cw.DB.Model(&models.Campaign{}).Where("id = ?", campaign.ID).
			Pluck("status", &status).Error; err == nil && status != "sending" {
			cw.Logger.WithField("campaign", campaign.ID).Info("Campaign paused, stopping run")
			return nil
		}

		cw.processProspect(&campaign, generator, prospect, business)

		if i < len(prospects)-1 {
			time.Sleep(delay)
		}
	}

	return cw.completeCampaign(campaign)
}

// newGenerator builds a generator with a fresh rotator so each campaign run
// starts its rotation from the beginning of the candidate list.
func (cw *CampaignWorker) newGenerator() *utils.PersonalizedEmailGenerator {
	ollama := utils.NewOllamaClient(utils.OllamaOptions{
		URL:         config.AppConfig.Ollama.URL,
		Model:       config.AppConfig.Ollama.Model,
		Timeout:     time.Duration(config.AppConfig.Ollama.TimeoutSeconds) * time.Second,
		Temperature: config.AppConfig.Ollama.Temperature,
		TopP:        config.AppConfig.Ollama.TopP,
		MaxTokens:   config.AppConfig.Ollama.MaxTokens,
	})
	return utils.NewPersonalizedEmailGenerator(ollama, utils.NewTemplateRotator(), cw.Logger)
}

// loadPendingProspects returns sendable prospects from the campaign's lists
// that have not been emailed by this campaign yet.
func (cw *CampaignWorker) loadPendingProspects(campaign models.Campaign) ([]models.Prospect, error) {
	var prospects []models.Prospect
	err := cw.DB.
		Where("prospect_list_id IN (?)",
			cw.DB.Model(&models.CampaignProspectList{}).
				Select("prospect_list_id").
				Where("campaign_id = ?", campaign.ID)).
		Where("is_bounced = ? AND is_unsubscribed = ?", false, false).
		Where("email NOT IN (?)",
			cw.DB.Model(&models.GeneratedEmail{}).
				Select("recipient_email").
				Where("campaign_id = ?", campaign.ID)).
		Order("id ASC").
		Find(&prospects).Error
	return prospects, err
}

func (cw *CampaignWorker) processProspect(campaign *models.Campaign, generator *utils.PersonalizedEmailGenerator, prospect models.Prospect, business utils.BusinessContext) {
	if err := checkmail.ValidateFormat(prospect.Email); err != nil {
		cw.recordFailure(campaign, prospect, "invalid email address")
		return
	}

	templateID, err := cw.selectTemplate(campaign, generator, prospect)
	if err != nil {
		cw.recordFailure(campaign, prospect, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(config.AppConfig.Ollama.TimeoutSeconds+5)*time.Second)
	defer cancel()

	result := generator.GeneratePersonalizedEmail(ctx, &prospect, business, campaign.Goal, nil)
	email := result.Email

	// A customized catalog selection replaces the generator's stock envelope
	if campaign.Selection != nil && len(campaign.Selection.Customizations) > 0 {
		cw.applySelection(campaign, &email, prospect, templateID)
	}

	messageID := uuid.New().String()
	sendErr := cw.Mailer.Send(cw.withTracking(campaign, email, messageID), messageID)

	record := models.GeneratedEmail{
		CampaignID:     campaign.ID,
		ProspectID:     prospect.ID,
		RecipientEmail: prospect.Email,
		Subject:        email.Subject,
		Body:           email.Body,
		HTML:           email.HTML,
		TemplateUsed:   email.TemplateUsed,
		TemplateID:     templateID,
		SenderName:     email.SenderName,
		MessageID:      messageID,
	}

	updates := map[string]interface{}{
		"generated_count": gorm.Expr("generated_count + ?", 1),
	}
	if email.TemplateUsed == utils.TemplateUsedFallback {
		updates["fallback_count"] = gorm.Expr("fallback_count + ?", 1)
	}

	if sendErr != nil {
		record.SendError = sendErr.Error()
		updates["failed_count"] = gorm.Expr("failed_count + ?", 1)
	} else {
		record.SentAt = utils.Pointer(time.Now())
		updates["sent_count"] = gorm.Expr("sent_count + ?", 1)
	}

	if err := cw.DB.Create(&record).Error; err != nil {
		cw.Logger.WithError(err).Error("Failed to record generated email")
	}
	if err := cw.DB.Model(campaign).Updates(updates).Error; err != nil {
		cw.Logger.WithError(err).Warn("Failed to update campaign stats")
	}

	if err := cw.DB.Model(&prospect).Update("last_contact", time.Now()).Error; err != nil {
		cw.Logger.WithError(err).Warn("Failed to update prospect last contact")
	}
}

// selectTemplate resolves the template for one prospect: the prospect's own
// preference wins, then the campaign pin, then rotation within the campaign's
// category.
func (cw *CampaignWorker) selectTemplate(campaign *models.Campaign, generator *utils.PersonalizedEmailGenerator, prospect models.Prospect) (string, error) {
	explicit := prospect.PreferredTemplate
	if explicit == "" {
		explicit = campaign.TemplateID
	}
	return generator.Rotator.SelectTemplate(explicit, campaign.RotationEnabled, campaign.TemplateCategory)
}

// applySelection re-renders the email through the catalog renderer with the
// campaign's stored customizations, keeping the generated body text.
func (cw *CampaignWorker) applySelection(campaign *models.Campaign, email *utils.EmailContent, prospect models.Prospect, templateID string) {
	cs := utils.ParseCustomizations(campaign.Selection.Customizations)
	bindings := utils.Bindings{
		Name:          prospect.Name,
		Company:       prospect.Company,
		SenderName:    email.SenderName,
		SenderCompany: campaign.CompanyName,
	}

	renderer := utils.NewTemplateRenderer()
	html, err := renderer.RenderHTML(templateID, cs, bindings, email.Body)
	if err != nil {
		cw.Logger.WithFields(logrus.Fields{
			"template": templateID,
			"error":    err,
		}).Warn("Failed to render customized template, keeping generated envelope")
		return
	}
	email.HTML = html
}

func (cw *CampaignWorker) withTracking(campaign *models.Campaign, email utils.EmailContent, messageID string) utils.EmailContent {
	if !campaign.TrackOpens && !campaign.TrackClicks {
		return email
	}
	email.HTML = utils.InjectTracking(email.HTML, config.AppConfig.TrackingBaseURL, messageID)
	return email
}

func (cw *CampaignWorker) recordFailure(campaign *models.Campaign, prospect models.Prospect, reason string) {
	cw.Logger.WithFields(logrus.Fields{
		"campaign": campaign.ID,
		"prospect": prospect.Email,
		"reason":   reason,
	}).Warn("Skipping prospect")

	record := models.GeneratedEmail{
		CampaignID:     campaign.ID,
		ProspectID:     prospect.ID,
		RecipientEmail: prospect.Email,
		SendError:      reason,
	}
	if err := cw.DB.Create(&record).Error; err != nil {
		cw.Logger.WithError(err).Error("Failed to record prospect failure")
	}
	if err := cw.DB.Model(campaign).
		Update("failed_count", gorm.Expr("failed_count + ?", 1)).Error; err != nil {
		cw.Logger.WithError(err).Warn("Failed to update campaign stats")
	}
}

func (cw *CampaignWorker) completeCampaign(campaign models.Campaign) error {
	cw.Logger.WithField("campaign", campaign.ID).Info("Campaign completed")
	return cw.DB.Model(&campaign).Updates(map[string]interface{}{
		"status":       "completed",
		"completed_at": time.Now(),
	}).Error
}

func businessContext(campaign models.Campaign) utils.BusinessContext {
	return utils.BusinessContext{
		CompanyName:   campaign.CompanyName,
		Industry:      campaign.Industry,
		Product:       campaign.Product,
		TargetWebsite: campaign.CompanyWebsite,
		Sender: utils.SenderInfo{
			SenderName:  campaign.SenderName,
			SenderEmail: campaign.SenderEmail,
		},
	}
}
