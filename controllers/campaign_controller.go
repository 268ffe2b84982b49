package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mailcraft/models"
	"mailcraft/utils"
)

type CampaignController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCampaignController(db *gorm.DB, logger *log.Logger) *CampaignController {
	return &CampaignController{DB: db, Logger: logger}
}

type CreateCampaignRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	Description      string `json:"description"`
	Goal             string `json:"goal" validate:"omitempty,oneof=partnership sales product_launch event"`
	TemplateID       string `json:"template_id" validate:"omitempty,template_id"`
	TemplateCategory string `json:"template_category"`
	RotationEnabled  *bool  `json:"rotation_enabled"`
	SenderName       string `json:"sender_name"`
	SenderEmail      string `json:"sender_email" validate:"omitempty,email"`
	CompanyName      string `json:"company_name"`
	CompanyWebsite   string `json:"company_website" validate:"omitempty,url"`
	Industry         string `json:"industry"`
	Product          string `json:"product"`
	ProspectListIDs  []uint `json:"prospect_list_ids"`
}

func (cc *CampaignController) CreateCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rotationEnabled := true
	if req.RotationEnabled != nil {
		rotationEnabled = *req.RotationEnabled
	}

	campaign := models.Campaign{
		UserID:           user.ID,
		Name:             req.Name,
		Description:      req.Description,
		Goal:             req.Goal,
		TemplateID:       req.TemplateID,
		TemplateCategory: req.TemplateCategory,
		RotationEnabled:  rotationEnabled,
		SenderName:       req.SenderName,
		SenderEmail:      req.SenderEmail,
		CompanyName:      req.CompanyName,
		CompanyWebsite:   req.CompanyWebsite,
		Industry:         req.Industry,
		Product:          req.Product,
		Status:           "draft",
	}

	if err := cc.DB.Create(&campaign).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create campaign",
		})
	}

	for _, listID := range req.ProspectListIDs {
		link := models.CampaignProspectList{
			CampaignID:     campaign.ID,
			ProspectListID: listID,
		}
		if err := cc.DB.Create(&link).Error; err != nil {
			cc.Logger.Printf("Failed to attach prospect list %d: %v", listID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(campaign))
}

func (cc *CampaignController) GetCampaigns(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var campaigns []models.Campaign
	if err := cc.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch campaigns",
		})
	}

	return c.JSON(utils.SuccessResponse(campaigns))
}

func (cc *CampaignController) GetCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var campaign models.Campaign
	if err := cc.DB.Preload("Selection").Preload("ProspectLists").
		Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		First(&campaign).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}

	return c.JSON(utils.SuccessResponse(campaign))
}

// StartCampaign marks a campaign as sending; the campaign worker picks it up
// on its next scan. Template selection is mandatory when rotation is off.
func (cc *CampaignController) StartCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var campaign models.Campaign
	if err := cc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		First(&campaign).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}

	if campaign.Status == "sending" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Campaign is already running",
		})
	}

	if campaign.TemplateID != "" {
		if _, err := utils.LookupTemplate(campaign.TemplateID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown template: " + campaign.TemplateID,
			})
		}
	} else if !campaign.RotationEnabled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Template selection is required when rotation is disabled",
		})
	} else if len(utils.TemplateIDs(campaign.TemplateCategory)) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No templates available in category: " + campaign.TemplateCategory,
		})
	}

	campaign.Status = "sending"
	campaign.StartedAt = utils.Pointer(time.Now())
	if err := cc.DB.Save(&campaign).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start campaign",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Campaign started successfully",
	})
}

func (cc *CampaignController) StopCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var campaign models.Campaign
	if err := cc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		First(&campaign).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}

	if campaign.Status != "sending" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Campaign is not running",
		})
	}

	campaign.Status = "paused"
	if err := cc.DB.Save(&campaign).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to stop campaign",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Campaign stopped successfully",
	})
}

// GetCampaignEmails returns the generated-email log for a campaign
func (cc *CampaignController) GetCampaignEmails(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var campaign models.Campaign
	if err := cc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		First(&campaign).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}

	var emails []models.GeneratedEmail
	if err := cc.DB.Where("campaign_id = ?", campaign.ID).
		Order("created_at ASC").
		Find(&emails).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch campaign emails",
		})
	}

	return c.JSON(utils.SuccessResponse(emails))
}
