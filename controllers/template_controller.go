package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mailcraft/models"
	"mailcraft/utils"
)

type TemplateController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTemplateController(db *gorm.DB, logger *log.Logger) *TemplateController {
	return &TemplateController{DB: db, Logger: logger}
}

// ListTemplates returns the template catalog, optionally filtered by category
func (tc *TemplateController) ListTemplates(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return c.JSON(utils.SuccessResponse(utils.AllTemplates()))
	}

	var templates []utils.Template
	for _, id := range utils.TemplateIDs(category) {
		template, err := utils.LookupTemplate(id)
		if err != nil {
			continue
		}
		templates = append(templates, *template)
	}
	return c.JSON(utils.SuccessResponse(templates))
}

// GetTemplate returns one catalog entry. An unknown id is a hard 404, never
// a silent default.
func (tc *TemplateController) GetTemplate(c *fiber.Ctx) error {
	template, err := utils.LookupTemplate(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown template: " + c.Params("id"),
		})
	}
	return c.JSON(utils.SuccessResponse(template))
}

type ComponentPayload struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type" validate:"required,component_type"`
	Properties map[string]interface{} `json:"properties"`
}

type SelectTemplateRequest struct {
	TemplateID     string                 `json:"templateId" validate:"required,template_id"`
	CampaignID     *uint                  `json:"campaignId"`
	WorkflowID     string                 `json:"workflowId"`
	IsCustomized   bool                   `json:"isCustomized"`
	Customizations map[string]interface{} `json:"customizations"`
	Components     []ComponentPayload     `json:"components"`
}

// SelectTemplate records the template picked for a campaign/workflow along
// with its customization payload.
func (tc *TemplateController) SelectTemplate(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req SelectTemplateRequest
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

	for _, component := range req.Components {
		if err := utils.ValidateStruct(component); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	if err := validateCustomMedia(req.Customizations); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	components := make([]map[string]interface{}, 0, len(req.Components))
	for _, component := range req.Components {
		components = append(components, map[string]interface{}{
			"id":         component.ID,
			"type":       component.Type,
			"properties": component.Properties,
		})
	}

	selection := models.TemplateSelection{
		UserID:         user.ID,
		CampaignID:     req.CampaignID,
		WorkflowID:     req.WorkflowID,
		TemplateID:     req.TemplateID,
		IsCustomized:   req.IsCustomized || len(req.Customizations) > 0,
		Customizations: req.Customizations,
		Components:     components,
	}

	if err := tc.DB.Create(&selection).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save template selection",
		})
	}

	// Pin the selected template on the campaign so generation honors it
	if req.CampaignID != nil {
		if err := tc.DB.Model(&models.Campaign{}).
			Where("id = ? AND user_id = ?", *req.CampaignID, user.ID).
			Update("template_id", req.TemplateID).Error; err != nil {
			tc.Logger.Printf("Failed to pin template on campaign %d: %v", *req.CampaignID, err)
		}
	}

	return c.JSON(utils.SuccessResponse(selection))
}

type PreviewRequest struct {
	Customizations map[string]interface{} `json:"customizations"`
	SampleData     utils.Bindings         `json:"sampleData"`
	Body           string                 `json:"body"`
}

// PreviewTemplate renders a template with customizations and sample data the
// same way the campaign worker will render it at send time.
func (tc *TemplateController) PreviewTemplate(c *fiber.Ctx) error {
	templateID := c.Params("id")

	var req PreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sample := req.SampleData
	if sample.Name == "" {
		sample = utils.Bindings{
			Name:          "Sarah Johnson",
			Company:       "TechCorp Industries",
			SenderName:    "James Wilson",
			SenderCompany: "Your Company",
		}
	}

	renderer := utils.NewTemplateRenderer()
	cs := utils.ParseCustomizations(req.Customizations)

	html, err := renderer.RenderHTML(templateID, cs, sample, req.Body)
	if err != nil {
		if errors.Is(err, utils.ErrUnknownTemplate) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to render template", err)
	}

	text, err := renderer.RenderPlainText(templateID, cs, sample, req.Body)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to render template", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"html": html,
		"text": text,
	}))
}

// validateCustomMedia rejects media records pointing at unknown insertion
// anchors instead of silently dropping them.
func validateCustomMedia(customizations map[string]interface{}) error {
	cs := utils.ParseCustomizations(customizations)
	raw := cs.Resolve("customMedia", nil)
	if raw == nil {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return errors.New("customMedia must be a list")
	}
	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		anchor, _ := record["insertAfter"].(string)
		if anchor != "" && !utils.IsValidAnchor(anchor) {
			return errors.New("invalid media insertion anchor: " + anchor)
		}
	}
	return nil
}
