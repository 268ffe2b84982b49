package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mailcraft/config"
	"mailcraft/models"
	"mailcraft/utils"
)

type GenerationController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewGenerationController(db *gorm.DB, logger *logrus.Logger) *GenerationController {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GenerationController{DB: db, Logger: logger}
}

func (gc *GenerationController) newGenerator() *utils.PersonalizedEmailGenerator {
	ollama := utils.NewOllamaClient(utils.OllamaOptions{
		URL:         config.AppConfig.Ollama.URL,
		Model:       config.AppConfig.Ollama.Model,
		Timeout:     time.Duration(config.AppConfig.Ollama.TimeoutSeconds) * time.Second,
		Temperature: config.AppConfig.Ollama.Temperature,
		TopP:        config.AppConfig.Ollama.TopP,
		MaxTokens:   config.AppConfig.Ollama.MaxTokens,
	})
	// Each request gets its own rotator so previews do not interleave
	// rotation state with running campaigns.
	return utils.NewPersonalizedEmailGenerator(ollama, utils.NewTemplateRotator(), gc.Logger)
}

type ProspectPayload struct {
	Email             string                       `json:"email" validate:"required,email"`
	Name              string                       `json:"name"`
	Company           string                       `json:"company"`
	Role              string                       `json:"role"`
	PreferredTemplate string                       `json:"preferredTemplate" validate:"omitempty,template_id"`
	TemplateData      *models.TemplateDataOverride `json:"templateData"`
}

type GenerateEmailRequest struct {
	Prospect ProspectPayload       `json:"prospect" validate:"required"`
	Business utils.BusinessContext `json:"businessAnalysis"`
	Goal     string                `json:"campaignGoal"`
	Template *utils.InlineTemplate `json:"templateData"`
}

func (p ProspectPayload) toModel() models.Prospect {
	return models.Prospect{
		Email:             p.Email,
		Name:              p.Name,
		Company:           p.Company,
		Role:              p.Role,
		PreferredTemplate: p.PreferredTemplate,
		TemplateData:      p.TemplateData,
	}
}

// GenerateEmail produces a single personalized email preview. The response
// always carries a usable email; generation-service failures surface only in
// the template_used tag.
func (gc *GenerationController) GenerateEmail(c *fiber.Ctx) error {
	var req GenerateEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(req.Prospect); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	prospect := req.Prospect.toModel()
	result := gc.newGenerator().GeneratePersonalizedEmail(c.Context(), &prospect, req.Business, req.Goal, req.Template)

	return c.JSON(result)
}

type GenerateBatchRequest struct {
	Prospects []ProspectPayload     `json:"prospects" validate:"required,min=1,dive"`
	Business  utils.BusinessContext `json:"businessAnalysis"`
	Goal      string                `json:"campaignGoal"`
}

// GenerateBatch produces emails for a prospect list sequentially with the
// configured inter-request delay.
func (gc *GenerationController) GenerateBatch(c *fiber.Ctx) error {
	var req GenerateBatchRequest
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

	prospects := make([]models.Prospect, 0, len(req.Prospects))
	for _, payload := range req.Prospects {
		prospects = append(prospects, payload.toModel())
	}

	delay := time.Duration(config.AppConfig.BatchDelaySeconds) * time.Second
	result := gc.newGenerator().GenerateBatch(c.Context(), prospects, req.Business, req.Goal, delay)

	return c.JSON(result)
}
