package controller

import (
	"log"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mailcraft/models"
	"mailcraft/utils"
)

type ProspectController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewProspectController(db *gorm.DB, logger *log.Logger) *ProspectController {
	return &ProspectController{DB: db, Logger: logger}
}

type CreateProspectListRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

func (pc *ProspectController) CreateProspectList(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateProspectListRequest
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

	list := models.ProspectList{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		Source:      req.Source,
	}

	if err := pc.DB.Create(&list).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create prospect list",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(list))
}

func (pc *ProspectController) GetProspectLists(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lists []models.ProspectList
	if err := pc.DB.Where("user_id = ?", user.ID).Find(&lists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch prospect lists",
		})
	}

	return c.JSON(utils.SuccessResponse(lists))
}

func (pc *ProspectController) GetProspects(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	listID := utils.ParseUint(c.Params("id"))

	var list models.ProspectList
	if err := pc.DB.Where("id = ? AND user_id = ?", listID, user.ID).First(&list).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prospect list not found",
		})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := pc.DB.Model(&models.Prospect{}).
		Where("prospect_list_id = ?", list.ID).
		Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch prospects",
		})
	}

	var prospects []models.Prospect
	if err := pc.DB.Where("prospect_list_id = ?", list.ID).
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&prospects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch prospects",
		})
	}

	return c.JSON(utils.PaginatedResponse{
		Data:  prospects,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

type AddProspectRequest struct {
	Email             string                       `json:"email" validate:"required,email"`
	Name              string                       `json:"name"`
	Company           string                       `json:"company"`
	Role              string                       `json:"role"`
	Website           string                       `json:"website"`
	PreferredTemplate string                       `json:"preferred_template" validate:"omitempty,template_id"`
	TemplateData      *models.TemplateDataOverride `json:"template_data"`
}

func (pc *ProspectController) AddProspect(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	listID := utils.ParseUint(c.Params("id"))

	var list models.ProspectList
	if err := pc.DB.Where("id = ? AND user_id = ?", listID, user.ID).First(&list).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prospect list not found",
		})
	}

	var req AddProspectRequest
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

	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}

	// Opt-in deliverability check, costs a DNS lookup per prospect
	if c.Query("verify") == "mx" {
		if ok, err := utils.ValidateMXRecords(req.Email); err != nil || !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email domain has no MX records",
			})
		}
	}

	// One prospect per email per list
	var existing models.Prospect
	if err := pc.DB.Where("prospect_list_id = ? AND email = ?", list.ID, req.Email).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Prospect already exists in this list",
		})
	}

	prospect := models.Prospect{
		ProspectListID:    list.ID,
		UserID:            user.ID,
		Email:             req.Email,
		Name:              req.Name,
		Company:           req.Company,
		Role:              req.Role,
		Website:           req.Website,
		PreferredTemplate: req.PreferredTemplate,
		TemplateData:      req.TemplateData,
	}

	if err := pc.DB.Create(&prospect).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create prospect",
		})
	}

	if err := pc.DB.Model(&list).
		Update("prospect_count", gorm.Expr("prospect_count + ?", 1)).Error; err != nil {
		pc.Logger.Printf("Failed to update prospect count for list %d: %v", list.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(prospect))
}

func (pc *ProspectController) DeleteProspect(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	prospectID := utils.ParseUint(c.Params("prospectId"))

	var prospect models.Prospect
	if err := pc.DB.Where("id = ? AND user_id = ?", prospectID, user.ID).
		First(&prospect).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prospect not found",
		})
	}

	if err := pc.DB.Delete(&prospect).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete prospect",
		})
	}

	if err := pc.DB.Model(&models.ProspectList{}).
		Where("id = ?", prospect.ProspectListID).
		Update("prospect_count", gorm.Expr("prospect_count - ?", 1)).Error; err != nil {
		pc.Logger.Printf("Failed to update prospect count for list %d: %v", prospect.ProspectListID, err)
	}

	return c.JSON(fiber.Map{
		"message": "Prospect deleted successfully",
	})
}
