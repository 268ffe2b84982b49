package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mailcraft/models"
	"mailcraft/utils"
)

type TrackingController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTrackingController(db *gorm.DB, logger *log.Logger) *TrackingController {
	return &TrackingController{DB: db, Logger: logger}
}

// transparent 1x1 GIF served for open-tracking pixels
var trackingPixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// HandleOpenTracking records the first open of a message and serves the
// pixel. Unknown message IDs still get the pixel so broken links never show
// up in recipients' mail clients.
func (tc *TrackingController) HandleOpenTracking(c *fiber.Ctx) error {
	messageID := c.Params("messageID")

	var email models.GeneratedEmail
	if err := tc.DB.Where("message_id = ?", messageID).First(&email).Error; err == nil {
		if email.OpenedAt == nil {
			email.OpenedAt = utils.Pointer(time.Now())
			if err := tc.DB.Save(&email).Error; err != nil {
				tc.Logger.Printf("Failed to record open for message %s: %v", messageID, err)
			}
		}
	}

	c.Set("Content-Type", "image/gif")
	c.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	return c.Send(trackingPixelGIF)
}

// HandleClickTracking records the first click of a message and redirects to
// the original destination.
func (tc *TrackingController) HandleClickTracking(c *fiber.Ctx) error {
	messageID := c.Params("messageID")
	destination := c.Query("url")
	if destination == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing destination URL",
		})
	}

	var email models.GeneratedEmail
	if err := tc.DB.Where("message_id = ?", messageID).First(&email).Error; err == nil {
		if email.ClickedAt == nil {
			email.ClickedAt = utils.Pointer(time.Now())
			if err := tc.DB.Save(&email).Error; err != nil {
				tc.Logger.Printf("Failed to record click for message %s: %v", messageID, err)
			}
		}
	}

	return c.Redirect(destination, fiber.StatusFound)
}
