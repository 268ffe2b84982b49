package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type selectionPayload struct {
	TemplateID string `validate:"required,template_id"`
	Anchor     string `validate:"omitempty,media_anchor"`
	Type       string `validate:"omitempty,component_type"`
}

func TestValidateStructTemplateID(t *testing.T) {
	assert.NoError(t, ValidateStruct(selectionPayload{TemplateID: "modern_tech"}))

	err := ValidateStruct(selectionPayload{TemplateID: "not_a_template"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a known template id")

	err = ValidateStruct(selectionPayload{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "templateid is required")
}

func TestValidateStructMediaAnchor(t *testing.T) {
	assert.NoError(t, ValidateStruct(selectionPayload{TemplateID: "modern_tech", Anchor: "paragraph-2"}))

	err := ValidateStruct(selectionPayload{TemplateID: "modern_tech", Anchor: "footer"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a valid media insertion anchor")
}

func TestValidateStructComponentType(t *testing.T) {
	assert.NoError(t, ValidateStruct(selectionPayload{TemplateID: "modern_tech", Type: "countdown"}))

	err := ValidateStruct(selectionPayload{TemplateID: "modern_tech", Type: "carousel"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a valid component type")
}

func TestValidateStructCollectsAllErrors(t *testing.T) {
	err := ValidateStruct(selectionPayload{TemplateID: "bad", Anchor: "bad", Type: "bad"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "known template id")
	assert.Contains(t, err.Error(), "media insertion anchor")
	assert.Contains(t, err.Error(), "component type")
}
