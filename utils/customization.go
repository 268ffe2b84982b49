package utils

import (
	"encoding/json"
)

// Media insertion anchors. Custom media may be placed before, after or between
// the fixed template sections named here.
const (
	AnchorStart      = "start"
	AnchorLogo       = "logo"
	AnchorGreeting   = "greeting"
	AnchorParagraph1 = "paragraph-1"
	AnchorParagraph2 = "paragraph-2"
	AnchorParagraph3 = "paragraph-3"
	AnchorCTA        = "cta"
	AnchorTestimonial = "testimonial"
	AnchorSignature  = "signature"
	AnchorEnd        = "end"
)

// MediaAnchors is the ordered vocabulary of valid insertion points.
var MediaAnchors = []string{
	AnchorStart, AnchorLogo, AnchorGreeting,
	AnchorParagraph1, AnchorParagraph2, AnchorParagraph3,
	AnchorCTA, AnchorTestimonial, AnchorSignature, AnchorEnd,
}

// ComponentTypes is the fixed vocabulary of custom layout component types.
var ComponentTypes = []string{
	"logo", "greeting", "paragraph", "cta", "testimonial",
	"features", "stats", "countdown", "banner",
}

func IsValidAnchor(anchor string) bool {
	for _, a := range MediaAnchors {
		if a == anchor {
			return true
		}
	}
	return false
}

func IsValidComponentType(componentType string) bool {
	for _, t := range ComponentTypes {
		if t == componentType {
			return true
		}
	}
	return false
}

// MediaItem is one user-supplied image placed at a named anchor point.
type MediaItem struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	InsertAfter string `json:"insertAfter"`
	Width       string `json:"width"`
	Alignment   string `json:"alignment"`
}

// CustomComponent is one user-built layout block with a type-specific
// properties map.
type CustomComponent struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
}

// CustomizationSet is the two-variant customization payload attached to a
// template selection. Values may arrive flat ({"headerTitle": ...}) or nested
// under a "customizations" key; both shapes are kept so field resolution can
// honor the flat > nested > template-default order.
type CustomizationSet struct {
	Flat   map[string]interface{}
	Nested map[string]interface{}
}

// ParseCustomizations splits a raw payload into its flat and nested variants.
// A nil payload yields an empty set that resolves everything to defaults.
func ParseCustomizations(raw map[string]interface{}) CustomizationSet {
	cs := CustomizationSet{
		Flat:   map[string]interface{}{},
		Nested: map[string]interface{}{},
	}
	for key, value := range raw {
		if key == "customizations" {
			if nested, ok := value.(map[string]interface{}); ok {
				cs.Nested = nested
			}
			continue
		}
		cs.Flat[key] = value
	}
	return cs
}

// Resolve returns the first defined value for field, trying the flat variant,
// then the nested variant, then the supplied fallback. Every rendered field
// must go through this lookup so a partial customization degrades gracefully
// to template defaults.
func (cs CustomizationSet) Resolve(field string, fallback interface{}) interface{} {
	if v, ok := cs.Flat[field]; ok && v != nil {
		return v
	}
	if v, ok := cs.Nested[field]; ok && v != nil {
		return v
	}
	return fallback
}

// ResolveString is Resolve for string-typed fields. Non-string values fall
// back rather than being coerced.
func (cs CustomizationSet) ResolveString(field, fallback string) string {
	if s, ok := cs.Resolve(field, fallback).(string); ok {
		return s
	}
	return fallback
}

// CustomMedia decodes the ordered customMedia list, dropping records with an
// unknown insertion anchor.
func (cs CustomizationSet) CustomMedia() []MediaItem {
	raw := cs.Resolve("customMedia", nil)
	if raw == nil {
		return nil
	}
	var items []MediaItem
	if err := remarshal(raw, &items); err != nil {
		return nil
	}
	valid := items[:0]
	for _, item := range items {
		if item.InsertAfter == "" {
			item.InsertAfter = AnchorEnd
		}
		if IsValidAnchor(item.InsertAfter) {
			valid = append(valid, item)
		}
	}
	return valid
}

// CustomComponents decodes the ordered customComponents list, dropping
// records whose type is outside the fixed vocabulary.
func (cs CustomizationSet) CustomComponents() []CustomComponent {
	raw := cs.Resolve("customComponents", nil)
	if raw == nil {
		return nil
	}
	var components []CustomComponent
	if err := remarshal(raw, &components); err != nil {
		return nil
	}
	valid := components[:0]
	for _, component := range components {
		if IsValidComponentType(component.Type) {
			valid = append(valid, component)
		}
	}
	return valid
}

// remarshal converts loosely typed JSON values into a concrete type.
func remarshal(src, dst interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
