package utils

import "strings"

// Bindings holds the prospect/sender values substituted into template text.
type Bindings struct {
	Name          string `json:"name"`
	Company       string `json:"company"`
	SenderName    string `json:"senderName"`
	SenderCompany string `json:"senderCompany"`
}

// Substitute replaces the recognized {token} placeholders in text with the
// bound values. Unrecognized tokens are left verbatim. Literal two-character
// `\n` sequences are unescaped into real newlines because some upstream
// customization payloads arrive double-escaped.
func Substitute(text string, b Bindings) string {
	replacer := strings.NewReplacer(
		"{name}", b.Name,
		"{company}", b.Company,
		"{senderName}", b.SenderName,
		"{senderCompany}", b.SenderCompany,
		`\n`, "\n",
	)
	return replacer.Replace(text)
}

// SubstituteValue applies Substitute to string values and returns anything
// else unchanged. Customization fields may legitimately hold numbers, colors
// or lists, so a non-string value is not an error.
func SubstituteValue(v interface{}, b Bindings) interface{} {
	if s, ok := v.(string); ok {
		return Substitute(s, b)
	}
	return v
}
