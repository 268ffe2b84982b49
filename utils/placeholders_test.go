package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	b := Bindings{
		Name:          "Sarah",
		Company:       "TechCorp",
		SenderName:    "James",
		SenderCompany: "Mailcraft",
	}

	got := Substitute("Hi {name}, greetings from {senderName} at {senderCompany} to {company}!", b)
	assert.Equal(t, "Hi Sarah, greetings from James at Mailcraft to TechCorp!", got)
}

func TestSubstituteLeavesUnknownTokens(t *testing.T) {
	got := Substitute("Hello {name}, your code is {discountCode}", Bindings{Name: "Sam"})
	assert.Equal(t, "Hello Sam, your code is {discountCode}", got)
}

func TestSubstituteEmptyBindings(t *testing.T) {
	got := Substitute("Hi {name} from {company}", Bindings{})
	assert.Equal(t, "Hi  from ", got)
}

func TestSubstituteUnescapesNewlines(t *testing.T) {
	got := Substitute(`Best regards,\n{senderName}\n{senderCompany}`, Bindings{
		SenderName:    "James",
		SenderCompany: "Mailcraft",
	})
	assert.Equal(t, "Best regards,\nJames\nMailcraft", got)
}

func TestSubstituteIdempotentOnResolvedText(t *testing.T) {
	b := Bindings{Name: "Sarah", Company: "TechCorp"}
	once := Substitute("Hi {name} at {company}", b)
	assert.Equal(t, once, Substitute(once, b))
}

func TestSubstituteValue(t *testing.T) {
	b := Bindings{Name: "Sarah"}

	assert.Equal(t, "Hi Sarah", SubstituteValue("Hi {name}", b))
	assert.Equal(t, 42, SubstituteValue(42, b))
	assert.Equal(t, []string{"{name}"}, SubstituteValue([]string{"{name}"}, b))
	assert.Nil(t, SubstituteValue(nil, b))
}
