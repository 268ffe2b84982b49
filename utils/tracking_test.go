package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingPixelURL(t *testing.T) {
	url := GenerateTrackingPixelURL("https://track.mailcraft.io", "msg-123")
	assert.True(t, strings.HasPrefix(url, "https://track.mailcraft.io/track/open/msg-123/"))
}

func TestGenerateClickTrackURL(t *testing.T) {
	url := GenerateClickTrackURL("https://track.mailcraft.io", "msg-123", "https://example.com/page?a=1&b=2")
	assert.True(t, strings.HasPrefix(url, "https://track.mailcraft.io/track/click/msg-123/"))
	assert.Contains(t, url, "url=https%3A%2F%2Fexample.com%2Fpage%3Fa%3D1%26b%3D2")
}

func TestInjectTracking(t *testing.T) {
	html := `<div><a href="https://example.com/cta">Click</a></div>`
	got := InjectTracking(html, "https://track.mailcraft.io", "msg-123")

	assert.Contains(t, got, "/track/click/msg-123/")
	assert.Contains(t, got, "url=https%3A%2F%2Fexample.com%2Fcta")
	assert.Contains(t, got, "/track/open/msg-123/")
	assert.Contains(t, got, `width="1" height="1"`)
	assert.NotContains(t, got, `href="https://example.com/cta"`)
}

func TestInjectTrackingRewritesAllLinks(t *testing.T) {
	html := `<a href="https://a.example.com">A</a><a href="https://b.example.com">B</a>`
	got := InjectTracking(html, "https://track.mailcraft.io", "msg-9")

	assert.Equal(t, 2, strings.Count(got, "/track/click/msg-9/"))
}

func TestInjectTrackingIsReinjectionSafe(t *testing.T) {
	html := `<a href="https://example.com/cta">Click</a>`
	once := InjectTracking(html, "https://track.mailcraft.io", "msg-123")
	twice := injectClickTracking(once, "https://track.mailcraft.io", "msg-123")

	// Already-tracked links must not be wrapped a second time
	assert.Equal(t, strings.Count(once, "/track/click/"), strings.Count(twice, "/track/click/"))
}

func TestInjectTrackingNoLinks(t *testing.T) {
	html := `<p>No links here</p>`
	got := InjectTracking(html, "https://track.mailcraft.io", "msg-1")

	require.Contains(t, got, "<p>No links here</p>")
	assert.Contains(t, got, "/track/open/msg-1/")
}
