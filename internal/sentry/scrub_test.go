package sentry

import (
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
)

func TestScrubEvent_RedactsSensitiveHeaders(t *testing.T) {
	event := &sentry.Event{
		Request: &sentry.Request{
			Headers: map[string]string{
				"Authorization": "Bearer secret-token",
				"Cookie":        "session=abc123",
				"Content-Type":  "application/json",
			},
		},
	}

	result := ScrubEvent(event, nil)

	if result.Request.Headers["Authorization"] != "[Filtered]" {
		t.Errorf("expected Authorization to be [Filtered], got %s", result.Request.Headers["Authorization"])
	}
	if result.Request.Headers["Cookie"] != "[Filtered]" {
		t.Errorf("expected Cookie to be [Filtered], got %s", result.Request.Headers["Cookie"])
	}
	if result.Request.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected Content-Type to be preserved, got %s", result.Request.Headers["Content-Type"])
	}
}

func TestScrubEvent_StripsRequestBody(t *testing.T) {
	event := &sentry.Event{
		Request: &sentry.Request{
			Data: `{"password":"abc123","inviteKey":"apple-river-42"}`,
		},
	}

	result := ScrubEvent(event, nil)

	if result.Request.Data != "" {
		t.Errorf("expected request body to be stripped, got %s", result.Request.Data)
	}
}

func TestScrubEvent_RedactsAccessTokenQuery(t *testing.T) {
	event := &sentry.Event{
		Request: &sentry.Request{
			QueryString: "access_token=eyJhbGciOi&foo=bar",
		},
	}

	result := ScrubEvent(event, nil)

	if strings.Contains(result.Request.QueryString, "eyJhbGciOi") {
		t.Errorf("expected access_token to be redacted, got %s", result.Request.QueryString)
	}
	if !strings.Contains(result.Request.QueryString, "foo=bar") {
		t.Errorf("expected benign params to be preserved, got %s", result.Request.QueryString)
	}
}

func TestScrubEvent_ScrubsSensitiveTags(t *testing.T) {
	event := &sentry.Event{
		Tags: map[string]string{
			"environment": "production",
			"token":       "secret-value",
		},
	}

	result := ScrubEvent(event, nil)

	if result.Tags["environment"] != "production" {
		t.Errorf("expected environment tag to be preserved, got %s", result.Tags["environment"])
	}
	if result.Tags["token"] != "[Filtered]" {
		t.Errorf("expected token tag to be [Filtered], got %s", result.Tags["token"])
	}
}

func TestScrubEvent_ScrubsBreadcrumbData(t *testing.T) {
	event := &sentry.Event{
		Breadcrumbs: []*sentry.Breadcrumb{
			{
				Data: map[string]interface{}{
					"jwt":  "secret",
					"path": "/api/orgs",
				},
			},
		},
	}

	result := ScrubEvent(event, nil)

	if result.Breadcrumbs[0].Data["jwt"] != "[Filtered]" {
		t.Errorf("expected jwt breadcrumb to be [Filtered], got %v", result.Breadcrumbs[0].Data["jwt"])
	}
	if result.Breadcrumbs[0].Data["path"] != "/api/orgs" {
		t.Errorf("expected path breadcrumb to be preserved, got %v", result.Breadcrumbs[0].Data["path"])
	}
}
