package types

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func NewRegisterWebhookRequestFromContext(ctx echo.Context) (*RegisterWebhookRequest, error) {
	var body RegisterWebhookRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.URL = strings.TrimSpace(body.URL)
	return &body, nil
}

func (r *RegisterWebhookRequest) Validate() error {
	verr := &ValidationError{}

	raw := strings.TrimSpace(r.GetURL())
	if raw == "" {
		verr.add("url", msgNotBlank)
		return verr
	}
	if !IsWebhookURL(raw) {
		verr.add("url", "must be an absolute http or https URL")
	}

	return verr.errOrNil()
}

// IsWebhookURL reports whether raw is an absolute http(s) URL with a host.
func IsWebhookURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

func NewGetWebhookRequestFromContext(ctx echo.Context) (*GetWebhookRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		verr := &ValidationError{}
		verr.add("id", "must be a positive integer")
		return nil, verr
	}
	return &GetWebhookRequest{ID: id}, nil
}
