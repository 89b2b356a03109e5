package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultEndpoint is the relay's send API.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// requestTimeout bounds the relay call so a dead endpoint cannot hang a
// foreground send.
const requestTimeout = 10 * time.Second

// Params is the fixed parameter set for one relay call.
type Params struct {
	ServiceID  string
	TemplateID string
	Token      string

	Subject  string
	Message  string
	Date     string
	ImageURL string
}

// Transport sends one message through the relay. It returns the relay's
// response text on success and an error carrying the relay's detail message
// on failure.
type Transport interface {
	Send(ctx context.Context, p Params) (string, error)
}

// sendRequest is the relay's wire format.
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// restTransport is the production Transport over the relay's REST API.
type restTransport struct {
	http     *resty.Client
	endpoint string
}

// newRESTTransport builds the production transport. Construction validates
// the endpoint so a misconfigured URL fails at load time, not send time.
func newRESTTransport(endpoint string) (Transport, error) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("invalid relay endpoint %q", endpoint)
	}
	return &restTransport{
		http:     resty.New().SetTimeout(requestTimeout),
		endpoint: endpoint,
	}, nil
}

func (t *restTransport) Send(ctx context.Context, p Params) (string, error) {
	body := sendRequest{
		ServiceID:  p.ServiceID,
		TemplateID: p.TemplateID,
		UserID:     p.Token,
		TemplateParams: map[string]string{
			"subject":   p.Subject,
			"message":   p.Message,
			"date":      p.Date,
			"image_url": p.ImageURL,
		},
	}

	resp, err := t.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(&body).
		Post(t.endpoint)
	if err != nil {
		return "", fmt.Errorf("relay request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("relay returned %d: %s", resp.StatusCode(), relayDetail(resp.Body()))
	}
	return string(resp.Body()), nil
}

// relayDetail extracts a human-readable message from an error response,
// falling back to the raw body.
func relayDetail(body []byte) string {
	var doc struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &doc); err == nil {
		if doc.Error != "" {
			return doc.Error
		}
		if doc.Message != "" {
			return doc.Message
		}
	}
	return strings.TrimSpace(string(body))
}
