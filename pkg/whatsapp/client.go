package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/whatsapp-message-relay/environments"
	"github.com/onurcolak/whatsapp-message-relay/pkg/logger"
)

// Client talks to the WhatsApp Cloud API on behalf of a single sender (phone number id).
type Client struct {
	httpClient *resty.Client
	apiURL     string
	phoneID    string
}

func NewClient(cfg environments.WhatsAppConfig) *Client {
	client := resty.New().
		SetLogger(restyLogger{}).
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.Token)

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{
		httpClient: client,
		apiURL:     strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.APIVersion, "/"),
		phoneID:    cfg.PhoneID,
	}
}

// SendMessage posts a text message to `to` (E.164 with leading '+').
func (c *Client) SendMessage(ctx context.Context, to, body string) (*SendMessageResponse, error) {
	payload := SendMessageRequest{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             messageTypeText,
		Text:             TextBody{Body: body},
	}

	endpoint := fmt.Sprintf("%s/%s/messages", c.apiURL, url.PathEscape(c.phoneID))

	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(endpoint)

	duration := time.Since(startTime)

	if err != nil {
		return nil, &TransportError{Op: "send message", Err: err}
	}

	logger.Infof("WhatsApp send request completed in %v (status: %d)", duration, resp.StatusCode())

	if !resp.IsSuccess() {
		return nil, parseFailure(resp.StatusCode(), resp.Body())
	}

	// The provider accepted the message; a body we cannot read only loses the id.
	var result SendMessageResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		logger.Warnf("Unreadable WhatsApp send response, message id unavailable: %v", err)
	}

	return &result, nil
}

// GetMessageStatus fetches the provider's message resource and returns it unmodified.
func (c *Client) GetMessageStatus(ctx context.Context, messageID string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/%s", c.apiURL, url.PathEscape(messageID))

	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(endpoint)

	duration := time.Since(startTime)

	if err != nil {
		return nil, &TransportError{Op: "get message status", Err: err}
	}

	logger.Infof("WhatsApp status request for %s completed in %v (status: %d)", messageID, duration, resp.StatusCode())

	if !resp.IsSuccess() {
		return nil, parseFailure(resp.StatusCode(), resp.Body())
	}

	body := resp.Body()
	if json.Valid(body) {
		return json.RawMessage(body), nil
	}

	// Non-JSON bodies are passed on as a JSON string.
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil, &TransportError{Op: "encode status response", Err: err}
	}

	return quoted, nil
}

// PhoneID is the sender id this client sends from.
func (c *Client) PhoneID() string {
	return c.phoneID
}

// restyLogger routes resty's internal warnings through the service logger.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) { logger.Errorf("resty: "+format, v...) }
func (restyLogger) Warnf(format string, v ...any)  { logger.Warnf("resty: "+format, v...) }
func (restyLogger) Debugf(format string, v ...any) { logger.Debugf("resty: "+format, v...) }
