package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"propboost_backend/platform/config"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/phone"
)

// WhatsAppClient sends messages through a GOWA-compatible WhatsApp gateway.
type WhatsAppClient struct {
	baseURL  string
	apiKey   string
	deviceID string
	timeout  time.Duration
	http     *http.Client
	log      *logger.Logger
}

type gowaRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type gowaResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Results struct {
		MessageID string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"results"`
}

// NewWhatsAppClient returns a client; without a gateway URL every send is simulated.
func NewWhatsAppClient(cfg config.WhatsAppConfig, timeout time.Duration, log *logger.Logger) *WhatsAppClient {
	return &WhatsAppClient{
		baseURL:  strings.TrimRight(cfg.GetWhatsAppURL(), "/"),
		apiKey:   cfg.GetWhatsAppKey(),
		deviceID: cfg.GetWhatsAppDeviceID(),
		timeout:  timeout,
		http:     &http.Client{},
		log:      log,
	}
}

func (c *WhatsAppClient) Send(ctx context.Context, to, body string) Result {
	if c.baseURL == "" {
		return simulated("wa", "whatsapp gateway not configured")
	}

	normalized, err := phone.Digits(to)
	if err != nil {
		return failed(fmt.Errorf("whatsapp: %w", err))
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	ref, err := c.post(ctx, gowaRequest{Phone: normalized, Message: body})
	if err != nil {
		c.log.WithContext(ctx).DependencyFallback("whatsapp", "send", err)
		return failed(err)
	}

	c.log.Info("whatsapp sent via gowa", "phone", normalized, "message_id", ref)
	return sent(ref, "whatsapp message accepted")
}

func (c *WhatsAppClient) post(ctx context.Context, payload gowaRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/send/message", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", formatAuthHeader(c.apiKey))
	}
	if c.deviceID != "" {
		req.Header.Set("X-Device-Id", c.deviceID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("whatsapp service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed gowaResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode whatsapp response: %w", err)
	}
	if parsed.Results.MessageID == "" {
		return "", fmt.Errorf("whatsapp response missing message id")
	}
	return parsed.Results.MessageID, nil
}

func formatAuthHeader(apiKey string) string {
	if strings.HasPrefix(strings.ToLower(apiKey), "basic ") {
		return apiKey
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(apiKey))
	return "Basic " + encoded
}
