package providers

import (
	"bytes"
	"context"
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

// VoiceClient places outbound qualification calls through a Retell-style API.
type VoiceClient struct {
	baseURL    string
	apiKey     string
	agentID    string
	fromNumber string
	timeout    time.Duration
	http       *http.Client
	log        *logger.Logger
}

type createCallRequest struct {
	FromNumber       string            `json:"from_number"`
	ToNumber         string            `json:"to_number"`
	OverrideAgentID  string            `json:"override_agent_id,omitempty"`
	DynamicVariables map[string]string `json:"retell_llm_dynamic_variables"`
	Metadata         map[string]string `json:"metadata"`
}

type createCallResponse struct {
	CallID     string `json:"call_id"`
	CallStatus string `json:"call_status"`
}

func NewVoiceClient(cfg config.VoiceConfig, timeout time.Duration, log *logger.Logger) *VoiceClient {
	return &VoiceClient{
		baseURL:    strings.TrimRight(cfg.GetVoiceAPIURL(), "/"),
		apiKey:     cfg.GetVoiceAPIKey(),
		agentID:    cfg.GetVoiceAgentID(),
		fromNumber: cfg.GetVoiceFromNumber(),
		timeout:    timeout,
		http:       &http.Client{},
		log:        log,
	}
}

func (c *VoiceClient) configured() bool {
	return c.baseURL != "" && c.apiKey != "" && c.fromNumber != ""
}

// CreateCall requests an outbound call; the lead id travels in metadata so the
// completion webhook can be correlated.
func (c *VoiceClient) CreateCall(ctx context.Context, req CallRequest) Result {
	if !c.configured() {
		return simulated("call", "voice provider not configured")
	}

	to, err := phone.Dialable(req.To)
	if err != nil {
		return failed(fmt.Errorf("voice: %w", err))
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	payload := createCallRequest{
		FromNumber:      c.fromNumber,
		ToNumber:        to,
		OverrideAgentID: c.agentID,
		DynamicVariables: map[string]string{
			"customer_name": req.CustomerName,
			"language_code": req.LanguageCode,
			"budget":        req.Budget,
			"location":      req.Location,
		},
		Metadata: map[string]string{"lead_id": req.LeadID},
	}

	callID, err := c.post(ctx, payload)
	if err != nil {
		c.log.WithContext(ctx).DependencyFallback("voice", "create_call", err, "lead_id", req.LeadID)
		return failed(err)
	}

	c.log.Info("voice call created", "lead_id", req.LeadID, "call_id", callID)
	return sent(callID, "call registered")
}

func (c *VoiceClient) post(ctx context.Context, payload createCallRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal call payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/create-phone-call", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("voice request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("voice provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed createCallResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode voice response: %w", err)
	}
	if parsed.CallID == "" {
		return "", fmt.Errorf("voice response missing call id")
	}
	return parsed.CallID, nil
}
