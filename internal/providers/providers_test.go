package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"propboost_backend/platform/logger"
)

const (
	statusFmt = "expected status %s, got %+v"
	testPhone = "+971501234567"
)

type testConfig struct {
	whatsAppURL string
	voiceURL    string
	voiceKey    string
	voiceFrom   string
	sendGridKey string
	smtpHost    string
}

func (c testConfig) GetWhatsAppURL() string        { return c.whatsAppURL }
func (c testConfig) GetWhatsAppKey() string        { return "user:pass" }
func (c testConfig) GetWhatsAppDeviceID() string   { return "device-1" }
func (c testConfig) GetVoiceAPIURL() string        { return c.voiceURL }
func (c testConfig) GetVoiceAPIKey() string        { return c.voiceKey }
func (c testConfig) GetVoiceAgentID() string       { return "agent-1" }
func (c testConfig) GetVoiceFromNumber() string    { return c.voiceFrom }
func (c testConfig) GetVoiceWebhookSecret() string { return "" }
func (c testConfig) GetSendGridAPIKey() string     { return c.sendGridKey }
func (c testConfig) GetSMTPHost() string           { return c.smtpHost }
func (c testConfig) GetSMTPPort() int              { return 587 }
func (c testConfig) GetSMTPUsername() string       { return "" }
func (c testConfig) GetSMTPPassword() string       { return "" }
func (c testConfig) GetEmailFromName() string      { return "PropBoost" }
func (c testConfig) GetEmailFromAddress() string   { return "agents@propboost.test" }

var testLog = logger.New("development")

func TestWhatsAppSimulatedWithoutGateway(t *testing.T) {
	client := NewWhatsAppClient(testConfig{}, time.Second, testLog)
	result := client.Send(context.Background(), testPhone, "hello")

	if result.Status != StatusSimulated || !result.Status.Delivered() {
		t.Fatalf(statusFmt, StatusSimulated, result)
	}
	if !strings.HasPrefix(result.ProviderRef, "sim-wa-") {
		t.Fatalf("expected synthesized reference, got %q", result.ProviderRef)
	}
}

func TestWhatsAppSendReturnsMessageID(t *testing.T) {
	var got gowaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send/message" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
			t.Errorf("expected basic auth header")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"code":"SUCCESS","results":{"message_id":"wamid-1","status":"sent"}}`))
	}))
	defer srv.Close()

	client := NewWhatsAppClient(testConfig{whatsAppURL: srv.URL}, time.Second, testLog)
	result := client.Send(context.Background(), testPhone, "hello")

	if result.Status != StatusSent || result.ProviderRef != "wamid-1" {
		t.Fatalf(statusFmt, StatusSent, result)
	}
	if got.Phone != "971501234567" {
		t.Fatalf("expected digits-only phone, got %q", got.Phone)
	}
}

func TestWhatsAppProviderErrorBecomesFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "device offline", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewWhatsAppClient(testConfig{whatsAppURL: srv.URL}, time.Second, testLog)
	result := client.Send(context.Background(), testPhone, "hello")

	if result.Status != StatusFailed || result.Status.Delivered() {
		t.Fatalf(statusFmt, StatusFailed, result)
	}
	if !strings.Contains(result.Message, "device offline") {
		t.Fatalf("expected provider error text, got %q", result.Message)
	}
}

func TestWhatsAppTimeoutBecomesFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := NewWhatsAppClient(testConfig{whatsAppURL: srv.URL}, 30*time.Millisecond, testLog)
	if result := client.Send(context.Background(), testPhone, "hello"); result.Status != StatusFailed {
		t.Fatalf(statusFmt, StatusFailed, result)
	}
}

func TestVoiceCreateCallCarriesLeadMetadata(t *testing.T) {
	var got createCallRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/create-phone-call" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer voice-key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"call_id":"call_123","call_status":"registered"}`))
	}))
	defer srv.Close()

	client := NewVoiceClient(testConfig{voiceURL: srv.URL, voiceKey: "voice-key", voiceFrom: "+97140000000"}, time.Second, testLog)
	result := client.CreateCall(context.Background(), CallRequest{
		To:           "050 123 4567",
		LeadID:       "lead-1",
		CustomerName: "Sara",
		LanguageCode: "en-US",
		Budget:       "5.5M AED",
	})

	if result.Status != StatusSent || result.ProviderRef != "call_123" {
		t.Fatalf(statusFmt, StatusSent, result)
	}
	if got.Metadata["lead_id"] != "lead-1" || got.ToNumber != testPhone {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.DynamicVariables["customer_name"] != "Sara" || got.DynamicVariables["budget"] != "5.5M AED" {
		t.Fatalf("unexpected dynamic variables: %+v", got.DynamicVariables)
	}
}

func TestVoiceSimulatedWithoutCredentials(t *testing.T) {
	client := NewVoiceClient(testConfig{voiceURL: "https://api.example.test"}, time.Second, testLog)
	result := client.CreateCall(context.Background(), CallRequest{To: testPhone, LeadID: "lead-1"})
	if result.Status != StatusSimulated || !strings.HasPrefix(result.ProviderRef, "sim-call-") {
		t.Fatalf(statusFmt, StatusSimulated, result)
	}
}

func TestEmailSenderSelection(t *testing.T) {
	if _, ok := NewEmailSender(testConfig{}, time.Second, testLog).(SimulatedEmailSender); !ok {
		t.Fatal("expected simulated sender without credentials")
	}
	if _, ok := NewEmailSender(testConfig{sendGridKey: "SG.x"}, time.Second, testLog).(*SendGridSender); !ok {
		t.Fatal("expected sendgrid sender when api key is set")
	}
	if _, ok := NewEmailSender(testConfig{smtpHost: "smtp.test"}, time.Second, testLog).(*SMTPSender); !ok {
		t.Fatal("expected smtp sender when host is set")
	}
}

func TestSimulatedEmail(t *testing.T) {
	result := SimulatedEmailSender{}.Send(context.Background(), "a@b.test", "Hi", "<p>Hi</p>")
	if result.Status != StatusSimulated || !strings.HasPrefix(result.ProviderRef, "sim-email-") {
		t.Fatalf(statusFmt, StatusSimulated, result)
	}
}

func TestSendGridSendReturnsMessageID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != sendGridEndpoint {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer SG.test" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("X-Message-Id", "sg-msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewSendGridSender("SG.test", srv.URL, "agents@propboost.test", "PropBoost", time.Second, testLog)
	result := sender.Send(context.Background(), "buyer@example.test", "Viewing tomorrow", "<p>See you</p>")
	if result.Status != StatusSent || result.ProviderRef != "sg-msg-1" {
		t.Fatalf(statusFmt, StatusSent, result)
	}
}

func TestSendGridErrorBecomesFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	sender := NewSendGridSender("SG.bad", srv.URL, "agents@propboost.test", "PropBoost", time.Second, testLog)
	result := sender.Send(context.Background(), "buyer@example.test", "Hi", "<p>Hi</p>")
	if result.Status != StatusFailed || !strings.Contains(result.Message, "401") {
		t.Fatalf(statusFmt, StatusFailed, result)
	}
}

func TestSMTPBuildMessageSetsMessageID(t *testing.T) {
	sender := NewSMTPSender("smtp.test", 587, "", "", "agents@propboost.test", "PropBoost", time.Second, testLog)
	msg, err := sender.buildMessage("buyer@example.test", "Hello", "<p>Hello</p>")
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	if msg.GetMessageID() == "" {
		t.Fatal("expected generated message id")
	}

	if _, err := sender.buildMessage("not-an-address", "Hello", "<p>Hello</p>"); err == nil {
		t.Fatal("expected invalid recipient to be rejected")
	}
}

func TestUndialableNumberFailsWithoutCallingProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("provider must not be called for undialable numbers, got %s", r.URL.Path)
	}))
	defer srv.Close()

	wa := NewWhatsAppClient(testConfig{whatsAppURL: srv.URL}, time.Second, testLog)
	if result := wa.Send(context.Background(), "12", "hello"); result.Status != StatusFailed {
		t.Fatalf(statusFmt, StatusFailed, result)
	}

	voice := NewVoiceClient(testConfig{voiceURL: srv.URL, voiceKey: "key", voiceFrom: "+97145550000"}, time.Second, testLog)
	if result := voice.CreateCall(context.Background(), CallRequest{To: "n/a", LeadID: "lead-1"}); result.Status != StatusFailed {
		t.Fatalf(statusFmt, StatusFailed, result)
	}
}
