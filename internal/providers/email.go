package providers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"propboost_backend/platform/config"
	"propboost_backend/platform/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	gomail "github.com/wneessen/go-mail"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// NewEmailSender picks SendGrid when an API key is configured, then SMTP,
// and otherwise a sender that only simulates delivery.
func NewEmailSender(cfg config.EmailConfig, timeout time.Duration, log *logger.Logger) EmailSender {
	switch {
	case cfg.GetSendGridAPIKey() != "":
		return NewSendGridSender(cfg.GetSendGridAPIKey(), sendGridHost, cfg.GetEmailFromAddress(), cfg.GetEmailFromName(), timeout, log)
	case cfg.GetSMTPHost() != "":
		return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUsername(), cfg.GetSMTPPassword(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName(), timeout, log)
	default:
		return SimulatedEmailSender{}
	}
}

// SimulatedEmailSender is used when no email provider is configured.
type SimulatedEmailSender struct{}

func (SimulatedEmailSender) Send(_ context.Context, _, _, _ string) Result {
	return simulated("email", "email provider not configured")
}

// SendGridSender delivers email through the SendGrid v3 API.
type SendGridSender struct {
	apiKey    string
	host      string
	fromEmail string
	fromName  string
	timeout   time.Duration
	log       *logger.Logger
}

func NewSendGridSender(apiKey, host, fromEmail, fromName string, timeout time.Duration, log *logger.Logger) *SendGridSender {
	return &SendGridSender{
		apiKey:    apiKey,
		host:      strings.TrimRight(host, "/"),
		fromEmail: fromEmail,
		fromName:  fromName,
		timeout:   timeout,
		log:       log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, htmlBody string) Result {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		s.log.WithContext(ctx).DependencyFallback("sendgrid", "send", err)
		return failed(fmt.Errorf("sendgrid request failed: %w", err))
	}
	if response.StatusCode >= http.StatusBadRequest {
		err := fmt.Errorf("sendgrid returned %d: %s", response.StatusCode, strings.TrimSpace(response.Body))
		s.log.WithContext(ctx).DependencyFallback("sendgrid", "send", err)
		return failed(err)
	}

	ref := firstHeader(response.Headers, "X-Message-Id")
	if ref == "" {
		ref = fmt.Sprintf("sendgrid-%d", time.Now().UnixNano())
	}
	s.log.Info("email sent via sendgrid", "message_id", ref)
	return sent(ref, "email accepted by sendgrid")
}

func firstHeader(headers map[string][]string, name string) string {
	for key, values := range headers {
		if strings.EqualFold(key, name) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// SMTPSender delivers email over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
	timeout   time.Duration
	log       *logger.Logger
}

func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string, timeout time.Duration, log *logger.Logger) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
		timeout:   timeout,
		log:       log,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) Result {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	msg, err := s.buildMessage(to, subject, htmlBody)
	if err != nil {
		return failed(err)
	}

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(s.timeout),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return failed(fmt.Errorf("smtp client: %w", err))
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.log.WithContext(ctx).DependencyFallback("smtp", "send", err)
		return failed(fmt.Errorf("smtp send: %w", err))
	}

	ref := msg.GetMessageID()
	s.log.Info("email sent via smtp", "message_id", ref)
	return sent(ref, "email accepted by smtp relay")
}

func (s *SMTPSender) buildMessage(to, subject, htmlBody string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetMessageID()
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	return msg, nil
}
