package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"nyumbasmart_backend/internals/configs"
)

// Delivery is what a provider reports for an accepted message.
type Delivery struct {
	ProviderRef string
	Cost        string
}

// Sender delivers a single text message.
type Sender interface {
	Send(ctx context.Context, to, body string) (Delivery, error)
}

// =========================================================
// Africa's Talking style HTTP messaging API
// =========================================================

type atRecipient struct {
	StatusCode int    `json:"statusCode"`
	Number     string `json:"number"`
	Status     string `json:"status"`
	Cost       string `json:"cost"`
	MessageID  string `json:"messageId"`
}

type atResponse struct {
	SMSMessageData struct {
		Message    string        `json:"Message"`
		Recipients []atRecipient `json:"Recipients"`
	} `json:"SMSMessageData"`
}

type SMSSender struct {
	httpClient *resty.Client
	username   string
	senderID   string
	logger     *zap.Logger
}

func NewSMSSender(cfg configs.SMSConfig, logger *zap.Logger) (*SMSSender, error) {
	if strings.TrimSpace(cfg.Username) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("sms username and api key are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetHeader("Accept", "application/json").
		SetHeader("apiKey", cfg.APIKey)

	return &SMSSender{
		httpClient: client,
		username:   cfg.Username,
		senderID:   cfg.SenderID,
		logger:     logger.Named("sms"),
	}, nil
}

func (s *SMSSender) Send(ctx context.Context, to, body string) (Delivery, error) {
	form := map[string]string{
		"username": s.username,
		"to":       to,
		"message":  body,
	}
	if s.senderID != "" {
		form["from"] = s.senderID
	}

	var out atResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		Post("/version1/messaging")
	if err != nil {
		return Delivery{}, fmt.Errorf("sms request: %w", err)
	}
	if resp.IsError() {
		return Delivery{}, fmt.Errorf("sms provider returned %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	recips := out.SMSMessageData.Recipients
	if len(recips) == 0 {
		return Delivery{}, fmt.Errorf("sms not accepted: %s", out.SMSMessageData.Message)
	}
	r := recips[0]
	if !strings.EqualFold(r.Status, "Success") {
		return Delivery{}, fmt.Errorf("sms to %s rejected: %s (%d)", r.Number, r.Status, r.StatusCode)
	}

	s.logger.Debug("sms accepted", zap.String("message_id", r.MessageID), zap.String("cost", r.Cost))
	return Delivery{ProviderRef: r.MessageID, Cost: r.Cost}, nil
}

// =========================================================
// Disabled mode
// =========================================================

// LogSender writes the message to the log instead of sending it.
type LogSender struct {
	Log *zap.Logger
}

func (s LogSender) Send(ctx context.Context, to, body string) (Delivery, error) {
	if s.Log != nil {
		s.Log.Info("sms disabled, not sent", zap.String("to", to), zap.String("message", body))
	}
	return Delivery{}, nil
}

// NewSender picks the HTTP sender or the log sender from config. A missing
// credential falls back to logging.
func NewSender(cfg configs.SMSConfig, logger *zap.Logger) Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Disabled {
		return LogSender{Log: logger.Named("sms")}
	}
	s, err := NewSMSSender(cfg, logger)
	if err != nil {
		logger.Warn("sms misconfigured, falling back to log sender", zap.Error(err))
		return LogSender{Log: logger.Named("sms")}
	}
	return s
}
