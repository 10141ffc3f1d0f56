package services

import (
	"context"
	"errors"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"salonmarket-backend/utils"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Notifier delivers a text message and reports the channel it used.
type Notifier interface {
	Send(ctx context.Context, to, body string) (channel string, err error)
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

type TwilioNotifier struct {
	client *twilio.RestClient
	cfg    TwilioConfig
	logger *zap.Logger
}

func NewTwilioNotifier(cfg TwilioConfig, logger *zap.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		cfg:    cfg,
		logger: logger,
	}
}

// Send uses WhatsApp for E.164 numbers when a WhatsApp sender is configured, SMS otherwise.
func (n *TwilioNotifier) Send(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	to = utils.NormalizePhone(to)
	if to == "" {
		return "", errors.New("recipient phone number is empty")
	}

	channel := ChannelSMS
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if strings.HasPrefix(to, "+") && n.cfg.WhatsAppNumber != "" {
		channel = ChannelWhatsApp
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + n.cfg.WhatsAppNumber)
	} else {
		params.SetTo(to)
		params.SetFrom(n.cfg.PhoneNumber)
	}

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return channel, err
	}
	if resp.Sid != nil {
		n.logger.Debug("message sent", zap.String("to", to), zap.String("sid", *resp.Sid))
	}
	return channel, nil
}

// LogNotifier only logs messages. It stands in when no Twilio credentials are configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, to, body string) (string, error) {
	n.logger.Info("notification", zap.String("to", to), zap.String("body", body))
	return ChannelSMS, nil
}
