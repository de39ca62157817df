package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"github.com/onurcolak/whatsapp-message-relay/internal/domain"
	"github.com/onurcolak/whatsapp-message-relay/pkg/logger"
	"github.com/onurcolak/whatsapp-message-relay/pkg/whatsapp"
)

// Small internal interface so we can test without touching the real provider.
type providerClient interface {
	SendMessage(ctx context.Context, to, body string) (*whatsapp.SendMessageResponse, error)
	GetMessageStatus(ctx context.Context, messageID string) (json.RawMessage, error)
}

type RelayService struct {
	client providerClient
	now    func() time.Time
}

func NewRelayService(client providerClient) *RelayService {
	return &RelayService{
		client: client,
		now:    time.Now,
	}
}

// SendMessage forwards an already validated request to the provider.
// The phone number is sent with all whitespace removed.
func (s *RelayService) SendMessage(ctx context.Context, req domain.SendRequest) (*domain.SentMessage, error) {
	phoneNumber := stripWhitespace(req.PhoneNumber)

	resp, err := s.client.SendMessage(ctx, phoneNumber, req.Message)
	if err != nil {
		if whatsapp.IsProviderFailure(err) {
			logger.Warnf("WhatsApp API rejected message for %s: %v", phoneNumber, err)
		} else {
			logger.Errorf("WhatsApp API unreachable for %s: %v", phoneNumber, err)
		}
		return nil, err
	}

	messageID := resp.FirstMessageID()
	if messageID == "" {
		logger.Warnf("Provider accepted message for %s without returning a message id", phoneNumber)
	} else {
		logger.Infof("Successfully sent message to %s (messageId: %s)", phoneNumber, messageID)
	}

	return &domain.SentMessage{
		MessageID:   messageID,
		PhoneNumber: phoneNumber,
		Message:     req.Message,
		Timestamp:   domain.FormatTimestamp(s.now()),
	}, nil
}

// GetMessageStatus returns the provider's payload for messageID untouched.
func (s *RelayService) GetMessageStatus(ctx context.Context, messageID string) (json.RawMessage, error) {
	payload, err := s.client.GetMessageStatus(ctx, messageID)
	if err != nil {
		logger.Errorf("Error getting message status for %s: %v", messageID, err)
		return nil, err
	}

	return payload, nil
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
