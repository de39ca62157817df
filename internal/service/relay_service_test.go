package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/whatsapp-message-relay/internal/domain"
	"github.com/onurcolak/whatsapp-message-relay/pkg/response"
	"github.com/onurcolak/whatsapp-message-relay/pkg/whatsapp"
)

//
// Test fakes – only for this file.
//

type fakeClient struct {
	sendFunc   func(ctx context.Context, to, body string) (*whatsapp.SendMessageResponse, error)
	statusFunc func(ctx context.Context, messageID string) (json.RawMessage, error)

	lastTo   string
	lastBody string
}

func (f *fakeClient) SendMessage(ctx context.Context, to, body string) (*whatsapp.SendMessageResponse, error) {
	f.lastTo = to
	f.lastBody = body
	if f.sendFunc != nil {
		return f.sendFunc(ctx, to, body)
	}
	return &whatsapp.SendMessageResponse{}, nil
}

func (f *fakeClient) GetMessageStatus(ctx context.Context, messageID string) (json.RawMessage, error) {
	if f.statusFunc != nil {
		return f.statusFunc(ctx, messageID)
	}
	return json.RawMessage(`{}`), nil
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 10, 20, 30, 123_000_000, time.FixedZone("IST", 5*3600+1800))
}

//
// Tests
//

func TestSendMessage_SuccessFlow(t *testing.T) {
	client := &fakeClient{
		sendFunc: func(ctx context.Context, to, body string) (*whatsapp.SendMessageResponse, error) {
			return &whatsapp.SendMessageResponse{
				Messages: []whatsapp.MessageRef{{ID: "wamid.1"}, {ID: "wamid.2"}},
			}, nil
		},
	}

	svc := NewRelayService(client)
	svc.now = fixedClock

	sent, err := svc.SendMessage(context.Background(), domain.SendRequest{
		PhoneNumber: "+91 12345\t67890",
		Message:     "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "+911234567890", client.lastTo)
	assert.Equal(t, "hello", client.lastBody)

	assert.Equal(t, "wamid.1", sent.MessageID)
	assert.Equal(t, "+911234567890", sent.PhoneNumber)
	assert.Equal(t, "hello", sent.Message)
	assert.Equal(t, "2024-05-01T04:50:30.123Z", sent.Timestamp)
}

func TestSendMessage_NoMessageIDLeavesFieldEmpty(t *testing.T) {
	svc := NewRelayService(&fakeClient{})

	sent, err := svc.SendMessage(context.Background(), domain.SendRequest{PhoneNumber: "+911234567890", Message: "hi"})
	require.NoError(t, err)
	assert.Empty(t, sent.MessageID)

	raw, err := json.Marshal(sent)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "messageId")
}

func TestSendMessage_ProviderErrorIsReturnedUnchanged(t *testing.T) {
	providerErr := &whatsapp.GraphError{HTTPStatus: 400, Code: 131026, Message: "undeliverable"}
	svc := NewRelayService(&fakeClient{
		sendFunc: func(ctx context.Context, to, body string) (*whatsapp.SendMessageResponse, error) {
			return nil, providerErr
		},
	})

	sent, err := svc.SendMessage(context.Background(), domain.SendRequest{PhoneNumber: "+911234567890", Message: "hi"})
	assert.Nil(t, sent)
	assert.Same(t, providerErr, err)
}

func TestGetMessageStatus_PassesPayloadThrough(t *testing.T) {
	payload := json.RawMessage(`{"id":"wamid.1","status":"read"}`)
	var gotID string

	svc := NewRelayService(&fakeClient{
		statusFunc: func(ctx context.Context, messageID string) (json.RawMessage, error) {
			gotID = messageID
			return payload, nil
		},
	})

	got, err := svc.GetMessageStatus(context.Background(), "wamid.1")
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", gotID)
	assert.Equal(t, string(payload), string(got))
}

func TestNormalizeSendFailure_GraphErrorWithSubcode(t *testing.T) {
	subcode := 2494055
	status, body := NormalizeSendFailure(&whatsapp.GraphError{
		HTTPStatus:   400,
		Code:         131026,
		Message:      "Message undeliverable",
		ErrorSubcode: &subcode,
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.Equal(t, MessageProviderError, body.Message)
	assert.Equal(t, response.ErrorDetail{
		Code:    131026,
		Message: "Message undeliverable",
		Details: 2494055,
	}, body.Error)
}

func TestNormalizeSendFailure_GraphErrorWithoutSubcode(t *testing.T) {
	status, body := NormalizeSendFailure(&whatsapp.GraphError{HTTPStatus: 401, Code: 190, Message: "expired token"})

	assert.Equal(t, http.StatusBadRequest, status)
	detail, ok := body.Error.(response.ErrorDetail)
	require.True(t, ok, "expected ErrorDetail, got %T", body.Error)
	assert.Equal(t, "No additional details", detail.Details)
}

func TestNormalizeSendFailure_TransportAndUnknownShapesAre500(t *testing.T) {
	cases := []error{
		&whatsapp.TransportError{Op: "send message", Err: errors.New("connection refused")},
		&whatsapp.UnexpectedResponseError{StatusCode: 502, Body: "bad gateway"},
		errors.New("boom"),
	}

	for _, err := range cases {
		status, body := NormalizeSendFailure(err)
		assert.Equal(t, http.StatusInternalServerError, status, "%T", err)
		assert.False(t, body.Success)
		assert.Equal(t, MessageSendFailed, body.Message)
		assert.Equal(t, err.Error(), body.Error)
	}
}

func TestNormalizeStatusFailure_AlwaysInternal(t *testing.T) {
	status, body := NormalizeStatusFailure(&whatsapp.GraphError{HTTPStatus: 404, Code: 100, Message: "Unsupported get request."})

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, MessageStatusFailed, body.Message)
	assert.Contains(t, body.Error, "Unsupported get request.")
}
