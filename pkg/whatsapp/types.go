package whatsapp

import "encoding/json"

const (
	messagingProduct = "whatsapp"
	messageTypeText  = "text"
)

// SendMessageRequest is the Cloud API body for a plain text message.
type SendMessageRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             TextBody `json:"text"`
}

type TextBody struct {
	Body string `json:"body"`
}

type Contact struct {
	Input string `json:"input"`
	WaID  string `json:"wa_id"`
}

type MessageRef struct {
	ID string `json:"id"`
}

// SendMessageResponse is the provider's reply to a successful send.
type SendMessageResponse struct {
	MessagingProduct string       `json:"messaging_product"`
	Contacts         []Contact    `json:"contacts"`
	Messages         []MessageRef `json:"messages"`
}

// UnmarshalJSON decodes each field on its own so that one malformed field does not
// hide the rest. A messages entry whose id is not a string keeps its slot with an empty ID.
func (r *SendMessageResponse) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = SendMessageResponse{}

	if raw, ok := fields["messaging_product"]; ok {
		_ = json.Unmarshal(raw, &r.MessagingProduct)
	}

	if raw, ok := fields["contacts"]; ok {
		var contacts []Contact
		if err := json.Unmarshal(raw, &contacts); err == nil {
			r.Contacts = contacts
		}
	}

	if raw, ok := fields["messages"]; ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err == nil {
			r.Messages = make([]MessageRef, len(entries))
			for i, entry := range entries {
				var ref struct {
					ID json.RawMessage `json:"id"`
				}
				if json.Unmarshal(entry, &ref) != nil {
					continue
				}
				_ = json.Unmarshal(ref.ID, &r.Messages[i].ID)
			}
		}
	}

	return nil
}

// FirstMessageID returns the id of the first accepted message, or "" when the
// provider did not return any.
func (r *SendMessageResponse) FirstMessageID() string {
	if r == nil || len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].ID
}
