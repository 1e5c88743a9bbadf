package domain

const (
	AttachmentTypeTemplate = "template"
	TemplateTypeGeneric    = "generic"
	QuickReplyLocation     = "location"
)

// OutboundMessage is either a text message (optionally with quick replies)
// or a structured template attachment.
type OutboundMessage struct {
	Text         string       `json:"text,omitempty"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
	Attachment   *Attachment  `json:"attachment,omitempty"`
}

type QuickReply struct {
	ContentType string `json:"content_type"`
}

type Attachment struct {
	Type    string          `json:"type"`
	Payload TemplatePayload `json:"payload"`
}

type TemplatePayload struct {
	TemplateType string            `json:"template_type"`
	Elements     []TemplateElement `json:"elements"`
}

type TemplateElement struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Subtitle string `json:"subtitle"`
}

func TextMessage(text string) OutboundMessage {
	return OutboundMessage{Text: text}
}

func GenericTemplate(elements ...TemplateElement) OutboundMessage {
	return OutboundMessage{
		Attachment: &Attachment{
			Type: AttachmentTypeTemplate,
			Payload: TemplatePayload{
				TemplateType: TemplateTypeGeneric,
				Elements:     elements,
			},
		},
	}
}

// Envelope addresses a message to an account. ID keys idempotent delivery.
type Envelope struct {
	ID        string          `json:"id"`
	SessionID SessionID       `json:"session_id"`
	Recipient AccountID       `json:"recipient"`
	Message   OutboundMessage `json:"message"`
}
