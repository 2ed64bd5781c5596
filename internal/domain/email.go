package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// QRImageEncoder renders a payload string into a displayable image reference
// (a base64 PNG data URL) suitable for embedding in email HTML.
type QRImageEncoder interface {
	DataURL(payload string) (string, error)
}

// QRRecipient is one participant in a bulk QR email send.
type QRRecipient struct {
	ParticipantID string
	Name          string
	Email         string
	QRCode        string
}

// SendSummary reports the result of a bulk send. Total == Successful + Failed.
// swagger:model SendSummary
type SendSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// QRCodeEmailData holds data for the qr_code email template.
type QRCodeEmailData struct {
	Name      string
	EventName string
	QRImage   string
}

// NotifierService fans out per-participant QR code emails. Each recipient is
// attempted independently; one failure never aborts the batch. Delivery order
// is not guaranteed and re-invocation may re-send to recipients that already
// succeeded.
type NotifierService interface {
	SendAll(ctx context.Context, recipients []QRRecipient, eventName string) SendSummary
}
