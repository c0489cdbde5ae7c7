package domain

import "encoding/json"

// TestSendRequest is the input of a test send: a template delivered to an
// explicit list of addresses.
type TestSendRequest struct {
	Domain      string `validate:"required"`
	Template    string `validate:"required"`
	FromAddress string `validate:"required"`
	TestEmails  []string
	Subject     string
	ReplyTo     string
}

// LiveSendRequest is the input of a live send: a template delivered to a
// Mailgun mailing list, optionally copied to test addresses.
type LiveSendRequest struct {
	Domain          string `validate:"required"`
	Template        string `validate:"required"`
	MailList        string `validate:"required"`
	FromAddress     string `validate:"required"`
	IncludeTestList bool
	TestEmails      []string
	Subject         string
	ReplyTo         string
}

// Message is the provider-neutral payload of a message-send call.
// Empty Subject and ReplyTo are omitted from the outbound request.
type Message struct {
	From     string
	To       []string
	Subject  string
	Template string
	ReplyTo  string
}

// SendResult is Mailgun's acknowledgement of an accepted message.
type SendResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Template is a Mailgun template item, relayed as returned by the provider.
type Template = json.RawMessage

// MailingList is a Mailgun mailing list item, relayed as returned by the provider.
type MailingList = json.RawMessage

// MailingListDetail is the response of the mailing-list detail operation.
type MailingListDetail struct {
	MailList   string `json:"mail_list"`
	Recipients int    `json:"recipients"`
}

// StatusResponse is the body of successful mutating and send operations.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
