// Package mailgun is a minimal client for the Mailgun v3 REST API covering
// templates, mailing lists and message sends. Every call is authorized with
// the API key passed by the caller, since keys are stored per domain.
package mailgun

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bcnelson/mailgun-domain-manager/internal/config"
	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/metrics"
)

// API defines the Mailgun operations used by the services.
type API interface {
	ListTemplates(ctx context.Context, apiKey, domainName string) ([]domain.Template, error)
	ListMailingLists(ctx context.Context, apiKey string) ([]domain.MailingList, error)
	MailingListMemberCount(ctx context.Context, apiKey, mailList string) (int, error)
	SendMessage(ctx context.Context, apiKey, domainName string, msg *domain.Message) (*domain.SendResult, error)
}

// Client is a Mailgun API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Client implements API.
var _ API = (*Client)(nil)

// NewClient creates a client from the Mailgun configuration.
func NewClient(cfg config.MailgunConfig) *Client {
	return NewClientWithHTTP(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP creates a client that sends requests through httpClient.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type itemsResponse struct {
	Items []json.RawMessage `json:"items"`
}

type membersResponse struct {
	TotalCount int `json:"total_count"`
}

// do executes a request authorized with Basic auth "api:<apiKey>". Only
// HTTP 200 counts as success; any other status becomes a ProviderError
// carrying the raw body.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, form url.Values, apiKey string) (body []byte, err error) {
	defer func() { metrics.ObserveProviderCall(operation, err) }()

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth("api", apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: "reading " + path, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// ListTemplates fetches the templates stored for a domain.
func (c *Client) ListTemplates(ctx context.Context, apiKey, domainName string) ([]domain.Template, error) {
	body, err := c.do(ctx, "list_templates", http.MethodGet, "/"+url.PathEscape(domainName)+"/templates", nil, nil, apiKey)
	if err != nil {
		return nil, err
	}

	var resp itemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing templates response: %w", err)
	}
	return nonNil(resp.Items), nil
}

// ListMailingLists fetches the mailing lists of the account owning apiKey.
func (c *Client) ListMailingLists(ctx context.Context, apiKey string) ([]domain.MailingList, error) {
	body, err := c.do(ctx, "list_mailing_lists", http.MethodGet, "/lists", nil, nil, apiKey)
	if err != nil {
		return nil, err
	}

	var resp itemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing mailing lists response: %w", err)
	}
	return nonNil(resp.Items), nil
}

// MailingListMemberCount returns the member count of a mailing list. Only a
// single member is requested; the count comes from total_count.
func (c *Client) MailingListMemberCount(ctx context.Context, apiKey, mailList string) (int, error) {
	query := url.Values{"limit": {"1"}}
	body, err := c.do(ctx, "list_members", http.MethodGet, "/lists/"+url.PathEscape(mailList)+"/members", query, nil, apiKey)
	if err != nil {
		return 0, err
	}

	var resp membersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("parsing members response: %w", err)
	}
	return resp.TotalCount, nil
}

// SendMessage posts a message for the domain.
func (c *Client) SendMessage(ctx context.Context, apiKey, domainName string, msg *domain.Message) (*domain.SendResult, error) {
	body, err := c.do(ctx, "send_message", http.MethodPost, "/"+url.PathEscape(domainName)+"/messages", nil, MessageForm(msg), apiKey)
	if err != nil {
		return nil, err
	}

	var result domain.SendResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing send response: %w", err)
	}
	return &result, nil
}

// MessageForm encodes a message as Mailgun form fields. Every recipient is a
// separate "to" value. Subject and the Reply-To header are only present when
// set.
func MessageForm(msg *domain.Message) url.Values {
	form := url.Values{}
	form.Set("from", msg.From)
	for _, to := range msg.To {
		form.Add("to", to)
	}
	if msg.Subject != "" {
		form.Set("subject", msg.Subject)
	}
	form.Set("template", msg.Template)
	if msg.ReplyTo != "" {
		form.Set("h:Reply-To", msg.ReplyTo)
	}
	return form
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}
