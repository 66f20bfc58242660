// Package freshdesk is a minimal client for the Freshdesk v2 REST API,
// limited to what the assistant needs: creating tickets and checking
// connectivity. When the integration is unconfigured every call
// short-circuits without network I/O; that is a disabled feature, not an
// error.
package freshdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Error kinds reported in SubmitResult.
const (
	ErrorKindNotConfigured = "not_configured"
	ErrorKindHTTP          = "http_error"
	ErrorKindTransport     = "transport_error"
)

// Config holds Freshdesk client configuration.
type Config struct {
	Domain  string        // e.g. "kangourou.freshdesk.com"
	APIKey  string        // account API key, used as basic-auth user
	Timeout time.Duration // per-request timeout, defaults to 30s
	BaseURL string        // overrides https://{domain}/api/v2, for tests
}

// Client talks to the Freshdesk API. The zero-value configuration is valid
// and means "integration disabled".
type Client struct {
	domain     string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a Freshdesk client.
func New(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	baseURL := config.BaseURL
	if baseURL == "" && config.Domain != "" {
		baseURL = fmt.Sprintf("https://%s/api/v2", config.Domain)
	}
	return &Client{
		domain:     config.Domain,
		apiKey:     config.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether both the domain and the API key are configured.
func (c *Client) Enabled() bool {
	return c.domain != "" && c.apiKey != ""
}

// Ticket is a ticket creation request.
type Ticket struct {
	Subject     string   // plain text
	Description string   // may embed HTML
	Priority    int      // 1=Low 2=Medium 3=High 4=Urgent
	Status      int      // 2=Open 3=Pending 4=Resolved 5=Closed
	Email       string   // requester email, optional
	Name        string   // requester name, optional
	Tags        []string // optional
}

// SubmitResult is the outcome of a ticket submission. Failures are values,
// not errors, so callers can show the formatted ticket text as a manual
// fallback instead of aborting.
type SubmitResult struct {
	Success   bool   `json:"success"`
	TicketID  int64  `json:"ticket_id,omitempty"`
	TicketURL string `json:"ticket_url,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ticketRequest is the JSON payload for POST /tickets.
type ticketRequest struct {
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Priority    int      `json:"priority"`
	Status      int      `json:"status"`
	Source      int      `json:"source"` // 2 = Portal
	Email       string   `json:"email,omitempty"`
	Name        string   `json:"name,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ticketResponse is the JSON body returned on HTTP 201.
type ticketResponse struct {
	ID int64 `json:"id"`
}

// CreateTicket files a ticket. Single attempt, no retry: an HTTP or
// transport failure comes back as a failed result with a human-readable
// message.
func (c *Client) CreateTicket(ctx context.Context, t Ticket) SubmitResult {
	if !c.Enabled() {
		return SubmitResult{
			Success:   false,
			ErrorKind: ErrorKindNotConfigured,
			Message:   "configurez FRESHDESK_DOMAIN et FRESHDESK_API_KEY pour activer la création automatique de tickets",
		}
	}

	payload := ticketRequest{
		Subject:     t.Subject,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		Source:      2,
		Email:       t.Email,
		Name:        t.Name,
		Tags:        t.Tags,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SubmitResult{Success: false, ErrorKind: ErrorKindTransport, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tickets", bytes.NewReader(body))
	if err != nil {
		return SubmitResult{Success: false, ErrorKind: ErrorKindTransport, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, "X")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SubmitResult{Success: false, ErrorKind: ErrorKindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return SubmitResult{Success: false, ErrorKind: ErrorKindTransport, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusCreated {
		slog.Warn("ticket creation failed", "status", resp.StatusCode)
		return SubmitResult{
			Success:   false,
			ErrorKind: ErrorKindHTTP,
			Message:   fmt.Sprintf("erreur HTTP %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var ticket ticketResponse
	if err := json.Unmarshal(respBody, &ticket); err != nil {
		return SubmitResult{Success: false, ErrorKind: ErrorKindHTTP, Message: fmt.Sprintf("réponse illisible: %v", err)}
	}

	return SubmitResult{
		Success:   true,
		TicketID:  ticket.ID,
		TicketURL: fmt.Sprintf("https://%s/a/tickets/%d", c.domain, ticket.ID),
	}
}

// CheckConnection performs a read-only request against the ticket listing
// endpoint. Returns nil when the API answers 200.
func (c *Client) CheckConnection(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("freshdesk: %s", ErrorKindNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tickets?per_page=1", nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.apiKey, "X")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
