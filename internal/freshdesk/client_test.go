package freshdesk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateTicket_NotConfigured(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	// BaseURL set but no domain/key: the client must not touch the network.
	client := New(Config{BaseURL: server.URL})
	if client.Enabled() {
		t.Fatal("Enabled() = true for an unconfigured client")
	}

	result := client.CreateTicket(context.Background(), Ticket{Subject: "test"})

	if result.Success {
		t.Error("Success = true, want failure")
	}
	if result.ErrorKind != ErrorKindNotConfigured {
		t.Errorf("ErrorKind = %q, want %q", result.ErrorKind, ErrorKindNotConfigured)
	}
	if calls != 0 {
		t.Errorf("server received %d requests, want 0", calls)
	}
}

func TestCreateTicket_Success(t *testing.T) {
	var gotPayload map[string]any
	var gotAuthUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tickets" {
			t.Errorf("request = %s %s, want POST /tickets", r.Method, r.URL.Path)
		}
		gotAuthUser, _, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42}`))
	}))
	defer server.Close()

	client := New(Config{Domain: "kangourou.freshdesk.com", APIKey: "key123", BaseURL: server.URL})

	result := client.CreateTicket(context.Background(), Ticket{
		Subject:     "[Kaizen IA] Question : devis",
		Description: "<h2>Question</h2>",
		Priority:    2,
		Status:      2,
		Email:       "agent@example.fr",
		Tags:        []string{"kaizen-ia"},
	})

	if !result.Success {
		t.Fatalf("Success = false: %s", result.Message)
	}
	if result.TicketID != 42 {
		t.Errorf("TicketID = %d, want 42", result.TicketID)
	}
	if want := "https://kangourou.freshdesk.com/a/tickets/42"; result.TicketURL != want {
		t.Errorf("TicketURL = %q, want %q", result.TicketURL, want)
	}
	if gotAuthUser != "key123" {
		t.Errorf("basic-auth user = %q, want the API key", gotAuthUser)
	}
	if gotPayload["source"] != float64(2) {
		t.Errorf("payload source = %v, want 2 (Portal)", gotPayload["source"])
	}
	if gotPayload["subject"] != "[Kaizen IA] Question : devis" {
		t.Errorf("payload subject = %v", gotPayload["subject"])
	}
}

func TestCreateTicket_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"invalid_credentials"}`))
	}))
	defer server.Close()

	client := New(Config{Domain: "kangourou.freshdesk.com", APIKey: "bad", BaseURL: server.URL})

	result := client.CreateTicket(context.Background(), Ticket{Subject: "test"})

	if result.Success {
		t.Error("Success = true, want failure")
	}
	if result.ErrorKind != ErrorKindHTTP {
		t.Errorf("ErrorKind = %q, want %q", result.ErrorKind, ErrorKindHTTP)
	}
	if !strings.Contains(result.Message, "401") {
		t.Errorf("Message = %q, want the HTTP status embedded", result.Message)
	}
	if !strings.Contains(result.Message, "invalid_credentials") {
		t.Errorf("Message = %q, want the response body embedded", result.Message)
	}
}

func TestCreateTicket_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := New(Config{Domain: "kangourou.freshdesk.com", APIKey: "key", BaseURL: server.URL})

	result := client.CreateTicket(context.Background(), Ticket{Subject: "test"})

	if result.Success {
		t.Error("Success = true, want failure")
	}
	if result.ErrorKind != ErrorKindTransport {
		t.Errorf("ErrorKind = %q, want %q", result.ErrorKind, ErrorKindTransport)
	}
}

func TestCheckConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickets" || r.URL.Query().Get("per_page") != "1" {
			t.Errorf("request = %s, want GET /tickets?per_page=1", r.URL.String())
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(Config{Domain: "kangourou.freshdesk.com", APIKey: "key", BaseURL: server.URL})

	if err := client.CheckConnection(context.Background()); err != nil {
		t.Errorf("CheckConnection() error = %v", err)
	}
}

func TestCheckConnection_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(Config{Domain: "kangourou.freshdesk.com", APIKey: "key", BaseURL: server.URL})

	if err := client.CheckConnection(context.Background()); err == nil {
		t.Error("CheckConnection() expected an error on HTTP 403")
	}
}

func TestCheckConnection_NotConfigured(t *testing.T) {
	client := New(Config{})
	if err := client.CheckConnection(context.Background()); err == nil {
		t.Error("CheckConnection() expected an error when unconfigured")
	}
}
