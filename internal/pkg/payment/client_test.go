package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alloservices/alloci/app/models"
)

func testClient(baseURL string) *Client {
	return &Client{
		APIKey:     "key",
		SiteID:     "123456",
		APIBaseURL: baseURL,
		NotifyURL:  "https://example.com/api/payments/cinetpay/webhook",
		ReturnURL:  "https://example.com/premium/retour",
		HTTPClient: http.DefaultClient,
	}
}

func TestClientCreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/payment" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload["transaction_id"] != "tx-42" {
			t.Fatalf("unexpected transaction_id %v", payload["transaction_id"])
		}
		if payload["currency"] != "XOF" {
			t.Fatalf("unexpected currency %v", payload["currency"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    "201",
			"message": "CREATED",
			"data": map[string]any{
				"payment_url": "https://checkout.cinetpay.com/payment/xyz",
			},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	tx := &models.Transaction{ID: "tx-42", Amount: 1200, Currency: "XOF"}

	gotURL, raw, err := c.CreatePayment(context.Background(), tx, "Abonnement premium")
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if gotURL != "https://checkout.cinetpay.com/payment/xyz" {
		t.Fatalf("unexpected payment url %q", gotURL)
	}
	if raw == "" {
		t.Fatalf("expected raw provider response to be kept")
	}
}

func TestClientCreatePayment_RefusedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    "608",
			"message": "MINIMUM_REQUIRED_FIELDS",
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	tx := &models.Transaction{ID: "tx-42", Amount: 1200, Currency: "XOF"}

	if _, _, err := c.CreatePayment(context.Background(), tx, "d"); err == nil {
		t.Fatalf("expected non-201 code to error")
	}
}

func TestClientCreatePayment_Unconfigured(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient}
	tx := &models.Transaction{ID: "tx-42", Amount: 1200, Currency: "XOF"}
	if _, _, err := c.CreatePayment(context.Background(), tx, "d"); err == nil {
		t.Fatalf("expected missing credentials to error")
	}
}

func TestClientCheckPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/payment/check" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": "00",
			"data": map[string]any{"status": "accepted"},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	status, _, err := c.CheckPayment(context.Background(), "tx-42")
	if err != nil {
		t.Fatalf("CheckPayment: %v", err)
	}
	if status != models.TransactionStatusAccepted {
		t.Fatalf("expected normalized ACCEPTED, got %q", status)
	}
}

func TestClientCheckPayment_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, _, err := c.CheckPayment(context.Background(), "tx-42"); err == nil {
		t.Fatalf("expected HTTP 502 to error")
	}
}

func TestStubPaymentURL(t *testing.T) {
	if got := StubPaymentURL("tx-42"); got != "https://checkout.cinetpay.com/stub/tx-42" {
		t.Fatalf("unexpected stub url %q", got)
	}
}
