package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alloservices/alloci/app/models"
	"github.com/alloservices/alloci/internal/pkg/env"
)

const (
	defaultCinetPayAPIBaseURL  = "https://api-checkout.cinetpay.com"
	defaultCinetPayCheckoutURL = "https://checkout.cinetpay.com"

	gatewayTimeout = 10 * time.Second
)

// GatewayClient is the outbound interface the reconciliation engine depends
// on. The concrete CinetPay client implements it; tests substitute fakes.
type GatewayClient interface {
	CreatePayment(ctx context.Context, tx *models.Transaction, description string) (paymentURL, raw string, err error)
	CheckPayment(ctx context.Context, transactionID string) (status, raw string, err error)
}

// Client talks to the CinetPay checkout API (create payment + check payment).
type Client struct {
	APIKey     string
	SiteID     string
	APIBaseURL string
	NotifyURL  string
	ReturnURL  string

	HTTPClient *http.Client
}

func NewClientFromEnv() *Client {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	notifyURL := strings.TrimSpace(env.GetEnv("CINETPAY_NOTIFY_URL", ""))
	if notifyURL == "" && base != "" {
		notifyURL = base + "/api/payments/cinetpay/webhook"
	}
	returnURL := strings.TrimSpace(env.GetEnv("CINETPAY_RETURN_URL", ""))
	if returnURL == "" && base != "" {
		returnURL = base + "/premium/retour"
	}

	return &Client{
		APIKey:     strings.TrimSpace(env.GetEnv("CINETPAY_API_KEY", "")),
		SiteID:     strings.TrimSpace(env.GetEnv("CINETPAY_SITE_ID", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("CINETPAY_API_BASE_URL", defaultCinetPayAPIBaseURL), "/"),
		NotifyURL:  notifyURL,
		ReturnURL:  returnURL,
		HTTPClient: &http.Client{
			Timeout: gatewayTimeout,
		},
	}
}

// StubPaymentURL derives the deterministic fallback checkout link used when
// the gateway is unreachable or answers garbage during initiate.
func StubPaymentURL(transactionID string) string {
	return defaultCinetPayCheckoutURL + "/stub/" + transactionID
}

// CreatePayment registers a checkout session and returns the hosted payment
// page URL. CinetPay answers code "201" on success.
func (c *Client) CreatePayment(ctx context.Context, tx *models.Transaction, description string) (string, string, error) {
	if strings.TrimSpace(c.APIKey) == "" || strings.TrimSpace(c.SiteID) == "" {
		return "", "", errors.New("CINETPAY_API_KEY/CINETPAY_SITE_ID are not configured")
	}

	payload := map[string]any{
		"apikey":         c.APIKey,
		"site_id":        c.SiteID,
		"transaction_id": tx.ID,
		"amount":         tx.Amount,
		"currency":       tx.Currency,
		"description":    description,
		"notify_url":     c.NotifyURL,
		"return_url":     c.ReturnURL,
		"channels":       "ALL",
	}

	body, err := c.postJSON(ctx, c.APIBaseURL+"/v2/payment", payload)
	if err != nil {
		return "", "", err
	}

	var out struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Data    struct {
			PaymentURL   string `json:"payment_url"`
			PaymentToken string `json:"payment_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", string(body), fmt.Errorf("cinetpay create payment: malformed response: %w", err)
	}
	if out.Code != "201" || strings.TrimSpace(out.Data.PaymentURL) == "" {
		return "", string(body), fmt.Errorf("cinetpay create payment refused: code=%s message=%s", out.Code, out.Message)
	}
	return out.Data.PaymentURL, string(body), nil
}

// CheckPayment queries the authoritative transaction status. Used as the
// trusted fallback whenever a webhook token does not verify.
func (c *Client) CheckPayment(ctx context.Context, transactionID string) (string, string, error) {
	if strings.TrimSpace(c.APIKey) == "" || strings.TrimSpace(c.SiteID) == "" {
		return "", "", errors.New("CINETPAY_API_KEY/CINETPAY_SITE_ID are not configured")
	}

	payload := map[string]any{
		"apikey":         c.APIKey,
		"site_id":        c.SiteID,
		"transaction_id": transactionID,
	}

	body, err := c.postJSON(ctx, c.APIBaseURL+"/v2/payment/check", payload)
	if err != nil {
		return "", "", err
	}

	var out struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", string(body), fmt.Errorf("cinetpay check payment: malformed response: %w", err)
	}
	status := strings.ToUpper(strings.TrimSpace(out.Data.Status))
	if status == "" {
		return "", string(body), fmt.Errorf("cinetpay check payment: empty status: code=%s message=%s", out.Code, out.Message)
	}
	return status, string(body), nil
}

func (c *Client) postJSON(ctx context.Context, url string, payload map[string]any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cinetpay request failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	return body, nil
}
