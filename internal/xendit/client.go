package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPending PaymentStatus = "pending"
	StatusFailed  PaymentStatus = "failed"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// PaymentRequest is the subset of the provider response the order flow needs.
type PaymentRequest struct {
	ExternalID      string
	PaymentMethodID string
	QRString        string
}

type paymentRequestBody struct {
	ReferenceID   string            `json:"reference_id"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	PaymentMethod paymentMethodBody `json:"payment_method"`
}

type paymentMethodBody struct {
	Type        string     `json:"type"`
	Reusability string     `json:"reusability"`
	QRCode      qrCodeBody `json:"qr_code"`
}

type qrCodeBody struct {
	ChannelCode string `json:"channel_code"`
}

type paymentRequestResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentMethod struct {
		ID     string `json:"id"`
		QRCode struct {
			ChannelProperties struct {
				QRString string `json:"qr_string"`
			} `json:"channel_properties"`
		} `json:"qr_code"`
	} `json:"payment_method"`
}

// CreateQRIS opens a QRIS payment request for the exact amount. The order id
// doubles as reference and idempotency key so a retried call cannot open a
// second payment request for the same order.
func (c *Client) CreateQRIS(ctx context.Context, amount int64, orderID uuid.UUID) (*PaymentRequest, error) {
	body := paymentRequestBody{
		ReferenceID: orderID.String(),
		Amount:      amount,
		Currency:    "IDR",
		PaymentMethod: paymentMethodBody{
			Type:        "QR_CODE",
			Reusability: "ONE_TIME_USE",
			QRCode:      qrCodeBody{ChannelCode: "QRIS"},
		},
	}

	var result paymentRequestResponse
	if err := c.doJSON(ctx, http.MethodPost, "/payment_requests", orderID.String(), body, &result); err != nil {
		return nil, err
	}

	return &PaymentRequest{
		ExternalID:      result.ID,
		PaymentMethodID: result.PaymentMethod.ID,
		QRString:        result.PaymentMethod.QRCode.ChannelProperties.QRString,
	}, nil
}

// SimulatePayment settles a pending payment request on the provider's sandbox.
func (c *Client) SimulatePayment(ctx context.Context, paymentMethodID string, amount int64) error {
	body := map[string]int64{"amount": amount}
	path := fmt.Sprintf("/v2/payment_methods/%s/payments/simulate", paymentMethodID)
	return c.doJSON(ctx, http.MethodPost, path, "", body, nil)
}

func (c *Client) PaymentStatus(ctx context.Context, externalID string) (PaymentStatus, error) {
	var result paymentRequestResponse
	if err := c.doJSON(ctx, http.MethodGet, "/payment_requests/"+externalID, "", nil, &result); err != nil {
		return "", err
	}

	switch result.Status {
	case "SUCCEEDED":
		return StatusPaid, nil
	case "PENDING", "REQUIRES_ACTION", "AWAITING_CAPTURE":
		return StatusPending, nil
	default:
		return StatusFailed, nil
	}
}

func (c *Client) doJSON(ctx context.Context, method, path, idempotencyKey string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, "")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed with status: %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
