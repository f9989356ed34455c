package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gateway is the external payment service: initiate a charge against a
// phone number, get a checkout id back, settlement arrives later on the
// callback endpoint.
type Gateway interface {
	Initiate(ctx context.Context, phone string, amount int64, ref string) (string, error)
}

// CallbackResult is the settlement the gateway posts back to us.
type CallbackResult struct {
	Ref        string `json:"ref"`
	CheckoutID string `json:"checkoutId"`
	Success    bool   `json:"success"`
	Reason     string `json:"reason,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Initiate(ctx context.Context, phone string, amount int64, ref string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"phone":  phone,
		"amount": amount,
		"ref":    ref,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var out struct {
		CheckoutID string `json:"checkoutId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.CheckoutID, nil
}

var _ Gateway = (*Client)(nil)
