// Package collaborator holds the thin HTTP clients for the services the
// banking core depends on but does not own: the customer directory and the
// card service.
package collaborator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/banka1/banking-service/internal/domain"
)

var _ domain.CustomerDirectory = (*CustomerClient)(nil)
var _ domain.CardIssuer = (*CardClient)(nil)

type CustomerClient struct {
	baseURL string
	client  *http.Client
}

func NewCustomerClient(baseURL string) *CustomerClient {
	return &CustomerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *CustomerClient) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	url := fmt.Sprintf("%s/api/customer/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("build customer request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("fetch customer %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Customer{}, fmt.Errorf("%w: customer %d", domain.ErrRecordNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Customer{}, fmt.Errorf("fetch customer %d: unexpected status %d", id, resp.StatusCode)
	}

	var payload struct {
		ID        int64  `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Customer{}, fmt.Errorf("decode customer %d: %w", id, err)
	}

	return domain.Customer{
		ID:        payload.ID,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	}, nil
}

type CardClient struct {
	baseURL string
	client  *http.Client
}

func NewCardClient(baseURL string) *CardClient {
	return &CardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *CardClient) IssueCard(ctx context.Context, req domain.CreateCardRequest) error {
	body, err := json.Marshal(map[string]any{
		"accountId": req.AccountID,
		"cardBrand": req.Brand,
		"cardType":  req.Kind,
	})
	if err != nil {
		return fmt.Errorf("encode card request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/cards", strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("build card request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("issue card for account %d: %w", req.AccountID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("issue card for account %d: unexpected status %d", req.AccountID, resp.StatusCode)
	}

	return nil
}
