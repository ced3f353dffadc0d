package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Order is the slice of the commerce backend's order shape this service
// consumes: rank computation only needs settled totals.
type Order struct {
	ID          string  `json:"id"`
	TotalPrice  float64 `json:"totalPrice"`
	ProcessedAt string  `json:"processedAt"`
}

// Client talks to the external Storefront GraphQL API. The query and field
// names are the external system's contract; everything here is translated
// into local types at the boundary.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
}

func NewClient(endpoint, accessToken string) *Client {
	return &Client{
		endpoint:    endpoint,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

const customerOrdersQuery = `query CustomerOrders($token: String!) {
  customer(customerAccessToken: $token) {
    orders(first: 100) {
      edges { node { id processedAt totalPrice { amount } } }
    }
  }
}`

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type ordersResponse struct {
	Data struct {
		Customer *struct {
			Orders struct {
				Edges []struct {
					Node struct {
						ID          string `json:"id"`
						ProcessedAt string `json:"processedAt"`
						TotalPrice  struct {
							Amount string `json:"amount"`
						} `json:"totalPrice"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"orders"`
		} `json:"customer"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Orders fetches the customer's order history. Failures are returned to the
// caller; unlike catalog feeds there is no fallback here, the user sees an
// explicit error.
func (c *Client) Orders(ctx context.Context, customerToken string) ([]Order, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query:     customerOrdersQuery,
		Variables: map[string]string{"token": customerToken},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Storefront-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront api returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed ordersResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("storefront api error: %s", parsed.Errors[0].Message)
	}
	if parsed.Data.Customer == nil {
		return nil, fmt.Errorf("storefront api: customer not found")
	}

	orders := make([]Order, 0, len(parsed.Data.Customer.Orders.Edges))
	for _, edge := range parsed.Data.Customer.Orders.Edges {
		amount, err := strconv.ParseFloat(edge.Node.TotalPrice.Amount, 64)
		if err != nil {
			log.Warn().Str("order_id", edge.Node.ID).Str("amount", edge.Node.TotalPrice.Amount).Msg("unparsable order total, skipping")
			continue
		}
		orders = append(orders, Order{
			ID:          edge.Node.ID,
			TotalPrice:  amount,
			ProcessedAt: edge.Node.ProcessedAt,
		})
	}
	return orders, nil
}
