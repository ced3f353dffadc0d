package storefront

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOrdersParsesResponse(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Storefront-Access-Token")

		body, _ := io.ReadAll(r.Body)
		var req graphqlRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Variables["token"] != "cust-token" {
			t.Errorf("expected customer token variable, got %v", req.Variables)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"customer":{"orders":{"edges":[
			{"node":{"id":"o1","processedAt":"2026-01-10T00:00:00Z","totalPrice":{"amount":"12500.00"}}},
			{"node":{"id":"o2","processedAt":"2026-02-01T00:00:00Z","totalPrice":{"amount":"12500.00"}}},
			{"node":{"id":"o3","processedAt":"2026-02-02T00:00:00Z","totalPrice":{"amount":"oops"}}}
		]}}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-token")
	orders, err := c.Orders(context.Background(), "cust-token")
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	if gotToken != "app-token" {
		t.Fatalf("expected access-token header, got %q", gotToken)
	}
	// the unparsable order is skipped, not fatal
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].TotalPrice != 12500 || orders[1].TotalPrice != 12500 {
		t.Fatalf("unexpected totals: %+v", orders)
	}
}

func TestOrdersSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"invalid customer access token"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-token")
	if _, err := c.Orders(context.Background(), "stale"); err == nil {
		t.Fatal("expected error from api errors array")
	}
}

func TestOrdersSurfacesHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-token")
	if _, err := c.Orders(context.Background(), "cust"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestOrdersMissingCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"customer":null}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-token")
	if _, err := c.Orders(context.Background(), "unknown"); err == nil {
		t.Fatal("expected error for missing customer")
	}
}
