package rank

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/ogarmory/armory-backend/internal/storefront"
	"github.com/ogarmory/armory-backend/internal/user"
)

type stubOrders struct {
	orders []storefront.Order
	err    error

	gotToken string
}

func (s *stubOrders) Orders(ctx context.Context, customerToken string) ([]storefront.Order, error) {
	s.gotToken = customerToken
	return s.orders, s.err
}

func makeRankApp(t *testing.T, orders OrderSource, users []user.User) *fiber.App {
	t.Helper()
	handler := NewHandler(orders, user.NewInMemoryRepository(users))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	handler.RegisterProtectedRoutes(app)
	return app
}

func getRank(t *testing.T, app *fiber.App, userID string) (int, Rank) {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/v1/rank", nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	res, _ := app.Test(req)
	body, _ := io.ReadAll(res.Body)
	var r Rank
	json.Unmarshal(body, &r)
	return res.StatusCode, r
}

func TestGetRank_SpendFromOrders(t *testing.T) {
	orders := &stubOrders{orders: []storefront.Order{
		{ID: "o1", TotalPrice: 15000},
		{ID: "o2", TotalPrice: 12000},
	}}
	app := makeRankApp(t, orders, []user.User{{ID: 7, Email: "og@armory.test", StorefrontToken: "tok-7"}})

	status, r := getRank(t, app, "7")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if orders.gotToken != "tok-7" {
		t.Fatalf("expected stored token forwarded, got %q", orders.gotToken)
	}
	if r.Tier.Name != "WAR GENERAL" || !r.VaultAccess {
		t.Fatalf("27000 spend should land in WAR GENERAL with vault access, got %+v", r)
	}
	if r.Points != 2700 {
		t.Fatalf("expected 2700 points, got %d", r.Points)
	}
}

func TestGetRank_NoLinkedAccount(t *testing.T) {
	orders := &stubOrders{err: errors.New("must not be called")}
	app := makeRankApp(t, orders, []user.User{{ID: 7, Email: "og@armory.test"}})

	status, r := getRank(t, app, "7")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if r.Tier.Name != "STREET SOLDIER" || r.Points != 0 || r.VaultAccess {
		t.Fatalf("expected zero-spend rank, got %+v", r)
	}
	if orders.gotToken != "" {
		t.Fatal("order source must not be queried without a token")
	}
}

func TestGetRank_OrderBackendDown(t *testing.T) {
	orders := &stubOrders{err: errors.New("boom")}
	app := makeRankApp(t, orders, []user.User{{ID: 7, Email: "og@armory.test", StorefrontToken: "tok-7"}})

	status, _ := getRank(t, app, "7")
	if status != fiber.StatusBadGateway {
		t.Fatalf("expected 502 on backend failure, got %d", status)
	}
}

func TestGetRank_Unauthorized(t *testing.T) {
	app := makeRankApp(t, &stubOrders{}, nil)

	status, _ := getRank(t, app, "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}
