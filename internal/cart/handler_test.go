package cart

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
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
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCartRoutes_Basic(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository()))
	app := makeAppWithCartHandler(handler)

	// unauthorized access is blocked
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// add a line
	req2 := httptest.NewRequest("POST", "/api/v1/cart/items",
		strings.NewReader(`{"productId":"1","name":"Rebel Tee","price":500,"selectedVariant":{"size":"M"},"quantity":2}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"total":1000`) {
		t.Fatalf("expected total 1000 after add, got %s", b2)
	}

	// add the same product+size again, quantities merge
	req3 := httptest.NewRequest("POST", "/api/v1/cart/items",
		strings.NewReader(`{"productId":"1","name":"Rebel Tee","price":500,"selectedVariant":{"size":"M"}}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"quantity":3`) {
		t.Fatalf("expected merged quantity 3, got %s", b3)
	}

	// update quantity via PATCH
	req4 := httptest.NewRequest("PATCH", "/api/v1/cart/items/1:M", strings.NewReader(`{"quantity":1}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"quantity":1`) || !strings.Contains(string(b4), `"total":500`) {
		t.Fatalf("expected quantity 1 total 500, got %s", b4)
	}

	// quantity zero removes the line
	req5 := httptest.NewRequest("PATCH", "/api/v1/cart/items/1:M", strings.NewReader(`{"quantity":0}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	b5, _ := io.ReadAll(res5.Body)
	if strings.Contains(string(b5), `"productId":"1"`) {
		t.Fatalf("expected line removed at quantity zero, got %s", b5)
	}

	// clear returns 204 and a following GET shows an empty cart
	req6 := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for clear, got %d", res6.StatusCode)
	}

	req7 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req7.Header.Set("X-User-ID", "42")
	res7, _ := app.Test(req7)
	b7, _ := io.ReadAll(res7.Body)
	if !strings.Contains(string(b7), `"total":0`) {
		t.Fatalf("expected empty cart after clear, got %s", b7)
	}
}

func TestCartRoutes_BadRequests(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository()))
	app := makeAppWithCartHandler(handler)

	// missing productId
	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"price":100}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing productId, got %d", res.StatusCode)
	}

	// negative price
	req2 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productId":"1","price":-5}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", res2.StatusCode)
	}
}
