package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/walletpay/walletpay/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, *int, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	handlerCalls := 0
	app.Post("/transactions/deposit", func(c *fiber.Ctx) error {
		handlerCalls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transactionId": "TXN-1"})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, &handlerCalls, cleanup
}

func TestIdempotencyPassesThroughWithoutHeader(t *testing.T) {
	app, handlerCalls, cleanup := setupTestApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/transactions/deposit", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("expected %d got %d", fiber.StatusCreated, resp.StatusCode)
		}
		resp.Body.Close()
	}

	if *handlerCalls != 2 {
		t.Fatalf("expected handler to run twice, ran %d times", *handlerCalls)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app, handlerCalls, cleanup := setupTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodPost, "/transactions/deposit", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(idempotencyKeyHeader, "abc123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected status %d got %d", fiber.StatusCreated, resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()

	// Replay must serve the stored response without re-running the flow.
	req2 := httptest.NewRequest(fiber.MethodPost, "/transactions/deposit", strings.NewReader("{}"))
	req2.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req2.Header.Set(idempotencyKeyHeader, "abc123")

	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if resp2.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected cached status %d got %d", fiber.StatusCreated, resp2.StatusCode)
	}
	cached, err := io.ReadAll(resp2.Body)
	if err != nil {
		t.Fatalf("read cached body: %v", err)
	}
	resp2.Body.Close()

	if string(cached) != string(payload) {
		t.Fatalf("expected cached payload %s got %s", string(payload), string(cached))
	}
	if *handlerCalls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", *handlerCalls)
	}
}
