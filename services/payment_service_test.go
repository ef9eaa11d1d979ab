package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestPrepareWithoutStripeIsMock(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := NewPaymentService("", "", logger)

	intent := svc.Prepare(context.Background(), "checkout-1", "Ana", 2500)

	assert.False(t, svc.StripeEnabled())
	assert.True(t, intent.Mock)
	assert.Equal(t, int64(2500), intent.AmountCents)
	assert.Equal(t, "usd", intent.Currency)
	assert.Len(t, svc.Options(), 2)
}

func TestPrepareCreatesStripeIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "2500", r.PostForm.Get("amount"))
		assert.Equal(t, "eur", r.PostForm.Get("currency"))
		assert.Equal(t, "Ana", r.PostForm.Get("metadata[contributor]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":2500,"currency":"eur","client_secret":"pi_123_secret_x"}`))
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	svc := NewPaymentServiceWithBackend("sk_test_123", "EUR", server.URL, logger)

	intent := svc.Prepare(context.Background(), "checkout-1", "Ana", 2500)

	assert.False(t, intent.Mock)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_x", intent.ClientSecret)
}

func TestPrepareFallsBackWhenStripeFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad amount"}}`))
	}))
	defer server.Close()

	logger, hook := test.NewNullLogger()
	svc := NewPaymentServiceWithBackend("sk_test_123", "usd", server.URL, logger)

	intent := svc.Prepare(context.Background(), "checkout-1", "Ana", 100)

	assert.True(t, intent.Mock)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestPrepareReusesIntentForSameCheckout(t *testing.T) {
	var mu sync.Mutex
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":2500,"currency":"usd","client_secret":"pi_123_secret_x"}`))
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	svc := NewPaymentServiceWithBackend("sk_test_123", "usd", server.URL, logger)

	svc.Prepare(context.Background(), "checkout-1", "Ana", 2500)
	svc.Prepare(context.Background(), "checkout-1", "Ana", 2500)
	svc.Prepare(context.Background(), "checkout-2", "Ana", 2500)
	svc.Prepare(context.Background(), "checkout-1", "Ana", 3000)

	mu.Lock()
	defer mu.Unlock()
	if assert.Len(t, keys, 4) {
		assert.NotEmpty(t, keys[0])
		assert.Equal(t, keys[0], keys[1])
		assert.NotEqual(t, keys[0], keys[2])
		assert.NotEqual(t, keys[0], keys[3])
	}
}
