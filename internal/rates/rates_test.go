package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(spot, fees *httptest.Server) *Client {
	c := NewClient(5 * time.Second)
	if spot != nil {
		c.spotURL = spot.URL
	}
	if fees != nil {
		c.feeURL = fees.URL
	}
	return c
}

func TestSpotPriceUSD(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"USD","name":"US Dollar","rate":97123.45}`))
	}))
	defer server.Close()

	price, err := newTestClient(server, nil).SpotPriceUSD(context.Background())
	if err != nil {
		t.Fatalf("SpotPriceUSD failed: %v", err)
	}
	if price != 97123.45 {
		t.Fatalf("price = %f, want 97123.45", price)
	}
}

func TestSpotPriceUSDRejectsInvalidRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rate":0}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server, nil).SpotPriceUSD(context.Background()); err == nil {
		t.Fatal("expected error for zero rate")
	}
}

func TestSpotPriceUSDServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	if _, err := newTestClient(server, nil).SpotPriceUSD(context.Background()); err == nil {
		t.Fatal("expected error on HTTP 502")
	}
}

func TestRecommendedFees(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fastestFee":12,"halfHourFee":10,"hourFee":8,"economyFee":4,"minimumFee":2}`))
	}))
	defer server.Close()

	fees, err := newTestClient(nil, server).RecommendedFees(context.Background())
	if err != nil {
		t.Fatalf("RecommendedFees failed: %v", err)
	}

	if fees.Fastest != 12 || fees.HalfHour != 10 || fees.Hour != 8 || fees.Economy != 4 || fees.Minimum != 2 {
		t.Fatalf("unexpected fees: %+v", fees)
	}
}

func TestRecommendedFeesDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	if _, err := newTestClient(nil, server).RecommendedFees(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Write([]byte(`{"rate":1}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := newTestClient(server, nil).SpotPriceUSD(ctx); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
