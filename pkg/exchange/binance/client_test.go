package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/raykavin/chanwatch/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, pingFailures int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	pings := &atomic.Int32{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/ping", func(w http.ResponseWriter, _ *http.Request) {
		if pings.Add(1) <= pingFailures {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"code":-1000,"msg":"unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/v3/ticker/price", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "BTCUSDT" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
			return
		}
		_, _ = w.Write([]byte(`{"symbol":"BTCUSDT","price":"64250.10000000"}`))
	})
	mux.HandleFunc("/api/v3/account", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"balances":[
			{"asset":"BTC","free":"0.50000000","locked":"0.10000000"},
			{"asset":"ETH","free":"0.00000000","locked":"0.00000000"},
			{"asset":"USDT","free":"1500.25000000","locked":"0.00000000"}
		]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, pings
}

func newClient(t *testing.T, srv *httptest.Server, options ...Option) *Client {
	t.Helper()
	options = append([]Option{WithBaseURL(srv.URL)}, options...)
	c, err := New(context.Background(), logger.Nop(), Config{APIKey: "key", APISecret: "secret"}, options...)
	require.NoError(t, err)
	return c
}

func TestClient_Price(t *testing.T) {
	srv, _ := newServer(t, 0)
	c := newClient(t, srv)

	price, err := c.Price(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	require.InDelta(t, 64250.1, price, 1e-9)

	_, err = c.Price(context.Background(), "NOPE")
	require.Error(t, err)
}

func TestClient_Account(t *testing.T) {
	srv, _ := newServer(t, 0)
	c := newClient(t, srv)

	balances, err := c.Account(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Balance{
		{Asset: "BTC", Free: 0.5, Locked: 0.1},
		{Asset: "USDT", Free: 1500.25},
	}, balances)
}

func TestClient_Balance(t *testing.T) {
	srv, _ := newServer(t, 0)
	c := newClient(t, srv)

	usdt, err := c.Balance(context.Background(), "USDT")
	require.NoError(t, err)
	require.InDelta(t, 1500.25, usdt, 1e-9)

	eth, err := c.Balance(context.Background(), "ETH")
	require.NoError(t, err)
	require.Zero(t, eth)
}

func TestNew_RetriesPing(t *testing.T) {
	srv, pings := newServer(t, 2)

	newClient(t, srv, WithPingAttempts(3))
	require.EqualValues(t, 3, pings.Load())
}

func TestNew_PingExhausted(t *testing.T) {
	srv, pings := newServer(t, 5)

	_, err := New(context.Background(), logger.Nop(), Config{}, WithBaseURL(srv.URL), WithPingAttempts(2))
	require.ErrorContains(t, err, "binance ping fail")
	require.EqualValues(t, 2, pings.Load())
}
