// Package binance reads account balances and prices from Binance spot.
package binance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/jpillora/backoff"
	"github.com/raykavin/chanwatch/pkg/logger"
)

const defaultPingAttempts = 3

// ErrSymbolNotFound is returned when the exchange has no price for a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// Config holds the API credentials and endpoint selection.
type Config struct {
	APIKey     string
	APISecret  string
	UseTestnet bool
}

// Balance is the amount held of one asset.
type Balance struct {
	Asset  string
	Free   float64
	Locked float64
}

// Client is a read-only spot client.
type Client struct {
	client       *binance.Client
	log          logger.Logger
	pingAttempts int
	retry        *backoff.Backoff
}

type Option func(*Client)

// WithBaseURL points the client at a different REST endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.client.BaseURL = url
	}
}

// WithPingAttempts sets how many times the connectivity check is tried.
func WithPingAttempts(n int) Option {
	return func(c *Client) {
		c.pingAttempts = max(n, 1)
	}
}

// New creates a client and checks connectivity, retrying with backoff.
func New(ctx context.Context, log logger.Logger, cfg Config, options ...Option) (*Client, error) {
	binance.UseTestnet = cfg.UseTestnet

	c := &Client{
		client:       binance.NewClient(cfg.APIKey, cfg.APISecret),
		log:          log,
		pingAttempts: defaultPingAttempts,
		retry: &backoff.Backoff{
			Min: 100 * time.Millisecond,
			Max: 1 * time.Second,
		},
	}

	for _, option := range options {
		option(c)
	}

	if err := c.ping(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) ping(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		err := c.client.NewPingService().Do(ctx)
		if err == nil {
			c.retry.Reset()
			return nil
		}
		if attempt >= c.pingAttempts {
			return fmt.Errorf("binance ping fail: %w", err)
		}

		wait := c.retry.Duration()
		c.log.WithError(err).Warnf("binance ping failed, retrying in %s", wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Account returns every asset with a non-zero balance.
func (c *Client) Account(ctx context.Context) ([]Balance, error) {
	acc, err := c.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	balances := make([]Balance, 0, len(acc.Balances))
	for _, b := range acc.Balances {
		free, err := strconv.ParseFloat(b.Free, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid free balance for %s: %w", b.Asset, err)
		}
		locked, err := strconv.ParseFloat(b.Locked, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid locked balance for %s: %w", b.Asset, err)
		}

		if free == 0 && locked == 0 {
			continue
		}

		balances = append(balances, Balance{Asset: b.Asset, Free: free, Locked: locked})
	}

	return balances, nil
}

// Balance returns the free amount of asset, or 0 when it is not held.
func (c *Client) Balance(ctx context.Context, asset string) (float64, error) {
	balances, err := c.Account(ctx)
	if err != nil {
		return 0, err
	}

	for _, b := range balances {
		if b.Asset == asset {
			return b.Free, nil
		}
	}
	return 0, nil
}

// Price returns the last traded price of symbol, e.g. BTCUSDT.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	prices, err := c.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get price for %s: %w", symbol, err)
	}

	for _, p := range prices {
		if p.Symbol == symbol {
			return strconv.ParseFloat(p.Price, 64)
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
}
