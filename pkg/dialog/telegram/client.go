// Package telegram implements dialog.Session with an MTProto user client.
package telegram

import (
	"context"
	"sync"

	gotd "github.com/gotd/td/telegram"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/query"
	"github.com/gotd/td/telegram/query/dialogs"
	"github.com/pkg/errors"
	"github.com/raykavin/chanwatch/pkg/dialog"
	"github.com/raykavin/chanwatch/pkg/logger"
	"go.uber.org/zap"
)

// maxBatch is the largest page the dialogs API returns.
const maxBatch = 100

var (
	ErrMissingCredentials = errors.New("telegram api id and hash are required")
	ErrAlreadyStarted     = errors.New("telegram session already started")
	ErrNotStarted         = errors.New("telegram session not started")
)

// Config identifies the application and the stored login.
type Config struct {
	AppID       int
	AppHash     string
	SessionPath string
}

// Client is a dialog.Session backed by gotd. The connection lives in a
// background goroutine between Start and Stop.
type Client struct {
	client *gotd.Client
	auth   auth.UserAuthenticator
	log    logger.Logger
	zap    *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan error
}

var _ dialog.Session = (*Client)(nil)

type Option func(*Client)

// WithAuthenticator sets how phone, code and password are obtained.
func WithAuthenticator(a auth.UserAuthenticator) Option {
	return func(c *Client) {
		c.auth = a
	}
}

// WithZap routes gotd's internal logs to log.
func WithZap(log *zap.Logger) Option {
	return func(c *Client) {
		c.zap = log
	}
}

func New(cfg Config, log logger.Logger, options ...Option) (*Client, error) {
	if cfg.AppID == 0 || cfg.AppHash == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{log: log, zap: zap.NewNop()}
	for _, option := range options {
		option(c)
	}
	if c.auth == nil {
		return nil, errors.New("telegram authenticator is required")
	}

	opts := gotd.Options{Logger: c.zap}
	if cfg.SessionPath != "" {
		opts.SessionStorage = &session.FileStorage{Path: cfg.SessionPath}
	}
	c.client = gotd.NewClient(cfg.AppID, cfg.AppHash, opts)

	return c, nil
}

// Start connects, logs in if the stored session is missing or expired and
// returns the logged in account.
func (c *Client) Start(ctx context.Context) (dialog.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		return dialog.Account{}, ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	ready := make(chan dialog.Account, 1)
	done := make(chan error, 1)

	go func() {
		done <- c.client.Run(runCtx, func(ctx context.Context) error {
			flow := auth.NewFlow(c.auth, auth.SendCodeOptions{})
			if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
				return errors.Wrap(err, "auth flow")
			}

			self, err := c.client.Self(ctx)
			if err != nil {
				return errors.Wrap(err, "get self")
			}

			ready <- dialog.Account{ID: self.ID, FirstName: self.FirstName, Username: self.Username}
			<-ctx.Done()
			return nil
		})
	}()

	select {
	case account := <-ready:
		c.cancel, c.done = cancel, done
		c.log.WithField("user_id", account.ID).Debug("telegram session started")
		return account, nil
	case err := <-done:
		cancel()
		if err == nil {
			err = errors.New("telegram connection closed before login")
		}
		return dialog.Account{}, err
	case <-ctx.Done():
		cancel()
		<-done
		return dialog.Account{}, ctx.Err()
	}
}

// Stop closes the connection and waits for it to shut down. It is a no-op
// when the session is not running.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done == nil {
		return nil
	}

	c.cancel()
	err := <-c.done
	c.cancel, c.done = nil, nil

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	c.log.Debug("telegram session stopped")
	return nil
}

// Dialogs pages through the operator's dialogs, most recent first.
func (c *Client) Dialogs(ctx context.Context, limit int) dialog.Iterator {
	c.mu.Lock()
	running := c.done != nil
	c.mu.Unlock()

	if !running {
		return &iterator{err: ErrNotStarted}
	}

	batch := min(max(limit, 1), maxBatch)
	return &iterator{source: query.GetDialogs(c.client.API()).BatchSize(batch).Iter()}
}

type iterator struct {
	source *dialogs.Iterator
	value  dialog.Raw
	err    error
}

func (it *iterator) Next(ctx context.Context) bool {
	if it.source == nil {
		return false
	}

	for it.source.Next(ctx) {
		elem := it.source.Value()
		raw, ok := convert(elem.Dialog, elem.Entities.Users(), elem.Entities.Chats(), elem.Entities.Channels())
		if ok {
			it.value = raw
			return true
		}
	}
	return false
}

func (it *iterator) Value() dialog.Raw {
	return it.value
}

func (it *iterator) Err() error {
	if it.err != nil {
		return it.err
	}
	if it.source != nil {
		return it.source.Err()
	}
	return nil
}
