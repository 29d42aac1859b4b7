// Package picker runs the interactive session that turns the operator's
// dialogs into the monitored list.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raykavin/chanwatch/pkg/dialog"
	"github.com/raykavin/chanwatch/pkg/logger"
	"github.com/raykavin/chanwatch/pkg/monitor"
	"github.com/raykavin/chanwatch/pkg/notification"
	"github.com/raykavin/chanwatch/pkg/presenter"
	"github.com/raykavin/chanwatch/pkg/prompt"
	"github.com/raykavin/chanwatch/pkg/selection"
	"github.com/schollz/progressbar/v3"
)

// ErrInputClosed is returned when the operator's input ends before a valid
// selection was made.
var ErrInputClosed = errors.New("input closed before a selection was made")

// Notifier is told about every rewritten monitored list.
type Notifier interface {
	Notify(text string)
}

// Picker holds one session's collaborators.
type Picker struct {
	session  dialog.Session
	in       *prompt.Reader
	out      io.Writer
	progress io.Writer
	colored  bool
	limit    int
	path     string
	log      logger.Logger
	notifier Notifier
}

type Option func(*Picker)

// WithInput sets where selections are read from. A *prompt.Reader is used
// as is, so it can be shared with the login prompts.
func WithInput(in io.Reader) Option {
	return func(p *Picker) {
		p.in = prompt.NewReader(in)
	}
}

func WithOutput(out io.Writer) Option {
	return func(p *Picker) {
		p.out = out
	}
}

// WithProgress draws a progress bar on w while dialogs are fetched.
func WithProgress(w io.Writer) Option {
	return func(p *Picker) {
		p.progress = w
	}
}

func WithColor(enabled bool) Option {
	return func(p *Picker) {
		p.colored = enabled
	}
}

// WithLimit caps the number of dialogs fetched.
func WithLimit(limit int) Option {
	return func(p *Picker) {
		p.limit = limit
	}
}

// WithPath sets where the monitored list is written.
func WithPath(path string) Option {
	return func(p *Picker) {
		p.path = path
	}
}

func WithLogger(log logger.Logger) Option {
	return func(p *Picker) {
		p.log = log
	}
}

func WithNotifier(n Notifier) Option {
	return func(p *Picker) {
		p.notifier = n
	}
}

func New(session dialog.Session, options ...Option) *Picker {
	p := &Picker{
		session: session,
		in:      prompt.NewReader(os.Stdin),
		out:     os.Stdout,
		limit:   dialog.DefaultLimit,
		path:    monitor.DefaultPath,
		log:     logger.Nop(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Run lists the dialogs, asks the operator for a selection and writes the
// monitored list. The session is released on every return path. When ctx
// is cancelled while waiting for input, the list is left untouched.
func (p *Picker) Run(ctx context.Context) error {
	return dialog.WithSession(ctx, p.session, func(ctx context.Context, account dialog.Account) error {
		view := presenter.New(p.out, presenter.WithColor(p.colored))
		view.Login(account)

		selectable, err := p.discover(ctx, view)
		if err != nil {
			return err
		}
		if len(selectable) == 0 {
			view.NoSelectable()
			return nil
		}

		view.Menu(selectable)
		chosen, err := p.choose(ctx, view, selectable)
		if err != nil {
			return err
		}

		return p.emit(view, chosen)
	})
}

// List prints the dialogs and the summary without prompting.
func (p *Picker) List(ctx context.Context) error {
	return dialog.WithSession(ctx, p.session, func(ctx context.Context, account dialog.Account) error {
		view := presenter.New(p.out, presenter.WithColor(p.colored))
		view.Login(account)

		_, err := p.discover(ctx, view)
		return err
	})
}

func (p *Picker) discover(ctx context.Context, view *presenter.Presenter) ([]dialog.Record, error) {
	enumerator := dialog.NewEnumerator(p.session, p.limit)
	view.Header(enumerator.Limit())

	bar := p.progressBar(enumerator.Limit())
	for record, err := range enumerator.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dialog.ErrEnumeration, err)
		}
		view.Discovered(record)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	view.Summary()
	return view.Selectable(), nil
}

func (p *Picker) progressBar(limit int) *progressbar.ProgressBar {
	if p.progress == nil {
		return nil
	}
	return progressbar.NewOptions(limit,
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionSetDescription("dialogs"),
		progressbar.OptionClearOnFinish(),
	)
}

// choose prompts until the input resolves to a non-empty selection.
// Malformed and empty selections re-prompt without side effects.
func (p *Picker) choose(ctx context.Context, view *presenter.Presenter, selectable []dialog.Record) ([]dialog.Record, error) {
	for {
		view.Prompt()

		line, err := p.readLine(ctx)
		if err != nil {
			return nil, err
		}

		indices, err := selection.Parse(line, len(selectable))
		switch {
		case err == nil:
			return selection.Resolve(indices, selectable), nil
		case errors.Is(err, selection.ErrNoInput):
		case errors.Is(err, selection.ErrMalformed):
			p.log.WithError(err).Debug("malformed selection")
			view.Malformed()
		case errors.Is(err, selection.ErrEmpty):
			view.Empty()
		default:
			return nil, err
		}
	}
}

// readLine waits for one line of input or for ctx to end, whichever comes
// first.
func (p *Picker) readLine(ctx context.Context) (string, error) {
	text, err := p.in.ReadLine(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInputClosed, err)
	}
	return text, nil
}

func (p *Picker) emit(view *presenter.Presenter, chosen []dialog.Record) error {
	view.Selected(chosen)

	entries := monitor.Build(chosen)
	artifact := monitor.Render(entries)
	view.Preview(artifact)

	if err := monitor.Write(p.path, artifact); err != nil {
		return err
	}
	view.Saved(p.path)

	p.log.WithFields(map[string]any{
		"path":  p.path,
		"chats": len(entries),
	}).Info("monitored list updated")

	if p.notifier != nil {
		p.notifier.Notify(notification.UpdateMessage(p.path, entries))
	}
	return nil
}
