package telegram

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/pkg/errors"
	"github.com/raykavin/chanwatch/pkg/prompt"
	"golang.org/x/term"
)

// ErrSignUpUnsupported is returned when the phone number has no account.
var ErrSignUpUnsupported = errors.New("sign up is not supported, register the number in an official client first")

// Terminal asks the operator for login details on a line-oriented
// terminal. The reader should be shared with any later prompts so no
// buffered input is lost. Every prompt returns as soon as its context ends.
type Terminal struct {
	phone string
	in    *prompt.Reader
	out   io.Writer
	// fd is the descriptor used for hidden password input, -1 disables it.
	fd int
}

var _ auth.UserAuthenticator = (*Terminal)(nil)

// NewTerminal returns an authenticator reading from in. A non-empty phone
// skips the phone prompt.
func NewTerminal(phone string, in *prompt.Reader, out io.Writer) *Terminal {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}
	return &Terminal{phone: phone, in: in, out: out, fd: fd}
}

func (t *Terminal) Phone(ctx context.Context) (string, error) {
	if t.phone != "" {
		return t.phone, nil
	}
	return t.ask(ctx, "📞 전화번호를 입력하세요 (+82...): ")
}

func (t *Terminal) Password(ctx context.Context) (string, error) {
	if t.fd < 0 {
		return t.ask(ctx, "🔑 2단계 인증 비밀번호: ")
	}

	state, err := term.GetState(t.fd)
	if err != nil {
		return "", errors.Wrap(err, "get terminal state")
	}

	fmt.Fprint(t.out, "🔑 2단계 인증 비밀번호: ")
	type result struct {
		password []byte
		err      error
	}
	read := make(chan result, 1)
	go func() {
		password, err := term.ReadPassword(t.fd)
		read <- result{password: password, err: err}
	}()

	select {
	case <-ctx.Done():
		// ReadPassword only restores echo when it returns.
		_ = term.Restore(t.fd, state)
		fmt.Fprintln(t.out)
		return "", ctx.Err()
	case r := <-read:
		fmt.Fprintln(t.out)
		if r.err != nil {
			return "", errors.Wrap(r.err, "read password")
		}
		return strings.TrimSpace(string(r.password)), nil
	}
}

func (t *Terminal) Code(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
	return t.ask(ctx, "✉️  로그인 코드를 입력하세요: ")
}

func (t *Terminal) AcceptTermsOfService(_ context.Context, tos tg.HelpTermsOfService) error {
	return &auth.SignUpRequired{TermsOfService: tos}
}

func (t *Terminal) SignUp(context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, ErrSignUpUnsupported
}

func (t *Terminal) ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(t.out, question)

	line, err := t.in.ReadLine(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return "", err
	}
	if err != nil {
		return "", errors.Wrap(err, "read input")
	}
	return strings.TrimSpace(line), nil
}
