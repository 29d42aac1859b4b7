package picker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/raykavin/chanwatch/pkg/dialog"
	"github.com/raykavin/chanwatch/pkg/dialog/dialogtest"
	"github.com/raykavin/chanwatch/pkg/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func scenario() *dialogtest.Session {
	return &dialogtest.Session{
		Account: dialog.Account{ID: 1, FirstName: "Operator", Username: "op"},
		Raws: []dialog.Raw{
			{Kind: dialog.KindChannel, ID: -1001, Title: "News", Username: "news"},
			{Kind: dialog.KindGroup, ID: 555, Title: "Team"},
			{Kind: dialog.KindPrivate, ID: 42, FirstName: "Alice"},
			{Kind: dialog.KindChannel, ID: -1003, Title: "Alerts", Username: "alerts"},
		},
	}
}

type notifier struct {
	messages []string
}

func (n *notifier) Notify(text string) { n.messages = append(n.messages, text) }

func run(t *testing.T, session dialog.Session, input string, options ...Option) (string, string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config", "monitored_channels.py")
	out := &bytes.Buffer{}

	options = append([]Option{
		WithInput(strings.NewReader(input)),
		WithOutput(out),
		WithPath(path),
	}, options...)

	err := New(session, options...).Run(context.Background())
	return out.String(), path, err
}

func readList(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_AscendingSelection(t *testing.T) {
	session := scenario()

	out, path, err := run(t, session, "3,1\n")
	require.NoError(t, err)

	require.Equal(t, "# 모니터링할 채널/그룹 목록\n"+
		"MONITORED_CHANNELS = [\n"+
		"    '@news',  # News (채널)\n"+
		"    '@alerts',  # Alerts (채널)\n"+
		"]\n", readList(t, path))

	assert.Contains(t, out, "✅ 로그인: Operator (@op)")
	assert.Contains(t, out, "✅ 2개 채팅방 선택됨:\n   • News (@news)\n   • Alerts (@alerts)\n")
	assert.False(t, session.Active())
	assert.Equal(t, 1, session.Stopped())
}

func TestRun_All(t *testing.T) {
	_, path, err := run(t, scenario(), "all\n")
	require.NoError(t, err)

	list := readList(t, path)
	news := strings.Index(list, "'@news'")
	team := strings.Index(list, "    555,  # Team (그룹)")
	alerts := strings.Index(list, "'@alerts'")
	require.True(t, news > 0 && team > news && alerts > team, list)
	require.NotContains(t, list, "Alice")
}

func TestRun_RepromptsOnMalformed(t *testing.T) {
	session := scenario()

	out, path, err := run(t, session, "abc\n2\n")
	require.NoError(t, err)

	assert.Contains(t, out, "❌ 잘못된 입력입니다. 다시 입력해주세요.")
	assert.Equal(t, 2, strings.Count(out, "선택할 번호를 입력하세요"))
	assert.Contains(t, readList(t, path), "    555,  # Team (그룹)\n")
}

func TestRun_RepromptsOnEmpty(t *testing.T) {
	out, path, err := run(t, scenario(), "0\n5-1\n1\n")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "❌ 선택된 채팅방이 없습니다."))
	assert.Contains(t, readList(t, path), "'@news'")
}

func TestRun_BlankInputIsSilent(t *testing.T) {
	out, _, err := run(t, scenario(), "\n   \n2")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "선택할 번호를 입력하세요"))
	assert.NotContains(t, out, "❌")
}

func TestRun_InputClosed(t *testing.T) {
	session := scenario()

	_, path, err := run(t, session, "abc\n")
	require.ErrorIs(t, err, ErrInputClosed)
	require.NoFileExists(t, path)
	require.False(t, session.Active())
}

func TestRun_Notifies(t *testing.T) {
	n := &notifier{}

	_, _, err := run(t, scenario(), "2\n", WithNotifier(n))
	require.NoError(t, err)
	require.Len(t, n.messages, 1)
	require.Contains(t, n.messages[0], "• Team 555 [그룹]")
}

func TestRun_NoSelectable(t *testing.T) {
	session := &dialogtest.Session{Raws: []dialog.Raw{{Kind: dialog.KindPrivate, ID: 1, FirstName: "Bob"}}}

	out, path, err := run(t, session, "")
	require.NoError(t, err)
	assert.Contains(t, out, "❌ 채널이나 그룹이 없습니다.")
	assert.NoFileExists(t, path)
}

func TestRun_AuthFailure(t *testing.T) {
	session := &dialogtest.Session{StartErr: errors.New("AUTH_KEY_UNREGISTERED")}

	out, path, err := run(t, session, "1\n")
	require.ErrorIs(t, err, dialog.ErrAuth)
	assert.NotContains(t, out, "🎯")
	assert.NoFileExists(t, path)
}

func TestRun_EnumerationFailure(t *testing.T) {
	session := scenario()
	session.FailAfter = 2
	session.PageErr = errors.New("FLOOD_WAIT_30")

	out, path, err := run(t, session, "1\n")
	require.ErrorIs(t, err, dialog.ErrEnumeration)
	require.ErrorIs(t, err, session.PageErr)

	assert.Contains(t, out, "News")
	assert.Contains(t, out, "Team")
	assert.NotContains(t, out, "🎯")
	assert.NoFileExists(t, path)
	assert.False(t, session.Active())
}

func TestRun_LimitCapsEnumeration(t *testing.T) {
	session := scenario()

	out, _, err := run(t, session, "all\n", WithLimit(2))
	require.NoError(t, err)
	assert.Equal(t, 2, session.Fetched())
	assert.NotContains(t, out, "Alerts")
}

// cancelOnPrompt cancels the session as soon as the prompt is printed.
type cancelOnPrompt struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	cancel context.CancelFunc
}

func (w *cancelOnPrompt) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if strings.Contains(string(b), "선택할 번호를 입력하세요") {
		w.cancel()
	}
	return w.buf.Write(b)
}

func TestRun_CancelLeavesListUntouched(t *testing.T) {
	session := scenario()
	path := filepath.Join(t.TempDir(), "monitored_channels.py")
	previous := monitor.Render([]monitor.Entry{{Identifier: "@old", Title: "Old", Category: "채널"}})
	require.NoError(t, monitor.Write(path, previous))

	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := New(session,
		WithInput(reader),
		WithOutput(&cancelOnPrompt{cancel: cancel}),
		WithPath(path),
	).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, session.Active())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, previous, data)
}

func TestList(t *testing.T) {
	session := scenario()
	out := &bytes.Buffer{}

	err := New(session, WithOutput(out), WithInput(strings.NewReader(""))).List(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "📊 요약: 총 4개")
	assert.NotContains(t, out.String(), "🎯")
	assert.False(t, session.Active())
}

func TestRun_Progress(t *testing.T) {
	progress := &bytes.Buffer{}

	_, _, err := run(t, scenario(), "1\n", WithProgress(progress))
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "dialogs")
}
