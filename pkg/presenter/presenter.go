// Package presenter prints the dialog listing, the selectable menu and the
// outcome of a selection to the operator's terminal.
package presenter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/goterm/term"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/chanwatch/pkg/dialog"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var icons = map[dialog.Category]string{
	dialog.Channel: "📺",
	dialog.Group:   "👥",
	dialog.Private: "👤",
}

var usage = []string{
	"단일 선택: 3",
	"여러 선택: 1,3,5,7",
	"범위 선택: 1-5",
	"혼합 선택: 1,3,7-10",
	"전체 선택: all",
}

// Presenter accumulates the records it has shown during one session.
// Its output is informational only.
type Presenter struct {
	out     io.Writer
	colored bool
	printer *message.Printer
	records []dialog.Record
}

type Option func(*Presenter)

// WithColor enables ANSI colours.
func WithColor(enabled bool) Option {
	return func(p *Presenter) {
		p.colored = enabled
	}
}

func New(out io.Writer, options ...Option) *Presenter {
	p := &Presenter{
		out:     out,
		printer: message.NewPrinter(language.Korean),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Presenter) Login(account dialog.Account) {
	if account.Username == "" {
		p.printf("✅ 로그인: %s\n", account.FirstName)
		return
	}
	p.printf("✅ 로그인: %s (@%s)\n", account.FirstName, account.Username)
}

func (p *Presenter) Header(limit int) {
	p.rule(80)
	p.printf("📱 내가 참여중인 채팅방 목록 (최근 %d개)\n", limit)
	p.rule(80)
}

// Discovered prints one enumerated record and remembers it.
func (p *Presenter) Discovered(r dialog.Record) {
	p.records = append(p.records, r)

	var details strings.Builder
	details.WriteString(p.paint(term.Yellowf, displayIdentifier(r, ": ")))
	if r.Members > 0 {
		details.WriteString(p.printer.Sprintf(" (%d명)", r.Members))
	}
	if r.Unread > 0 {
		details.WriteString(fmt.Sprintf(" [📬%d]", r.Unread))
	}

	p.printf("%s %s %s\n", p.paint(term.Cyanf, fmt.Sprintf("%3d.", len(p.records))), icons[r.Category], r.Title)
	p.printf("     └─ %s | %s\n", r.Label(), details.String())
}

// Summary prints the per-category counts of everything discovered.
func (p *Presenter) Summary() {
	counts := lo.CountValuesBy(p.records, func(r dialog.Record) dialog.Category {
		return r.Category
	})

	p.printf("\n")
	p.rule(50)
	p.printf("📊 요약: 총 %d개\n", len(p.records))

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"구분", "개수"})
	table.AppendBulk([][]string{
		{icons[dialog.Channel] + " " + dialog.Channel.Label(), strconv.Itoa(counts[dialog.Channel])},
		{icons[dialog.Group] + " " + dialog.Group.Label(), strconv.Itoa(counts[dialog.Group])},
		{icons[dialog.Private] + " " + dialog.Private.Label(), strconv.Itoa(counts[dialog.Private])},
	})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Render()
}

// Selectable returns the discovered channels and groups in discovery
// order. Private chats are left out.
func (p *Presenter) Selectable() []dialog.Record {
	return lo.Filter(p.records, func(r dialog.Record, _ int) bool {
		return r.Selectable()
	})
}

// Menu prints items with their 1-based selection numbers.
func (p *Presenter) Menu(items []dialog.Record) {
	p.printf("\n")
	p.rule(50)
	p.printf("🎯 모니터링할 채팅방 선택\n")
	p.rule(50)

	for i, r := range items {
		p.printf("%s %s (%s) - %s\n", p.paint(term.Cyanf, fmt.Sprintf("%2d.", i+1)), r.Title,
			displayIdentifier(r, ":"), r.Label())
	}

	p.printf("\n📝 사용법:\n")
	for _, line := range usage {
		p.printf("  • %s\n", line)
	}
}

func (p *Presenter) NoSelectable() {
	p.printf("%s\n", p.paint(term.Redf, "❌ 채널이나 그룹이 없습니다."))
}

func (p *Presenter) Prompt() {
	p.printf("\n선택할 번호를 입력하세요: ")
}

func (p *Presenter) Malformed() {
	p.printf("%s\n", p.paint(term.Redf, "❌ 잘못된 입력입니다. 다시 입력해주세요."))
}

func (p *Presenter) Empty() {
	p.printf("%s\n", p.paint(term.Redf, "❌ 선택된 채팅방이 없습니다."))
}

// Selected echoes the resolved selection.
func (p *Presenter) Selected(items []dialog.Record) {
	p.printf("\n%s\n", p.paint(term.Greenf, fmt.Sprintf("✅ %d개 채팅방 선택됨:", len(items))))
	for _, r := range items {
		p.printf("   • %s (%s)\n", r.Title, displayIdentifier(r, ":"))
	}
}

// Preview prints the list file that is about to be written.
func (p *Presenter) Preview(artifact []byte) {
	p.printf("\n")
	p.rule(60)
	p.printf("📄 저장할 설정:\n")
	p.rule(60)
	p.printf("%s", artifact)
}

func (p *Presenter) Saved(path string) {
	p.printf("\n%s\n", p.paint(term.Greenf, fmt.Sprintf("💾 '%s' 파일로 저장되었습니다!", path)))
}

func (p *Presenter) rule(width int) {
	p.printf("%s\n", strings.Repeat("=", width))
}

func (p *Presenter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Presenter) paint(color func(string, ...any) string, s string) string {
	if !p.colored {
		return s
	}
	return color("%s", s)
}

// displayIdentifier renders "@username", or "ID<sep><id>" for chats
// without a public username.
func displayIdentifier(r dialog.Record, sep string) string {
	if r.Username != "" {
		return "@" + r.Username
	}
	return "ID" + sep + strconv.FormatInt(r.ID, 10)
}
