// Package monitor renders and persists the list of chats the signal
// watcher monitors.
package monitor

import (
	"bytes"
	"strings"

	"github.com/raykavin/chanwatch/pkg/dialog"
	"github.com/samber/lo"
)

const (
	// DefaultPath is where the watcher expects the list.
	DefaultPath = "config/monitored_channels.py"

	header   = "# 모니터링할 채널/그룹 목록"
	listName = "MONITORED_CHANNELS"
)

// Entry is one monitored chat.
type Entry struct {
	Identifier string // "@username" or the numeric chat id
	Title      string
	Category   string
}

// Literal returns the identifier as it appears in the list: usernames
// quoted, numeric ids bare.
func (e Entry) Literal() string {
	if strings.HasPrefix(e.Identifier, "@") {
		return "'" + literalEscaper.Replace(e.Identifier) + "'"
	}
	return e.Identifier
}

var (
	literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	commentCleaner = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

// Build maps resolved records to entries one to one, keeping their order.
func Build(records []dialog.Record) []Entry {
	return lo.Map(records, func(r dialog.Record, _ int) Entry {
		return Entry{
			Identifier: r.Identifier(),
			Title:      r.Title,
			Category:   r.Label(),
		}
	})
}

// Render returns the list file contents. Equal entries always render to
// equal bytes.
func Render(entries []Entry) []byte {
	buf := &bytes.Buffer{}

	buf.WriteString(header + "\n")
	buf.WriteString(listName + " = [\n")
	for _, e := range entries {
		buf.WriteString("    " + e.Literal() + ",  # " + commentCleaner.Replace(e.Title) + " (" + e.Category + ")\n")
	}
	buf.WriteString("]\n")

	return buf.Bytes()
}
