// Package dialog models the conversations an operator takes part in and
// enumerates them from a messaging platform session.
package dialog

import (
	"strconv"
	"strings"
)

// Platform chat kinds as reported by the session.
const (
	KindChannel    = "channel"
	KindGroup      = "group"
	KindSupergroup = "supergroup"
	KindPrivate    = "private"
	KindBot        = "bot"
)

// Raw is a dialog as the platform reports it. Empty strings and zero
// counts mean the platform omitted the field.
type Raw struct {
	Kind      string
	ID        int64
	Title     string
	FirstName string
	LastName  string
	Username  string
	Members   int
	Unread    int
}

// Record is a normalized conversation. Records are built once per
// enumeration pass and never mutated.
type Record struct {
	Title    string
	ID       int64
	Username string
	Category Category
	Kind     string // lower-cased platform kind, kept for labelling
	Members  int
	Unread   int
}

// Normalize applies the defaulting rules to a raw platform dialog.
func Normalize(raw Raw) Record {
	title := raw.Title
	if title == "" {
		title = strings.TrimSpace(raw.FirstName + " " + raw.LastName)
	}

	return Record{
		Title:    title,
		ID:       raw.ID,
		Username: raw.Username,
		Category: Classify(raw.Kind),
		Kind:     strings.ToLower(strings.TrimSpace(raw.Kind)),
		Members:  max(raw.Members, 0),
		Unread:   max(raw.Unread, 0),
	}
}

// Identifier returns "@username" when the chat has a public username and
// the numeric id otherwise.
func (r Record) Identifier() string {
	if r.Username != "" {
		return "@" + r.Username
	}
	return strconv.FormatInt(r.ID, 10)
}

// Label is the operator-facing kind of the chat. Supergroups keep their
// own label even though they are grouped with plain groups.
func (r Record) Label() string {
	if r.Kind == KindSupergroup {
		return supergroupLabel
	}
	return r.Category.Label()
}

// Selectable reports whether the record may be chosen for monitoring.
func (r Record) Selectable() bool {
	return r.Category.Selectable()
}
