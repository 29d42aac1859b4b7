package dialog

import "strings"

type Category int

const (
	Private Category = iota
	Channel
	Group
)

var categoryNames = [...]string{
	Private: "private",
	Channel: "channel",
	Group:   "group",
}

// Labels written next to every monitored entry.
var categoryLabels = [...]string{
	Private: "개인",
	Channel: "채널",
	Group:   "그룹",
}

const supergroupLabel = "슈퍼그룹"

func (c Category) String() string {
	if c < Private || c > Group {
		return "unknown"
	}
	return categoryNames[c]
}

// Label is the operator-facing name of the category.
func (c Category) Label() string {
	if c < Private || c > Group {
		return categoryLabels[Private]
	}
	return categoryLabels[c]
}

// Selectable reports whether chats of this category can be monitored.
// Private chats never can.
func (c Category) Selectable() bool {
	return c == Channel || c == Group
}

// Classify maps a platform chat kind to a category. Unknown kinds are
// treated as private chats.
func Classify(kind string) Category {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindChannel:
		return Channel
	case KindGroup, KindSupergroup:
		return Group
	default:
		return Private
	}
}
