package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want Record
	}{
		{
			name: "channel keeps platform title",
			raw:  Raw{Kind: KindChannel, ID: -1001, Title: "News", Username: "news", Members: 1200, Unread: 4},
			want: Record{Title: "News", ID: -1001, Username: "news", Category: Channel, Kind: KindChannel, Members: 1200, Unread: 4},
		},
		{
			name: "private chat falls back to name parts",
			raw:  Raw{Kind: KindPrivate, ID: 7, FirstName: "Alice", LastName: "Kim"},
			want: Record{Title: "Alice Kim", ID: 7, Category: Private, Kind: KindPrivate},
		},
		{
			name: "missing last name is trimmed",
			raw:  Raw{Kind: KindBot, ID: 8, FirstName: " Bob"},
			want: Record{Title: "Bob", ID: 8, Category: Private, Kind: KindBot},
		},
		{
			name: "negative counts default to zero",
			raw:  Raw{Kind: KindSupergroup, ID: 9, Title: "Team", Members: -1, Unread: -3},
			want: Record{Title: "Team", ID: 9, Category: Group, Kind: KindSupergroup},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestRecord_Identifier(t *testing.T) {
	assert.Equal(t, "@news", Record{ID: 1, Username: "news"}.Identifier())
	assert.Equal(t, "555", Record{ID: 555}.Identifier())
	assert.Equal(t, "-1001234", Record{ID: -1001234}.Identifier())
}

func TestRecord_Label(t *testing.T) {
	assert.Equal(t, "슈퍼그룹", Normalize(Raw{Kind: " SuperGroup ", Title: "Team"}).Label())
	assert.Equal(t, "그룹", Normalize(Raw{Kind: KindGroup, Title: "Club"}).Label())
	assert.Equal(t, "채널", Normalize(Raw{Kind: KindChannel, Title: "News"}).Label())
	assert.Equal(t, "개인", Normalize(Raw{Kind: KindBot, FirstName: "Helper"}).Label())
	assert.Equal(t, "그룹", Record{Category: Group}.Label())
}
