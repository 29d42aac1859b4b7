package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]Category{
		"channel":    Channel,
		"CHANNEL":    Channel,
		"group":      Group,
		"supergroup": Group,
		"private":    Private,
		"bot":        Private,
		"":           Private,
		"forum?":     Private,
	}

	for kind, want := range cases {
		assert.Equal(t, want, Classify(kind), kind)
	}
}

func TestClassify_Total(t *testing.T) {
	inputs := []string{"\x00", "채널", " channel ", "group\n", "🤖", string(make([]byte, 1024))}
	for _, in := range inputs {
		require.NotPanics(t, func() {
			c := Classify(in)
			require.Contains(t, []Category{Channel, Group, Private}, c)
		})
	}
}

func TestCategory_Labels(t *testing.T) {
	assert.Equal(t, "채널", Channel.Label())
	assert.Equal(t, "그룹", Group.Label())
	assert.Equal(t, "개인", Private.Label())
	assert.Equal(t, "group", Group.String())
	assert.Equal(t, "unknown", Category(42).String())

	assert.True(t, Channel.Selectable())
	assert.True(t, Group.Selectable())
	assert.False(t, Private.Selectable())
}
