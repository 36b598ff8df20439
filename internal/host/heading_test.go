package host

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingRenderer(t *testing.T) {
	t.Parallel()

	r := newHeadingRenderer()

	tests := []struct {
		name     string
		markdown string
		contains string
	}{
		{name: "level two heading", markdown: "## Mr Box", contains: "<h2>Mr Box</h2>"},
		{name: "emphasis", markdown: "## Mr *Box*", contains: "<h2>Mr <em>Box</em></h2>"},
		{name: "fenced code highlighted", markdown: "```js\nlet x = 1\n```", contains: "style="},
		{name: "empty", markdown: "", contains: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Render(context.Background(), tt.markdown)
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(got), tt.contains), "got %q", got)
		})
	}
}

func TestHeadingRenderer_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newHeadingRenderer().Render(ctx, "## Mr Box")
	assert.ErrorIs(t, err, context.Canceled)
}
