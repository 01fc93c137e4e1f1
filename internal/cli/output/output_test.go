package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewRenderer(&out, &errOut, mode), &out, &errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{mode: "", want: ModeMarkdown},
		{mode: ModeAuto, want: ModeMarkdown},
		{mode: ModeText, want: ModeText},
		{mode: ModeMarkdown, want: ModeMarkdown},
		{mode: ModeJSON, want: ModeJSON},
		{mode: "bogus", want: ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode)
			assert.False(t, r.IsTTY(), "a buffer is never a terminal")
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_TextIsPlainOffTerminal(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText)
	r.Header(1, "Words")
	r.Success("done")
	assert.Equal(t, "Words\ndone\n", out.String())
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown)
	r.Header(2, "Presets")
	r.Success("done")
	r.StatusLine("incantata.yaml", "success", "created")
	r.Warning("careful")

	assert.Equal(t, "## Presets\n**done**\n- incantata.yaml  created\n", out.String())
	assert.Equal(t, "Warning: careful\n", errOut.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"count": 2}))

	var got map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, got["count"])
}

func TestRenderer_Word(t *testing.T) {
	r, _, _ := newTestRenderer(ModeMarkdown)
	syl := []string{"ka", "tha", "ri"}

	assert.Equal(t, "kathari", r.Word(syl, false, false))
	assert.Equal(t, "ka-tha-ri", r.Word(syl, true, false))
	assert.Equal(t, "Kathari", r.Word(syl, false, true))
	assert.Equal(t, "Ka-tha-ri", r.Word(syl, true, true))
	assert.Equal(t, []string{"ka", "tha", "ri"}, syl, "input is not modified")
	assert.Equal(t, "Èla", r.Capitalize("èla"))
	assert.Empty(t, r.Word(nil, true, true))
}

func TestRenderer_Table(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown)
		r.Table([]string{"Name", "Size"}, [][]any{{"vowels", 5}})
		assert.Contains(t, out.String(), "| Name | Size |")
		assert.Contains(t, out.String(), "| vowels | 5 |")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText)
		r.Table([]string{"Name", "Size"}, [][]any{{"vowels", 5}})
		assert.Contains(t, out.String(), "┌")
		assert.Contains(t, out.String(), "vowels")
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Sub", FormatHeader(3, "Sub"))
	assert.Equal(t, "- **seed**: 42", FormatKeyValue("seed", 42))
}

func TestNewRendererWithTTY(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, true, ModeAuto)
	assert.True(t, r.IsTTY())
	assert.Equal(t, ModeText, r.EffectiveMode())
}
