package gleicon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"1 2.5  -3", []string{"1", "2.5", "-3"}},
		{`"two words" next`, []string{"two words", "next"}},
		{`'single \quoted' x`, []string{`single \quoted`, "x"}},
		{`"\tex{$\Delta$} [s]"`, []string{`\tex{$\Delta$} [s]`}},
		{`\tex{a}`, []string{`\tex{a}`}},
		{"color #ff0000", []string{"color", "#ff0000"}},
		{"fill rgb(0.5, 0, 1) lwidth 2", []string{"fill", "rgb(0.5,0,1)", "lwidth", "2"}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := splitWords(tt.line)
		require.NoError(t, err, tt.line)
		if len(tt.want) == 0 {
			require.Empty(t, got, tt.line)
			continue
		}
		require.Equal(t, tt.want, got, tt.line)
	}

	_, err := splitWords(`"unterminated`)
	require.Error(t, err)
}

func TestStripComment(t *testing.T) {
	require.Equal(t, "circle 1 ", stripComment("circle 1 ! radius"))
	require.Equal(t, `text "hello!" `, stripComment(`text "hello!" ! greeting`))
	require.Equal(t, "", stripComment("! only a comment"))
}

func TestLex(t *testing.T) {
	c := newSceneCursor(new(Scene), Options{})

	d, ok, err := c.lex(3, "  AMove\t1 2 ! to the start")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, d.line)
	require.Equal(t, "amove", d.keyword)
	require.Equal(t, []string{"1", "2"}, d.args)
	require.Equal(t, "AMove\t1 2", d.text)

	d, ok, err = c.lex(4, `text  "quoted"   words  `)
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, d.args)
	require.Equal(t, `"quoted"   words`, d.rest)

	_, ok, err = c.lex(5, "   ")
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = c.lex(6, `set font "rm`)
	require.Error(t, err)
	perr, isParse := err.(*ParseError)
	require.True(t, isParse)
	require.Equal(t, 6, perr.Line)
}

func TestUnquote(t *testing.T) {
	require.Equal(t, "a b", unquote(`"a b"`))
	require.Equal(t, `"a`, unquote(`"a`))
	require.Equal(t, "plain", unquote("plain"))
}
