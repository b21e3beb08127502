package shortcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tag = "external_db_query"

func TestParseAttrs_QuotedAndBareForms(t *testing.T) {
	attrs := ParseAttrs(` id="3" query='SELECT * FROM t WHERE a = "x"' limit=5 Template=JSON positional`)
	assert.Equal(t, map[string]string{
		"id":       "3",
		"query":    `SELECT * FROM t WHERE a = "x"`,
		"limit":    "5",
		"template": "JSON",
	}, attrs)
}

func TestParse_SelfContained(t *testing.T) {
	found := Parse(`<p>Before</p>[external_db_query id="7" query="SELECT 1"]<p>After</p>`, tag)
	require.Len(t, found, 1)
	assert.Equal(t, "7", found[0].Attrs["id"])
	assert.Equal(t, "SELECT 1", found[0].Attrs["query"])
	assert.Empty(t, found[0].Content)
	assert.False(t, found[0].Escaped)
}

func TestParse_Enclosed(t *testing.T) {
	src := `[external_db_query id=2]SELECT name FROM widgets[/external_db_query] tail`
	found := Parse(src, tag)
	require.Len(t, found, 1)
	assert.Equal(t, "SELECT name FROM widgets", found[0].Content)
	assert.Equal(t, " tail", src[found[0].End:])
}

func TestParse_SelfClosingSlash(t *testing.T) {
	found := Parse(`[external_db_query id=4 /][/external_db_query]`, tag)
	require.Len(t, found, 1)
	assert.Equal(t, map[string]string{"id": "4"}, found[0].Attrs)
	assert.Empty(t, found[0].Content)
}

func TestParse_MultipleAndUnrelatedTags(t *testing.T) {
	src := `[external_db_query_extra id=1][external_db_query id=1][external_db_query id=2]body[/external_db_query]`
	found := Parse(src, tag)
	require.Len(t, found, 2)
	assert.Equal(t, "1", found[0].Attrs["id"])
	assert.Empty(t, found[0].Content)
	assert.Equal(t, "2", found[1].Attrs["id"])
	assert.Equal(t, "body", found[1].Content)
}

func TestParse_UnterminatedTagIgnored(t *testing.T) {
	assert.Empty(t, Parse(`[external_db_query id=1`, tag))
}

func TestExpand(t *testing.T) {
	src := `A [external_db_query id=1] B [[external_db_query id=2]] C [external_db_query id=3]q[/external_db_query]`
	out := Expand(src, tag, func(sc Shortcode) string {
		return "<" + sc.Attrs["id"] + ":" + sc.Content + ">"
	})
	assert.Equal(t, `A <1:> B [external_db_query id=2] C <3:q>`, out)
}

func TestExpand_NoDirectives(t *testing.T) {
	assert.Equal(t, "plain", Expand("plain", tag, func(Shortcode) string { return "x" }))
}
