package swiftmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTagName(t *testing.T) {
	for _, name := range []string{"20", "32A", "16R", "77T"} {
		assert.True(t, ValidTagName(name), name)
	}
	for _, name := range []string{"", "2", "320A", "32a", "A2", "ABC"} {
		assert.False(t, ValidTagName(name), name)
	}
}

func TestBlock_NilIsEmpty(t *testing.T) {
	var b *Block
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.IsEmpty())
	assert.Nil(t, b.Tags())
	assert.Equal(t, -1, b.IndexOf("20", 0))
	assert.Equal(t, -1, b.LastIndexOf("20"))
	assert.False(t, b.ContainsTag("20"))
	assert.Equal(t, "", b.TagValue("20"))
	assert.NotNil(t, b.TagsByName("20"))
	assert.Nil(t, b.Clone())
	assert.True(t, b.Slice(0, 3).IsEmpty())
	assert.True(t, b.Equal(&Block{}))
	assert.Equal(t, "", b.String())
}

func TestBlock_Lookups(t *testing.T) {
	b := blk("20", "A", "13C", "/SNDTIME/1200+0100", "13C", "/RNCTIME/1300+0100", "71A", "SHA")

	tag, ok := b.TagByName("13C")
	require.True(t, ok)
	assert.Equal(t, "/SNDTIME/1200+0100", tag.Value)

	_, ok = b.TagByName("72")
	assert.False(t, ok)

	assert.Len(t, b.TagsByName("13C"), 2)
	assert.Equal(t, 2, b.IndexOf("13C", 2))
	assert.Equal(t, -1, b.IndexOf("20", 1))
	assert.Equal(t, 2, b.LastIndexOf("13C"))
	assert.Equal(t, NewTag("71A", "SHA"), b.Tag(3))
}

func TestBlock_AppendSources(t *testing.T) {
	inner := blk("16R", "LINK", "20C", ":RELA//X", "16S", "LINK")
	var absent *Block

	b := NewBlockFrom(NewTag("16R", "GENL"), inner, absent, NewTag("16S", "GENL"))
	assertTags(t, tagsOf(
		"16R", "GENL", "16R", "LINK", "20C", ":RELA//X", "16S", "LINK", "16S", "GENL",
	), b)

	b.Append(nil)
	assert.Equal(t, 5, b.Len())
}

func TestBlock_CopySemantics(t *testing.T) {
	tags := tagsOf("20", "A")
	b := NewBlock(tags...)
	tags[0].Value = "changed"
	assert.Equal(t, "A", b.TagValue("20"))

	out := b.Tags()
	out[0].Value = "changed"
	assert.Equal(t, "A", b.TagValue("20"))

	clone := b.Clone()
	clone.AppendTag("23B", "CRED")
	assert.Equal(t, 1, b.Len())
	assert.False(t, b.Equal(clone))
}

func TestBlock_Slice(t *testing.T) {
	b := blk("20", "A", "21", "B", "23", "C")
	assertTags(t, tagsOf("21", "B", "23", "C"), b.Slice(1, 10))
	assertTags(t, tagsOf("20", "A"), b.Slice(-4, 1))
	assert.True(t, b.Slice(2, 1).IsEmpty())
}

func TestBlock_String(t *testing.T) {
	b := blk("20", "REF", "59", "/123\nJANE")
	assert.Equal(t, ":20:REF\n:59:/123\nJANE", b.String())
}
