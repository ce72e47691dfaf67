package swiftmt

import (
	"regexp"
	"strings"
)

var tagNamePattern = regexp.MustCompile(`^[0-9]{2}[A-Z]?$`)

// ValidTagName reports whether name has the shape of a block 4 tag name:
// two digits optionally followed by an upper-case letter option.
func ValidTagName(name string) bool {
	return tagNamePattern.MatchString(name)
}

var systemTagPattern = regexp.MustCompile(`^[0-9]{3}$`)

// ValidSystemTagName reports whether name is a three digit sub-block name
// as used in block 3 and in the block 4 of service messages, e.g. "177".
func ValidSystemTagName(name string) bool {
	return systemTagPattern.MatchString(name)
}

// Block is an ordered list of tags: a whole block 4 or a sequence cut out of
// one. The order mirrors wire order. A nil *Block represents an absent
// sequence and behaves as empty for every read method.
//
// Block is not safe for concurrent mutation.
type Block struct {
	tags []Tag
}

// NewBlock returns a block holding a copy of tags.
func NewBlock(tags ...Tag) *Block {
	b := &Block{tags: make([]Tag, len(tags))}
	copy(b.tags, tags)
	return b
}

// NewBlockFrom concatenates the tags of every source into a new block.
func NewBlockFrom(sources ...TagSource) *Block {
	b := &Block{}
	b.Append(sources...)
	return b
}

// Tags returns a copy of the block's tags.
func (b *Block) Tags() []Tag {
	if b == nil {
		return nil
	}
	out := make([]Tag, len(b.tags))
	copy(out, b.tags)
	return out
}

func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.tags)
}

func (b *Block) IsEmpty() bool { return b.Len() == 0 }

// Tag returns the tag at position i. It panics when i is out of range.
func (b *Block) Tag(i int) Tag {
	return b.tags[i]
}

// Append adds the tags of every source at the end of the block.
func (b *Block) Append(sources ...TagSource) *Block {
	for _, src := range sources {
		if src == nil {
			continue
		}
		b.tags = append(b.tags, src.Tags()...)
	}
	return b
}

// AppendTag adds a single tag built from name and value.
func (b *Block) AppendTag(name, value string) *Block {
	b.tags = append(b.tags, Tag{Name: name, Value: value})
	return b
}

// IndexOf returns the position of the first tag named name at or after from, or -1.
func (b *Block) IndexOf(name string, from int) int {
	return indexOfAny(b.raw(), []string{name}, from)
}

// LastIndexOf returns the position of the last tag named name, or -1.
func (b *Block) LastIndexOf(name string) int {
	tags := b.raw()
	for i := len(tags) - 1; i >= 0; i-- {
		if tags[i].Name == name {
			return i
		}
	}
	return -1
}

// TagByName returns the first tag named name.
func (b *Block) TagByName(name string) (Tag, bool) {
	if i := b.IndexOf(name, 0); i >= 0 {
		return b.tags[i], true
	}
	return Tag{}, false
}

// TagsByName returns every tag named name, in order. Never nil.
func (b *Block) TagsByName(name string) []Tag {
	out := make([]Tag, 0)
	for _, t := range b.raw() {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// TagValue returns the value of the first tag named name, or "".
func (b *Block) TagValue(name string) string {
	t, _ := b.TagByName(name)
	return t.Value
}

func (b *Block) ContainsTag(name string) bool {
	return b.IndexOf(name, 0) >= 0
}

// Slice returns a new block with a copy of tags [from, to).
func (b *Block) Slice(from, to int) *Block {
	tags := b.raw()
	if from < 0 {
		from = 0
	}
	if to > len(tags) {
		to = len(tags)
	}
	if from >= to {
		return &Block{}
	}
	return NewBlock(tags[from:to]...)
}

// Equal reports whether both blocks hold the same tags in the same order.
// A nil block equals an empty one.
func (b *Block) Equal(other *Block) bool {
	x, y := b.raw(), other.raw()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. Cloning nil yields nil.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	return NewBlock(b.tags...)
}

// String renders the block as FIN block 4 lines separated by "\n".
func (b *Block) String() string {
	var sb strings.Builder
	for i, t := range b.raw() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

func (b *Block) raw() []Tag {
	if b == nil {
		return nil
	}
	return b.tags
}

func indexOfAny(tags []Tag, names []string, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(tags); i++ {
		if nameIn(tags[i].Name, names) {
			return i
		}
	}
	return -1
}

func nameIn(name string, names []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
