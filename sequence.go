package swiftmt

import "fmt"

// SequenceSpec declares one named sequence of a message type.
type SequenceSpec struct {
	Name        string   `json:"name" yaml:"name"`
	Parent      string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Boundary    Boundary `json:"boundary" yaml:"boundary"`
	Mandatory   bool     `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	Repeatable  bool     `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	// Nullable sequences resolve to nil, not to an empty block, when their
	// scope is absent or empty. Older message types behave this way and
	// callers depend on it, so the flag is kept per sequence.
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	schema *Schema
	parent *SequenceSpec
}

// ParentSpec returns the enclosing sequence, or nil for a top-level one.
func (sp *SequenceSpec) ParentSpec() *SequenceSpec { return sp.parent }

// Children returns the sequences declared directly inside sp.
func (sp *SequenceSpec) Children() []*SequenceSpec {
	var out []*SequenceSpec
	if sp.schema == nil {
		return out
	}
	for _, c := range sp.schema.sequences {
		if c.parent == sp {
			out = append(out, c)
		}
	}
	return out
}

// Path returns the chain of sequences from the top level down to sp.
func (sp *SequenceSpec) Path() []*SequenceSpec {
	var path []*SequenceSpec
	for cur := sp; cur != nil; cur = cur.parent {
		path = append([]*SequenceSpec{cur}, path...)
	}
	return path
}

// depth returns the nesting level, or -1 on a parent cycle.
func (sp *SequenceSpec) depth() int {
	seen := map[*SequenceSpec]bool{}
	d := 0
	for cur := sp.parent; cur != nil; cur = cur.parent {
		if seen[cur] || cur == sp {
			return -1
		}
		seen[cur] = true
		d++
	}
	return d
}

// NewInstance wraps content in the boundary tags of the sequence, using the
// first START and END alternative for bounded sequences.
func (sp *SequenceSpec) NewInstance(content ...TagSource) *Block {
	return sp.NewInstanceAt(0, 0, content...)
}

// NewInstanceAt is NewInstance choosing the START and END alternatives by
// index. For letter sequences with no fixed letter, startIdx picks the
// letter, 0 through 25 for "A" through "Z". It panics when an index is out
// of range.
func (sp *SequenceSpec) NewInstanceAt(startIdx, endIdx int, content ...TagSource) *Block {
	b := sp.Boundary
	out := &Block{}
	switch b.Kind {
	case BoundaryBounded:
		out.AppendTag(b.Start[startIdx], "")
		out.Append(content...)
		out.AppendTag(b.End[endIdx], "")
	case BoundaryLetter:
		letter := b.Letter
		if letter == "" {
			if startIdx < 0 || startIdx > 'Z'-'A' {
				panic(fmt.Sprintf("swiftmt: letter index %d out of range for sequence %s", startIdx, sp.Name))
			}
			letter = string(rune('A' + startIdx))
		}
		out.AppendTag(b.Number+letter, "")
		out.Append(content...)
	case BoundaryQualified:
		out.AppendTag(TagStartOfBlock, b.Qualifier)
		out.Append(content...)
		out.AppendTag(TagEndOfBlock, b.Qualifier)
	case BoundaryTail:
		out.AppendTag(b.Anchor, "")
		out.Append(content...)
	case BoundaryHead:
		out.Append(content...)
		out.AppendTag(b.Anchor, "")
	}
	return out
}

// Content strips the boundary tags from an extracted instance of sp.
// Extracting a NewInstance block and passing it to Content gives back the
// original content, provided the content holds no boundary tags. Head and
// tail instances that exclude their anchor are returned unchanged.
func (sp *SequenceSpec) Content(blk *Block) *Block {
	if blk == nil {
		return nil
	}
	n := blk.Len()
	b := sp.Boundary
	switch b.Kind {
	case BoundaryBounded:
		if n == 0 {
			return &Block{}
		}
		e := indexOfAny(blk.tags, b.End, 1)
		if e < 0 {
			return blk.Slice(1, n)
		}
		return blk.Slice(1, e).Append(blk.Slice(e+1, n))
	case BoundaryLetter:
		return blk.Slice(1, n)
	case BoundaryQualified:
		return blk.Slice(1, n-1)
	case BoundaryTail:
		if b.IncludeAnchor {
			return blk.Slice(1, n)
		}
	case BoundaryHead:
		if b.IncludeAnchor {
			return blk.Slice(0, n-1)
		}
	}
	return blk.Clone()
}

// Resolve returns every instance of sp inside root, walking the parent
// chain so each level is searched only inside its enclosing sequence.
// Never nil.
func (sp *SequenceSpec) Resolve(root *Block) []*Block {
	out := make([]*Block, 0)
	for _, scope := range sp.scopes(root) {
		found := sp.within(scope)
		if !sp.Repeatable && len(found) > 1 {
			found = found[:1]
		}
		out = append(out, found...)
	}
	return out
}

// ResolveFirst returns the first instance of sp inside root. When there is
// none it returns an empty block, or nil for Nullable sequences whose
// scope is absent or empty.
func (sp *SequenceSpec) ResolveFirst(root *Block) *Block {
	scopes := sp.scopes(root)
	for _, scope := range scopes {
		if found := sp.within(scope); len(found) > 0 {
			return found[0]
		}
	}
	if !sp.Nullable {
		return &Block{}
	}
	if len(scopes) == 0 || scopes[0].IsEmpty() {
		return nil
	}
	switch sp.Boundary.Kind {
	case BoundaryTail, BoundaryHead:
		return nil
	}
	return &Block{}
}

func (sp *SequenceSpec) scopes(root *Block) []*Block {
	if sp.parent == nil {
		return []*Block{root}
	}
	return sp.parent.Resolve(root)
}

// within finds the instances of sp directly inside scope. Qualified
// sequences only match 16R blocks opened at the top level of the scope,
// so a nested block reusing the qualifier of an outer sequence is skipped.
func (sp *SequenceSpec) within(scope *Block) []*Block {
	if sp.Boundary.Kind != BoundaryQualified {
		return Partition(scope, sp.Boundary)
	}
	from, to := 0, scope.Len()
	if sp.parent != nil && sp.parent.Boundary.Kind == BoundaryQualified && to >= 2 {
		from, to = 1, to-1
	}
	out := make([]*Block, 0)
	for _, c := range directChildren(scope.raw(), from, to) {
		if qualifierOf(scope.tags[c.start]) == sp.Boundary.Qualifier {
			out = append(out, scope.Slice(c.start, c.end))
		}
	}
	return out
}
