package swiftmt

import (
	"sort"
	"strings"
)

// Sequence partitioning primitives.
//
// Every function is a pure scan over the parent block and returns copies.
// Single-occurrence functions return nil when the parent is nil or empty
// and an empty block when the parent has content but no match. List
// functions never return nil.

// span is a half-open range [start, end) over a tag slice.
type span struct {
	start, end int
}

// FirstBounded returns the first run that starts at a tag named in start,
// runs through the first following tag named in end (inclusive), and then
// absorbs any immediately following tags named in tail.
func FirstBounded(parent *Block, start, end, tail []string) *Block {
	if parent.IsEmpty() {
		return nil
	}
	spans := boundedSpans(parent.tags, start, end, tail, 1)
	if len(spans) == 0 {
		return &Block{}
	}
	return parent.Slice(spans[0].start, spans[0].end)
}

// AllBounded returns every non-overlapping run matched as in FirstBounded.
func AllBounded(parent *Block, start, end, tail []string) []*Block {
	return spanBlocks(parent, boundedSpans(parent.raw(), start, end, tail, 0))
}

// SplitByLetter cuts the parent at every tag named number+letter (e.g. 15A,
// 15B). Each run starts with its marker and stops before the next marker.
// Tags before the first marker belong to no run.
func SplitByLetter(parent *Block, number string) []*Block {
	return spanBlocks(parent, letterSpans(parent.raw(), number, ""))
}

// LetterBlock returns the first run whose marker is number+letter.
func LetterBlock(parent *Block, number, letter string) *Block {
	if parent.IsEmpty() {
		return nil
	}
	spans := letterSpans(parent.tags, number, letter)
	if len(spans) == 0 {
		return &Block{}
	}
	return parent.Slice(spans[0].start, spans[0].end)
}

// LetterBlocks returns every run whose marker is number+letter.
func LetterBlocks(parent *Block, number, letter string) []*Block {
	return spanBlocks(parent, letterSpans(parent.raw(), number, letter))
}

// FirstQualified returns the run from the first 16R:qualifier to the next
// 16S:qualifier, both included.
//
// Matching looks at the qualifier only, never at nesting depth. Two
// sequences sharing a qualifier at different levels are conflated unless
// the caller passes the narrowest enclosing block as parent.
func FirstQualified(parent *Block, qualifier string) *Block {
	if parent.IsEmpty() {
		return nil
	}
	spans := qualifiedSpans(parent.tags, qualifier, 1)
	if len(spans) == 0 {
		return &Block{}
	}
	return parent.Slice(spans[0].start, spans[0].end)
}

// AllQualified returns every non-overlapping 16R/16S run for qualifier.
// The same depth caveat as FirstQualified applies.
func AllQualified(parent *Block, qualifier string) []*Block {
	return spanBlocks(parent, qualifiedSpans(parent.raw(), qualifier, 0))
}

// TailSlice returns everything from the last tag named anchor to the end of
// the parent. It returns nil when the anchor is absent, so an absent region
// can be told apart from a present but empty one.
func TailSlice(parent *Block, anchor string, includeAnchor bool) *Block {
	i := parent.LastIndexOf(anchor)
	if i < 0 {
		return nil
	}
	if !includeAnchor {
		i++
	}
	return parent.Slice(i, parent.Len())
}

// HeadSlice returns everything from the start of the parent up to the first
// tag named anchor. It returns nil when the anchor is absent.
func HeadSlice(parent *Block, anchor string, includeAnchor bool) *Block {
	i := parent.IndexOf(anchor, 0)
	if i < 0 {
		return nil
	}
	if includeAnchor {
		i++
	}
	return parent.Slice(0, i)
}

// Partition returns every run of parent described by b.
func Partition(parent *Block, b Boundary) []*Block {
	switch b.Kind {
	case BoundaryBounded:
		return AllBounded(parent, b.Start, b.End, b.Tail)
	case BoundaryLetter:
		if b.Letter == "" {
			return SplitByLetter(parent, b.Number)
		}
		return LetterBlocks(parent, b.Number, b.Letter)
	case BoundaryQualified:
		return AllQualified(parent, b.Qualifier)
	case BoundaryTail:
		if blk := TailSlice(parent, b.Anchor, b.IncludeAnchor); blk != nil {
			return []*Block{blk}
		}
	case BoundaryHead:
		if blk := HeadSlice(parent, b.Anchor, b.IncludeAnchor); blk != nil {
			return []*Block{blk}
		}
	}
	return []*Block{}
}

// First returns the single run of parent described by b, with the nil and
// empty conventions of the matching primitive.
func First(parent *Block, b Boundary) *Block {
	switch b.Kind {
	case BoundaryBounded:
		return FirstBounded(parent, b.Start, b.End, b.Tail)
	case BoundaryLetter:
		if b.Letter == "" {
			if parent.IsEmpty() {
				return nil
			}
			if runs := SplitByLetter(parent, b.Number); len(runs) > 0 {
				return runs[0]
			}
			return &Block{}
		}
		return LetterBlock(parent, b.Number, b.Letter)
	case BoundaryQualified:
		return FirstQualified(parent, b.Qualifier)
	case BoundaryTail:
		return TailSlice(parent, b.Anchor, b.IncludeAnchor)
	case BoundaryHead:
		return HeadSlice(parent, b.Anchor, b.IncludeAnchor)
	}
	return nil
}

func boundedSpans(tags []Tag, start, end, tail []string, limit int) []span {
	var out []span
	pos := 0
	for pos < len(tags) && (limit <= 0 || len(out) < limit) {
		s := indexOfAny(tags, start, pos)
		if s < 0 {
			break
		}
		e := indexOfAny(tags, end, s)
		if e < 0 {
			break
		}
		stop := e + 1
		for stop < len(tags) && nameIn(tags[stop].Name, tail) {
			stop++
		}
		out = append(out, span{start: s, end: stop})
		pos = stop
	}
	return out
}

// letterOption returns the option letter when name is number followed by
// exactly one upper-case letter.
func letterOption(name, number string) (string, bool) {
	if len(name) != len(number)+1 || !strings.HasPrefix(name, number) {
		return "", false
	}
	c := name[len(number)]
	if c < 'A' || c > 'Z' {
		return "", false
	}
	return string(c), true
}

// letterSpans splits at every number+letter marker. When letter is not
// empty only runs opened by that marker are kept.
func letterSpans(tags []Tag, number, letter string) []span {
	var out []span
	open, openLetter := -1, ""
	for i, t := range tags {
		l, ok := letterOption(t.Name, number)
		if !ok {
			continue
		}
		if open >= 0 && (letter == "" || openLetter == letter) {
			out = append(out, span{start: open, end: i})
		}
		open, openLetter = i, l
	}
	if open >= 0 && (letter == "" || openLetter == letter) {
		out = append(out, span{start: open, end: len(tags)})
	}
	return out
}

func qualifierOf(t Tag) string {
	return strings.TrimSpace(t.Value)
}

func qualifiedSpans(tags []Tag, qualifier string, limit int) []span {
	var out []span
	pos := 0
	for pos < len(tags) && (limit <= 0 || len(out) < limit) {
		s := -1
		for i := pos; i < len(tags); i++ {
			if tags[i].Name == TagStartOfBlock && qualifierOf(tags[i]) == qualifier {
				s = i
				break
			}
		}
		if s < 0 {
			break
		}
		e := -1
		for i := s + 1; i < len(tags); i++ {
			if tags[i].Name == TagEndOfBlock && qualifierOf(tags[i]) == qualifier {
				e = i
				break
			}
		}
		if e < 0 {
			break
		}
		out = append(out, span{start: s, end: e + 1})
		pos = e + 1
	}
	return out
}

// directChildren returns the outermost 16R/16S pairs within tags[from:to].
// A 16S closes the nearest open 16R with the same qualifier; any 16R it
// skips over stays unmatched, and a 16S with no such opener is ignored.
// An unterminated 16R therefore never hides the siblings that follow it.
func directChildren(tags []Tag, from, to int) []span {
	type opener struct {
		at        int
		qualifier string
	}
	var open []opener
	var pairs []span
	for i := from; i < to; i++ {
		switch tags[i].Name {
		case TagStartOfBlock:
			open = append(open, opener{at: i, qualifier: qualifierOf(tags[i])})
		case TagEndOfBlock:
			q := qualifierOf(tags[i])
			for j := len(open) - 1; j >= 0; j-- {
				if open[j].qualifier == q {
					pairs = append(pairs, span{start: open[j].at, end: i + 1})
					open = open[:j]
					break
				}
			}
		}
	}

	// Matched pairs nest or are disjoint; keep those not inside another.
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].start < pairs[b].start })
	var out []span
	next := from
	for _, p := range pairs {
		if p.start >= next {
			out = append(out, p)
			next = p.end
		}
	}
	return out
}

func spanBlocks(parent *Block, spans []span) []*Block {
	out := make([]*Block, 0, len(spans))
	for _, s := range spans {
		out = append(out, parent.Slice(s.start, s.end))
	}
	return out
}
