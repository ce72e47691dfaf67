package swiftmt

// Helpers for the built-in schema tables.

func mandatory(tag string) FieldSpec { return FieldSpec{Tag: tag, Mandatory: true} }
func optional(tag string) FieldSpec  { return FieldSpec{Tag: tag} }
func repeated(tag string) FieldSpec  { return FieldSpec{Tag: tag, Repeatable: true} }

// options declares every letter option of a tag, e.g. options("50", "A", "F", "K").
func options(number string, letters ...string) []FieldSpec {
	out := make([]FieldSpec, 0, len(letters))
	for _, l := range letters {
		out = append(out, FieldSpec{Tag: number + l})
	}
	return out
}

// inSequence assigns every spec to seq.
func inSequence(seq string, groups ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, g := range groups {
		for _, f := range g {
			f.Sequence = seq
			out = append(out, f)
		}
	}
	return out
}

func specs(fs ...FieldSpec) []FieldSpec { return fs }

func concat(groups ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
