package swiftmt

// MT102 Multiple Customer Credit Transfer.
//
// Sequence A is everything before the first transaction reference (21),
// each B runs from 21 to the beneficiary (59a) plus its trailing details,
// and C starts at the settlement amount (32A). All three resolve to nil
// when the body is empty, as callers of this type expect.
var MT102 = mustRegister(MustSchema(&SchemaConfig{
	Type: "102",
	Name: "Multiple Customer Credit Transfer",
	Sequences: []SequenceSpec{
		{
			Name:        "A",
			Boundary:    HeadUntil("21", false),
			Mandatory:   true,
			Nullable:    true,
			Description: "General Information",
		},
		{
			Name: "B",
			Boundary: Bounded(
				[]string{"21"},
				[]string{"59", "59A", "59F"},
				[]string{"70", "26T", "77B", "33B", "71A", "71F", "71G", "36"},
			),
			Mandatory:   true,
			Repeatable:  true,
			Nullable:    true,
			Description: "Transaction Details",
		},
		{
			Name:        "C",
			Boundary:    TailFrom("32A", true),
			Mandatory:   true,
			Nullable:    true,
			Description: "Settlement Details",
		},
	},
	Fields: concat(
		inSequence("A",
			specs(mandatory("20"), mandatory("23")),
			specs(optional("51A")),
			options("50", "A", "F", "K"),
			options("52", "A", "B", "C"),
			specs(optional("26T"), optional("77B"), optional("71A"), optional("36")),
		),
		inSequence("B",
			specs(mandatory("21"), mandatory("32B")),
			options("50", "A", "F", "K"),
			options("52", "A", "B", "C"),
			options("57", "A", "C"),
			options("59", "", "A", "F"),
			specs(
				optional("70"),
				optional("26T"),
				optional("77B"),
				optional("33B"),
				optional("71A"),
				repeated("71F"),
				optional("71G"),
				optional("36"),
			),
		),
		inSequence("C",
			specs(
				mandatory("32A"),
				optional("19"),
				optional("71G"),
				repeated("13C"),
			),
			options("53", "A", "C"),
			specs(optional("54A"), optional("72")),
		),
	),
}))
