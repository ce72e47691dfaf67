package swiftmt

// MT340 Forward Rate Agreement Confirmation.
var MT340 = mustRegister(MustSchema(&SchemaConfig{
	Type: "340",
	Name: "Forward Rate Agreement Confirmation",
	Sequences: []SequenceSpec{
		{Name: "A", Boundary: Letter("15", "A"), Mandatory: true, Description: "General Information"},
		{Name: "B", Boundary: Letter("15", "B"), Mandatory: true, Description: "Transaction Details"},
		{Name: "C", Boundary: Letter("15", "C"), Mandatory: true, Description: "Settlement Instructions"},
		{Name: "D", Boundary: Letter("15", "D"), Description: "Additional Information"},
	},
	Fields: concat(
		inSequence("A",
			specs(
				mandatory("15A"),
				mandatory("20"),
				optional("21"),
				mandatory("22A"),
				mandatory("94A"),
				mandatory("22C"),
				optional("77H"),
			),
			options("82", "A", "D", "J"),
			options("87", "A", "D", "J"),
		),
		inSequence("B",
			specs(
				mandatory("15B"),
				mandatory("30T"),
				mandatory("32B"),
				mandatory("30F"),
				mandatory("30P"),
				mandatory("37M"),
				mandatory("14F"),
				optional("14D"),
			),
		),
		inSequence("C",
			specs(mandatory("15C")),
			options("53", "A", "D", "J"),
			options("57", "A", "D", "J"),
		),
		inSequence("D",
			specs(mandatory("15D"), optional("29A"), optional("72")),
			options("88", "A", "D"),
		),
	),
}))
