package swiftmt

// MT303 Forex/Currency Option Allocation Instruction. Sequences are opened
// by the 15A..15D markers; D repeats once per allocation.
var MT303 = mustRegister(MustSchema(&SchemaConfig{
	Type: "303",
	Name: "Forex/Currency Option Allocation Instruction",
	Sequences: []SequenceSpec{
		{Name: "A", Boundary: Letter("15", "A"), Mandatory: true, Description: "General Information"},
		{Name: "B", Boundary: Letter("15", "B"), Description: "Forex Allocation Details"},
		{Name: "C", Boundary: Letter("15", "C"), Description: "Option Allocation Details"},
		{Name: "D", Boundary: Letter("15", "D"), Mandatory: true, Repeatable: true, Description: "Allocation"},
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
			),
			options("82", "A", "D", "J"),
			options("87", "A", "D", "J"),
			options("83", "A", "D", "J"),
			specs(optional("72")),
		),
		inSequence("B",
			specs(
				mandatory("15B"),
				mandatory("30T"),
				mandatory("30V"),
				mandatory("36"),
				mandatory("32B"),
				mandatory("33B"),
			),
		),
		inSequence("C",
			specs(
				mandatory("15C"),
				mandatory("17A"),
				mandatory("30T"),
				mandatory("30X"),
				mandatory("34B"),
			),
		),
		inSequence("D",
			specs(mandatory("15D"), mandatory("32B")),
			options("57", "A", "D", "J"),
			options("58", "A", "D", "J"),
			specs(optional("33B")),
		),
	),
}))
