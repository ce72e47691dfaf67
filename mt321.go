package swiftmt

// MT321 Instruction to Settle a Third Party Loan/Deposit.
//
// AMT is used twice: B1b1 inside the cash parties block and B1c directly
// inside each settlement block. Nested resolution keeps them apart.
var MT321 = mustRegister(MustSchema(&SchemaConfig{
	Type: "321",
	Name: "Instruction to Settle a Third Party Loan/Deposit",
	Sequences: []SequenceSpec{
		{Name: "A", Boundary: Qualified("GENL"), Mandatory: true, Description: "General Information"},
		{Name: "A1", Parent: "A", Boundary: Qualified("LINK"), Repeatable: true, Description: "Linkages"},
		{Name: "B", Boundary: Qualified("LDDET"), Mandatory: true, Description: "Loan/Deposit Details"},
		{Name: "B1", Parent: "B", Boundary: Qualified("SETDET"), Mandatory: true, Repeatable: true, Description: "Settlement Details"},
		{Name: "B1a", Parent: "B1", Boundary: Qualified("SETPRTY"), Repeatable: true, Description: "Settlement Parties"},
		{Name: "B1b", Parent: "B1", Boundary: Qualified("CSHPRTY"), Repeatable: true, Description: "Cash Parties"},
		{Name: "B1b1", Parent: "B1b", Boundary: Qualified("AMT"), Description: "Amount"},
		{Name: "B1c", Parent: "B1", Boundary: Qualified("AMT"), Repeatable: true, Description: "Amounts"},
		{Name: "C", Boundary: Qualified("OTHRPRTY"), Repeatable: true, Description: "Other Parties"},
	},
	Fields: concat(
		inSequence("A",
			specs(mandatory("20C"), mandatory("23G"), optional("22F")),
			options("98", "A", "C"),
		),
		inSequence("A1",
			specs(optional("22F"), optional("13A"), mandatory("20C")),
		),
		inSequence("B",
			specs(mandatory("22H"), repeated("20C"), repeated("19A"), repeated("92A")),
			options("98", "A", "B"),
		),
		inSequence("B1",
			specs(mandatory("22H"), repeated("22F"), optional("11A")),
		),
		inSequence("B1a",
			options("95", "P", "Q", "R"),
			specs(optional("97A"), optional("20C"), optional("70C")),
		),
		inSequence("B1b",
			options("95", "P", "Q", "R"),
			specs(optional("97A"), optional("70C")),
		),
		inSequence("B1b1",
			specs(mandatory("19A")),
		),
		inSequence("B1c",
			specs(mandatory("19A"), optional("98A")),
		),
		inSequence("C",
			options("95", "P", "Q", "R"),
			specs(optional("70C")),
		),
	),
}))
