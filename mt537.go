package swiftmt

// MT537 Statement of Pending Transactions.
//
// STAT opens both B and C3, LINK opens A1, B2a and C1, and REAS opens B1
// and C3a. Each is only looked up inside its own parent.
var MT537 = mustRegister(MustSchema(&SchemaConfig{
	Type: "537",
	Name: "Statement of Pending Transactions",
	Sequences: []SequenceSpec{
		{Name: "A", Boundary: Qualified("GENL"), Mandatory: true, Description: "General Information"},
		{Name: "A1", Parent: "A", Boundary: Qualified("LINK"), Repeatable: true, Description: "Linkages"},
		{Name: "B", Boundary: Qualified("STAT"), Repeatable: true, Description: "Status"},
		{Name: "B1", Parent: "B", Boundary: Qualified("REAS"), Repeatable: true, Description: "Reason"},
		{Name: "B2", Parent: "B", Boundary: Qualified("TRAN"), Repeatable: true, Description: "Transaction"},
		{Name: "B2a", Parent: "B2", Boundary: Qualified("LINK"), Repeatable: true, Description: "Linkages"},
		{Name: "B2b", Parent: "B2", Boundary: Qualified("TRANSDET"), Description: "Transaction Details"},
		{Name: "C", Boundary: Qualified("TRANS"), Repeatable: true, Description: "Transactions"},
		{Name: "C1", Parent: "C", Boundary: Qualified("LINK"), Repeatable: true, Description: "Linkages"},
		{Name: "C2", Parent: "C", Boundary: Qualified("TRANSDET"), Description: "Transaction Details"},
		{Name: "C3", Parent: "C", Boundary: Qualified("STAT"), Repeatable: true, Description: "Status"},
		{Name: "C3a", Parent: "C3", Boundary: Qualified("REAS"), Repeatable: true, Description: "Reason"},
		{Name: "D", Boundary: Qualified("ADDINFO"), Description: "Additional Information"},
	},
	Fields: concat(
		inSequence("A",
			specs(
				mandatory("28E"),
				optional("13A"),
				mandatory("20C"),
				mandatory("23G"),
				repeated("22F"),
				repeated("22H"),
				optional("97A"),
				optional("97B"),
				repeated("17B"),
			),
			options("98", "A", "C", "E"),
			options("95", "P", "Q", "R"),
		),
		inSequence("A1",
			specs(optional("13A"), optional("13B"), mandatory("20C")),
		),
		inSequence("B",
			specs(mandatory("25D")),
		),
		inSequence("B1",
			specs(mandatory("24B"), optional("70D")),
		),
		inSequence("B2a",
			specs(optional("13A"), optional("13B"), mandatory("20C")),
		),
		inSequence("B2b",
			specs(
				mandatory("35B"),
				repeated("36B"),
				repeated("19A"),
				repeated("22F"),
				repeated("22H"),
				optional("94B"),
				optional("94H"),
				optional("70E"),
			),
			options("98", "A", "B", "C"),
		),
		inSequence("C1",
			specs(optional("13A"), optional("13B"), mandatory("20C")),
		),
		inSequence("C2",
			specs(mandatory("35B"), repeated("36B"), repeated("19A"), repeated("22H")),
			options("98", "A", "C"),
			options("95", "P", "Q", "R"),
		),
		inSequence("C3",
			specs(mandatory("25D")),
		),
		inSequence("C3a",
			specs(mandatory("24B"), optional("70D")),
		),
		inSequence("D",
			options("95", "P", "Q", "R"),
		),
	),
}))
