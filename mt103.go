package swiftmt

// MT103 Single Customer Credit Transfer. The body has no sequences.
var MT103 = mustRegister(newMT103())

func newMT103() *Schema {
	s := MustSchema(&SchemaConfig{
		Type: "103",
		Name: "Single Customer Credit Transfer",
		Fields: concat(
			specs(
				mandatory("20"),
				repeated("13C"),
				mandatory("23B"),
				repeated("23E"),
				optional("26T"),
				mandatory("32A"),
				optional("33B"),
				optional("36"),
			),
			options("50", "A", "F", "K"),
			specs(optional("51A")),
			options("52", "A", "D"),
			options("53", "A", "B", "D"),
			options("54", "A", "B", "D"),
			options("55", "A", "B", "D"),
			options("56", "A", "C", "D"),
			options("57", "A", "B", "C", "D"),
			options("59", "", "A", "F"),
			specs(
				optional("70"),
				mandatory("71A"),
				repeated("71F"),
				optional("71G"),
				optional("72"),
				optional("77B"),
				optional("77T"),
			),
		),
	})
	v := s.GetValidator()
	v.AddRule(RequireOneOf("ordering_customer", "50A", "50F", "50K"))
	v.AddRule(RequireOneOf("beneficiary", "59", "59A", "59F"))
	return s
}
