package swiftmt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.ErrorIs(t, err, ErrValidationFailed)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr
}

func TestValidate_MandatoryField(t *testing.T) {
	m := NewMessage(MT103, WithTags(
		NewTag("20", "REF"), NewTag("23B", "CRED"), NewTag("32A", "240102EUR1,"),
		NewTag("50K", "JOHN"), NewTag("59", "JANE"),
	))
	verr := validationError(t, m.Validate())
	assert.Equal(t, "71A", verr.Tag)
	assert.Equal(t, "mandatory", verr.Rule)
	assert.Equal(t, "validation failed for field 71A in message (mandatory): mandatory field missing", verr.Error())
}

func TestValidate_Cardinality(t *testing.T) {
	m := NewMessage(MT103, WithTags(
		NewTag("20", "REF"), NewTag("20", "AGAIN"), NewTag("23B", "CRED"),
		NewTag("32A", "240102EUR1,"), NewTag("50K", "JOHN"), NewTag("59", "JANE"), NewTag("71A", "SHA"),
	))
	verr := validationError(t, m.Validate())
	assert.Equal(t, "cardinality", verr.Rule)
	assert.Equal(t, "20", verr.Tag)
}

func TestValidate_RepeatableFieldsAllowed(t *testing.T) {
	m := NewMessage(MT103, WithTags(
		NewTag("20", "REF"), NewTag("13C", "/SNDTIME/1200+0100"), NewTag("13C", "/RNCTIME/1300+0100"),
		NewTag("23B", "CRED"), NewTag("32A", "240102EUR1,"), NewTag("50K", "JOHN"),
		NewTag("59", "JANE"), NewTag("71A", "SHA"),
	))
	assert.NoError(t, m.Validate())
}

func TestValidateAll_OneOfRules(t *testing.T) {
	m := NewMessage(MT103, WithTags(
		NewTag("20", "REF"), NewTag("23B", "CRED"), NewTag("32A", "240102EUR1,"), NewTag("71A", "SHA"),
	))
	errs := MT103.GetValidator().ValidateAll(m)
	require.Len(t, errs, 2)
	assert.Equal(t, "ordering_customer", validationError(t, errs[0]).Rule)
	assert.Equal(t, "beneficiary", validationError(t, errs[1]).Rule)
}

func TestValidate_MandatorySequence(t *testing.T) {
	verr := validationError(t, NewMessage(MT537).Validate())
	assert.Equal(t, "mandatory_sequence", verr.Rule)
	assert.Equal(t, "A", verr.Sequence)
	assert.Equal(t, "validation failed for sequence A (mandatory_sequence): mandatory sequence missing", verr.Error())
}

func TestValidate_MandatoryFieldInNestedSequence(t *testing.T) {
	seq := MT537.MustSequence
	m := NewMessage(MT537, WithTags(
		seq("A").NewInstance(NewTag("28E", "1/ONLY"), NewTag("20C", ":SEME//X"), NewTag("23G", "NEWM")),
		seq("C").NewInstance(seq("C3").NewInstance()),
	))
	verr := validationError(t, m.Validate())
	assert.Equal(t, "mandatory", verr.Rule)
	assert.Equal(t, "C3", verr.Sequence)
	assert.Equal(t, "25D", verr.Tag)
}

func TestValidate_MT102(t *testing.T) {
	seq := MT102.MustSequence
	m := NewMessage(MT102, WithTags(
		NewTag("20", "BATCH"), NewTag("23", "CREDIT"),
		seq("B").NewInstance(),
		seq("C").NewInstance(),
	))
	verr := validationError(t, m.Validate())
	assert.Equal(t, "mandatory", verr.Rule)
	assert.Equal(t, "B", verr.Sequence)
	assert.Equal(t, "32B", verr.Tag)
}

func TestSingleFieldRule_PerInstance(t *testing.T) {
	d := MT303.MustSequence("D")
	rule := &SingleFieldRule{Tag: "32B", Sequence: d}

	ok := NewMessage(MT303, WithTags(d.NewInstance(NewTag("32B", "USD1,")), d.NewInstance(NewTag("32B", "EUR2,"))))
	assert.NoError(t, rule.Validate(ok))

	twice := NewMessage(MT303, WithTags(d.NewInstance(NewTag("32B", "USD1,"), NewTag("32B", "EUR2,"))))
	verr := validationError(t, rule.Validate(twice))
	assert.Equal(t, "D", verr.Sequence)
}

func TestCompiledValidator_Rules(t *testing.T) {
	names := MT103.GetValidator().Rules()
	require.NotEmpty(t, names)
	assert.Equal(t, "declared", names[0])
	assert.Equal(t, []string{"ordering_customer", "beneficiary"}, names[len(names)-2:])

	assert.Empty(t, Generic.GetValidator().Rules())
}

func TestPatternRule(t *testing.T) {
	rule, err := NewPatternRule("20", `^[A-Z0-9/]{1,16}$`, "reference must be 16 upper-case characters")
	require.NoError(t, err)

	v := NewCompiledValidator()
	v.AddRule(rule)

	assert.NoError(t, v.ValidateMessage(NewMessage(MT103, WithTags(NewTag("20", "REF/1")))))

	verr := validationError(t, v.ValidateMessage(NewMessage(MT103, WithTags(NewTag("20", "lower case")))))
	assert.Equal(t, "pattern", verr.Rule)
	assert.Equal(t, "reference must be 16 upper-case characters", verr.Message)

	_, err = NewPatternRule("20", `[`, "")
	assert.Error(t, err)
}

func TestCustomRule(t *testing.T) {
	sentinel := errors.New("no same-day value")
	v := NewCompiledValidator()
	v.AddRule(&CustomRule{
		RuleName: "value_date",
		ValidateFunc: func(m *Message) error {
			f, err := m.Field("32A")
			if err != nil || f == nil {
				return err
			}
			if f.Component(0) == "240102" {
				return sentinel
			}
			return nil
		},
	})
	assert.Equal(t, []string{"value_date"}, v.Rules())
	assert.ErrorIs(t, v.ValidateMessage(NewMessage(MT103, WithTags(NewTag("32A", "240102EUR1,")))), sentinel)
	assert.NoError(t, v.ValidateMessage(NewMessage(MT103)))
	assert.Equal(t, []error{ErrUninitialized}, v.ValidateAll(&Message{}))
}
