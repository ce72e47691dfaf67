package swiftmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_MT103(t *testing.T) {
	m, err := NewBuilder(MT103).
		Sender("BANKBEBB").
		Receiver("BANKDEFFXXX").
		MUR("MUR1").
		Tag("20", "REF").
		Tag("23B", "CRED").
		Tag("32A", "240102EUR100,").
		Field(NewField("50K", "/1\nJOHN")).
		Tag("59", "/2\nJANE").
		Tag("71A", "OUR").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "BANKBEBBXXXX", m.Sender())
	assert.Equal(t, "BANKDEFFXXXX", m.Receiver())
	assert.Equal(t, "MUR1", m.MUR())
	assert.NoError(t, m.Validate())

	block4, _ := m.Block4()
	assert.Equal(t, 6, block4.Len())
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		build  func() *Builder
		target error
	}{
		{"malformed tag", func() *Builder { return NewBuilder(MT103).Tag("2x", "") }, ErrInvalidTag},
		{"undeclared tag", func() *Builder { return NewBuilder(MT103).Tag("16R", "GENL") }, ErrUnknownField},
		{"bad sender", func() *Builder { return NewBuilder(MT103).Sender("nope") }, ErrInvalidAddress},
		{"bad receiver", func() *Builder { return NewBuilder(MT103).Receiver("12345678") }, ErrInvalidAddress},
		{"unknown sequence", func() *Builder { return NewBuilder(MT537).Sequence("Z") }, ErrUnknownSequence},
		{"bad UETR", func() *Builder { return NewBuilder(MT103).UETR("not-a-uuid") }, ErrInvalidHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.build().Tag("20", "REF").Build()
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorContains(t, err, "build MT")
		})
	}
}

func TestBuilder_KeepsFirstError(t *testing.T) {
	_, err := NewBuilder(MT103).Tag("99", "X").Sender("nope").Build()
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.NotErrorIs(t, err, ErrInvalidAddress)
}

func TestBuilder_Sequences(t *testing.T) {
	m, err := NewBuilder(MT537).
		Sequence("A",
			NewTag("28E", "1/ONLY"),
			NewTag("20C", ":SEME//STMT1"),
			NewTag("23G", "NEWM"),
			MT537.MustSequence("A1").NewInstance(NewTag("20C", ":RELA//PREV")),
		).
		Sequence("B", NewTag("25D", ":SETT//PEND")).
		Build()
	require.NoError(t, err)
	assert.NoError(t, m.Validate())

	a1, err := m.SequenceList("A1")
	require.NoError(t, err)
	require.Len(t, a1, 1)
	assert.Equal(t, ":RELA//PREV", a1[0].TagValue("20C"))
}

func TestBuilder_AddIsUnchecked(t *testing.T) {
	m := NewBuilder(MT103).Add(NewTag("99", "X")).MustBuild()
	block4, _ := m.Block4()
	assert.True(t, block4.ContainsTag("99"))

	var verr *ValidationError
	require.ErrorAs(t, m.Validate(), &verr)
	assert.Equal(t, "declared", verr.Rule)
}

func TestBuilder_GenericAcceptsAnyTag(t *testing.T) {
	m, err := NewBuilder(nil).Tag("79", "FREE").Build()
	require.NoError(t, err)
	assert.Same(t, Generic, m.Schema())
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	assert.Panics(t, func() { NewBuilder(MT103).Tag("", "").MustBuild() })
}
