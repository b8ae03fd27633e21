package recstore

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type label struct{ name string }

func (l label) String() string { return "label:" + l.name }

type (
	flag  bool
	score int
	grade uint16
	ratio float32
	mood  string
)

func TestValueOf(t *testing.T) {
	n := 7
	var nilPtr *int

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null()},
		{"string", "a", Text("a")},
		{"bytes", []byte("b"), Text("b")},
		{"bool", true, Bool(true)},
		{"int", 3, Integer(3)},
		{"uint8", uint8(4), Integer(4)},
		{"float32", float32(1.5), Float(1.5)},
		{"json integer", json.Number("12"), Integer(12)},
		{"json float", json.Number("1.25"), Float(1.25)},
		{"pointer", &n, Integer(7)},
		{"nil pointer", nilPtr, Null()},
		{"time", time.Date(2024, 3, 15, 10, 0, 0, 0, time.FixedZone("CET", 3600)), Value{kind: KindDateTime, str: "2024-03-15T09:00:00.000Z"}},
		{"uint64 in range", uint64(5), Integer(5)},
		{"uint64 above int64", uint64(1 << 63), Float(9223372036854775808)},
		{"named bool false", flag(false), Bool(false)},
		{"named bool true", flag(true), Bool(true)},
		{"named int", score(4), Integer(4)},
		{"named uint", grade(9), Integer(9)},
		{"named float", ratio(0.5), Float(0.5)},
		{"named string", mood("calm"), Text("calm")},
		{"named pointer", func() *flag { f := flag(false); return &f }(), Bool(false)},
		{"stringer", label{"x"}, Text("label:x")},
		{"value", Float(2), Float(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValueOf(tt.in)
			assert.True(t, tt.want.Equal(got), "got %s (%s)", got, got.Kind())
		})
	}
}

func TestValueAccessors(t *testing.T) {
	s, ok := DateOnly(fixedNow).Str()
	assert.True(t, ok)
	assert.Equal(t, "2024-03-15", s)

	i, ok := Float(3).Int()
	assert.True(t, ok)
	assert.Equal(t, int64(3), i)

	_, ok = Float(3.5).Int()
	assert.False(t, ok)

	_, ok = Text("3").Int()
	assert.False(t, ok, "text is not coerced by accessors")

	f, ok := Integer(2).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.0, f)

	assert.Nil(t, Null().Any())
	assert.Equal(t, int64(5), Integer(5).Any())
}

func TestValueEqualIsStrict(t *testing.T) {
	assert.True(t, Null().Equal(Value{}))
	assert.True(t, Text("5").Equal(Text("5")))
	assert.False(t, Integer(5).Equal(Text("5")))
	assert.False(t, Integer(1).Equal(Bool(true)))
	assert.False(t, Integer(2).Equal(Float(2)))
	assert.False(t, Text("2024-03-15").Equal(DateOnly(fixedNow)), "kind is part of equality")
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{Null(), "null"},
		{Text(`say "hi"`), `"say \"hi\""`},
		{Integer(-4), "-4"},
		{Float(2.5), "2.5"},
		{Float(math.NaN()), "null"},
		{Float(math.Inf(1)), "null"},
		{Bool(false), "false"},
		{DateTime(fixedNow), `"2024-03-15T10:30:00.000Z"`},
	}
	for _, tt := range tests {
		b, err := tt.in.MarshalJSON()
		assert.NoError(t, err)
		assert.Equal(t, tt.want, string(b))
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "dateonly", KindDateOnly.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
