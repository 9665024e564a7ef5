package variant

import (
	"testing"
)

func TestNew_NumericNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
	}{
		{"int", int(5), KindInt},
		{"int32", int32(5), KindInt},
		{"int64", int64(5), KindInt},
		{"uint16", uint16(5), KindInt},
		{"float32", float32(1.5), KindFloat},
		{"float64", float64(1.5), KindFloat},
		{"bool", true, KindBool},
		{"string", "x", KindString},
		{"stringlist", []string{"a", "b"}, KindStringList},
		{"nil", nil, KindInvalid},
		{"unsupported", struct{}{}, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.in)
			if v.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", v.Kind(), tt.kind)
			}
		})
	}
}

func TestVariant_Invalid(t *testing.T) {
	v := Invalid()
	if v.IsValid() {
		t.Error("Invalid() should not be valid")
	}

	// Invalid is distinct from legitimate zero values.
	if New(false).Equal(v) {
		t.Error("bool(false) must not equal invalid")
	}
	if New("").Equal(v) {
		t.Error("string(\"\") must not equal invalid")
	}
	if New(int64(0)).Equal(v) {
		t.Error("int(0) must not equal invalid")
	}
}

func TestVariant_Accessors(t *testing.T) {
	if b, ok := New(true).Bool(); !ok || !b {
		t.Errorf("Bool = %v, %v", b, ok)
	}
	if i, ok := New(42).Int(); !ok || i != 42 {
		t.Errorf("Int = %v, %v", i, ok)
	}
	if f, ok := New(1.5).Float(); !ok || f != 1.5 {
		t.Errorf("Float = %v, %v", f, ok)
	}
	if s, ok := New("hello").Str(); !ok || s != "hello" {
		t.Errorf("Str = %v, %v", s, ok)
	}

	// Numeric coercions.
	if f, ok := New(42).Float(); !ok || f != 42.0 {
		t.Errorf("int->Float = %v, %v", f, ok)
	}
	if i, ok := New(42.9).Int(); !ok || i != 42 {
		t.Errorf("float->Int = %v, %v", i, ok)
	}

	// Wrong kinds.
	if _, ok := New("x").Bool(); ok {
		t.Error("string should not convert to bool")
	}
	if _, ok := New(true).Int(); ok {
		t.Error("bool should not convert to int")
	}
}

func TestVariant_StringListIsCopied(t *testing.T) {
	src := []string{"a", "b"}
	v := New(src)
	src[0] = "mutated"

	list, ok := v.StringList()
	if !ok {
		t.Fatal("StringList failed")
	}
	if list[0] != "a" {
		t.Errorf("variant aliased caller slice: %v", list)
	}

	list[1] = "mutated"
	again, _ := v.StringList()
	if again[1] != "b" {
		t.Errorf("returned slice aliased variant state: %v", again)
	}
}

func TestVariant_Map(t *testing.T) {
	m := map[string]Variant{
		"host": New("localhost"),
		"port": New(8080),
	}
	v := New(m)

	got, ok := v.Map()
	if !ok {
		t.Fatal("Map failed")
	}
	if s, _ := got["host"].Str(); s != "localhost" {
		t.Errorf("host = %q", s)
	}
	if i, _ := got["port"].Int(); i != 8080 {
		t.Errorf("port = %d", i)
	}
}

func TestVariant_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Variant
		want bool
	}{
		{"same int", New(3), New(3), true},
		{"diff int", New(3), New(4), false},
		{"int vs float", New(3), New(3.0), false},
		{"same list", New([]string{"a"}), New([]string{"a"}), true},
		{"diff list", New([]string{"a"}), New([]string{"b"}), false},
		{"both invalid", Invalid(), Invalid(), true},
		{"same color", New(ColorFromRGBA255(1, 2, 3, 255)), New(ColorFromRGBA255(1, 2, 3, 255)), true},
		{"diff alpha", New(ColorFromRGBA255(1, 2, 3, 255)), New(ColorFromRGBA255(1, 2, 3, 128)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVariant_ToAnyFromAny_RoundTrip(t *testing.T) {
	values := []Variant{
		New(true),
		New(int64(7)),
		New(2.25),
		New("text"),
		New([]string{"x", "y", "z"}),
		New(map[string]Variant{"k": New("v"), "n": New(1)}),
	}

	for _, v := range values {
		got := FromAny(v.ToAny())
		if !got.Equal(v) {
			t.Errorf("round trip of %v gave %v", v, got)
		}
	}
}

func TestVariant_ColorThroughDocument(t *testing.T) {
	c := ColorFromRGBA255(0x11, 0x22, 0x33, 0x80)
	v := New(c)

	// Colors encode as hex strings in documents; AsColor accepts the
	// decoded string form.
	decoded := FromAny(v.ToAny())
	if decoded.Kind() != KindString {
		t.Fatalf("encoded color kind = %v, want string", decoded.Kind())
	}

	got, ok := decoded.AsColor()
	if !ok {
		t.Fatal("AsColor failed on decoded value")
	}
	if !got.Equal(c) {
		t.Errorf("color round trip: got %s, want %s", got.Hex(), c.Hex())
	}
}
