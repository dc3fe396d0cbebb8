package genome

import "testing"

func TestFromIntRoundTrip(t *testing.T) {
	for i := -MaxValue; i <= MaxValue; i++ {
		if got := ToInt(FromInt(i)); got != i {
			t.Errorf("ToInt(FromInt(%d)) = %d", i, got)
		}
	}
}

func TestFromIntWraps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{128, 0},
		{129, 1},
		{-129, -1},
		{-128, 0},
		{255, 127},
		{-300, -44},
		{1000000, 1000000 % 128},
		{-1000000, -(1000000 % 128)},
	}
	for _, tt := range tests {
		if got := ToInt(FromInt(tt.in)); got != tt.want {
			t.Errorf("ToInt(FromInt(%d)) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEncodingIsSignMagnitude(t *testing.T) {
	if b := FromInt(-1); b != 0x81 {
		t.Errorf("FromInt(-1) = %#x, want 0x81", b)
	}
	if b := FromInt(-128); b != 0 {
		t.Errorf("FromInt(-128) = %#x, negative zero should normalize to 0", b)
	}
	if got := ToInt(0x80); got != 0 {
		t.Errorf("ToInt(0x80) = %d, want 0", got)
	}
}

func TestAbsAndMod(t *testing.T) {
	b := FromInt(-37)
	if got := Abs(b); got != 37 {
		t.Errorf("Abs = %d, want 37", got)
	}
	if got := Mod(b, 10); got != 7 {
		t.Errorf("Mod(-37, 10) = %d, want 7", got)
	}
	if got := Mod(b, 0); got != 0 {
		t.Errorf("Mod by 0 = %d, want 0", got)
	}
	if got := ModInt(-37, 10); got != 7 {
		t.Errorf("ModInt(-37, 10) = %d, want 7", got)
	}
}

func TestDecodeCoversEveryByte(t *testing.T) {
	counts := make(map[Instruction]int)
	for b := 0; b < 256; b++ {
		in := Decode(byte(b))
		if in >= numInstructions {
			t.Fatalf("Decode(%#x) = %d, outside the instruction table", b, in)
		}
		counts[in]++
	}
	for _, in := range Instructions() {
		if counts[in] == 0 {
			t.Errorf("%s is never decoded", in)
		}
	}
}

func TestInstructionCodeDecodes(t *testing.T) {
	for _, in := range Instructions() {
		if got := Decode(in.Code()); got != in {
			t.Errorf("Decode(%s.Code()) = %s", in, got)
		}
		// Sign is ignored by the decoder.
		if got := Decode(FromInt(-ToInt(in.Code()))); got != in {
			t.Errorf("negated %s decodes as %s", in, got)
		}
	}
}

func TestUnassignedCodesAreJunk(t *testing.T) {
	if got := Decode(FromInt(MaxValue)); got != Junk {
		t.Errorf("Decode(127) = %s, want JUNK", got)
	}
	if got := Decode(0); got != Junk {
		t.Errorf("Decode(0) = %s, want JUNK", got)
	}
}
