package accesscode

import (
	"strings"
	"testing"
)

func TestGenerateCode_InvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := GenerateCode(0); err == nil {
		t.Fatalf("expected error for invalid length")
	}
}

func TestGenerateCode_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	code, err := GenerateCode(CodeLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != CodeLength {
		t.Fatalf("expected code length %d, got %d", CodeLength, len(code))
	}

	for i := 0; i < len(code); i++ {
		if strings.IndexByte(alphabet, code[i]) == -1 {
			t.Fatalf("code contains invalid character %q", code[i])
		}
	}
}

func TestGenerateCode_UniqueWithinSmallBatch(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		code, err := GenerateCode(CodeLength)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, exists := seen[code]; exists {
			t.Fatalf("duplicate code generated in small batch: %s", code)
		}
		seen[code] = struct{}{}
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "ab12cd34", want: "AB12CD34"},
		{in: "  AB12CD34  ", want: "AB12CD34"},
		{in: "aB12Cd34", want: "AB12CD34"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Fatalf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
