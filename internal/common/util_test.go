package common

import (
	"strconv"
	"testing"
)

func TestRandomOTPCode_Format(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		code, err := RandomOTPCode()
		if err != nil {
			t.Fatalf("RandomOTPCode error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 0 || n > 999999 {
			t.Fatalf("code %q out of range", code)
		}
	}
}

func TestRandomOTPCode_NotConstant(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := RandomOTPCode()
		if err != nil {
			t.Fatalf("RandomOTPCode error: %v", err)
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct of 50", len(seen))
	}
}
