package response

import "testing"

func TestError(t *testing.T) {
	if got := Error(CodeNotFound, "").Message; got != "Not Found" {
		t.Fatalf("default msg = %q", got)
	}
	if got := Error(CodeNotFound, "booking not found").Message; got != "booking not found" {
		t.Fatalf("custom msg = %q", got)
	}
	if got := Error(999, "").Message; got != "error" {
		t.Fatalf("unknown code msg = %q", got)
	}
}
