package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateDetails fuzzes the details truncation used by table output.
func FuzzTruncateDetails(f *testing.F) {
	seeds := []struct {
		details string
		width   int
	}{
		{"val_loss is NaN", 50},
		{"", 20},
		{"epochs=1 (<= 6.6); runtime_sec=5 (<= 83.0)", 10},
		{"short", 3},
		{"héllo wörld", 8},
	}
	for _, seed := range seeds {
		f.Add(seed.details, seed.width)
	}

	f.Fuzz(func(t *testing.T, details string, width int) {
		got := TruncateDetails(details, width)
		if width > 3 && utf8.RuneCountInString(got) > width {
			t.Errorf("TruncateDetails(%q, %d) = %q, longer than width", details, width, got)
		}
		if utf8.RuneCountInString(details) <= width && got != details {
			t.Errorf("TruncateDetails(%q, %d) = %q, short input modified", details, width, got)
		}
	})
}
