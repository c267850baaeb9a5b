package scrape

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		budget        int
		wantTruncated bool
		wantRunes     int
	}{
		{"under budget", strings.Repeat("a", 500), 8000, false, 500},
		{"exactly budget", strings.Repeat("a", 8000), 8000, false, 8000},
		{"over primary budget", strings.Repeat("a", 20000), 8000, true, 8000 + utf8.RuneCountInString(TruncationMarker)},
		{"over fallback budget", strings.Repeat("b", 6001), 6000, true, 6000 + utf8.RuneCountInString(TruncationMarker)},
		{"disabled budget", strings.Repeat("c", 10), 0, false, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := Truncate(tt.text, tt.budget)
			if truncated != tt.wantTruncated {
				t.Errorf("truncated = %v, want %v", truncated, tt.wantTruncated)
			}
			if n := utf8.RuneCountInString(got); n != tt.wantRunes {
				t.Errorf("rune count = %d, want %d", n, tt.wantRunes)
			}
			if tt.wantTruncated && !strings.HasSuffix(got, TruncationMarker) {
				t.Errorf("truncated output should end with the marker")
			}
			if !tt.wantTruncated && got != tt.text {
				t.Errorf("untruncated output should be unchanged")
			}
		})
	}
}

func TestTruncate_Idempotent(t *testing.T) {
	text := strings.Repeat("word ", 5000)
	once, _ := Truncate(text, 8000)
	twice, truncated := Truncate(once, 8000)
	if twice != once {
		t.Fatalf("second truncation changed the output: %d vs %d runes", utf8.RuneCountInString(twice), utf8.RuneCountInString(once))
	}
	if !truncated {
		t.Error("already truncated output should still report truncated")
	}
}

func TestTruncate_Multibyte(t *testing.T) {
	text := strings.Repeat("日本語😀", 100)
	got, truncated := Truncate(text, 7)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncation split a UTF-8 sequence")
	}
	if want := "日本語😀日本語" + TruncationMarker; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
