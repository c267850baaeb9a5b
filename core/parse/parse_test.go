package parse

import (
	"testing"
)

type scrapeArgs struct {
	URL    string `json:"url"`
	Format string `json:"format,omitempty"`
}

func TestParseStringAs_Struct(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    scrapeArgs
		wantErr bool
	}{
		{
			name:  "valid JSON",
			input: `{"url":"https://example.com","format":"markdown"}`,
			want:  scrapeArgs{URL: "https://example.com", Format: "markdown"},
		},
		{
			name:  "single quotes and trailing comma",
			input: `{'url': 'https://example.com',}`,
			want:  scrapeArgs{URL: "https://example.com"},
		},
		{
			name:  "markdown fence",
			input: "```json\n{\"url\": \"https://example.com\"}\n```",
			want:  scrapeArgs{URL: "https://example.com"},
		},
		{
			name:  "schema envelope",
			input: `{"url": {"type": "string", "value": "https://example.com"}}`,
			want:  scrapeArgs{URL: "https://example.com"},
		},
		{
			name:    "wrong shape",
			input:   `["https://example.com"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringAs[scrapeArgs](tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStringAs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseStringAs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseStringAs_Primitives(t *testing.T) {
	if got, err := ParseStringAs[string]("hello\nworld"); err != nil || got != "hello\nworld" {
		t.Errorf("string = %q, %v", got, err)
	}
	if got, err := ParseStringAs[string](`{"type":"string","value":"wrapped"}`); err != nil || got != "wrapped" {
		t.Errorf("wrapped string = %q, %v", got, err)
	}
	if got, err := ParseStringAs[bool](" true "); err != nil || !got {
		t.Errorf("bool = %v, %v", got, err)
	}
	if got, err := ParseStringAs[int]("42"); err != nil || got != 42 {
		t.Errorf("int = %v, %v", got, err)
	}
	if got, err := ParseStringAs[int](`{"type":"integer","value":7}`); err != nil || got != 7 {
		t.Errorf("wrapped int = %v, %v", got, err)
	}
	if got, err := ParseStringAs[float64]("0.95"); err != nil || got != 0.95 {
		t.Errorf("float = %v, %v", got, err)
	}
	if got, err := ParseStringAs[uint8]("255"); err != nil || got != 255 {
		t.Errorf("uint8 = %v, %v", got, err)
	}
	if _, err := ParseStringAs[uint8]("256"); err == nil {
		t.Error("expected overflow error for uint8")
	}
	if _, err := ParseStringAs[int]("many"); err == nil {
		t.Error("expected error for non-numeric int")
	}
}

func TestParseStringAs_Map(t *testing.T) {
	got, err := ParseStringAs[map[string]any](`{query: "golang", max_results: 3}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["query"] != "golang" || got["max_results"] != float64(3) {
		t.Errorf("map = %v", got)
	}
}
