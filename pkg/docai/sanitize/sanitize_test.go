package sanitize

import (
	"reflect"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Invoice #42 from ACME",
			want: "Invoice #42 from ACME",
		},
		{
			name: "nul bytes removed",
			in:   "inv\x00oice",
			want: "invoice",
		},
		{
			name: "keeps newline tab and carriage return",
			in:   "line one\n\tline two\r\n",
			want: "line one\n\tline two",
		},
		{
			name: "strips C0 and C1 controls",
			in:   "a\x01b\x0bc\x1fd\x7fef",
			want: "abcdef",
		},
		{
			name: "trims surrounding whitespace",
			in:   "   padded   ",
			want: "padded",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.in)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Idempotence
			if again := Text(got); again != got {
				t.Errorf("Text not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestObjectPreservesShape(t *testing.T) {
	in := map[string]any{
		"issuer": "AC\x00ME ",
		"amount": 42.5,
		"nested": map[string]any{
			"note": "\x01dirty",
		},
		"items": []any{"a\x02", 7, nil},
	}

	got := Object(in)

	want := map[string]any{
		"issuer": "ACME",
		"amount": 42.5,
		"nested": map[string]any{
			"note": "dirty",
		},
		"items": []any{"a", 7, nil},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Object() = %#v, want %#v", got, want)
	}

	// Input must not be mutated.
	if in["issuer"] != "AC\x00ME " {
		t.Errorf("Object mutated its input")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than max", in: "short", max: 10, want: "short"},
		{name: "exactly max", in: "12345", max: 5, want: "12345"},
		{name: "cut with ellipsis", in: "123456", max: 5, want: "12345" + Ellipsis},
		{name: "multibyte runes counted once", in: "héllo wörld", max: 4, want: "héll" + Ellipsis},
		{name: "negative max", in: "abc", max: -1, want: Ellipsis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestPrepareForStorage(t *testing.T) {
	data := map[string]any{
		"docType": "invoice",
		"summary": "fine\x00 summary",
	}
	data[KeyRawTextSnippet] = "0123456789"
	data[KeyOCRText] = "abc"

	got := PrepareForStorage(data, 5)

	if got[KeyRawTextSnippet] != "01234"+Ellipsis {
		t.Errorf("rawTextSnippet = %q, want bounded to 5 runes", got[KeyRawTextSnippet])
	}
	if got[KeyOCRText] != "abc" {
		t.Errorf("ocrText = %q, want untouched", got[KeyOCRText])
	}
	if got["summary"] != "fine summary" {
		t.Errorf("summary = %q, want sanitized", got["summary"])
	}

	if got := PrepareForStorage(nil, 5); len(got) != 0 {
		t.Errorf("PrepareForStorage(nil) = %#v, want empty map", got)
	}
}
