package jsonx

import (
	"testing"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no fence",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n{}\n```  ",
			want: "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFence(tt.in); got != tt.want {
				t.Errorf("StripFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantKey string
		wantVal any
		wantErr bool
	}{
		{
			name:    "clean object",
			in:      `{"docType": "invoice"}`,
			wantKey: "docType",
			wantVal: "invoice",
		},
		{
			name:    "fenced with trailing prose",
			in:      "Sure! Here is the JSON:\n```json\n{\"docType\": \"receipt\"}\n```\nLet me know if you need more.",
			wantKey: "docType",
			wantVal: "receipt",
		},
		{
			name:    "prose before object",
			in:      `The result is {"amount": 42.5} as requested`,
			wantKey: "amount",
			wantVal: 42.5,
		},
		{
			name:    "no object at all",
			in:      "I could not read this document, sorry.",
			wantErr: true,
		},
		{
			name:    "malformed object",
			in:      `{"unclosed": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractObject(%q) expected error, got %#v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractObject(%q) error: %v", tt.in, err)
			}
			if got[tt.wantKey] != tt.wantVal {
				t.Errorf("obj[%q] = %v, want %v", tt.wantKey, got[tt.wantKey], tt.wantVal)
			}
		})
	}
}

func TestDecodeInto(t *testing.T) {
	var out struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}

	in := "```json\n{\"subject\": \"Invoice due\", \"body\": \"Please pay.\"}\n``` Additional commentary."
	if err := DecodeInto(in, &out); err != nil {
		t.Fatalf("DecodeInto error: %v", err)
	}
	if out.Subject != "Invoice due" || out.Body != "Please pay." {
		t.Errorf("DecodeInto = %+v, want subject/body filled", out)
	}
}
