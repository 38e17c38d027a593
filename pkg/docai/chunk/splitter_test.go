package chunk

import (
	"strings"
	"testing"
)

func TestSplitSingleChunk(t *testing.T) {
	text := "fits easily"
	chunks := Split(text, 100, 10)

	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].StartOffset != 0 || chunks[0].EndOffset != len([]rune(text)) {
		t.Errorf("offsets = [%d, %d), want [0, %d)", chunks[0].StartOffset, chunks[0].EndOffset, len([]rune(text)))
	}
	if chunks[0].Text != text {
		t.Errorf("text = %q, want %q", chunks[0].Text, text)
	}
}

func TestSplitWindowsAndOverlap(t *testing.T) {
	// 8001 chars with window 8000 and overlap 500: the second window
	// must start at 7500 and run to the end.
	text := strings.Repeat("a", 8001)
	chunks := Split(text, 8000, 500)

	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if chunks[0].StartOffset != 0 || chunks[0].EndOffset != 8000 {
		t.Errorf("chunk 0 = [%d, %d), want [0, 8000)", chunks[0].StartOffset, chunks[0].EndOffset)
	}
	if chunks[1].StartOffset != 7500 || chunks[1].EndOffset != 8001 {
		t.Errorf("chunk 1 = [%d, %d), want [7500, 8001)", chunks[1].StartOffset, chunks[1].EndOffset)
	}
}

func TestSplitFullCoverage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		maxChars int
		overlap  int
	}{
		{name: "exact multiple", total: 300, maxChars: 100, overlap: 0},
		{name: "with overlap", total: 1000, maxChars: 300, overlap: 50},
		{name: "one rune over", total: 101, maxChars: 100, overlap: 20},
		{name: "degenerate overlap", total: 250, maxChars: 100, overlap: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("x", tt.total)
			chunks := Split(text, tt.maxChars, tt.overlap)

			if len(chunks) == 0 {
				t.Fatal("no chunks returned")
			}
			if chunks[0].StartOffset != 0 {
				t.Errorf("first chunk starts at %d, want 0", chunks[0].StartOffset)
			}
			if last := chunks[len(chunks)-1]; last.EndOffset != tt.total {
				t.Errorf("last chunk ends at %d, want %d", last.EndOffset, tt.total)
			}
			for i, c := range chunks {
				if c.EndOffset-c.StartOffset > tt.maxChars {
					t.Errorf("chunk %d spans %d runes, exceeds max %d", i, c.EndOffset-c.StartOffset, tt.maxChars)
				}
				if i > 0 && c.StartOffset > chunks[i-1].EndOffset {
					t.Errorf("gap between chunk %d and %d", i-1, i)
				}
			}
		})
	}
}

func TestSplitMultibyte(t *testing.T) {
	// Offsets are rune offsets, not byte offsets.
	text := strings.Repeat("é", 12)
	chunks := Split(text, 5, 1)

	var rebuilt []rune
	for _, c := range chunks {
		runes := []rune(c.Text)
		if len(runes) != c.EndOffset-c.StartOffset {
			t.Errorf("chunk text length %d disagrees with offsets [%d, %d)", len(runes), c.StartOffset, c.EndOffset)
		}
		for i, r := range runes {
			pos := c.StartOffset + i
			for len(rebuilt) <= pos {
				rebuilt = append(rebuilt, 0)
			}
			rebuilt[pos] = r
		}
	}
	if string(rebuilt) != text {
		t.Errorf("chunks do not reassemble the original text")
	}
}
