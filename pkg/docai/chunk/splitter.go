package chunk

// Chunk is a contiguous, possibly overlapping slice of a larger text.
// Offsets are rune offsets into the original text.
type Chunk struct {
	StartOffset int
	EndOffset   int
	Text        string
}

// Split cuts text into windows of at most maxChars runes. Consecutive
// windows share 'overlap' runes to preserve context at boundaries.
// Every rune of text is covered by at least one chunk. If the text
// already fits within maxChars a single chunk is returned.
//
// This is a character-based splitter; provider limits are given in
// characters, so a tokenizer-aware splitter is deliberately not used.
func Split(text string, maxChars, overlap int) []Chunk {
	runes := []rune(text)
	total := len(runes)

	if total <= maxChars {
		return []Chunk{{StartOffset: 0, EndOffset: total, Text: text}}
	}

	step := maxChars - overlap
	if step <= 0 {
		step = maxChars // fallback if overlap >= maxChars
	}

	var chunks []Chunk
	for i := 0; i < total; i += step {
		end := i + maxChars
		if end > total {
			end = total
		}
		chunks = append(chunks, Chunk{
			StartOffset: i,
			EndOffset:   end,
			Text:        string(runes[i:end]),
		})
		if end == total {
			break
		}
	}

	return chunks
}
