package digest

// DefaultChunkSize is the window, in characters, handed to the primary model.
const DefaultChunkSize = 1000

// Chunk splits text into consecutive windows of size characters (runes).
// Every chunk but the last has exactly size characters, and joining the
// chunks in order gives back text. A non-positive size means DefaultChunkSize.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var chunks []string
	start, count := 0, 0
	for i := range text {
		if count == size {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	if start < len(text) {
		chunks = append(chunks, text[start:])
	}
	return chunks
}
