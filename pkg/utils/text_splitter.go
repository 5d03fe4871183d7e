package utils

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150

	// A window is shortened to its last space only when that space sits in the final 10%.
	wordBreakRatio = 0.9
)

// SplitText splits text into bounded, overlapping passages measured in characters.
// Each window ends at its last space when that space lies past 90% of the window,
// and the next window starts 'overlap' characters before the previous end.
// The cursor always moves forward, so the loop terminates even when overlap >= chunkSize.
func SplitText(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return []string{}
	}

	var chunks []string
	start := 0
	for start < total {
		end := start + chunkSize
		if end >= total {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		if cut := lastSpace(runes[start:end]); cut >= 0 && float64(cut) > float64(chunkSize)*wordBreakRatio {
			end = start + cut
		}
		chunks = append(chunks, string(runes[start:end]))

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

func lastSpace(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == ' ' {
			return i
		}
	}
	return -1
}
