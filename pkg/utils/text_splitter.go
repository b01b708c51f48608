package utils

import "unicode"

// SplitText splits a long string into chunks of approximately 'chunkSize' runes
// with 'overlap' runes repeated across boundaries to preserve context.
// Boundaries prefer a whitespace within the final tenth of the chunk so words
// are not cut in half; strict slicing is the fallback.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end >= totalLen {
			chunks = append(chunks, string(runes[i:totalLen]))
			break
		}

		cut := end
		for j := end; j > end-chunkSize/10 && j > i; j-- {
			if unicode.IsSpace(runes[j-1]) {
				cut = j
				break
			}
		}

		chunks = append(chunks, string(runes[i:cut]))
	}

	return chunks
}

// Truncate clips s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
