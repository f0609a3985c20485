package utils

import "strings"

// CleanJSONResponse strips markdown fences and chatter around a model reply and
// returns the first balanced JSON object or array it finds.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	switch {
	case objStart != -1 && (arrStart == -1 || objStart < arrStart):
		if end := matchingClose(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	case arrStart != -1:
		if end := matchingClose(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

// matchingClose finds the index of the bracket closing s[start], ignoring
// brackets inside string literals. Returns -1 when unbalanced.
func matchingClose(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
