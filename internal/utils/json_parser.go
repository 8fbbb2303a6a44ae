package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseAIJSON parses JSON from language-model output. The payload may be pure
// JSON, wrapped in a markdown code block, or embedded in surrounding prose;
// each form is tried in turn before giving up.
func ParseAIJSON(input string, target interface{}) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty input")
	}

	// Most responses are plain JSON
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := extractFromMarkdown(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := extractJSONFromText(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		// Trailing commas are the one malformation worth repairing
		if cleaned := stripTrailingCommas(extracted); cleaned != extracted {
			if err := json.Unmarshal([]byte(cleaned), target); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", truncateString(input, 100))
}

var (
	markdownJSONBlock = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	markdownAnyBlock  = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingCommas    = regexp.MustCompile(`,\s*([}\]])`)
)

// extractFromMarkdown pulls the body out of a fenced code block.
func extractFromMarkdown(input string) string {
	if matches := markdownJSONBlock.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	if matches := markdownAnyBlock.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content
		}
	}
	return ""
}

// extractJSONFromText finds the first balanced JSON object or array in text.
func extractJSONFromText(input string) string {
	if start := strings.Index(input, "{"); start >= 0 {
		if extracted := extractBalanced(input[start:], '{', '}'); extracted != "" {
			return extracted
		}
	}
	if start := strings.Index(input, "["); start >= 0 {
		if extracted := extractBalanced(input[start:], '[', ']'); extracted != "" {
			return extracted
		}
	}
	return ""
}

// extractBalanced returns the shortest prefix with balanced open/close runes,
// ignoring braces inside string literals.
func extractBalanced(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

func stripTrailingCommas(input string) string {
	return trailingCommas.ReplaceAllString(input, "$1")
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
