package ai

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// parseJSONResponse parses the model's output into target. Models sometimes
// wrap JSON in a fenced code block, optionally with a leading language tag;
// both are stripped before parsing. A parse failure is never silently
// defaulted: the raw text is logged and ErrInvalidResponse returned.
func parseJSONResponse(raw string, target interface{}) error {
	text := stripCodeFence(raw)
	if err := json.Unmarshal([]byte(text), target); err != nil {
		log.Printf("[AI] failed to parse model JSON response: %s", raw)
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	parts := strings.Split(text, "```")
	if len(parts) < 2 {
		return text
	}
	text = strings.TrimSpace(parts[1])
	if strings.HasPrefix(strings.ToLower(text), "json") {
		text = strings.TrimSpace(text[4:])
	}
	return text
}
