package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ExtractJSON cuts the JSON object out of a completion response by taking the
// substring between the first '{' and the last '}'. Providers routinely wrap
// the object in prose or code fences.
func ExtractJSON(response string) (string, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON found in response")
	}
	return response[start : end+1], nil
}

func decodeResponse[T any](response string) (*T, error) {
	raw, err := ExtractJSON(response)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("parsing AI response: %w", err)
	}
	return &out, nil
}
