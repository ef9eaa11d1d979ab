package gift

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type rawSuggestion struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Reason      string          `json:"reason"`
	ImageURL    string          `json:"image_url"`
}

// ParseSuggestions decodes a generator response, tolerating a Markdown code fence around
// the JSON array and string-typed prices.
func ParseSuggestions(text string) ([]Suggestion, error) {
	body := StripCodeFence(text)

	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptySuggestions
	}

	out := make([]Suggestion, 0, len(raw))
	for i, r := range raw {
		price, err := decodePrice(r.Price)
		if err != nil {
			return nil, fmt.Errorf("suggestion %d: %w", i, err)
		}
		out = append(out, Suggestion{
			Name:        r.Name,
			Description: r.Description,
			Price:       price,
			Reason:      r.Reason,
			ImageURL:    r.ImageURL,
		})
	}
	return out, nil
}

func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// drop the info string, e.g. ```json
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func decodePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: price: %v", ErrMalformedResponse, err)
		}
		return NormalizePrice(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("%w: price: %v", ErrMalformedResponse, err)
	}
	return f, nil
}

// NormalizePrice turns strings like "$25.00" or "€1,299" into a number.
func NormalizePrice(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), r == ',':
			return -1
		case unicode.Is(unicode.Sc, r):
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty price %q", ErrMalformedResponse, s)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q", ErrMalformedResponse, s)
	}
	return f, nil
}
