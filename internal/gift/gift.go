package gift

import (
	"encoding/json"
	"errors"
)

var (
	ErrNoGenerator       = errors.New("no text generator configured")
	ErrEmptySuggestions  = errors.New("generator returned no suggestions")
	ErrMalformedResponse = errors.New("generator response is not a JSON suggestion list")
)

type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

type Suggestion struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Reason      string  `json:"reason,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Result is the outcome of one suggestion request. Source tells the caller whether the
// suggestions came from the generator or from the static tables; Err holds the cause of a
// fallback and is nil when Source is SourceGenerated.
type Result struct {
	Keyword     string       `json:"keyword"`
	Budget      float64      `json:"budget"`
	Suggestions []Suggestion `json:"suggestions"`
	Source      Source       `json:"source"`
	Err         error        `json:"-"`
	Message     string       `json:"message,omitempty"`
}

func (r Result) Fallback() bool {
	return r.Source == SourceFallback
}

func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	out := struct {
		alias
		Error string `json:"error,omitempty"`
	}{alias: alias(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}
