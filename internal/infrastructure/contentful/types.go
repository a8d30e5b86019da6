package contentful

import "encoding/json"

// EntriesResponse is the Content Delivery API response for an entries query
type EntriesResponse struct {
	Sys   ArraySys `json:"sys"`
	Total int      `json:"total"`
	Skip  int      `json:"skip"`
	Limit int      `json:"limit"`
	Items []Entry  `json:"items"`
}

// ArraySys describes the response envelope
type ArraySys struct {
	Type string `json:"type"`
}

// Entry is a single Contentful entry
type Entry struct {
	Sys    EntrySys       `json:"sys"`
	Fields map[string]any `json:"fields"`
}

// EntrySys carries entry metadata. RawSys keeps the original payload so the
// stored raw data reflects exactly what the platform sent.
type EntrySys struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	RawSys json.RawMessage `json:"-"`
}

// UnmarshalJSON captures both the typed fields and the raw sys payload
func (s *EntrySys) UnmarshalJSON(data []byte) error {
	type alias EntrySys
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*s = EntrySys(decoded)
	s.RawSys = append([]byte(nil), data...)
	return nil
}

// APIError is the Contentful error response body
type APIError struct {
	Sys     ArraySys `json:"sys"`
	Message string   `json:"message"`
}
