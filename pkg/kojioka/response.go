package kojioka

import "encoding/json"

// Response is a response body exactly as received from the service.
type Response []byte

// Decode unmarshals the body as JSON into v.
func (r Response) Decode(v any) error {
	return json.Unmarshal(r, v)
}

// IsJSON reports whether the body is valid JSON.
func (r Response) IsJSON() bool {
	return json.Valid(r)
}

// String returns the body as text.
func (r Response) String() string {
	return string(r)
}

// MarshalJSON embeds JSON bodies verbatim and encodes anything else as a
// JSON string.
func (r Response) MarshalJSON() ([]byte, error) {
	if json.Valid(r) {
		return r, nil
	}
	return json.Marshal(string(r))
}
