package dto

import "github.com/aarondl/null/v8"

// OptionalInt distinguishes the three states an optional JSON number can be
// in: absent from the payload, present as null, or present with a value.
// UnmarshalJSON only runs for present keys, so Present is the presence flag
// and Value.Valid separates null from a concrete number.
type OptionalInt struct {
	Present bool
	Value   null.Int64
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Present = true
	return o.Value.UnmarshalJSON(data)
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	return o.Value.MarshalJSON()
}
