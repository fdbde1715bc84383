package models

import (
	"encoding/json"

	"github.com/samvad-hq/kernel-memory-client/pkg/types"
)

// ProblemDetails is an RFC 7807 error body.
type ProblemDetails struct {
	Type     types.Optional[string]
	Title    types.Optional[string]
	Status   types.Optional[int]
	Detail   types.Optional[string]
	Instance types.Optional[string]

	AdditionalProperties map[string]any
}

// ParseProblemDetails decodes a JSON object into a ProblemDetails.
func ParseProblemDetails(data []byte) (*ProblemDetails, error) {
	var m ProblemDetails
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *ProblemDetails) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out ProblemDetails
	if out.Type, err = take[string](obj, "type"); err != nil {
		return err
	}
	if out.Title, err = take[string](obj, "title"); err != nil {
		return err
	}
	if out.Status, err = take[int](obj, "status"); err != nil {
		return err
	}
	if out.Detail, err = take[string](obj, "detail"); err != nil {
		return err
	}
	if out.Instance, err = take[string](obj, "instance"); err != nil {
		return err
	}
	if out.AdditionalProperties, err = rest(obj); err != nil {
		return err
	}

	*m = out
	return nil
}

// ToMap returns the object form of m, omitting unset fields.
func (m ProblemDetails) ToMap() map[string]any {
	out := withAdditional(m.AdditionalProperties)
	put(out, "type", m.Type)
	put(out, "title", m.Title)
	put(out, "status", m.Status)
	put(out, "detail", m.Detail)
	put(out, "instance", m.Instance)
	return out
}

func (m ProblemDetails) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}
