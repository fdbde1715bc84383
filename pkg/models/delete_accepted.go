package models

import (
	"encoding/json"

	"github.com/samvad-hq/kernel-memory-client/pkg/types"
)

// DeleteAccepted is the body the service returns once a delete has been queued.
type DeleteAccepted struct {
	Index      types.Optional[string]
	DocumentID types.Optional[string]
	Message    types.Optional[string]

	// AdditionalProperties holds every key not listed above.
	AdditionalProperties map[string]any
}

// ParseDeleteAccepted decodes a JSON object into a DeleteAccepted.
func ParseDeleteAccepted(data []byte) (*DeleteAccepted, error) {
	var m DeleteAccepted
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *DeleteAccepted) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out DeleteAccepted
	if out.Index, err = take[string](obj, "index"); err != nil {
		return err
	}
	if out.DocumentID, err = take[string](obj, "documentId"); err != nil {
		return err
	}
	if out.Message, err = take[string](obj, "message"); err != nil {
		return err
	}
	if out.AdditionalProperties, err = rest(obj); err != nil {
		return err
	}

	*m = out
	return nil
}

// ToMap returns the object form of m, omitting unset fields.
func (m DeleteAccepted) ToMap() map[string]any {
	out := withAdditional(m.AdditionalProperties)
	put(out, "index", m.Index)
	put(out, "documentId", m.DocumentID)
	put(out, "message", m.Message)
	return out
}

func (m DeleteAccepted) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}
