package entity

import (
	"encoding/json"
	"errors"
)

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
	// ChangeResync é sintetizado depois de uma reconexão do feed:
	// eventos podem ter sido perdidos e o consumidor precisa recarregar.
	ChangeResync ChangeType = "RESYNC"
)

type ChangeEvent struct {
	Table     string          `json:"table"`
	Type      ChangeType      `json:"type"`
	Record    json.RawMessage `json:"record,omitempty"`
	OldRecord json.RawMessage `json:"old_record,omitempty"`
}

func (e ChangeEvent) Decode(v any) error {
	if len(e.Record) == 0 {
		return errors.New("evento sem record")
	}
	return json.Unmarshal(e.Record, v)
}
