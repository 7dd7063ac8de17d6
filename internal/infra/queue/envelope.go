package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const producerName = "sales-os-api"

type Meta struct {
	ID            string    `json:"id"`
	CorrelationID *string   `json:"correlation_id,omitempty"`
	Producer      string    `json:"producer"`
	Time          time.Time `json:"time"`
	// Nome e versão do evento, ex: lead.sale.v1
	Type string `json:"type"`
}

type Envelope struct {
	Meta Meta            `json:"meta"`
	Data json.RawMessage `json:"data"`
}

func NewEnvelope(eventType string, data any, correlationID string, now time.Time) ([]byte, Meta, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, Meta{}, err
	}

	meta := Meta{
		ID:       uuid.NewString(),
		Producer: producerName,
		Time:     now.UTC(),
		Type:     eventType,
	}
	if correlationID != "" {
		meta.CorrelationID = &correlationID
	}

	body, err := json.Marshal(Envelope{Meta: meta, Data: raw})
	return body, meta, err
}
