package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/sales-os/internal/entity"
)

func TestPgCodeHelpers(t *testing.T) {
	invalid := fmt.Errorf("query: %w", &pq.Error{Code: "22P02"})
	assert.True(t, isInvalidText(invalid))
	assert.False(t, isUniqueViolation(invalid))

	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isInvalidText(errors.New("outro erro")))
	assert.False(t, isInvalidText(nil))
}

type fakeRow struct {
	values []any
}

func (f fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.values[i].(string)
		case *[]byte:
			if f.values[i] != nil {
				*p = []byte(f.values[i].(string))
			}
		default:
			if s, ok := d.(interface{ Scan(any) error }); ok {
				if err := s.Scan(f.values[i]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func TestScanLeadMapsNullsAndTracking(t *testing.T) {
	created := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	row := fakeRow{values: []any{
		"42", "Maria", "5511987654321", nil, "Instagram", nil, nil,
		nil, nil, "Sem Dono", nil, "positivo", `{"source":"ig","campaign":"verao"}`,
		created, nil,
	}}

	l, err := scanLead(row)
	require.NoError(t, err)

	assert.Equal(t, entity.LeadID("42"), l.ID)
	assert.Equal(t, "Instagram", l.Origin)
	assert.Empty(t, l.City)
	assert.Equal(t, entity.Status(""), l.Status)
	assert.Equal(t, entity.OwnerUnassigned, l.OwnerName)
	require.NotNil(t, l.TrackingInfo)
	assert.Equal(t, "verao", l.TrackingInfo.Campaign)
	require.NotNil(t, l.CreatedAt)
	assert.Equal(t, created, *l.CreatedAt)
	assert.Nil(t, l.AssignmentTime)
}

func TestMarshalTracking(t *testing.T) {
	v, err := marshalTracking(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = marshalTracking(&entity.TrackingInfo{GCLID: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"gclid":"abc"}`, v.(string))
}
