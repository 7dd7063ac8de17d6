package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		status Status
		stage  Stage
		ok     bool
	}{
		{"", StageNew, true},
		{StatusNew, StageNew, true},
		{StatusInNegotiation, StageInNegotiation, true},
		{StatusClosed, StageClosed, true},
		{StatusLost, "", false},
		{"archived", "", false},
	}
	for _, c := range cases {
		stage, ok := Classify(Lead{Status: c.status})
		assert.Equal(t, c.ok, ok, "status %q", c.status)
		assert.Equal(t, c.stage, stage, "status %q", c.status)
	}
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("closed")
	assert.NoError(t, err)
	assert.Equal(t, StageClosed, s)
	assert.Equal(t, "Fechados", s.Title())

	_, err = ParseStage("lost")
	assert.ErrorIs(t, err, ErrInvalidStage)
}
