package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestTypeValid(t *testing.T) {
	assert.True(t, RequestTypeChange.Valid())
	assert.True(t, RequestTypeSupport.Valid())
	assert.True(t, RequestTypeTraining.Valid())
	assert.False(t, RequestType("escalation").Valid())
	assert.False(t, RequestType("").Valid())
	assert.False(t, RequestType("Change").Valid())
}

func TestIntakeFormOptions(t *testing.T) {
	opts := IntakeFormOptions()

	assert.Len(t, opts.SoftwarePlatforms, 17)
	assert.Len(t, opts.ImpactedAreas, 10)
	assert.Len(t, opts.Channels, 7)

	for _, list := range [][]string{opts.SoftwarePlatforms, opts.ImpactedAreas, opts.Channels} {
		seen := make(map[string]bool, len(list))
		for _, v := range list {
			assert.NotEmpty(t, v)
			assert.False(t, seen[v], "duplicate option %q", v)
			seen[v] = true
		}
	}
}
