package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobharvest/pkg/models"
)

func TestSessionShouldProcessMarksSeen(t *testing.T) {
	s := NewSession(10)

	assert.True(t, s.ShouldProcess("https://www.jobup.ch/en/jobs/detail/1"))
	assert.False(t, s.ShouldProcess("https://www.jobup.ch/en/jobs/detail/1"))
	assert.True(t, s.ShouldProcess("https://www.jobup.ch/en/jobs/detail/2"))
}

func TestSessionBudget(t *testing.T) {
	s := NewSession(2)

	assert.True(t, s.HasBudget())
	s.Record(models.JobRecord{JobID: "a"})
	assert.True(t, s.HasBudget())
	s.Record(models.JobRecord{JobID: "b"})
	assert.False(t, s.HasBudget())

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "a", s.Rows()[0].JobID)
	assert.Equal(t, "b", s.Rows()[1].JobID)
}
