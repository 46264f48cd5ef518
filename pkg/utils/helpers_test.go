package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Data Scientist 80 100%", CleanText("  Data\n Scientist\t 80   100%  "))
	assert.Equal(t, "", CleanText("   \n\t  "))
	assert.Equal(t, "plain", CleanText("plain"))
}

func TestMakeJobID(t *testing.T) {
	id := MakeJobID("jobup", "https://www.jobup.ch/en/jobs/detail/1")

	// SHA-1 hex digest, stable across calls.
	assert.Len(t, id, 40)
	assert.Equal(t, id, MakeJobID("jobup", "https://www.jobup.ch/en/jobs/detail/1"))

	// Same URL under a different source is a different identity.
	assert.NotEqual(t, id, MakeJobID("datacareer", "https://www.jobup.ch/en/jobs/detail/1"))
	assert.NotEqual(t, id, MakeJobID("jobup", "https://www.jobup.ch/en/jobs/detail/2"))
}

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
