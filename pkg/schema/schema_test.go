package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobharvest/pkg/models"
)

func TestColumnsShape(t *testing.T) {
	require.Len(t, Columns, 19)
	assert.Equal(t, "source", Columns[0])
	assert.Equal(t, "scraped_at", Columns[12])
	assert.Equal(t, "salary_available", Columns[18])
}

func TestRowProjection(t *testing.T) {
	rec := models.JobRecord{
		Source:         "jobup",
		URL:            "https://www.jobup.ch/en/jobs/detail/1",
		JobID:          "abc123",
		SearchTerm:     "data scientist",
		Title:          "Senior Data Scientist",
		Company:        "Acme AG",
		LocationRaw:    "Zürich",
		PostedDate:     "Published: 12 March 2024",
		EmploymentType: "Unlimited",
		WorkloadRaw:    "80 – 100%",
		SalaryRaw:      "CHF 120'000",
		DescriptionRaw: "We use Python and SQL daily.",
	}

	row := Row(rec, "2024-03-12T08:30:00")
	require.Len(t, row, len(Columns))

	assert.Equal(t, "jobup", row[0])
	assert.Equal(t, "https://www.jobup.ch/en/jobs/detail/1", row[1])
	assert.Equal(t, "abc123", row[2])
	assert.Equal(t, "data scientist", row[3])
	assert.Equal(t, "2024-03-12T08:30:00", row[12])
	assert.Equal(t, "ZH", row[13])
	assert.Equal(t, "senior", row[14])
	assert.Equal(t, "We use Python and SQL daily.", row[15])
	assert.Equal(t, "Python; SQL", row[16])
	assert.Equal(t, "2", row[17])
	assert.Equal(t, "1", row[18])
}

func TestRowSalaryUnavailable(t *testing.T) {
	row := Row(models.JobRecord{Source: "jobup"}, "2024-03-12T08:30:00")
	require.Len(t, row, len(Columns))
	assert.Equal(t, "0", row[18])
	assert.Equal(t, "", row[16])
	assert.Equal(t, "0", row[17])
}
