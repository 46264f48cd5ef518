// Package schema holds the shared column contract every collector row is
// projected onto. Consumers persist rows exactly in this order; renaming or
// reordering columns is a breaking change for everything downstream.
package schema

import (
	"jobharvest/pkg/enrich"
	"jobharvest/pkg/models"
)

// Columns is the canonical, ordered field-name list.
var Columns = []string{
	"source",
	"url",
	"job_id",
	"search_term",
	"title",
	"company",
	"location_raw",
	"posted_date",
	"employment_type",
	"workload_raw",
	"salary_raw",
	"description_raw",

	// Enriched / common fields
	"scraped_at",
	"canton",
	"seniority",
	"description_clean",
	"skills",
	"skill_count",
	"salary_available",
}

// Row projects a merged record onto Columns. Fields the collectors do not
// produce are filled by enrichment or left empty; the result always has
// exactly len(Columns) cells.
func Row(rec models.JobRecord, scrapedAt string) []string {
	descClean := enrich.CleanDescription(rec.DescriptionRaw)
	skills, skillCount := enrich.Skills(descClean)

	salaryAvailable := "0"
	if rec.SalaryRaw != "" {
		salaryAvailable = "1"
	}

	return []string{
		rec.Source,
		rec.URL,
		rec.JobID,
		rec.SearchTerm,
		rec.Title,
		rec.Company,
		rec.LocationRaw,
		rec.PostedDate,
		rec.EmploymentType,
		rec.WorkloadRaw,
		rec.SalaryRaw,
		rec.DescriptionRaw,

		scrapedAt,
		enrich.Canton(rec.LocationRaw),
		enrich.Seniority(rec.Title),
		descClean,
		skills,
		skillCount,
		salaryAvailable,
	}
}
