package config

import (
	"upsell.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"sessionsweep": {Schedule: "@every 5m", Job: jobs.SessionSweep},
	"catalogflush": {Schedule: "0 * * * *", Job: jobs.CatalogFlush},
	// Add more jobs here
}
