package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs lists statically configured jobs. Domain jobs (the warehouse
// alert sweep) register themselves through the cron registry instead, so
// they can carry DB and topology handles.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
