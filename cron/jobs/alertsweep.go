package jobs

import (
	"context"
	"log"

	"gorm.io/gorm"

	"stocknet.GO/config"
	"stocknet.GO/cron"
	inventoryService "stocknet.GO/service/inventory"
)

// RegisterAlertSweep registers the periodic warehouse alert sweep. Called
// from server startup once the DB handle exists; the schedule comes from
// ALERT_SWEEP_SCHEDULE (default hourly).
func RegisterAlertSweep(db *gorm.DB, net *config.Network) {
	schedule := config.GetEnv("ALERT_SWEEP_SCHEDULE", "@hourly")
	svc := inventoryService.NewService(db, net)
	cron.Register("alertsweep", schedule, func(...string) {
		if _, err := svc.SweepAlerts(context.Background()); err != nil {
			log.Printf("[Alert Sweep] failed: %v", err)
		}
	})
}
