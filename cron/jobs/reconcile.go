// Package jobs holds the scheduled jobs of the application. Importing it
// registers them with the cron registry.
package jobs

import (
	"context"
	"log"
	"sync"

	"gorm.io/gorm"

	"procure.GO/config"
	"procure.GO/cron"
	orderService "procure.GO/service/order"
)

// ReconcileJobName is the registry name of the order total reconciliation.
const ReconcileJobName = "reconcile"

var (
	dbMu  sync.Mutex
	jobDB *gorm.DB
)

func init() {
	cron.RegisterFunc(ReconcileJobName, func() string {
		return config.LoadAppConfig().ReconcileSchedule
	}, Reconcile)
}

// database returns the connection shared by every job run, opening it on
// first use. A failed open is retried on the next run.
func database() (*gorm.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()
	if jobDB != nil {
		return jobDB, nil
	}
	db, err := config.NewDB()
	if err != nil {
		return nil, err
	}
	jobDB = db
	return db, nil
}

// Reconcile recomputes every order total and logs the ones that drifted.
func Reconcile(ctx context.Context) error {
	db, err := database()
	if err != nil {
		return err
	}
	res, err := orderService.NewService(db).Reconcile(ctx)
	if err != nil {
		return err
	}
	for _, d := range res.Drifted {
		log.Printf("reconcile: %s total %s -> %s", d.PONumber, d.Stored.StringFixed(2), d.Actual.StringFixed(2))
	}
	log.Printf("reconcile: %d orders checked, %d corrected", res.Checked, len(res.Drifted))
	return nil
}
