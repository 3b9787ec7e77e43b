package boot

import (
	"context"
	"crs/src/db"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/services"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Vehicle{},
		&models.Booking{},
		&models.Payment{},
		&models.SecurityDepositAuthorization{},
		&models.AuditLog{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	// amount_paid stays correct even when payments are settled outside the
	// service (manual SQL, backfills).
	if err := db.Exec(`
	CREATE OR REPLACE FUNCTION refresh_booking_amount_paid() RETURNS trigger AS $$
	BEGIN
		UPDATE bookings SET amount_paid = (
			SELECT COALESCE(SUM(amount), 0) FROM payments
			WHERE booking_id = NEW.booking_id
			  AND payment_link_status = 'paid'
			  AND paid_at IS NOT NULL
			  AND payment_intent <> 'security_deposit'
			  AND deleted_at IS NULL
		) WHERE id = NEW.booking_id;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;
	`).Error; err != nil {
		log.Printf("Error creating FUNCTION refresh_booking_amount_paid: %s\n", err.Error())
	}
	if err := db.Exec(`
	DROP TRIGGER IF EXISTS payments_refresh_amount_paid ON payments;
	CREATE TRIGGER payments_refresh_amount_paid
	AFTER INSERT OR UPDATE OF payment_link_status ON payments
	FOR EACH ROW EXECUTE FUNCTION refresh_booking_amount_paid();
	`).Error; err != nil {
		log.Printf("Error creating TRIGGER payments_refresh_amount_paid: %s\n", err.Error())
	}

	return db
}

// InitScheduler registers the hourly sweep that marks overdue payment
// links and deposit authorizations as expired.
func InitScheduler(svc *services.PaymentService) {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			svc.ExpireStaleLinks(context.Background())
		}),
	)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	jobsWaitingInQueue := len(sched.Jobs())
	log.Println("Jobs in queue:", jobsWaitingInQueue)
	log.Printf("Job ID: %s %s\n", j.Name(), j.ID().String())
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
