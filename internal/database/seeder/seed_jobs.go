package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

type JobSeeder struct{}

func (JobSeeder) Name() string { return "jobs" }

// Run adds the demo postings once; an employer that already has jobs is
// left alone.
func (JobSeeder) Run(ctx context.Context, db database.Querier) error {
	if err := RequireColumns(ctx, db, "jobs", "id", "employer_id", "title", "description", "salary", "time_slot", "latitude", "longitude", "status"); err != nil {
		return err
	}

	var employerID int64
	if err := db.QueryRow(ctx, `SELECT id FROM employers WHERE email = $1`, DemoEmployerEmail).Scan(&employerID); err != nil {
		return fmt.Errorf("demo employer: %w", err)
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE employer_id = $1`, employerID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []struct {
		Title       string
		Description string
		Salary      string
		TimeSlot    string
		Lat, Lng    float64
	}{
		{"Barista", "Prepare coffee and serve customers at our Sudirman outlet.", "Rp 25.000/hour", "Weekdays 07:00-11:00", -6.2088, 106.8456},
		{"Cashier", "Handle payments and keep the counter tidy.", "Rp 22.000/hour", "Weekends 12:00-18:00", -6.2250, 106.8000},
		{"Delivery Rider", "Deliver orders within 5 km of the store.", "Rp 20.000/hour + tips", "Evenings 17:00-21:00", -6.1751, 106.8650},
	}

	for _, it := range items {
		if _, err := db.Exec(
			ctx,
			`INSERT INTO jobs (employer_id, title, description, salary, job_type, time_slot, latitude, longitude, status)
			 VALUES ($1, $2, $3, $4, 'Part-time', $5, $6, $7, 'open')`,
			employerID, it.Title, it.Description, it.Salary, it.TimeSlot, it.Lat, it.Lng,
		); err != nil {
			return err
		}
	}
	return nil
}
