package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures for userID:
// three habits with a few weeks of completions ending at now.
func SeedFixtures(database *sql.DB, userID string, now time.Time) error {
	created := now.AddDate(0, 0, -30)

	habits := []struct {
		id, name, icon string
		days           int    // consecutive days ending today
		at             string // completion time
	}{
		{"habit-meditate", "Meditate", "🧘", 21, "06:30"},
		{"habit-read", "Read", "📚", 9, "22:15"},
		{"habit-water", "Drink water", "💧", 4, "12:00"},
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	for _, h := range habits {
		if _, err := tx.Exec(
			"INSERT INTO habits (id, user_id, name, icon, created_at) VALUES (?, ?, ?, ?, ?)",
			h.id, userID, h.name, h.icon, created.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("seed habits: %w", err)
		}
		for i := 0; i < h.days; i++ {
			day := now.AddDate(0, 0, -i)
			date := day.Format("2006-01-02")
			if _, err := tx.Exec(
				"INSERT INTO habit_completions (id, habit_id, completed_date, completed_time, completed_at) VALUES (?, ?, ?, ?, ?)",
				fmt.Sprintf("%s-%s", h.id, date), h.id, date, h.at, day.Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("seed completions: %w", err)
			}
		}
	}

	return tx.Commit()
}
