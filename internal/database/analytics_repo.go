package database

import (
	"context"
	"fmt"

	"github.com/shubh-37/social-content-engine/internal/models"
)

type AnalyticsRepository struct {
	db *DB
}

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Record appends an engagement observation
func (r *AnalyticsRepository) Record(ctx context.Context, entry *models.AnalyticsEntry) error {
	query := `
		INSERT INTO analytics (platform, date, engagement)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query, entry.Platform, entry.Date, entry.Engagement).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to record analytics: %w", err)
	}

	return nil
}

// PlatformSummary totals post engagement per platform
func (r *AnalyticsRepository) PlatformSummary(ctx context.Context) ([]models.PlatformSummary, error) {
	query := `
		SELECT platform,
		       COALESCE(SUM(engagement), 0) AS total_engagement,
		       COUNT(*) AS post_count
		FROM posts
		GROUP BY platform
		ORDER BY platform
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics: %w", err)
	}
	defer rows.Close()

	summaries := []models.PlatformSummary{}
	for rows.Next() {
		var summary models.PlatformSummary
		if err := rows.Scan(&summary.Platform, &summary.TotalEngagement, &summary.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan analytics: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analytics: %w", err)
	}

	return summaries, nil
}
