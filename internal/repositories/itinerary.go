package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/shared"
)

// ItineraryRepository caches itineraries and their daily records locally.
type ItineraryRepository struct {
	db *sql.DB
}

// NewItineraryRepository creates a repository over the given database connection.
func NewItineraryRepository(db *sql.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// SaveSummary upserts a list-view record without touching daily rows.
func (r *ItineraryRepository) SaveSummary(it *models.Itinerary) error {
	_, err := r.db.Exec(upsertItineraryQuery, itineraryArgs(it)...)
	if err != nil {
		return fmt.Errorf("failed to cache itinerary: %w", err)
	}
	return nil
}

// SaveDetail upserts the itinerary and replaces its daily records in one
// transaction.
func (r *ItineraryRepository) SaveDetail(detail *models.ItineraryDetail) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(upsertItineraryQuery, itineraryArgs(&detail.Itinerary)...); err != nil {
		return fmt.Errorf("failed to cache itinerary: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM daily_itineraries WHERE itinerary_id = ?", detail.Itinerary.ID); err != nil {
		return fmt.Errorf("failed to clear daily records: %w", err)
	}

	for _, day := range detail.DailyItineraries {
		_, err := tx.Exec(`
			INSERT INTO daily_itineraries (id, itinerary_id, day_number, date, title, content, markdown_content)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, day.ID, detail.Itinerary.ID, day.DayNumber, day.Date, day.Title, day.Content, day.MarkdownContent)
		if err != nil {
			return fmt.Errorf("failed to cache daily record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit itinerary cache: %w", err)
	}
	return nil
}

// Get retrieves a cached itinerary with its daily records.
func (r *ItineraryRepository) Get(id int64) (*models.ItineraryDetail, error) {
	row := r.db.QueryRow(selectItineraryQuery+" WHERE id = ?", id)

	itinerary, err := scanItinerary(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT id, itinerary_id, day_number, date, title, content, markdown_content
		FROM daily_itineraries
		WHERE itinerary_id = ?
		ORDER BY day_number ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily records: %w", err)
	}
	defer rows.Close()

	detail := &models.ItineraryDetail{Itinerary: *itinerary}
	for rows.Next() {
		var day models.DailyItinerary
		var date, content, markdown sql.NullString
		if err := rows.Scan(&day.ID, &day.ItineraryID, &day.DayNumber, &date, &day.Title, &content, &markdown); err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		day.Date = date.String
		day.Content = content.String
		day.MarkdownContent = markdown.String
		detail.DailyItineraries = append(detail.DailyItineraries, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return detail, nil
}

// List retrieves cached itineraries, newest first, optionally filtered by status.
func (r *ItineraryRepository) List(status models.Status) ([]models.Itinerary, error) {
	query := selectItineraryQuery
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	var itineraries []models.Itinerary
	for rows.Next() {
		itinerary, err := scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, *itinerary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return itineraries, nil
}

// Delete removes a cached itinerary; daily rows cascade.
func (r *ItineraryRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM itineraries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete cached itinerary: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", shared.ErrItineraryNotFound, id)
	}
	return nil
}

const upsertItineraryQuery = `
	INSERT INTO itineraries (
		id, title, destination, days, status, progress, travel_style,
		budget_min, budget_max, group_size, start_date, ai_provider,
		overview_content, overview_markdown, center_latitude, center_longitude,
		created_at, updated_at, completed_at, cached_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (id) DO UPDATE SET
		title = excluded.title,
		destination = excluded.destination,
		days = excluded.days,
		status = excluded.status,
		progress = excluded.progress,
		travel_style = excluded.travel_style,
		budget_min = excluded.budget_min,
		budget_max = excluded.budget_max,
		group_size = excluded.group_size,
		start_date = excluded.start_date,
		ai_provider = excluded.ai_provider,
		overview_content = excluded.overview_content,
		overview_markdown = excluded.overview_markdown,
		center_latitude = excluded.center_latitude,
		center_longitude = excluded.center_longitude,
		created_at = excluded.created_at,
		updated_at = excluded.updated_at,
		completed_at = excluded.completed_at,
		cached_at = CURRENT_TIMESTAMP
`

const selectItineraryQuery = `
	SELECT id, title, destination, days, status, progress, travel_style,
		budget_min, budget_max, group_size, start_date, ai_provider,
		overview_content, overview_markdown, center_latitude, center_longitude,
		created_at, updated_at, completed_at
	FROM itineraries
`

func itineraryArgs(it *models.Itinerary) []any {
	return []any{
		it.ID, it.Title, it.Destination, it.Days, string(it.Status), it.Progress,
		it.TravelStyle, it.BudgetMin, it.BudgetMax, it.GroupSize, it.StartDate,
		it.AIProvider, it.OverviewContent, it.OverviewMarkdown,
		it.CenterLatitude, it.CenterLongitude,
		it.CreatedAt, it.UpdatedAt, it.CompletedAt,
	}
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItinerary(row scanner) (*models.Itinerary, error) {
	var (
		it                     models.Itinerary
		status                 string
		travelStyle, startDate sql.NullString
		aiProvider             sql.NullString
		overview, markdown     sql.NullString
		createdAt, updatedAt   sql.NullString
		completedAt            sql.NullString
		budgetMin, budgetMax   sql.NullFloat64
		centerLat, centerLng   sql.NullFloat64
	)

	err := row.Scan(
		&it.ID, &it.Title, &it.Destination, &it.Days, &status, &it.Progress,
		&travelStyle, &budgetMin, &budgetMax, &it.GroupSize, &startDate,
		&aiProvider, &overview, &markdown, &centerLat, &centerLng,
		&createdAt, &updatedAt, &completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrItineraryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan itinerary: %w", err)
	}

	it.Status = models.Status(status)
	it.TravelStyle = travelStyle.String
	it.StartDate = startDate.String
	it.AIProvider = aiProvider.String
	it.OverviewContent = overview.String
	it.OverviewMarkdown = markdown.String
	it.CreatedAt = createdAt.String
	it.UpdatedAt = updatedAt.String
	it.CompletedAt = completedAt.String
	if budgetMin.Valid {
		it.BudgetMin = &budgetMin.Float64
	}
	if budgetMax.Valid {
		it.BudgetMax = &budgetMax.Float64
	}
	if centerLat.Valid {
		it.CenterLatitude = &centerLat.Float64
	}
	if centerLng.Valid {
		it.CenterLongitude = &centerLng.Float64
	}

	return &it, nil
}
