package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tripplanhq/tripplan-backend/models"
)

const budgetColumns = `id, trip_id, category, title, quantity, unit_price, currency,
	source, linked_itinerary_item_id, created_at, updated_at`

// BudgetRepository handles database operations for budget items
type BudgetRepository struct {
	db *sqlx.DB
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(db *sqlx.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create inserts a budget item, assigning its id and timestamps.
func (r *BudgetRepository) Create(item *models.BudgetItem) error {
	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO budget_items (`+budgetColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, item.TripID, item.Category, item.Title, item.Quantity,
		item.UnitPrice, item.Currency, item.Source, item.LinkedItineraryItemID,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget item: %w", err)
	}
	return nil
}

// FindByID returns the budget item or nil when absent.
func (r *BudgetRepository) FindByID(id string) (*models.BudgetItem, error) {
	var item models.BudgetItem
	err := r.db.Get(&item, `SELECT `+budgetColumns+` FROM budget_items WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget item: %w", err)
	}
	return &item, nil
}

// FindByTripID returns a trip's budget items grouped by category.
func (r *BudgetRepository) FindByTripID(tripID string) ([]*models.BudgetItem, error) {
	items := []*models.BudgetItem{}
	err := r.db.Select(&items,
		`SELECT `+budgetColumns+` FROM budget_items
		 WHERE trip_id = $1 ORDER BY category ASC, title ASC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget items: %w", err)
	}
	return items, nil
}

// Update applies a partial update to a budget item.
func (r *BudgetRepository) Update(id string, upd models.BudgetItemUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Quantity != nil {
		add("quantity", *upd.Quantity)
	}
	if upd.UnitPrice != nil {
		add("unit_price", *upd.UnitPrice)
	}
	if upd.Currency != nil {
		add("currency", *upd.Currency)
	}
	if upd.Source != nil {
		add("source", *upd.Source)
	}
	if upd.ClearLinkedItineraryItemID {
		set = append(set, "linked_itinerary_item_id = NULL")
	} else if upd.LinkedItineraryItemID != nil {
		add("linked_itinerary_item_id", *upd.LinkedItineraryItemID)
	}
	if len(set) == 0 {
		return nil
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE budget_items SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args))
	if _, err := r.db.Exec(query, args...); err != nil {
		return err
	}
	return nil
}
