package services

import (
	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// BudgetService manages a trip's budget lines and computes the
// per-category summary. All items of a trip must share one currency;
// mixed-currency budgets are rejected rather than silently summed.
type BudgetService struct {
	trips   TripStore
	budgets BudgetStore
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(trips TripStore, budgets BudgetStore) *BudgetService {
	return &BudgetService{trips: trips, budgets: budgets}
}

// AddItem validates and inserts a budget line for a trip.
func (s *BudgetService) AddItem(tripID string, req *models.AddBudgetItemRequest, userID string) (*models.BudgetItem, error) {
	if err := utils.ValidateOneOf(req.Category, "Category", utils.BudgetCategories); err != nil {
		return nil, err
	}
	if err := utils.ValidateOneOf(req.Source, "Source",
		[]string{utils.SourceAI, utils.SourceUser, utils.SourceIntegration}); err != nil {
		return nil, err
	}
	if req.Quantity == nil || *req.Quantity < 1 {
		return nil, utils.NewValidationError("Quantity must be at least 1")
	}
	if req.UnitPrice == nil || *req.UnitPrice < 0 {
		return nil, utils.NewValidationError("Unit price cannot be negative")
	}
	if err := utils.ValidateCurrency(req.Currency); err != nil {
		return nil, err
	}

	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NewNotFoundError("Trip")
	}
	if err := authorizeTripAccess(trip, userID); err != nil {
		return nil, err
	}

	existing, err := s.budgets.FindByTripID(tripID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 && existing[0].Currency != req.Currency {
		return nil, utils.NewValidationError("Currency must match the trip's existing budget items")
	}

	item := &models.BudgetItem{
		TripID:                tripID,
		Category:              req.Category,
		Title:                 req.Title,
		Quantity:              *req.Quantity,
		UnitPrice:             *req.UnitPrice,
		Currency:              req.Currency,
		Source:                req.Source,
		LinkedItineraryItemID: req.LinkedItineraryItemID,
	}
	if err := s.budgets.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem patches a budget line and returns the persisted row.
func (s *BudgetService) UpdateItem(itemID string, patch models.BudgetItemPatch) (*models.BudgetItem, error) {
	if patch.Empty() {
		return nil, utils.NewValidationError("At least one field must be provided for update")
	}

	item, err := s.budgets.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, utils.NewNotFoundError("Budget item")
	}

	upd, err := buildBudgetItemUpdate(patch)
	if err != nil {
		return nil, err
	}

	if upd.Currency != nil && *upd.Currency != item.Currency {
		siblings, err := s.budgets.FindByTripID(item.TripID)
		if err != nil {
			return nil, err
		}
		for _, sib := range siblings {
			if sib.ID != item.ID && sib.Currency != *upd.Currency {
				return nil, utils.NewValidationError("Currency must match the trip's existing budget items")
			}
		}
	}

	if err := s.budgets.Update(itemID, upd); err != nil {
		return nil, err
	}
	return s.budgets.FindByID(itemID)
}

// ListItems returns a trip's budget lines after an access check.
func (s *BudgetService) ListItems(tripID, userID string) ([]*models.BudgetItem, error) {
	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NewNotFoundError("Trip")
	}
	if err := authorizeTripAccess(trip, userID); err != nil {
		return nil, err
	}
	return s.budgets.FindByTripID(tripID)
}

// GetSummary aggregates a trip's budget lines by category.
func (s *BudgetService) GetSummary(tripID, userID string) (*models.BudgetSummary, error) {
	items, err := s.ListItems(tripID, userID)
	if err != nil {
		return nil, err
	}
	return BuildSummary(items), nil
}

// BuildSummary folds budget lines into totals. Line amounts are
// quantity times unit price; the summary currency is taken from the
// first item, or the default when the budget is empty.
func BuildSummary(items []*models.BudgetItem) *models.BudgetSummary {
	summary := &models.BudgetSummary{
		Currency:   utils.DefaultCurrency,
		Categories: map[string]models.BudgetCategorySummary{},
	}
	if len(items) > 0 {
		summary.Currency = items[0].Currency
	}
	for _, item := range items {
		amount := float64(item.Quantity) * item.UnitPrice
		summary.TotalAmount += amount
		cat := summary.Categories[item.Category]
		cat.Amount += amount
		cat.Items++
		summary.Categories[item.Category] = cat
	}
	return summary
}

func buildBudgetItemUpdate(patch models.BudgetItemPatch) (models.BudgetItemUpdate, error) {
	var upd models.BudgetItemUpdate

	if patch.Category.Set {
		if !patch.Category.Valid {
			return upd, utils.NewValidationError("Category cannot be null")
		}
		if err := utils.ValidateOneOf(patch.Category.Value, "Category", utils.BudgetCategories); err != nil {
			return upd, err
		}
		upd.Category = patch.Category.Ptr()
	}
	if patch.Title.Set {
		if !patch.Title.Valid || patch.Title.Value == "" {
			return upd, utils.NewValidationError("Title cannot be empty")
		}
		upd.Title = patch.Title.Ptr()
	}
	if patch.Quantity.Set {
		if !patch.Quantity.Valid || patch.Quantity.Value < 1 {
			return upd, utils.NewValidationError("Quantity must be at least 1")
		}
		upd.Quantity = patch.Quantity.Ptr()
	}
	if patch.UnitPrice.Set {
		if !patch.UnitPrice.Valid || patch.UnitPrice.Value < 0 {
			return upd, utils.NewValidationError("Unit price cannot be negative")
		}
		upd.UnitPrice = patch.UnitPrice.Ptr()
	}
	if patch.Currency.Set {
		if !patch.Currency.Valid {
			return upd, utils.NewValidationError("Currency cannot be null")
		}
		if err := utils.ValidateCurrency(patch.Currency.Value); err != nil {
			return upd, err
		}
		upd.Currency = patch.Currency.Ptr()
	}
	if patch.Source.Set {
		if !patch.Source.Valid {
			return upd, utils.NewValidationError("Source cannot be null")
		}
		if err := utils.ValidateOneOf(patch.Source.Value, "Source",
			[]string{utils.SourceAI, utils.SourceUser, utils.SourceIntegration}); err != nil {
			return upd, err
		}
		upd.Source = patch.Source.Ptr()
	}
	if patch.LinkedItineraryItemID.Set {
		if patch.LinkedItineraryItemID.Valid {
			upd.LinkedItineraryItemID = patch.LinkedItineraryItemID.Ptr()
		} else {
			upd.ClearLinkedItineraryItemID = true
		}
	}

	return upd, nil
}
