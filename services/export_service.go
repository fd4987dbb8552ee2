package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

// ExportService handles Excel export functionality
type ExportService struct {
	trips   *TripService
	budgets *BudgetService
}

// NewExportService creates a new export service
func NewExportService(trips *TripService, budgets *BudgetService) *ExportService {
	return &ExportService{trips: trips, budgets: budgets}
}

// ExportBudgetToExcel generates an Excel workbook with a trip's budget
// lines and their per-category summary.
func (s *ExportService) ExportBudgetToExcel(tripID, userID string) (*excelize.File, string, error) {
	trip, err := s.trips.GetTrip(tripID, userID)
	if err != nil {
		return nil, "", err
	}

	items, err := s.budgets.ListItems(tripID, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	if err := s.createItemsSheet(f, items); err != nil {
		return nil, "", fmt.Errorf("failed to create budget items sheet: %v", err)
	}
	if err := s.createSummarySheet(f, trip, BuildSummary(items)); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}

	// Delete the default sheet if it exists
	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Budget_%s.xlsx",
		utils.CleanFileName(trip.Title),
		time.Now().Format("2006-01-02"))

	return f, filename, nil
}

// createItemsSheet creates Sheet 1: Budget Items
func (s *ExportService) createItemsSheet(f *excelize.File, items []*models.BudgetItem) error {
	sheetName := "Budget Items"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headers := []string{"Category", "Title", "Quantity", "Unit Price", "Amount", "Currency", "Source"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, item := range items {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), item.Quantity)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), item.UnitPrice)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), float64(item.Quantity)*item.UnitPrice)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), item.Currency)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), item.Source)
	}

	f.SetColWidth(sheetName, "A", "G", 15)

	return nil
}

// createSummarySheet creates Sheet 2: Summary
func (s *ExportService) createSummarySheet(f *excelize.File, trip *models.Trip, summary *models.BudgetSummary) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)

	f.SetCellValue(sheetName, "A1", "Trip")
	f.SetCellValue(sheetName, "B1", trip.Title)
	f.SetCellValue(sheetName, "A2", "Dates")
	f.SetCellValue(sheetName, "B2", fmt.Sprintf("%s to %s", trip.StartDate, trip.EndDate))
	f.SetCellValue(sheetName, "A3", "Total")
	f.SetCellValue(sheetName, "B3", summary.TotalAmount)
	f.SetCellValue(sheetName, "A4", "Currency")
	f.SetCellValue(sheetName, "B4", summary.Currency)

	headers := []string{"Category", "Amount", "Items"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s6", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A6", "C6", headerStyle)

	// Sort categories by name for consistent output
	categories := make([]string, 0, len(summary.Categories))
	for category := range summary.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for i, category := range categories {
		row := i + 7
		cat := summary.Categories[category]
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), category)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), cat.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), cat.Items)
	}

	f.SetColWidth(sheetName, "A", "C", 18)

	return nil
}
