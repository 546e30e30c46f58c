package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"wealthfolio/internal/models"
)

// planSheetRe routes goal/plan sheets away from asset classification.
var planSheetRe = regexp.MustCompile(`(?i)plan|future|goal|target`)

var (
	quarterAliases = []string{"Quarter", "Period"}
	goalAliases    = []string{"Goal", "Target", "Plan"}
)

// Ingest walks every sheet of the workbook, routing plan sheets into the
// plan list and classifying all other rows into assets. Assets whose total
// value is exactly 0 are dropped. The input is not mutated.
func Ingest(wb *Workbook) ([]models.Asset, []models.FinancialPlan) {
	batchToken := uuid.NewString()[:8]

	var assets []models.Asset
	var plans []models.FinancialPlan

	for _, sheet := range wb.Sheets {
		if planSheetRe.MatchString(sheet.Name) {
			for _, row := range sheet.Rows {
				plans = append(plans, planFromRow(row, len(plans)))
			}
			continue
		}

		for i, row := range sheet.Rows {
			assets = append(assets, ClassifyRow(row, sheet.Name, i, batchToken))
		}
	}

	// Zero-value rows carry no information and would pollute every
	// aggregate; they never reach the persisted batch.
	kept := assets[:0]
	for _, a := range assets {
		if a.TotalValue != 0 {
			kept = append(kept, a)
		}
	}

	return kept, plans
}

func planFromRow(row Row, index int) models.FinancialPlan {
	quarter, ok := row.first(quarterAliases...)
	if !ok {
		quarter = "Q1"
	}
	goal, _ := row.first(goalAliases...)

	status := models.PlanPending
	if v, ok := row.first("Status"); ok {
		status = models.PlanStatus(strings.TrimSpace(v))
	}

	notes, _ := row.first("Notes")

	return models.FinancialPlan{
		ID:      fmt.Sprintf("plan-%d", index),
		Quarter: quarter,
		Goal:    goal,
		Status:  status,
		Notes:   notes,
	}
}
