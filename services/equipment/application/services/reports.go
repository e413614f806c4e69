package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ghuser/equipstore/services/equipment/domain/models"
)

const (
	ordersHeader = "Order list:"
	dataHeader   = "All data:"

	// WorkbookContentType is the media type of WriteDataWorkbook output.
	WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	workbookSheet = "Equipment"
)

// OrderLine is one row of the order report.
type OrderLine struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	OrderQuantity int    `json:"order_quantity"`
}

// OrderLines returns the order quantity of every record, ascending by id.
// Records that need no reorder are listed with quantity 0.
func (r *Registry) OrderLines(ctx context.Context) []OrderLine {
	_, span := r.tracer.Start(ctx, "Registry.OrderLines")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.repo.List()
	lines := make([]OrderLine, len(list))
	for i, e := range list {
		lines[i] = OrderLine{ID: e.ID(), Name: e.Name().String(), OrderQuantity: e.OrderQuantity()}
	}
	return lines
}

// Orders renders the order report: a header line followed by one
// "id, name: orderQuantity" line per record.
func (r *Registry) Orders(ctx context.Context) string {
	return FormatOrders(r.OrderLines(ctx))
}

// Data renders the data report: a header line followed by every record in
// its String form.
func (r *Registry) Data(ctx context.Context) string {
	return FormatData(r.Snapshot(ctx))
}

// FormatOrders renders lines in the order report format.
func FormatOrders(lines []OrderLine) string {
	var sb strings.Builder
	sb.WriteString(ordersHeader)
	sb.WriteByte('\n')
	for _, l := range lines {
		fmt.Fprintf(&sb, "%d, %s: %d\n", l.ID, l.Name, l.OrderQuantity)
	}
	return sb.String()
}

// FormatData renders records in the data report format.
func FormatData(list []*models.Equipment) string {
	var sb strings.Builder
	sb.WriteString(dataHeader)
	sb.WriteByte('\n')
	for _, e := range list {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteDataWorkbook writes list as a single-sheet .xlsx workbook with a bold
// header row and one row per record.
func WriteDataWorkbook(w io.Writer, list []*models.Equipment) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", workbookSheet); err != nil {
		return fmt.Errorf("workbook: rename sheet: %w", err)
	}

	headers := []any{"Id", "Name", "Supplier", "Amount", "Lower bound", "Order quantity"}
	if err := f.SetSheetRow(workbookSheet, "A1", &headers); err != nil {
		return fmt.Errorf("workbook: header row: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("workbook: header style: %w", err)
	}
	if err := f.SetCellStyle(workbookSheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("workbook: apply header style: %w", err)
	}

	for i, e := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("workbook: row %d: %w", i+2, err)
		}
		row := []any{e.ID(), e.Name().String(), e.Supplier(), e.Amount(), e.LowerBound(), e.OrderQuantity()}
		if err := f.SetSheetRow(workbookSheet, cell, &row); err != nil {
			return fmt.Errorf("workbook: row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(workbookSheet, "B", "C", 30); err != nil {
		return fmt.Errorf("workbook: column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("workbook: write: %w", err)
	}
	return nil
}
