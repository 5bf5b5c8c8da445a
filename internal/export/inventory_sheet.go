package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"docdesk/internal/domain"
)

var inventoryColumns = []string{"SKU", "Name", "Description", "HSN/SAC", "Unit", "Unit Price", "Quantity", "Reorder Level", "Stock Status"}

// inventoryHeaders maps accepted header spellings to a field index in
// inventoryColumns.
var inventoryHeaders = map[string]int{
	"sku": 0, "code": 0, "item code": 0,
	"name": 1, "item": 1, "item name": 1,
	"description": 2,
	"hsn/sac": 3, "hsn": 3, "sac": 3, "hsn_sac": 3, "hsnsac": 3,
	"unit": 4, "uom": 4,
	"unit price": 5, "price": 5, "rate": 5,
	"quantity": 6, "qty": 6, "stock": 6,
	"reorder level": 7, "reorder": 7,
}

// WriteInventoryXLSX writes items as a single-sheet workbook that
// ReadInventorySheet accepts back.
func WriteInventoryXLSX(out io.Writer, items []domain.InventoryItem) error {
	f, err := newWorkbook(inventorySheet)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := writeHeaderRow(f, inventorySheet, 1, inventoryColumns); err != nil {
		return err
	}
	for i := range items {
		it := &items[i]
		values := []interface{}{it.SKU, it.Name, it.Description, it.HSNSAC, it.Unit, it.UnitPrice, it.Quantity, it.ReorderLevel, it.StockStatus()}
		if err := f.SetSheetRow(inventorySheet, cell(1, i+2), &values); err != nil {
			return err
		}
	}
	return f.Write(out)
}

// ReadInventorySheet reads stock rows from the first sheet of an .xlsx
// workbook. Columns are located by header name; blank rows are skipped.
func ReadInventorySheet(r io.Reader) ([]domain.InventoryItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	index := make(map[int]int)
	for col, h := range rows[0] {
		if field, ok := inventoryHeaders[strings.ToLower(strings.TrimSpace(h))]; ok {
			index[field] = col
		}
	}
	if _, ok := index[0]; !ok {
		return nil, fmt.Errorf("missing SKU column")
	}

	get := func(row []string, field int) string {
		col, ok := index[field]
		if !ok || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var items []domain.InventoryItem
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if get(row, 0) == "" && get(row, 1) == "" {
			continue
		}
		item := domain.InventoryItem{
			SKU:         get(row, 0),
			Name:        get(row, 1),
			Description: get(row, 2),
			HSNSAC:      get(row, 3),
			Unit:        get(row, 4),
		}
		for field, dst := range map[int]*float64{5: &item.UnitPrice, 6: &item.Quantity, 7: &item.ReorderLevel} {
			v, err := parseCellNumber(get(row, field))
			if err != nil {
				return nil, fmt.Errorf("row %d %s: %w", i+1, inventoryColumns[field], err)
			}
			*dst = v
		}
		items = append(items, item)
	}
	return items, nil
}

func parseCellNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "₹")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
