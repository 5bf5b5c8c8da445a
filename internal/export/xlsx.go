package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docdesk/internal/domain"
)

// XLSXContentType is the MIME type of workbooks produced by this package.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	documentsSheet = "Documents"
	documentSheet  = "Document"
	inventorySheet = "Inventory"
)

func newWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func boldStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
}

func writeHeaderRow(f *excelize.File, sheet string, row int, header []string) error {
	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return err
	}
	style, err := boldStyle(f)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell(1, row), cell(len(header), row), style)
}

// WriteDocumentsXLSX writes docs as a single-sheet workbook with the same
// columns as the CSV export. Money columns are numeric cells.
func WriteDocumentsXLSX(out io.Writer, docs []domain.DocumentData) error {
	f, err := newWorkbook(documentsSheet)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := writeHeaderRow(f, documentsSheet, 1, columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range docs {
		d := &docs[i]
		var name, gstin, stateCode string
		if p := d.Counterparty(); p != nil {
			name, gstin, stateCode = p.Name, p.GSTIN, p.StateCode
		}
		row := []interface{}{
			string(d.DocumentType), d.DocumentNumber, d.Date, d.Status, d.ReferenceNumber,
			name, gstin, stateCode,
			d.Subtotal, d.Discount, d.TaxRate, d.CGST, d.SGST, d.IGST,
			d.RoundingOff, d.DeliveryCharges, d.GrandTotal,
			d.AmountInWords, len(d.Items), formatTime(d.CreatedAt),
		}
		if err := f.SetSheetRow(documentsSheet, cell(1, i+2), &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(documentsSheet, "A", "T", 18); err != nil {
		return err
	}
	return f.Write(out)
}

var itemColumns = []string{"S.No", "HSN/SAC", "Description", "Quantity", "Unit", "Unit Price", "Discount", "Amount"}

// WriteDocumentXLSX renders one document as a printable workbook: a header
// block, the item table and the totals.
func WriteDocumentXLSX(out io.Writer, doc *domain.DocumentData) error {
	f, err := newWorkbook(documentSheet)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	bold, err := boldStyle(f)
	if err != nil {
		return err
	}
	row := 1
	label := func(name string, value interface{}) error {
		if err := f.SetSheetRow(documentSheet, cell(1, row), &[]interface{}{name, value}); err != nil {
			return err
		}
		if err := f.SetCellStyle(documentSheet, cell(1, row), cell(1, row), bold); err != nil {
			return err
		}
		row++
		return nil
	}

	header := [][2]string{
		{"Document Type", string(doc.DocumentType)},
		{"Document Number", doc.DocumentNumber},
		{"Date", doc.Date},
		{"Status", doc.Status},
		{"Reference Number", doc.ReferenceNumber},
		{"Seller", doc.Company.Name},
		{"Seller GSTIN", doc.Company.GSTIN},
	}
	partyLabel := "Consignee"
	if doc.DocumentType.UsesSupplier() {
		partyLabel = "Supplier"
	}
	if p := doc.Counterparty(); p != nil {
		header = append(header,
			[2]string{partyLabel, p.Name},
			[2]string{partyLabel + " Address", p.Address},
			[2]string{partyLabel + " GSTIN", p.GSTIN},
			[2]string{partyLabel + " State", fmt.Sprintf("%s (%s)", p.State, p.StateCode)},
		)
	}
	if doc.Buyer != nil && doc.Consignee != nil && doc.Buyer.Name != doc.Consignee.Name {
		header = append(header, [2]string{"Buyer", doc.Buyer.Name})
	}
	for _, h := range header {
		if err := label(h[0], h[1]); err != nil {
			return err
		}
	}

	row++
	if err := writeHeaderRow(f, documentSheet, row, itemColumns); err != nil {
		return err
	}
	row++
	for i := range doc.Items {
		it := &doc.Items[i]
		values := []interface{}{i + 1, it.HSNSAC, it.Description, it.Quantity, it.Unit, it.UnitPrice, it.Discount, it.Amount}
		if err := f.SetSheetRow(documentSheet, cell(1, row), &values); err != nil {
			return err
		}
		row++
	}

	row++
	totals := []struct {
		name  string
		value float64
	}{
		{"Subtotal", doc.Subtotal},
		{"Discount", doc.Discount},
		{"CGST", doc.CGST},
		{"SGST", doc.SGST},
		{"IGST", doc.IGST},
		{"Round Off", doc.RoundingOff},
		{"Delivery Charges", doc.DeliveryCharges},
		{"Grand Total", doc.GrandTotal},
	}
	for _, t := range totals {
		if err := label(t.name, t.value); err != nil {
			return err
		}
	}
	if err := label("Amount In Words", doc.AmountInWords); err != nil {
		return err
	}
	if err := label("Tax In Words", doc.TaxAmountInWords); err != nil {
		return err
	}

	if err := f.SetColWidth(documentSheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(documentSheet, "B", "H", 16); err != nil {
		return err
	}
	return f.Write(out)
}
