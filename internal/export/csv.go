// Package export renders canonical documents and inventory as CSV and XLSX.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"docdesk/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the document list header row.
var columns = []string{
	"Document Type",
	"Document Number",
	"Date",
	"Status",
	"Reference Number",
	"Counterparty",
	"Counterparty GSTIN",
	"Counterparty State Code",
	"Subtotal",
	"Discount",
	"Tax Rate",
	"CGST",
	"SGST",
	"IGST",
	"Round Off",
	"Delivery Charges",
	"Grand Total",
	"Amount In Words",
	"Line Item Count",
	"Created At",
}

// Columns returns a copy of the document list header row.
func Columns() []string {
	return append([]string(nil), columns...)
}

// Writer wraps csv.Writer for exporting document lists.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.DocumentData) error {
	for i := range docs {
		if err := w.csv.Write(documentToRow(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes BOM, header and docs to out in one go.
func WriteCSV(out io.Writer, docs []domain.DocumentData) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteDocuments(docs); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func documentToRow(doc *domain.DocumentData) []string {
	row := make([]string, len(columns))
	row[0] = string(doc.DocumentType)
	row[1] = doc.DocumentNumber
	row[2] = doc.Date
	row[3] = doc.Status
	row[4] = doc.ReferenceNumber
	if p := doc.Counterparty(); p != nil {
		row[5] = p.Name
		row[6] = p.GSTIN
		row[7] = p.StateCode
	}
	row[8] = formatMoney(doc.Subtotal)
	row[9] = formatMoney(doc.Discount)
	row[10] = formatMoney(doc.TaxRate)
	row[11] = formatMoney(doc.CGST)
	row[12] = formatMoney(doc.SGST)
	row[13] = formatMoney(doc.IGST)
	row[14] = formatMoney(doc.RoundingOff)
	row[15] = formatMoney(doc.DeliveryCharges)
	row[16] = formatMoney(doc.GrandTotal)
	row[17] = doc.AmountInWords
	row[18] = strconv.Itoa(len(doc.Items))
	row[19] = formatTime(doc.CreatedAt)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
