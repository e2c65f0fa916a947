package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstkit/internal/gst"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting an HSN-wise tax breakup as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteBreakup writes the header row followed by one row per HSN/SAC code.
func (w *Writer) WriteBreakup(b *gst.HSNBreakup) error {
	keys := b.AllTaxKeys()
	if err := w.csv.Write(gst.BreakupHeader(keys)); err != nil {
		return err
	}
	for _, code := range b.Codes {
		if err := w.csv.Write(BreakupRow(b, code, keys)); err != nil {
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

// BreakupRow renders one HSN/SAC code of a breakup. Tax cells read
// "(rate%) amount" and are empty for taxes not charged on the code.
func BreakupRow(b *gst.HSNBreakup, code string, keys []string) []string {
	row := make([]string, 0, len(keys)+2)
	row = append(row, code, FormatMoney(b.Taxable[code]))
	for _, k := range keys {
		d, ok := b.Tax[code][k]
		if !ok {
			row = append(row, "")
			continue
		}
		row = append(row, FormatTaxCell(d))
	}
	return row
}

// FormatTaxCell renders a tax detail as "(rate%) amount".
func FormatTaxCell(d gst.TaxDetail) string {
	return fmt.Sprintf("(%s%%) %s", strconv.FormatFloat(d.Rate, 'f', -1, 64), FormatMoney(d.Amount))
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a document name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for a breakup download.
// Format: {sanitized_invoice}_HSN_Breakup_{YYYY-MM-DD}.{ext}
func BuildFilename(invoice, ext string) string {
	sanitized := SanitizeFilename(invoice)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_HSN_Breakup_%s.%s", sanitized, date, ext)
}
