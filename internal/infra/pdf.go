package infra

// pdf.go — order receipt generation using go-pdf/fpdf.
// Renders an A5 receipt with:
//   - Store name header
//   - Order number and timestamp
//   - Item table (product, variant, quantity, line total)
//   - Subtotal / tax / shipping breakdown
//   - Bold total
//
// The output file is saved to storagePath/receipt_{orderID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"lilass/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// truncateLabel shortens s to at most max characters, counting runes so a
// multibyte product title is never split mid-character.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// GenerateReceiptPDF renders a PDF receipt for a placed order.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateReceiptPDF(order *model.Order, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", order.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Order info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Order %s", order.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, order.CreatedAt.Format("Jan 2, 2006  15:04"), "", 1, "L", false, 0, "")
	if order.CustomerEmail != "" {
		pdf.CellFormat(contentW, 4, order.CustomerEmail, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product + variant
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // line total

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	// ── Item rows ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, item := range order.Items {
		name := item.Product.Title
		if sku := item.Variant.SKU; sku != "" {
			name += " (" + sku + ")"
		}
		name = truncateLabel(name, 34)
		lineTotal := item.Variant.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+lineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(col1+col2, 5, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "$"+order.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 5, "Tax:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "$"+order.Tax.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 5, "Shipping:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "$"+order.Shipping.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+order.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Thank you for your order!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
