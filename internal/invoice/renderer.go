package invoice

import (
	"fmt"
	"io"
	"strings"

	"github.com/AbdelkaderTk/go-shop/internal/order/domain"
	"github.com/AbdelkaderTk/go-shop/pkg/money"
	"github.com/jung-kurt/gofpdf"
)

var separator = strings.Repeat("-", 40)

// Renderer turns a frozen order into a PDF invoice. Rendering is
// deterministic over the order's line items; the live catalog is never
// consulted.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the invoice PDF to w in a single pass. Callers that need
// the same bytes in several places hand in an io.MultiWriter.
func (r *Renderer) Render(order *domain.Order, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// pin the document timestamp to the order so the same order always
	// renders to the same bytes
	pdf.SetCreationDate(order.CreatedAt)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 14, "Invoice", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order # %s", order.ID), "", 1, "L", false, 0, "")

	pdf.SetFont("Courier", "", 11)
	pdf.CellFormat(0, 8, separator, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range ItemLines(order) {
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Courier", "", 11)
	pdf.CellFormat(0, 8, separator, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, TotalLine(order), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice for order %s: %w", order.ID, err)
	}
	return nil
}

// ItemLines formats one line per frozen line item:
// "<title> - Qty: <quantity> - Price: $<price>".
func ItemLines(order *domain.Order) []string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("%s - Qty: %d - Price: %s",
			item.Title, item.Quantity, money.FormatCents(item.PriceCents)))
	}
	return lines
}

// TotalLine re-sums quantity x price over the frozen items. For a
// well-formed order this equals the total stored at creation time.
func TotalLine(order *domain.Order) string {
	return fmt.Sprintf("Total price : %s", money.FormatCents(order.Total()))
}
