package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/orderbridge/wa-invoice-bridge/internal/order"
)

// PDFRenderer writes one-page invoice PDFs into dir and returns artifacts
// whose URL points at the static /invoices/ route, so the notifier can
// attach them to the WhatsApp reply.
type PDFRenderer struct {
	dir     string
	baseURL string
}

func NewPDFRenderer(dir, baseURL string) (*PDFRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("invoice: create dir %s: %w", dir, err)
	}
	return &PDFRenderer{dir: dir, baseURL: baseURL}, nil
}

func (r *PDFRenderer) Render(po order.PricedOrder) (order.Artifact, error) {
	name := fmt.Sprintf("invoice-%d-%s.pdf",
		time.Now().Unix(),
		uuid.NewString()[:8],
	)
	path := filepath.Join(r.dir, name)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "INVOICE")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Date: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	// line-item table: product | qty | unit price | amount
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Quantity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

	qty := po.Quantity.String()
	if po.Unit != "" {
		qty += " " + po.Unit
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(70, 8, po.Product, "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, qty, "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, po.UnitPrice.String(), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, po.Total.String(), "1", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(140, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, po.Total.String(), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return order.Artifact{}, fmt.Errorf("invoice: write %s: %w", path, err)
	}

	return order.Artifact{
		Name: name,
		Path: path,
		URL:  r.baseURL + "/invoices/" + name,
	}, nil
}
