package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer draws a Sheet on a single A4 portrait page.
type PDFRenderer struct{}

const (
	pdfMargin  = 15.0
	pdfContent = 180.0 // A4 width minus both margins, in mm
	pdfLine    = 5.5
)

// Item table column widths in mm; they add up to pdfContent.
var pdfColumns = [4]float64{90, 20, 35, 35}

func (PDFRenderer) Render(s Sheet, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(s.Title, true)
	pdf.SetCreator("invoicer", true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 25)

	// Core fonts are cp1252; translate so accented names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetDrawColor(220, 220, 220)
		pdf.Line(pdfMargin, pdf.GetY(), pdfMargin+pdfContent, pdf.GetY())
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(pdfContent/2, 5, tr(s.FooterLeft), "", 0, "L", false, 0, "")
		pdf.CellFormat(pdfContent/2, 5, tr(s.FooterRight), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	top := pdf.GetY()

	// Business contact, left column
	for i, line := range s.Business {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(pdfContent/2, pdfLine, tr(line), "", 1, "L", false, 0, "")
	}
	leftBottom := pdf.GetY()

	// Title and invoice meta, right column
	pdf.SetXY(pdfMargin+pdfContent/2, top)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(pdfContent/2, 10, "INVOICE", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, f := range s.Meta {
		pdf.SetX(pdfMargin + pdfContent/2)
		pdf.CellFormat(pdfContent/2, pdfLine, tr(f.Label+": "+f.Value), "", 1, "R", false, 0, "")
	}
	pdf.SetY(max(leftBottom, pdf.GetY()) + 10)

	// Items
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, h := range []string{"Description", "Qty", "Unit Price", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(pdfColumns[i], 8, h, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	for _, row := range s.Items {
		pdf.SetFont("Helvetica", "", 10)
		desc := wrapLines(pdf, tr(row.Description), pdfColumns[0])
		pdf.CellFormat(pdfColumns[0], 7, desc[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColumns[1], 7, row.Quantity, "", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColumns[2], 7, row.UnitPrice, "", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColumns[3], 7, row.Amount, "", 1, "R", false, 0, "")
		for _, line := range desc[1:] {
			pdf.CellFormat(pdfColumns[0], pdfLine, line, "", 1, "L", false, 0, "")
		}
		if row.Size != "" {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(110, 110, 110)
			for _, line := range wrapLines(pdf, tr(row.Size), pdfColumns[0]) {
				pdf.CellFormat(pdfColumns[0], 4, line, "", 1, "L", false, 0, "")
			}
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.SetDrawColor(230, 230, 230)
		pdf.Line(pdfMargin, pdf.GetY()+1, pdfMargin+pdfContent, pdf.GetY()+1)
		pdf.Ln(2)
	}

	// Totals block, right aligned
	pdf.Ln(4)
	const labelW, valueW = 45.0, 40.0
	for i, f := range s.Totals {
		last := i == len(s.Totals)-1
		border := ""
		style := ""
		if last {
			border, style = "T", "B"
		}
		pdf.SetX(pdfMargin + pdfContent - labelW - valueW)
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, pdfLine+1, f.Label, border, 0, "L", false, 0, "")
		pdf.CellFormat(valueW, pdfLine+1, f.Value, border, 1, "R", false, 0, "")
	}

	if s.TotalInWords != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(pdfContent, pdfLine, s.TotalInWords, "", "L", false)
	}

	if s.Bank != nil {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(pdfContent, 7, "Account Details", "", 1, "L", false, 0, "")
		width := pdfContent / 4
		for _, h := range []string{"Name", "Account Number", "Bank", "Branch"} {
			pdf.CellFormat(width, 7, h, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, v := range []string{s.Bank.Name, s.Bank.AccountNumber, s.Bank.Bank, s.Bank.Branch} {
			pdf.CellFormat(width, 7, tr(v), "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// wrapLines splits s into lines that fit a cell of width w, cell margins
// included, in the current font. It always returns at least one line.
func wrapLines(pdf *gofpdf.Fpdf, s string, w float64) []string {
	lines := pdf.SplitText(s, w)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
