package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Paper size of the PNG export at scale 1, in pixels (A4 at 96 dpi).
const (
	PaperWidth  = 794
	PaperHeight = 1123
)

const (
	pngMargin = 40
	pngLine   = 18
)

var (
	inkColor   = color.Gray{Y: 0}
	mutedColor = color.Gray{Y: 110}
	ruleColor  = color.Gray{Y: 215}
)

// PNGRenderer rasterizes a Sheet on a white page. The page is A4 sized and
// grows downwards when the content does not fit. Scale multiplies the page
// size; values below 1 render at 1.
type PNGRenderer struct {
	Scale int
}

func (r PNGRenderer) Render(s Sheet, w io.Writer) error {
	height := pageHeight(s)
	page := image.NewRGBA(image.Rect(0, 0, PaperWidth, height))
	draw.Draw(page, page.Bounds(), image.White, image.Point{}, draw.Src)

	c := &canvas{img: page, face: basicfont.Face7x13}
	drawBody(c, s)

	// Footer
	right := PaperWidth - pngMargin
	c.y = height - pngMargin
	c.ruleAbove(pngMargin, right, ruleColor)
	c.text(pngMargin, s.FooterLeft, mutedColor)
	c.textRight(right, s.FooterRight, mutedColor)

	out := image.Image(page)
	if scale := max(1, r.Scale); scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, PaperWidth*scale, height*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), page, page.Bounds(), draw.Src, nil)
		out = scaled
	}
	return png.Encode(w, out)
}

// pageHeight is PaperHeight, or more when the body would run into the footer.
func pageHeight(s Sheet) int {
	measure := &canvas{face: basicfont.Face7x13}
	drawBody(measure, s)
	return max(PaperHeight, measure.y+2*pngLine+pngMargin)
}

// drawBody lays out everything above the footer. On a canvas without an
// image it only advances the cursor.
func drawBody(c *canvas, s Sheet) {
	c.y = pngMargin + 13
	right := PaperWidth - pngMargin

	// Header: business left, title and meta right
	top := c.y
	for _, line := range s.Business {
		c.text(pngMargin, line, inkColor)
		c.y += pngLine
	}
	leftBottom := c.y
	c.y = top
	c.textRight(right, "INVOICE", inkColor)
	c.y += pngLine + 6
	for _, f := range s.Meta {
		c.textRight(right, f.Label+": "+f.Value, inkColor)
		c.y += pngLine
	}
	c.y = max(c.y, leftBottom) + 2*pngLine

	// Items
	colQty, colPrice := 500, 630
	c.text(pngMargin, "Description", inkColor)
	c.textRight(colQty, "Qty", inkColor)
	c.textRight(colPrice, "Unit Price", inkColor)
	c.textRight(right, "Amount", inkColor)
	c.rule(pngMargin, right, ruleColor)
	c.y += pngLine + 4
	for _, row := range s.Items {
		c.text(pngMargin, truncate(row.Description, 56), inkColor)
		c.textRight(colQty, row.Quantity, inkColor)
		c.textRight(colPrice, row.UnitPrice, inkColor)
		c.textRight(right, row.Amount, inkColor)
		if row.Size != "" {
			c.y += pngLine - 4
			c.text(pngMargin, truncate(row.Size, 56), mutedColor)
		}
		c.rule(pngMargin, right, ruleColor)
		c.y += pngLine + 4
	}

	// Totals
	c.y += pngLine / 2
	for i, f := range s.Totals {
		if i == len(s.Totals)-1 {
			c.ruleAbove(right-300, right, inkColor)
		}
		c.text(right-300, f.Label, inkColor)
		c.textRight(right, f.Value, inkColor)
		c.y += pngLine
	}

	if s.TotalInWords != "" {
		c.y += pngLine
		c.text(pngMargin, s.TotalInWords, inkColor)
		c.y += pngLine
	}

	if s.Bank != nil {
		c.y += pngLine * 2
		c.text(pngMargin, "Account Details", inkColor)
		c.y += pngLine + 4
		colW := (right - pngMargin) / 4
		for i, h := range []string{"Name", "Account Number", "Bank", "Branch"} {
			c.text(pngMargin+i*colW, h, inkColor)
		}
		c.rule(pngMargin, right, ruleColor)
		c.y += pngLine + 4
		for i, v := range []string{s.Bank.Name, s.Bank.AccountNumber, s.Bank.Bank, s.Bank.Branch} {
			c.text(pngMargin+i*colW, truncate(v, colW/7-1), inkColor)
		}
		c.y += pngLine
	}
}

// canvas draws left or right aligned text on the baseline y. A nil img
// only tracks the cursor.
type canvas struct {
	img  *image.RGBA
	face font.Face
	y    int
}

func (c *canvas) text(x int, s string, col color.Color) {
	if c.img == nil {
		return
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, c.y),
	}
	d.DrawString(s)
}

func (c *canvas) textRight(right int, s string, col color.Color) {
	width := font.MeasureString(c.face, s).Ceil()
	c.text(right-width, s, col)
}

// rule draws a one pixel line just below the current baseline.
func (c *canvas) rule(x0, x1 int, col color.Color) {
	c.hline(x0, x1, c.y+6, col)
}

// ruleAbove draws a one pixel line just above the current text line.
func (c *canvas) ruleAbove(x0, x1 int, col color.Color) {
	c.hline(x0, x1, c.y-14, col)
}

func (c *canvas) hline(x0, x1, y int, col color.Color) {
	if c.img == nil {
		return
	}
	for x := x0; x < x1; x++ {
		c.img.Set(x, y, col)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}
