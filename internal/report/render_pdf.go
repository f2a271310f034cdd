// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/abdelrahman21-arch/book-store-demo/pkg/pointer"
)

// PDFContentType is the MIME type of rendered report documents.
const PDFContentType = "application/pdf"

// PDFRenderer implements [Renderer] producing a single-page A4 document.
type PDFRenderer struct{}

// NewPDFRenderer constructs the default report renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (renderer *PDFRenderer) ContentType() string {
	return PDFContentType
}

// Render lays out the store header followed by both rankings.
func (renderer *PDFRenderer) Render(report *Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s Inventory Report", report.Store.Name), true)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, report.Store.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if address := pointer.Val(report.Store.Address); address != "" {
		pdf.CellFormat(0, 6, address, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Inventory report, "+report.GeneratedAt.Format("2 January 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	renderer.priciestSection(pdf, report.PriciestBooks)
	pdf.Ln(6)
	renderer.prolificSection(pdf, report.ProlificAuthors)

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("pdf: output failed: %w", err)
	}
	return buffer.Bytes(), nil
}

func (renderer *PDFRenderer) priciestSection(pdf *fpdf.Fpdf, lines []PricedLine) {
	renderer.sectionTitle(pdf, fmt.Sprintf("Top %d Priciest Books", TopCount))

	if len(lines) == 0 {
		renderer.emptyNote(pdf, "No inventory recorded for this store.")
		return
	}

	renderer.tableHeader(pdf, []column{
		{"#", 10}, {"Book", 80}, {"Author", 55}, {"Price", 25}, {"Copies", 20},
	})

	pdf.SetFont("Helvetica", "", 10)
	for rank, line := range lines {
		pdf.CellFormat(10, 7, strconv.Itoa(rank+1), "B", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, line.BookName, "B", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, line.AuthorName, "B", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, line.PriceDisplay(), "B", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, strconv.Itoa(line.Copies), "B", 1, "R", false, 0, "")
	}
}

func (renderer *PDFRenderer) prolificSection(pdf *fpdf.Fpdf, authors []ProlificAuthor) {
	renderer.sectionTitle(pdf, fmt.Sprintf("Top %d 'Most Popular' Authors", TopCount))

	if len(authors) == 0 {
		renderer.emptyNote(pdf, "No in-stock titles at this store.")
		return
	}

	renderer.tableHeader(pdf, []column{
		{"#", 10}, {"Author", 135}, {"Distinct Titles", 45},
	})

	pdf.SetFont("Helvetica", "", 10)
	for rank, author := range authors {
		pdf.CellFormat(10, 7, strconv.Itoa(rank+1), "B", 0, "L", false, 0, "")
		pdf.CellFormat(135, 7, author.Name, "B", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, strconv.Itoa(author.Titles), "B", 1, "R", false, 0, "")
	}
}

type column struct {
	label string
	width float64
}

func (renderer *PDFRenderer) sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (renderer *PDFRenderer) tableHeader(pdf *fpdf.Fpdf, columns []column) {
	pdf.SetFont("Helvetica", "B", 10)
	for index, col := range columns {
		lineBreak := 0
		if index == len(columns)-1 {
			lineBreak = 1
		}
		pdf.CellFormat(col.width, 7, col.label, "B", lineBreak, "L", false, 0, "")
	}
}

func (renderer *PDFRenderer) emptyNote(pdf *fpdf.Fpdf, note string) {
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 7, note, "", 1, "L", false, 0, "")
}
