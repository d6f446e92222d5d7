package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/afero"
)

const (
	pdfMargin        = 10 // Margin in mm
	pdfLineHeight    = 5  // Row height in mm
	pdfFontSize      = 8
	pdfTabWidth      = 4  // Number of spaces for a tab
	pdfIndexColWidth = 12 // Width of the line-number column in mm
	pdfCellPadding   = 2  // Horizontal room left inside each cell in mm
)

// generatePDF renders the aligned lines side by side, one column per file,
// and writes the report to outputPath.
func generatePDF(fsys afero.Fs, result *Result, outputPath string) error {
	if len(result.Files) == 0 {
		return fmt.Errorf("generating PDF %s: %w", outputPath, ErrEmptyInput)
	}
	logger.Debug().Str("file", outputPath).Int("rows", len(result.Out)).Msg("Generating PDF")

	orientation := "P"
	if len(result.Files) > 2 {
		orientation = "L" // Wide tables read better on landscape pages
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pdfMargin - pdfIndexColWidth) / float64(len(result.Files))

	// Column titles repeat on every page.
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(pdfIndexColWidth, pdfLineHeight, "#", "1", 0, "R", true, 0, "")
		for i, file := range result.Files {
			title := fmt.Sprintf("%d: %s", i, filepath.Base(file))
			pdf.CellFormat(colWidth, pdfLineHeight, fitText(pdf, tr(title), colWidth), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	})

	pdf.AddPage()
	pdf.SetFont("Courier", "", pdfFontSize)
	for lineNumber, row := range result.Out {
		pdf.CellFormat(pdfIndexColWidth, pdfLineHeight, strconv.Itoa(lineNumber), "1", 0, "R", false, 0, "")
		for _, text := range row {
			text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", pdfTabWidth))
			pdf.CellFormat(colWidth, pdfLineHeight, fitText(pdf, tr(text), colWidth), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(pdfLineHeight)
	pdf.SetFont("Helvetica", "", pdfFontSize)
	summary := fmt.Sprintf("Configuration %d (%s) from %s: %d files, %d lines",
		result.ConfigurationID, result.ConfigurationData.Mode, result.ConfigFile, len(result.Files), len(result.Out))
	pdf.MultiCell(0, pdfLineHeight, tr(summary), "", "L", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF %s: %w", outputPath, err)
	}

	f, err := fsys.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	if err := pdf.Output(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}

	fmt.Printf("Successfully saved PDF to %s\n", outputPath)
	return nil
}

// fitText shortens s with a trailing "..." until it fits in a cell of the
// given width using the current font.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	limit := width - pdfCellPadding
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}
	return s + "..."
}
