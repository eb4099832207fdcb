package report

import (
	"fmt"
	"io"
	"time"

	fluid "Eletta/internal/calc/fluid"

	"github.com/phpdave11/gofpdf"
)

// Point is one sized calibration point rendered in the report table.
type Point struct {
	FlowLPM    float64
	DiameterMM float64
	Beta       float64
	Reynolds   float64
	DPmbar     float64
	OK         bool
}

type Report struct {
	Title            string
	Grade            fluid.Grade
	TempC            float64
	KinematicCSt     float64
	DynamicPaS       float64
	DensityKgM3      float64
	CorrectionFactor float64
	Points           []Point
	Warnings         []string
}

// Generate writes the calibration report as a PDF.
func Generate(w io.Writer, rep Report) error {
	if rep.Title == "" {
		rep.Title = "Eletta S2 GL40 Calibration Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, rep.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Oil Type: %s", rep.Grade))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Temperature: %.1f C", rep.TempC))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Fluid Properties")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Kinematic Viscosity: %.1f cSt", rep.KinematicCSt))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Dynamic Viscosity: %.1f mPa.s", rep.DynamicPaS*1000))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Density: %.0f kg/m3", rep.DensityKgM3))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Correction Factor: %.3f", rep.CorrectionFactor))
	pdf.Ln(10)

	if len(rep.Points) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Calibration Table")
		pdf.Ln(8)

		headers := []string{"Flow (L/min)", "Orifice (mm)", "Beta", "Reynolds", "dP (mbar)", "Status"}
		widths := []float64{30, 30, 25, 30, 30, 20}

		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for _, p := range rep.Points {
			status := "OK"
			if !p.OK {
				status = "CHECK"
			}
			pdf.CellFormat(widths[0], 6, fmt.Sprintf("%.1f", p.FlowLPM), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[1], 6, fmt.Sprintf("%.1f", p.DiameterMM), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.3f", p.Beta), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.0f", p.Reynolds), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.0f", p.DPmbar), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[5], 6, status, "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if len(rep.Warnings) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Warnings")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, warning := range rep.Warnings {
			pdf.MultiCell(0, 5, "- "+warning, "", "L", false)
		}
	}

	return pdf.Output(w)
}
