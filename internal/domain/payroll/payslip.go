package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Payslip renders a single payroll record as a PDF document.
func Payslip(rec Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", rec.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Department: %s", rec.Department))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", rec.Month))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", rec.Status))
	pdf.Ln(12)

	line := func(label string, amount float64, note string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", amount), "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, note, "", 1, "L", false, 0, "")
	}

	line("Base salary", rec.BaseSalary, "")
	line("Bonus", rec.Bonus, rec.BonusDescription)
	line("Deduction", rec.Deduction, rec.DeductionDescription)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", rec.NetSalary), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
