package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const organizationName = "HRMS Portal"

// Line is a single labelled amount on a rendered document.
type Line struct {
	Label  string
	Amount int64
}

type PayslipData struct {
	EmployeeName    string
	EmployeeCode    string
	Department      string
	JobTitle        string
	Month           string
	Status          string
	PaidDate        string
	WorkingDays     int
	PresentDays     int
	AttendanceRatio float64
	Earnings        []Line
	Deductions      []Line
	GrossSalary     int64
	TotalDeductions int64
	NetSalary       int64
}

type OfferLetterData struct {
	EmployeeName string
	EmployeeCode string
	JobTitle     string
	Department   string
	HireDate     string
	IssuedOn     string
	BaseSalary   int64
	Structure    []Line
}

//go:generate mockgen -source=renderer.go -destination=mock/renderer_mock.go -package=mock
type Renderer interface {
	Payslip(data PayslipData) ([]byte, error)
	OfferLetter(data OfferLetterData) ([]byte, error)
}

type PDFRenderer struct {
	printer *message.Printer
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{printer: message.NewPrinter(language.English)}
}

func (r *PDFRenderer) amount(v int64) string {
	return r.printer.Sprintf("%d", v)
}

func (r *PDFRenderer) Payslip(data PayslipData) ([]byte, error) {
	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header(pdf, "PAYSLIP", "Pay period "+data.Month)

	pdf.SetFont("Helvetica", "", 10)
	keyValue(pdf, tr, "Employee", data.EmployeeName)
	keyValue(pdf, tr, "Employee code", data.EmployeeCode)
	keyValue(pdf, tr, "Department", data.Department)
	keyValue(pdf, tr, "Designation", data.JobTitle)
	keyValue(pdf, tr, "Attendance", fmt.Sprintf("%d / %d days (%.2f%%)", data.PresentDays, data.WorkingDays, data.AttendanceRatio))
	keyValue(pdf, tr, "Status", data.Status)
	if data.PaidDate != "" {
		keyValue(pdf, tr, "Paid on", data.PaidDate)
	}
	pdf.Ln(4)

	r.table(pdf, tr, "Earnings", data.Earnings, "Gross salary", data.GrossSalary)
	pdf.Ln(4)
	r.table(pdf, tr, "Deductions", data.Deductions, "Total deductions", data.TotalDeductions)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(130, 9, "NET SALARY", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 9, r.amount(data.NetSalary), "1", 1, "R", false, 0, "")

	footer(pdf, "This is a system generated payslip and does not require a signature.")
	return output(pdf)
}

func (r *PDFRenderer) OfferLetter(data OfferLetterData) ([]byte, error) {
	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header(pdf, "OFFER LETTER", "Issued "+data.IssuedOn)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr("Dear "+data.EmployeeName+","), "", "L", false)
	pdf.Ln(2)
	body := fmt.Sprintf(
		"We are pleased to offer you the position of %s in the %s department, effective %s. "+
			"Your employee code is %s. Your annual compensation and its monthly structure are set out below.",
		data.JobTitle, data.Department, data.HireDate, data.EmployeeCode,
	)
	pdf.MultiCell(0, 6, tr(body), "", "L", false)
	pdf.Ln(4)

	r.table(pdf, tr, "Compensation", data.Structure, "Base salary", data.BaseSalary)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "We look forward to working with you.", "", "L", false)
	pdf.Ln(10)
	pdf.CellFormat(0, 6, "Human Resources, "+organizationName, "", 1, "L", false, 0, "")

	footer(pdf, "This letter is generated from the employee record on file.")
	return output(pdf)
}

func (r *PDFRenderer) table(pdf *fpdf.Fpdf, tr func(string) string, title string, lines []Line, totalLabel string, total int64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(130, 8, title, "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.CellFormat(130, 7, tr(line.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, r.amount(line.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(130, 7, totalLabel, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, r.amount(total), "1", 1, "R", false, 0, "")
}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	return pdf
}

func header(pdf *fpdf.Fpdf, title, subtitle string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, organizationName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(6)
}

func keyValue(pdf *fpdf.Fpdf, tr func(string) string, key, value string) {
	pdf.CellFormat(45, 6, key, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func footer(pdf *fpdf.Fpdf, note string) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 5, note, "", "C", false)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
