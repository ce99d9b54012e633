package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"vetclinic/internal/repositories"
	"vetclinic/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable PDF summaries of medical records.
type DocsService struct {
	RecordRepo  repositories.MedicalRecordRepository
	PatientRepo repositories.PatientRepository
	RequestID   string
	Loader      func(int64) (recordSummaryData, error)
}

type recordSummaryData struct {
	RecordID         int64
	Date             time.Time
	Diagnosis        string
	Treatment        string
	Notes            string
	WeightAtVisit    string
	VeterinarianName string
	PatientName      string
	Species          string
	Breed            string
	Gender           string
	BirthDate        string
}

func (s DocsService) GenerateRecordSummary(recordID int64) ([]byte, string, error) {
	data, err := s.loadRecordSummaryData(recordID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_record_summary", fmt.Sprintf("record_id=%d", recordID))
	return buildRecordSummaryPDF(data)
}

func (s DocsService) loadRecordSummaryData(recordID int64) (recordSummaryData, error) {
	if s.Loader != nil {
		return s.Loader(recordID)
	}
	var out recordSummaryData
	m, err := s.RecordRepo.GetByID(recordID)
	if err != nil {
		return out, err
	}
	out.RecordID = m.ID
	out.Date = m.Date
	out.Diagnosis = m.Diagnosis
	out.VeterinarianName = m.VeterinarianName
	out.PatientName = m.PatientName
	if m.Treatment != nil {
		out.Treatment = *m.Treatment
	}
	if m.Notes != nil {
		out.Notes = *m.Notes
	}
	if m.WeightAtVisit != nil {
		out.WeightAtVisit = fmt.Sprintf("%.2f kg", *m.WeightAtVisit)
	}

	if p, err := s.PatientRepo.GetByID(m.PatientID); err == nil {
		out.Species = p.Species
		if p.Gender != nil {
			out.Gender = *p.Gender
		}
		if p.Breed != nil {
			out.Breed = *p.Breed
		}
		if p.BirthDate != nil {
			out.BirthDate = *p.BirthDate
		}
	}

	return out, nil
}

func buildRecordSummaryPDF(d recordSummaryData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Medical Record Summary", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MEDICAL RECORD SUMMARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Record        : #%d", d.RecordID),
		fmt.Sprintf("Visit date    : %s", d.Date.Format("2006-01-02 15:04")),
		fmt.Sprintf("Patient       : %s", safe(d.PatientName, "-")),
		fmt.Sprintf("Species       : %s", safe(d.Species, "-")),
		fmt.Sprintf("Breed         : %s", safe(d.Breed, "-")),
		fmt.Sprintf("Gender        : %s", safe(d.Gender, "-")),
		fmt.Sprintf("Born          : %s", safe(d.BirthDate, "-")),
		fmt.Sprintf("Weight        : %s", safe(d.WeightAtVisit, "-")),
		fmt.Sprintf("Veterinarian  : %s", safe(d.VeterinarianName, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Diagnosis")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, safe(d.Diagnosis, "-"), "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Treatment")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, safe(d.Treatment, "-"), "", "", false)
	pdf.Ln(2)

	if strings.TrimSpace(d.Notes) != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Notes")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, d.Notes, "", "", false)
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04")+". For clinic records only.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECORD_%d_%s.pdf", d.RecordID, safeFilenamePart(d.PatientName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
