package services

import (
	"bytes"
	"testing"
	"time"
)

func TestDocsServiceGenerateRecordSummary(t *testing.T) {
	loader := func(id int64) (recordSummaryData, error) {
		return recordSummaryData{
			RecordID:         id,
			Date:             time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
			Diagnosis:        "Otitis externa",
			Treatment:        "Ear drops twice daily for 10 days",
			Notes:            "Re-check in two weeks",
			WeightAtVisit:    "8.40 kg",
			VeterinarianName: "Dr. Reyes",
			PatientName:      "Rocky",
			Species:          "Dog",
			Breed:            "Beagle",
			Gender:           "Male",
			BirthDate:        "2021-06-01",
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateRecordSummary(7)
	if err != nil {
		t.Fatalf("GenerateRecordSummary returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateRecordSummary returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
	if filename != "RECORD_7_Rocky.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := safeFilenamePart("Mr. Whiskers / Jr"); got != "Mr._Whiskers___Jr" {
		t.Fatalf("safeFilenamePart = %q", got)
	}
	if got := safeFilenamePart("   "); got != "NA" {
		t.Fatalf("empty input should map to NA, got %q", got)
	}
}
