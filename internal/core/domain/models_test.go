package domain_test

import (
	"testing"

	"github.com/woxyben19-maker/emlak/internal/core/domain"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		processed int
		want      float64
		defined   bool
	}{
		{"no total yet", 0, 0, 0, false},
		{"partial", 40, 12, 0.3, true},
		{"complete", 40, 40, 1, true},
		{"over-reported clamps to one", 40, 41, 1, true},
		{"negative clamps to zero", 40, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := domain.Job{TotalListings: tt.total, ProcessedListings: tt.processed}
			got, ok := job.Progress()
			if ok != tt.defined {
				t.Fatalf("Progress() defined = %v, want %v", ok, tt.defined)
			}
			if got != tt.want {
				t.Fatalf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusCanonical(t *testing.T) {
	if got := domain.Status("scraping").Canonical(); got != domain.StatusScraping {
		t.Fatalf("Canonical(scraping) = %q", got)
	}
	if got := domain.Status("half_done").Canonical(); got != domain.StatusUnknown {
		t.Fatalf("Canonical(half_done) = %q, want unknown", got)
	}
	if domain.Status("half_done").Known() {
		t.Fatal("unrecognized status reported as known")
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []domain.Status{domain.StatusCompleted, domain.StatusError}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	nonTerminal := []domain.Status{
		domain.StatusQueued, domain.StatusProcessing, domain.StatusScraping,
		domain.StatusProcessingAI, domain.Status("weird_new_state"),
	}
	for _, s := range nonTerminal {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestExportFilename(t *testing.T) {
	if got := domain.ExportFilename("J1", domain.FormatExcel); got != "emlak_listesi_J1.xlsx" {
		t.Fatalf("excel filename = %q", got)
	}
	if got := domain.ExportFilename("J1", domain.FormatPDF); got != "emlak_listesi_J1.pdf" {
		t.Fatalf("pdf filename = %q", got)
	}
}

func TestParseExportFormat(t *testing.T) {
	if _, err := domain.ParseExportFormat("csv"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	got, err := domain.ParseExportFormat("pdf")
	if err != nil || got != domain.FormatPDF {
		t.Fatalf("ParseExportFormat(pdf) = %v, %v", got, err)
	}
}

func TestExportable(t *testing.T) {
	job := domain.Job{Status: domain.StatusCompleted, Listings: []domain.Listing{{Price: "850.000 TL"}}}
	if !job.Exportable() {
		t.Fatal("completed job with listings should be exportable")
	}
	if (&domain.Job{Status: domain.StatusCompleted}).Exportable() {
		t.Fatal("completed job without listings should not be exportable")
	}
	if (&domain.Job{Status: domain.StatusScraping, Listings: []domain.Listing{{}}}).Exportable() {
		t.Fatal("running job should not be exportable")
	}
}

func TestDisplay(t *testing.T) {
	if got := domain.Display(""); got != "-" {
		t.Fatalf("Display(empty) = %q", got)
	}
	if got := domain.Display("3+1"); got != "3+1" {
		t.Fatalf("Display(3+1) = %q", got)
	}
}
