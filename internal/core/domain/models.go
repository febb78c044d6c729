package domain

import (
	"fmt"
	"time"
)

// Job represents one extraction request and its evolving server-side state.
// All fields are owned by the remote extractor; the client never mutates
// them, it only replaces whole Job values with freshly fetched ones.
type Job struct {
	ID                string    `json:"id"`
	URL               string    `json:"url"`
	Month             int       `json:"month"`
	Year              int       `json:"year"`
	Status            Status    `json:"status"`
	TotalListings     int       `json:"total_listings"`
	ProcessedListings int       `json:"processed_listings"`
	Listings          []Listing `json:"listings"`
	CreatedDate       time.Time `json:"created_date"`
}

// Listing is a flat record of extracted property attributes. Every field is
// optional; the remote side sends empty strings for anything it could not
// extract.
type Listing struct {
	OwnerName      string `json:"owner_name"`
	ContactNumber  string `json:"contact_number"`
	RoomCount      string `json:"room_count"`
	NetArea        string `json:"net_area"`
	IsInComplex    string `json:"is_in_complex"`
	ComplexName    string `json:"complex_name"`
	HeatingType    string `json:"heating_type"`
	ParkingType    string `json:"parking_type"`
	CreditSuitable string `json:"credit_suitable"`
	Price          string `json:"price"`
	ListingDate    string `json:"listing_date"`
	ProcessedDate  string `json:"processed_date"`
}

// Terminal reports whether no further polling should occur for this job.
func (j *Job) Terminal() bool {
	return j.Status.Terminal()
}

// Progress returns the completion fraction in [0, 1] and whether a fraction
// is defined at all. No fraction exists until the remote side has counted
// the listings (total == 0).
func (j *Job) Progress() (float64, bool) {
	if j.TotalListings <= 0 {
		return 0, false
	}
	f := float64(j.ProcessedListings) / float64(j.TotalListings)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, true
}

// Exportable reports whether the export contract is satisfied: the job
// finished and produced at least one listing.
func (j *Job) Exportable() bool {
	return j.Status == StatusCompleted && len(j.Listings) > 0
}

// ExportFormat selects the artifact type produced by the remote exporter.
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatPDF   ExportFormat = "pdf"
)

// ParseExportFormat validates a user-supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatExcel:
		return FormatExcel, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want excel or pdf)", s)
}

// Ext returns the file extension for the format.
func (f ExportFormat) Ext() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "xlsx"
}

// ExportFilename returns the deterministic local name for an export
// artifact, matching what the remote exporter itself would name the file.
func ExportFilename(jobID string, format ExportFormat) string {
	return fmt.Sprintf("emlak_listesi_%s.%s", jobID, format.Ext())
}

// Display renders an optional listing field, substituting a placeholder for
// anything the extractor left empty.
func Display(field string) string {
	if field == "" {
		return "-"
	}
	return field
}
