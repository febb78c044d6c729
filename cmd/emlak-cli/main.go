package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/woxyben19-maker/emlak/internal/adapters/emlakapi"
	"github.com/woxyben19-maker/emlak/internal/adapters/localstorage"
	"github.com/woxyben19-maker/emlak/internal/config"
	"github.com/woxyben19-maker/emlak/internal/core/domain"
	"github.com/woxyben19-maker/emlak/internal/service"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, environment variables might be set manually
		log.Println("No .env file found")
	}

	// Parse flags
	url := flag.String("url", "", "Listing search URL to submit for extraction")
	month := flag.Int("month", int(time.Now().Month()), "Target month (1-12)")
	year := flag.Int("year", time.Now().Year(), "Target year")
	list := flag.Bool("list", false, "List all known jobs and exit")
	export := flag.String("export", "", "Job ID to export (requires a completed job)")
	format := flag.String("format", "excel", "Export format: excel or pdf")
	flag.Parse()

	if *url == "" && !*list && *export == "" {
		fmt.Println("Usage:")
		fmt.Println("  emlak-cli -url <search-url> [-month <1-12>] [-year <yyyy>]")
		fmt.Println("  emlak-cli -list")
		fmt.Println("  emlak-cli -export <job-id> [-format excel|pdf]")
		fmt.Println("\nExample:")
		fmt.Println("  emlak-cli -url https://www.sahibinden.com/satilik-daire/istanbul -month 7 -year 2025")
		os.Exit(1)
	}

	// Setup logger
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Println("=== Emlak Extraction Client ===")
	logger.Printf("Service: %s", cfg.API.BaseURL)

	// Initialize adapters
	api := emlakapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	sink := localstorage.NewExportStore(cfg.Export.OutputDir)

	session := service.NewSession(api, sink, cfg.Poll.Interval, cfg.Poll.MaxWatch, logger)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("\nReceived interrupt signal, cancelling...")
		cancel()
	}()

	// Startup: capability probe and initial job list, independent of the
	// requested action.
	session.Probe(ctx)
	session.RefreshJobs(ctx)

	switch {
	case *list:
		printJobTable(session.Snapshot())
	case *export != "":
		runExport(ctx, session, *export, *format, logger)
	default:
		runSubmitAndWatch(ctx, session, *url, *month, *year, logger)
	}
}

func runSubmitAndWatch(ctx context.Context, session *service.Session, url string, month, year int, logger *log.Logger) {
	job, err := session.Submit(ctx, url, month, year)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			logger.Fatalf("Invalid input: %v", verr)
		}
		logger.Fatalf("%v", err)
	}

	logger.Printf("Watching job %s (poll until completed or error)...", job.ID)
	session.Watch(ctx, job.ID)

	snap := session.Snapshot()
	printSummary(snap)

	if snap.Current != nil && snap.Current.Status == domain.StatusError {
		os.Exit(1)
	}
}

func runExport(ctx context.Context, session *service.Session, jobID, rawFormat string, logger *log.Logger) {
	format, err := domain.ParseExportFormat(rawFormat)
	if err != nil {
		logger.Fatalf("Invalid input: %v", err)
	}

	// The export contract requires a completed job with listings; check it
	// here at the call site against the freshly cached list.
	if job := findJob(session.Snapshot().Jobs, jobID); job != nil && !job.Exportable() {
		logger.Fatalf("Job %s is not exportable (status %s, %d listings)", jobID, job.Status, len(job.Listings))
	}

	path, err := session.Export(ctx, jobID, format)
	if err != nil {
		logger.Fatalf("Export could not be completed: %v", err)
	}
	fmt.Printf("Export saved: %s\n", path)
}

func findJob(jobs []domain.Job, id string) *domain.Job {
	for i := range jobs {
		if jobs[i].ID == id {
			return &jobs[i]
		}
	}
	return nil
}

func printJobTable(snap service.Snapshot) {
	fmt.Printf("\nAI capability: %s\n", snap.Capability)
	if len(snap.Jobs) == 0 {
		fmt.Println("No jobs found.")
		return
	}
	fmt.Printf("%-38s %-14s %-10s %-20s %s\n", "ID", "STATUS", "PROGRESS", "CREATED", "URL")
	for _, job := range snap.Jobs {
		fmt.Printf("%-38s %-14s %-10s %-20s %s\n",
			job.ID, job.Status.Canonical(), progressLabel(&job), createdLabel(&job), job.URL)
	}
}

func printSummary(snap service.Snapshot) {
	job := snap.Current
	if job == nil {
		return
	}
	fmt.Println("\n=== Job Summary ===")
	fmt.Printf("Job ID:     %s\n", job.ID)
	fmt.Printf("Status:     %s\n", job.Status)
	fmt.Printf("Listings:   %d/%d processed\n", job.ProcessedListings, job.TotalListings)
	if snap.Stale {
		fmt.Println("Note:       watch budget exhausted; job may still be running remotely")
	}
	if job.Status != domain.StatusCompleted {
		return
	}
	for i, l := range job.Listings {
		fmt.Printf("\n--- Listing %d ---\n", i+1)
		fmt.Printf("Owner:    %s\n", domain.Display(l.OwnerName))
		fmt.Printf("Contact:  %s\n", domain.Display(l.ContactNumber))
		fmt.Printf("Rooms:    %s  Net area: %s\n", domain.Display(l.RoomCount), domain.Display(l.NetArea))
		fmt.Printf("Complex:  %s (%s)\n", domain.Display(l.IsInComplex), domain.Display(l.ComplexName))
		fmt.Printf("Heating:  %s  Parking: %s\n", domain.Display(l.HeatingType), domain.Display(l.ParkingType))
		fmt.Printf("Credit:   %s\n", domain.Display(l.CreditSuitable))
		fmt.Printf("Price:    %s\n", domain.Display(l.Price))
	}
	fmt.Printf("\nExport with: emlak-cli -export %s -format excel|pdf\n", job.ID)
}

func progressLabel(job *domain.Job) string {
	f, ok := job.Progress()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d%%", int(f*100))
}

func createdLabel(job *domain.Job) string {
	if job.CreatedDate.IsZero() {
		return "-"
	}
	return job.CreatedDate.Format("2006-01-02 15:04:05")
}
