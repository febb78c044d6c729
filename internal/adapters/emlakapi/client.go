package emlakapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/woxyben19-maker/emlak/internal/core/domain"
	"github.com/woxyben19-maker/emlak/internal/core/ports"
)

// Client implements ports.ScrapeAPI against the extractor's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given base address, e.g.
// "http://localhost:8000".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// wireJob mirrors the service's job document. created_date is kept as a raw
// string because the service emits Python-style timestamps with or without a
// zone suffix.
type wireJob struct {
	ID                string           `json:"id"`
	URL               string           `json:"url"`
	Month             int              `json:"month"`
	Year              int              `json:"year"`
	Status            string           `json:"status"`
	TotalListings     int              `json:"total_listings"`
	ProcessedListings int              `json:"processed_listings"`
	Listings          []domain.Listing `json:"listings"`
	CreatedDate       string           `json:"created_date"`
}

func (w *wireJob) toDomain() *domain.Job {
	job := &domain.Job{
		ID:                w.ID,
		URL:               w.URL,
		Month:             w.Month,
		Year:              w.Year,
		Status:            domain.Status(w.Status),
		TotalListings:     w.TotalListings,
		ProcessedListings: w.ProcessedListings,
		Listings:          w.Listings,
		CreatedDate:       parseTimestamp(w.CreatedDate),
	}
	// The count invariant is enforced here so the rest of the client can
	// rely on processed <= total whenever total > 0.
	if job.TotalListings > 0 && job.ProcessedListings > job.TotalListings {
		job.ProcessedListings = job.TotalListings
	}
	return job
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TestCapability probes whether AI-assisted extraction is active upstream.
func (c *Client) TestCapability(ctx context.Context) domain.CapabilityState {
	var result struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, "/api/test-gemini", nil, &result); err != nil {
		return domain.CapabilityUnavailable
	}
	switch result.Status {
	case "success":
		return domain.CapabilityAvailable
	case "api_disabled":
		return domain.CapabilityDegraded
	default:
		return domain.CapabilityUnavailable
	}
}

// SubmitJob starts a new extraction job.
func (c *Client) SubmitJob(ctx context.Context, req ports.SubmitRequest) (*domain.Job, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, "/api/scrape", req)
	if err != nil {
		return nil, err
	}
	return decodeJob(raw)
}

// GetJob fetches the current record for a job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, "/api/results/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	return decodeJob(raw)
}

// ListJobs fetches all known jobs, newest first.
func (c *Client) ListJobs(ctx context.Context) ([]domain.Job, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, "/api/results", nil)
	if err != nil {
		return nil, err
	}
	var wires []wireJob
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, fmt.Errorf("decode job list: %w", err)
	}
	jobs := make([]domain.Job, 0, len(wires))
	for i := range wires {
		jobs = append(jobs, *wires[i].toDomain())
	}
	return jobs, nil
}

// Export requests a generated artifact for a completed job. The caller must
// close the returned body.
func (c *Client) Export(ctx context.Context, jobID string, format domain.ExportFormat) (io.ReadCloser, error) {
	path := fmt.Sprintf("/api/export/%s/%s", format, jobID)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, remoteError(resp)
	}
	return resp.Body, nil
}

func decodeJob(raw []byte) (*domain.Job, error) {
	if err := validateJobDocument(raw); err != nil {
		return nil, &RemoteError{StatusCode: http.StatusOK, Detail: err.Error()}
	}
	var w wireJob
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return w.toDomain(), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doJSON performs a request with an optional JSON body and returns the raw
// response bytes of a 2xx answer. Non-2xx answers become RemoteError with
// any detail string the service supplied.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteErrorFromBody(resp.StatusCode, raw)
	}
	return raw, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	raw, err := c.doJSON(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func remoteError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return remoteErrorFromBody(resp.StatusCode, raw)
}

func remoteErrorFromBody(statusCode int, raw []byte) error {
	var errBody struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(raw, &errBody)
	return &RemoteError{StatusCode: statusCode, Detail: errBody.Detail}
}
