package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/protomem/hr-console/internal/model"
)

type CandidatesAPI struct {
	Logger *slog.Logger
	*Client
}

func NewCandidatesAPI(logger *slog.Logger, client *Client) *CandidatesAPI {
	return &CandidatesAPI{
		Logger: logger.With("api", "candidates"),
		Client: client,
	}
}

// CandidateDraft is the form data for creating or updating a candidate.
// ResumePath optionally names a local file to attach as the resume.
type CandidateDraft struct {
	Name       string
	Email      string
	Phone      string
	ResumePath string
}

func (a *CandidatesAPI) List(ctx context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if _, err := a.doJSON(ctx, http.MethodGet, "/api/candidates/", true, nil, &candidates); err != nil {
		return nil, err
	}

	a.Logger.Debug("listed candidates", "count", len(candidates))

	return candidates, nil
}

func (a *CandidatesAPI) Create(ctx context.Context, draft CandidateDraft) (string, error) {
	return a.submitForm(ctx, http.MethodPost, "/api/candidates/", draft)
}

func (a *CandidatesAPI) Update(ctx context.Context, id model.ID, draft CandidateDraft) (string, error) {
	return a.submitForm(ctx, http.MethodPut, "/api/candidates/"+id, draft)
}

func (a *CandidatesAPI) Delete(ctx context.Context, id model.ID) (string, error) {
	return a.doJSON(ctx, http.MethodDelete, "/api/candidates/"+id, true, nil, nil)
}

// HireRequest moves a candidate onto the payroll with the given assignment.
type HireRequest struct {
	Role       string `json:"role"`
	Department string `json:"department"`
}

// Hire converts a candidate into an employee. The candidate record is
// consumed server-side; callers re-list candidates to observe the result.
func (a *CandidatesAPI) Hire(ctx context.Context, id model.ID, req HireRequest) (string, error) {
	return a.doJSON(ctx, http.MethodPost, "/api/candidates/move/"+id, true, req, nil)
}

// DownloadResume fetches the stored resume file as an opaque blob.
func (a *CandidatesAPI) DownloadResume(ctx context.Context, filename string) ([]byte, error) {
	if filename == "" {
		return nil, model.NewError("candidate", model.ErrNoResume)
	}

	data, err := a.do(ctx, http.MethodGet, "/uploads/"+url.PathEscape(filename), "", nil, true)
	if err != nil {
		return nil, err
	}

	a.Logger.Debug("downloaded resume", "filename", filename, "size", len(data))

	return data, nil
}

// submitForm sends the candidate fields as multipart/form-data, attaching
// the resume file when one is named.
func (a *CandidatesAPI) submitForm(ctx context.Context, method, path string, draft CandidateDraft) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":  draft.Name,
		"email": draft.Email,
		"phone": draft.Phone,
	}
	for field, value := range fields {
		if err := form.WriteField(field, value); err != nil {
			return "", fmt.Errorf("hrm: build form: %w", err)
		}
	}

	if draft.ResumePath != "" {
		if err := attachFile(form, "resume", draft.ResumePath); err != nil {
			return "", err
		}
	}

	if err := form.Close(); err != nil {
		return "", fmt.Errorf("hrm: build form: %w", err)
	}

	data, err := a.do(ctx, method, path, form.FormDataContentType(), &buf, true)
	if err != nil {
		return "", err
	}

	return messageFrom(data), nil
}

func attachFile(form *multipart.Writer, field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("hrm: open %s: %w", field, err)
	}
	defer file.Close()

	part, err := form.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("hrm: build form: %w", err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("hrm: attach %s: %w", field, err)
	}

	return nil
}
