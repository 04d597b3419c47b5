package api_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/protomem/hr-console/internal/api"
	"github.com/protomem/hr-console/internal/hrmtest"
	"github.com/protomem/hr-console/internal/model"
)

func TestCandidates_CreateWithResumeUploadsMultipart(t *testing.T) {
	srv := hrmtest.NewServer()
	defer srv.Close()

	resumePath := filepath.Join(t.TempDir(), "alice-cv.pdf")
	if err := os.WriteFile(resumePath, []byte("%PDF-1.4 fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	candidates := api.NewCandidatesAPI(testLogger(), newClient(srv, hrmtest.DefaultToken))

	message, err := candidates.Create(ctx, api.CandidateDraft{
		Name: "Alice", Email: "alice@example.com", Phone: "123",
		ResumePath: resumePath,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if message != "Candidate added successfully" {
		t.Errorf("got message %q", message)
	}

	listed, err := candidates.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d candidates", len(listed))
	}
	if listed[0].Resume != "alice-cv.pdf" {
		t.Errorf("got stored resume %q", listed[0].Resume)
	}
	if !bytes.Equal(srv.Uploads["alice-cv.pdf"], []byte("%PDF-1.4 fake")) {
		t.Error("uploaded resume content does not match the local file")
	}
}

func TestCandidates_CreateWithoutResume(t *testing.T) {
	srv := hrmtest.NewServer()
	defer srv.Close()

	candidates := api.NewCandidatesAPI(testLogger(), newClient(srv, hrmtest.DefaultToken))
	if _, err := candidates.Create(context.Background(), api.CandidateDraft{
		Name: "Bob", Email: "bob@example.com", Phone: "456",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	listed, err := candidates.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed[0].Resume != "" {
		t.Errorf("expected no resume, got %q", listed[0].Resume)
	}
}

func TestCandidates_HireMovesCandidateToEmployees(t *testing.T) {
	srv := hrmtest.NewServer()
	defer srv.Close()

	srv.Candidates = []model.Candidate{{ID: "cand-1", Name: "Carol", Email: "carol@example.com", Phone: "789"}}

	candidates := api.NewCandidatesAPI(testLogger(), newClient(srv, hrmtest.DefaultToken))
	message, err := candidates.Hire(context.Background(), "cand-1", api.HireRequest{
		Role: "Developer", Department: "IT",
	})
	if err != nil {
		t.Fatalf("hire: %v", err)
	}
	if message != "Candidate hired successfully" {
		t.Errorf("got message %q", message)
	}

	if len(srv.Candidates) != 0 {
		t.Errorf("candidate not consumed: %+v", srv.Candidates)
	}
	if len(srv.Employees) != 1 || srv.Employees[0].Name != "Carol" || srv.Employees[0].Department != "IT" {
		t.Errorf("got employees %+v", srv.Employees)
	}
}

func TestCandidates_DownloadResume(t *testing.T) {
	srv := hrmtest.NewServer()
	defer srv.Close()

	srv.Uploads["carol-cv.pdf"] = []byte("resume bytes")

	candidates := api.NewCandidatesAPI(testLogger(), newClient(srv, hrmtest.DefaultToken))
	data, err := candidates.DownloadResume(context.Background(), "carol-cv.pdf")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !bytes.Equal(data, []byte("resume bytes")) {
		t.Errorf("got %q", data)
	}

	requests := srv.Requests()
	if len(requests) != 1 || requests[0].Path != "/uploads/carol-cv.pdf" {
		t.Fatalf("got requests %+v", requests)
	}
	if requests[0].Authorization != "Bearer "+hrmtest.DefaultToken {
		t.Errorf("download must carry the bearer header, got %q", requests[0].Authorization)
	}
}

func TestCandidates_DownloadResumeWithoutFilename(t *testing.T) {
	srv := hrmtest.NewServer()
	defer srv.Close()

	candidates := api.NewCandidatesAPI(testLogger(), newClient(srv, hrmtest.DefaultToken))
	_, err := candidates.DownloadResume(context.Background(), "")
	if !errors.Is(err, model.ErrNoResume) {
		t.Fatalf("got %v, want ErrNoResume", err)
	}

	if got := len(srv.Requests()); got != 0 {
		t.Errorf("expected zero network calls, observed %d", got)
	}
}
