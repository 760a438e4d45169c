package scrape

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchJobExtractsStructuredPage(t *testing.T) {
	srv := serve(t, `<html><body>
		<h1>Senior Web Developer</h1>
		<div class="company">Acme Corp</div>
		<div class="job-description">Build and maintain our storefront.</div>
	</body></html>`)

	j, err := FetchJob(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if j.Title != "Senior Web Developer" {
		t.Fatalf("wrong title: %q", j.Title)
	}
	if j.Company != "Acme Corp" {
		t.Fatalf("wrong company: %q", j.Company)
	}
	if j.Description != "Build and maintain our storefront." {
		t.Fatalf("wrong description: %q", j.Description)
	}
	if j.URL != srv.URL {
		t.Fatalf("wrong url: %q", j.URL)
	}
	if j.ID == "" {
		t.Fatalf("expected an assigned id")
	}
}

func TestFetchJobSelectorPriority(t *testing.T) {
	// .jobsearch-JobInfoHeader-title appears first in the document, but h1
	// has higher priority.
	srv := serve(t, `<html><body>
		<div class="jobsearch-JobInfoHeader-title">Wrong Title</div>
		<h1>Right Title</h1>
		<div class="job-description">A description.</div>
	</body></html>`)

	j, err := FetchJob(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.Title != "Right Title" {
		t.Fatalf("expected the higher-priority selector to win, got %q", j.Title)
	}
}

func TestFetchJobBodyFallbackAndUnknownCompany(t *testing.T) {
	srv := serve(t, `<html><body>
		<h1>Developer</h1>
		<p>Some page text describing the role at length.</p>
	</body></html>`)

	j, err := FetchJob(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if j.Company != "Unknown Company" {
		t.Fatalf("expected unknown-company default, got %q", j.Company)
	}
	if j.Description == "" {
		t.Fatalf("expected body text fallback for the description")
	}
}

func TestFetchJobIncompletePage(t *testing.T) {
	srv := serve(t, `<html><body></body></html>`)

	_, err := FetchJob(srv.URL, nil)
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestFetchJobHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	if _, err := FetchJob(srv.URL, nil); err == nil {
		t.Fatalf("expected an error for a 404 page")
	}
}
