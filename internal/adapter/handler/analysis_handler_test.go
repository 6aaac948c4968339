package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	analysisUsecase "github.com/johnquangdev/meeting-insights/internal/usecase/analysis"
	usecaseerrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"
)

// fakeService returns canned results so handler behavior is tested in
// isolation from the pipeline.
type fakeService struct {
	result     entities.AnalysisResult
	results    []entities.AnalysisResult
	aggregated entities.AggregatedResult
	err        error
}

func (f *fakeService) AnalyzeMeeting(_ context.Context, meeting entities.MeetingRecord, _ analysisUsecase.AnalyzeOptions) (entities.AnalysisResult, error) {
	if f.err != nil {
		return entities.AnalysisResult{}, f.err
	}
	result := f.result
	result.MeetingID = meeting.ID
	return result, nil
}

func (f *fakeService) AnalyzeBatch(_ context.Context, meetings []entities.MeetingRecord, _ analysisUsecase.AnalyzeOptions) ([]entities.AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.results != nil {
		return f.results, nil
	}
	results := make([]entities.AnalysisResult, 0, len(meetings))
	for _, meeting := range meetings {
		result := f.result
		result.MeetingID = meeting.ID
		results = append(results, result)
	}
	return results, nil
}

func (f *fakeService) AnalyzeAggregated(_ context.Context, meetings []entities.MeetingRecord, _ analysisUsecase.AnalyzeOptions) (entities.AggregatedResult, error) {
	if f.err != nil {
		return entities.AggregatedResult{}, f.err
	}
	aggregated := f.aggregated
	aggregated.MeetingCount = len(meetings)
	return aggregated, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return e
}

func doRequest(t *testing.T, e *echo.Echo, h echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func successResult() entities.AnalysisResult {
	version := "2.0"
	return entities.AnalysisResult{
		Status:          entities.AnalysisStatusSuccess,
		Analysis:        "summary text",
		TemplateUsed:    "default",
		TemplateVersion: &version,
		ModelUsed:       "gemini-test",
		TotalStatements: 3,
		Timestamp:       time.Now().UTC(),
	}
}

func TestAnalyzeMeeting_Success(t *testing.T) {
	e := newTestEcho()
	h := NewAnalysisHandler(&fakeService{result: successResult()}, nil, nil, nil)

	body := `{"meeting":{"id":"m-1","title":"Standup","transcript":"[10:00:00] Kim: Hello"}}`
	rec := doRequest(t, e, h.AnalyzeMeeting, http.MethodPost, "/v1/analysis/meetings", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data entities.AnalysisResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Data.MeetingID != "m-1" {
		t.Fatalf("expected meeting id m-1 got %q", resp.Data.MeetingID)
	}
	if resp.Data.TemplateUsed != "default" {
		t.Fatalf("expected template default got %q", resp.Data.TemplateUsed)
	}
}

func TestAnalyzeMeeting_MalformedJSON(t *testing.T) {
	e := newTestEcho()
	h := NewAnalysisHandler(&fakeService{result: successResult()}, nil, nil, nil)

	rec := doRequest(t, e, h.AnalyzeMeeting, http.MethodPost, "/v1/analysis/meetings", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAnalyzeMeeting_BadDateRejected(t *testing.T) {
	e := newTestEcho()
	h := NewAnalysisHandler(&fakeService{result: successResult()}, nil, nil, nil)

	body := `{"meeting":{"id":"m-1","transcript":"x","date":"24-08-2026"}}`
	rec := doRequest(t, e, h.AnalyzeMeeting, http.MethodPost, "/v1/analysis/meetings", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeMeeting_UnknownVersionIs404(t *testing.T) {
	e := newTestEcho()
	svc := &fakeService{err: fmt.Errorf("%w: default@9.9", usecaseerrors.ErrVersionNotFound)}
	h := NewAnalysisHandler(svc, nil, nil, nil)

	body := `{"meeting":{"id":"m-1","transcript":"x"},"version":"9.9"}`
	rec := doRequest(t, e, h.AnalyzeMeeting, http.MethodPost, "/v1/analysis/meetings", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeMeeting_UnknownTemplateIs404(t *testing.T) {
	e := newTestEcho()
	svc := &fakeService{err: fmt.Errorf("%w: nope", usecaseerrors.ErrTemplateNotFound)}
	h := NewAnalysisHandler(svc, nil, nil, nil)

	body := `{"meeting":{"id":"m-1","transcript":"x"},"template":"nope"}`
	rec := doRequest(t, e, h.AnalyzeMeeting, http.MethodPost, "/v1/analysis/meetings", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeBatch_Success(t *testing.T) {
	e := newTestEcho()
	h := NewAnalysisHandler(&fakeService{result: successResult()}, nil, nil, nil)

	body := `{"meetings":[{"id":"m-1","transcript":"a"},{"id":"m-2","transcript":"b"}]}`
	rec := doRequest(t, e, h.AnalyzeBatch, http.MethodPost, "/v1/analysis/meetings/batch", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []entities.AnalysisResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 results got %d", len(resp.Data))
	}
	if resp.Data[0].MeetingID != "m-1" || resp.Data[1].MeetingID != "m-2" {
		t.Fatalf("results out of order: %s / %s", resp.Data[0].MeetingID, resp.Data[1].MeetingID)
	}
}

func TestAnalyzeBatch_EmptyListRejected(t *testing.T) {
	e := newTestEcho()
	h := NewAnalysisHandler(&fakeService{result: successResult()}, nil, nil, nil)

	rec := doRequest(t, e, h.AnalyzeBatch, http.MethodPost, "/v1/analysis/meetings/batch", `{"meetings":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeAggregated_Success(t *testing.T) {
	e := newTestEcho()
	svc := &fakeService{aggregated: entities.AggregatedResult{
		Status:       entities.AnalysisStatusSuccess,
		Analysis:     "combined summary",
		TemplateUsed: "comprehensive_review",
	}}
	h := NewAnalysisHandler(svc, nil, nil, nil)

	body := `{"meetings":[{"id":"m-1","transcript":"a"},{"id":"m-2","transcript":"b"}]}`
	rec := doRequest(t, e, h.AnalyzeAggregated, http.MethodPost, "/v1/analysis/meetings/aggregate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data entities.AggregatedResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Data.MeetingCount != 2 {
		t.Fatalf("expected meeting count 2 got %d", resp.Data.MeetingCount)
	}
	if resp.Data.TemplateUsed != "comprehensive_review" {
		t.Fatalf("unexpected template %q", resp.Data.TemplateUsed)
	}
}

func TestHistory_NoRepositoryIs404(t *testing.T) {
	e := newTestEcho()
	h := NewAnalysisHandler(&fakeService{result: successResult()}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/analysis/meetings/m-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m-1")

	if err := h.History(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rec.Code, rec.Body.String())
	}
}

// fakeMeetingRepo records upserts and serves lookups from a fixed map so the
// persistence path is tested without a database.
type fakeMeetingRepo struct {
	upserted []*entities.Meeting
	stored   map[string]*entities.Meeting
}

func (f *fakeMeetingRepo) Create(_ context.Context, meeting *entities.Meeting) error {
	return f.Upsert(context.Background(), meeting)
}

func (f *fakeMeetingRepo) Upsert(_ context.Context, meeting *entities.Meeting) error {
	f.upserted = append(f.upserted, meeting)
	return nil
}

func (f *fakeMeetingRepo) FindByID(_ context.Context, _ uuid.UUID) (*entities.Meeting, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMeetingRepo) FindByExternalID(_ context.Context, externalID string) (*entities.Meeting, error) {
	if meeting, ok := f.stored[externalID]; ok {
		return meeting, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMeetingRepo) FindByDateRange(_ context.Context, _, _ time.Time) ([]entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepo) List(_ context.Context, _, _ int) ([]entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func TestAnalyzeMeeting_PersistsMeeting(t *testing.T) {
	e := newTestEcho()
	repo := &fakeMeetingRepo{}
	h := NewAnalysisHandler(&fakeService{result: successResult()}, repo, nil, nil)

	body := `{"meeting":{"id":"m-1","title":"Standup","transcript":"[10:00:00] Kim: Hello"}}`
	rec := doRequest(t, e, h.AnalyzeMeeting, http.MethodPost, "/v1/analysis/meetings", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	if len(repo.upserted) != 1 {
		t.Fatalf("expected 1 upserted meeting got %d", len(repo.upserted))
	}
	if repo.upserted[0].ExternalID != "m-1" {
		t.Fatalf("expected external id m-1 got %q", repo.upserted[0].ExternalID)
	}
	if repo.upserted[0].Title != "Standup" {
		t.Fatalf("expected title Standup got %q", repo.upserted[0].Title)
	}
}

func TestAnalyzeBatch_PersistsEachMeeting(t *testing.T) {
	e := newTestEcho()
	repo := &fakeMeetingRepo{}
	h := NewAnalysisHandler(&fakeService{result: successResult()}, repo, nil, nil)

	body := `{"meetings":[{"id":"m-1","transcript":"a"},{"id":"m-2","transcript":"b"}]}`
	rec := doRequest(t, e, h.AnalyzeBatch, http.MethodPost, "/v1/analysis/meetings/batch", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	if len(repo.upserted) != 2 {
		t.Fatalf("expected 2 upserted meetings got %d", len(repo.upserted))
	}
	if repo.upserted[0].ExternalID != "m-1" || repo.upserted[1].ExternalID != "m-2" {
		t.Fatalf("unexpected external ids: %s / %s", repo.upserted[0].ExternalID, repo.upserted[1].ExternalID)
	}
}

func doReanalyze(t *testing.T, h *Analysis, meetingID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/v1/analysis/meetings/"+meetingID+"/reanalyze", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(meetingID)
	if err := h.Reanalyze(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestReanalyze_UsesStoredMeeting(t *testing.T) {
	stored := entities.NewMeeting(entities.MeetingRecord{
		ID:         "m-1",
		Title:      "Retro",
		Transcript: "[10:00:00] Kim: Hello",
	})
	repo := &fakeMeetingRepo{stored: map[string]*entities.Meeting{"m-1": stored}}
	h := NewAnalysisHandler(&fakeService{result: successResult()}, repo, nil, nil)

	rec := doReanalyze(t, h, "m-1", `{"template":"default"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data entities.AnalysisResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Data.MeetingID != "m-1" {
		t.Fatalf("expected meeting id m-1 got %q", resp.Data.MeetingID)
	}
}

func TestReanalyze_UnknownMeetingIs404(t *testing.T) {
	repo := &fakeMeetingRepo{stored: map[string]*entities.Meeting{}}
	h := NewAnalysisHandler(&fakeService{result: successResult()}, repo, nil, nil)

	rec := doReanalyze(t, h, "missing", `{}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReanalyze_NoRepositoryIs404(t *testing.T) {
	h := NewAnalysisHandler(&fakeService{result: successResult()}, nil, nil, nil)

	rec := doReanalyze(t, h, "m-1", `{}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rec.Code, rec.Body.String())
	}
}
