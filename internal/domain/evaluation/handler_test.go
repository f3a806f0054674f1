package evaluation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthobs/healthobs/internal/domain/reference"
	"github.com/healthobs/healthobs/internal/domain/taxonomy"
)

func newTestHandler(t *testing.T) (*Handler, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	svc := NewService(repo, taxonomy.Default(), reference.Default())
	return NewHandler(svc), repo
}

func seedEvaluation(t *testing.T, repo *mockRepo) *Evaluation {
	t.Helper()
	ev := validEvaluation()
	if err := repo.Create(context.Background(), ev); err != nil {
		t.Fatalf("seeding evaluation: %v", err)
	}
	return ev
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func TestCreateEvaluation(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodPost, "/evaluations", `{"person_age":34,"person_sex":"female"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateEvaluation(c); err != nil {
		t.Fatalf("CreateEvaluation() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}

	var created Evaluation
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected id in response")
	}
}

func TestCreateEvaluation_MissingAge(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodPost, "/evaluations", `{"person_sex":"female"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateEvaluation(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestGetEvaluation_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetEvaluation(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestGetEvaluation_BadID(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetEvaluation(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestSetMeasurementRoute(t *testing.T) {
	h, repo := newTestHandler(t)
	ev := seedEvaluation(t, repo)
	e := echo.New()

	req := jsonRequest(http.MethodPut, "/", `{"value":"5.2","date":"2026-08-10"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "metricId")
	c.SetParamValues(ev.ID.String(), "hba1c")

	if err := h.SetMeasurement(c); err != nil {
		t.Fatalf("SetMeasurement() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if m, ok := repo.store[ev.ID].Measurement("hba1c"); !ok || m.Value != "5.2" {
		t.Errorf("measurement not stored, got %+v", m)
	}
}

func TestGetState(t *testing.T) {
	h, repo := newTestHandler(t)
	ev := seedEvaluation(t, repo)
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	if err := h.GetState(c); err != nil {
		t.Fatalf("GetState() error: %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if _, ok := body["systems"]; !ok {
		t.Error("expected systems in state payload")
	}
	if _, ok := body["summary"]; !ok {
		t.Error("expected summary in state payload")
	}
}

func TestGetReport_PreconditionFailed(t *testing.T) {
	h, repo := newTestHandler(t)
	ev := seedEvaluation(t, repo)
	repo.store[ev.ID].PersonSex = nil
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	err := h.GetReport(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusPreconditionFailed {
		t.Errorf("expected 412, got %v", err)
	}
}

func TestGetReport_OK(t *testing.T) {
	h, repo := newTestHandler(t)
	ev := seedEvaluation(t, repo)
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	if err := h.GetReport(c); err != nil {
		t.Fatalf("GetReport() error: %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	for _, key := range []string{"overview", "attention", "strengths", "gaps", "systems", "guidance"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected %q in report payload", key)
		}
	}
}

func TestListEvaluations(t *testing.T) {
	h, repo := newTestHandler(t)
	seedEvaluation(t, repo)
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/evaluations?limit=10", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListEvaluations(c); err != nil {
		t.Fatalf("ListEvaluations() error: %v", err)
	}

	var body struct {
		Data  []Summary `json:"data"`
		Total int       `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if body.Total != 1 || len(body.Data) != 1 {
		t.Errorf("list = %+v, want one summary", body)
	}
	if body.Data[0].MeasurementCount != 1 {
		t.Errorf("measurement_count = %d, want 1", body.Data[0].MeasurementCount)
	}
}

func TestDeleteEvaluation(t *testing.T) {
	h, repo := newTestHandler(t)
	ev := seedEvaluation(t, repo)
	e := echo.New()

	req := jsonRequest(http.MethodDelete, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	if err := h.DeleteEvaluation(c); err != nil {
		t.Fatalf("DeleteEvaluation() error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if _, ok := repo.store[ev.ID]; ok {
		t.Error("evaluation still present after delete")
	}
}

func TestGetTaxonomy(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/taxonomy", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetTaxonomy(c); err != nil {
		t.Fatalf("GetTaxonomy() error: %v", err)
	}

	var body struct {
		Systems []taxonomy.System `json:"systems"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding taxonomy: %v", err)
	}
	if len(body.Systems) != 6 {
		t.Errorf("expected 6 systems, got %d", len(body.Systems))
	}
}
