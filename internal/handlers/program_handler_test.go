package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/models"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/repository"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubProgramService struct {
	createResult    *models.GymProgram
	createErr       error
	listResult      []models.GymProgram
	listErr         error
	getResult       *models.GymProgram
	getErr          error
	updateResult    *models.GymProgram
	updateErr       error
	deleteErr       error
	lastCreateInput services.ProgramFields
	lastID          string
	lastPatch       services.ProgramPatch
	lastDeleteName  string
	deleteCalled    bool
}

func (s *stubProgramService) CreateProgram(
	_ context.Context,
	input services.ProgramFields,
) (*models.GymProgram, error) {
	s.lastCreateInput = input
	return s.createResult, s.createErr
}

func (s *stubProgramService) ListPrograms(_ context.Context) ([]models.GymProgram, error) {
	return s.listResult, s.listErr
}

func (s *stubProgramService) GetProgram(_ context.Context, id string) (*models.GymProgram, error) {
	s.lastID = id
	return s.getResult, s.getErr
}

func (s *stubProgramService) UpdateProgram(
	_ context.Context,
	id string,
	patch services.ProgramPatch,
) (*models.GymProgram, error) {
	s.lastID = id
	s.lastPatch = patch
	return s.updateResult, s.updateErr
}

func (s *stubProgramService) DeleteProgramByName(_ context.Context, name string) (*models.GymProgram, error) {
	s.deleteCalled = true
	s.lastDeleteName = name
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return &models.GymProgram{ID: "1", Name: name}, nil
}

func newProgramTestApp(service *stubProgramService) *fiber.App {
	handler := NewProgramHandler(service, nil)

	app := fiber.New()
	programs := app.Group("/api/gym-programs")
	programs.Post("/create", handler.CreateProgram)
	programs.Get("/", handler.ListPrograms)
	programs.Get("/:id", handler.GetProgram)
	programs.Put("/update/:id", handler.UpdateProgram)
	programs.Delete("/delete-by-name", handler.DeleteProgramByName)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateProgramReturnsCreatedProgram(t *testing.T) {
	service := &stubProgramService{
		createResult: &models.GymProgram{
			ID:             "1234",
			Name:           "test",
			FocusBodyPart:  "upper",
			Intensity:      "mild",
			Difficulty:     "beginner",
			TargetAudience: "teenagers",
			Reps:           1,
			IsActive:       true,
		},
	}
	app := newProgramTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/gym-programs/create",
		`{"name":"Test","focusBodyPart":"upper","intensity":"mild","difficulty":"beginner","targetAudience":"teenagers","reps":1}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastCreateInput.Name != "Test" {
		t.Fatalf("expected raw name forwarded, got %q", service.lastCreateInput.Name)
	}
	if service.lastCreateInput.Reps == nil || *service.lastCreateInput.Reps != 1 {
		t.Fatalf("expected reps 1 forwarded, got %v", service.lastCreateInput.Reps)
	}
	if service.lastCreateInput.IsActive != nil {
		t.Fatalf("expected absent isActive to stay nil")
	}

	var payload struct {
		Message string         `json:"message"`
		Program map[string]any `json:"program"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Message != "Program created successfully!" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
	if id, ok := payload.Program["id"].(string); !ok || id != "1234" {
		t.Fatalf("expected string id, got %#v", payload.Program["id"])
	}
	if payload.Program["isActive"] != true {
		t.Fatalf("expected isActive true, got %#v", payload.Program["isActive"])
	}
}

func TestCreateProgramTreatsWrongTypesAsMissing(t *testing.T) {
	service := &stubProgramService{
		createErr: &services.ValidationError{Messages: []string{services.MsgInvalidReps}},
	}
	app := newProgramTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/gym-programs/create",
		`{"name":42,"focusBodyPart":"upper","intensity":"mild","difficulty":"beginner","targetAudience":"teenagers","reps":"invalid"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if service.lastCreateInput.Name != "" {
		t.Fatalf("expected non-string name to be dropped, got %q", service.lastCreateInput.Name)
	}
	if service.lastCreateInput.Reps != nil {
		t.Fatalf("expected non-numeric reps to be dropped")
	}

	var payload struct {
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(payload.Errors) != 1 || payload.Errors[0] != services.MsgInvalidReps {
		t.Fatalf("unexpected errors: %v", payload.Errors)
	}
}

func TestCreateProgramRejectsFractionalReps(t *testing.T) {
	service := &stubProgramService{createErr: &services.ValidationError{Messages: []string{services.MsgInvalidReps}}}
	app := newProgramTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/gym-programs/create", `{"name":"x","reps":2.5}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if service.lastCreateInput.Reps != nil {
		t.Fatalf("expected fractional reps to be dropped, got %d", *service.lastCreateInput.Reps)
	}
}

func TestCreateProgramMapsPersistFailureTo500(t *testing.T) {
	service := &stubProgramService{createErr: errors.New("disk full")}
	app := newProgramTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/gym-programs/create", `{"name":"x"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestListProgramsReturnsEmptyArray(t *testing.T) {
	app := newProgramTestApp(&stubProgramService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/gym-programs/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Programs []map[string]any `json:"programs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Programs == nil || len(payload.Programs) != 0 {
		t.Fatalf("expected empty programs array, got %v", payload.Programs)
	}
}

func TestGetProgramReturnsNotFound(t *testing.T) {
	service := &stubProgramService{getErr: repository.ErrNotFound}
	app := newProgramTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/gym-programs/123", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if service.lastID != "123" {
		t.Fatalf("expected id 123 forwarded, got %q", service.lastID)
	}
}

func TestUpdateProgramForwardsPatch(t *testing.T) {
	service := &stubProgramService{updateResult: &models.GymProgram{ID: "9", Name: "legs", Reps: 12}}
	app := newProgramTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/gym-programs/update/9", `{"reps":12,"isActive":false}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastID != "9" {
		t.Fatalf("expected id 9, got %q", service.lastID)
	}
	if service.lastPatch.Reps == nil || *service.lastPatch.Reps != 12 {
		t.Fatalf("expected reps patch, got %+v", service.lastPatch)
	}
	if service.lastPatch.IsActive == nil || *service.lastPatch.IsActive {
		t.Fatalf("expected isActive=false patch, got %+v", service.lastPatch)
	}
	if service.lastPatch.Name != nil {
		t.Fatalf("expected name to be left out of the patch")
	}
}

func TestUpdateProgramReturnsNotFound(t *testing.T) {
	service := &stubProgramService{updateErr: repository.ErrNotFound}
	app := newProgramTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/gym-programs/update/404", `{"reps":3}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteProgramByName(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		deleteErr  error
		wantStatus int
		wantCalled bool
	}{
		{"deletes", `{"name":"Test Program Unique"}`, nil, http.StatusOK, true},
		{"missing name", `{}`, nil, http.StatusBadRequest, false},
		{"non-string name", `{"name":7}`, nil, http.StatusBadRequest, false},
		{"not found", `{"name":"ghost"}`, repository.ErrNotFound, http.StatusNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubProgramService{deleteErr: tt.deleteErr}
			app := newProgramTestApp(service)

			resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/gym-programs/delete-by-name", tt.body))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if service.deleteCalled != tt.wantCalled {
				t.Fatalf("expected delete called = %v", tt.wantCalled)
			}
		})
	}
}

func TestListProgramsPaginatesWhenRequested(t *testing.T) {
	programs := make([]models.GymProgram, 0, 12)
	for i := 0; i < 12; i++ {
		programs = append(programs, models.GymProgram{ID: string(rune('a' + i))})
	}
	app := newProgramTestApp(&stubProgramService{listResult: programs})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/gym-programs/?page=2&limit=5", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Programs   []models.GymProgram   `json:"programs"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(payload.Programs) != 5 || payload.Programs[0].ID != "f" {
		t.Fatalf("unexpected page: %+v", payload.Programs)
	}
	if payload.Pagination.Total != 12 || payload.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", payload.Pagination)
	}
}

func TestListProgramsPastLastPageIsEmpty(t *testing.T) {
	app := newProgramTestApp(&stubProgramService{listResult: []models.GymProgram{{ID: "1"}}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/gym-programs/?page=9&limit=500", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Programs   []models.GymProgram   `json:"programs"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(payload.Programs) != 0 {
		t.Fatalf("expected empty page, got %+v", payload.Programs)
	}
	if payload.Pagination.Limit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, payload.Pagination.Limit)
	}
}

func TestListProgramsHugePageIsEmpty(t *testing.T) {
	app := newProgramTestApp(&stubProgramService{listResult: []models.GymProgram{{ID: "1"}, {ID: "2"}}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/gym-programs/?page=9223372036854775807&limit=50", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Programs   []models.GymProgram   `json:"programs"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Programs == nil || len(payload.Programs) != 0 {
		t.Fatalf("expected empty programs array, got %v", payload.Programs)
	}
	if payload.Pagination.Total != 2 {
		t.Fatalf("unexpected pagination: %+v", payload.Pagination)
	}
}

func TestPaginateBoundaries(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		req  pageRequest
		want []int
	}{
		{"first page", pageRequest{page: 1, limit: 2}, []int{1, 2}},
		{"partial last page", pageRequest{page: 3, limit: 2}, []int{5}},
		{"exactly past end", pageRequest{page: 4, limit: 2}, []int{}},
		{"max int page", pageRequest{page: math.MaxInt, limit: maxPageLimit}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := paginate(items, tt.req)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
