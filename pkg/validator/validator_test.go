package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/equipstore/pkg/httpx"
	pkgvalidator "github.com/ghuser/equipstore/pkg/validator"
)

type sampleStruct struct {
	Name       string `validate:"required,notblank,max=10"`
	LowerBound *int   `validate:"omitempty,min=0"`
	Format     string `validate:"omitempty,oneof=text json"`
}

func intPtr(n int) *int { return &n }

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{Name: "Hammer", LowerBound: intPtr(0), Format: "json"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input sampleStruct
		field string
		want  string
	}{
		{"required", sampleStruct{}, "Name", "This field is required"},
		{"blank", sampleStruct{Name: "   "}, "Name", "Must not be blank"},
		{"string max", sampleStruct{Name: "12345678901"}, "Name", "Maximum length is 10"},
		{"numeric min", sampleStruct{Name: "Saw", LowerBound: intPtr(-1)}, "LowerBound", "Must be at least 0"},
		{"oneof", sampleStruct{Name: "Saw", Format: "xml"}, "Format", "Must be one of: text json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&tt.input))
			if m[tt.field] != tt.want {
				t.Errorf("%s message: got %q, want %q (all: %v)", tt.field, m[tt.field], tt.want, m)
			}
		})
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type registerReq struct {
	Name   string `json:"name"   validate:"required,notblank,max=255"`
	Amount int    `json:"amount"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"name":"Hammer","amount":10}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[registerReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Name != "Hammer" || req.Amount != 10 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[registerReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":3}`))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[registerReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing name")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"name"`) {
		t.Errorf("expected json field name in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_bodyTooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", 64) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	var got bool
	httpx.RequestBodyLimit(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, got = pkgvalidator.ValidateRequest[registerReq](w, r)
	})).ServeHTTP(w, r)

	if got {
		t.Fatal("expected ok=false for oversized body")
	}
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}
