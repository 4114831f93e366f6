package signups

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stashspace/core"
	"stashspace/handlers/api"
	"stashspace/stores/memory"
)

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestCreateBusinessSignup(t *testing.T) {
	h := New(memory.NewSignupStore(), true)

	rec := postJSON(t, h.Create, `{
		"userType": "business",
		"businessName": "Acme Goods",
		"email": "ops@acme.test",
		"phone": "555-0100",
		"orderVolume": "100-500"
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var resp api.SignupResponse
	decodeBody(t, rec, &resp)
	if !resp.Success {
		t.Fatal("success = false, want true")
	}
	if resp.Message != "business signup successful" {
		t.Fatalf("message = %q, want %q", resp.Message, "business signup successful")
	}
	if resp.ID == "" {
		t.Fatal("id is empty")
	}
}

func TestCreateProviderSignup(t *testing.T) {
	h := New(memory.NewSignupStore(), true)

	rec := postJSON(t, h.Create, `{
		"userType": "provider",
		"name": "Jane Host",
		"email": "jane@host.test",
		"phone": "555-0100",
		"address": "1 Warehouse Way",
		"spaceSize": 500,
		"spaceType": "warehouse",
		"availability": "weekdays"
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp api.SignupResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "provider signup successful" {
		t.Fatalf("message = %q, want %q", resp.Message, "provider signup successful")
	}
}

func TestCreateAcceptsURLEncodedForm(t *testing.T) {
	store := memory.NewSignupStore()
	h := New(store, true)

	form := "userType=business&businessName=Acme+Goods&email=ops%40acme.test"
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	records, err := store.ListBusinesses(context.Background())
	if err != nil {
		t.Fatalf("ListBusinesses() = %v, want nil", err)
	}
	if len(records) != 1 || records[0].BusinessName != "Acme Goods" {
		t.Fatalf("records = %+v, want one Acme Goods signup", records)
	}
}

func TestCreateRejectsUnknownUserType(t *testing.T) {
	store := memory.NewSignupStore()
	h := New(store, true)

	rec := postJSON(t, h.Create, `{"userType": "admin", "email": "x@y.test"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp api.ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Success {
		t.Fatal("success = true, want false")
	}
	if resp.Message != "Invalid user type specified" {
		t.Fatalf("message = %q, want %q", resp.Message, "Invalid user type specified")
	}

	for kind, count := range collectionCounts(t, store) {
		if count != 0 {
			t.Fatalf("%s collection has %d records, want 0", kind, count)
		}
	}
}

func TestCreateRejectsMissingRequiredField(t *testing.T) {
	store := memory.NewSignupStore()
	h := New(store, true)

	rec := postJSON(t, h.Create, `{"userType": "business", "businessName": "Acme Goods"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp api.ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Success {
		t.Fatal("success = true, want false")
	}
	if !strings.Contains(resp.Error, "email") {
		t.Fatalf("error detail = %q, want it to name the missing field", resp.Error)
	}

	if counts := collectionCounts(t, store); counts["business"] != 0 {
		t.Fatalf("business collection has %d records, want 0", counts["business"])
	}
}

func TestCreateHidesDetailWhenNotExposed(t *testing.T) {
	h := New(memory.NewSignupStore(), false)

	rec := postJSON(t, h.Create, `{"userType": "business"}`)

	var resp api.ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Error != "" {
		t.Fatalf("error detail = %q, want empty in production mode", resp.Error)
	}
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	h := New(memory.NewSignupStore(), true)

	rec := postJSON(t, h.Create, `{"userType": "business",`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp api.ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Invalid request body" {
		t.Fatalf("message = %q, want %q", resp.Message, "Invalid request body")
	}
}

type failingStore struct {
	core.SignupStore
}

func (failingStore) CreateBusiness(ctx context.Context, signup *core.BusinessSignup) (string, error) {
	return "", errors.New("disk full")
}

func (failingStore) ListBusinesses(ctx context.Context) ([]core.BusinessSignup, error) {
	return nil, errors.New("disk full")
}

func TestCreateReportsStoreFailure(t *testing.T) {
	h := New(failingStore{}, true)

	rec := postJSON(t, h.Create, `{"userType": "business", "businessName": "Acme Goods", "email": "ops@acme.test"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var resp api.ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Error processing business signup" {
		t.Fatalf("message = %q, want %q", resp.Message, "Error processing business signup")
	}
	if !strings.Contains(resp.Error, "disk full") {
		t.Fatalf("error detail = %q, want store error", resp.Error)
	}
}

func TestListBusinessesEnvelope(t *testing.T) {
	store := memory.NewSignupStore()
	h := New(store, true)

	for _, name := range []string{"Alpha", "Bravo"} {
		if _, err := store.CreateBusiness(context.Background(), &core.BusinessSignup{BusinessName: name, Email: name + "@acme.test"}); err != nil {
			t.Fatalf("CreateBusiness(%s) = %v, want nil", name, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/businesses", nil)
	rec := httptest.NewRecorder()
	h.ListBusinesses(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp struct {
		Success bool                  `json:"success"`
		Count   int                   `json:"count"`
		Data    []core.BusinessSignup `json:"data"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Count != 2 {
		t.Fatalf("envelope = {success: %v, count: %d}, want {true, 2}", resp.Success, resp.Count)
	}
	if resp.Data[0].BusinessName != "Bravo" || resp.Data[1].BusinessName != "Alpha" {
		t.Fatalf("order = [%s %s], want newest first", resp.Data[0].BusinessName, resp.Data[1].BusinessName)
	}
}

func TestListBusinessesEmptyCollection(t *testing.T) {
	h := New(memory.NewSignupStore(), true)

	req := httptest.NewRequest(http.MethodGet, "/businesses", nil)
	rec := httptest.NewRecorder()
	h.ListBusinesses(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"data":[]`) {
		t.Fatalf("body = %s, want empty data array", body)
	}
	if !strings.Contains(body, `"count":0`) {
		t.Fatalf("body = %s, want count 0", body)
	}
}

func TestListBusinessesReportsStoreFailure(t *testing.T) {
	h := New(failingStore{}, true)

	req := httptest.NewRequest(http.MethodGet, "/businesses", nil)
	rec := httptest.NewRecorder()
	h.ListBusinesses(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var resp api.ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Error fetching business signups" {
		t.Fatalf("message = %q, want %q", resp.Message, "Error fetching business signups")
	}
}

func collectionCounts(t *testing.T, store core.SignupStore) map[string]int {
	t.Helper()
	businesses, err := store.ListBusinesses(context.Background())
	if err != nil {
		t.Fatalf("ListBusinesses() = %v, want nil", err)
	}
	providers, err := store.ListProviders(context.Background())
	if err != nil {
		t.Fatalf("ListProviders() = %v, want nil", err)
	}
	return map[string]int{"business": len(businesses), "provider": len(providers)}
}
