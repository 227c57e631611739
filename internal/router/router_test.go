package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-backend/internal/domain/users"
	"pet-adoption-backend/internal/router"
)

func newTestServer(t *testing.T) (*httptest.Server, *router.Stores) {
	t.Helper()

	stores := router.NewMemoryStores()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // modo dev: X-Debug-User-ID
		Stores:       stores,
	}))
	t.Cleanup(ts.Close)

	seed := []users.User{
		{ID: "user-1", Username: "ana", Email: "ana@test.com", Role: users.RoleUser},
		{ID: "staff-1", Username: "vet", Email: "vet@test.com", Role: users.RoleServiceStaff},
	}
	for _, u := range seed {
		if err := stores.Users.Create(context.Background(), u); err != nil {
			t.Fatalf("seed user %s: %v", u.ID, err)
		}
	}

	return ts, stores
}

func doReq(t *testing.T, baseURL, method, path, userID string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func doMultipart(t *testing.T, baseURL, path, userID string, fields map[string]string) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func idFrom(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.ID == "" {
		t.Fatalf("no id in response: %s", string(body))
	}
	return out.ID
}

type formBody struct {
	ID               string   `json:"id"`
	Status           string   `json:"status"`
	ApprovedDate     *string  `json:"approved_date"`
	NextCheckDate    *string  `json:"next_check_date"`
	PeriodicCheckIDs []string `json:"periodic_check_ids"`
}

func TestHTTP_EndToEnd_AdoptionWorkflow(t *testing.T) {
	ts, _ := newTestServer(t)

	// 1) Staff registra mascota y publica el post
	st, body := doMultipart(t, ts.URL, "/pets", "staff-1", map[string]string{
		"name":        "Milo",
		"breed":       "mestizo",
		"age":         "3",
		"description": "tranquilo",
	})
	if st != http.StatusCreated {
		t.Fatalf("create pet: expected 201, got %d body=%s", st, string(body))
	}
	petID := idFrom(t, body)

	st, body = doMultipart(t, ts.URL, "/adoption-posts", "staff-1", map[string]string{
		"pet_id":      petID,
		"title":       "Milo busca hogar",
		"description": "perro mestizo de 3 años",
	})
	if st != http.StatusCreated {
		t.Fatalf("create post: expected 201, got %d body=%s", st, string(body))
	}
	postID := idFrom(t, body)

	// 2) Sin identidad no se puede postular
	{
		st, _ := doReq(t, ts.URL, "POST", "/adoption-forms", "", map[string]any{
			"adoption_post_id": postID,
			"pet_id":           petID,
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
	}

	// 3) Referencia colgante => 400 identificando cuál
	{
		st, body := doReq(t, ts.URL, "POST", "/adoption-forms", "user-1", map[string]any{
			"adoption_post_id": postID,
			"pet_id":           "missing-pet",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for dangling pet, got %d", st)
		}
		if !bytes.Contains(body, []byte("invalid pet id")) {
			t.Fatalf("expected pet error message, got %s", string(body))
		}
	}

	// 4) Usuario envía el formulario
	st, body = doReq(t, ts.URL, "POST", "/adoption-forms", "user-1", map[string]any{
		"adoption_post_id": postID,
		"pet_id":           petID,
		"adopter": map[string]any{
			"name":  "Ana",
			"email": "ana@test.com",
		},
		"reason": "tengo patio grande",
	})
	if st != http.StatusCreated {
		t.Fatalf("create form: expected 201, got %d body=%s", st, string(body))
	}
	var created formBody
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode form: %v", err)
	}
	if created.Status != "Pending" {
		t.Fatalf("new form status = %s, want Pending", created.Status)
	}
	formID := created.ID

	// 5) Estado inválido => 400 con el mensaje del original
	{
		st, body := doReq(t, ts.URL, "PATCH", "/adoption-forms/"+formID+"/status", "staff-1", map[string]any{
			"status": "Cancelled",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid status, got %d", st)
		}
		if !bytes.Contains(body, []byte("Invalid status value")) {
			t.Fatalf("unexpected body: %s", string(body))
		}
	}

	// 6) Formulario inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/adoption-forms/nope/status", "staff-1", map[string]any{
			"status": "Approved",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown form, got %d", st)
		}
	}

	// 7) Aprobación: la mascota queda adoptada
	{
		st, body := doReq(t, ts.URL, "PATCH", "/adoption-forms/"+formID+"/status", "staff-1", map[string]any{
			"status": "Approved",
		})
		if st != http.StatusOK {
			t.Fatalf("approve: expected 200, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/pets/"+petID, "user-1", nil)
		if st != http.StatusOK {
			t.Fatalf("get pet: %d", st)
		}
		var pet struct {
			IsAdopted bool `json:"is_adopted"`
		}
		if err := json.Unmarshal(body, &pet); err != nil {
			t.Fatalf("decode pet: %v", err)
		}
		if !pet.IsAdopted {
			t.Fatalf("pet should be adopted after approval")
		}
	}

	// 8) Ciclo de chequeos: 1..3 agendan, el 4to cierra, el 5to no cambia nada
	submit := func() formBody {
		st, body := doReq(t, ts.URL, "POST", "/adoption-forms/"+formID+"/checks", "staff-1", map[string]any{
			"status": "Good",
			"notes":  "todo bien",
		})
		if st != http.StatusOK {
			t.Fatalf("submit check: expected 200, got %d body=%s", st, string(body))
		}
		return fetchForm(t, ts.URL, formID)
	}

	f := submit()
	if f.ApprovedDate == nil {
		t.Fatalf("approved_date not set on first check")
	}
	if f.NextCheckDate == nil {
		t.Fatalf("next_check_date not scheduled on first check")
	}

	for i := 2; i <= 3; i++ {
		f = submit()
		if f.NextCheckDate == nil {
			t.Fatalf("next_check_date missing after check %d", i)
		}
	}

	f = submit()
	if f.NextCheckDate != nil {
		t.Fatalf("next_check_date should clear on 4th check, got %v", *f.NextCheckDate)
	}
	if len(f.PeriodicCheckIDs) != 4 {
		t.Fatalf("expected 4 checks, got %d", len(f.PeriodicCheckIDs))
	}

	f = submit()
	if f.NextCheckDate != nil || len(f.PeriodicCheckIDs) != 5 {
		t.Fatalf("5th check should record without scheduling: next=%v checks=%d", f.NextCheckDate, len(f.PeriodicCheckIDs))
	}

	// 9) Listado por remitente
	{
		st, body := doReq(t, ts.URL, "GET", "/adoption-forms/sender/user-1", "user-1", nil)
		if st != http.StatusOK {
			t.Fatalf("list by sender: %d", st)
		}
		var page struct {
			Results      []formBody `json:"results"`
			TotalResults int        `json:"totalResults"`
			Page         int        `json:"page"`
			Limit        int        `json:"limit"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			t.Fatalf("decode page: %v", err)
		}
		if page.TotalResults != 1 || len(page.Results) != 1 {
			t.Fatalf("expected exactly the user form, got total=%d", page.TotalResults)
		}
		if page.Page != 1 || page.Limit != 5 {
			t.Fatalf("pagination defaults not applied: page=%d limit=%d", page.Page, page.Limit)
		}
	}

	// 10) Rechazo: libera la mascota
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/adoption-forms/"+formID+"/status", "staff-1", map[string]any{
			"status": "Rejected",
		})
		if st != http.StatusOK {
			t.Fatalf("reject: expected 200, got %d", st)
		}

		_, body := doReq(t, ts.URL, "GET", "/pets/"+petID, "user-1", nil)
		var pet struct {
			IsAdopted bool `json:"is_adopted"`
			IsAddPost bool `json:"is_add_post"`
		}
		if err := json.Unmarshal(body, &pet); err != nil {
			t.Fatalf("decode pet: %v", err)
		}
		if pet.IsAdopted || pet.IsAddPost {
			t.Fatalf("rejection should release the pet: %+v", pet)
		}
	}
}

func fetchForm(t *testing.T, baseURL, formID string) formBody {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/adoption-forms", "staff-1", nil)
	if st != http.StatusOK {
		t.Fatalf("list forms: %d", st)
	}
	var page struct {
		Results []formBody `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	for _, f := range page.Results {
		if f.ID == formID {
			return f
		}
	}
	t.Fatalf("form %s not in listing", formID)
	return formBody{}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts, _ := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "GET", "/swagger/index.html", "", nil)
	if st != http.StatusOK {
		t.Fatalf("swagger ui: expected 200, got %d", st)
	}
}
