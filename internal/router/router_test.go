package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	filemem "vetco/internal/adapters/files/memory"
	"vetco/internal/platform/config"
	"vetco/internal/ports/auth"
	"vetco/internal/router"
)

// fakeAuthenticator evita la red: el user id sale del email.
type fakeAuthenticator struct{}

func (fakeAuthenticator) SignUp(_ context.Context, in auth.SignUpInput) (auth.Session, error) {
	return auth.Session{UserID: "uid-" + in.Email, Email: in.Email, ExpiresIn: 3600}, nil
}

func (fakeAuthenticator) SignIn(_ context.Context, email, _ string) (auth.Session, error) {
	return auth.Session{AccessToken: "tok-" + email, UserID: "uid-" + email, Email: email, ExpiresIn: 3600}, nil
}

func (fakeAuthenticator) SignOut(context.Context, string) error          { return nil }
func (fakeAuthenticator) SendPasswordReset(context.Context, string) error { return nil }
func (fakeAuthenticator) UpdatePassword(context.Context, string, string) error {
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Config: config.Config{
			AvatarsBucket: "avatars",
			MaxUploadMB:   5,
		},
		Authenticator: fakeAuthenticator{},
		AuthVerifier:  nil, // modo dev: X-Debug-User-ID
		ObjectStore:   filemem.NewStore(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

// doReq no sigue redirects: los guards responden 303 y queremos verlos.
func doReq(t *testing.T, baseURL, method, path, userID string, payload any) (int, http.Header, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header, raw
}

func register(t *testing.T, baseURL, email, role string) string {
	t.Helper()

	st, _, body := doReq(t, baseURL, "POST", "/register", "", map[string]any{
		"email":            email,
		"password":         "longenough",
		"confirm_password": "longenough",
		"full_name":        "Test " + role,
		"role":             role,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}
	return "uid-" + email
}

func createAnimal(t *testing.T, baseURL, farmerID string, payload map[string]any) string {
	t.Helper()

	st, _, body := doReq(t, baseURL, "POST", "/animals", farmerID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}
	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func TestHTTP_EndToEnd_FarmerFlow(t *testing.T) {
	ts := newTestServer(t)

	farmerID := register(t, ts.URL, "farmer@test", "farmer")

	// 1) age "" ausente, "24" => 24
	animalID := createAnimal(t, ts.URL, farmerID, map[string]any{
		"name": "Bella",
		"type": "cattle",
		"age":  "",
	})
	{
		st, _, body := doReq(t, ts.URL, "GET", "/animals/"+animalID, farmerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get animal, got %d body=%s", st, string(body))
		}
		var a struct {
			Age          *int   `json:"age"`
			HealthStatus string `json:"health_status"`
		}
		_ = json.Unmarshal(body, &a)
		if a.Age != nil {
			t.Fatalf("empty age must stay absent, got %v", *a.Age)
		}
		if a.HealthStatus != "healthy" {
			t.Fatalf("expected default health_status healthy, got %q", a.HealthStatus)
		}
	}
	{
		st, _, body := doReq(t, ts.URL, "PUT", "/animals/"+animalID, farmerID, map[string]any{
			"name":   "Bella",
			"type":   "cattle",
			"age":    "24",
			"weight": "350.5",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update animal, got %d body=%s", st, string(body))
		}
		var a struct {
			Age    *int     `json:"age"`
			Weight *float64 `json:"weight"`
		}
		_ = json.Unmarshal(body, &a)
		if a.Age == nil || *a.Age != 24 {
			t.Fatalf("expected age 24, got %v", a.Age)
		}
		if a.Weight == nil || *a.Weight != 350.5 {
			t.Fatalf("expected weight 350.5, got %v", a.Weight)
		}
	}

	// 2) age no numérico => 400
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/animals", farmerID, map[string]any{
			"name": "Rex",
			"age":  "two years",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for non-numeric age, got %d", st)
		}
	}

	// 3) otro farmer no ve ni borra el animal
	otherID := register(t, ts.URL, "other@test", "farmer")
	{
		st, _, _ := doReq(t, ts.URL, "GET", "/animals/"+animalID, otherID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 foreign get, got %d", st)
		}
		st, _, _ = doReq(t, ts.URL, "DELETE", "/animals/"+animalID, otherID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 foreign delete, got %d", st)
		}
	}

	// 4) delete exactamente una vez y desaparece del listado
	{
		st, _, _ := doReq(t, ts.URL, "DELETE", "/animals/"+animalID, farmerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d", st)
		}
		st, _, _ = doReq(t, ts.URL, "DELETE", "/animals/"+animalID, farmerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 second delete, got %d", st)
		}

		st, _, body := doReq(t, ts.URL, "GET", "/animals", farmerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var list []json.RawMessage
		_ = json.Unmarshal(body, &list)
		if len(list) != 0 {
			t.Fatalf("deleted animal still listed: %s", string(body))
		}
	}
}

func TestHTTP_HealthRecords_ScopingAndVetAccess(t *testing.T) {
	ts := newTestServer(t)

	farmerID := register(t, ts.URL, "farmer@test", "farmer")
	vetID := register(t, ts.URL, "vet@test", "vet")

	animalA := createAnimal(t, ts.URL, farmerID, map[string]any{"name": "Bella", "type": "cattle"})
	animalB := createAnimal(t, ts.URL, farmerID, map[string]any{"name": "Luna", "type": "goat"})

	// record en A, con cost como texto
	{
		st, _, body := doReq(t, ts.URL, "POST", "/animals/"+animalA+"/records", farmerID, map[string]any{
			"title": "Vaccination",
			"cost":  "120.50",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create record, got %d body=%s", st, string(body))
		}
		var rec struct {
			Cost *float64 `json:"cost"`
		}
		_ = json.Unmarshal(body, &rec)
		if rec.Cost == nil || *rec.Cost != 120.50 {
			t.Fatalf("expected cost 120.50, got %v", rec.Cost)
		}
	}

	// scoping: el record de A nunca lista bajo B
	{
		st, _, body := doReq(t, ts.URL, "GET", "/animals/"+animalB+"/records", farmerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list records B, got %d", st)
		}
		var list []json.RawMessage
		_ = json.Unmarshal(body, &list)
		if len(list) != 0 {
			t.Fatalf("record of animal A leaked into B: %s", string(body))
		}
	}

	// el vet puede leer los records de cualquier animal, no mutarlos
	{
		st, _, body := doReq(t, ts.URL, "GET", "/animals/"+animalA+"/records", vetID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 vet read, got %d body=%s", st, string(body))
		}
		st, _, _ = doReq(t, ts.URL, "POST", "/animals/"+animalA+"/records", vetID, map[string]any{
			"title": "Should fail",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 vet create, got %d", st)
		}
	}

	// vista transversal del vet
	{
		st, _, body := doReq(t, ts.URL, "GET", "/records/recent", vetID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 recent records, got %d", st)
		}
		var list []json.RawMessage
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 {
			t.Fatalf("expected 1 recent record, got %d", len(list))
		}

		// un farmer no entra a la vista transversal
		st, _, _ = doReq(t, ts.URL, "GET", "/records/recent", farmerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 farmer on recent records, got %d", st)
		}
	}

	// borrar el animal purga sus records
	{
		st, _, _ := doReq(t, ts.URL, "DELETE", "/animals/"+animalA, farmerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete animal, got %d", st)
		}
		st, _, body := doReq(t, ts.URL, "GET", "/records/recent", vetID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 recent records, got %d", st)
		}
		var list []json.RawMessage
		_ = json.Unmarshal(body, &list)
		if len(list) != 0 {
			t.Fatalf("records of a deleted animal must be purged: %s", string(body))
		}
	}
}

func TestHTTP_DashboardRoleResolution(t *testing.T) {
	ts := newTestServer(t)

	farmerID := register(t, ts.URL, "farmer@test", "farmer")
	vetID := register(t, ts.URL, "vet@test", "vet")
	adminID := register(t, ts.URL, "admin@test", "admin")

	cases := []struct {
		userID string
		want   string
	}{
		{farmerID, "/dashboard/farmer"},
		{vetID, "/dashboard/vet"},
		{adminID, "/dashboard/admin"},
	}
	for _, tc := range cases {
		st, h, _ := doReq(t, ts.URL, "GET", "/dashboard", tc.userID, nil)
		if st != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", tc.userID, st)
		}
		if loc := h.Get("Location"); loc != tc.want {
			t.Fatalf("%s: expected redirect to %s, got %q", tc.userID, tc.want, loc)
		}
	}

	// usuario sin perfil => landing genérica, nunca un error
	{
		st, _, body := doReq(t, ts.URL, "GET", "/dashboard", "uid-ghost", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 generic landing, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "/dashboard/farmer") {
			t.Fatalf("landing should link the role dashboards: %s", string(body))
		}
	}

	// rol equivocado => redirect al resolver, no 403
	{
		st, h, _ := doReq(t, ts.URL, "GET", "/dashboard/vet", farmerID, nil)
		if st != http.StatusSeeOther {
			t.Fatalf("expected 303 on role mismatch, got %d", st)
		}
		if loc := h.Get("Location"); loc != "/dashboard" {
			t.Fatalf("expected redirect to /dashboard, got %q", loc)
		}
	}

	// sin sesión => guard manda a /login
	{
		st, h, _ := doReq(t, ts.URL, "GET", "/dashboard", "", nil)
		if st != http.StatusSeeOther {
			t.Fatalf("expected 303 without session, got %d", st)
		}
		if loc := h.Get("Location"); loc != "/login" {
			t.Fatalf("expected redirect to /login, got %q", loc)
		}
	}

	// dashboard del admin trae conteos por rol
	{
		st, _, body := doReq(t, ts.URL, "GET", "/dashboard/admin", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin dashboard, got %d", st)
		}
		var resp struct {
			Users map[string]int `json:"users"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Users["farmer"] != 1 || resp.Users["vet"] != 1 || resp.Users["admin"] != 1 {
			t.Fatalf("unexpected role counts: %+v", resp.Users)
		}
	}
}

func TestHTTP_ProfileAndAvatar(t *testing.T) {
	ts := newTestServer(t)

	farmerID := register(t, ts.URL, "farmer@test", "farmer")

	// el email es inmutable aunque el cliente lo mande
	{
		st, _, body := doReq(t, ts.URL, "PUT", "/profile", farmerID, map[string]any{
			"email":   "hacker@test",
			"address": "Route 5, km 12",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update profile, got %d body=%s", st, string(body))
		}
		var p struct {
			Email   string `json:"email"`
			Address string `json:"address"`
		}
		_ = json.Unmarshal(body, &p)
		if p.Email != "farmer@test" {
			t.Fatalf("email must be immutable, got %q", p.Email)
		}
		if p.Address != "Route 5, km 12" {
			t.Fatalf("address not updated: %q", p.Address)
		}
	}

	// subida de avatar multipart
	{
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("avatar", "me.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write([]byte("png bytes"))
		_ = mw.Close()

		req, _ := http.NewRequest("POST", ts.URL+"/profile/avatar", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("X-Debug-User-ID", farmerID)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 avatar upload, got %d body=%s", resp.StatusCode, string(raw))
		}
		var p struct {
			AvatarURL string `json:"avatar_url"`
		}
		_ = json.Unmarshal(raw, &p)
		if !strings.HasPrefix(p.AvatarURL, "memory://avatars/"+farmerID+"/") {
			t.Fatalf("avatar_url should resolve under the owner folder, got %q", p.AvatarURL)
		}
	}
}

func TestHTTP_NotificationsAndSettings(t *testing.T) {
	ts := newTestServer(t)

	userID := register(t, ts.URL, "farmer@test", "farmer")

	// seeds de bienvenida
	var firstID string
	{
		st, _, body := doReq(t, ts.URL, "GET", "/dashboard/notifications", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 notifications, got %d", st)
		}
		var list []struct {
			ID   string `json:"id"`
			Read bool   `json:"read"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 2 {
			t.Fatalf("expected 2 seeded notifications, got %d", len(list))
		}
		firstID = list[0].ID
	}

	// mark-read y delete
	{
		st, _, _ := doReq(t, ts.URL, "POST", "/dashboard/notifications/"+firstID+"/read", userID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 mark read, got %d", st)
		}
		st, _, _ = doReq(t, ts.URL, "DELETE", "/dashboard/notifications/"+firstID, userID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d", st)
		}
	}

	// settings: defaults y round-trip
	{
		st, _, body := doReq(t, ts.URL, "GET", "/dashboard/settings", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 settings, got %d", st)
		}
		var prefs struct {
			Email bool `json:"email_notifications"`
			SMS   bool `json:"sms_notifications"`
		}
		_ = json.Unmarshal(body, &prefs)
		if !prefs.Email || prefs.SMS {
			t.Fatalf("unexpected defaults: %s", string(body))
		}

		st, _, _ = doReq(t, ts.URL, "PUT", "/dashboard/settings", userID, map[string]any{
			"email_notifications": false,
			"sms_notifications":   true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 save settings, got %d", st)
		}

		st, _, body = doReq(t, ts.URL, "GET", "/dashboard/settings", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 settings, got %d", st)
		}
		_ = json.Unmarshal(body, &prefs)
		if prefs.Email || !prefs.SMS {
			t.Fatalf("settings did not round-trip: %s", string(body))
		}
	}
}

// Sin SUPABASE_URL el server de dev arranca sin proveedor de identidad.
// Las rutas de cuenta deben fallar limpio, nunca con un panic recuperado a 500.
func TestRegisterWithoutRemoteAuthFailsCleanly(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Config: config.Config{
			AvatarsBucket: "avatars",
			MaxUploadMB:   5,
		},
		Authenticator: nil,
		AuthVerifier:  nil,
		ObjectStore:   filemem.NewStore(),
	}))
	t.Cleanup(ts.Close)

	st, _, body := doReq(t, ts.URL, "POST", "/register", "", map[string]any{
		"email":            "ana@farm.test",
		"password":         "longenough",
		"confirm_password": "longenough",
		"full_name":        "Ana",
		"role":             "farmer",
	})
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without auth provider, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "remote auth is not configured") {
		t.Fatalf("unexpected body: %s", string(body))
	}

	st, _, _ = doReq(t, ts.URL, "POST", "/login", "", map[string]any{
		"email":    "ana@farm.test",
		"password": "longenough",
	})
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 login without auth provider, got %d", st)
	}
}

func TestSwaggerDocServes(t *testing.T) {
	ts := newTestServer(t)

	st, _, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 for swagger doc, got %d", st)
	}
	var doc struct {
		Swagger string `json:"swagger"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("doc.json is not valid JSON: %v", err)
	}
	if doc.Swagger != "2.0" || doc.Info.Title != "VETCO API" {
		t.Fatalf("unexpected doc: swagger=%q title=%q", doc.Swagger, doc.Info.Title)
	}
}
