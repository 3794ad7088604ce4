package driver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testAdminSecret = "segreto-di-prova"

func newAdminHandler(t *testing.T) *AdminHTTPHandler {
	t.Helper()
	return NewAdminHTTPHandler(newHandlerCatalog(t), testAdminSecret)
}

func adminRequest(method, path, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(AdminSecretHeader, testAdminSecret)
	return req
}

func TestAdminHTTPHandler_Login(t *testing.T) {
	t.Run("POST /api/admin/login accepts the configured secret", func(t *testing.T) {
		handler := newAdminHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
			strings.NewReader(`{"secret": "`+testAdminSecret+`"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected status 204, got %d", rec.Code)
		}
	})

	t.Run("POST /api/admin/login rejects a wrong secret", func(t *testing.T) {
		handler := newAdminHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
			strings.NewReader(`{"secret": "sbagliato"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("login does not require the secret header", func(t *testing.T) {
		handler := newAdminHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
			strings.NewReader(`{"secret": "`+testAdminSecret+`"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected status 204, got %d", rec.Code)
		}
	})

	t.Run("an empty configured secret rejects everything", func(t *testing.T) {
		handler := NewAdminHTTPHandler(newHandlerCatalog(t), "")

		req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
			strings.NewReader(`{"secret": ""}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})
}

func TestAdminHTTPHandler_Authorization(t *testing.T) {
	t.Run("requests without the secret header are rejected", func(t *testing.T) {
		handler := newAdminHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/channels",
			strings.NewReader(`{"name": "Nuovo"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("requests with a wrong secret header are rejected", func(t *testing.T) {
		handler := newAdminHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/channels/notizie1", nil)
		req.Header.Set(AdminSecretHeader, "sbagliato")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})
}

func TestAdminHTTPHandler_Create(t *testing.T) {
	t.Run("POST /api/admin/channels creates a channel", func(t *testing.T) {
		handler := newAdminHandler(t)

		body := `{
			"name": "Cinema Due",
			"description": "Film e serie",
			"category": "Musica",
			"stream_url": "https://cdn.example.com/cinema2/live.m3u8",
			"order": 5
		}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/channels", body))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp channelResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ID == "" {
			t.Error("expected generated channel id")
		}
		if resp.Name != "Cinema Due" {
			t.Errorf("expected name Cinema Due, got %q", resp.Name)
		}
		if !resp.UserAdded {
			t.Error("expected channel to be marked user added")
		}
		if resp.StreamKind != "hls" {
			t.Errorf("expected stream kind hls, got %q", resp.StreamKind)
		}
	})

	t.Run("POST /api/admin/channels rejects a duplicate name", func(t *testing.T) {
		handler := newAdminHandler(t)

		body := `{
			"name": "notizie uno",
			"category": "Notizie",
			"stream_url": "https://cdn.example.com/doppione/live.m3u8"
		}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/channels", body))

		if rec.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", rec.Code)
		}
	})

	t.Run("POST /api/admin/channels rejects a missing name", func(t *testing.T) {
		handler := newAdminHandler(t)

		body := `{"category": "Notizie", "stream_url": "https://cdn.example.com/x/live.m3u8"}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/channels", body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("POST /api/admin/channels rejects a malformed body", func(t *testing.T) {
		handler := newAdminHandler(t)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/channels", "{"))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestAdminHTTPHandler_Update(t *testing.T) {
	t.Run("PUT /api/admin/channels/{id} updates a channel", func(t *testing.T) {
		handler := newAdminHandler(t)

		create := `{
			"name": "Radio Visiva",
			"category": "Musica",
			"stream_url": "https://cdn.example.com/radiovisiva/live.m3u8"
		}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/channels", create))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", rec.Code)
		}
		var created channelResponse
		if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		update := `{
			"name": "Radio Visiva HD",
			"description": "Solo musica",
			"category": "Musica",
			"stream_url": "https://cdn.example.com/radiovisiva/hd.m3u8"
		}`
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPut, "/api/admin/channels/"+created.ID, update))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var updated channelResponse
		if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if updated.Name != "Radio Visiva HD" {
			t.Errorf("expected updated name, got %q", updated.Name)
		}
		if updated.StreamURL != "https://cdn.example.com/radiovisiva/hd.m3u8" {
			t.Errorf("unexpected stream url %q", updated.StreamURL)
		}
	})

	t.Run("PUT /api/admin/channels/{id} returns 404 for unknown channel", func(t *testing.T) {
		handler := newAdminHandler(t)

		body := `{"name": "Fantasma", "category": "Notizie", "stream_url": "https://cdn.example.com/x.m3u8"}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPut, "/api/admin/channels/sconosciuto", body))

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("PUT /api/admin/channels/{id} rejects an invalid category", func(t *testing.T) {
		handler := newAdminHandler(t)

		body := `{"name": "Notizie Uno", "category": "Meteo", "stream_url": "https://cdn.example.com/x.m3u8"}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPut, "/api/admin/channels/notizie1", body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestAdminHTTPHandler_Delete(t *testing.T) {
	t.Run("DELETE /api/admin/channels/{id} removes a user channel", func(t *testing.T) {
		handler := newAdminHandler(t)

		create := `{
			"name": "Effimero",
			"category": "Bambini",
			"stream_url": "https://cdn.example.com/effimero/live.m3u8"
		}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/channels", create))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", rec.Code)
		}
		var created channelResponse
		if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodDelete, "/api/admin/channels/"+created.ID, ""))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
	})

	t.Run("DELETE /api/admin/channels/{id} returns 404 for unknown channel", func(t *testing.T) {
		handler := newAdminHandler(t)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, adminRequest(http.MethodDelete, "/api/admin/channels/sconosciuto", ""))

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}
