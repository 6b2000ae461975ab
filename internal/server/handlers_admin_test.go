package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/db"
)

func newAdminServer(t *testing.T, store *memStore) (*Server, string) {
	t.Helper()
	const secret = "hunter2-admin"
	hash, err := config.HashSecret(secret)
	require.NoError(t, err)
	cred, err := config.NewAdminCredential(hash)
	require.NoError(t, err)

	srv := newTestServer(store, &stubGenerator{}, &stubScorer{})
	srv.admin = cred
	return srv, secret
}

func adminRequest(method, path, secret string, body any) *http.Request {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}
	return req
}

func TestRequireAdmin(t *testing.T) {
	srv, secret := newAdminServer(t, newMemStore())
	handler := srv.requireAdmin(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// no credential
	rec := httptest.NewRecorder()
	handler(rec, adminRequest(http.MethodGet, "/admin/users", "", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// wrong credential
	rec = httptest.NewRecorder()
	handler(rec, adminRequest(http.MethodGet, "/admin/users", "wrong", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// correct credential
	rec = httptest.NewRecorder()
	handler(rec, adminRequest(http.MethodGet, "/admin/users", secret, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdmin_Unconfigured(t *testing.T) {
	srv := newTestServer(newMemStore(), &stubGenerator{}, &stubScorer{})
	cred, err := config.NewAdminCredential("")
	require.NoError(t, err)
	srv.admin = cred

	handler := srv.requireAdmin(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	handler(rec, adminRequest(http.MethodGet, "/admin/users", "anything", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleAdminEditInterview_BypassesLifecycle(t *testing.T) {
	store := newMemStore()
	srv, _ := newAdminServer(t, store)

	w := postJSON(t, srv.handleCreateInterview, "/interview/create", CreateInterviewRequest{
		JobRole: "SRE", Experience: "Mid", AccountID: "user_1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created db.InterviewSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// jump straight to completed with arbitrary fields, no state machine
	edited := created
	edited.Status = db.StatusCompleted
	edited.JobRole = "Staff Engineer"
	edited.Questions = []string{"Q1?"}
	raw, _ := json.Marshal(edited)

	req := httptest.NewRequest(http.MethodPut, "/admin/interviews/"+created.ID.String(), bytes.NewReader(raw))
	req.SetPathValue("id", created.ID.String())
	rec := httptest.NewRecorder()
	srv.handleAdminEditInterview(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated db.InterviewSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, db.StatusCompleted, updated.Status)
	assert.Equal(t, "Staff Engineer", updated.JobRole)
}

func TestHandleAdminEditInterview_NotFound(t *testing.T) {
	srv, _ := newAdminServer(t, newMemStore())

	id := uuid.NewString()
	raw, _ := json.Marshal(db.InterviewSession{JobRole: "SRE"})
	req := httptest.NewRequest(http.MethodPut, "/admin/interviews/"+id, bytes.NewReader(raw))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	srv.handleAdminEditInterview(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAdminDeleteInterview(t *testing.T) {
	store := newMemStore()
	srv, _ := newAdminServer(t, store)

	w := postJSON(t, srv.handleCreateInterview, "/interview/create", CreateInterviewRequest{
		JobRole: "SRE", Experience: "Mid", AccountID: "user_1",
	})
	var created db.InterviewSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/admin/interviews/"+created.ID.String(), nil)
	req.SetPathValue("id", created.ID.String())
	rec := httptest.NewRecorder()
	srv.handleAdminDeleteInterview(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.sessions)

	// deleting again is a 404
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/admin/interviews/"+created.ID.String(), nil)
	req.SetPathValue("id", created.ID.String())
	srv.handleAdminDeleteInterview(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
