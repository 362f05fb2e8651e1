package file_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeparser/internal/domain/auth"
	"resumeparser/internal/domain/file"
	"resumeparser/internal/middleware"
	jwtsvc "resumeparser/internal/pkg/jwt"
)

// server wires the real router: public auth routes plus the JWT-protected
// file routes, with a single queue worker draining uploads.
type server struct {
	*fixture
	router *gin.Engine
}

func setupServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := setupFixture(t, nil)
	f.queue.Start(1, f.svc.Process)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		f.queue.Shutdown(ctx)
	})

	jwt := jwtsvc.New("test-secret", time.Hour)
	authHandler := auth.NewHandler(auth.NewService(f.db, jwt))
	fileHandler := file.NewHandler(f.svc)

	router := gin.New()
	api := router.Group("/api")
	auth.RegisterRoutes(api, authHandler)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwt))
	file.RegisterRoutes(protected, fileHandler)

	return &server{fixture: f, router: router}
}

func (s *server) do(t *testing.T, method, path, token string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	}
	return w, parsed
}

func (s *server) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	payload := fmt.Sprintf(`{"name":"Test User","email":%q,"password":"password123"}`, email)
	w, _ := s.do(t, http.MethodPost, "/api/auth/register", "", bytes.NewBufferString(payload), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, "register: %s", w.Body.String())

	login := fmt.Sprintf(`{"email":%q,"password":"password123"}`, email)
	w, body := s.do(t, http.MethodPost, "/api/auth/login", "", bytes.NewBufferString(login), "application/json")
	require.Equal(t, http.StatusOK, w.Code, "login: %s", w.Body.String())

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *server) uploadPDF(t *testing.T, token, fileName string, data []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return s.do(t, http.MethodPost, "/api/files/upload", token, &buf, mw.FormDataContentType())
}

// pollFile fetches the file until it leaves the transient statuses.
func (s *server) pollFile(t *testing.T, token, fileID string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w, body := s.do(t, http.MethodGet, "/api/files/"+fileID, token, nil, "")
		require.Equal(t, http.StatusOK, w.Code, "get file: %s", w.Body.String())

		f := body["file"].(map[string]any)
		status, _ := f["status"].(string)
		if status != string(file.StatusUploaded) && status != string(file.StatusProcessing) {
			return f
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("file never reached a terminal status")
	return nil
}

func TestUploadEndToEnd(t *testing.T) {
	s := setupServer(t)
	token := s.registerAndLogin(t, "upload-flow@example.com")

	w, body := s.uploadPDF(t, token, "resume.pdf", fakePDF)
	require.Equal(t, http.StatusOK, w.Code, "upload: %s", w.Body.String())
	assert.Equal(t, true, body["success"])

	uploaded := body["file"].(map[string]any)
	assert.Equal(t, "resume.pdf", uploaded["fileName"])
	assert.Equal(t, string(file.StatusUploaded), uploaded["status"])
	fileID := uploaded["id"].(string)

	processed := s.pollFile(t, token, fileID)
	assert.Equal(t, string(file.StatusCompleted), processed["status"])
	require.NotNil(t, processed["resumeData"])
	resumeData := processed["resumeData"].(map[string]any)
	profile := resumeData["profile"].(map[string]any)
	assert.Equal(t, "John", profile["name"])

	// One completed file costs 10 credits.
	w, body = s.do(t, http.MethodGet, "/api/files/credits/balance", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(990), body["credits"])

	w, body = s.do(t, http.MethodGet, "/api/files/"+fileID+"/history", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	events := body["history"].([]any)
	require.Len(t, events, 3)
	first := events[0].(map[string]any)
	last := events[2].(map[string]any)
	assert.Equal(t, "upload", first["action"])
	assert.Equal(t, "extract", last["action"])
	assert.Equal(t, "success", last["status"])

	w, body = s.do(t, http.MethodGet, "/api/files", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	files := body["files"].([]any)
	require.Len(t, files, 1)
	assert.Equal(t, true, files[0].(map[string]any)["hasResumeData"])
}

func TestUploadRequiresAuth(t *testing.T) {
	s := setupServer(t)

	w, body := s.uploadPDF(t, "", "resume.pdf", fakePDF)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestUploadRejectsWrongMimeOverHTTP(t *testing.T) {
	s := setupServer(t)
	token := s.registerAndLogin(t, "wrong-mime@example.com")

	w, body := s.uploadPDF(t, token, "resume.txt", []byte("plain text, not a pdf at all"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	assert.Contains(t, errObj["message"], "PDF")
}

func TestUploadInsufficientCreditsOverHTTP(t *testing.T) {
	s := setupServer(t)
	token := s.registerAndLogin(t, "broke@example.com")

	err := s.db.Model(&auth.User{}).
		Where("email = ?", "broke@example.com").
		Update("credits", 5).Error
	require.NoError(t, err)

	w, body := s.uploadPDF(t, token, "resume.pdf", fakePDF)
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "INSUFFICIENT_CREDITS", errObj["code"])
	assert.Contains(t, errObj["message"], "insufficient credits")

	// Nothing was created for the rejected upload.
	w, body = s.do(t, http.MethodGet, "/api/files", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["files"])
}

func TestGetUnknownFileOverHTTP(t *testing.T) {
	s := setupServer(t)
	token := s.registerAndLogin(t, "lookup@example.com")

	w, body := s.do(t, http.MethodGet, "/api/files/"+strings.Repeat("0", 8)+"-0000-0000-0000-000000000000", token, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}
