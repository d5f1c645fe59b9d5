package resumes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"careergenie-backend/internal/bootstrap"
	"careergenie-backend/internal/llm"
	"careergenie-backend/internal/shared/config"
)

const sampleResume = "John Doe\njohn@x.com\nSKILLS\nPython, SQL"

type timeoutGen struct{ calls int }

func (g *timeoutGen) Generate(context.Context, string, llm.GenerateOptions) (string, error) {
	g.calls++
	return "", context.DeadlineExceeded
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:             "0",
		Env:              "dev",
		ObjectStoreType:  "local",
		LocalStoreDir:    t.TempDir(),
		LLMProvider:      "none",
		LLMModel:         "gemini-1.5-flash",
		AllowAIFallbacks: true,
		AuthDevBypass:    true,
		AIRateWindowMS:   60000,
		AIRateMax:        15,
	}
}

func buildApp(t *testing.T, cfg config.Config, ov bootstrap.Overrides) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.BuildWith(cfg, ov)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func uploadRequest(t *testing.T, path, fileName string, content []byte, userID string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	return req
}

func do(app *bootstrap.App, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func get(method, path, userID string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-User-Id", userID)
	return req
}

type parseEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		ID         string `json:"id"`
		FileName   string `json:"fileName"`
		ParsedData struct {
			PersonalInfo struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"personalInfo"`
			Skills struct {
				Technical []string `json:"technical"`
			} `json:"skills"`
			ProcessingMethod string `json:"processingMethod"`
		} `json:"parsedData"`
		Metadata struct {
			ProcessingMethod string  `json:"processingMethod"`
			Confidence       float64 `json:"confidence"`
			ProfileSync      struct {
				Written int `json:"written"`
				Failed  int `json:"failed"`
			} `json:"profileSync"`
		} `json:"metadata"`
		UploadedAt string `json:"uploadedAt"`
	} `json:"data"`
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestParseLifecycle(t *testing.T) {
	app := buildApp(t, testConfig(t), bootstrap.Overrides{})

	resp := do(app, uploadRequest(t, "/api/resume/parse", "cv.txt", []byte(sampleResume), "user-1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var parsed parseEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !parsed.Success || parsed.Data.ID == "" || parsed.Data.FileName != "cv.txt" {
		t.Fatalf("unexpected envelope %+v", parsed)
	}
	pd := parsed.Data.ParsedData
	if pd.PersonalInfo.Name != "John Doe" || pd.PersonalInfo.Email != "john@x.com" {
		t.Fatalf("unexpected personal info %+v", pd.PersonalInfo)
	}
	if !contains(pd.Skills.Technical, "python") || !contains(pd.Skills.Technical, "sql") {
		t.Fatalf("expected python and sql in %v", pd.Skills.Technical)
	}
	if parsed.Data.Metadata.ProcessingMethod != "basic-fallback" || parsed.Data.Metadata.Confidence != 0.7 {
		t.Fatalf("unexpected metadata %+v", parsed.Data.Metadata)
	}
	if parsed.Data.Metadata.ProfileSync.Failed != 0 || parsed.Data.Metadata.ProfileSync.Written == 0 {
		t.Fatalf("unexpected profile sync %+v", parsed.Data.Metadata.ProfileSync)
	}
	id := parsed.Data.ID

	if resp := do(app, get(http.MethodGet, "/api/resume", "user-1")); resp.Code != http.StatusOK {
		t.Fatalf("latest: expected 200, got %d", resp.Code)
	}

	resp = do(app, get(http.MethodGet, "/api/resume/all?limit=500", "user-1"))
	var list struct {
		Data  []json.RawMessage `json:"data"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if resp.Code != http.StatusOK || list.Count != 1 || len(list.Data) != 1 {
		t.Fatalf("unexpected list %d %s", resp.Code, resp.Body.String())
	}

	resp = do(app, get(http.MethodGet, "/api/resume/profile", "user-1"))
	var view struct {
		Data struct {
			Resumes []struct {
				ID string `json:"id"`
			} `json:"resumes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if resp.Code != http.StatusOK || len(view.Data.Resumes) != 1 || view.Data.Resumes[0].ID != id {
		t.Fatalf("profile should list the stored resume, got %d %s", resp.Code, resp.Body.String())
	}

	if resp := do(app, get(http.MethodGet, "/api/resume/"+id, "user-2")); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for other user, got %d", resp.Code)
	}
	if resp := do(app, get(http.MethodDelete, "/api/resume/"+id, "user-2")); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on foreign delete, got %d", resp.Code)
	}
	if resp := do(app, get(http.MethodDelete, "/api/resume/"+id, "user-1")); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", resp.Code)
	}
	if resp := do(app, get(http.MethodGet, "/api/resume/"+id, "user-1")); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
	if resp := do(app, get(http.MethodGet, "/api/resume", "user-1")); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for latest after delete, got %d", resp.Code)
	}
}

func TestParseEmptyUploadIs400AndPersistsNothing(t *testing.T) {
	app := buildApp(t, testConfig(t), bootstrap.Overrides{})

	resp := do(app, uploadRequest(t, "/api/resume/parse", "cv.pdf", nil, "user-1"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	list, err := app.ResumesRepo.ListByUser(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no records, got %d", len(list))
	}
}

func TestParseRejectsUnsupportedType(t *testing.T) {
	app := buildApp(t, testConfig(t), bootstrap.Overrides{})

	resp := do(app, uploadRequest(t, "/api/resume/parse", "cv.exe", []byte("MZ"), "user-1"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestParseRequiresAuth(t *testing.T) {
	app := buildApp(t, testConfig(t), bootstrap.Overrides{})

	resp := do(app, uploadRequest(t, "/api/resume/parse", "cv.txt", []byte(sampleResume), ""))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestParseLLMTimeoutFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLMProvider = "vertex"
	gen := &timeoutGen{}
	app := buildApp(t, cfg, bootstrap.Overrides{Generator: gen})

	resp := do(app, uploadRequest(t, "/api/resume/parse", "cv.txt", []byte(sampleResume), "user-1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var parsed parseEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Data.ParsedData.ProcessingMethod != "basic-fallback" {
		t.Fatalf("expected basic-fallback, got %q", parsed.Data.ParsedData.ProcessingMethod)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one provider call, got %d", gen.calls)
	}
}

func TestParseLLMTimeoutStrictIs500(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLMProvider = "vertex"
	cfg.RequireRealAI = true
	app := buildApp(t, cfg, bootstrap.Overrides{Generator: &timeoutGen{}})

	resp := do(app, uploadRequest(t, "/api/resume/parse", "cv.txt", []byte(sampleResume), "user-1"))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	list, _ := app.ResumesRepo.ListByUser(context.Background(), "user-1", 0)
	if len(list) != 0 {
		t.Fatalf("expected nothing persisted, got %d", len(list))
	}
}

func TestUploadOnly(t *testing.T) {
	app := buildApp(t, testConfig(t), bootstrap.Overrides{})

	resp := do(app, uploadRequest(t, "/api/resume/upload", "cv.pdf", []byte("%PDF-1.4"), "user-1"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Data struct {
			FileID string `json:"fileId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || out.Data.FileID == "" {
		t.Fatalf("expected fileId, got %s", resp.Body.String())
	}
}

func TestParseRateLimited(t *testing.T) {
	cfg := testConfig(t)
	cfg.AIRateMax = 1
	app := buildApp(t, cfg, bootstrap.Overrides{})

	if resp := do(app, uploadRequest(t, "/api/resume/parse", "cv.txt", []byte(sampleResume), "user-1")); resp.Code != http.StatusOK {
		t.Fatalf("expected first parse 200, got %d", resp.Code)
	}
	resp := do(app, uploadRequest(t, "/api/resume/parse", "cv.txt", []byte(sampleResume), "user-1"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}
