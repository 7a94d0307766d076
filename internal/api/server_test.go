package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routeplan/adapters/optimizer"
	"routeplan/domain/core"
	"routeplan/domain/schema"
	"routeplan/internal/config"
	"routeplan/internal/ingest"
)

func newTestServer(opt *optimizer.Client) *Server {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: "test"},
		Parse:  config.ParseConfig{MaxUploadBytes: 1 << 20},
	}
	return NewServer(cfg, ingest.NewPipeline(core.NewSequenceGenerator()), nil, opt)
}

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(nil).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParseEndpointJobCSV(t *testing.T) {
	router := newTestServer(nil).Router()

	csvData := "job_id,address,duration_mins\n1,Calle Mayor 1,90\n2,Gran Via 20,60\n"
	body, contentType := multipartUpload(t, "jobs.csv", csvData)

	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result  schema.ParseResult `json:"result"`
		Profile struct {
			Records int `json:"records"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, schema.DatasetJob, resp.Result.Type)
	assert.Len(t, resp.Result.Jobs, 2)
	assert.Equal(t, 2, resp.Profile.Records)
}

func TestParseEndpointUnknownDataset(t *testing.T) {
	router := newTestServer(nil).Router()

	body, contentType := multipartUpload(t, "export.csv", "id,name,phone\n1,Ana,600000000\n")

	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestParseEndpointMissingFile(t *testing.T) {
	router := newTestServer(nil).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/parse", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignEndpointUnconfigured(t *testing.T) {
	router := newTestServer(nil).Router()

	payload := `{"jobs":[],"salesmen":[]}`
	req := httptest.NewRequest(http.MethodPost, "/assign", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAssignEndpointProxiesOptimizer(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(optimizer.Assignment{
			Jobs:    map[string][]schema.Job{"101": {{JobID: "1"}}},
			Message: "ok",
		})
	}))
	defer upstream.Close()

	router := newTestServer(optimizer.NewClient(upstream.URL, 5*time.Second)).Router()

	payload := assignPayload{
		Jobs:     []schema.Job{{JobID: "1", Date: "2025-02-05", Location: schema.Location{Address: "Calle Mayor 1"}}},
		Salesmen: []schema.Salesman{{SalesmanID: "101", Location: schema.Location{Address: "Gran Via 20"}}},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/assign", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var assignment optimizer.Assignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assignment))
	assert.Equal(t, "ok", assignment.Message)
	assert.Len(t, assignment.Jobs["101"], 1)
}

func TestGetBatchWithoutRepository(t *testing.T) {
	router := newTestServer(nil).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/batches/abc", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
