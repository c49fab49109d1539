package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/api"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/auth"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm/testutil"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/record"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/store"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/task"
)

const testSecret = "test-signing-secret"

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

const caseSummary = "The accused was found near the scene with the stolen property and later confessed during interrogation."

// newTestServer wires a full server over a mock completer and memory store.
func newTestServer(t *testing.T, mock *testutil.MockCompleter) (*httptest.Server, *store.MemoryStore) {
	t.Helper()

	mem := store.NewMemoryStore()
	rec := record.NewRecorder(mem, record.WithLogger(discard))
	orch := task.NewOrchestrator(mock, rec, discard)

	verifier, err := auth.NewJWTVerifier(testSecret)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewServer(orch, verifier, discard).Handler())
	t.Cleanup(srv.Close)
	return srv, mem
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.Sign(testSecret, auth.Identity{UserID: userID}, time.Hour)
	require.NoError(t, err)
	return token
}

func postJSON(t *testing.T, srv *httptest.Server, path, token string, body map[string]any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthRoute(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{})

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "ArguMate Backend is Running!", body["message"])
}

func TestUnknownPathIs404(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{})

	resp, err := srv.Client().Get(srv.URL + "/no/such/route")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPredictOutcomeEndToEnd(t *testing.T) {
	mock := &testutil.MockCompleter{Completions: []string{
		"```json\n{\"predicted_outcome\": \"Conviction\", \"confidence_score\": 78, \"reasoning\": \"The confession weighs heavily.\"}\n```",
	}}
	srv, mem := newTestServer(t, mock)

	resp := postJSON(t, srv, "/predict/outcome", bearerToken(t, "user-1"),
		map[string]any{"case_summary": caseSummary})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Judgment prediction generated successfully.", body["message"])
	assert.Equal(t, "Conviction", body["predicted_outcome"])
	assert.Equal(t, float64(78), body["confidence_score"])
	assert.Equal(t, "The confession weighs heavily.", body["reasoning"])

	recs := mem.ByUser("user-1", "predictions")
	require.Len(t, recs, 1)
	assert.Equal(t, caseSummary, recs[0].Fields["case_summary"])
}

func TestMissingTokenIs401(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{})

	resp := postJSON(t, srv, "/predict/outcome", "", map[string]any{"case_summary": caseSummary})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	body := decodeBody(t, resp)
	assert.Equal(t, "Could not validate credentials", body["detail"])
}

func TestForgedTokenIs401(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{})

	forged, err := auth.Sign("wrong-secret", auth.Identity{UserID: "user-1"}, time.Hour)
	require.NoError(t, err)

	resp := postJSON(t, srv, "/predict/outcome", forged, map[string]any{"case_summary": caseSummary})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestShortInputIs400(t *testing.T) {
	mock := &testutil.MockCompleter{Completions: []string{"{}"}}
	srv, _ := newTestServer(t, mock)

	resp := postJSON(t, srv, "/arguments/build", bearerToken(t, "user-1"),
		map[string]any{"case_summary": "too short"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "case_summary must be at least 50 characters.", body["detail"])
	assert.Equal(t, 0, mock.Calls(), "validation failures must not reach the model")
}

func TestInvalidJSONBodyIs400(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{})

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/chat/", strings.NewReader("{not json"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "user-1"))

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid JSON body.", body["detail"])
}

func TestProviderFailureIsGeneric500(t *testing.T) {
	mock := &testutil.MockCompleter{Err: llm.NewTransportError(503, errors.New("upstream unavailable"))}
	srv, mem := newTestServer(t, mock)

	resp := postJSON(t, srv, "/timeline/generate", bearerToken(t, "user-1"),
		map[string]any{"case_summary": caseSummary})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "An internal error occurred while processing the request.", body["detail"])
	assert.NotContains(t, body["detail"], "upstream", "provider detail must not leak")
	assert.Empty(t, mem.All(), "failed requests must not be recorded")
}

func TestStoreFailureStillReturns200(t *testing.T) {
	mock := &testutil.MockCompleter{Completions: []string{
		`{"predicted_outcome": "Acquittal", "confidence_score": 40, "reasoning": "Insufficient evidence."}`,
	}}
	srv, mem := newTestServer(t, mock)
	mem.FailWith = errors.New("store down")

	resp := postJSON(t, srv, "/predict/outcome", bearerToken(t, "user-1"),
		map[string]any{"case_summary": caseSummary})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Acquittal", body["predicted_outcome"])
}

func TestChatRoute(t *testing.T) {
	mock := &testutil.MockCompleter{Completions: []string{"Bail is a conditional release."}}
	srv, mem := newTestServer(t, mock)

	resp := postJSON(t, srv, "/chat/", bearerToken(t, "user-7"),
		map[string]any{"message": "What is bail?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Success", body["message"])
	assert.Equal(t, "What is bail?", body["user_message"])
	assert.Equal(t, "Bail is a conditional release.", body["ai_response"])

	require.Len(t, mem.ByUser("user-7", "chat_history"), 1)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{Completions: []string{"hi"}})

	resp := postJSON(t, srv, "/chat/", bearerToken(t, "user-7"),
		map[string]any{"message": "   "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Chat message cannot be empty.", body["detail"])
}

func postMultipart(t *testing.T, srv *httptest.Server, token string, fields map[string]string, fileName string, fileData []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/fir/explain", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

const explainCompletion = `{"simplified_explanation": "The FIR alleges theft.", "structured_summary": {"fir_number": "123/2024"}, "ipc_sections": [{"section": "379", "reason": "Theft of movable property."}]}`

func TestFIRExplainWithFile(t *testing.T) {
	mock := &testutil.MockCompleter{Completions: []string{explainCompletion}}
	srv, mem := newTestServer(t, mock)

	firText := strings.Repeat("FIR No. 123/2024, PS Central, theft of a motorcycle. ", 3)
	resp := postMultipart(t, srv, bearerToken(t, "user-2"), nil, "fir.txt", []byte(firText))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "FIR processed successfully by ArguMate!", body["message"])
	assert.NotEmpty(t, body["fir_id"])

	recs := mem.ByUser("user-2", "firs")
	require.Len(t, recs, 1)
	assert.Equal(t, body["fir_id"], recs[0].ID)
	assert.Equal(t, "fir.txt", recs[0].Fields["filename"])
}

func TestFIRExplainWithPastedText(t *testing.T) {
	mock := &testutil.MockCompleter{Completions: []string{explainCompletion}}
	srv, mem := newTestServer(t, mock)

	firText := strings.Repeat("FIR No. 123/2024, PS Central, theft of a motorcycle. ", 3)
	resp := postMultipart(t, srv, bearerToken(t, "user-2"),
		map[string]string{"fir_text_input": firText}, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	recs := mem.ByUser("user-2", "firs")
	require.Len(t, recs, 1)
	assert.Equal(t, "pasted_text.txt", recs[0].Fields["filename"])
}

func TestFIRExplainWithNeitherIs400(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{})

	resp := postMultipart(t, srv, bearerToken(t, "user-2"), nil, "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Please provide either a file or text to explain.", body["detail"])
}

func TestFIRExplainRejectsUnsupportedFormat(t *testing.T) {
	mock := &testutil.MockCompleter{Completions: []string{explainCompletion}}
	srv, _ := newTestServer(t, mock)

	resp := postMultipart(t, srv, bearerToken(t, "user-2"), nil, "fir.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["detail"], "unsupported file type")
	assert.Equal(t, 0, mock.Calls())
}

func TestFIRExplainShortTextIs400(t *testing.T) {
	mock := &testutil.MockCompleter{Completions: []string{explainCompletion}}
	srv, _ := newTestServer(t, mock)

	resp := postMultipart(t, srv, bearerToken(t, "user-2"),
		map[string]string{"fir_text_input": "too short"}, "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "The provided text is too short to be a valid FIR.", body["detail"])
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/predict/outcome", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://argumate.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsRouteIsExposed(t *testing.T) {
	srv, _ := newTestServer(t, &testutil.MockCompleter{})

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
