package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dndsheet/internal/adapter/snapshot"
	"github.com/heartmarshall/dndsheet/internal/domain"
	"github.com/heartmarshall/dndsheet/internal/service/sheet"
	"github.com/heartmarshall/dndsheet/pkg/idgen"
)

type staticSeeds []domain.Topic

func (s staticSeeds) InitialTopics(context.Context) ([]domain.Topic, error) {
	out := make([]domain.Topic, len(s))
	for i, t := range s {
		out[i] = t.Clone()
	}
	return out, nil
}

func fixtureSeeds() staticSeeds {
	return staticSeeds{
		{ID: "arrays", Title: "Arrays", Questions: []domain.Question{
			{ID: "1", Title: "Two Sum", Link: "https://x/1"},
			{ID: "2", Title: "Best Time to Buy and Sell Stock", Link: "https://x/2"},
			{ID: "3", Title: "Contains Duplicate", Link: "https://x/3"},
		}},
		{ID: "graphs", Title: "Graphs", Questions: []domain.Question{
			{ID: "10", Title: "Number of Islands", Link: "https://x/10"},
		}},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := snapshot.New(snapshot.NewMemorySlot(), snapshot.JSONCodec{}, snapshot.DefaultNamespace)
	svc := sheet.NewService(log, repo, fixtureSeeds(), idgen.Sequence("id"))
	require.NoError(t, svc.Hydrate(context.Background()))

	mux := http.NewServeMux()
	NewSheetHandler(svc, log).Register(mux)
	mux.HandleFunc("/api/sheet-data", SheetData)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func getState(t *testing.T, srv *httptest.Server) StateResponse {
	t.Helper()
	resp := do(t, srv, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[StateResponse](t, resp)
}

func TestSheetAPI_GetState(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	state := decode[StateResponse](t, resp)
	require.Len(t, state.Topics, 2)
	assert.Equal(t, "arrays", state.Topics[0].ID)
	assert.Equal(t, 3, state.Topics[0].TotalQuestions)
	assert.Zero(t, state.Topics[0].CompletedQuestions)
	assert.False(t, state.DarkMode)
}

func TestSheetAPI_TopicLifecycle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/topics", `{"title":"  Trees  "}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[TopicDTO](t, resp)
	assert.Equal(t, "Trees", created.Title)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Questions)

	resp = do(t, srv, http.MethodPatch, "/api/topics/"+created.ID, `{"title":"Binary Trees"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Binary Trees", decode[TopicDTO](t, resp).Title)

	resp = do(t, srv, http.MethodGet, "/api/topics/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Binary Trees", decode[TopicDTO](t, resp).Title)

	resp = do(t, srv, http.MethodDelete, "/api/topics/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Len(t, getState(t, srv).Topics, 2)
}

func TestSheetAPI_AddTopicDuplicateID(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/topics", `{"title":"Again","id":"arrays"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSheetAPI_QuestionLifecycle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/topics/graphs/questions", `{"title":"Clone Graph","link":"https://x/11"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	q := decode[QuestionDTO](t, resp)
	assert.Equal(t, "Clone Graph", q.Title)
	assert.False(t, q.Completed)

	resp = do(t, srv, http.MethodPatch, "/api/topics/graphs/questions/"+q.ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	topic := decode[TopicDTO](t, resp)
	assert.Equal(t, 2, topic.TotalQuestions)
	assert.Equal(t, 1, topic.CompletedQuestions)

	resp = do(t, srv, http.MethodPatch, "/api/topics/graphs/questions/"+q.ID, `{"title":"Clone Graph II","link":""}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	topic = decode[TopicDTO](t, resp)
	assert.Equal(t, QuestionDTO{ID: q.ID, Title: "Clone Graph II", Link: "", Completed: true}, topic.Questions[1])

	resp = do(t, srv, http.MethodDelete, "/api/topics/graphs/questions/"+q.ID, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	state := getState(t, srv)
	assert.Equal(t, 1, state.Topics[1].TotalQuestions)
	assert.Zero(t, state.Topics[1].CompletedQuestions)
}

func TestSheetAPI_ReplaceQuestions(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	body := `{"questions":[
		{"id":"3","title":"Contains Duplicate","link":"https://x/3","completed":true},
		{"id":"1","title":"Two Sum","link":"https://x/1"}
	]}`
	resp := do(t, srv, http.MethodPut, "/api/topics/arrays/questions", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	topic := decode[TopicDTO](t, resp)
	require.Len(t, topic.Questions, 2)
	assert.Equal(t, "3", topic.Questions[0].ID)
	assert.Equal(t, 2, topic.TotalQuestions)
	assert.Equal(t, 1, topic.CompletedQuestions)
}

func TestSheetAPI_Reorder(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/topics/arrays/questions/reorder", `{"activeId":"1","overId":"3"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[reorderResponse](t, resp).Moved)

	resp = do(t, srv, http.MethodPost, "/api/topics/reorder", `{"activeId":"graphs","overId":"arrays"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[reorderResponse](t, resp).Moved)

	resp = do(t, srv, http.MethodPost, "/api/topics/reorder", `{"activeId":"nope","overId":"arrays"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[reorderResponse](t, resp).Moved)

	state := getState(t, srv)
	assert.Equal(t, "graphs", state.Topics[0].ID)
	ids := []string{}
	for _, q := range state.Topics[1].Questions {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"2", "3", "1"}, ids)
}

func TestSheetAPI_SetTopics(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	state := getState(t, srv)
	state.Topics[0], state.Topics[1] = state.Topics[1], state.Topics[0]
	body, err := json.Marshal(setTopicsRequest{Topics: state.Topics})
	require.NoError(t, err)

	resp := do(t, srv, http.MethodPut, "/api/topics", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "graphs", decode[StateResponse](t, resp).Topics[0].ID)

	resp = do(t, srv, http.MethodPut, "/api/topics", `{"topics":[{"id":"arrays","title":"Arrays","questions":[]}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/api/topics", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSheetAPI_SetTopicsRejectsQuestionChanges(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	state := getState(t, srv)
	arrays := state.Topics[0]
	require.Equal(t, "arrays", arrays.ID)
	require.GreaterOrEqual(t, len(arrays.Questions), 2)

	arrays.Questions[1].ID = arrays.Questions[0].ID
	arrays.Questions = append(arrays.Questions, QuestionDTO{ID: "", Title: "blank"})
	state.Topics[0] = arrays
	body, err := json.Marshal(setTopicsRequest{Topics: state.Topics})
	require.NoError(t, err)

	resp := do(t, srv, http.MethodPut, "/api/topics", string(body))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[ErrorResponse](t, resp)
	require.NotEmpty(t, errResp.Fields)
	assert.Equal(t, "questions", errResp.Fields[0].Field)

	after := getState(t, srv)
	ids := []string{}
	for _, q := range after.Topics[0].Questions {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestSheetAPI_DarkModeAndReset(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/dark-mode/toggle", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[darkModeResponse](t, resp).DarkMode)

	resp = do(t, srv, http.MethodDelete, "/api/topics/arrays", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[StateResponse](t, resp)
	assert.Len(t, state.Topics, 2)
	assert.False(t, state.DarkMode)
}

func TestSheetAPI_Errors(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown topic read", http.MethodGet, "/api/topics/zzz", "", http.StatusNotFound},
		{"unknown topic rename", http.MethodPatch, "/api/topics/zzz", `{"title":"x"}`, http.StatusNotFound},
		{"unknown topic delete", http.MethodDelete, "/api/topics/zzz", "", http.StatusNotFound},
		{"unknown question", http.MethodPatch, "/api/topics/arrays/questions/zzz", `{"completed":true}`, http.StatusNotFound},
		{"question in unknown topic", http.MethodPost, "/api/topics/zzz/questions", `{"title":"x"}`, http.StatusNotFound},
		{"reorder in unknown topic", http.MethodPost, "/api/topics/zzz/questions/reorder", `{"activeId":"1","overId":"2"}`, http.StatusNotFound},
		{"blank topic title", http.MethodPost, "/api/topics", `{"title":"   "}`, http.StatusBadRequest},
		{"empty patch", http.MethodPatch, "/api/topics/arrays/questions/1", `{}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/topics", `{"title":"x","color":"red"}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/topics", `{"title":`, http.StatusBadRequest},
		{"missing questions", http.MethodPut, "/api/topics/arrays/questions", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)

			errResp := decode[ErrorResponse](t, resp)
			assert.NotEmpty(t, errResp.Error)
		})
	}

	// None of the failed calls changed anything.
	state := getState(t, srv)
	require.Len(t, state.Topics, 2)
	assert.Equal(t, 3, state.Topics[0].TotalQuestions)
}

func TestSheetAPI_ValidationFields(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/topics", `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "validation error", errResp.Error)
	assert.Contains(t, errResp.Fields, FieldIssue{Field: "title", Message: "required"})
}

func TestWriteError_Internal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/reset", nil)
	rec := httptest.NewRecorder()
	writeError(rec, req, log, io.ErrUnexpectedEOF)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "unexpected EOF")
}
