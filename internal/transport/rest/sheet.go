package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/dndsheet/internal/domain"
	"github.com/heartmarshall/dndsheet/internal/service/sheet"
)

// sheetService is the subset of *sheet.Service the API drives.
type sheetService interface {
	State(ctx context.Context) domain.State
	Topic(ctx context.Context, id string) (domain.Topic, error)
	AddTopic(ctx context.Context, input sheet.AddTopicInput) (domain.Topic, error)
	EditTopic(ctx context.Context, input sheet.EditTopicInput) (domain.Topic, error)
	DeleteTopic(ctx context.Context, id string) error
	SetTopics(ctx context.Context, topics []domain.Topic) error
	ReorderTopics(ctx context.Context, activeID, overID string) bool
	AddQuestion(ctx context.Context, input sheet.AddQuestionInput) (domain.Question, error)
	EditQuestion(ctx context.Context, topicID string, update sheet.QuestionUpdate, questionID string) (domain.Topic, error)
	DeleteQuestion(ctx context.Context, topicID, questionID string) error
	ReorderQuestions(ctx context.Context, topicID, activeID, overID string) (bool, error)
	ToggleDarkMode(ctx context.Context) bool
	Reset(ctx context.Context) error
}

// SheetHandler serves the JSON API over the checklist store.
type SheetHandler struct {
	svc sheetService
	log *slog.Logger
}

// NewSheetHandler creates a SheetHandler.
func NewSheetHandler(svc sheetService, log *slog.Logger) *SheetHandler {
	return &SheetHandler{svc: svc, log: log.With("handler", "sheet")}
}

// Register mounts every sheet route on mux.
func (h *SheetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/state", h.getState)

	mux.HandleFunc("POST /api/topics", h.addTopic)
	mux.HandleFunc("PUT /api/topics", h.setTopics)
	mux.HandleFunc("POST /api/topics/reorder", h.reorderTopics)
	mux.HandleFunc("GET /api/topics/{id}", h.getTopic)
	mux.HandleFunc("PATCH /api/topics/{id}", h.editTopic)
	mux.HandleFunc("DELETE /api/topics/{id}", h.deleteTopic)

	mux.HandleFunc("POST /api/topics/{id}/questions", h.addQuestion)
	mux.HandleFunc("PUT /api/topics/{id}/questions", h.replaceQuestions)
	mux.HandleFunc("POST /api/topics/{id}/questions/reorder", h.reorderQuestions)
	mux.HandleFunc("PATCH /api/topics/{id}/questions/{qid}", h.editQuestion)
	mux.HandleFunc("DELETE /api/topics/{id}/questions/{qid}", h.deleteQuestion)

	mux.HandleFunc("POST /api/dark-mode/toggle", h.toggleDarkMode)
	mux.HandleFunc("POST /api/reset", h.reset)
}

type addTopicRequest struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

type editTopicRequest struct {
	Title string `json:"title"`
}

type setTopicsRequest struct {
	Topics []TopicDTO `json:"topics"`
}

type reorderRequest struct {
	ActiveID string `json:"activeId"`
	OverID   string `json:"overId"`
}

type reorderResponse struct {
	Moved bool `json:"moved"`
}

type addQuestionRequest struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type replaceQuestionsRequest struct {
	Questions []QuestionDTO `json:"questions"`
}

type editQuestionRequest struct {
	Title     *string `json:"title"`
	Link      *string `json:"link"`
	Completed *bool   `json:"completed"`
}

type darkModeResponse struct {
	DarkMode bool `json:"darkMode"`
}

func (h *SheetHandler) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewStateResponse(h.svc.State(r.Context())))
}

func (h *SheetHandler) getTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.svc.Topic(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTopicDTO(topic))
}

func (h *SheetHandler) addTopic(w http.ResponseWriter, r *http.Request) {
	var req addTopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	topic, err := h.svc.AddTopic(r.Context(), sheet.AddTopicInput{Title: req.Title, ID: req.ID})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewTopicDTO(topic))
}

func (h *SheetHandler) setTopics(w http.ResponseWriter, r *http.Request) {
	var req setTopicsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Topics == nil {
		writeError(w, r, h.log, domain.NewValidationError("topics", "required"))
		return
	}

	if err := h.svc.SetTopics(r.Context(), topicsFromDTO(req.Topics)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, NewStateResponse(h.svc.State(r.Context())))
}

func (h *SheetHandler) reorderTopics(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, reorderResponse{Moved: h.svc.ReorderTopics(r.Context(), req.ActiveID, req.OverID)})
}

func (h *SheetHandler) editTopic(w http.ResponseWriter, r *http.Request) {
	var req editTopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	topic, err := h.svc.EditTopic(r.Context(), sheet.EditTopicInput{ID: r.PathValue("id"), Title: req.Title})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTopicDTO(topic))
}

func (h *SheetHandler) deleteTopic(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTopic(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SheetHandler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var req addQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	q, err := h.svc.AddQuestion(r.Context(), sheet.AddQuestionInput{
		TopicID: r.PathValue("id"),
		Title:   req.Title,
		Link:    req.Link,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, questionToDTO(q))
}

func (h *SheetHandler) replaceQuestions(w http.ResponseWriter, r *http.Request) {
	var req replaceQuestionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Questions == nil {
		writeError(w, r, h.log, domain.NewValidationError("questions", "required"))
		return
	}

	topic, err := h.svc.EditQuestion(r.Context(), r.PathValue("id"),
		sheet.QuestionUpdate{Questions: questionsFromDTO(req.Questions)}, "")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTopicDTO(topic))
}

func (h *SheetHandler) reorderQuestions(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	moved, err := h.svc.ReorderQuestions(r.Context(), r.PathValue("id"), req.ActiveID, req.OverID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, reorderResponse{Moved: moved})
}

func (h *SheetHandler) editQuestion(w http.ResponseWriter, r *http.Request) {
	var req editQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	topic, err := h.svc.EditQuestion(r.Context(), r.PathValue("id"), sheet.QuestionUpdate{
		Title:     req.Title,
		Link:      req.Link,
		Completed: req.Completed,
	}, r.PathValue("qid"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTopicDTO(topic))
}

func (h *SheetHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteQuestion(r.Context(), r.PathValue("id"), r.PathValue("qid")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SheetHandler) toggleDarkMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, darkModeResponse{DarkMode: h.svc.ToggleDarkMode(r.Context())})
}

func (h *SheetHandler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, NewStateResponse(h.svc.State(r.Context())))
}
