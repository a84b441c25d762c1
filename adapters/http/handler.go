package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"apyx-assistant/domain"
	"apyx-assistant/langpack"
	"apyx-assistant/usecase"
	"apyx-assistant/utils/log"
)

const maxAudioBytes = 10 * 1024 * 1024

// Transcriber converts a short audio clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Synthesizer renders text as MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// Handler is the REST surface of the assistant. Voice dependencies are
// optional; their endpoints answer 503 when not configured.
type Handler struct {
	chat        *usecase.ChatService
	assistant   *usecase.AssistantService
	store       domain.Store
	transcriber Transcriber
	synthesizer Synthesizer
}

func NewHandler(chat *usecase.ChatService, assistant *usecase.AssistantService, store domain.Store, transcriber Transcriber, synthesizer Synthesizer) *Handler {
	return &Handler{
		chat:        chat,
		assistant:   assistant,
		store:       store,
		transcriber: transcriber,
		synthesizer: synthesizer,
	}
}

// Register mounts every route on the given echo instance.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", h.HealthCheck)

	api.POST("/chat", h.Chat)
	api.GET("/weather", h.Weather)
	api.POST("/translate", h.Translate)
	api.GET("/conversations", h.Conversations)

	api.POST("/reminders", h.CreateReminder)
	api.GET("/reminders", h.ListReminders)
	api.PATCH("/reminders/:id", h.UpdateReminder)
	api.POST("/reminders/parse", h.ParseReminder)

	api.POST("/notes", h.CreateNote)
	api.GET("/notes", h.ListNotes)
	api.DELETE("/notes/:id", h.DeleteNote)
	api.POST("/notes/parse", h.ParseNote)

	api.POST("/speech/transcribe", h.TranscribeSpeech)
	api.POST("/speech/synthesize", h.SynthesizeSpeech)
}

// Chat never fails once routing succeeds: missing messages short-circuit
// inside the orchestrator to a canned reply.
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		req = domain.ChatRequest{}
	}
	reply := h.chat.HandleChat(c.Request().Context(), req)
	return c.JSON(http.StatusOK, reply)
}

type weatherResponse struct {
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Weather is a mock; a real deployment would call a weather API here.
func (h *Handler) Weather(c echo.Context) error {
	return c.JSON(http.StatusOK, weatherResponse{
		Temperature: 24,
		Condition:   "Partly Cloudy",
		Location:    "Your Location",
		Description: "Perfect weather for a walk outside",
	})
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

func (h *Handler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Text is required"})
	}

	translation, err := h.assistant.Translate(c.Request().Context(), req.Text, req.TargetLanguage)
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("translation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to translate text"})
	}
	return c.JSON(http.StatusOK, echo.Map{"translation": translation})
}

func (h *Handler) Conversations(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	exchanges, err := h.store.Exchanges(c.Request().Context(), limit)
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("listing conversations failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch conversations"})
	}
	return c.JSON(http.StatusOK, exchanges)
}

type createReminderRequest struct {
	UserID       *int   `json:"userId"`
	Text         string `json:"text"`
	ScheduledFor string `json:"scheduledFor"`
}

func (h *Handler) CreateReminder(c echo.Context) error {
	var req createReminderRequest
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid reminder data"})
	}
	scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid reminder data"})
	}

	reminder, err := h.store.CreateReminder(c.Request().Context(), domain.NewReminder{
		UserID:       req.UserID,
		Text:         req.Text,
		ScheduledFor: scheduledFor,
	})
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("creating reminder failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create reminder"})
	}
	return c.JSON(http.StatusOK, reminder)
}

func (h *Handler) ListReminders(c echo.Context) error {
	reminders, err := h.store.Reminders(c.Request().Context())
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("listing reminders failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch reminders"})
	}
	return c.JSON(http.StatusOK, reminders)
}

type updateReminderRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

func (h *Handler) UpdateReminder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid reminder id"})
	}
	var req updateReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid reminder data"})
	}

	reminder, err := h.store.SetReminderCompleted(c.Request().Context(), id, req.IsCompleted)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Reminder not found"})
	}
	return c.JSON(http.StatusOK, reminder)
}

type parseRequest struct {
	Message string `json:"message"`
}

func (h *Handler) ParseReminder(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message is required"})
	}
	draft := h.assistant.ExtractReminder(c.Request().Context(), req.Message)
	return c.JSON(http.StatusOK, draft)
}

type createNoteRequest struct {
	UserID  *int   `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) CreateNote(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil || req.Title == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid note data"})
	}

	note, err := h.store.CreateNote(c.Request().Context(), domain.NewNote{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("creating note failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create note"})
	}
	return c.JSON(http.StatusOK, note)
}

func (h *Handler) ListNotes(c echo.Context) error {
	notes, err := h.store.Notes(c.Request().Context())
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("listing notes failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch notes"})
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *Handler) DeleteNote(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid note id"})
	}

	deleted, err := h.store.DeleteNote(c.Request().Context(), id)
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("deleting note failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete note"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

func (h *Handler) ParseNote(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message is required"})
	}
	draft := h.assistant.ExtractNote(c.Request().Context(), req.Message)
	return c.JSON(http.StatusOK, draft)
}

// TranscribeSpeech accepts a raw LINEAR16 clip in the request body and
// returns its transcript. The browser speech API is the usual path;
// this covers clients without one.
func (h *Handler) TranscribeSpeech(c echo.Context) error {
	if h.transcriber == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Speech recognition is not configured"})
	}

	language := langpack.Normalize(c.QueryParam("language"))
	audio, err := io.ReadAll(io.LimitReader(c.Request().Body, maxAudioBytes))
	if err != nil || len(audio) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Audio body is required"})
	}

	text, err := h.transcriber.Transcribe(c.Request().Context(), audio, language)
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("transcription failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to transcribe audio"})
	}
	return c.JSON(http.StatusOK, echo.Map{"text": text, "language": language})
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// SynthesizeSpeech renders a reply as MP3 for clients without a browser
// synthesis API.
func (h *Handler) SynthesizeSpeech(c echo.Context) error {
	if h.synthesizer == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Speech synthesis is not configured"})
	}

	var req synthesizeRequest
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Text is required"})
	}

	audio, err := h.synthesizer.Synthesize(c.Request().Context(), req.Text, langpack.Normalize(req.Language))
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("synthesis failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to synthesize speech"})
	}
	return c.Blob(http.StatusOK, "audio/mpeg", audio)
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "apyx-assistant",
	})
}
