package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notekeeper/internal/app"
	"notekeeper/internal/model"
	"notekeeper/internal/transport/http/middleware"
	"notekeeper/internal/transport/http/response"
)

type NoteHandler struct {
	noteService *app.NoteService
}

// Title and content are deliberately unbound: the service validates them
// itself and swallows failures (see NoteService.Create).
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewNoteHandler(noteService *app.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) List(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	notes, err := h.noteService.List(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list notes failed")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	response.OK(c, notes)
}

func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	note, err := h.noteService.Create(app.CreateNoteInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create note failed")
		return
	}

	// note is nil when validation failed; still a success-shaped response.
	if note == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || noteID == 0 {
		response.Error(c, http.StatusNotFound, response.CodeNoteNotFound, "note not found")
		return
	}

	if err := h.noteService.Delete(userID, uint(noteID)); err != nil {
		switch {
		case errors.Is(err, app.ErrNoteNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNoteNotFound, "note not found")
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete note failed")
		}
		return
	}

	response.OK(c, gin.H{"message": "Note deleted successfully"})
}
