package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notekeeper/internal/app"
	"notekeeper/internal/model"
	"notekeeper/internal/transport/http/response"
)

type UserHandler struct {
	authService *app.AuthService
}

func NewUserHandler(authService *app.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// List is deliberately unauthenticated; password hashes never serialize.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list users failed")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	response.OK(c, users)
}
