package http

import (
	"net/http"
	"strconv"

	"postcraft/pkg/logger"
	"postcraft/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// History godoc
// @Summary      Post history
// @Description  The caller's submitted posts, newest first, with the brand template each one used
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 20, max 100)"
// @Param        offset  query     int  false  "Offset"
// @Success      200  {object}  usecase.HistoryPage
// @Failure      500  {object}  map[string]string
// @Router       /posts/history [get]
func (h *PostHandler) History(c *gin.Context) {
	limit := 0
	offset := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	page, err := h.postUseCase.History(c.Request.Context(), identityFrom(c), limit, offset)
	if err != nil {
		h.logger.Error("Failed to load history: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
