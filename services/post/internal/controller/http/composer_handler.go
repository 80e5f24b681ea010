package http

import (
	"net/http"
	"strconv"

	"postcraft/pkg/logger"
	"postcraft/services/post/internal/composer"
	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ComposerHandler struct {
	composerUseCase usecase.ComposerUseCase
	logger          *logger.Logger
}

func NewComposerHandler(composerUseCase usecase.ComposerUseCase, logger *logger.Logger) *ComposerHandler {
	return &ComposerHandler{
		composerUseCase: composerUseCase,
		logger:          logger,
	}
}

type InlineBrandRequest struct {
	BrandName string `json:"brand_name"`
	Slogan    string `json:"slogan"`
	Color     string `json:"color"`
}

// UpdateDraftRequest is a partial edit; absent fields are left unchanged.
type UpdateDraftRequest struct {
	Text            *string             `json:"text"`
	Hashtags        *string             `json:"hashtags"`
	BrandTemplateID *string             `json:"brand_template_id"`
	InlineBrand     *InlineBrandRequest `json:"inline_brand"`
	ImagePrompt     *string             `json:"image_prompt"`
	VideoURL        *string             `json:"video_url"`
}

func (r UpdateDraftRequest) toEdit() composer.DraftEdit {
	edit := composer.DraftEdit{
		Text:            r.Text,
		Hashtags:        r.Hashtags,
		BrandTemplateID: r.BrandTemplateID,
		ImagePrompt:     r.ImagePrompt,
		VideoURL:        r.VideoURL,
	}
	if r.InlineBrand != nil {
		edit.InlineBrand = &entity.BrandSnapshot{
			BrandName: r.InlineBrand.BrandName,
			Slogan:    r.InlineBrand.Slogan,
			Color:     r.InlineBrand.Color,
		}
	}
	return edit
}

// CreateSession godoc
// @Summary      Mount a composer session
// @Description  Start a new authoring session with an empty draft. Platforms default to X.
// @Tags         composer
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  composer.View
// @Failure      401  {object}  map[string]string
// @Router       /composer/sessions [post]
func (h *ComposerHandler) CreateSession(c *gin.Context) {
	view := h.composerUseCase.CreateSession(identityFrom(c))
	c.JSON(http.StatusCreated, view)
}

// GetSession godoc
// @Summary      Get a composer session
// @Description  Current draft, state and in-flight flags. Pending notifications are returned once.
// @Tags         composer
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  composer.View
// @Failure      404  {object}  map[string]string
// @Router       /composer/sessions/{id} [get]
func (h *ComposerHandler) GetSession(c *gin.Context) {
	view, err := h.composerUseCase.GetSession(c.Param("id"), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateDraft godoc
// @Summary      Edit the draft
// @Tags         composer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Session ID"
// @Param        request  body      UpdateDraftRequest  true  "Fields to change"
// @Success      200  {object}  composer.View
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /composer/sessions/{id}/draft [patch]
func (h *ComposerHandler) UpdateDraft(c *gin.Context) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.composerUseCase.UpdateDraft(c.Param("id"), identityFrom(c), req.toEdit())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// TogglePlatform godoc
// @Summary      Toggle a target platform
// @Tags         composer
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Session ID"
// @Param        platform  path      string  true  "Platform" Enums(Facebook, Instagram, TikTok, X, Discord, YouTube)
// @Success      200  {object}  composer.View
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /composer/sessions/{id}/platforms/{platform} [post]
func (h *ComposerHandler) TogglePlatform(c *gin.Context) {
	view, err := h.composerUseCase.TogglePlatform(c.Param("id"), identityFrom(c), c.Param("platform"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ImproveWriting godoc
// @Summary      Improve the draft text
// @Description  Starts an AI rewrite of the text and hashtags. The result is applied to the draft when it arrives.
// @Tags         composer
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      202  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /composer/sessions/{id}/improve [post]
func (h *ComposerHandler) ImproveWriting(c *gin.Context) {
	token, err := h.composerUseCase.ImproveWriting(c.Param("id"), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"token": token})
}

// GenerateImage godoc
// @Summary      Generate an image for the draft
// @Description  Starts AI image generation. Without an image prompt one is built from the text and brand.
// @Tags         composer
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      202  {object}  composer.Generation
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /composer/sessions/{id}/image [post]
func (h *ComposerHandler) GenerateImage(c *gin.Context) {
	gen, err := h.composerUseCase.GenerateImage(c.Request.Context(), c.Param("id"), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gen)
}

// Submit godoc
// @Summary      Submit the draft
// @Tags         composer
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      201  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /composer/sessions/{id}/submit [post]
func (h *ComposerHandler) Submit(c *gin.Context) {
	post, err := h.composerUseCase.Submit(c.Request.Context(), c.Param("id"), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// CloseSession godoc
// @Summary      Discard a composer session
// @Tags         composer
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /composer/sessions/{id} [delete]
func (h *ComposerHandler) CloseSession(c *gin.Context) {
	if err := h.composerUseCase.CloseSession(c.Param("id"), identityFrom(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BrandTemplates godoc
// @Summary      Brand templates available to the caller
// @Description  Returns the cached directory snapshot. loading is true until the first load completes.
// @Tags         composer
// @Produce      json
// @Security     BearerAuth
// @Param        refresh  query     bool  false  "Reload before answering"
// @Success      200  {object}  usecase.BrandTemplateList
// @Failure      500  {object}  map[string]string
// @Router       /composer/brand-templates [get]
func (h *ComposerHandler) BrandTemplates(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.Query("refresh"))

	list, err := h.composerUseCase.BrandTemplates(c.Request.Context(), identityFrom(c), refresh)
	if err != nil {
		h.logger.Error("Failed to load brand templates: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
