package http

import (
	"errors"
	"net/http"

	"postcraft/pkg/logger"
	"postcraft/services/brand/internal/entity"
	"postcraft/services/brand/internal/usecase"

	"github.com/gin-gonic/gin"
)

const maxLogoSize = 5 << 20

type BrandHandler struct {
	brandUseCase usecase.BrandUseCase
	logger       *logger.Logger
}

func NewBrandHandler(brandUseCase usecase.BrandUseCase, logger *logger.Logger) *BrandHandler {
	return &BrandHandler{
		brandUseCase: brandUseCase,
		logger:       logger,
	}
}

func identityFrom(c *gin.Context) entity.Identity {
	return entity.Identity{UserID: c.GetString("user_id"), Role: c.GetString("user_role")}
}

// ListTemplates godoc
// @Summary      List brand templates
// @Description  All templates for admins, assigned templates for everyone else. Newest first.
// @Tags         brand-templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /brand-templates [get]
func (h *BrandHandler) ListTemplates(c *gin.Context) {
	templates, err := h.brandUseCase.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.logger.Error("Failed to list brand templates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brand templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates, "count": len(templates)})
}

// CreateTemplate godoc
// @Summary      Create brand template
// @Description  Admin only. Color defaults to #F2994A and must look like #RRGGBB.
// @Tags         brand-templates
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        brand_name  formData  string  true   "Brand name"
// @Param        slogan      formData  string  false  "Slogan"
// @Param        color       formData  string  false  "Primary color"
// @Param        logo        formData  file    false  "Logo image"
// @Success      201  {object}  entity.BrandTemplate
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /brand-templates [post]
func (h *BrandHandler) CreateTemplate(c *gin.Context) {
	input := usecase.CreateTemplateInput{
		BrandName: c.PostForm("brand_name"),
		Slogan:    c.PostForm("slogan"),
		Color:     c.PostForm("color"),
	}

	if file, err := c.FormFile("logo"); err == nil {
		if file.Size > maxLogoSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Logo must be 5MB or smaller"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
			return
		}
		defer src.Close()

		input.Logo = src
		input.LogoName = file.Filename
		input.LogoContentType = file.Header.Get("Content-Type")
		if input.LogoContentType == "" {
			input.LogoContentType = "application/octet-stream"
		}
	}

	template, err := h.brandUseCase.Create(c.Request.Context(), identityFrom(c), input)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrBrandNameRequired), errors.Is(err, entity.ErrInvalidColor):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save the brand template. Please try again."})
		}
		return
	}

	c.JSON(http.StatusCreated, template)
}
