package http

import (
	"net/http"

	"postcraft/pkg/logger"
	"postcraft/services/distribution/internal/usecase"

	"github.com/gin-gonic/gin"
)

type DistributionHandler struct {
	distributionUseCase usecase.DistributionUseCase
	logger              *logger.Logger
}

func NewDistributionHandler(distributionUseCase usecase.DistributionUseCase, logger *logger.Logger) *DistributionHandler {
	return &DistributionHandler{
		distributionUseCase: distributionUseCase,
		logger:              logger,
	}
}

// GetDeliveries godoc
// @Summary      Delivery status of a post
// @Description  Per-platform outcome of distributing a submitted post
// @Tags         distribution
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path      string  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /distribution/posts/{post_id} [get]
func (h *DistributionHandler) GetDeliveries(c *gin.Context) {
	postID := c.Param("post_id")

	deliveries, err := h.distributionUseCase.Deliveries(c.Request.Context(), postID)
	if err != nil {
		h.logger.Error("Failed to get deliveries for %s: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get deliveries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post_id":    postID,
		"deliveries": deliveries,
	})
}

// QueueDepth godoc
// @Summary      Distribution queue depth
// @Tags         distribution
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /distribution/queue [get]
func (h *DistributionHandler) QueueDepth(c *gin.Context) {
	depth, err := h.distributionUseCase.QueueDepth()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": depth})
}
