package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/interfaces/http/response"
	"bazaar.backend/internal/usecases"
)

// SearchHandler handles the AI search endpoints
type SearchHandler struct {
	searchUsecase *usecases.SearchUsecase
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchUsecase *usecases.SearchUsecase) *SearchHandler {
	return &SearchHandler{
		searchUsecase: searchUsecase,
	}
}

// Search ranks approved listings against a free-text query
// POST /api/v1/ask/search
func (h *SearchHandler) Search(c *gin.Context) {
	var input struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Missing query"))
		return
	}

	results, err := h.searchUsecase.Search(c.Request.Context(), input.Query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "success", gin.H{"results": results})
}

// GenerateEmbeddings backfills missing or mis-sized listing vectors
// GET /api/v1/ask/generate-item-embedding
func (h *SearchHandler) GenerateEmbeddings(c *gin.Context) {
	updated, err := h.searchUsecase.BackfillEmbeddings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "success", gin.H{"updated": updated})
}
