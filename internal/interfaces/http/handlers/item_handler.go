package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/interfaces/http/response"
	"bazaar.backend/internal/usecases"
	"bazaar.backend/pkg/utils"
)

// imagesFormField is the multipart field carrying listing images.
const imagesFormField = "itemImages"

// ItemHandler handles listing endpoints
type ItemHandler struct {
	itemUsecase    *usecases.ItemUsecase
	catalogUsecase *usecases.CatalogUsecase
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemUsecase *usecases.ItemUsecase, catalogUsecase *usecases.CatalogUsecase) *ItemHandler {
	return &ItemHandler{
		itemUsecase:    itemUsecase,
		catalogUsecase: catalogUsecase,
	}
}

// Create handles listing submission
// POST /api/v1/item/add (multipart)
func (h *ItemHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	var input entities.CreateItemInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("multipart form expected"))
		return
	}

	files, closeAll, err := imageFilesFromForm(form.File[imagesFormField])
	if err != nil {
		response.Error(c, domainerrors.BadRequest("could not read uploaded images"))
		return
	}
	defer closeAll()

	item, err := h.itemUsecase.Create(c.Request.Context(), actor.ID, &input, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Item submitted for approval", item)
}

// Update handles listing edits
// PUT /api/v1/item/update/:id (multipart)
func (h *ItemHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item id"))
		return
	}

	var input entities.EditItemInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	var files []usecases.ImageFile
	if form, err := c.MultipartForm(); err == nil {
		var closeAll func()
		files, closeAll, err = imageFilesFromForm(form.File[imagesFormField])
		if err != nil {
			response.Error(c, domainerrors.BadRequest("could not read uploaded images"))
			return
		}
		defer closeAll()
	}

	item, err := h.itemUsecase.Edit(c.Request.Context(), actor, itemID, &input, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item updated", item)
}

// Delete removes a listing
// DELETE /api/v1/item/delete/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item id"))
		return
	}

	if err := h.itemUsecase.Delete(c.Request.Context(), actor, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item deleted", nil)
}

// Get returns one listing and bumps its view counter
// GET /api/v1/item/:id
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item id"))
		return
	}

	item, err := h.itemUsecase.Get(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "success", item)
}

// Approve moves a pending listing into the catalog
// PUT /api/v1/item/approve/:id
func (h *ItemHandler) Approve(c *gin.Context) {
	h.moderate(c, h.itemUsecase.Approve, "Item approved")
}

// Reject declines a pending listing
// PUT /api/v1/item/reject/:id
func (h *ItemHandler) Reject(c *gin.Context) {
	h.moderate(c, h.itemUsecase.Reject, "Item rejected")
}

func (h *ItemHandler) moderate(c *gin.Context, op func(context.Context, uuid.UUID) (*entities.Item, error), message string) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item id"))
		return
	}

	item, err := op(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, message, item)
}

// Sold marks the caller's approved listing as sold
// PUT /api/v1/item/sold/:id
func (h *ItemHandler) Sold(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item id"))
		return
	}

	if err := h.itemUsecase.MarkSold(c.Request.Context(), actor, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item marked as sold", nil)
}

// Categories serves the static category table
// GET /api/v1/item/categories
func (h *ItemHandler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, "success", h.catalogUsecase.Categories())
}

// All lists approved listings with filters and pagination
// GET /api/v1/item/all
func (h *ItemHandler) All(c *gin.Context) {
	h.browse(c)
}

// Search is the public free-text catalog search
// GET /api/v1/item?q=
func (h *ItemHandler) Search(c *gin.Context) {
	h.browse(c)
}

func (h *ItemHandler) browse(c *gin.Context) {
	p := paginationFromQuery(c)
	items, total, err := h.catalogUsecase.Browse(c.Request.Context(), filterFromQuery(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "success", items, utils.CalculateMeta(total, p.Page, p.Limit))
}

// ByCategory is the public category browse
// GET /api/v1/item/category/:category[/:subCategory]
func (h *ItemHandler) ByCategory(c *gin.Context) {
	p := paginationFromQuery(c)
	items, total, err := h.catalogUsecase.ByCategory(c.Request.Context(), c.Param("category"), c.Param("subCategory"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "success", items, utils.CalculateMeta(total, p.Page, p.Limit))
}
