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

// AdminHandler handles the moderation and role-management endpoints
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
	}
}

// ListItems pages through listings in every state, optionally filtered by
// ?status= (e.g. the pending moderation queue)
// GET /api/v1/admin/items
func (h *AdminHandler) ListItems(c *gin.Context) {
	filter := filterFromQuery(c)
	filter.Status = entities.ItemStatus(c.Query("status"))

	p := paginationFromQuery(c)
	items, total, err := h.adminUsecase.ListItems(c.Request.Context(), filter, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "success", items, utils.CalculateMeta(total, p.Page, p.Limit))
}

// ListUsers pages through every account
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	p := paginationFromQuery(c)
	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "success", users, utils.CalculateMeta(total, p.Page, p.Limit))
}

// MakeAdmin grants the ADMIN role
// PUT /api/v1/admin/make-admin/:id
func (h *AdminHandler) MakeAdmin(c *gin.Context) {
	h.updateRole(c, h.adminUsecase.MakeAdmin, "Admin role granted")
}

// RemoveAdmin revokes the ADMIN role
// PUT /api/v1/admin/remove-admin/:id
func (h *AdminHandler) RemoveAdmin(c *gin.Context) {
	h.updateRole(c, h.adminUsecase.RemoveAdmin, "Admin role revoked")
}

func (h *AdminHandler) updateRole(c *gin.Context, op func(context.Context, uuid.UUID) (*entities.User, error), message string) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	user, err := op(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, message, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"roles": user.Roles,
	})
}
