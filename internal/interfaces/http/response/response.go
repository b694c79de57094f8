package response

import (
	"github.com/gin-gonic/gin"

	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/pkg/utils"
)

// Envelope is the uniform response body: a human-readable message plus
// optional data and pagination.
type Envelope struct {
	Message    string                `json:"message"`
	Data       interface{}           `json:"data,omitempty"`
	Pagination *utils.PaginationMeta `json:"pagination,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Message: message, Data: data})
}

// SuccessWithPagination sends a success response with pagination metadata
func SuccessWithPagination(c *gin.Context, status int, message string, data interface{}, meta utils.PaginationMeta) {
	c.JSON(status, Envelope{Message: message, Data: data, Pagination: &meta})
}

// Error maps the error to its HTTP status and sends the message. Unknown
// errors come back as a generic 500; no driver or upstream detail leaks.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	c.JSON(appErr.Status, Envelope{Message: appErr.Message})
}
