package handlers

import (
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"bazaar.backend/internal/domain/entities"
	"bazaar.backend/internal/interfaces/http/middleware"
	"bazaar.backend/internal/usecases"
	"bazaar.backend/pkg/utils"
)

// actorFromContext builds the usecase actor from the auth middleware context.
func actorFromContext(c *gin.Context) (usecases.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return usecases.Actor{}, false
	}
	roles, _ := middleware.GetUserRoles(c)
	return usecases.Actor{ID: userID, Roles: roles}, true
}

// paginationFromQuery reads ?page= and ?limit=, falling back to defaults on
// anything unparseable.
func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return utils.GetPaginationParams(page, limit)
}

// filterFromQuery reads the public catalog filters from the query string.
func filterFromQuery(c *gin.Context) entities.ItemFilter {
	filter := entities.ItemFilter{
		Category:    c.Query("category"),
		SubCategory: c.Query("subCategory"),
		Condition:   c.Query("condition"),
		Query:       c.Query("q"),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filter.MaxPrice = &v
	}
	return filter
}

// imageFilesFromForm turns the uploaded file headers into usecase image files.
// The returned closers must be called after the usecase has consumed them.
func imageFilesFromForm(fileHeaders []*multipart.FileHeader) ([]usecases.ImageFile, func(), error) {
	files := make([]usecases.ImageFile, 0, len(fileHeaders))
	opened := make([]multipart.File, 0, len(fileHeaders))

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		files = append(files, usecases.ImageFile{Name: fh.Filename, Content: f})
	}
	return files, closeAll, nil
}
