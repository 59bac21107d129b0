package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	imports *service.ImportService
}

func NewImportHandler(imports *service.ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// ImportInventory accepts either a multipart "file" field or a raw text/csv body.
func (h *ImportHandler) ImportInventory(c *gin.Context) {
	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "file is required", err)
			return
		}
		file, err := header.Open()
		if err != nil {
			badRequest(c, "failed to open upload", err)
			return
		}
		defer file.Close()
		body = file
	}

	result, err := h.imports.ImportInventoryCSV(c.Request.Context(), body)
	if err != nil {
		respondError(c, err, "failed to import inventory")
		return
	}
	c.JSON(http.StatusOK, result)
}
