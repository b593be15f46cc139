package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
)

// UploadHandler stores post images on local disk. Files are served back
// read-only under the /uploads static prefix.
type UploadHandler struct {
	dir string
}

// NewUploadHandler creates an upload handler writing into dir.
func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// Upload godoc
// @Summary Upload a post image
// @Tags upload
// @Accept mpfd
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read image file")
	}
	defer src.Close()

	name := fmt.Sprintf("image-%d%s", time.Now().UnixMilli(), filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not store image")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not store image")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Image Uploaded",
		"image":   "/uploads/" + name,
	})
}
