package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flavor-house/internal/media"
)

// UploadHandler issues upload signatures and uploads dish images on
// behalf of the admin UI.
type UploadHandler struct {
	Media   *media.Uploader
	Enabled bool
}

type signReq struct {
	Folder   string `json:"folder"`
	PublicID string `json:"public_id"`
}

// Sign handles POST /v1/admin/uploads/sign. Both body fields are optional;
// the folder defaults to the configured upload folder.
func (h *UploadHandler) Sign(c echo.Context) error {
	if !h.Enabled {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "uploads are not configured"})
	}
	var req signReq
	_ = c.Bind(&req) // an empty or missing body is fine
	folder := strings.TrimSpace(req.Folder)
	if folder == "" {
		folder = h.Media.Folder()
	}
	sig, err := h.Media.Signer().Sign(folder, strings.TrimSpace(req.PublicID))
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "uploads are not configured"})
	}
	return c.JSON(http.StatusOK, sig)
}

// Upload handles POST /v1/admin/uploads with one or more multipart parts
// named "files" (or a single "file"). Every file gets its own result; a bad
// file does not stop the rest.
func (h *UploadHandler) Upload(c echo.Context) error {
	if !h.Enabled {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "uploads are not configured"})
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected multipart form"})
	}
	headers := append(form.File["files"], form.File["file"]...)
	if len(headers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no files"})
	}

	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		files = append(files, media.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Open:        openPart(fh),
		})
	}
	results := h.Media.UploadAll(c.Request().Context(), files)

	uploaded := 0
	for _, r := range results {
		if r.Err == nil {
			uploaded++
		}
	}
	status := http.StatusOK
	if uploaded == 0 {
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, echo.Map{
		"results":  results,
		"uploaded": uploaded,
		"failed":   len(results) - uploaded,
	})
}

func openPart(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) { return fh.Open() }
}
