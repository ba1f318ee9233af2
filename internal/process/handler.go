package process

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docai-backend/internal/shared/server/respond"
	"docai-backend/internal/shared/storage/object"
)

const maxUploadSize = 20 << 20 // Document AI sync processing limit

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the processing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/form", h.handle(KindForm))
	rg.POST("/bank", h.handle(KindBank))
}

type processRequest struct {
	StoragePath string `json:"storage_path"`
	MimeType    string `json:"mime_type"`
}

// handle builds the endpoint for one processor kind; the two routes share
// everything but the processor selection and projection.
func (h *Handler) handle(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := h.bindInput(c)
		if !ok {
			return
		}

		var (
			result any
			err    error
		)
		switch kind {
		case KindForm:
			result, err = h.Svc.ProcessForm(c.Request.Context(), in)
		case KindBank:
			result, err = h.Svc.ProcessBank(c.Request.Context(), in)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		respond.OK(c, result)
	}
}

func (h *Handler) bindInput(c *gin.Context) (Input, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.bindUpload(c)
	}

	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return Input{}, false
	}

	req.StoragePath = strings.TrimSpace(req.StoragePath)
	if req.StoragePath == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "storage_path is required", nil)
		return Input{}, false
	}

	return Input{StoragePath: req.StoragePath, MimeType: strings.TrimSpace(req.MimeType)}, true
}

func (h *Handler) bindUpload(c *gin.Context) (Input, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", nil)
		return Input{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return Input{}, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return Input{}, false
	}

	mimeType := strings.TrimSpace(fileHeader.Header.Get("Content-Type"))
	if mimeType == "" {
		mimeType = http.DetectContentType(content)
	}

	return Input{Content: content, MimeType: mimeType}, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedMime):
		respond.Error(c, http.StatusBadRequest, ErrorCodeUnsupportedMime, err.Error(), nil)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, object.ErrInvalidPath):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
	case errors.Is(err, object.ErrNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, err.Error(), nil)
	case errors.Is(err, object.ErrAccessDenied):
		respond.Error(c, http.StatusForbidden, ErrorCodeAccessDenied, err.Error(), nil)
	case errors.Is(err, ErrUpstreamTimeout):
		respond.Error(c, http.StatusGatewayTimeout, ErrorCodeUpstreamTimeout, err.Error(), nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, ErrorCodeUpstream, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to process document", nil)
	}
}
