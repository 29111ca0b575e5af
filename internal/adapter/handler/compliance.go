package handler

import (
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/errors"
	complianceDTO "github.com/momsgrove/grove-api/internal/adapter/dto/compliance"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/compliance"
)

// MaxDocumentSize bounds an uploaded compliance document
const MaxDocumentSize = 10 << 20

// Compliance handles compliance record requests
type Compliance struct {
	service *compliance.Service
	logger  *zap.Logger
}

// NewComplianceHandler creates a new compliance handler
func NewComplianceHandler(service *compliance.Service, logger *zap.Logger) *Compliance {
	return &Compliance{service: service, logger: logger}
}

// List handles GET /v1/compliance
// @Summary      List compliance records
// @Description  Ordered by expiry, with expiry flags and a download link when a document is attached
// @Tags         Compliance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]complianceDTO.RecordResponse}
// @Router       /compliance [get]
func (h *Compliance) List(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	views, err := h.service.List(c.Request().Context(), schoolID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordList(views))
}

// Create handles POST /v1/compliance
// @Summary      Create a compliance record
// @Tags         Compliance
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        record_type  formData  string  true   "Record type"
// @Param        status       formData  string  true   "Compliant, Pending or Non-Compliant"
// @Param        expiry_date  formData  string  false  "YYYY-MM-DD"
// @Param        file         formData  file    false  "Supporting document"
// @Success      201          {object}  common.SuccessResponse{data=complianceDTO.RecordResponse}
// @Failure      400          {object}  common.ErrorResponse
// @Failure      500          {object}  common.ErrorResponse  "Upload failed"
// @Router       /compliance [post]
func (h *Compliance) Create(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req complianceDTO.CreateRecordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := compliance.CreateInput{
		RecordType: req.RecordType,
		Status:     entities.ComplianceStatus(req.Status),
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse(time.DateOnly, req.ExpiryDate)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("expiry_date must be YYYY-MM-DD"))
		}
		input.ExpiryDate = &expiry
	}

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		if fh.Size > MaxDocumentSize {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("file exceeds 10 MiB"))
		}
		f, err := fh.Open()
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
		}
		defer f.Close()

		input.Document = &compliance.Document{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		}
	case stdErrors.Is(err, http.ErrMissingFile), stdErrors.Is(err, http.ErrNotMultipart):
	default:
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	view, err := h.service.Create(c.Request().Context(), schoolID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToRecordResponse(*view))
}
