package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/errors"
	financeDTO "github.com/momsgrove/grove-api/internal/adapter/dto/finance"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/finance"
)

// Finance handles fee and expense requests
type Finance struct {
	service *finance.Service
	logger  *zap.Logger
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(service *finance.Service, logger *zap.Logger) *Finance {
	return &Finance{service: service, logger: logger}
}

// Transactions handles GET /v1/finance/transactions
// @Summary      List transactions
// @Description  Newest first
// @Tags         Finance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]financeDTO.TransactionResponse}
// @Failure      403  {object}  common.ErrorResponse  "Module locked"
// @Router       /finance/transactions [get]
func (h *Finance) Transactions(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	txs, err := h.service.Transactions(c.Request().Context(), schoolID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTransactionList(txs))
}

// Record handles POST /v1/finance/transactions
// @Summary      Record a fee or expense
// @Tags         Finance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      financeDTO.RecordTransactionRequest  true  "Transaction"
// @Success      201      {object}  common.SuccessResponse{data=financeDTO.TransactionResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse  "Student not found"
// @Router       /finance/transactions [post]
func (h *Finance) Record(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req financeDTO.RecordTransactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := finance.RecordInput{
		TransactionType: entities.TransactionType(req.TransactionType),
		Amount:          req.Amount,
		Status:          entities.TransactionStatus(req.Status),
		Description:     req.Description,
	}
	if req.StudentID != "" {
		id, err := uuid.Parse(req.StudentID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("student_id must be a valid UUID"))
		}
		input.StudentID = &id
	}
	if req.DueDate != "" {
		due, err := time.Parse(time.DateOnly, req.DueDate)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("due_date must be YYYY-MM-DD"))
		}
		input.DueDate = &due
	}

	tx, err := h.service.Record(c.Request().Context(), schoolID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToTransactionResponse(tx))
}

// Summary handles GET /v1/finance/summary
// @Summary      Finance dashboard rollup
// @Description  Per-student fee balances ordered by name, plus school totals
// @Tags         Finance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=financeDTO.SummaryResponse}
// @Router       /finance/summary [get]
func (h *Finance) Summary(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	summary, err := h.service.Summarize(c.Request().Context(), schoolID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToFinanceSummaryResponse(summary))
}
