package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantgate/admin-portal/internal/core/ports"
)

type TransactionHandler struct {
	transactions ports.TransactionService
}

func NewTransactionHandler(transactions ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// Create handles POST /transactions.
//
// @Summary      Create a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      transactionRequest  true  "Transaction"
// @Success      201   {object}  transactionResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req transactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tx, err := h.transactions.Create(c.Request().Context(), claims.Actor(), req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// List handles GET /transactions. Results are newest first.
//
// @Summary      List visible transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   transactionResponse
// @Failure      403  {object}  map[string]string
// @Router       /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	txs, err := h.transactions.List(c.Request().Context(), claims.Actor())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransactionResponses(txs))
}

// Get handles GET /transactions/:id.
//
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  transactionResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	tx, err := h.transactions.Get(c.Request().Context(), claims.Actor(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// Update handles PATCH /transactions/:id.
//
// @Summary      Rename a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Transaction ID"
// @Param        body  body      transactionRequest  true  "New title"
// @Success      200   {object}  transactionResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /transactions/{id} [patch]
func (h *TransactionHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req transactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tx, err := h.transactions.Update(c.Request().Context(), claims.Actor(), c.Param("id"), req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// Delete handles DELETE /transactions/:id.
//
// @Summary      Delete a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	msg, err := h.transactions.Delete(c.Request().Context(), claims.Actor(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
