package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventario-analitica/internal/application/dto"
	"github.com/jhoicas/inventario-analitica/internal/domain"
)

// Códigos de error de la API.
const (
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeNotFound          = "NOT_FOUND"
	CodeEmptyOrCorrupt    = "EMPTY_OR_CORRUPT"
	CodeMissingColumn     = "MISSING_COLUMN"
	CodeInvalidParams     = "INVALID_PARAMS"
	CodeInvalidBody       = "INVALID_BODY"
	CodeInternal          = "INTERNAL"
)

// writeError traduce un error de dominio a su respuesta HTTP.
//
//	MissingColumnError     → 422 MISSING_COLUMN
//	ErrUnsupportedFormat   → 400 UNSUPPORTED_FORMAT
//	ErrNotFound            → 404 NOT_FOUND
//	ErrEmptyOrCorrupt      → 400 EMPTY_OR_CORRUPT
//	ErrInvalidInput        → 400 INVALID_PARAMS
//	otro                   → 500 INTERNAL
func writeError(c *fiber.Ctx, err error) error {
	var missing *domain.MissingColumnError
	switch {
	case errors.As(err, &missing):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: CodeMissingColumn, Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeUnsupportedFormat, Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: CodeNotFound, Message: err.Error(),
		})
	case errors.Is(err, domain.ErrEmptyOrCorrupt):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeEmptyOrCorrupt, Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeInvalidParams, Message: err.Error(),
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: CodeInternal, Message: "error interno del servidor",
	})
}

func invalidParams(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidParams, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}
