package http

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/domain"
	"github.com/jhoicas/orders-api/pkg/logger"
)

var validate = newValidator()

// newValidator informa los errores con el nombre del parámetro de la URL (tag query).
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// bindQuery parsea el query string en dst y lo valida. Devuelve la respuesta
// 400 ya escrita en c cuando algo falla (ok = false).
func bindQuery(c *fiber.Ctx, dst interface{}) (ok bool, err error) {
	if err := c.QueryParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos",
		})
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return false, err
		}
		fields := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION_ERROR", Message: "parámetros de consulta inválidos", Fields: fields,
		})
	}
	return true, nil
}

// errorResponder traduce errores de aplicación a respuestas HTTP.
type errorResponder struct {
	log *logger.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}

	r.log.Error().Err(err).
		Str("path", c.Path()).
		Str("request_id", logger.RequestID(c.UserContext())).
		Msg("error no controlado")
	code := "INTERNAL"
	if errors.Is(err, domain.ErrDataAccess) {
		code = "DATA_ACCESS"
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: code, Message: "error interno, intente más tarde"})
}

// sendPDF responde el documento como adjunto.
func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
