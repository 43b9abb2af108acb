package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

// statusByKind código HTTP por tipo de error del ledger.
var statusByKind = map[domain.Kind]int{
	domain.KindValidation:         fiber.StatusBadRequest,
	domain.KindNotFound:           fiber.StatusNotFound,
	domain.KindInsufficientFunds:  fiber.StatusUnprocessableEntity,
	domain.KindRejectedQuantity:   fiber.StatusUnprocessableEntity,
	domain.KindDuplicateReference: fiber.StatusConflict,
	domain.KindInvalidState:       fiber.StatusConflict,
	domain.KindIntegrity:          fiber.StatusInternalServerError,
}

// validate revisa solo la forma del payload (campos obligatorios, paginación).
// Las reglas de negocio viven en los casos de uso.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los errores usan el nombre JSON del campo
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// requestError payload ilegible o con campos faltantes.
type requestError struct {
	code   string
	fields map[string]string
}

func (e *requestError) Error() string { return "cuerpo inválido" }

// decode parsea el body en dst y lo valida.
func decode(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return &requestError{code: "INVALID_BODY"}
	}
	return check(dst)
}

// check aplica las etiquetas `validate` de v.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{code: "INVALID_BODY"}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &requestError{code: string(domain.KindValidation), fields: fields}
}

// writeError traduce el error a {code, message}. Las fallas de integridad no exponen el detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    reqErr.code,
			Message: reqErr.Error(),
			Fields:  reqErr.fields,
		})
	}

	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	msg := err.Error()
	if kind == domain.KindIntegrity {
		msg = domain.ErrIntegrity.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: string(kind), Message: msg})
}
