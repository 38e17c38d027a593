package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"status":  "error",
		"message": message,
	}
}

// ValidateRequest runs struct tag validation and converts failures into
// a fiber 400 error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "validation failed on field "+verrs[0].Field())
		}
		return fiber.NewError(fiber.StatusBadRequest, "validation failed")
	}
	return nil
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into
// the standard error envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(err.Error()))
	}
}
