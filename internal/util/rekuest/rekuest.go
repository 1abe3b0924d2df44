package rekuest

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/riftcoach/backend/internal/pkg/rcerr"
)

var Validate = validator.New()

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
}

func validateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		panic(err)
	}

	violations := make([]*ErrorResponse, 0, len(errs))
	for _, fe := range errs {
		violations = append(violations, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
		})
	}
	return violations
}

// ValidBody gets the body from *fiber.Ctx using fiber#BodyParser() and
// validates it using the validator singleton. If the validation passed it
// writes the unmarshalled body to dest and returns nil, otherwise it returns
// an error. Notice that dest shall always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return rcerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(ctx, dest)
}

func ValidStruct(_ *fiber.Ctx, dest any) error {
	if violations := validateStruct(dest); violations != nil {
		return rcerr.NewInvalidViolations(violations)
	}
	return nil
}
