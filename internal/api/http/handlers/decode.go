package handlers

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// PayloadValidator checks a decoded request body.
type PayloadValidator interface {
	Validate(payload any) error
}

func decode(c *fiber.Ctx, v PayloadValidator, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewInvalidArgument("invalid payload")
	}
	if v == nil {
		return nil
	}
	return v.Validate(out)
}
