package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/MPIO1002/CINEME-sub001/constants"
	"github.com/MPIO1002/CINEME-sub001/model"
	"github.com/MPIO1002/CINEME-sub001/utils"
)

var validate = validator.New()

func CreateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateSessionInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func ComboQuantity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ComboInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func PaymentMethod() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PaymentMethodInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func CustomerPhone() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CustomerInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}
