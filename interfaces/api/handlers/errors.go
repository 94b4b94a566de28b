package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
	"tasktrack/pkg/utils"
)

// serviceError maps the service sentinels to the response envelope; anything else is a 500
func serviceError(c *fiber.Ctx, op string, err error) error {
	ctx := c.UserContext()
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		logger.WarnContext(ctx, op+" rejected", "error", err)
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		logger.WarnContext(ctx, op+" unauthenticated", "error", err)
		return utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		logger.WarnContext(ctx, op+" forbidden", "error", err)
		return utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		logger.WarnContext(ctx, op+" not found", "error", err)
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		logger.WarnContext(ctx, op+" conflict", "error", err)
		return utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrUnavailable):
		logger.WarnContext(ctx, op+" unavailable", "error", err)
		return utils.ServiceUnavailableResponse(c, err.Error())
	}

	logger.ErrorContext(ctx, op+" failed", "error", err)
	return utils.InternalServerErrorResponse(c)
}

// paramUUID parses a path parameter; ok is false once the 400 has been written
func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		logger.WarnContext(c.UserContext(), "Invalid id parameter", "param", name, "value", c.Params(name))
		return uuid.Nil, false, utils.BadRequestResponse(c, "Invalid "+name)
	}
	return id, true, nil
}

// currentUser the authenticated caller; ok is false once the 401 has been written
func currentUser(c *fiber.Ctx) (*utils.UserContext, bool, error) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(c.UserContext(), "Unauthorized access attempt")
		return nil, false, utils.UnauthorizedResponse(c, "")
	}
	return user, true, nil
}

// parseBody decodes and validates the request body; ok is false once the 400 has been written
func parseBody(c *fiber.Ctx, req interface{}) (bool, error) {
	ctx := c.UserContext()
	if err := c.BodyParser(req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return false, utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return false, utils.ValidationErrorResponse(c, errors)
	}
	return true, nil
}
