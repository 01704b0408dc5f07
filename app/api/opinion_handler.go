package api

import (
	"context"
	"errors"

	"lexindex/opinions"
	"lexindex/types"

	"github.com/gofiber/fiber/v2"
)

// OpinionProcessor ingests a court opinion from its public URL.
type OpinionProcessor interface {
	ProcessFromURL(ctx context.Context, opinionURL string, metadata map[string]string) (*opinions.Result, error)
}

type OpinionHandler struct {
	processor OpinionProcessor
}

func NewOpinionHandler(processor OpinionProcessor) *OpinionHandler {
	return &OpinionHandler{
		processor: processor,
	}
}

func (h *OpinionHandler) HandleProcessFromURL(c *fiber.Ctx) error {
	var params types.ProcessOpinionParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errs := types.Validate(&params); len(errs) > 0 {
		return NewValidationError(errs)
	}

	result, err := h.processor.ProcessFromURL(c.Context(), params.URL, params.Metadata)
	if err != nil {
		switch {
		case errors.Is(err, opinions.ErrFetch), errors.Is(err, opinions.ErrNoText):
			return NewError(fiber.StatusBadRequest, err.Error())
		default:
			return err
		}
	}
	return c.JSON(result)
}
