package controller

import (
	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/serverutils"
	"quiz-generation-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILibraryController interface {
	RegisterRoutes(r fiber.Router)
	ListReusable(ctx *fiber.Ctx) error
	MarkPoor(ctx *fiber.Ctx) error
}

type libraryController struct {
	libraryService service.ILibraryService
}

func NewLibraryController(libraryService service.ILibraryService) ILibraryController {
	return &libraryController{libraryService: libraryService}
}

func (c *libraryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/question-library/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("by-document/:documentId", c.ListReusable)
	h.Post("mark-poor", c.MarkPoor)
}

func (c *libraryController) ListReusable(ctx *fiber.Ctx) error {
	documentId, err := uuidParam(ctx, "documentId")
	if err != nil {
		return err
	}

	res, err := c.libraryService.ListReusable(ctx.UserContext(), documentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list question library", res))
}

func (c *libraryController) MarkPoor(ctx *fiber.Ctx) error {
	var req dto.MarkPoorRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.libraryService.MarkPoor(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success mark question as poor", res))
}
