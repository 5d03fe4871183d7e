package controller

import (
	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/serverutils"
	"quiz-generation-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{searchService: searchService}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":documentId", c.Search)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	documentId, err := uuidParam(ctx, "documentId")
	if err != nil {
		return err
	}

	var req dto.SearchRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.Search(ctx.UserContext(), documentId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search passages", res))
}
