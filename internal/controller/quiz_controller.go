package controller

import (
	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/internal/pkg/serverutils"
	"quiz-generation-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuizController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GeneratePreview(ctx *fiber.Ctx) error
	Finalize(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListByCourse(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	RetrievalRecords(ctx *fiber.Ctx) error
}

type quizController struct {
	quizService service.IQuizService
}

func NewQuizController(quizService service.IQuizService) IQuizController {
	return &quizController{quizService: quizService}
}

func (c *quizController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/quiz/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate", c.Generate)
	h.Post("generate-preview", c.GeneratePreview)
	h.Post("finalize", c.Finalize)
	h.Get("", c.List)
	h.Get("by-course/:courseId", c.ListByCourse)
	h.Get(":id", c.Show)
	h.Get(":id/retrieval-records", c.RetrievalRecords)
	h.Put(":id/publish", c.Publish)
	h.Delete(":id", c.Delete)
}

func (c *quizController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.quizService.Generate(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate quiz", res))
}

func (c *quizController) GeneratePreview(ctx *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.quizService.Preview(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate preview", res))
}

func (c *quizController) Finalize(ctx *fiber.Ctx) error {
	var req dto.FinalizeQuizRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.quizService.Finalize(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success finalize quiz", res))
}

func (c *quizController) List(ctx *fiber.Ctx) error {
	var req dto.ListQuizRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.NewValidationError("query", "invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.quizService.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list quizzes", res))
}

func (c *quizController) ListByCourse(ctx *fiber.Ctx) error {
	courseId, err := uuidParam(ctx, "courseId")
	if err != nil {
		return err
	}

	res, err := c.quizService.ListByCourse(ctx.UserContext(), courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list quizzes", res))
}

func (c *quizController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.quizService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show quiz", res))
}

func (c *quizController) Publish(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.PublishQuizRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	res, err := c.quizService.Publish(ctx.UserContext(), id, isPublished)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success publish quiz", res))
}

func (c *quizController) Delete(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.quizService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete quiz", nil))
}

func (c *quizController) RetrievalRecords(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.quizService.RetrievalRecords(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list retrieval records", res))
}
