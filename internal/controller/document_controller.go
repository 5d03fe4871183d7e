package controller

import (
	"fmt"
	"io"

	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/internal/pkg/serverutils"
	"quiz-generation-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListByCourse(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListPassages(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	maxUploadBytes  int64
}

func NewDocumentController(documentService service.IDocumentService, maxUploadBytes int64) IDocumentController {
	return &documentController{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get("", c.List)
	h.Get("by-course/:courseId", c.ListByCourse)
	h.Get(":id", c.Show)
	h.Get(":id/passages", c.ListPassages)
	h.Delete(":id", c.Delete)
}

// Upload expects multipart fields course_id and file.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	courseId, err := uuid.Parse(ctx.FormValue("course_id"))
	if err != nil {
		return apperror.NewValidationError("course_id", "must be a valid UUID")
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return apperror.NewValidationError("file", "file is required")
	}
	if c.maxUploadBytes > 0 && header.Size > c.maxUploadBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", c.maxUploadBytes))
	}

	f, err := header.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	req := dto.UploadDocumentRequest{
		CourseId:     courseId,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Data:         data,
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Upload(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.documentService.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) ListByCourse(ctx *fiber.Ctx) error {
	courseId, err := uuidParam(ctx, "courseId")
	if err != nil {
		return err
	}

	res, err := c.documentService.ListByCourse(ctx.UserContext(), courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) ListPassages(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.ListPassages(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list passages", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.documentService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}
