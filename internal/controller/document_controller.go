package controller

import (
	"errors"
	"io"
	"strconv"

	"doc-intelligence-be/internal/dto"
	"doc-intelligence-be/internal/pkg/serverutils"
	"doc-intelligence-be/internal/service"
	"doc-intelligence-be/pkg/docai"
	"doc-intelligence-be/pkg/docai/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Uploads above this size are rejected before the pipeline runs.
const maxUploadBytes = 20 * 1024 * 1024

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	Autofill(ctx *fiber.Ctx) error
	RunAction(ctx *fiber.Ctx) error
	ListActions(ctx *fiber.Ctx) error
	SemanticSearch(ctx *fiber.Ctx) error
	Providers(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	providerCatalog *catalog.Catalog
}

func NewDocumentController(documentService service.IDocumentService, providerCatalog *catalog.Catalog) IDocumentController {
	return &documentController{
		documentService: documentService,
		providerCatalog: providerCatalog,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("analyze", c.Analyze)
	h.Get("semantic-search", c.SemanticSearch)
	h.Get("providers", c.Providers)
	h.Post(":assetId/autofill", c.Autofill)
	h.Post(":assetId/actions", c.RunAction)
	h.Get(":assetId/actions", c.ListActions)
}

func (c *documentController) Analyze(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart field 'file' is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "file exceeds the upload limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "uploaded file is empty")
	}

	doc := docai.Document{
		Data:     data,
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}

	res, err := c.documentService.Analyze(ctx.Context(), userId, doc)
	if err != nil {
		if docai.IsKind(err, docai.KindUnsupportedMimeType) {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze document", res))
}

func (c *documentController) Autofill(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	assetId, err := uuid.Parse(ctx.Params("assetId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid asset id")
	}

	res, err := c.documentService.Autofill(ctx.Context(), userId, assetId)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success autofill document", res))
}

func (c *documentController) RunAction(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	assetId, err := uuid.Parse(ctx.Params("assetId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid asset id")
	}

	var req dto.DocumentActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.RunAction(ctx.Context(), userId, assetId, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run document action", res))
}

func (c *documentController) ListActions(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	assetId, err := uuid.Parse(ctx.Params("assetId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid asset id")
	}

	res, err := c.documentService.ListActions(ctx.Context(), userId, assetId)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list document actions", res))
}

func (c *documentController) SemanticSearch(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	q := ctx.Query("q", "")
	if q == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter 'q' is required")
	}
	limit, _ := strconv.Atoi(ctx.Query("limit", "5"))

	res, err := c.documentService.SemanticSearch(ctx.Context(), userId, q, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success semantic search documents", res))
}

func (c *documentController) Providers(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list providers", dto.ProviderInfoResponse{
		Providers: c.providerCatalog.List(),
	}))
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func mapServiceError(err error) error {
	if errors.Is(err, service.ErrAssetNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "asset not found")
	}
	return err
}
