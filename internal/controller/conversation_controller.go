package controller

import (
	"fmt"
	"path/filepath"

	"loan-agent-be/internal/dto"
	"loan-agent-be/internal/pkg/serverutils"
	"loan-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	UploadDocument(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type conversationController struct {
	service    service.IConversationService
	uploadsDir string
}

func NewConversationController(service service.IConversationService, uploadsDir string) IConversationController {
	return &conversationController{
		service:    service,
		uploadsDir: uploadsDir,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Post("/session", c.StartSession)
	h.Post("/session/:id/message", c.SendMessage)
	h.Post("/session/:id/document", c.UploadDocument)
	h.Get("/session/:id/history", c.History)
}

func (c *conversationController) StartSession(ctx *fiber.Ctx) error {
	result, err := c.service.StartSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session started", toTurnResponse(result)))
}

func (c *conversationController) SendMessage(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := c.service.HandleInput(ctx.Context(), sessionID, req.Message)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message processed", toTurnResponse(result)))
}

func (c *conversationController) UploadDocument(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")

	file, err := ctx.FormFile("document")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing document file")
	}

	// Stored under a random name so uploads cannot collide or escape the dir.
	savedPath := filepath.Join(c.uploadsDir, fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename)))
	if err := ctx.SaveFile(file, savedPath); err != nil {
		return err
	}

	result, err := c.service.HandleFile(ctx.Context(), sessionID, savedPath)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document processed", toTurnResponse(result)))
}

func (c *conversationController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")

	messages, err := c.service.History(sessionID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", dto.HistoryResponse{
		SessionID: sessionID,
		Messages:  messages,
	}))
}

func toTurnResponse(result *service.TurnResult) dto.TurnResponse {
	return dto.TurnResponse{
		SessionID: result.SessionID,
		Messages:  result.Messages,
		Awaiting:  result.Awaiting,
		Ended:     result.Ended,
		Halted:    result.Halted,
	}
}
