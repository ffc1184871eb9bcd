package api

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finlytics-dev/finlytics/internal/models"
	"github.com/finlytics-dev/finlytics/internal/parser"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler exposes the statement parsing pipeline over HTTP.
type Handler struct {
	svc *parser.Service
	log zerolog.Logger
}

// NewHandler creates a Handler around a parser service.
func NewHandler(svc *parser.Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.HandleHealth)
	app.Post("/upload", h.HandleUpload)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Finlytics parser API",
	})
}

// HandleUpload accepts a multipart statement upload, parses it and returns
// the partitioned transactions. The uploaded bytes live in a temp file for
// the duration of the request only.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "No file uploaded. Use form field 'file'.",
		})
	}

	uploadID := uuid.NewString()
	log := h.log.With().Str("upload_id", uploadID).Str("filename", fileHeader.Filename).Logger()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	tmp, err := os.CreateTemp("", "statement-*"+ext)
	if err != nil {
		log.Error().Err(err).Msg("creating temp file")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to store uploaded file.",
		})
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		log.Error().Err(err).Msg("saving upload")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to store uploaded file.",
		})
	}

	txns, err := h.svc.ParseFile(tmpPath)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(ErrorResponse{
				Error: "File type not supported yet",
			})
		}
		log.Error().Err(err).Msg("parse failed")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	result := models.Partition(txns, h.svc.OCREnabled())
	log.Info().Int("count", result.Count).
		Int("money_in", len(result.MoneyIn)).
		Int("money_out", len(result.MoneyOut)).
		Int("other", len(result.Other)).
		Msg("statement parsed")

	return c.JSON(result)
}
