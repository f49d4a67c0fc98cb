package handler

import (
	"encoding/json"
	"errors"

	"github.com/Adya-Prasad/Inferenz/internal/delivery/http/dto"
	"github.com/Adya-Prasad/Inferenz/internal/usecase/search"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	searchUsecase *search.SearchUsecase
}

func NewSearchHandler(searchUsecase *search.SearchUsecase) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase}
}

// Search runs semantic search over stored chunks and returns the nearest
// ones, closest first.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	chunks, err := h.searchUsecase.Search(c.Context(), req.Query, req.TopK)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	results := make([]dto.SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, dto.SearchResult{
			ID:           chunk.ID,
			DatasourceID: chunk.DatasourceID,
			ChunkText:    chunk.ChunkText,
			Metadata:     json.RawMessage(chunk.Metadata),
			Distance:     chunk.Distance,
		})
	}

	return c.Status(fiber.StatusOK).JSON(results)
}
