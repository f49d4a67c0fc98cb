package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/Adya-Prasad/Inferenz/internal/delivery/http/dto"
	"github.com/Adya-Prasad/Inferenz/internal/usecase/datasource"

	"github.com/gofiber/fiber/v2"
)

type DatasourceHandler struct {
	dsUsecase *datasource.DatasourceUsecase
}

func NewDatasourceHandler(dsUsecase *datasource.DatasourceUsecase) *DatasourceHandler {
	return &DatasourceHandler{dsUsecase: dsUsecase}
}

// Upload accepts a multipart file, creates the datasource record and
// enqueues background processing. The response returns before processing
// starts; poll the datasource status to follow progress.
func (h *DatasourceHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "failed to get file"})
	}

	fileData, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to open file"})
	}
	defer fileData.Close()

	buf, err := io.ReadAll(fileData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to read file"})
	}

	ds, err := h.dsUsecase.Upload(c.Context(), file.Filename, buf, file.Header.Get("Content-Type"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadDatasourceResponse{
		ID:       ds.ID,
		FileName: ds.FileName,
		Status:   string(ds.Status),
		Message:  "Datasource uploaded successfully. Processing in background.",
	})
}

// List returns datasources, newest first, paginated.
func (h *DatasourceHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	datasources, total, err := h.dsUsecase.List(c.Context(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	infos := make([]dto.DatasourceInfo, 0, len(datasources))
	for _, ds := range datasources {
		infos = append(infos, dto.DatasourceInfo{
			ID:          ds.ID,
			FileName:    ds.FileName,
			StorageKey:  ds.StorageKey,
			FileType:    ds.FileType,
			Status:      string(ds.Status),
			TotalChunks: ds.TotalChunks,
			CreatedAt:   ds.CreatedAt,
		})
	}

	totalPages := (total + limit - 1) / limit

	return c.Status(fiber.StatusOK).JSON(dto.ListDatasourcesResponse{
		Data: infos,
		Meta: dto.PaginationMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

// GetByID returns a single datasource, including its processing status.
func (h *DatasourceHandler) GetByID(c *fiber.Ctx) error {
	datasourceID := c.Params("id")

	ds, err := h.dsUsecase.GetByID(c.Context(), datasourceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if ds == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "datasource not found"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.DatasourceInfo{
		ID:          ds.ID,
		FileName:    ds.FileName,
		StorageKey:  ds.StorageKey,
		FileType:    ds.FileType,
		Status:      string(ds.Status),
		TotalChunks: ds.TotalChunks,
		CreatedAt:   ds.CreatedAt,
	})
}

// Delete removes a datasource and its chunks.
func (h *DatasourceHandler) Delete(c *fiber.Ctx) error {
	datasourceID := c.Params("id")

	if err := h.dsUsecase.Delete(c.Context(), datasourceID); err != nil {
		if errors.Is(err, datasource.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Datasource deleted successfully"})
}
