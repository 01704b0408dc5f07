package api

import (
	"errors"
	"io"
	"time"

	"lexindex/extract"
	"lexindex/store"
	"lexindex/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const previewChars = 1000

type DocumentHandler struct {
	store     store.DBStorer
	files     store.FileStorer
	extractor *extract.Service
	indexer   Indexer
}

func NewDocumentHandler(storer store.DBStorer, files store.FileStorer, extractor *extract.Service, indexer Indexer) *DocumentHandler {
	return &DocumentHandler{
		store:     storer,
		files:     files,
		extractor: extractor,
		indexer:   indexer,
	}
}

// HandleUpload accepts a multipart document upload, extracts its text and
// registers it. With ?index=true the document is indexed inline.
func (h *DocumentHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ErrBadRequest()
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := extract.AllowedTypes[contentType]; !ok {
		return NewError(fiber.StatusBadRequest, "file type not allowed: only PDF, DOC, DOCX, RTF, HTML or plain text")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return NewError(fiber.StatusBadRequest, "file is empty")
	}

	fileURL, err := h.files.Save(fileHeader.Filename, data)
	if err != nil {
		return err
	}

	text, err := h.extractor.Text(c.Context(), data, contentType)
	if err != nil {
		if errors.Is(err, extract.ErrTypeMismatch) {
			return NewError(fiber.StatusBadRequest, err.Error())
		}
		// The upload survives a failed extraction; the document simply
		// stays unindexable until re-uploaded.
		text = ""
	}

	doc := types.Document{
		ID:          uuid.New(),
		Filename:    fileHeader.Filename,
		URL:         fileURL,
		ContentType: contentType,
		TextPreview: extract.Preview(text, previewChars),
		FullText:    text,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.CreateDocument(c.Context(), doc); err != nil {
		return err
	}

	resp := fiber.Map{"document": doc}
	if c.Query("index") == "true" && text != "" {
		result, err := h.indexer.IndexDocument(c.Context(), doc.ID)
		if err != nil {
			return err
		}
		resp["indexing_result"] = result
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *DocumentHandler) HandleList(c *fiber.Ctx) error {
	params := types.ListDocumentsParams{Limit: 10, Offset: 0}
	if err := c.QueryParser(&params); err != nil {
		return ErrBadRequest()
	}
	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	docs, err := h.store.ListDocuments(c.Context(), params.Limit, params.Offset)
	if err != nil {
		return err
	}
	total, err := h.store.CountDocuments(c.Context())
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []types.Document{}
	}
	return c.JSON(fiber.Map{
		"total":     total,
		"documents": docs,
	})
}

func (h *DocumentHandler) HandleGet(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrInvalidID()
	}

	doc, err := h.store.GetDocumentByID(c.Context(), docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound(docID, "document")
		}
		return err
	}
	return c.JSON(doc)
}
