package documents

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/response"
	"github.com/societyhub/backend/pkg/storage"
)

// Handler handles document HTTP endpoints (S3-backed).
type Handler struct {
	repo   *Repository
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates a documents handler. s3 may be nil when AWS is not
// configured; uploads are then rejected.
func NewHandler(repo *Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, s3: s3, logger: logger}
}

// Upload handles POST /api/documents (multipart form, field "file").
func (h *Handler) Upload(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "document storage unavailable")
		return
	}
	ownerID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	societyID, _ := c.MustGet(middleware.ContextSocietyID).(*uuid.UUID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file required")
		return
	}
	if fileHeader.Size > storage.MaxDocumentFileSize {
		response.BadRequest(c, "file exceeds 10MB limit")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !storage.ValidateDocumentFileType(contentType, fileHeader.Filename) {
		response.BadRequest(c, "unsupported file type")
		return
	}

	d := &models.Document{
		OwnerID:     ownerID,
		SocietyID:   societyID,
		Name:        fileHeader.Filename,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
	}
	if err := h.repo.Create(c.Request.Context(), d); err != nil {
		response.Internal(c, "failed to create document")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "failed to read file")
		return
	}
	defer file.Close()

	key := storage.DocumentKey(ownerID.String(), d.ID.String(), fileHeader.Filename)
	if _, err := h.s3.Upload(c.Request.Context(), key, contentType, file); err != nil {
		h.logger.Error("document upload", zap.Error(err), zap.String("document_id", d.ID.String()))
		_ = h.repo.Delete(c.Request.Context(), d.ID)
		response.Internal(c, "failed to upload document")
		return
	}
	if err := h.repo.SetS3Key(c.Request.Context(), d.ID, key, fileHeader.Size); err != nil {
		response.Internal(c, "failed to finalize document")
		return
	}
	d.S3Key = key
	response.Created(c, d)
}

// ListMine handles GET /api/documents — the caller's documents.
func (h *Handler) ListMine(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	list, err := h.repo.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Internal(c, "failed to load documents")
		return
	}
	response.OK(c, list)
}

// DownloadURL handles GET /api/documents/:id/download-url. Returns a
// time-limited pre-signed URL. Owner or admin only.
func (h *Handler) DownloadURL(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "document storage unavailable")
		return
	}
	d, ok := h.loadForCaller(c)
	if !ok {
		return
	}
	if d.S3Key == "" {
		response.NotFound(c, "document has no stored file")
		return
	}
	url, err := h.s3.PresignDownload(c.Request.Context(), d.S3Key)
	if err != nil {
		h.logger.Error("presign download", zap.Error(err), zap.String("document_id", d.ID.String()))
		response.Internal(c, "failed to generate download url")
		return
	}
	response.OK(c, gin.H{"url": url})
}

// Delete handles DELETE /api/documents/:id. Owner or admin only.
func (h *Handler) Delete(c *gin.Context) {
	d, ok := h.loadForCaller(c)
	if !ok {
		return
	}
	if h.s3 != nil && d.S3Key != "" {
		if err := h.s3.Delete(c.Request.Context(), d.S3Key); err != nil {
			h.logger.Warn("s3 object delete failed", zap.Error(err), zap.String("document_id", d.ID.String()))
		}
	}
	if err := h.repo.Delete(c.Request.Context(), d.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "document not found")
			return
		}
		response.Internal(c, "failed to delete document")
		return
	}
	response.NoContent(c)
}

// loadForCaller fetches the document and enforces owner-or-admin access.
func (h *Handler) loadForCaller(c *gin.Context) (*models.Document, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return nil, false
	}
	d, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "document not found")
			return nil, false
		}
		response.Internal(c, "failed to load document")
		return nil, false
	}
	role := c.MustGet(middleware.ContextUserRole).(string)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if role != string(models.RoleAdmin) && d.OwnerID != userID {
		response.Forbidden(c, "not your document")
		return nil, false
	}
	return d, true
}
