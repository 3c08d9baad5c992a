package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"summarizer-backend/internal/cache"
	"summarizer-backend/internal/extract"
	"summarizer-backend/internal/shared/storage/object"
	"summarizer-backend/internal/shared/telemetry"
)

// Legacy .doc is not accepted: those are OLE2 containers, and the extractor
// only reads OOXML. Rejecting up front beats failing after the storage write.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".txt":  {},
	".docx": {},
}

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"text/plain":      {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// SummariesCleaner removes the summaries referencing a document. Implemented
// by the summaries repository; wired in bootstrap so document deletion cleans
// up both sides without a back-pointer.
type SummariesCleaner interface {
	DeleteByDocument(ctx context.Context, documentID string) error
}

// Service contains business logic for documents: upload validation, byte
// storage, text extraction, and lookups.
type Service struct {
	Store     object.ObjectStore
	Repo      DocumentsRepo
	Cache     *cache.Cache
	Summaries SummariesCleaner
	MaxBytes  int64
}

// Upload validates the payload, persists the bytes under the owner's
// namespace, extracts and normalizes the text, and records the document with
// status "uploaded".
func (s *Service) Upload(ctx context.Context, ownerID, fileName, declaredContentType string, data []byte) (Document, error) {
	if err := s.validate(fileName, declaredContentType, data); err != nil {
		return Document{}, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	fileType := classifyFileType(ext)

	storagePath, size, err := s.Store.Save(ctx, ownerID, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("save upload: %w", err)
	}

	text, err := extract.Text(ctx, data, fileType)
	if err != nil {
		// The upload is unusable without text; remove the stored bytes.
		if delErr := s.Store.Delete(ctx, storagePath); delErr != nil {
			telemetry.Error("documents.upload.cleanup_failed", map[string]any{
				"storage_path": storagePath,
				"err":          delErr.Error(),
			})
		}
		return Document{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	doc := Document{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		OriginalFilename: fileName,
		FileType:         fileType,
		FileSize:         size,
		ContentText:      text,
		StoragePath:      storagePath,
		Status:           StatusUploaded,
		UploadedAt:       time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		if delErr := s.Store.Delete(ctx, storagePath); delErr != nil {
			telemetry.Error("documents.upload.cleanup_failed", map[string]any{
				"storage_path": storagePath,
				"err":          delErr.Error(),
			})
		}
		return Document{}, err
	}

	s.Cache.PutDocument(ctx, doc.ID, doc)

	return doc, nil
}

// Get returns a document by ID scoped to its owner.
func (s *Service) Get(ctx context.Context, ownerID, documentID string) (Document, error) {
	if ownerID == "" || documentID == "" {
		return Document{}, errors.New("owner id and document id required")
	}
	return s.Repo.GetByID(ctx, ownerID, documentID)
}

// List returns documents for an owner, newest first.
func (s *Service) List(ctx context.Context, ownerID string, limit, offset int) ([]Document, error) {
	if ownerID == "" {
		return nil, errors.New("owner id required")
	}
	return s.Repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Delete removes a document, its stored bytes, its summaries, and any cached
// artifacts. The storage delete is best-effort; the row delete is not.
func (s *Service) Delete(ctx context.Context, ownerID, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, ownerID, documentID)
	if err != nil {
		return err
	}

	if doc.StoragePath != "" {
		if err := s.Store.Delete(ctx, doc.StoragePath); err != nil {
			telemetry.Error("documents.delete.storage_failed", map[string]any{
				"document_id":  documentID,
				"storage_path": doc.StoragePath,
				"err":          err.Error(),
			})
		}
	}

	if s.Summaries != nil {
		if err := s.Summaries.DeleteByDocument(ctx, documentID); err != nil {
			return err
		}
	}

	if err := s.Repo.Delete(ctx, ownerID, documentID); err != nil {
		return err
	}

	s.Cache.EvictDocument(ctx, documentID)
	s.Cache.EvictProcessing(ctx, documentID)

	return nil
}

func (s *Service) validate(fileName, declaredContentType string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return fmt.Errorf("%w: file size exceeds maximum limit of %dMB", ErrInvalidInput, s.MaxBytes/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return fmt.Errorf("%w: filename has no extension", ErrInvalidInput)
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: file type not supported", ErrInvalidInput)
	}

	// Declared content type is an independent gate; it is never trusted to
	// classify the file, only to reject obvious mismatches.
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(declaredContentType, ";")[0]))
	if contentType != "" {
		if _, ok := allowedContentTypes[contentType]; !ok {
			return fmt.Errorf("%w: file content type not supported", ErrInvalidInput)
		}
	}

	return nil
}

func classifyFileType(ext string) string {
	switch ext {
	case ".pdf":
		return FileTypePDF
	case ".txt":
		return FileTypeTXT
	case ".docx":
		return FileTypeDOCX
	default:
		return FileTypeUnknown
	}
}
