// Package enroll accepts face template uploads for registered users. The
// templates and photos are opaque payloads; nothing here performs matching.
package enroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/acs/internal/models"
	"github.com/your-org/acs/internal/observability"
	"github.com/your-org/acs/internal/storage"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTooManyTemplates = errors.New("too many face templates")
	ErrTooManyPhotos    = errors.New("too many photos")
)

// Store is the persistence surface the gateway needs.
type Store interface {
	storage.UserStore
	storage.EnrollmentStore
}

// BlobStore holds photo payloads; template metadata stays in Store.
type BlobStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// Request is one enrollment call. Photos pair with templates by position;
// photos beyond the template count are counted but never stored.
type Request struct {
	UserID    int64
	UserName  string
	Templates []string
	Photos    []string
}

// Summary reports an accepted enrollment. EnrolledAt stays zero for
// dry-run validation.
type Summary struct {
	UserID         int64
	UserName       string
	TemplatesCount int
	PhotosCount    int
	EnrolledAt     time.Time
}

type Service struct {
	store Store
	blobs BlobStore
}

func NewService(store Store, blobs BlobStore) *Service {
	return &Service{store: store, blobs: blobs}
}

func (s *Service) check(ctx context.Context, req Request) error {
	user, err := s.store.GetUser(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", req.UserID, err)
	}
	if user == nil {
		return fmt.Errorf("%w: %d", ErrUserNotFound, req.UserID)
	}
	if len(req.Templates) > models.MaxFaceTemplates {
		return fmt.Errorf("%w: %d, max %d", ErrTooManyTemplates, len(req.Templates), models.MaxFaceTemplates)
	}
	if len(req.Photos) > models.MaxEnrollmentPhotos {
		return fmt.Errorf("%w: %d, max %d", ErrTooManyPhotos, len(req.Photos), models.MaxEnrollmentPhotos)
	}
	return nil
}

// Enroll validates the request, stores photo payloads, and persists one
// record per template in a single transaction. UserName is kept as the
// caller sent it, even when it differs from the registered name.
func (s *Service) Enroll(ctx context.Context, req Request) (*Summary, error) {
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}

	enrolledAt := time.Now().UTC()
	recs := make([]models.EnrollmentRecord, 0, len(req.Templates))
	for i, tmpl := range req.Templates {
		photoKey := ""
		if i < len(req.Photos) && req.Photos[i] != "" {
			key := fmt.Sprintf("enrollments/%d/%s", req.UserID, uuid.New().String())
			if err := s.blobs.PutObject(ctx, key, []byte(req.Photos[i]), "application/octet-stream"); err != nil {
				return nil, fmt.Errorf("store photo: %w", err)
			}
			photoKey = key
		}
		recs = append(recs, models.EnrollmentRecord{
			UserID:       req.UserID,
			UserName:     req.UserName,
			FaceTemplate: tmpl,
			PhotoKey:     photoKey,
			EnrolledAt:   enrolledAt,
		})
	}

	if err := s.store.AddEnrollments(ctx, recs); err != nil {
		return nil, fmt.Errorf("store templates: %w", err)
	}

	observability.EnrollmentTemplates.Add(float64(len(recs)))
	slog.Info("face templates enrolled",
		"user_id", req.UserID, "templates", len(req.Templates), "photos", len(req.Photos))

	return &Summary{
		UserID:         req.UserID,
		UserName:       req.UserName,
		TemplatesCount: len(req.Templates),
		PhotosCount:    len(req.Photos),
		EnrolledAt:     enrolledAt,
	}, nil
}

// Validate runs exactly the checks Enroll runs and persists nothing.
func (s *Service) Validate(ctx context.Context, req Request) (*Summary, error) {
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}

	slog.Info("face enrollment validated, not persisted",
		"user_id", req.UserID, "templates", len(req.Templates), "photos", len(req.Photos))

	return &Summary{
		UserID:         req.UserID,
		UserName:       req.UserName,
		TemplatesCount: len(req.Templates),
		PhotosCount:    len(req.Photos),
	}, nil
}

// Templates lists the stored enrollment records for a user.
func (s *Service) Templates(ctx context.Context, userID int64) ([]models.EnrollmentRecord, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}

	recs, err := s.store.EnrollmentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return recs, nil
}

// Photo fetches a stored photo payload by object key.
func (s *Service) Photo(ctx context.Context, key string) ([]byte, error) {
	return s.blobs.GetObject(ctx, key)
}
