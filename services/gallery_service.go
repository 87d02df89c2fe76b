package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/services/media"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrGalleryItemNotFound = errors.New("gallery item not found")
	ErrMediaUnavailable    = errors.New("media host is not configured")
)

// GalleryService manages gallery records and their remote assets
type GalleryService struct {
	db    *gorm.DB
	media *media.Client
}

// NewGalleryService creates a gallery service
func NewGalleryService(db *gorm.DB, mediaClient *media.Client) *GalleryService {
	return &GalleryService{db: db, media: mediaClient}
}

// GalleryUpload carries the metadata accompanying an image upload
type GalleryUpload struct {
	Title         string
	Description   string
	AltText       string
	Category      string
	Tags          []string
	EventDate     *time.Time
	EventLocation string
	IsFeatured    bool
	DisplayOrder  int
}

// Upload stores the asset on the media host first and the record second.
// If the record write fails the remote asset is deleted before the error
// is returned; a failed compensation is logged and does not mask the
// original error.
func (s *GalleryService) Upload(ctx context.Context, data []byte, contentType string, meta GalleryUpload, uploaderID uint) (*model.GalleryItem, error) {
	if s.media == nil {
		return nil, ErrMediaUnavailable
	}

	result, err := s.media.Upload(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	tags, err := marshalTags(meta.Tags)
	if err != nil {
		return nil, err
	}

	item := model.GalleryItem{
		Title:         meta.Title,
		Description:   meta.Description,
		AltText:       meta.AltText,
		AssetID:       result.AssetID,
		URL:           result.URL,
		SecureURL:     result.SecureURL,
		Width:         result.Width,
		Height:        result.Height,
		Bytes:         result.Bytes,
		Format:        result.Format,
		Category:      meta.Category,
		Tags:          tags,
		EventDate:     meta.EventDate,
		EventLocation: meta.EventLocation,
		IsActive:      true,
		IsFeatured:    meta.IsFeatured,
		DisplayOrder:  meta.DisplayOrder,
		UploadedByID:  &uploaderID,
	}

	if err := s.db.Create(&item).Error; err != nil {
		if delErr := s.media.Delete(ctx, result.AssetID); delErr != nil {
			log.Printf("Failed to clean up orphaned asset %s: %v", result.AssetID, delErr)
		}
		return nil, err
	}

	return &item, nil
}

// GalleryFilter narrows list queries. IncludeInactive is only honored
// for authenticated admin callers.
type GalleryFilter struct {
	Category        string
	FeaturedOnly    bool
	IncludeInactive bool
	Page            int
	Limit           int
}

// List returns gallery items ordered by display order then recency
func (s *GalleryService) List(filter GalleryFilter) ([]model.GalleryItem, int64, error) {
	query := s.db.Model(&model.GalleryItem{})

	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	var items []model.GalleryItem
	err := query.
		Order("display_order ASC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// Get returns one item and bumps its view counter atomically
func (s *GalleryService) Get(id uint) (*model.GalleryItem, error) {
	var item model.GalleryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&item).UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	item.ViewCount++

	return &item, nil
}

// RecordDownload bumps the download counter and returns the item
func (s *GalleryService) RecordDownload(id uint) (*model.GalleryItem, error) {
	var item model.GalleryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&item).UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
		return nil, err
	}
	item.DownloadCount++

	return &item, nil
}

// GalleryUpdate carries admin-editable metadata fields
type GalleryUpdate struct {
	Title         *string
	Description   *string
	AltText       *string
	Category      *string
	Tags          []string
	EventDate     *time.Time
	EventLocation *string
	IsActive      *bool
	IsFeatured    *bool
	DisplayOrder  *int
}

// Update applies admin edits to the record. The remote asset is never
// touched by metadata edits.
func (s *GalleryService) Update(id uint, update GalleryUpdate) (*model.GalleryItem, error) {
	var item model.GalleryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.AltText != nil {
		updates["alt_text"] = *update.AltText
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Tags != nil {
		tags, err := marshalTags(update.Tags)
		if err != nil {
			return nil, err
		}
		updates["tags"] = tags
	}
	if update.EventDate != nil {
		updates["event_date"] = *update.EventDate
	}
	if update.EventLocation != nil {
		updates["event_location"] = *update.EventLocation
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if update.IsFeatured != nil {
		updates["is_featured"] = *update.IsFeatured
	}
	if update.DisplayOrder != nil {
		updates["display_order"] = *update.DisplayOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(&item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the remote asset best-effort, then the record
// unconditionally. A remote deletion failure is logged and never blocks
// the local delete.
func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	var item model.GalleryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryItemNotFound
		}
		return err
	}

	if s.media != nil {
		if err := s.media.Delete(ctx, item.AssetID); err != nil {
			log.Printf("Failed to delete remote asset %s: %v", item.AssetID, err)
		}
	}

	return s.db.Delete(&item).Error
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
