package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gallery categories
const (
	GalleryCampus  = "campus"
	GalleryEvents  = "events"
	GallerySports  = "sports"
	GalleryArts    = "arts"
	GalleryClasses = "classes"
)

// IsValidGalleryCategory reports whether c is a known gallery category
func IsValidGalleryCategory(c string) bool {
	switch c {
	case GalleryCampus, GalleryEvents, GallerySports, GalleryArts, GalleryClasses:
		return true
	}
	return false
}

// GalleryItem is an image in the media gallery. The asset lives on the
// external media host; AssetID is the join key used to delete the remote
// object when the record is deleted.
type GalleryItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	AltText     string `json:"alt_text,omitempty"`

	AssetID   string `gorm:"uniqueIndex;not null" json:"asset_id"`
	URL       string `gorm:"not null" json:"url"`
	SecureURL string `json:"secure_url,omitempty"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	Format    string `json:"format,omitempty"`

	Category string         `gorm:"type:varchar(20);default:'campus'" json:"category"`
	Tags     datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`

	EventDate     *time.Time `json:"event_date,omitempty"`
	EventLocation string     `json:"event_location,omitempty"`

	IsActive     bool `gorm:"default:true" json:"is_active"`
	IsFeatured   bool `gorm:"default:false" json:"is_featured"`
	DisplayOrder int  `gorm:"default:0" json:"display_order"`

	UploadedByID *uint `json:"uploaded_by,omitempty"`

	ViewCount     int `gorm:"default:0" json:"view_count"`
	DownloadCount int `gorm:"default:0" json:"download_count"`
}
