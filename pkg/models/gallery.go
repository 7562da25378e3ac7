package models

// GalleryItem represents an image or video shown in the public gallery
type GalleryItem struct {
	BaseModel
	Filename     string `gorm:"not null" json:"filename"`
	OriginalName string `gorm:"not null" json:"original_name"`
	FileType     string `gorm:"not null" json:"file_type"` // image, video
	FileSize     int64  `json:"file_size"`
	URL          string `gorm:"not null" json:"url"`
	S3Key        string `json:"s3_key"`
	Caption      string `json:"caption"`
	Category     string `gorm:"default:'general'" json:"category"`
	IsFeatured   bool   `gorm:"default:false" json:"is_featured"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
}
