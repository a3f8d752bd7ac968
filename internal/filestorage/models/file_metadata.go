package models

import "time"

type FileMetadata struct {
	ID          string    `json:"id" db:"id"`
	FileName    string    `json:"fileName" db:"file_name"`
	Size        int64     `json:"size" db:"size"`
	ContentType string    `json:"contentType" db:"content_type"`
	Checksum    string    `json:"checksum" db:"checksum"`
	StoragePath string    `json:"-" db:"storage_path"`
	UploadedAt  time.Time `json:"uploadedAt" db:"uploaded_at"`
}
