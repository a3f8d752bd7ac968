package models

import "time"

// Data Transfer Objects

type UploadFileResponse struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}

type FileInfoResponse struct {
	FileID      string    `json:"fileId"`
	FileName    string    `json:"fileName"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	Checksum    string    `json:"checksum"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type DownloadFileResponse struct {
	Content     []byte `json:"-"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type DeleteFileResponse struct {
	FileID  string `json:"fileId"`
	Deleted bool   `json:"deleted"`
}
