package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Hasher считает контрольную сумму содержимого файла.
type Hasher interface {
	Calculate(data []byte) string
	CalculateReader(reader io.Reader) (string, error)
}

type SHA256Hasher struct{}

func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

func (h *SHA256Hasher) Calculate(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (h *SHA256Hasher) CalculateReader(reader io.Reader) (string, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, reader); err != nil {
		return "", fmt.Errorf("failed to read data: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
