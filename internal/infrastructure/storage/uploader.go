package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/pkg/logger"
)

const defaultUploadTimeout = 30 * time.Second

// Uploader pushes listing images to the object-storage HTTP endpoint and
// returns the durable URLs it hands back.
type Uploader struct {
	uploadURL  string
	folder     string
	httpClient *http.Client
}

// NewUploader creates an uploader for the given endpoint. folder namespaces
// the stored objects.
func NewUploader(uploadURL, folder string) *Uploader {
	return &Uploader{
		uploadURL:  uploadURL,
		folder:     folder,
		httpClient: &http.Client{Timeout: defaultUploadTimeout},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload stores one image and returns its durable URL.
func (u *Uploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}
	if err := writer.WriteField("folder", u.folder); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		logger.Error(ctx, "image upload request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", domainerrors.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error(ctx, "image upload rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("filename", filename))
		return "", fmt.Errorf("%w: upload returned status %d", domainerrors.ErrUpstreamFailure, resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decoding upload response: %v", domainerrors.ErrUpstreamFailure, err)
	}
	if parsed.SecureURL == "" {
		return "", fmt.Errorf("%w: upload response missing url", domainerrors.ErrUpstreamFailure)
	}
	return parsed.SecureURL, nil
}
