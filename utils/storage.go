package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const (
	StorageProviderLocal = "local"
	StorageProviderGCS   = "gcs"
)

func GetStorageProvider() string {
	provider := strings.TrimSpace(strings.ToLower(os.Getenv("STORAGE_PROVIDER")))
	if provider == "" {
		return StorageProviderLocal
	}
	return provider
}

func getUploadDir() string {
	dir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// getGoogleClient initializes a Google Cloud Storage client.
// Prefer ADC (GOOGLE_APPLICATION_CREDENTIALS); GCS_CREDENTIALS_JSON can carry
// explicit JSON for local development.
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// SaveUploadBytes stores the raw workbook bytes under objectKey on the
// configured provider.
func SaveUploadBytes(ctx context.Context, objectKey string, data []byte, contentType string) error {
	if GetStorageProvider() == StorageProviderGCS {
		return uploadBytesToGCS(ctx, objectKey, data, contentType)
	}

	path := filepath.Join(getUploadDir(), filepath.FromSlash(objectKey))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadUploadBytes fetches previously stored bytes.
func ReadUploadBytes(ctx context.Context, objectKey string) ([]byte, error) {
	if GetStorageProvider() == StorageProviderGCS {
		return readBytesFromGCS(ctx, objectKey)
	}
	return os.ReadFile(filepath.Join(getUploadDir(), filepath.FromSlash(objectKey)))
}

// DeleteUpload removes stored bytes. A missing object is not an error.
func DeleteUpload(ctx context.Context, objectKey string) error {
	if GetStorageProvider() == StorageProviderGCS {
		return deleteFromGCS(ctx, objectKey)
	}
	err := os.Remove(filepath.Join(getUploadDir(), filepath.FromSlash(objectKey)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func gcsBucket() (string, error) {
	bucket := strings.TrimSpace(os.Getenv("GCS_BUCKET"))
	if bucket == "" {
		return "", errors.New("GCS_BUCKET is required")
	}
	return bucket, nil
}

func uploadBytesToGCS(ctx context.Context, objectName string, data []byte, contentType string) error {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	bucketName, err := gcsBucket()
	if err != nil {
		return err
	}

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		return fmt.Errorf("failed to upload bytes to Google Cloud Storage: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %v", err)
	}
	return nil
}

func readBytesFromGCS(ctx context.Context, objectName string) ([]byte, error) {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	bucketName, err := gcsBucket()
	if err != nil {
		return nil, err
	}

	reader, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object content: %v", err)
	}
	return data, nil
}

func deleteFromGCS(ctx context.Context, objectName string) error {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	bucketName, err := gcsBucket()
	if err != nil {
		return err
	}

	err = client.Bucket(bucketName).Object(objectName).Delete(ctx)
	if err != nil && err != storage.ErrObjectNotExist {
		return err
	}
	return nil
}
