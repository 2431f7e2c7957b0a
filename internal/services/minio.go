package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"leafy_back_end/internal/database"
)

// UploadProductImage pousse une image produit dans le bucket MinIO et
// retourne la clé objet stockée dans le catalogue.
func UploadProductImage(ctx context.Context, productID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("products/%s/%s%s", productID, uuid.NewString(), path.Ext(filename))

	_, err := database.MinIO.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return objectName, nil
}

// SignedImageURL génère une URL de lecture temporaire (24h) pour une image.
func SignedImageURL(ctx context.Context, objectName string) (string, error) {
	bucket := os.Getenv("MINIO_BUCKET")

	u, err := database.MinIO.PresignedGetObject(ctx, bucket, objectName, 24*time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("signed url: %w", err)
	}
	return u.String(), nil
}
