package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"mp3ify/internal/domain"
)

const uploadTimeout = 5 * time.Minute

// GCSArchiver uploads originals to a Google Cloud Storage bucket and removes
// the local file once the upload is confirmed.
type GCSArchiver struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
}

// NewGCSArchiver creates a GCSArchiver. With an empty credentialsFile the
// client uses application default credentials.
func NewGCSArchiver(ctx context.Context, bucket, objectPrefix, credentialsFile string) (*GCSArchiver, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSArchiver{
		client:       client,
		bucket:       bucket,
		objectPrefix: objectPrefix,
	}, nil
}

func (a *GCSArchiver) Archive(ctx context.Context, track domain.TrackFile) (string, error) {
	objectName := mirrorDirFor(track.Format) + "/" + track.RelPath
	if a.objectPrefix != "" {
		objectName = a.objectPrefix + "/" + objectName
	}

	f, err := os.Open(track.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", track.Path, err)
	}
	defer f.Close()

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	wc := a.client.Bucket(a.bucket).Object(objectName).NewWriter(uploadCtx)
	if _, err := io.Copy(wc, f); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}

	// The original only disappears locally once the object is stored.
	if err := os.Remove(track.Path); err != nil {
		return "", fmt.Errorf("uploaded %s but failed to remove original: %w", objectName, err)
	}

	return objectName, nil
}

func (a *GCSArchiver) Close() error {
	return a.client.Close()
}
