package archive

import (
	"context"
	"fmt"

	"mp3ify/config"
)

// New selects the archiver backend from configuration.
func New(ctx context.Context, cfg *config.Config, root string) (Archiver, error) {
	switch cfg.Archive.Backend {
	case config.ArchiveNone:
		return Noop{}, nil
	case config.ArchiveLocal:
		return NewLocalArchiver(root)
	case config.ArchiveGCS:
		return NewGCSArchiver(ctx, cfg.Archive.Bucket, cfg.Archive.ObjectPrefix, cfg.Archive.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown archive backend: %s", cfg.Archive.Backend)
	}
}
