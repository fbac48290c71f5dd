package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int    `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	Library  LibraryConfig  `yaml:"library"`
	Encoding EncodingConfig `yaml:"encoding"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

type LibraryConfig struct {
	// Root of the music library to scan.
	Root string `yaml:"root"`

	// ArtistDepth is the 1-based path element of a track's path relative to
	// the root that names the artist. Depth 1 means the top-level directory
	// under the root.
	ArtistDepth int `yaml:"artist_depth"`

	// IndexFile is where `mp3ify index` writes its snapshot.
	IndexFile string `yaml:"index_file"`
}

type EncodingConfig struct {
	// Bitrate passed to ffmpeg, e.g. "320k".
	Bitrate string `yaml:"bitrate"`
}

type ArchiveConfig struct {
	// Backend for converted originals: "none", "local" or "gcs".
	Backend string `yaml:"backend"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Archive backends.
const (
	ArchiveNone  = "none"
	ArchiveLocal = "local"
	ArchiveGCS   = "gcs"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	// Unmarshal the YAML data into the struct
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	if err := applyDefaults(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns a configuration with all defaults applied, for running
// without a config file.
func Default() *Config {
	config := &Config{}
	// applyDefaults only fails on invalid values, which an empty config
	// cannot contain.
	_ = applyDefaults(config)
	return config
}

func applyDefaults(config *Config) error {
	if config.Library.ArtistDepth == 0 {
		config.Library.ArtistDepth = 1
	}
	if config.Library.ArtistDepth < 0 {
		return fmt.Errorf("library.artist_depth must be positive, got %d", config.Library.ArtistDepth)
	}

	if config.Library.IndexFile == "" {
		config.Library.IndexFile = "music_index.json"
	}

	if config.Encoding.Bitrate == "" {
		config.Encoding.Bitrate = "320k"
	}

	switch config.Archive.Backend {
	case "":
		config.Archive.Backend = ArchiveLocal
	case ArchiveNone, ArchiveLocal:
	case ArchiveGCS:
		if config.Archive.Bucket == "" {
			return fmt.Errorf("archive.bucket is required for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown archive backend: %s", config.Archive.Backend)
	}

	return nil
}
