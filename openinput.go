package ekgbeat

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// IsGoogleStoragePath reports whether path names a Google Storage object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// SplitGoogleStoragePath splits a gs://bucket/object path into its bucket and
// object name.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// OpenInput opens path for reading. Paths prefixed with gs:// are read from
// Google Storage with client, which may be nil for local paths; a leading ~/ is
// expanded. Compressed inputs are transparently decompressed. Any failure to
// reach the source is reported as ErrInputUnavailable.
func OpenInput(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var rc io.ReadCloser

	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, fmt.Errorf("%w: %s: no Google Storage client", ErrInputUnavailable, path)
		}

		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
		}

		// Open the bucket with default credentials
		handle := client.Bucket(bucketName).Object(pathName)

		r, err := handle.NewReader(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInputUnavailable, path, err)
		}
		rc = r
	} else {
		expanded, err := ExpandHome(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
		}

		f, err := os.Open(expanded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
		}
		rc = f
	}

	out, err := MaybeDecompressReadCloser(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrInputUnavailable, path, err)
	}

	return out, nil
}
