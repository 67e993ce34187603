package main

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/ekgbeat"
	"github.com/carbocation/ekgbeat/beat"
	"github.com/carbocation/ekgbeat/ecgxml"
)

var compressionExtensions = []string{".gz", ".bz2", ".xz", ".zip", ".zlib"}

// inputPath resolves a subject to the file holding its recording. A subject
// that already looks like a path (it has a directory or an extension) is used
// as-is; otherwise it is looked up as <dir>/<subject><ext>.
func inputPath(subject, dir, ext string) string {
	if strings.Contains(subject, "/") || path.Ext(subject) != "" {
		return subject
	}

	if ekgbeat.IsGoogleStoragePath(dir) {
		return strings.TrimSuffix(dir, "/") + "/" + subject + ext
	}

	return filepath.Join(dir, subject+ext)
}

// identifier is the name reports are written under: the file's base name
// with its extensions removed.
func identifier(subject string) string {
	id := trimCompression(path.Base(filepath.ToSlash(subject)))

	if ext := path.Ext(id); ext != "" && ext != id {
		id = strings.TrimSuffix(id, ext)
	}

	return id
}

func trimCompression(name string) string {
	for _, ext := range compressionExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}

	return name
}

func isXML(p string) bool {
	return strings.EqualFold(path.Ext(trimCompression(p)), ".xml")
}

// loadSeries reads one subject's recording. On a parsing error the samples
// read so far are still returned alongside the error.
func loadSeries(ctx context.Context, client *storage.Client, p, id, lead string) (beat.Series, error) {
	rc, err := ekgbeat.OpenInput(ctx, p, client)
	if err != nil {
		return beat.Series{Identifier: id}, err
	}
	defer rc.Close()

	if isXML(p) {
		return ecgxml.ReadSeries(rc, lead, id)
	}

	return beat.ReadSeries(rc, id)
}
