// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage reads library documents from a filesystem or URL and
// writes exported documents under collision-free names.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/pdiddy/folder-export/internal/httputil"
)

const (
	outputExt = ".xml"

	// defaultBase names outputs whose input yields no usable base name.
	defaultBase = "library"
)

// Source reads documents from FS, or over HTTP for http:// and https://
// locations.
type Source struct {
	FS         billy.Filesystem
	Client     *http.Client
	MaxRetries int
}

// IsRemote reports whether location is fetched over HTTP.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Read returns the raw bytes of the document at location.
func (s Source) Read(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		client := s.Client
		if client == nil {
			client = http.DefaultClient
		}
		return httputil.Get(ctx, client, location, s.MaxRetries)
	}

	if s.FS == nil {
		return nil, fmt.Errorf("reading %s: no filesystem configured", location)
	}
	data, err := util.ReadFile(s.FS, location)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	return data, nil
}

// Sink writes exported documents into FS.
type Sink struct {
	FS billy.Filesystem
}

// OutputBase returns the file name stem for an export of folderID from
// input at time now: "<unix-millis>__<input-stem>_<folder-id>". The input
// stem is the last path element up to its first dot.
func OutputBase(input, folderID string, now time.Time) string {
	name := input
	if IsRemote(name) {
		name, _, _ = strings.Cut(name, "?")
	}
	name = name[strings.LastIndexAny(name, `/\`)+1:]
	name, _, _ = strings.Cut(name, ".")
	if name == "" {
		name = defaultBase
	}
	return fmt.Sprintf("%d__%s_%s", now.UnixMilli(), sanitize(name), sanitize(folderID))
}

// sanitize keeps a name component inside a single path element.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '-'
		}
		return r
	}, s)
}

// SaveUnique writes data to base+".xml", or to base+"_N.xml" with the
// lowest N starting at 0 that does not exist yet. It returns the name
// written. Existing files are never overwritten.
func (s Sink) SaveUnique(base string, data []byte) (string, error) {
	name := base + outputExt
	for i := 0; ; i++ {
		err := s.create(name, data)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
		name = fmt.Sprintf("%s_%d%s", base, i, outputExt)
	}
}

func (s Sink) create(name string, data []byte) error {
	if _, err := s.FS.Stat(name); err == nil {
		return os.ErrExist
	} else if !os.IsNotExist(err) {
		return err
	}

	f, err := s.FS.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
