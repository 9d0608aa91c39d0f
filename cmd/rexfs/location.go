package main

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/hupe1980/rexfs/internal/config"
)

const schemeFile = "file"

var errBadLocation = errors.New("invalid location")

// location is a parsed URI: a backend plus the name passed to Open or Create.
type location struct {
	Scheme  string
	Backend string
	Name    string
}

// parseLocation accepts a bare path, file:///abs/path, or
// <type>://<backend>/<key> where type is local, minio or s3.
func parseLocation(raw string) (location, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		if raw == "" {
			return location{}, fmt.Errorf("%w: empty", errBadLocation)
		}
		return location{Scheme: schemeFile, Name: raw}, nil
	}

	switch scheme {
	case schemeFile:
		if !strings.HasPrefix(rest, "/") {
			return location{}, fmt.Errorf("%w: %q: file URIs must be absolute", errBadLocation, raw)
		}
		return location{Scheme: schemeFile, Name: rest}, nil
	case config.TypeLocal, config.TypeMinIO, config.TypeS3:
		backend, key, _ := strings.Cut(rest, "/")
		if backend == "" {
			return location{}, fmt.Errorf("%w: %q: missing backend name", errBadLocation, raw)
		}
		return location{Scheme: scheme, Backend: backend, Name: key}, nil
	default:
		return location{}, fmt.Errorf("%w: %q: unknown scheme %q", errBadLocation, raw, scheme)
	}
}

func (l location) backendKey() string {
	return l.Scheme + "://" + l.Backend
}

// isDir reports whether l names a directory or key prefix rather than a file.
func (l location) isDir() bool {
	return l.Name == "" || strings.HasSuffix(l.Name, "/")
}

// join returns l with base appended to its name.
func (l location) join(base string) location {
	if l.Scheme == schemeFile {
		l.Name = filepath.Join(l.Name, base)
	} else {
		l.Name = path.Join(l.Name, base)
	}
	return l
}

func (l location) base() string {
	if l.Scheme == schemeFile {
		return filepath.Base(l.Name)
	}
	return path.Base(l.Name)
}

func (l location) String() string {
	if l.Scheme == schemeFile {
		return l.Name
	}
	return l.backendKey() + "/" + l.Name
}
