// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive moves a source file into long-term storage once it has
// been split. The backend is chosen from the shape of the archiver config:
// the first registered backend whose predicate accepts the config wins, and
// anything else falls back to NullArchiver.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfsp/pkg/types"
)

// Archiver post-processes a source file after a successful split.
type Archiver interface {
	// Name identifies the backend in status output.
	Name() string

	// Archive stores the file at path and reports what happened to it.
	Archive(ctx context.Context, path string) (types.ArchiveOutcome, error)
}

// ObjectStore is the subset of an object-storage client the archiver needs.
type ObjectStore interface {
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Upload stores the local file at path under key.
	Upload(ctx context.Context, key, path string) error
}

// backend pairs a config predicate with a constructor.
type backend struct {
	name     string
	suitable func(cfg *types.ArchiverConfig) bool
	build    func(cfg *types.ArchiverConfig, w io.Writer) Archiver
}

var backends = []backend{
	{
		name:     string(types.ArchiverS3),
		suitable: S3Suitable,
		build: func(cfg *types.ArchiverConfig, w io.Writer) Archiver {
			return NewObjectStoreArchiver(NewS3Store(*cfg), w)
		},
	},
}

// Select returns the archiver for cfg. A nil config, or one no backend
// accepts, yields a NullArchiver.
func Select(cfg *types.ArchiverConfig, w io.Writer) Archiver {
	if cfg != nil {
		for _, b := range backends {
			if b.suitable(cfg) {
				return b.build(cfg, w)
			}
		}
	}
	return NewNullArchiver(w)
}

// Key returns the object key for a local file: its base name with spaces
// replaced by underscores.
func Key(path string) string {
	return strings.ReplaceAll(filepath.Base(path), " ", "_")
}

// NullArchiver leaves the file in place and says so.
type NullArchiver struct {
	w io.Writer
}

// NewNullArchiver returns an archiver that only writes a warning to w.
func NewNullArchiver(w io.Writer) *NullArchiver {
	return &NullArchiver{w: w}
}

func (n *NullArchiver) Name() string { return "none" }

func (n *NullArchiver) Archive(_ context.Context, path string) (types.ArchiveOutcome, error) {
	fmt.Fprintln(n.w, "warning: no archiver has been set up in the config file")
	fmt.Fprintf(n.w, "leaving %s in place\n", path)
	return types.ArchiveSkipped, nil
}

// ObjectStoreArchiver uploads the file to an object store and deletes the
// local copy once the object is confirmed to exist.
type ObjectStoreArchiver struct {
	store ObjectStore
	w     io.Writer
}

// NewObjectStoreArchiver returns an archiver backed by store, writing
// status lines to w.
func NewObjectStoreArchiver(store ObjectStore, w io.Writer) *ObjectStoreArchiver {
	return &ObjectStoreArchiver{store: store, w: w}
}

func (a *ObjectStoreArchiver) Name() string { return "object-store" }

// Archive uploads path unless its key is already present, then deletes the
// local file. The delete only happens after a fresh existence check, so an
// upload that returned without error but left no object keeps the file.
func (a *ObjectStoreArchiver) Archive(ctx context.Context, path string) (types.ArchiveOutcome, error) {
	key := Key(path)

	exists, err := a.store.Exists(ctx, key)
	if err != nil {
		return types.ArchiveNone, fmt.Errorf("checking archive for %s: %w", key, err)
	}

	var outcome types.ArchiveOutcome
	if exists {
		fmt.Fprintf(a.w, "archived: %s (already in the archive)\n", key)
		outcome = types.ArchiveAlreadyArchived
	} else {
		if err := a.store.Upload(ctx, key, path); err != nil {
			return types.ArchiveNone, fmt.Errorf("uploading %s: %w", path, err)
		}
		fmt.Fprintf(a.w, "archived: %s (uploaded)\n", key)
		outcome = types.ArchiveUploaded
	}

	confirmed, err := a.store.Exists(ctx, key)
	if err != nil {
		return outcome, fmt.Errorf("confirming %s in archive: %w", key, err)
	}
	if !confirmed {
		return outcome, fmt.Errorf("%s not found in archive after upload; leaving %s in place", key, path)
	}

	if err := os.Remove(path); err != nil {
		return outcome, fmt.Errorf("deleting %s: %w", path, err)
	}
	fmt.Fprintf(a.w, "deleted:  %s (now in the archive)\n", path)
	return outcome, nil
}
