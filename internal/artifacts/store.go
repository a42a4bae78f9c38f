// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package artifacts

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const fileSuffix = ".gob.gz"

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)

// ErrNotFound is returned when no file exists for the requested name and version.
var ErrNotFound = errors.New("artifact not found")

// Metadata describes one stored artifact file.
type Metadata struct {
	// Name is the artifact name, e.g. "rent_predictor_pipeline".
	Name string `json:"name"`

	// Version increases monotonically per name.
	Version int `json:"version"`

	// SavedAt is when the file was written.
	SavedAt time.Time `json:"saved_at"`

	// Source records where the payload came from (manifest path, trainer run).
	Source string `json:"source,omitempty"`

	// Checksum is the SHA-256 of the uncompressed gob payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size.
	SizeBytes int64 `json:"size_bytes"`
}

// storedFile is the on-disk envelope.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// Store persists artifacts as {name}_v{version}.gob.gz files in one directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// versions tracks every version present per name, ascending.
	versions map[string][]int
}

// NewStore opens (creating if needed) a store at baseDir and indexes existing files.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	s := &Store{baseDir: baseDir}
	if err := s.rescan(); err != nil {
		return nil, fmt.Errorf("scan artifact directory: %w", err)
	}
	return s, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// rescan rebuilds the version index (must be called with mu held or before use).
func (s *Store) rescan() error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}

	versions := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, version, ok := parseFilename(entry.Name())
		if !ok {
			continue
		}
		versions[name] = append(versions[name], version)
	}
	for name := range versions {
		sort.Ints(versions[name])
	}
	s.versions = versions
	return nil
}

// parseFilename splits "rent_recommender_v3.gob.gz" into ("rent_recommender", 3).
func parseFilename(file string) (string, int, bool) {
	base, ok := strings.CutSuffix(file, fileSuffix)
	if !ok {
		return "", 0, false
	}
	idx := strings.LastIndex(base, "_v")
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(base[idx+2:])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return base[:idx], version, true
}

func (s *Store) path(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, fileSuffix))
}

// Save writes data under name. A version of 0 allocates the next version.
// The write is atomic: readers see either the old set of files or the new one.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, data any, meta Metadata) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}
	if version < 0 {
		return nil, fmt.Errorf("invalid version %d", version)
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(data); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	sum := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compress %s: %w", name, err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if version == 0 {
		version = s.latestLocked(name) + 1
	}

	meta.Name = name
	meta.Version = version
	meta.Checksum = hex.EncodeToString(sum[:])
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()

	tmp, err := os.CreateTemp(s.baseDir, "."+name+"-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // no-op after successful rename

	if err := gob.NewEncoder(tmp).Encode(storedFile{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(name, version)); err != nil {
		return nil, fmt.Errorf("install %s: %w", name, err)
	}

	if !slices.Contains(s.versions[name], version) {
		s.versions[name] = append(s.versions[name], version)
		sort.Ints(s.versions[name])
	}
	return &meta, nil
}

// Load decodes the artifact into target. A version of 0 loads the latest.
// The payload checksum is verified before decoding.
func (s *Store) Load(ctx context.Context, name string, version int, target any) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		version = s.latestLocked(name)
		if version == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
	}

	sf, err := s.readEnvelope(name, version)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed %s: %w", name, err)
	}

	sum := sha256.Sum256(raw)
	if got := hex.EncodeToString(sum[:]); got != sf.Metadata.Checksum {
		return nil, fmt.Errorf("%s v%d checksum mismatch: expected %s, got %s", name, version, sf.Metadata.Checksum, got)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &sf.Metadata, nil
}

func (s *Store) readEnvelope(name string, version int) (*storedFile, error) {
	f, err := os.Open(s.path(name, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s v%d", ErrNotFound, name, version)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read %s v%d: %w", name, version, err)
	}
	return &sf, nil
}

// LatestVersion returns the latest version for name.
func (s *Store) LatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.latestLocked(name)
	return v, v > 0
}

func (s *Store) latestLocked(name string) int {
	vs := s.versions[name]
	if len(vs) == 0 {
		return 0
	}
	return vs[len(vs)-1]
}

// List returns metadata for the latest version of every artifact, sorted by name.
// Unreadable files are skipped.
func (s *Store) List(ctx context.Context) ([]Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.versions))
	for name := range s.versions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Metadata, 0, len(names))
	for _, name := range names {
		sf, err := s.readEnvelope(name, s.latestLocked(name))
		if err != nil {
			continue
		}
		out = append(out, sf.Metadata)
	}
	return out, nil
}

// Delete removes one version of an artifact.
func (s *Store) Delete(ctx context.Context, name string, version int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(name, version)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s v%d", ErrNotFound, name, version)
		}
		return fmt.Errorf("delete %s v%d: %w", name, version, err)
	}
	s.versions[name] = slices.DeleteFunc(s.versions[name], func(v int) bool { return v == version })
	if len(s.versions[name]) == 0 {
		delete(s.versions, name)
	}
	return nil
}

// Prune keeps the newest keep versions of name and removes the rest.
// It returns the number of files removed.
func (s *Store) Prune(ctx context.Context, name string, keep int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vs := s.versions[name]
	if len(vs) <= keep {
		return 0, nil
	}

	removed := 0
	for _, v := range vs[:len(vs)-keep] {
		if err := os.Remove(s.path(name, v)); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.versions[name] = slices.Clone(vs[removed:])
			return removed, fmt.Errorf("prune %s v%d: %w", name, v, err)
		}
		removed++
	}
	s.versions[name] = slices.Clone(vs[len(vs)-keep:])
	return removed, nil
}
