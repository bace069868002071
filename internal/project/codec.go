/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package project

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
)

// magic identifies .rpb containers. The payload behind the header is a
// gzip-compressed JSON document.
var magic = [4]byte{'R', 'P', 'B', 0}

// Encode writes the container: magic, little-endian uint32 version, then
// the gzipped JSON payload.
func Encode(w io.Writer, version uint32, payload any) error {
	if _, err := w.Write(magic[:]); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(payload); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish payload: %w", err)
	}
	return nil
}

// DecodePayload checks the header and returns the decompressed JSON bytes.
// A wrong magic or a broken stream wraps ErrCorrupt; a version newer than
// this build wraps ErrVersionMismatch.
func DecodePayload(r io.Reader) ([]byte, error) {
	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	if got != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: missing version", ErrCorrupt)
	}
	if version > FormatVersion {
		return nil, fmt.Errorf("%w: file version %d, reader supports up to %d", ErrVersionMismatch, version, FormatVersion)
	}
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()
	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return payload, nil
}

// Save writes the project file transactionally: encode to a temp file in
// the target directory, fsync, then rename over the destination. Photo
// paths are normalized to absolute form first.
func Save(path string, f *File) error {
	for i := range f.Photos {
		abs, err := filepath.Abs(f.Photos[i].Path)
		if err == nil {
			f.Photos[i].Path = abs
		}
	}
	f.Version = FormatVersion

	var buf bytes.Buffer
	if err := Encode(&buf, FormatVersion, f); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, buf.Bytes()); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("write temp project: %w", err)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace project: %w", err)
	}
	return nil
}

// Load reads and validates a project file.
func Load(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	defer r.Close()

	payload, err := DecodePayload(r)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &f, nil
}

// writeFileSync writes data and flushes it to disk before returning.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
