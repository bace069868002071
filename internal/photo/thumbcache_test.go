/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package photo

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFingerprintTracksModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 4, 4)
	fp1, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	later := time.Now().Add(2 * time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	fp2, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint after touch: %v", err)
	}
	if fp1 == fp2 {
		t.Fatalf("fingerprint did not change with mtime")
	}
}

func TestThumbCacheRoundTrip(t *testing.T) {
	c, err := OpenThumbCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenThumbCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if b, err := c.Get(ctx, 42); err != nil || b != nil {
		t.Fatalf("miss should return nil, nil: %v %v", b, err)
	}
	want := []byte("png bytes")
	if err := c.Put(ctx, 42, want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := c.Get(ctx, 42)
	if err != nil || !bytes.Equal(got, want) {
		t.Fatalf("Get after Put: %q %v", got, err)
	}
}

func TestThumbCacheGetOrCreate(t *testing.T) {
	c, err := OpenThumbCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenThumbCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	calls := 0
	gen := func() ([]byte, error) {
		calls++
		return []byte("thumb"), nil
	}
	if _, err := c.GetOrCreate(ctx, 7, gen); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if _, err := c.GetOrCreate(ctx, 7, gen); err != nil {
		t.Fatalf("GetOrCreate hit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("generator ran %d times, want 1", calls)
	}
}

func TestThumbCacheEvictsLRU(t *testing.T) {
	t.Setenv("PB_THUMBS_MAX_BYTES", "100")
	c, err := OpenThumbCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenThumbCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	blob := make([]byte, 80)
	if err := c.Put(ctx, 1, blob); err != nil {
		t.Fatalf("Put 1: %v", err)
	}
	// Access times are second resolution; spread the writes out.
	time.Sleep(1100 * time.Millisecond)
	if err := c.Put(ctx, 2, blob); err != nil {
		t.Fatalf("Put 2: %v", err)
	}

	total, err := c.TotalBytes(ctx)
	if err != nil {
		t.Fatalf("TotalBytes: %v", err)
	}
	if total > 100 {
		t.Fatalf("cache over cap: %d bytes", total)
	}
	if b, _ := c.Get(ctx, 1); b != nil {
		t.Fatalf("oldest entry should be evicted")
	}
	if b, _ := c.Get(ctx, 2); b == nil {
		t.Fatalf("newest entry should survive eviction")
	}
}

func TestThumbnailScalesLongEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 512, 256))
	out := Thumbnail(img, 256)
	b := out.Bounds()
	if b.Dx() != 256 || b.Dy() != 128 {
		t.Fatalf("thumbnail %dx%d, want 256x128", b.Dx(), b.Dy())
	}
	small := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if got := Thumbnail(small, 256); got != small {
		t.Fatalf("small image should pass through unchanged")
	}
}

func TestRenderThumbnail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 600, 300)
	data, err := RenderThumbnail(path)
	if err != nil {
		t.Fatalf("RenderThumbnail: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty thumbnail")
	}
	cfg, err := decodeConfig(data)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != 256 || cfg.Height != 128 {
		t.Fatalf("thumbnail %dx%d, want 256x128", cfg.Width, cfg.Height)
	}
}

func decodeConfig(data []byte) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	return cfg, err
}
