/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"photobook/internal/appdirs"
	"photobook/internal/autosave"
	"photobook/internal/crash"
	"photobook/internal/export"
	"photobook/internal/id"
	"photobook/internal/library"
	applog "photobook/internal/log"
	"photobook/internal/photo"
	"photobook/internal/project"
	"photobook/internal/version"
)

func usage() {
	fmt.Println("Photobook headless project tool")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  photobook version|-v|--version             Show version")
	fmt.Println("  photobook inspect <file.rpb>               Print a project summary")
	fmt.Println("  photobook export-pdf <file.rpb> <out.pdf>  Export all pages to a PDF")
	fmt.Println("  photobook export-png <file.rpb> <outdir>   Render pages as PNG previews")
	fmt.Println("  photobook index <photo-dir>                Scan a directory into the library index")
	fmt.Println("  photobook search [options] [name]          Query the library index")
	fmt.Println("  photobook recover                          Print the auto-save snapshot state")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer func() { crash.Recover(nil) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Photobook headless project tool")
			fmt.Println(version.String())
			return
		case "inspect":
			if len(args) < 3 {
				fmt.Println("inspect requires <file.rpb>")
				usage()
				os.Exit(2)
			}
			inspect(l, args[2])
			return
		case "export-pdf":
			if len(args) < 4 {
				fmt.Println("export-pdf requires <file.rpb> and <out.pdf>")
				usage()
				os.Exit(2)
			}
			scene := loadScene(l, args[2])
			if err := export.WriteScenePDF(scene, args[3], export.PDFOptions{}); err != nil {
				l.Error("pdf export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote", args[3])
			return
		case "export-png":
			if len(args) < 4 {
				fmt.Println("export-png requires <file.rpb> and <outdir>")
				usage()
				os.Exit(2)
			}
			scene := loadScene(l, args[2])
			paths, err := export.WriteScenePNGPages(scene, args[3], export.PNGOptions{})
			if err != nil {
				l.Error("png export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			for _, p := range paths {
				fmt.Println("Wrote", p)
			}
			return
		case "index":
			if len(args) < 3 {
				fmt.Println("index requires <photo-dir>")
				usage()
				os.Exit(2)
			}
			indexPhotos(l, args[2])
			return
		case "search":
			searchIndex(l, args[2:])
			return
		case "recover":
			recoverSnapshot(l)
			return
		}
	}

	usage()
}

func loadScene(l *slog.Logger, path string) *project.Scene {
	abs, _ := filepath.Abs(path)
	f, err := project.Load(abs)
	if err != nil {
		l.Error("load failed", slog.String("path", abs), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return f.ToScene(id.NewAllocator(), nil)
}

func inspect(l *slog.Logger, path string) {
	abs, _ := filepath.Abs(path)
	l.Info("inspect project", slog.String("path", abs))
	f, err := project.Load(abs)
	if err != nil {
		l.Error("load failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Project: %s (format v%d)\n", abs, f.Version)
	fmt.Printf("Photos: %d\n", len(f.Photos))
	fmt.Printf("Pages: %d\n", len(f.Pages))
	for i, pg := range f.Pages {
		fmt.Printf("  page %d: %gx%g %s @ %d ppi, %d layers\n",
			i+1, pg.Page.Width, pg.Page.Height, pg.Page.Unit, pg.Page.PPI, len(pg.Layers))
	}
}

func openLibrary(l *slog.Logger) *library.Index {
	_, cacheDir, err := appdirs.Ensure()
	if err != nil {
		l.Error("cache dir unavailable", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	ix, err := library.OpenIndex(cacheDir)
	if err != nil {
		l.Error("open library index failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return ix
}

func indexPhotos(l *slog.Logger, dir string) {
	mgr := photo.NewManager()
	scheduled, err := mgr.LoadDirectory(dir)
	if err != nil {
		l.Error("scan failed", slog.String("dir", dir), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	for mgr.PendingCount() > 0 {
		mgr.Drain()
		time.Sleep(10 * time.Millisecond)
	}
	mgr.Drain()

	ix := openLibrary(l)
	defer ix.Close()
	ready := mgr.ReadyPhotos()
	if err := ix.Sync(context.Background(), ready); err != nil {
		l.Error("index sync failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Indexed %d of %d photos under %s\n", len(ready), scheduled, dir)
}

func searchIndex(l *slog.Logger, argv []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	camera := fs.String("camera", "", "camera model substring")
	minRating := fs.Int("min-rating", 0, "minimum rating (1-5)")
	limit := fs.Int("limit", 0, "maximum result count")
	_ = fs.Parse(argv)

	q := library.Query{Camera: *camera, MinRating: *minRating, Limit: *limit}
	if fs.NArg() > 0 {
		q.Name = fs.Arg(0)
	}

	ix := openLibrary(l)
	defer ix.Close()
	results, err := ix.Search(context.Background(), q)
	if err != nil {
		l.Error("search failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	for _, r := range results {
		taken := "unknown date"
		if !r.TakenAt.IsZero() {
			taken = r.TakenAt.Format("2006-01-02")
		}
		fmt.Printf("%-12s %d* %-24s %s\n", taken, r.Rating, r.Camera, r.Path)
	}
	fmt.Printf("%d photo(s)\n", len(results))
}

func recoverSnapshot(l *slog.Logger) {
	_, cacheDir, err := appdirs.Ensure()
	if err != nil {
		l.Error("cache dir unavailable", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	saver := autosave.NewManager(cacheDir)
	snap := saver.Load()
	if snap == nil {
		fmt.Println("No auto-save snapshot present.")
		return
	}
	fmt.Println("Auto-save snapshot:", saver.Path())
	if snap.ActiveProject != "" {
		fmt.Println("Active project:", snap.ActiveProject)
	}
	fmt.Printf("Photos: %d, Pages: %d\n", len(snap.Project.Photos), len(snap.Project.Pages))
}
