/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session ties the scene, the photo manager and the
// configuration together and implements the project lifecycle: open,
// save, and the unsaved-changes protocol in front of destructive
// operations.
package session

import (
	"errors"
	"fmt"

	"photobook/internal/canvas"
	"photobook/internal/config"
	"photobook/internal/id"
	applog "photobook/internal/log"
	"photobook/internal/model"
	"photobook/internal/photo"
	"photobook/internal/project"
)

var (
	// ErrWaitingForUserInput means the operation opened a modal and
	// will complete, or not, once the user answers it.
	ErrWaitingForUserInput = errors.New("waiting for user input")

	// ErrDialogCancelled means the user backed out of a file dialog.
	ErrDialogCancelled = errors.New("dialog cancelled")
)

// FileDialog asks the user for a project path. Frontends provide a real
// dialog; tests provide a canned answer. ok is false when the user
// cancels.
type FileDialog interface {
	SaveFileName() (path string, ok bool)
}

type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingNewProject
	pendingLoadProject
)

type pendingOp struct {
	kind pendingKind
	path string
}

// Session is the editing state of one running instance.
type Session struct {
	alloc  *id.Allocator
	Photos *photo.Manager
	Pages  []*canvas.State

	ActiveProject string

	Modals *ModalManager
	dialog FileDialog
	cfg    *config.AutoPersisting

	dirty       bool
	pending     pendingOp
	saveWarning id.ModalID
}

// New builds a session with one default page. cfg and dialog may be
// nil; recent-project bookkeeping and save dialogs are skipped then.
func New(dialog FileDialog, cfg *config.AutoPersisting) *Session {
	alloc := id.NewAllocator()
	s := &Session{
		alloc:  alloc,
		Photos: photo.NewManager(),
		Modals: NewModalManager(alloc),
		dialog: dialog,
		cfg:    cfg,
	}
	s.resetScene()
	return s
}

func (s *Session) resetScene() {
	s.Pages = []*canvas.State{canvas.New(s.alloc, model.DefaultPage())}
	s.Photos.Clear()
	s.ActiveProject = ""
	s.dirty = false
}

// Allocator returns the session-wide id allocator.
func (s *Session) Allocator() *id.Allocator { return s.alloc }

// MarkDirty records that the scene diverged from the saved project.
func (s *Session) MarkDirty() { s.dirty = true }

// HasUnsavedChanges reports whether closing the scene would lose work.
// A scene that was never saved counts as unsaved once photos are loaded.
func (s *Session) HasUnsavedChanges() bool {
	if s.dirty {
		return true
	}
	return s.ActiveProject == "" && s.Photos.Len() > 0
}

// Scene returns the current scene for saving and exporting.
func (s *Session) Scene() *project.Scene {
	return &project.Scene{Photos: s.Photos.ReadyPhotos(), Pages: s.Pages}
}

// SaveProject writes the scene to the active project path, asking for a
// path first when there is none. On success the project becomes active
// and is recorded in the recent list.
func (s *Session) SaveProject() error {
	path := s.ActiveProject
	if path == "" {
		if s.dialog == nil {
			return ErrDialogCancelled
		}
		p, ok := s.dialog.SaveFileName()
		if !ok {
			return ErrDialogCancelled
		}
		path = p
	}
	if err := project.Save(path, project.FromScene(s.Scene())); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	s.ActiveProject = path
	s.dirty = false
	s.recordProject(path)
	applog.WithComponent("session").Info("project saved", "path", path)
	return nil
}

// SaveProjectAs writes the scene to an explicitly chosen path.
func (s *Session) SaveProjectAs(path string) error {
	s.ActiveProject = path
	return s.SaveProject()
}

// NewProject replaces the scene with a fresh one. With unsaved changes
// it opens the save warning instead and returns ErrWaitingForUserInput;
// the operation completes through CheckModals.
func (s *Session) NewProject() error {
	return s.guarded(pendingOp{kind: pendingNewProject})
}

// LoadProject opens the project at path, guarded the same way as
// NewProject.
func (s *Session) LoadProject(path string) error {
	return s.guarded(pendingOp{kind: pendingLoadProject, path: path})
}

func (s *Session) guarded(op pendingOp) error {
	// At most one pending operation; a second request waits on the
	// modal already shown.
	if s.saveWarning != 0 {
		return ErrWaitingForUserInput
	}
	if s.HasUnsavedChanges() {
		s.pending = op
		s.saveWarning = s.Modals.PushSaveWarning("The current project has unsaved changes. Save before continuing?")
		return ErrWaitingForUserInput
	}
	return s.execute(op)
}

// CheckModals advances operations blocked on a modal answer. Frontends
// call it once per event-loop tick.
func (s *Session) CheckModals() error {
	if s.saveWarning == 0 {
		return nil
	}
	resp := s.Modals.Response(s.saveWarning)
	if resp == ResponseNone {
		return nil
	}
	s.Modals.Dismiss(s.saveWarning)
	s.saveWarning = 0
	op := s.pending
	s.pending = pendingOp{}

	switch resp {
	case ResponseSave:
		if err := s.SaveProject(); err != nil {
			if errors.Is(err, ErrDialogCancelled) {
				return nil
			}
			return err
		}
		return s.execute(op)
	case ResponseDontSave:
		return s.execute(op)
	default:
		return nil
	}
}

func (s *Session) execute(op pendingOp) error {
	switch op.kind {
	case pendingNewProject:
		s.resetScene()
		applog.WithComponent("session").Info("new project")
		return nil
	case pendingLoadProject:
		return s.loadNow(op.path)
	default:
		return nil
	}
}

func (s *Session) loadNow(path string) error {
	f, err := project.Load(path)
	if err != nil {
		s.Modals.PushError(fmt.Sprintf("Could not open %s: %v", path, err))
		return fmt.Errorf("load project: %w", err)
	}
	s.resetScene()
	scene := f.ToScene(s.alloc, func(p string) (photo.Photo, bool) {
		return s.Photos.PhotoByPath(p)
	})
	if len(scene.Pages) > 0 {
		s.Pages = scene.Pages
	}
	for _, p := range scene.Photos {
		s.Photos.AddPhoto(p.Path)
	}
	s.ActiveProject = path
	s.dirty = false
	s.recordProject(path)
	applog.WithComponent("session").Info("project loaded", "path", path, "pages", len(s.Pages))
	return nil
}

// RestoreAutoSave replaces the scene with a crash-recovery snapshot.
func (s *Session) RestoreAutoSave(a *project.AutoSaveFile) {
	if a == nil {
		return
	}
	s.resetScene()
	scene := a.Project.ToScene(s.alloc, nil)
	if len(scene.Pages) > 0 {
		s.Pages = scene.Pages
	}
	for _, p := range scene.Photos {
		s.Photos.AddPhoto(p.Path)
	}
	s.ActiveProject = a.ActiveProject
	// The snapshot is by definition ahead of whatever is on disk.
	s.dirty = true
}

func (s *Session) recordProject(path string) {
	if s.cfg == nil {
		return
	}
	s.cfg.AddRecentProject(path)
	s.cfg.SetLastProject(path)
}
