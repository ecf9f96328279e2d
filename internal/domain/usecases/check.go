package usecases

import (
	"context"

	"github.com/docview/docview/internal/domain/entities"
	"github.com/docview/docview/internal/domain/ports"
)

// CheckUseCase answers live-reload polls.
type CheckUseCase struct {
	watcher     ports.ChangeWatcher
	defaultFile string
}

// NewCheckUseCase creates a CheckUseCase with injected dependencies.
func NewCheckUseCase(watcher ports.ChangeWatcher, defaultFile string) *CheckUseCase {
	if defaultFile == "" {
		defaultFile = "README.md"
	}
	return &CheckUseCase{watcher: watcher, defaultFile: defaultFile}
}

// Check answers one poll. An empty file name falls back to the default
// document, matching clients that poll from the root path. Failures ride
// inside the returned status so polling clients always get a parseable
// payload, never a fault.
func (uc *CheckUseCase) Check(ctx context.Context, file string) entities.UpdateStatus {
	if file == "" {
		file = uc.defaultFile
	}
	return uc.watcher.CheckUpdate(ctx, file)
}
