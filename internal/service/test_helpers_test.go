package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vik9386/backend/internal/db"
	"github.com/vik9386/backend/internal/repository"
	"github.com/vik9386/backend/internal/testutils"
	"github.com/vik9386/backend/internal/uploader"
)

// fakeUploader mimics the media store: returns a stable URL per file and
// removes the staged file like the real uploader does.
type fakeUploader struct {
	failAll bool
	uploads []string
}

func (f *fakeUploader) Upload(_ context.Context, localPath string) (*uploader.Result, error) {
	if localPath == "" {
		return nil, nil
	}
	defer os.Remove(localPath)
	if f.failAll {
		return nil, errors.New("upload failed")
	}
	f.uploads = append(f.uploads, localPath)
	return &uploader.Result{
		URL: "https://media.test/" + filepath.Base(localPath),
		Key: filepath.Base(localPath),
	}, nil
}

func newTestService(t *testing.T, up uploader.Uploader) *Service {
	t.Helper()
	testutils.SetupConfig(t)
	testutils.SetupDB(t)

	repos := repository.NewRepositories(
		repository.NewUserRepository(db.DB),
		repository.NewSubscriptionRepository(db.DB),
	)
	return New(repos, up)
}

// stageTempFile creates a throwaway staged upload file.
func stageTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake image bytes"), 0644); err != nil {
		t.Fatalf("write staged file: %v", err)
	}
	return path
}
