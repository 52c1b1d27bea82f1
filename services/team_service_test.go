package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/torneoveteranos/tournament-system/storage"
)

type fakeUploader struct {
	uploaded  map[string]string
	deleted   []string
	uploadErr error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string]string)}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	u.uploaded[key] = contentType
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestGetTeamIncludesRoster(t *testing.T) {
	store := newFakeStore()
	store.addTeam(1, "Atletico Norte")
	store.addPlayer(10, 1, "Carlos")
	store.addPlayer(11, 1, "Miguel")
	store.addPlayer(20, 2, "Forastero")
	svc := NewTeamService(fakeTeamRepo{store}, fakePlayerRepo{store}, nil, nil)

	team, err := svc.GetTeam(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetTeam: %v", err)
	}
	if len(team.Players) != 2 {
		t.Fatalf("roster size = %d, want 2", len(team.Players))
	}

	if _, err := svc.GetTeam(context.Background(), 99); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestUploadCrestWithoutStorage(t *testing.T) {
	store := newFakeStore()
	store.addTeam(1, "Atletico Norte")
	svc := NewTeamService(fakeTeamRepo{store}, fakePlayerRepo{store}, nil, nil)

	_, err := svc.UploadCrest(context.Background(), 1, "image/png", bytes.NewReader([]byte("png")))
	if !errors.Is(err, ErrCrestStorageUnavailable) {
		t.Fatalf("expected ErrCrestStorageUnavailable, got %v", err)
	}
}

func TestUploadCrestStoresKeyAndDeletesOld(t *testing.T) {
	store := newFakeStore()
	store.addTeam(1, "Atletico Norte")
	oldKey := "teams/1/crest.png"
	if err := store.UpdateCrestKey(context.Background(), nil, 1, &oldKey); err != nil {
		t.Fatalf("seed crest key: %v", err)
	}
	uploader := newFakeUploader()
	svc := NewTeamService(fakeTeamRepo{store}, fakePlayerRepo{store}, uploader, nil)

	team, err := svc.UploadCrest(context.Background(), 1, "image/jpeg", bytes.NewReader([]byte("jpg")))
	if err != nil {
		t.Fatalf("UploadCrest: %v", err)
	}

	wantKey := "teams/1/crest.jpg"
	if team.CrestKey == nil || *team.CrestKey != wantKey {
		t.Errorf("crest key = %v, want %s", team.CrestKey, wantKey)
	}
	if _, ok := uploader.uploaded[wantKey]; !ok {
		t.Error("new crest was not uploaded")
	}
	if len(uploader.deleted) != 1 || uploader.deleted[0] != oldKey {
		t.Errorf("deleted keys = %v, want [%s]", uploader.deleted, oldKey)
	}
	if team.CrestURL == nil || *team.CrestURL != "https://cdn.example.com/"+wantKey {
		t.Errorf("crest URL = %v", team.CrestURL)
	}
}

func TestUploadCrestRejectsUnsupportedContent(t *testing.T) {
	store := newFakeStore()
	store.addTeam(1, "Atletico Norte")
	svc := NewTeamService(fakeTeamRepo{store}, fakePlayerRepo{store}, newFakeUploader(), nil)

	_, err := svc.UploadCrest(context.Background(), 1, "application/pdf", bytes.NewReader(nil))
	if !errors.Is(err, ErrCrestContentInvalid) {
		t.Fatalf("expected ErrCrestContentInvalid, got %v", err)
	}
}

func TestUploadCrestPropagatesStorageFailure(t *testing.T) {
	store := newFakeStore()
	store.addTeam(1, "Atletico Norte")
	uploader := newFakeUploader()
	uploader.uploadErr = errStorageDown
	svc := NewTeamService(fakeTeamRepo{store}, fakePlayerRepo{store}, uploader, nil)

	_, err := svc.UploadCrest(context.Background(), 1, "image/png", bytes.NewReader([]byte("png")))
	if !errors.Is(err, errStorageDown) {
		t.Fatalf("expected storage failure, got %v", err)
	}
	if store.teams[1].CrestKey != nil {
		t.Error("crest key was stored despite the failed upload")
	}
}
