// Package driveapi is the storage collaborator: Drive folders for the
// portfolio workspace, deck-history listing, file placement and image
// hosting for slide backgrounds.
package driveapi

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Well-known names inside the user's Drive, matching the workspace the
// portfolio app provisions.
const (
	PortfolioFolderName = "포트폴리오 이력"
	PPTFolderName       = "PPT"
	ImageFolderName     = "이미지"
)

// Drive mime types.
const (
	FolderMimeType       = "application/vnd.google-apps.folder"
	PresentationMimeType = "application/vnd.google-apps.presentation"
)

// Folder is a Drive folder handle.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FileInfo describes one Drive file.
type FileInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type"`
	CreatedTime string `json:"created_time"`
}

// Service wraps the Drive API with the calls the pipeline needs.
type Service struct {
	svc             *drive.Service
	portfolioFolder *folderCache
}

// New builds a Service authenticated by the given token source.
func New(ctx context.Context, ts oauth2.TokenSource) (*Service, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Service{svc: svc, portfolioFolder: newFolderCache(DefaultFolderCacheTTL)}, nil
}

// EnsurePortfolioFolder finds or creates the root portfolio folder.
// The handle is cached for DefaultFolderCacheTTL to spare repeated
// lookups during a run; InvalidateFolderCache drops it.
func (s *Service) EnsurePortfolioFolder(ctx context.Context) (Folder, error) {
	if cached := s.portfolioFolder.get(); cached != nil {
		return *cached, nil
	}
	folder, err := s.EnsureFolder(ctx, PortfolioFolderName, "")
	if err != nil {
		return Folder{}, err
	}
	s.portfolioFolder.set(folder)
	return folder, nil
}

// InvalidateFolderCache drops the cached portfolio folder handle.
func (s *Service) InvalidateFolderCache() {
	s.portfolioFolder.Invalidate()
}

// EnsureFolder finds a folder by name under parentID (root when empty),
// creating it when missing.
func (s *Service) EnsureFolder(ctx context.Context, name, parentID string) (Folder, error) {
	existing, err := s.FindFolder(ctx, name, parentID)
	if err != nil {
		return Folder{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	meta := &drive.File{Name: name, MimeType: FolderMimeType}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	created, err := s.svc.Files.Create(meta).Fields("id, name").Context(ctx).Do()
	if err != nil {
		return Folder{}, fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	return Folder{ID: created.Id, Name: created.Name}, nil
}

// FindFolder looks up a folder by exact name. Returns nil when absent.
func (s *Service) FindFolder(ctx context.Context, name, parentID string) (*Folder, error) {
	query := fmt.Sprintf("mimeType = '%s' and name = '%s' and trashed = false",
		FolderMimeType, escapeQueryValue(name))
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	list, err := s.svc.Files.List().Q(query).Fields("files(id, name)").PageSize(10).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to find folder %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return nil, nil
	}
	return &Folder{ID: list.Files[0].Id, Name: list.Files[0].Name}, nil
}

// ListFilesInFolder returns the non-trashed files in a folder.
func (s *Service) ListFilesInFolder(ctx context.Context, folderID string) ([]FileInfo, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	list, err := s.svc.Files.List().Q(query).
		Fields("files(id, name, mimeType, createdTime)").
		PageSize(100).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", folderID, err)
	}

	files := make([]FileInfo, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, FileInfo{
			ID:          f.Id,
			Name:        f.Name,
			MimeType:    f.MimeType,
			CreatedTime: f.CreatedTime,
		})
	}
	return files, nil
}

// ListPresentations returns the Slides files in a folder, newest first.
func (s *Service) ListPresentations(ctx context.Context, folderID string) ([]FileInfo, error) {
	files, err := s.ListFilesInFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	decks := FilterPresentations(files)
	sort.SliceStable(decks, func(i, j int) bool {
		return decks[i].CreatedTime > decks[j].CreatedTime
	})
	return decks, nil
}

// FilterPresentations keeps only Google Slides files.
func FilterPresentations(files []FileInfo) []FileInfo {
	var decks []FileInfo
	for _, f := range files {
		if f.MimeType == PresentationMimeType {
			decks = append(decks, f)
		}
	}
	return decks
}

// MoveFile places a file into a folder, removing it from the root.
func (s *Service) MoveFile(ctx context.Context, fileID, folderID string) error {
	_, err := s.svc.Files.Update(fileID, nil).
		AddParents(folderID).
		RemoveParents("root").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to move file %s: %w", fileID, err)
	}
	return nil
}

// UploadImage stores an image in the given folder, makes it link
// readable and returns a URL the Slides service can fetch.
func (s *Service) UploadImage(ctx context.Context, name string, content io.Reader, folderID string) (string, error) {
	meta := &drive.File{Name: name}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	created, err := s.svc.Files.Create(meta).Media(content).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload image %q: %w", name, err)
	}

	// Slides fetches image URLs server side, so the file must be
	// readable by link.
	_, err = s.svc.Permissions.Create(created.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to share image %q: %w", name, err)
	}

	return fmt.Sprintf("https://drive.google.com/uc?export=view&id=%s", created.Id), nil
}

func escapeQueryValue(v string) string {
	return strings.ReplaceAll(v, "'", `\'`)
}
