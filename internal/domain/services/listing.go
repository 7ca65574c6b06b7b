package services

import (
	"context"

	"icatdirect/internal/domain/models"
)

// ListingService answers what a user sees in the catalog and with which
// permissions. Every operation validates its input before querying and fails
// with domain.ErrInvalidArgument when it is malformed.
type ListingService interface {
	// CountFilesInFolder counts data objects directly in the folder that the user can see
	CountFilesInFolder(ctx context.Context, folder FolderQuery) (int64, error)

	// CountFoldersInFolder counts collections directly in the folder that the user can see
	CountFoldersInFolder(ctx context.Context, folder FolderQuery) (int64, error)

	// CountItemsInFolder counts files matching infoTypes plus all child folders
	CountItemsInFolder(ctx context.Context, folder FolderQuery, infoTypes []string) (int64, error)

	// CountAllItemsUnderFolder counts every visible file and folder in the subtree
	CountAllItemsUnderFolder(ctx context.Context, folder FolderQuery) (int64, error)

	// CountBadItemsInFolder counts items matching infoTypes that are also flagged bad
	CountBadItemsInFolder(ctx context.Context, folder FolderQuery, infoTypes []string, badChars string, badNames, badPaths []string) (int64, error)

	// ListFoldersInFolder lists child folders with the user's permission on each
	ListFoldersInFolder(ctx context.Context, folder FolderQuery) ([]models.Entry, error)

	// FolderPathListing returns the full paths of every visible child, unpaginated
	FolderPathListing(ctx context.Context, folder FolderQuery) ([]string, error)

	// PagedFolderListing returns one sorted page of the folder's children
	PagedFolderListing(ctx context.Context, folder FolderQuery, sort models.SortSpec, page models.Page, infoTypes []string) ([]models.Entry, error)

	// SelectFilesWithUUIDs resolves data object UUIDs to paths
	SelectFilesWithUUIDs(ctx context.Context, uuids []string) ([]models.UUIDPath, error)

	// SelectFoldersWithUUIDs resolves collection UUIDs to paths
	SelectFoldersWithUUIDs(ctx context.Context, uuids []string) ([]models.UUIDPath, error)

	// PagedUUIDListing returns one sorted page of the entries carrying the
	// given UUIDs, each with the user's permission. Empty uuids returns an
	// empty page without querying.
	PagedUUIDListing(ctx context.Context, user UserQuery, sort models.SortSpec, page models.Page, uuids []string) ([]models.Entry, error)
}

// PermissionResolver finds the highest access level a user holds on entries.
type PermissionResolver interface {
	// Resolve returns nil when the user holds no permission on the entry
	Resolve(ctx context.Context, user string, ref models.EntryRef) (*models.AccessLevel, error)

	// ResolveAll resolves refs in one call. Results are in the order of refs.
	// Implementations may batch or parallelize lookups.
	ResolveAll(ctx context.Context, user string, refs []models.EntryRef) ([]*models.AccessLevel, error)
}

// UserQuery identifies the user a listing is computed for
type UserQuery struct {
	User string `json:"user"`
	Zone string `json:"zone"`
}

// FolderQuery identifies a folder as seen by a user
type FolderQuery struct {
	User string `json:"user"`
	Zone string `json:"zone"`
	Path string `json:"path"`
}
