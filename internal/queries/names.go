package queries

// Name is the symbolic key of a catalog template
type Name string

const (
	CountFilesInFolder       Name = "count-files-in-folder"
	CountFoldersInFolder     Name = "count-folders-in-folder"
	CountItemsInFolder       Name = "count-items-in-folder"
	CountAllItemsUnderFolder Name = "count-all-items-under-folder"
	CountBadItemsInFolder    Name = "count-bad-items-in-folder"
	ListFoldersInFolder      Name = "list-folders-in-folder"
	FolderPathListing        Name = "folder-path-listing"
	PagedFolderListing       Name = "paged-folder-listing"
	SelectFilesWithUUIDs     Name = "select-files-with-uuids"
	SelectFoldersWithUUIDs   Name = "select-folders-with-uuids"
	PagedUUIDListing         Name = "paged-uuid-listing"
	FilePermissions          Name = "file-permissions"
	FolderPermissions        Name = "folder-permissions"
)

// Names lists every template the service depends on
func Names() []Name {
	return []Name{
		CountFilesInFolder,
		CountFoldersInFolder,
		CountItemsInFolder,
		CountAllItemsUnderFolder,
		CountBadItemsInFolder,
		ListFoldersInFolder,
		FolderPathListing,
		PagedFolderListing,
		SelectFilesWithUUIDs,
		SelectFoldersWithUUIDs,
		PagedUUIDListing,
		FilePermissions,
		FolderPermissions,
	}
}
