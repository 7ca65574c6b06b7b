package listing

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"icatdirect/internal/domain"
	"icatdirect/internal/domain/models"
	"icatdirect/internal/domain/repositories"
	"icatdirect/internal/domain/services"
	"icatdirect/internal/queries"
)

var absolutePath = regexp.MustCompile(`^/`)

type listingService struct {
	executor    repositories.QueryExecutor
	permissions services.PermissionResolver
	logger      *slog.Logger
}

// NewListingService creates the listing service
func NewListingService(
	executor repositories.QueryExecutor,
	permissions services.PermissionResolver,
	logger *slog.Logger,
) services.ListingService {
	return &listingService{
		executor:    executor,
		permissions: permissions,
		logger:      logger,
	}
}

// CountFilesInFolder counts visible data objects directly in the folder
func (s *listingService) CountFilesInFolder(ctx context.Context, folder services.FolderQuery) (int64, error) {
	folder, err := validateFolder(folder)
	if err != nil {
		return 0, err
	}

	rows, err := s.executor.RunNamed(ctx, queries.CountFilesInFolder, folder.User, folder.Zone, folder.Path)
	if err != nil {
		return 0, err
	}
	return total(rows), nil
}

// CountFoldersInFolder counts visible collections directly in the folder
func (s *listingService) CountFoldersInFolder(ctx context.Context, folder services.FolderQuery) (int64, error) {
	folder, err := validateFolder(folder)
	if err != nil {
		return 0, err
	}

	rows, err := s.executor.RunNamed(ctx, queries.CountFoldersInFolder, folder.User, folder.Zone, folder.Path)
	if err != nil {
		return 0, err
	}
	return total(rows), nil
}

// CountItemsInFolder counts files matching infoTypes plus every child folder
func (s *listingService) CountItemsInFolder(ctx context.Context, folder services.FolderQuery, infoTypes []string) (int64, error) {
	folder, err := validateFolder(folder)
	if err != nil {
		return 0, err
	}

	args := queries.NewArgs(folder.User, folder.Zone, folder.Path)
	stmt, err := s.executor.Format(queries.CountItemsInFolder, InfoTypeCondition(args, infoTypes))
	if err != nil {
		return 0, err
	}

	rows, err := s.executor.Run(ctx, stmt, args.Values()...)
	if err != nil {
		return 0, err
	}
	return total(rows), nil
}

// CountAllItemsUnderFolder counts every visible file and folder below the folder
func (s *listingService) CountAllItemsUnderFolder(ctx context.Context, folder services.FolderQuery) (int64, error) {
	folder, err := validateFolder(folder)
	if err != nil {
		return 0, err
	}

	rows, err := s.executor.RunNamed(ctx, queries.CountAllItemsUnderFolder,
		folder.User, folder.Zone, folder.Path, subtreePattern(folder.Path))
	if err != nil {
		return 0, err
	}
	return total(rows), nil
}

// CountBadItemsInFolder counts items passing the info type filter that are
// also flagged by the bad character, name or path lists
func (s *listingService) CountBadItemsInFolder(
	ctx context.Context,
	folder services.FolderQuery,
	infoTypes []string,
	badChars string,
	badNames, badPaths []string,
) (int64, error) {
	folder, err := validateFolder(folder)
	if err != nil {
		return 0, err
	}

	bad := models.BadItemSpec{
		Chars:      badChars,
		Names:      badNames,
		Paths:      badPaths,
		BaseFolder: folder.Path,
	}

	args := queries.NewArgs(folder.User, folder.Zone, folder.Path)
	infoFilter := InfoTypeCondition(args, infoTypes)
	badFiles := BadFileCondition(args, bad)
	badFolders := BadFolderCondition(args, bad)

	stmt, err := s.executor.Format(queries.CountBadItemsInFolder, infoFilter, badFiles, badFolders)
	if err != nil {
		return 0, err
	}

	rows, err := s.executor.Run(ctx, stmt, args.Values()...)
	if err != nil {
		return 0, err
	}
	return total(rows), nil
}

// ListFoldersInFolder lists child folders, each with the user's permission
func (s *listingService) ListFoldersInFolder(ctx context.Context, folder services.FolderQuery) ([]models.Entry, error) {
	folder, err := validateFolder(folder)
	if err != nil {
		return nil, err
	}

	rows, err := s.executor.RunNamed(ctx, queries.ListFoldersInFolder, folder.User, folder.Zone, folder.Path)
	if err != nil {
		return nil, err
	}

	entries := entriesFromRows(rows)
	if err := s.attachPermissions(ctx, folder.User, entries); err != nil {
		return nil, err
	}

	s.logger.Debug("listed folders",
		"user", folder.User,
		"path", folder.Path,
		"count", len(entries),
	)
	return entries, nil
}

// FolderPathListing returns the full path of every visible child
func (s *listingService) FolderPathListing(ctx context.Context, folder services.FolderQuery) ([]string, error) {
	folder, err := validateFolder(folder)
	if err != nil {
		return nil, err
	}

	rows, err := s.executor.RunNamed(ctx, queries.FolderPathListing, folder.User, folder.Zone, folder.Path)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(rows))
	for i, row := range rows {
		paths[i] = row.String("full_path")
	}
	return paths, nil
}

// PagedFolderListing returns one page of the folder's children. Folders sort
// ahead of files; within each group the requested column applies.
func (s *listingService) PagedFolderListing(
	ctx context.Context,
	folder services.FolderQuery,
	sort models.SortSpec,
	page models.Page,
	infoTypes []string,
) ([]models.Entry, error) {
	folder, err := validateFolder(folder)
	if err != nil {
		return nil, err
	}
	clause, err := sort.Validate()
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	args := queries.NewArgs(folder.User, folder.Zone, folder.Path, page.Limit, page.Offset)
	infoFilter := InfoTypeCondition(args, infoTypes)

	stmt, err := s.executor.Format(queries.PagedFolderListing, infoFilter, clause.Column, clause.Direction)
	if err != nil {
		return nil, err
	}

	rows, err := s.executor.Run(ctx, stmt, args.Values()...)
	if err != nil {
		return nil, err
	}

	entries := entriesFromRows(rows)
	for i := range entries {
		entries[i].NormalizeInfoType()
	}

	s.logger.Debug("paged folder listing",
		"user", folder.User,
		"path", folder.Path,
		"sort", clause.Column,
		"limit", page.Limit,
		"offset", page.Offset,
		"count", len(entries),
	)
	return entries, nil
}

// SelectFilesWithUUIDs resolves data object UUIDs to paths
func (s *listingService) SelectFilesWithUUIDs(ctx context.Context, uuids []string) ([]models.UUIDPath, error) {
	return s.selectWithUUIDs(ctx, queries.SelectFilesWithUUIDs, uuids)
}

// SelectFoldersWithUUIDs resolves collection UUIDs to paths
func (s *listingService) SelectFoldersWithUUIDs(ctx context.Context, uuids []string) ([]models.UUIDPath, error) {
	return s.selectWithUUIDs(ctx, queries.SelectFoldersWithUUIDs, uuids)
}

func (s *listingService) selectWithUUIDs(ctx context.Context, name queries.Name, uuids []string) ([]models.UUIDPath, error) {
	if len(uuids) == 0 {
		return []models.UUIDPath{}, nil
	}

	args := queries.NewArgs()
	list, err := UUIDListCondition(args, uuids)
	if err != nil {
		return nil, err
	}

	stmt, err := s.executor.Format(name, list)
	if err != nil {
		return nil, err
	}

	rows, err := s.executor.Run(ctx, stmt, args.Values()...)
	if err != nil {
		return nil, err
	}

	result := make([]models.UUIDPath, len(rows))
	for i, row := range rows {
		result[i] = models.UUIDPathFromRow(row)
	}
	return result, nil
}

// PagedUUIDListing returns one page of the entries carrying the given UUIDs,
// each with the user's permission
func (s *listingService) PagedUUIDListing(
	ctx context.Context,
	user services.UserQuery,
	sort models.SortSpec,
	page models.Page,
	uuids []string,
) ([]models.Entry, error) {
	if len(uuids) == 0 {
		return []models.Entry{}, nil
	}

	if err := validateUser(&user); err != nil {
		return nil, err
	}
	clause, err := sort.Validate()
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	args := queries.NewArgs(user.User, user.Zone, page.Limit, page.Offset)
	list, err := UUIDListCondition(args, uuids)
	if err != nil {
		return nil, err
	}

	stmt, err := s.executor.Format(queries.PagedUUIDListing, list, clause.Column, clause.Direction)
	if err != nil {
		return nil, err
	}

	rows, err := s.executor.Run(ctx, stmt, args.Values()...)
	if err != nil {
		return nil, err
	}

	entries := entriesFromRows(rows)
	for i := range entries {
		entries[i].NormalizeInfoType()
	}
	if err := s.attachPermissions(ctx, user.User, entries); err != nil {
		return nil, err
	}

	s.logger.Debug("paged uuid listing",
		"user", user.User,
		"requested", len(uuids),
		"count", len(entries),
	)
	return entries, nil
}

// attachPermissions resolves the user's access level on every entry in place
func (s *listingService) attachPermissions(ctx context.Context, user string, entries []models.Entry) error {
	refs := make([]models.EntryRef, len(entries))
	for i := range entries {
		refs[i] = entries[i].Ref()
	}

	levels, err := s.permissions.ResolveAll(ctx, user, refs)
	if err != nil {
		return err
	}

	for i := range entries {
		entries[i].AccessLevel = levels[i]
	}
	return nil
}

func entriesFromRows(rows []models.Row) []models.Entry {
	entries := make([]models.Entry, len(rows))
	for i, row := range rows {
		entries[i] = models.EntryFromRow(row)
	}
	return entries
}

// total reads the single count column of a count query
func total(rows []models.Row) int64 {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Int64("total")
}

// validateFolder checks the folder query and returns it with a cleaned path
func validateFolder(folder services.FolderQuery) (services.FolderQuery, error) {
	err := validation.ValidateStruct(&folder,
		validation.Field(&folder.User, validation.Required),
		validation.Field(&folder.Zone, validation.Required),
		validation.Field(&folder.Path,
			validation.Required,
			validation.Match(absolutePath).Error("must be an absolute path"),
		),
	)
	if err != nil {
		return folder, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	folder.Path = path.Clean(folder.Path)
	return folder, nil
}

func validateUser(user *services.UserQuery) error {
	err := validation.ValidateStruct(user,
		validation.Field(&user.User, validation.Required),
		validation.Field(&user.Zone, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}
