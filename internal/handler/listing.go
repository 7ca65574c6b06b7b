package handler

import (
	"log/slog"
	"net/http"

	"icatdirect/internal/config"
	"icatdirect/internal/domain/models"
	"icatdirect/internal/domain/services"
	"icatdirect/internal/httputil"
)

// Query parameter names shared by the folder routes
const (
	paramPath     = "path"
	paramInfoType = "info-type"
	paramSortCol  = "sort-col"
	paramSortDir  = "sort-dir"
	paramLimit    = "limit"
	paramOffset   = "offset"
)

// ListingHandler handles catalog listing requests
type ListingHandler struct {
	listingService services.ListingService
	logger         *slog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService services.ListingService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		logger:         logger,
	}
}

// CountResponse wraps every count endpoint
type CountResponse struct {
	Total int64 `json:"total"`
}

// EntriesResponse wraps listings
type EntriesResponse struct {
	Entries []models.Entry `json:"entries"`
}

// PathsResponse wraps path listings
type PathsResponse struct {
	Paths []string `json:"paths"`
}

// UUIDPathsResponse wraps UUID lookups
type UUIDPathsResponse struct {
	Results []models.UUIDPath `json:"results"`
}

// CountBadItemsRequest is the body of the bad item count
type CountBadItemsRequest struct {
	Path      string   `json:"path"`
	InfoTypes []string `json:"info_types"`
	BadChars  string   `json:"bad_chars"`
	BadNames  []string `json:"bad_names"`
	BadPaths  []string `json:"bad_paths"`
}

// UUIDsRequest is the body of the UUID lookups
type UUIDsRequest struct {
	UUIDs []string `json:"uuids"`
}

// UUIDListingRequest is the body of the paged UUID listing
type UUIDListingRequest struct {
	UUIDs   []string `json:"uuids"`
	SortCol string   `json:"sort_col"`
	SortDir string   `json:"sort_dir"`
	Limit   *uint    `json:"limit"`
	Offset  uint     `json:"offset"`
}

func folderQuery(r *http.Request) services.FolderQuery {
	return services.FolderQuery{
		User: httputil.GetUser(r),
		Zone: r.PathValue("zone"),
		Path: r.URL.Query().Get(paramPath),
	}
}

// CountFiles counts files directly in a folder
// GET /api/zones/{zone}/folder/files/count?path=
func (h *ListingHandler) CountFiles(w http.ResponseWriter, r *http.Request) {
	total, err := h.listingService.CountFilesInFolder(r.Context(), folderQuery(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, CountResponse{Total: total})
}

// CountFolders counts folders directly in a folder
// GET /api/zones/{zone}/folder/folders/count?path=
func (h *ListingHandler) CountFolders(w http.ResponseWriter, r *http.Request) {
	total, err := h.listingService.CountFoldersInFolder(r.Context(), folderQuery(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, CountResponse{Total: total})
}

// CountItems counts files of the requested info types plus all folders
// GET /api/zones/{zone}/folder/items/count?path=&info-type=
func (h *ListingHandler) CountItems(w http.ResponseWriter, r *http.Request) {
	infoTypes := httputil.QueryStrings(r, paramInfoType)

	total, err := h.listingService.CountItemsInFolder(r.Context(), folderQuery(r), infoTypes)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, CountResponse{Total: total})
}

// CountAllItems counts everything below a folder
// GET /api/zones/{zone}/folder/items/count-all?path=
func (h *ListingHandler) CountAllItems(w http.ResponseWriter, r *http.Request) {
	total, err := h.listingService.CountAllItemsUnderFolder(r.Context(), folderQuery(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, CountResponse{Total: total})
}

// CountBadItems counts items flagged by the bad character, name and path lists
// POST /api/zones/{zone}/folder/items/count-bad
func (h *ListingHandler) CountBadItems(w http.ResponseWriter, r *http.Request) {
	var req CountBadItemsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	folder := folderQuery(r)
	folder.Path = req.Path

	total, err := h.listingService.CountBadItemsInFolder(r.Context(), folder,
		req.InfoTypes, req.BadChars, req.BadNames, req.BadPaths)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, CountResponse{Total: total})
}

// ListFolders lists child folders with permissions
// GET /api/zones/{zone}/folder/folders?path=
func (h *ListingHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	entries, err := h.listingService.ListFoldersInFolder(r.Context(), folderQuery(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, EntriesResponse{Entries: entries})
}

// ListPaths lists the full paths of a folder's children
// GET /api/zones/{zone}/folder/paths?path=
func (h *ListingHandler) ListPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.listingService.FolderPathListing(r.Context(), folderQuery(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, PathsResponse{Paths: paths})
}

// PagedListing returns one page of a folder's children
// GET /api/zones/{zone}/folder/listing?path=&sort-col=&sort-dir=&limit=&offset=&info-type=
func (h *ListingHandler) PagedListing(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sort := models.SortSpec{
		Column: models.SortColumn(httputil.QueryString(r, paramSortCol, string(models.SortByBaseName))),
		Order:  models.SortOrder(httputil.QueryString(r, paramSortDir, string(models.SortAsc))),
	}

	entries, err := h.listingService.PagedFolderListing(r.Context(), folderQuery(r), sort, page,
		httputil.QueryStrings(r, paramInfoType))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, EntriesResponse{Entries: entries})
}

// FilesByUUID resolves data object UUIDs to paths
// POST /api/uuids/files
func (h *ListingHandler) FilesByUUID(w http.ResponseWriter, r *http.Request) {
	var req UUIDsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.listingService.SelectFilesWithUUIDs(r.Context(), req.UUIDs)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, UUIDPathsResponse{Results: results})
}

// FoldersByUUID resolves collection UUIDs to paths
// POST /api/uuids/folders
func (h *ListingHandler) FoldersByUUID(w http.ResponseWriter, r *http.Request) {
	var req UUIDsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.listingService.SelectFoldersWithUUIDs(r.Context(), req.UUIDs)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, UUIDPathsResponse{Results: results})
}

// UUIDListing returns one page of the entries carrying the given UUIDs
// POST /api/zones/{zone}/uuids/listing
func (h *ListingHandler) UUIDListing(w http.ResponseWriter, r *http.Request) {
	var req UUIDListingRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := services.UserQuery{
		User: httputil.GetUser(r),
		Zone: r.PathValue("zone"),
	}
	sort := models.SortSpec{
		Column: models.SortColumn(defaultString(req.SortCol, string(models.SortByBaseName))),
		Order:  models.SortOrder(defaultString(req.SortDir, string(models.SortAsc))),
	}
	page := models.Page{Limit: config.DefaultPageLimit, Offset: req.Offset}
	if req.Limit != nil {
		page.Limit = *req.Limit
	}

	entries, err := h.listingService.PagedUUIDListing(r.Context(), user, sort, page, req.UUIDs)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, EntriesResponse{Entries: entries})
}

func pageFromQuery(r *http.Request) (models.Page, error) {
	limit, err := httputil.QueryUint(r, paramLimit, config.DefaultPageLimit)
	if err != nil {
		return models.Page{}, err
	}
	offset, err := httputil.QueryUint(r, paramOffset, 0)
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Limit: limit, Offset: offset}, nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
