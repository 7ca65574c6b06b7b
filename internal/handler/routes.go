package handler

import "net/http"

// RegisterRoutes mounts the listing API on mux (Go 1.22+ patterns)
func RegisterRoutes(mux *http.ServeMux, listing *ListingHandler, health *HealthHandler) {
	mux.HandleFunc("GET /health", health.HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/zones/{zone}/folder/files/count", listing.CountFiles)
	mux.HandleFunc("GET /api/zones/{zone}/folder/folders/count", listing.CountFolders)
	mux.HandleFunc("GET /api/zones/{zone}/folder/items/count", listing.CountItems)
	mux.HandleFunc("GET /api/zones/{zone}/folder/items/count-all", listing.CountAllItems)
	mux.HandleFunc("POST /api/zones/{zone}/folder/items/count-bad", listing.CountBadItems)
	mux.HandleFunc("GET /api/zones/{zone}/folder/folders", listing.ListFolders)
	mux.HandleFunc("GET /api/zones/{zone}/folder/paths", listing.ListPaths)
	mux.HandleFunc("GET /api/zones/{zone}/folder/listing", listing.PagedListing)

	// UUID routes
	mux.HandleFunc("POST /api/uuids/files", listing.FilesByUUID)
	mux.HandleFunc("POST /api/uuids/folders", listing.FoldersByUUID)
	mux.HandleFunc("POST /api/zones/{zone}/uuids/listing", listing.UUIDListing)
}
