package models

import (
	"path"
	"time"
)

// EntryType distinguishes data objects from collections
type EntryType string

const (
	// EntryTypeFile is a data object
	EntryTypeFile EntryType = "dataobject"

	// EntryTypeFolder is a collection
	EntryTypeFolder EntryType = "collection"
)

// DefaultInfoType is reported for data objects without a stored info type
const DefaultInfoType = "raw"

// Entry is a file or folder row from the catalog
type Entry struct {
	FullPath    string       `json:"full_path"`
	Type        EntryType    `json:"type"`
	BaseName    string       `json:"base_name"`
	DataSize    int64        `json:"data_size"`
	CreateTS    time.Time    `json:"create_ts"`
	ModifyTS    time.Time    `json:"modify_ts"`
	InfoType    *string      `json:"info_type"`
	UUID        string       `json:"uuid,omitempty"`
	AccessLevel *AccessLevel `json:"permission,omitempty"`
}

// IsFile reports whether the entry is a data object
func (e *Entry) IsFile() bool {
	return e.Type == EntryTypeFile
}

// NormalizeInfoType reports data objects without an info type as "raw".
// Folders are never altered.
func (e *Entry) NormalizeInfoType() {
	if !e.IsFile() {
		return
	}
	if e.InfoType == nil || *e.InfoType == "" {
		infoType := DefaultInfoType
		e.InfoType = &infoType
	}
}

// Ref returns the reference used for permission lookups
func (e *Entry) Ref() EntryRef {
	return EntryRef{Type: e.Type, Path: e.FullPath}
}

// EntryFromRow converts a listing row into an Entry.
// Missing columns are left at their zero values.
func EntryFromRow(row Row) Entry {
	entry := Entry{
		FullPath: row.String("full_path"),
		Type:     EntryType(row.String("type")),
		BaseName: row.String("base_name"),
		DataSize: row.Int64("data_size"),
		CreateTS: row.Time("create_ts"),
		ModifyTS: row.Time("modify_ts"),
		InfoType: row.NullString("info_type"),
		UUID:     row.String("uuid"),
	}
	if id := row.NullInt64("access_type_id"); id != nil {
		level := AccessLevel(*id)
		entry.AccessLevel = &level
	}
	return entry
}

// EntryRef identifies an entry for permission resolution
type EntryRef struct {
	Type EntryType
	Path string
}

// FileRef builds a reference to a data object
func FileRef(p string) EntryRef {
	return EntryRef{Type: EntryTypeFile, Path: p}
}

// FolderRef builds a reference to a collection
func FolderRef(p string) EntryRef {
	return EntryRef{Type: EntryTypeFolder, Path: p}
}

// Split returns the parent collection and base name of a data object path
func (r EntryRef) Split() (dir, name string) {
	return path.Dir(r.Path), path.Base(r.Path)
}

// UUIDPath pairs a catalog UUID with the path it resolves to
type UUIDPath struct {
	UUID string `json:"uuid"`
	Path string `json:"path"`
}

// UUIDPathFromRow converts a UUID lookup row
func UUIDPathFromRow(row Row) UUIDPath {
	return UUIDPath{
		UUID: row.String("uuid"),
		Path: row.String("path"),
	}
}
