package models

import (
	"encoding/json"
	"strconv"
)

// AccessLevel is an ICAT access_type_id. Higher values are more privileged.
type AccessLevel int64

// Access levels granted through r_objt_access
const (
	AccessRead  AccessLevel = 1050
	AccessWrite AccessLevel = 1120
	AccessOwn   AccessLevel = 1200
)

var accessLevelNames = map[AccessLevel]string{
	AccessRead:  "read",
	AccessWrite: "write",
	AccessOwn:   "own",
}

// String returns the permission name, or the numeric id for levels without one
func (a AccessLevel) String() string {
	if name, ok := accessLevelNames[a]; ok {
		return name
	}
	return strconv.FormatInt(int64(a), 10)
}

// MarshalJSON renders the level with both its id and name
func (a AccessLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int64(a),
		Name: a.String(),
	})
}

// MaxAccessLevel selects the highest access_type_id from permission rows.
// Returns nil when there are no records, meaning no access.
func MaxAccessLevel(rows []Row) *AccessLevel {
	var highest *AccessLevel
	for _, row := range rows {
		id := row.NullInt64("access_type_id")
		if id == nil {
			continue
		}
		level := AccessLevel(*id)
		if highest == nil || level > *highest {
			highest = &level
		}
	}
	return highest
}
