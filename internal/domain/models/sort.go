package models

import (
	"fmt"
	"math"
	"strings"

	"icatdirect/internal/domain"
)

// SortColumn is a symbolic listing column
type SortColumn string

const (
	SortByType     SortColumn = "type"
	SortByModifyTS SortColumn = "modify-ts"
	SortByCreateTS SortColumn = "create-ts"
	SortByDataSize SortColumn = "data-size"
	SortByBaseName SortColumn = "base-name"
	SortByFullPath SortColumn = "full-path"
)

// SortOrder is a symbolic sort direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// sortColumns whitelists listing columns. The values are output column names
// of the listing templates.
var sortColumns = map[SortColumn]string{
	SortByType:     "type",
	SortByModifyTS: "modify_ts",
	SortByCreateTS: "create_ts",
	SortByDataSize: "data_size",
	SortByBaseName: "base_name",
	SortByFullPath: "full_path",
}

var sortOrders = map[SortOrder]string{
	SortAsc:  "ASC",
	SortDesc: "DESC",
}

// SortColumns lists the accepted column names in a stable order
func SortColumns() []SortColumn {
	return []SortColumn{SortByType, SortByModifyTS, SortByCreateTS, SortByDataSize, SortByBaseName, SortByFullPath}
}

// SortOrders lists the accepted directions
func SortOrders() []SortOrder {
	return []SortOrder{SortAsc, SortDesc}
}

// SortSpec is a caller supplied column and direction
type SortSpec struct {
	Column SortColumn
	Order  SortOrder
}

// SortClause holds whitelisted SQL text for an ORDER BY clause
type SortClause struct {
	Column    string
	Direction string
}

// Validate maps the column and order onto SQL text
func (s SortSpec) Validate() (SortClause, error) {
	return ValidateSort(string(s.Column), string(s.Order))
}

// ValidateSort maps a symbolic column and direction onto SQL text.
// Anything outside the whitelists fails with domain.ErrInvalidArgument.
func ValidateSort(column, order string) (SortClause, error) {
	sqlColumn, ok := sortColumns[SortColumn(column)]
	if !ok {
		return SortClause{}, domain.NewInvalidArgument("sort column", "%q is not one of %s", column, joinSymbols(SortColumns()))
	}
	direction, ok := sortOrders[SortOrder(order)]
	if !ok {
		return SortClause{}, domain.NewInvalidArgument("sort order", "%q is not one of %s", order, joinSymbols(SortOrders()))
	}
	return SortClause{Column: sqlColumn, Direction: direction}, nil
}

func joinSymbols[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

// Page is passed through to LIMIT and OFFSET unchanged
type Page struct {
	Limit  uint
	Offset uint
}

// Validate rejects values that do not fit a PostgreSQL bigint
func (p Page) Validate() error {
	if uint64(p.Limit) > math.MaxInt64 {
		return domain.NewInvalidArgument("limit", "%d is out of range", p.Limit)
	}
	if uint64(p.Offset) > math.MaxInt64 {
		return domain.NewInvalidArgument("offset", "%d is out of range", p.Offset)
	}
	return nil
}

// BadItemSpec describes names and paths that clients cannot handle
type BadItemSpec struct {
	// Chars holds characters that may not appear in a name
	Chars string

	// Names holds reserved exact names
	Names []string

	// Paths holds reserved exact full paths
	Paths []string

	// BaseFolder is the folder being inspected; folder names are derived
	// relative to it
	BaseFolder string
}

// IsEmpty reports whether nothing would be flagged
func (b BadItemSpec) IsEmpty() bool {
	return b.Chars == "" && len(b.Names) == 0 && len(b.Paths) == 0
}
