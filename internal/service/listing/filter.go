package listing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"icatdirect/internal/domain"
	"icatdirect/internal/domain/models"
	"icatdirect/internal/queries"
)

// Column expressions the catalog templates expose to fragments.
// d = r_data_main, p = parent collection, f = file types, c = r_coll_main.
const (
	fileNameColumn   = "d.data_name"
	filePathExpr     = "(p.coll_name || '/' || d.data_name)"
	folderPathColumn = "c.coll_name"
)

// fileInfoTypeExpr reads a file's info type the way listings report it, so a
// file without one is matched by "raw".
var fileInfoTypeExpr = fmt.Sprintf("coalesce(nullif(f.info_type, ''), '%s')", models.DefaultInfoType)

// InfoTypeCondition restricts files to the given info types.
// An empty set matches everything.
func InfoTypeCondition(args *queries.Args, infoTypes []string) string {
	if len(infoTypes) == 0 {
		return "TRUE"
	}
	return fmt.Sprintf("%s = ANY(%s)", fileInfoTypeExpr, args.Bind(infoTypes))
}

// BadFileCondition flags data objects whose name contains a bad character,
// whose name is reserved, or whose full path is reserved.
func BadFileCondition(args *queries.Args, spec models.BadItemSpec) string {
	return badItemCondition(args, spec, func() string { return fileNameColumn }, filePathExpr)
}

// BadFolderCondition flags collections the same way. A collection's name is
// its path relative to spec.BaseFolder.
func BadFolderCondition(args *queries.Args, spec models.BadItemSpec) string {
	var nameExpr string
	name := func() string {
		if nameExpr == "" {
			nameExpr = fmt.Sprintf("substring(%s FROM %s)", folderPathColumn, args.Bind(childNameOffset(spec.BaseFolder)))
		}
		return nameExpr
	}
	return badItemCondition(args, spec, name, folderPathColumn)
}

// badItemCondition binds only the parts of spec that are set; with nothing set
// the fragment is FALSE. name is called lazily so its own parameters are only
// bound when a name test is present.
func badItemCondition(args *queries.Args, spec models.BadItemSpec, name func() string, pathExpr string) string {
	if spec.IsEmpty() {
		return "FALSE"
	}

	var conditions []string

	if spec.Chars != "" {
		chars := args.Bind(spec.Chars)
		conditions = append(conditions, fmt.Sprintf("translate(%[1]s, %[2]s, '') != %[1]s", name(), chars))
	}
	if len(spec.Names) > 0 {
		conditions = append(conditions, fmt.Sprintf("%s = ANY(%s)", name(), args.Bind(spec.Names)))
	}
	if len(spec.Paths) > 0 {
		conditions = append(conditions, fmt.Sprintf("%s = ANY(%s)", pathExpr, args.Bind(spec.Paths)))
	}

	if len(conditions) == 0 {
		return "FALSE"
	}
	return "(" + strings.Join(conditions, " OR ") + ")"
}

// childNameOffset is the 1-based character position where a child's name
// starts inside its full path.
func childNameOffset(baseFolder string) int {
	prefix := strings.TrimSuffix(baseFolder, "/") + "/"
	return utf8.RuneCountInString(prefix) + 1
}

// UUIDListCondition binds the UUIDs in canonical form as one text array and
// returns its placeholder for an = ANY(...) test.
func UUIDListCondition(args *queries.Args, uuids []string) (string, error) {
	if len(uuids) == 0 {
		return "", domain.NewInvalidArgument("uuids", "at least one UUID is required")
	}

	canonical := make([]string, len(uuids))
	for i, raw := range uuids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return "", domain.NewInvalidArgument("uuid", "%q: %v", raw, err)
		}
		canonical[i] = id.String()
	}

	return args.Bind(canonical), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// subtreePattern matches every path below folder with LIKE ... ESCAPE '\'
func subtreePattern(folder string) string {
	return likeEscaper.Replace(strings.TrimSuffix(folder, "/")) + "/%"
}
