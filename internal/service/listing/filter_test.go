package listing

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"icatdirect/internal/domain"
	"icatdirect/internal/domain/models"
	"icatdirect/internal/queries"
)

func TestInfoTypeCondition(t *testing.T) {
	t.Run("empty set matches everything", func(t *testing.T) {
		args := queries.NewArgs("alice", "tempZone", "/tempZone/home/alice")

		got := InfoTypeCondition(args, nil)
		if got != "TRUE" {
			t.Errorf("InfoTypeCondition() = %q, want TRUE", got)
		}
		if args.Len() != 3 {
			t.Errorf("Len() = %d, want no new parameters", args.Len())
		}
	})

	t.Run("binds the set after the fixed parameters", func(t *testing.T) {
		args := queries.NewArgs("alice", "tempZone", "/tempZone/home/alice")

		got := InfoTypeCondition(args, []string{"csv", "tabular"})
		want := "coalesce(nullif(f.info_type, ''), 'raw') = ANY($4)"
		if got != want {
			t.Errorf("InfoTypeCondition() = %q, want %q", got, want)
		}
		if diff := cmp.Diff([]string{"csv", "tabular"}, args.Values()[3]); diff != "" {
			t.Errorf("bound set mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestBadFileCondition(t *testing.T) {
	tests := []struct {
		name     string
		spec     models.BadItemSpec
		want     string
		wantArgs []interface{}
	}{
		{
			name: "nothing flagged",
			spec: models.BadItemSpec{BaseFolder: "/tempZone/home/alice"},
			want: "FALSE",
		},
		{
			name:     "bad characters",
			spec:     models.BadItemSpec{Chars: ":*?"},
			want:     "(translate(d.data_name, $1, '') != d.data_name)",
			wantArgs: []interface{}{":*?"},
		},
		{
			name:     "bad names",
			spec:     models.BadItemSpec{Names: []string{"..", "CON"}},
			want:     "(d.data_name = ANY($1))",
			wantArgs: []interface{}{[]string{"..", "CON"}},
		},
		{
			name:     "bad paths",
			spec:     models.BadItemSpec{Paths: []string{"/tempZone/home/alice/x"}},
			want:     "((p.coll_name || '/' || d.data_name) = ANY($1))",
			wantArgs: []interface{}{[]string{"/tempZone/home/alice/x"}},
		},
		{
			name: "all three are alternatives",
			spec: models.BadItemSpec{
				Chars: "\\",
				Names: []string{"aux"},
				Paths: []string{"/tempZone/home/alice/y"},
			},
			want: "(translate(d.data_name, $1, '') != d.data_name" +
				" OR d.data_name = ANY($2)" +
				" OR (p.coll_name || '/' || d.data_name) = ANY($3))",
			wantArgs: []interface{}{"\\", []string{"aux"}, []string{"/tempZone/home/alice/y"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := queries.NewArgs()
			got := BadFileCondition(args, tt.spec)
			if got != tt.want {
				t.Errorf("BadFileCondition() = %q, want %q", got, tt.want)
			}
			if diff := cmp.Diff(tt.wantArgs, args.Values()); diff != "" {
				t.Errorf("bound parameters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBadFolderCondition(t *testing.T) {
	base := "/tempZone/home/alice"

	tests := []struct {
		name     string
		spec     models.BadItemSpec
		want     string
		wantArgs []interface{}
	}{
		{
			name: "nothing flagged",
			spec: models.BadItemSpec{BaseFolder: base},
			want: "FALSE",
		},
		{
			name: "bad characters test the name below the base folder",
			spec: models.BadItemSpec{Chars: "#", BaseFolder: base},
			want: "(translate(substring(c.coll_name FROM $2), $1, '') != substring(c.coll_name FROM $2))",
			// "/tempZone/home/alice/" is 21 characters long
			wantArgs: []interface{}{"#", 22},
		},
		{
			name:     "name offset is bound once",
			spec:     models.BadItemSpec{Chars: "#", Names: []string{"tmp"}, BaseFolder: base},
			want:     "(translate(substring(c.coll_name FROM $2), $1, '') != substring(c.coll_name FROM $2) OR substring(c.coll_name FROM $2) = ANY($3))",
			wantArgs: []interface{}{"#", 22, []string{"tmp"}},
		},
		{
			name:     "paths alone bind no offset",
			spec:     models.BadItemSpec{Paths: []string{base + "/tmp"}, BaseFolder: base},
			want:     "(c.coll_name = ANY($1))",
			wantArgs: []interface{}{[]string{base + "/tmp"}},
		},
		{
			name:     "trailing slash on the base folder",
			spec:     models.BadItemSpec{Names: []string{"x"}, BaseFolder: base + "/"},
			want:     "(substring(c.coll_name FROM $1) = ANY($2))",
			wantArgs: []interface{}{22, []string{"x"}},
		},
		{
			name:     "offset counts characters not bytes",
			spec:     models.BadItemSpec{Names: []string{"x"}, BaseFolder: "/zöne"},
			want:     "(substring(c.coll_name FROM $1) = ANY($2))",
			wantArgs: []interface{}{7, []string{"x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := queries.NewArgs()
			got := BadFolderCondition(args, tt.spec)
			if got != tt.want {
				t.Errorf("BadFolderCondition() = %q, want %q", got, tt.want)
			}
			if diff := cmp.Diff(tt.wantArgs, args.Values()); diff != "" {
				t.Errorf("bound parameters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBadConditions_EmptySpecBindsNothing(t *testing.T) {
	spec := models.BadItemSpec{BaseFolder: "/tempZone/home/alice"}
	args := queries.NewArgs("alice")

	if got := BadFileCondition(args, spec); got != "FALSE" {
		t.Errorf("BadFileCondition() = %q, want FALSE", got)
	}
	if got := BadFolderCondition(args, spec); got != "FALSE" {
		t.Errorf("BadFolderCondition() = %q, want FALSE", got)
	}
	if args.Len() != 1 {
		t.Errorf("Len() = %d, want no new parameters", args.Len())
	}
}

func TestBadConditionsContinueNumbering(t *testing.T) {
	spec := models.BadItemSpec{Chars: "?", BaseFolder: "/z"}
	args := queries.NewArgs("alice", "z", "/z")

	InfoTypeCondition(args, []string{"csv"})
	file := BadFileCondition(args, spec)
	folder := BadFolderCondition(args, spec)

	if want := "(translate(d.data_name, $5, '') != d.data_name)"; file != want {
		t.Errorf("file condition = %q, want %q", file, want)
	}
	if want := "(translate(substring(c.coll_name FROM $7), $6, '') != substring(c.coll_name FROM $7))"; folder != want {
		t.Errorf("folder condition = %q, want %q", folder, want)
	}
	if args.Len() != 7 {
		t.Errorf("Len() = %d, want 7", args.Len())
	}
}

func TestUUIDListCondition(t *testing.T) {
	t.Run("canonicalizes and binds each id", func(t *testing.T) {
		args := queries.NewArgs("alice", "tempZone", uint(10), uint(0))

		got, err := UUIDListCondition(args, []string{
			"0F8FAD5B-D9CB-469F-A165-70867728950E",
			" {7c9e6679-7425-40de-944b-e07fc1f90ae7} ",
		})
		if err != nil {
			t.Fatalf("UUIDListCondition() error = %v", err)
		}
		if got != "$5" {
			t.Errorf("UUIDListCondition() = %q, want %q", got, "$5")
		}

		want := []interface{}{[]string{
			"0f8fad5b-d9cb-469f-a165-70867728950e",
			"7c9e6679-7425-40de-944b-e07fc1f90ae7",
		}}
		if diff := cmp.Diff(want, args.Values()[4:]); diff != "" {
			t.Errorf("bound ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects malformed ids without binding", func(t *testing.T) {
		args := queries.NewArgs()

		_, err := UUIDListCondition(args, []string{"0f8fad5b-d9cb-469f-a165-70867728950e", "'; DROP TABLE r_coll_main; --"})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("error = %v, want ErrInvalidArgument", err)
		}
		if args.Len() != 0 {
			t.Errorf("Len() = %d, want 0", args.Len())
		}
	})

	t.Run("large batches use one parameter", func(t *testing.T) {
		ids := make([]string, 70000)
		for i := range ids {
			ids[i] = uuid.NewString()
		}
		args := queries.NewArgs()

		got, err := UUIDListCondition(args, ids)
		if err != nil {
			t.Fatalf("UUIDListCondition() error = %v", err)
		}
		if got != "$1" || args.Len() != 1 {
			t.Errorf("UUIDListCondition() = %q with %d parameters, want $1 with 1", got, args.Len())
		}
		if bound := args.Values()[0].([]string); len(bound) != len(ids) {
			t.Errorf("bound %d ids, want %d", len(bound), len(ids))
		}
	})

	t.Run("rejects an empty set", func(t *testing.T) {
		_, err := UUIDListCondition(queries.NewArgs(), nil)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("error = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestSubtreePattern(t *testing.T) {
	tests := []struct {
		folder string
		want   string
	}{
		{"/tempZone/home/alice", "/tempZone/home/alice/%"},
		{"/tempZone/home/alice/", "/tempZone/home/alice/%"},
		{"/", "/%"},
		{"/tempZone/home/50%_done", `/tempZone/home/50\%\_done/%`},
		{`/tempZone/home/back\slash`, `/tempZone/home/back\\slash/%`},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			if got := subtreePattern(tt.folder); got != tt.want {
				t.Errorf("subtreePattern(%q) = %q, want %q", tt.folder, got, tt.want)
			}
		})
	}
}
