package models

import (
	"errors"
	"math"
	"testing"

	"icatdirect/internal/domain"
)

func TestValidateSort(t *testing.T) {
	tests := []struct {
		column    string
		order     string
		want      SortClause
		wantError bool
	}{
		{column: "type", order: "asc", want: SortClause{Column: "type", Direction: "ASC"}},
		{column: "modify-ts", order: "desc", want: SortClause{Column: "modify_ts", Direction: "DESC"}},
		{column: "create-ts", order: "asc", want: SortClause{Column: "create_ts", Direction: "ASC"}},
		{column: "data-size", order: "desc", want: SortClause{Column: "data_size", Direction: "DESC"}},
		{column: "base-name", order: "asc", want: SortClause{Column: "base_name", Direction: "ASC"}},
		{column: "full-path", order: "desc", want: SortClause{Column: "full_path", Direction: "DESC"}},
		{column: "size", order: "asc", wantError: true},
		{column: "base_name", order: "asc", wantError: true},
		{column: "base-name", order: "ASC", wantError: true},
		{column: "base-name", order: "", wantError: true},
		{column: "", order: "asc", wantError: true},
		{column: "full_path; DROP TABLE r_data_main", order: "asc", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.column+"/"+tt.order, func(t *testing.T) {
			got, err := ValidateSort(tt.column, tt.order)
			if tt.wantError {
				if !errors.Is(err, domain.ErrInvalidArgument) {
					t.Fatalf("ValidateSort() error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateSort() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ValidateSort() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateSort_EveryAcceptedPair(t *testing.T) {
	for _, column := range SortColumns() {
		for _, order := range SortOrders() {
			spec := SortSpec{Column: column, Order: order}
			if _, err := spec.Validate(); err != nil {
				t.Errorf("Validate(%s, %s) error = %v", column, order, err)
			}
		}
	}
}

func TestValidateSort_NamesTheArgument(t *testing.T) {
	_, err := ValidateSort("bogus", "asc")

	var argErr *domain.InvalidArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("error = %T, want *domain.InvalidArgumentError", err)
	}
	if argErr.Argument != "sort column" {
		t.Errorf("Argument = %q, want %q", argErr.Argument, "sort column")
	}

	_, err = ValidateSort("type", "sideways")
	if !errors.As(err, &argErr) {
		t.Fatalf("error = %T, want *domain.InvalidArgumentError", err)
	}
	if argErr.Argument != "sort order" {
		t.Errorf("Argument = %q, want %q", argErr.Argument, "sort order")
	}
}

func TestPage_Validate(t *testing.T) {
	huge := uint(math.MaxInt64) + 1

	tests := []struct {
		name    string
		page    Page
		wantErr bool
	}{
		{"zero", Page{}, false},
		{"largest bigint", Page{Limit: math.MaxInt64, Offset: math.MaxInt64}, false},
		{"limit overflows bigint", Page{Limit: huge}, true},
		{"offset overflows bigint", Page{Offset: huge}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.wantErr != errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestBadItemSpec_IsEmpty(t *testing.T) {
	if !(BadItemSpec{BaseFolder: "/z"}).IsEmpty() {
		t.Error("spec with only a base folder should be empty")
	}
	if (BadItemSpec{Names: []string{"x"}}).IsEmpty() {
		t.Error("spec with names should not be empty")
	}
}
