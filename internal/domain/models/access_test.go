package models

import "testing"

func TestMaxAccessLevel(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		want *AccessLevel
	}{
		{name: "no records", rows: nil, want: nil},
		{
			name: "single record",
			rows: []Row{{"access_type_id": int64(1050)}},
			want: ptr(AccessRead),
		},
		{
			name: "highest wins regardless of order",
			rows: []Row{
				{"access_type_id": int64(1120)},
				{"access_type_id": int64(1200)},
				{"access_type_id": int64(1050)},
			},
			want: ptr(AccessOwn),
		},
		{
			name: "null ids are ignored",
			rows: []Row{{"access_type_id": nil}, {"access_type_id": int32(1120)}},
			want: ptr(AccessWrite),
		},
		{
			name: "only null ids",
			rows: []Row{{"access_type_id": nil}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxAccessLevel(tt.rows)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("MaxAccessLevel() = %v, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("MaxAccessLevel() = nil, want %v", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("MaxAccessLevel() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestAccessLevel_String(t *testing.T) {
	tests := map[AccessLevel]string{
		AccessRead:  "read",
		AccessWrite: "write",
		AccessOwn:   "own",
		1140:        "1140",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("AccessLevel(%d).String() = %q, want %q", int64(level), got, want)
		}
	}
}

func TestAccessLevel_MarshalJSON(t *testing.T) {
	data, err := AccessOwn.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if want := `{"id":1200,"name":"own"}`; string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}
}

func ptr(l AccessLevel) *AccessLevel { return &l }
