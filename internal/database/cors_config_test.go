package database

import (
	"reflect"
	"testing"
)

func TestAllowedOriginsSlice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origins string
		want    []string
	}{
		{
			name:    "single origin",
			origins: "http://localhost:3000",
			want:    []string{"http://localhost:3000"},
		},
		{
			name:    "multiple with whitespace",
			origins: " https://a.example , https://b.example ",
			want:    []string{"https://a.example", "https://b.example"},
		},
		{
			name:    "empty entries dropped",
			origins: "https://a.example,,,",
			want:    []string{"https://a.example"},
		},
		{
			name:    "empty string yields nil",
			origins: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := AllowedOriginsSlice(tt.origins)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
