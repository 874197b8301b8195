package posts

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"native array", `["a","b"]`, []string{"a", "b"}},
		{"json-encoded string", `"[\"a\",\"b\"]"`, []string{"a", "b"}},
		{"multipart field value", `["go","blog"]`, []string{"go", "blog"}},
		{"empty input", ``, []string{}},
		{"whitespace", `   `, []string{}},
		{"empty array", `[]`, []string{}},
		{"garbage", `not json at all`, []string{}},
		{"wrong element types", `[1,2,3]`, []string{}},
		{"string holding garbage", `"nope"`, []string{}},
		{"order preserved", `["z","a","m"]`, []string{"z", "a", "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags([]byte(tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("NormalizeTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
