package model

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"go", "web", "go", "api"}, []string{"go", "web", "api"}},
		{[]string{"", "go", ""}, []string{"go"}},
		{nil, []string{}},
	}

	for _, c := range cases {
		if got := NormalizeTags(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("NormalizeTags(%v) = %v, 期望 %v", c.in, got, c.want)
		}
	}
}
