package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "somin", "somin"},
		{"strips tags", "<b>somin</b>", "somin"},
		{"strips script", "<script>alert(1)</script>somin", "somin"},
		{"trims space", "  somin  ", "somin"},
		{"keeps hangul", "아침형 인간", "아침형 인간"},
		{"markup only", "<img src=x onerror=alert(1)>", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeName(tc.input))
		})
	}
}
