package helpers_test

import (
	"testing"

	"github.com/robworks/opsdocs/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestClampInt(t *testing.T) {
	tests := []struct {
		name       string
		v          int
		lowerLimit int
		upperLimit int
		want       int
	}{
		{name: "below", v: 0, lowerLimit: 10, upperLimit: 20, want: 10},
		{name: "inside", v: 15, lowerLimit: 10, upperLimit: 20, want: 15},
		{name: "above", v: 25, lowerLimit: 10, upperLimit: 20, want: 20},
		{name: "at-lower", v: 10, lowerLimit: 10, upperLimit: 20, want: 10},
		{name: "at-upper", v: 20, lowerLimit: 10, upperLimit: 20, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, helpers.ClampInt(tt.v, tt.lowerLimit, tt.upperLimit))
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "lf-only", in: "a\nb\n", want: "a\nb\n"},
		{name: "crlf", in: "a\r\nb\r\n", want: "a\nb\n"},
		{name: "lone-cr", in: "a\rb", want: "a\nb"},
		{name: "mixed", in: "a\r\nb\rc\n", want: "a\nb\nc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(helpers.NormalizeNewlines([]byte(tt.in))))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter", in: "chmod", n: 10, want: "chmod"},
		{name: "exact", in: "chmod", n: 5, want: "chmod"},
		{name: "cut", in: "chmod 640 file", n: 5, want: "chmod…"},
		{name: "multibyte", in: "zóne fïle", n: 4, want: "zóne…"},
		{name: "zero", in: "chmod", n: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, helpers.TruncateRunes(tt.in, tt.n))
		})
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "title", helpers.FirstLine("title\nbody"))
	assert.Equal(t, "no newline", helpers.FirstLine("no newline"))
	assert.Equal(t, "", helpers.FirstLine("\nrest"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"File Permissions", "file-permissions"},
		{"File Permissions & ACLs", "file-permissions-acls"},
		{"chmod, chown and chgrp", "chmod-chown-and-chgrp"},
		{"DNSSEC  --  Signing", "dnssec-signing"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER", "upper"},
		{"123 numbers", "123-numbers"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, helpers.Slugify(tt.in))
		})
	}
}
