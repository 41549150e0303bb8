package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserID(t *testing.T) {
	tests := []struct {
		in     string
		want   uint
		wantOK bool
	}{
		{in: "7", want: 7, wantOK: true},
		{in: " 42 ", want: 42, wantOK: true},
		{in: "", want: 0, wantOK: false},
		{in: "0", want: 0, wantOK: false},
		{in: "-1", want: 0, wantOK: false},
		{in: "abc", want: 0, wantOK: false},
		{in: "7.5", want: 0, wantOK: false},
		{in: "99999999999999999999", want: 0, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := parseUserID(tt.in)
		assert.Equal(t, tt.wantOK, ok, "parseUserID(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "parseUserID(%q) value", tt.in)
	}
}
