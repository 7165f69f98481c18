package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteURL(t *testing.T) {
	tests := []struct {
		addr string
		base string
		want string
	}{
		{"127.0.0.1:8080", "/portfolio", "http://127.0.0.1:8080/portfolio/"},
		{":8080", "/portfolio", "http://localhost:8080/portfolio/"},
		{"0.0.0.0:9000", "", "http://localhost:9000/"},
		{"[::]:8080", "/p", "http://localhost:8080/p/"},
		{"example.com", "/portfolio", "http://example.com/portfolio/"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, siteURL(tt.addr, tt.base))
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1d", shortID("3f2a9c1d7e5b"))
	assert.Equal(t, "abc", shortID("abc"))
}
