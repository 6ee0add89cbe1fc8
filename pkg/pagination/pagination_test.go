// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/node/pkg/pagination"
)

/*
TestFromRequest_Clamping verifies that bad query values fall back to defaults.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 20}},
		{"explicit", "?page=3&limit=50", pagination.Params{Page: 3, Limit: 50}},
		{"negative_page", "?page=-2", pagination.Params{Page: 1, Limit: 20}},
		{"limit_too_large", "?limit=1000", pagination.Params{Page: 1, Limit: 20}},
		{"garbage", "?page=abc&limit=x", pagination.Params{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

/*
TestMeta_Navigation verifies previous/next detection.
*/
func TestMeta_Navigation(t *testing.T) {
	first := pagination.NewMeta(1, 20, 45)
	assert.Equal(t, 3, first.TotalPages)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	last := pagination.NewMeta(3, 20, 45)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())

	assert.Equal(t, "limit=20&page=3", pagination.Params{Page: 3, Limit: 20}.Query().Encode())
}
