package user

import (
	"context"
	"strings"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// SearchUsers queries the search projection. A nil searcher means search is disabled.
type SearchUsers struct {
	searcher UserSearcher
}

func NewSearchUsers(searcher UserSearcher) *SearchUsers {
	return &SearchUsers{searcher: searcher}
}

func (uc *SearchUsers) Execute(ctx context.Context, query string, size int) ([]UserResponse, error) {
	query = strings.TrimSpace(query)
	if uc.searcher == nil || query == "" {
		return []UserResponse{}, nil
	}
	switch {
	case size <= 0:
		size = defaultSearchSize
	case size > maxSearchSize:
		size = maxSearchSize
	}
	return uc.searcher.Search(ctx, query, size)
}
