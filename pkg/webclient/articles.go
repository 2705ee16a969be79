package webclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ArticleSummary is one row of the admin article list.
type ArticleSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"judul"`
	Slug        string `json:"slug"`
	Category    string `json:"nama_kategori"`
	IsPublished int    `json:"is_published"`
	IsFeatured  int    `json:"is_featured"`
	Views       int64  `json:"views"`
	PublishDate string `json:"tanggal_publish,omitempty"`
}

// ArticleAdminList pages through the admin article list. Changing any
// filter resets to page 1; Fetch issues exactly one request.
type ArticleAdminList struct {
	client *Client

	search    string
	category  string
	published *bool
	featured  *bool
	page      int
	limit     int

	pagination *Pagination
}

// NewArticleAdminList builds a pager starting at page 1.
func NewArticleAdminList(client *Client) *ArticleAdminList {
	return &ArticleAdminList{client: client, page: 1, limit: 10}
}

// SetSearch changes the search term and resets to page 1.
func (l *ArticleAdminList) SetSearch(term string) {
	l.search = term
	l.page = 1
}

// SetCategory changes the category filter and resets to page 1.
func (l *ArticleAdminList) SetCategory(slug string) {
	l.category = slug
	l.page = 1
}

// SetPublished filters on publish state and resets to page 1. nil removes
// the filter.
func (l *ArticleAdminList) SetPublished(published *bool) {
	l.published = published
	l.page = 1
}

// SetFeatured filters on featured state and resets to page 1. nil removes
// the filter.
func (l *ArticleAdminList) SetFeatured(featured *bool) {
	l.featured = featured
	l.page = 1
}

// Page returns the current page number.
func (l *ArticleAdminList) Page() int {
	return l.page
}

// HasNext reports whether a later page exists, per the last fetch.
func (l *ArticleAdminList) HasNext() bool {
	return l.pagination != nil && l.page < l.pagination.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (l *ArticleAdminList) HasPrev() bool {
	return l.page > 1
}

// Next advances one page when possible.
func (l *ArticleAdminList) Next() bool {
	if !l.HasNext() {
		return false
	}
	l.page++
	return true
}

// Prev steps back one page when possible.
func (l *ArticleAdminList) Prev() bool {
	if !l.HasPrev() {
		return false
	}
	l.page--
	return true
}

// Fetch retrieves the current page with the current filters.
func (l *ArticleAdminList) Fetch(ctx context.Context) ([]ArticleSummary, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(l.page))
	query.Set("limit", strconv.Itoa(l.limit))
	if l.search != "" {
		query.Set("search", l.search)
	}
	if l.category != "" {
		query.Set("kategori", l.category)
	}
	if l.published != nil {
		query.Set("is_published", boolFlag(*l.published))
	}
	if l.featured != nil {
		query.Set("featured", boolFlag(*l.featured))
	}

	env, err := l.client.GetJSON(ctx, "/api/admin/articles?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var articles []ArticleSummary
	if err := json.Unmarshal(env.Data, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	l.pagination = env.Pagination
	return articles, nil
}

// SetArticlePublished toggles publish state. Callers refetch the list on
// success rather than patching rows locally.
func (c *Client) SetArticlePublished(ctx context.Context, id int64, published bool) error {
	flag := 0
	if published {
		flag = 1
	}
	_, err := c.PostJSON(ctx, fmt.Sprintf("/api/admin/articles/%d/publish", id), map[string]int{"is_published": flag})
	return err
}

// SetArticleFeatured toggles featured state.
func (c *Client) SetArticleFeatured(ctx context.Context, id int64, featured bool) error {
	flag := 0
	if featured {
		flag = 1
	}
	_, err := c.PostJSON(ctx, fmt.Sprintf("/api/admin/articles/%d/feature", id), map[string]int{"is_featured": flag})
	return err
}

// DeleteArticle removes an article. The confirmation step lives with the
// caller.
func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/api/admin/articles/%d", id))
	return err
}

// boolFlag renders a boolean as the 0/1 form the API expects in query
// strings and toggle payloads.
func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
