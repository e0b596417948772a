package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// From starts a query against a relational table.
func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		cols:   "*",
	}
}

// Query builds one table request. Filters compose; the terminal call
// (Get, Insert, Upsert, Update, Delete) sends it.
type Query struct {
	client  *Client
	table   string
	cols    string
	filters []string
	order   string
	single  bool
}

func (q *Query) Select(cols string) *Query {
	q.cols = cols
	return q
}

func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, fmt.Sprintf("%s=eq.%v", column, value))
	return q
}

// ILike adds a case-insensitive pattern filter; pattern uses * wildcards.
func (q *Query) ILike(column, pattern string) *Query {
	q.filters = append(q.filters, fmt.Sprintf("%s=ilike.%s", column, url.QueryEscape(pattern)))
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.order = fmt.Sprintf("order=%s.%s", column, dir)
	return q
}

// Single asks the platform for exactly one row instead of an array.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

func (q *Query) path() string {
	parts := []string{"select=" + url.QueryEscape(q.cols)}
	parts = append(parts, q.filters...)
	if q.order != "" {
		parts = append(parts, q.order)
	}
	return fmt.Sprintf("/rest/v1/%s?%s", q.table, strings.Join(parts, "&"))
}

func (q *Query) headers() map[string]string {
	h := map[string]string{}
	if q.single {
		h["Accept"] = "application/vnd.pgrst.object+json"
	}
	return h
}

// Get reads matching rows into dest.
func (q *Query) Get(ctx context.Context, dest any) error {
	return q.client.doJSON(ctx, "GET", q.path(), q.headers(), nil, dest)
}

// Insert creates a row; the created row is decoded into dest when
// dest is non-nil.
func (q *Query) Insert(ctx context.Context, row, dest any) error {
	h := q.headers()
	if dest != nil {
		h["Prefer"] = "return=representation"
	}
	return q.client.doJSON(ctx, "POST", q.path(), h, row, dest)
}

// Upsert creates or updates a row, resolving conflicts on the given
// comma-separated column list.
func (q *Query) Upsert(ctx context.Context, row any, onConflict string, dest any) error {
	h := q.headers()
	h["Prefer"] = "resolution=merge-duplicates"
	if dest != nil {
		h["Prefer"] = "resolution=merge-duplicates,return=representation"
	}
	path := q.path() + "&on_conflict=" + url.QueryEscape(onConflict)
	return q.client.doJSON(ctx, "POST", path, h, row, dest)
}

// Update patches rows matching the filters.
func (q *Query) Update(ctx context.Context, values, dest any) error {
	h := q.headers()
	if dest != nil {
		h["Prefer"] = "return=representation"
	}
	return q.client.doJSON(ctx, "PATCH", q.path(), h, values, dest)
}

// Delete removes rows matching the filters.
func (q *Query) Delete(ctx context.Context) error {
	return q.client.doJSON(ctx, "DELETE", q.path(), nil, nil, nil)
}
