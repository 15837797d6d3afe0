// ABOUTME: Generic typed resource client over one REST collection
// ABOUTME: LIST, CREATE, UPDATE, DELETE with server-canonical records
package api

import (
	"context"
	"net/http"
	"net/url"
)

// Collection is a typed client for one resource collection, e.g.
// NewCollection[models.Partner](client, "/partners").
type Collection[T any] struct {
	client *Client
	path   string
}

// NewCollection binds a record type to a collection path.
func NewCollection[T any](client *Client, path string) *Collection[T] {
	return &Collection[T]{client: client, path: path}
}

// List fetches every record of the collection in server order.
func (r *Collection[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create posts a draft and returns the server's canonical record.
func (r *Collection[T]) Create(ctx context.Context, draft T) (T, error) {
	var created T
	if err := r.client.do(ctx, http.MethodPost, r.path, draft, &created); err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

// Update puts a patch for one record and returns the updated record.
func (r *Collection[T]) Update(ctx context.Context, id string, patch T) (T, error) {
	var updated T
	if err := r.client.do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), patch, &updated); err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete removes one record. A 404 comes back as *APIError.
func (r *Collection[T]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
}
