package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/domain"
)

// SocialClient calls the posts and reviews endpoints.
type SocialClient struct {
	t *transport
}

// ListPosts returns the feed.
// GET /api/social/posts
func (c *SocialClient) ListPosts(ctx context.Context, opts ...CallOption) ([]domain.Payload, error) {
	return c.t.payloads(ctx, request{
		op:     "list_posts",
		method: http.MethodGet,
		path:   config.SocialEndpoint + "/posts",
	}, resolve(ReturnEmpty, opts))
}

// CreatePost publishes a post.
// POST /api/social/posts
func (c *SocialClient) CreatePost(ctx context.Context, post domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "create_post",
		method: http.MethodPost,
		path:   config.SocialEndpoint + "/posts",
		body:   post,
	}, resolve(Raise, opts))
}

// LikePost likes a post for the current user.
// POST /api/social/posts/:id/like
func (c *SocialClient) LikePost(ctx context.Context, postID string, opts ...CallOption) (bool, error) {
	return c.t.succeeded(ctx, request{
		op:     "like_post",
		method: http.MethodPost,
		path:   pathJoin(config.SocialEndpoint+"/posts", postID, "like"),
		body:   map[string]string{"user_id": c.t.session.Snapshot().UserID},
	}, resolve(ReturnEmpty, opts))
}

// DeletePost removes a post.
// DELETE /api/social/posts/:id
func (c *SocialClient) DeletePost(ctx context.Context, postID string, opts ...CallOption) error {
	_, err := c.t.succeeded(ctx, request{
		op:     "delete_post",
		method: http.MethodDelete,
		path:   pathJoin(config.SocialEndpoint+"/posts", postID),
	}, resolve(Raise, opts))
	return err
}

// ListReviews lists reviews, optionally for one provider.
// GET /api/social/reviews?provider_id=
func (c *SocialClient) ListReviews(ctx context.Context, providerID string, opts ...CallOption) ([]domain.Payload, error) {
	var query url.Values
	if providerID != "" {
		query = url.Values{"provider_id": {providerID}}
	}
	return c.t.payloads(ctx, request{
		op:     "list_reviews",
		method: http.MethodGet,
		path:   config.SocialEndpoint + "/reviews",
		query:  query,
	}, resolve(ReturnEmpty, opts))
}

// CreateReview reviews a provider.
// POST /api/social/reviews
func (c *SocialClient) CreateReview(ctx context.Context, review domain.Payload, opts ...CallOption) (domain.Payload, error) {
	return c.t.payload(ctx, request{
		op:     "create_review",
		method: http.MethodPost,
		path:   config.SocialEndpoint + "/reviews",
		body:   review,
	}, resolve(Raise, opts))
}

// Close is a no-op: the transport is shared with the other clients and is
// released by Clients.Close.
func (c *SocialClient) Close() {}
