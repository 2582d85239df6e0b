package service

import (
	"context"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// ListPosts lists all posts, oldest first.
func (s *Service) ListPosts(ctx context.Context) ([]domain.Payload, error) {
	return s.list(ctx, postDocs, "", nil)
}

// CreatePost publishes a post.
func (s *Service) CreatePost(ctx context.Context, data domain.Payload) (domain.Payload, error) {
	if err := requireFields(data, "user_id", "content"); err != nil {
		return nil, err
	}
	data = data.Clone()
	data["likes"] = 0
	data["liked_by"] = []any{}
	return s.create(ctx, postDocs, data)
}

// LikePost records a like by userID. Liking twice is a no-op.
func (s *Service) LikePost(ctx context.Context, postID, userID string) (domain.Payload, error) {
	if userID == "" {
		return nil, newError(ErrInvalidInput, "user_id is required")
	}
	post, err := s.get(ctx, postDocs, postID)
	if err != nil {
		return nil, err
	}

	likedBy, _ := post["liked_by"].([]any)
	for _, id := range likedBy {
		if id == userID {
			return post, nil
		}
	}
	likedBy = append(likedBy, userID)
	return s.update(ctx, postDocs, postID, domain.Payload{"liked_by": likedBy, "likes": len(likedBy)})
}

// DeletePost deletes a post.
func (s *Service) DeletePost(ctx context.Context, postID string) error {
	return s.remove(ctx, postDocs, postID)
}

// ListReviews lists reviews, optionally for one provider.
func (s *Service) ListReviews(ctx context.Context, providerID string) ([]domain.Payload, error) {
	return s.list(ctx, reviewDocs, providerID, nil)
}

// CreateReview stores a review with a rating from 1 to 5.
func (s *Service) CreateReview(ctx context.Context, data domain.Payload) (domain.Payload, error) {
	if err := requireFields(data, "provider_id", "user_id", "rating"); err != nil {
		return nil, err
	}
	rating, ok := data["rating"].(float64)
	if !ok || rating < 1 || rating > 5 {
		return nil, newError(ErrInvalidInput, "rating must be between 1 and 5")
	}
	return s.create(ctx, reviewDocs, data)
}
