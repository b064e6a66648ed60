package services

import (
	"fmt"
	"io"

	"authcenter/files"
	"authcenter/models"
	"authcenter/repositories"
)

type PostService interface {
	Create(input *CreatePostInput) (*models.Post, error)
	ListByUser(userID uint) ([]models.Post, error)
}

// CreatePostInput carries the multipart form fields of a post. Image is the
// uploaded file stream; ImageExt is the extension taken from the original
// file name. Image may be nil for a text-only post.
type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Image    io.Reader
	ImageExt string
}

type postService struct {
	posts repositories.PostRepository
	store *files.Store
}

var _ PostService = (*postService)(nil)

// NewPostService creates a new PostService instance
func NewPostService(posts repositories.PostRepository, store *files.Store) PostService {
	return &postService{posts: posts, store: store}
}

func (s *postService) Create(input *CreatePostInput) (*models.Post, error) {
	var imageName string
	if input.Image != nil {
		name, err := s.store.Save(input.Image, input.ImageExt)
		if err != nil {
			return nil, fmt.Errorf("failed to store post image: %w", err)
		}
		imageName = name
	}

	post := models.Post{
		Title:   input.Title,
		Content: input.Content,
		Image:   imageName,
		UserID:  input.UserID,
	}
	if err := s.posts.Create(&post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

func (s *postService) ListByUser(userID uint) ([]models.Post, error) {
	posts, err := s.posts.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("database error retrieving posts: %w", err)
	}
	return posts, nil
}
