package repositories

import (
	"authcenter/models"

	"gorm.io/gorm"
)

// PostRepository interface defines Post-related database operations
type PostRepository interface {
	Create(post *models.Post) error
	FindByUser(userID uint) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	result := r.db.Create(post)
	return result.Error
}

func (r *postRepository) FindByUser(userID uint) ([]models.Post, error) {
	var posts []models.Post
	result := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}
