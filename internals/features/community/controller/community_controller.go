package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	communityModel "campussphere_backend/internals/features/community/model"
	helper "campussphere_backend/internals/helpers"
	"campussphere_backend/internals/middlewares/auth"
)

var validate = validator.New()

type CommunityController struct {
	DB *gorm.DB
}

func NewCommunityController(db *gorm.DB) *CommunityController {
	return &CommunityController{DB: db}
}

func (ctrl *CommunityController) GetPosts(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	type postRow struct {
		ID        uint   `json:"id"`
		UserID    uint   `json:"user_id"`
		UserName  string `json:"user_name"`
		Content   string `json:"content"`
		PostType  string `json:"post_type"`
		Likes     int    `json:"likes"`
		Liked     bool   `json:"liked"`
		CreatedAt string `json:"created_at"`
	}
	var posts []postRow
	if err := ctrl.DB.Model(&communityModel.CommunityPostModel{}).
		Select(`community_posts.id, community_posts.user_id, users.name AS user_name,
			community_posts.content, community_posts.post_type, community_posts.likes,
			community_posts.created_at,
			EXISTS(SELECT 1 FROM post_likes WHERE post_likes.post_id = community_posts.id AND post_likes.user_id = ?) AS liked`, userID).
		Joins("JOIN users ON users.id = community_posts.user_id").
		Order("community_posts.created_at desc").
		Scan(&posts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch posts")
	}

	return helper.JsonOK(c, "Posts fetched successfully", posts)
}

func (ctrl *CommunityController) CreatePost(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)

	var input struct {
		Content  string `json:"content" validate:"required,max=5000"`
		PostType string `json:"post_type" validate:"required,oneof=general question announcement"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	post := communityModel.CommunityPostModel{
		UserID:   userID,
		Content:  input.Content,
		PostType: &input.PostType,
	}
	if err := ctrl.DB.Create(&post).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create post")
	}

	return helper.JsonCreated(c, "Post created successfully", post)
}

func (ctrl *CommunityController) DeletePost(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", postID, userID).
			Delete(&communityModel.CommunityPostModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("post_id = ?", postID).Delete(&communityModel.PostLikeModel{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete post")
	}

	return helper.JsonDeleted(c, "Post deleted successfully", nil)
}

// ToggleLike involutif: dua kali toggle mengembalikan state semula.
// Delete-dulu-baru-insert; constraint unik (user_id, post_id) yang
// menjaga race double-insert, dan decrement di-floor di 0.
func (ctrl *CommunityController) ToggleLike(c *fiber.Ctx) error {
	userID := auth.PrincipalID(c, constants.RoleUser)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	var post communityModel.CommunityPostModel
	if err := ctrl.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to toggle like")
	}

	var liked bool
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&communityModel.PostLikeModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&communityModel.CommunityPostModel{}).
				Where("id = ?", postID).
				Update("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error
		}

		like := communityModel.PostLikeModel{UserID: userID, PostID: uint(postID)}
		if err := tx.Create(&like).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return tx.Model(&communityModel.CommunityPostModel{}).
			Where("id = ?", postID).
			Update("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to toggle like")
	}

	if err := ctrl.DB.First(&post, postID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to toggle like")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"likes":   post.Likes,
		"liked":   liked,
	})
}
