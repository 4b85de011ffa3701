package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes nested under their review.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, authService service.AuthService) {
	comments := router.Group("/titles/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)
	}

	authed := comments.Group("", middleware.AuthMiddleware(authService))
	{
		authed.POST("", h.Create)
		authed.PATCH("/:comment_id", h.Update)
		authed.DELETE("/:comment_id", h.Delete)
	}
}

// List retrieves a review's comments ordered by publication time
// GET /api/v1/titles/:title_id/reviews/:review_id/comments?page=1&page_size=20
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := h.parseParentIDs(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)

	comments, err := h.commentService.ListByReview(titleID, reviewID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Get retrieves a specific comment
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := h.parseParentIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.parseCommentID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(titleID, reviewID, commentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Create posts a comment on a review
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := h.parseParentIDs(c)
	if !ok {
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(actor, titleID, reviewID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update edits a comment (author, moderator or admin)
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := h.parseParentIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.parseCommentID(c)
	if !ok {
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(actor, titleID, reviewID, commentID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment (author, moderator or admin)
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := h.parseParentIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.parseCommentID(c)
	if !ok {
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.commentService.Delete(actor, titleID, reviewID, commentID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}

func (h *CommentHandler) parseParentIDs(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title ID"})
		return 0, 0, false
	}
	reviewID, err = strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (h *CommentHandler) parseCommentID(c *gin.Context) (int64, bool) {
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return 0, false
	}
	return commentID, true
}

func (h *CommentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReviewNotFound), errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
