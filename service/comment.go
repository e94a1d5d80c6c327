package service

import (
	"Prism/dao"
	"Prism/models"
	"Prism/pkg/snowflake"
	"Prism/types"
	"context"
	"time"
)

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	Create(ctx context.Context, userID, postID uint64, req *types.CreateCommentRequest) (*models.Comment, error)
	ListByPost(ctx context.Context, viewerID, postID uint64, limit, offset int) ([]*types.CommentItem, error)
	Delete(ctx context.Context, actorID, commentID uint64) error
}

type CommentService struct {
	Comments   *dao.CommentDAO
	Posts      *dao.PostDAO
	Users      *dao.Users
	Visibility IVisibilityService
}

func NewCommentService(comments *dao.CommentDAO, posts *dao.PostDAO, users *dao.Users, visibility *VisibilityService) *CommentService {
	return &CommentService{
		Comments:   comments,
		Posts:      posts,
		Users:      users,
		Visibility: visibility,
	}
}

// Create 只能评论自己可见的帖子
func (s *CommentService) Create(ctx context.Context, userID, postID uint64, req *types.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.visiblePost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &models.Comment{
		ID:        uint64(snowflake.GenID()),
		PostID:    post.ID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Comments.Repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, viewerID, postID uint64, limit, offset int) ([]*types.CommentItem, error) {
	if _, err := s.visiblePost(ctx, viewerID, postID); err != nil {
		return nil, err
	}

	comments, err := s.Comments.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint64, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}
	authors, err := s.Users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*models.User, len(authors))
	for _, u := range authors {
		byID[u.ID] = u
	}

	items := make([]*types.CommentItem, 0, len(comments))
	for _, c := range comments {
		item := &types.CommentItem{
			ID:        c.ID,
			PostID:    c.PostID,
			UserID:    c.UserID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		}
		if u, ok := byID[c.UserID]; ok {
			item.Name = u.Name
			item.Username = u.Username
		}
		items = append(items, item)
	}
	return items, nil
}

// Delete 评论作者或帖子作者可删
func (s *CommentService) Delete(ctx context.Context, actorID, commentID uint64) error {
	comment, err := s.Comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}

	if comment.UserID != actorID {
		post, err := s.Posts.FindByID(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post == nil || post.UserID != actorID {
			return ErrUnauthorized
		}
	}
	return s.Comments.DeleteByID(ctx, commentID)
}

func (s *CommentService) visiblePost(ctx context.Context, viewerID, postID uint64) (*models.Post, error) {
	post, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	verdict, err := s.Visibility.CanViewPost(ctx, viewerID, post)
	if err != nil {
		return nil, err
	}
	if verdict == VerdictDenied {
		return nil, ErrPostNotFound
	}
	return post, nil
}
