package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
	"tasktrack/pkg/logger"
)

type CommentServiceImpl struct {
	commentRepo repositories.CommentRepository
	taskRepo    repositories.TaskRepository
	userRepo    repositories.UserRepository
	access      boardAccess
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	taskRepo repositories.TaskRepository,
	boardRepo repositories.BoardRepository,
	userRepo repositories.UserRepository,
) services.CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		access:      boardAccess{boardRepo: boardRepo},
	}
}

func (s *CommentServiceImpl) ListComments(ctx context.Context, userID, taskID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, _, err := s.access.task(ctx, s.taskRepo, taskID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list comments", "task_id", taskID, "error", err)
		return nil, err
	}

	responses := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		responses[i] = *dto.CommentToCommentResponse(&comments[i])
	}
	return responses, nil
}

func (s *CommentServiceImpl) AddComment(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, _, err := s.access.task(ctx, s.taskRepo, taskID, userID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, services.NewError(services.ErrInvalidInput, "comment text is required")
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		logger.ErrorContext(ctx, "Failed to create comment", "task_id", taskID, "error", err)
		return nil, err
	}
	comment.Author = *author

	logger.InfoContext(ctx, "Comment added", "comment_id", comment.ID, "task_id", taskID)
	return dto.CommentToCommentResponse(comment), nil
}

func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if isNotFound(err) {
			return errCommentNotFound
		}
		return err
	}

	_, owner, err := s.access.task(ctx, s.taskRepo, comment.TaskID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return errCommentNotFound
		}
		return err
	}
	if comment.AuthorID != userID && !owner {
		return services.NewError(services.ErrForbidden, "only the author or the board owner can delete a comment")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete comment", "comment_id", commentID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Comment deleted", "comment_id", commentID, "task_id", comment.TaskID)
	return nil
}
