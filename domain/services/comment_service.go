package services

import (
	"context"

	"github.com/google/uuid"

	"tasktrack/domain/dto"
)

type CommentService interface {
	ListComments(ctx context.Context, userID, taskID uuid.UUID) ([]dto.CommentResponse, error)
	AddComment(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	// DeleteComment allowed to the author and the board owner
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}
