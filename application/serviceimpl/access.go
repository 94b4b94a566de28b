package serviceimpl

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktrack/domain/models"
	"tasktrack/domain/repositories"
	"tasktrack/domain/services"
)

var (
	errBoardNotFound      = services.NewError(services.ErrNotFound, "board not found")
	errTaskNotFound       = services.NewError(services.ErrNotFound, "task not found")
	errCategoryNotFound   = services.NewError(services.ErrNotFound, "category not found")
	errCommentNotFound    = services.NewError(services.ErrNotFound, "comment not found")
	errAttachmentNotFound = services.NewError(services.ErrNotFound, "attachment not found")
	errUserNotFound       = services.NewError(services.ErrNotFound, "user not found")
	errOwnerOnly          = services.NewError(services.ErrForbidden, "only the board owner can do this")
	errStorageDisabled    = services.NewError(services.ErrUnavailable, "file storage is not configured")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// boardAccess membership checks shared by every board scoped service.
// A board the user cannot see is reported as not found.
type boardAccess struct {
	boardRepo repositories.BoardRepository
}

// member returns whether the user owns the board
func (a boardAccess) member(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	owner, guest, err := a.boardRepo.IsMember(ctx, boardID, userID)
	if err != nil {
		if isNotFound(err) {
			return false, errBoardNotFound
		}
		return false, err
	}
	if !owner && !guest {
		return false, errBoardNotFound
	}
	return owner, nil
}

func (a boardAccess) owner(ctx context.Context, boardID, userID uuid.UUID) error {
	owner, err := a.member(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if !owner {
		return errOwnerOnly
	}
	return nil
}

// task loads a task and checks the user can see its board
func (a boardAccess) task(ctx context.Context, taskRepo repositories.TaskRepository, taskID, userID uuid.UUID) (*models.Task, bool, error) {
	task, err := taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if isNotFound(err) {
			return nil, false, errTaskNotFound
		}
		return nil, false, err
	}
	owner, err := a.member(ctx, task.BoardID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, false, errTaskNotFound
		}
		return nil, false, err
	}
	return task, owner, nil
}

// parseIDs rejects the whole list on the first malformed id
func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, services.NewError(services.ErrInvalidInput, "invalid id: "+s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
