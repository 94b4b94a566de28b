package postgres

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasktrack/domain/models"
	"tasktrack/domain/repositories"
)

const taskSelectWithCounts = `tasks.*,
	(SELECT COUNT(*) FROM comments WHERE comments.task_id = tasks.id) AS comment_count,
	(SELECT COUNT(*) FROM attachments WHERE attachments.task_id = tasks.id) AS attachment_count`

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task, categoryIDs, assigneeIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		if err := replaceTaskCategories(tx, task.ID, categoryIDs); err != nil {
			return err
		}
		return replaceTaskAssignees(tx, task.ID, assigneeIDs)
	})
}

func (r *TaskRepositoryImpl) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select(taskSelectWithCounts).
		Preload("Categories").
		Preload("Assignees")
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.query(ctx).Where("tasks.id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}

	tasks := []models.Task{task}
	if err := r.orderAssignees(ctx, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

func (r *TaskRepositoryImpl) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.query(ctx).
		Where("tasks.board_id = ?", boardID).
		Order("tasks.created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, r.orderAssignees(ctx, tasks)
}

func (r *TaskRepositoryImpl) ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees").
		Where("column_id <> ?", models.ColumnDone).
		Where("due_date IS NOT NULL AND due_date BETWEEN ? AND ?", from, to).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task, categoryIDs, assigneeIDs *[]uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"priority":    task.Priority,
			"column_id":   task.ColumnID,
			"due_date":    task.DueDate,
			"updated_at":  time.Now(),
		}).Error
		if err != nil {
			return err
		}

		if categoryIDs != nil {
			if err := replaceTaskCategories(tx, task.ID, *categoryIDs); err != nil {
				return err
			}
		}
		if assigneeIDs != nil {
			if err := replaceTaskAssignees(tx, task.ID, *assigneeIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TaskRepositoryImpl) UpdateColumn(ctx context.Context, id uuid.UUID, column models.Column) error {
	result := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"column_id":  column,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Task{}).Error
	})
}

// ==================== Junctions ====================

func replaceTaskCategories(tx *gorm.DB, taskID uuid.UUID, categoryIDs []uuid.UUID) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	rows := make([]models.TaskCategory, 0, len(categoryIDs))
	seen := make(map[uuid.UUID]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, models.TaskCategory{TaskID: taskID, CategoryID: id})
	}
	return tx.Create(&rows).Error
}

func replaceTaskAssignees(tx *gorm.DB, taskID uuid.UUID, userIDs []uuid.UUID) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignee{}).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]models.TaskAssignee, 0, len(userIDs))
	seen := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, models.TaskAssignee{TaskID: taskID, UserID: id, Position: len(rows)})
	}
	return tx.Create(&rows).Error
}

// orderAssignees preload loses the junction order, restore it from task_assignees.position
func (r *TaskRepositoryImpl) orderAssignees(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}

	var rows []models.TaskAssignee
	if err := r.db.WithContext(ctx).Where("task_id IN ?", ids).Find(&rows).Error; err != nil {
		return err
	}

	type key struct{ task, user uuid.UUID }
	position := make(map[key]int, len(rows))
	for _, row := range rows {
		position[key{row.TaskID, row.UserID}] = row.Position
	}

	for i := range tasks {
		t := &tasks[i]
		sort.SliceStable(t.Assignees, func(a, b int) bool {
			return position[key{t.ID, t.Assignees[a].ID}] < position[key{t.ID, t.Assignees[b].ID}]
		})
	}
	return nil
}
