package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tasktrack/domain/models"
	"tasktrack/pkg/kanban"
)

const dueLayout = "2006-01-02"

var (
	taskTitle       string
	taskDescription string
	taskPriority    string
	taskColumn      string
	taskDue         string
	taskClearDue    bool
	taskCategories  []string
	taskComments    []string
	taskAttach      []string
	taskDetach      []string
	taskConfirm     bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create, edit, move and delete tasks",
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <board-id> <task-id> <column>",
	Short: "Move a task to todo, inprogress or done",
	Args:  cobra.ExactArgs(3),
	RunE:  runTaskMove,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <board-id>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <board-id> <task-id>",
	Short: "Edit a task, add comments and manage attachments",
	Long: `Edit a task. Only the flags given are changed.

Comments, new attachments and attachment removals are saved together with
the task; if any of them fails nothing is reported as saved and the command
can be repeated.

  tasktrack task edit <board> <task> --comment "done the intro" --attach notes.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskEdit,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <board-id> <task-id>",
	Short: "Delete a task with its comments and attachments",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskRm,
}

func init() {
	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVar(&taskTitle, "title", "", "Task title")
		c.Flags().StringVar(&taskDescription, "description", "", "Task description")
		c.Flags().StringVar(&taskPriority, "priority", "", "Bassa, Media, Alta or Urgente")
		c.Flags().StringVar(&taskColumn, "column", "", "todo, inprogress or done")
		c.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD)")
		c.Flags().StringSliceVar(&taskCategories, "category", nil, "Category ids (replaces the current set)")
	}
	taskEditCmd.Flags().BoolVar(&taskClearDue, "clear-due", false, "Remove the due date")
	taskEditCmd.Flags().StringArrayVar(&taskComments, "comment", nil, "Add a comment (repeatable)")
	taskEditCmd.Flags().StringArrayVar(&taskAttach, "attach", nil, "Upload a file (repeatable)")
	taskEditCmd.Flags().StringArrayVar(&taskDetach, "detach", nil, "Remove an attachment by id (repeatable)")
	taskRmCmd.Flags().BoolVar(&taskConfirm, "yes", false, "Confirm the deletion")

	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskRmCmd)
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	column := models.Column(args[2])
	if !column.Valid() {
		return fmt.Errorf("unknown column %q (use todo, inprogress or done)", args[2])
	}

	ctrl, err := loadController(cmd, args[0])
	if err != nil {
		return err
	}
	taskID, err := resolveTask(ctrl, args[1])
	if err != nil {
		return err
	}

	if err := ctrl.BeginDrag(taskID); err != nil {
		return err
	}
	if err := ctrl.Drop(ctxOf(cmd), column); err != nil {
		return err
	}
	task, _ := ctrl.Task(taskID)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", success("✓"), task.Title, models.ColumnTitles[column])
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctrl, err := loadController(cmd, args[0])
	if err != nil {
		return err
	}

	d := ctrl.OpenCreate(models.Column(taskColumn))
	if err := applyForm(cmd, &d.Form); err != nil {
		return err
	}
	task, err := ctrl.Save(ctxOf(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s (%s)\n", success("✓"), task.Title, task.ID)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctrl, err := loadController(cmd, args[0])
	if err != nil {
		return err
	}
	taskID, err := resolveTask(ctrl, args[1])
	if err != nil {
		return err
	}

	d, err := ctrl.OpenEdit(taskID)
	if err != nil {
		return err
	}
	if err := applyForm(cmd, &d.Form); err != nil {
		return err
	}
	if taskClearDue {
		d.Form.DueDate = nil
	}
	for _, text := range taskComments {
		if err := d.AddComment(text); err != nil {
			return err
		}
	}
	for _, path := range taskAttach {
		file, err := kanban.FileFromPath(path)
		if err != nil {
			return err
		}
		if err := d.AddFile(file); err != nil {
			return err
		}
	}
	for _, id := range taskDetach {
		if err := d.MarkForDeletion(id); err != nil {
			return err
		}
	}

	task, err := ctrl.Save(ctxOf(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s · %d comments · %d attachments\n",
		success("✓"), task.Title, task.CommentCount, task.AttachmentCount)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctrl, err := loadController(cmd, args[0])
	if err != nil {
		return err
	}
	taskID, err := resolveTask(ctrl, args[1])
	if err != nil {
		return err
	}
	d, err := ctrl.OpenEdit(taskID)
	if err != nil {
		return err
	}

	ctx := ctxOf(cmd)
	if _, err := ctrl.Delete(ctx); err != nil {
		return err
	}
	if !taskConfirm {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete %q with its comments and attachments? Run again with --yes\n", d.Task().Title)
		ctrl.CloseDialog()
		return nil
	}

	deleted, err := ctrl.Delete(ctx)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", success("✓"), d.Task().Title)
	}
	return nil
}

// applyForm copies the flags given on the command line into the form
func applyForm(cmd *cobra.Command, f *kanban.TaskForm) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		f.Title = taskTitle
	}
	if flags.Changed("description") {
		f.Description = taskDescription
	}
	if flags.Changed("priority") {
		f.Priority = models.Priority(taskPriority)
	}
	if flags.Changed("column") {
		f.ColumnID = models.Column(taskColumn)
	}
	if flags.Changed("due") {
		due, err := time.ParseInLocation(dueLayout, taskDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --due %q, expected YYYY-MM-DD", taskDue)
		}
		f.DueDate = &due
	}
	if flags.Changed("category") {
		f.CategoryIDs = taskCategories
	}
	return nil
}

// resolveTask accepts a full id or a unique prefix as printed by board view
func resolveTask(ctrl *kanban.Controller, ref string) (string, error) {
	if _, ok := ctrl.Task(ref); ok {
		return ref, nil
	}
	var match string
	for _, t := range ctrl.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("task id %q is ambiguous", ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("task %s: %w", ref, kanban.ErrUnknownTask)
	}
	return match, nil
}
