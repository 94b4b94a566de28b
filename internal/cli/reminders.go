package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tasktrack/domain/models"
	"tasktrack/pkg/reminders"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Edit the reminder schedule of each priority",
	Long: `Edit the reminder schedule of each priority.

Edits are kept in a local draft until "tasktrack reminders save" sends every
priority to the server. Each priority holds at most three reminders.`,
}

var remindersShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show reminders, including unsaved edits",
	Args:  cobra.NoArgs,
	RunE:  runRemindersShow,
}

var remindersAddCmd = &cobra.Command{
	Use:   "add <priority> <value> <minutes|hours|days>",
	Short: "Add a reminder to a priority",
	Args:  cobra.ExactArgs(3),
	RunE:  runRemindersAdd,
}

var remindersRmCmd = &cobra.Command{
	Use:   "rm <priority> <index>",
	Short: "Remove a reminder by its index",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemindersRm,
}

var remindersMoveCmd = &cobra.Command{
	Use:   "move <priority> <from> <to>",
	Short: "Reorder the reminders of a priority",
	Args:  cobra.ExactArgs(3),
	RunE:  runRemindersMove,
}

var remindersDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop unsaved edits",
	Args:  cobra.NoArgs,
	RunE:  runRemindersDiscard,
}

var remindersSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Send every priority to the server",
	Args:  cobra.NoArgs,
	RunE:  runRemindersSave,
}

func init() {
	remindersCmd.AddCommand(remindersShowCmd)
	remindersCmd.AddCommand(remindersAddCmd)
	remindersCmd.AddCommand(remindersRmCmd)
	remindersCmd.AddCommand(remindersMoveCmd)
	remindersCmd.AddCommand(remindersDiscardCmd)
	remindersCmd.AddCommand(remindersSaveCmd)
}

// openEditor server state with the local draft on top
func openEditor(cmd *cobra.Command) (*reminders.Editor, error) {
	if err := requireLogin(); err != nil {
		return nil, err
	}
	ed := reminders.NewEditor(current.client.Gateway())
	if err := ed.Load(ctxOf(cmd)); err != nil {
		return nil, err
	}
	draft, err := loadDraft(draftPath(configPath))
	if err != nil {
		return nil, err
	}
	if draft != nil {
		ed.Restore(draft)
	}
	return ed, nil
}

// keepDraft stores the working copy, or drops the draft once it matches the server
func keepDraft(ed *reminders.Editor) error {
	if !ed.HasChanges() {
		return removeDraft(draftPath(configPath))
	}
	return saveDraft(draftPath(configPath), ed.Priorities())
}

func runRemindersShow(cmd *cobra.Command, args []string) error {
	ed, err := openEditor(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), RenderPriorities(ed.Priorities(), ed.HasChanges()))
	return nil
}

func runRemindersAdd(cmd *cobra.Command, args []string) error {
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q", args[1])
	}
	ed, err := openEditor(cmd)
	if err != nil {
		return err
	}

	ok, err := ed.Add(models.Priority(args[0]), value, models.ReminderUnit(args[2]))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s already has %d reminders", args[0], models.MaxRemindersPerPriority)
	}
	return showAfterEdit(cmd, ed)
}

func runRemindersRm(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[1])
	}
	ed, err := openEditor(cmd)
	if err != nil {
		return err
	}

	ok, err := ed.Remove(models.Priority(args[0]), index)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s has no reminder %d", args[0], index)
	}
	return showAfterEdit(cmd, ed)
}

func runRemindersMove(cmd *cobra.Command, args []string) error {
	from, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[1])
	}
	to, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[2])
	}
	ed, err := openEditor(cmd)
	if err != nil {
		return err
	}

	ok, err := ed.Move(models.Priority(args[0]), from, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("index out of range for %s", args[0])
	}
	return showAfterEdit(cmd, ed)
}

func runRemindersDiscard(cmd *cobra.Command, args []string) error {
	if err := removeDraft(draftPath(configPath)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Unsaved reminder edits discarded")
	return nil
}

func runRemindersSave(cmd *cobra.Command, args []string) error {
	ed, err := openEditor(cmd)
	if err != nil {
		return err
	}
	if !ed.HasChanges() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to save")
		return removeDraft(draftPath(configPath))
	}

	// the draft survives a failed save so the next attempt resends it
	if err := ed.SaveAll(ctxOf(cmd)); err != nil {
		return err
	}
	if err := removeDraft(draftPath(configPath)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Reminders saved at %s\n", success("✓"), ed.SavedAt().Format("15:04:05"))
	return nil
}

func showAfterEdit(cmd *cobra.Command, ed *reminders.Editor) error {
	if err := keepDraft(ed); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), RenderPriorities(ed.Priorities(), ed.HasChanges()))
	return nil
}
