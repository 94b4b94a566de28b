package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tasktrack/domain/dto"
	"tasktrack/domain/models"
	"tasktrack/pkg/boardview"
	"tasktrack/pkg/kanban"
	"tasktrack/pkg/session"
)

var (
	boardDescription string
	boardTheme       string
	boardIcon        string
	boardSetDefault  bool

	viewSearch   string
	viewPriority string
	viewCategory string
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List, create and inspect boards",
}

var boardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List owned and shared boards",
	Args:  cobra.NoArgs,
	RunE:  runBoardsList,
}

var boardsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardsCreate,
}

var boardsShowCmd = &cobra.Command{
	Use:   "show [board-id]",
	Short: "Show a board with its stats",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBoardsShow,
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Work with a single board",
}

var boardViewCmd = &cobra.Command{
	Use:   "view [board-id]",
	Short: "Show the kanban columns of a board",
	Long: `Show the kanban columns of a board.

Filters combine: a task is shown when it matches the search text and one of
the chosen priorities and one of the chosen categories.

  tasktrack board view <id> --search exam --priority Alta,Urgente`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBoardView,
}

func init() {
	boardsCreateCmd.Flags().StringVar(&boardDescription, "description", "", "Board description")
	boardsCreateCmd.Flags().StringVar(&boardTheme, "theme", string(models.ThemeBlue), "Theme: blue, green, purple or orange")
	boardsCreateCmd.Flags().StringVar(&boardIcon, "icon", string(models.IconOther), "Icon: university, personal, work or other")
	boardsCreateCmd.Flags().BoolVar(&boardSetDefault, "default", false, "Use the new board as the default board")

	boardViewCmd.Flags().StringVar(&viewSearch, "search", "", "Match title or category name")
	boardViewCmd.Flags().StringVar(&viewPriority, "priority", "", "Comma separated priorities")
	boardViewCmd.Flags().StringVar(&viewCategory, "category", "", "Comma separated category ids")

	boardsCmd.AddCommand(boardsListCmd)
	boardsCmd.AddCommand(boardsCreateCmd)
	boardsCmd.AddCommand(boardsShowCmd)
	boardCmd.AddCommand(boardViewCmd)
}

func runBoardsList(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctx := ctxOf(cmd)
	gw := current.client.Gateway()

	auth := session.NewAuthStore(gw, nil)
	boards := session.NewBoardsStore(gw, auth)
	boards.Start(ctx)
	defer boards.Close()

	// publishing the profile triggers the board fetch
	if err := auth.RefreshProfile(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), RenderBoards(boards.Boards()))
	return nil
}

func runBoardsCreate(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	th := models.Theme(boardTheme)
	if !th.Valid() {
		return fmt.Errorf("unknown theme %q", boardTheme)
	}
	icon := models.Icon(boardIcon)
	if !icon.Valid() {
		return fmt.Errorf("unknown icon %q", boardIcon)
	}

	board, err := current.client.Boards.Create(ctxOf(cmd), &dto.CreateBoardRequest{
		Title:       strings.TrimSpace(args[0]),
		Description: boardDescription,
		Theme:       th,
		Icon:        icon,
	})
	if err != nil {
		return err
	}

	if boardSetDefault {
		current.cfg.DefaultBoard = board.ID
		if err := SaveConfig(configPath, current.cfg); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created board %s (%s)\n", success("✓"), board.Title, board.ID)
	return nil
}

func runBoardsShow(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	id, err := boardArg(args, 0)
	if err != nil {
		return err
	}
	board, err := current.client.Boards.Get(ctxOf(cmd), id)
	if err != nil {
		return err
	}
	if board == nil {
		return fmt.Errorf("board %s not found", id)
	}
	fmt.Fprintln(cmd.OutOrStdout(), RenderBoard(board))
	return nil
}

func runBoardView(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	id, err := boardArg(args, 0)
	if err != nil {
		return err
	}
	ctx := ctxOf(cmd)

	board, err := current.client.Boards.Get(ctx, id)
	if err != nil {
		return err
	}
	if board == nil {
		return fmt.Errorf("board %s not found", id)
	}

	ctrl, err := loadController(cmd, id)
	if err != nil {
		return err
	}
	ctrl.SetFilter(boardview.ParseFilter(viewSearch, viewPriority, viewCategory))

	fmt.Fprintln(cmd.OutOrStdout(), RenderKanban(board, ctrl.View(), time.Now()))
	return nil
}

func loadController(cmd *cobra.Command, boardID string) (*kanban.Controller, error) {
	ctrl := kanban.NewController(boardID, current.client.Gateway())
	if err := ctrl.Load(ctxOf(cmd)); err != nil {
		return nil, err
	}
	return ctrl, nil
}
