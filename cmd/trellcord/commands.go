package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trellcord/internal/storage"
)

func newBoardsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "boards", Short: "Manage boards"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all boards",
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			boards, err := svc.ListBoards(c.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTARRED\tMEMBERS\tUPDATED")
			for _, b := range boards {
				fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%s\n",
					b.ID, b.Title, b.IsStarred, len(b.Members), b.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	})

	var title, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a board",
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			b, err := svc.CreateBoard(c.Context(), storage.Board{Title: title, Description: description})
			if err != nil {
				return err
			}
			fmt.Println(b.ID)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "board title")
	create.Flags().StringVar(&description, "description", "", "board description")
	_ = create.MarkFlagRequired("title")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a board and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			return svc.DeleteBoard(c.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "archive <id>",
		Short: "Move a board to the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			ab, err := svc.ArchiveBoard(c.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(ab.ID)
			return nil
		},
	})

	return cmd
}

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "archive", Short: "Manage archived boards"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived boards",
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			archived, err := svc.ListArchivedBoards(c.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tARCHIVED\tLISTS")
			for _, ab := range archived {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					ab.ID, ab.Title, ab.ArchivedAt.Format("2006-01-02"), len(ab.OriginalBoard.Lists))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived board (the restored board gets a new id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			b, err := svc.RestoreBoard(c.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(b.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an archived board permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			return svc.DeleteArchivedBoard(c.Context(), args[0])
		},
	})

	return cmd
}

func newListsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "lists", Short: "Manage lists"}

	var boardID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the lists of a board",
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			lists, err := svc.ListLists(c.Context(), boardID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPOSITION")
			for _, l := range lists {
				fmt.Fprintf(w, "%s\t%s\t%d\n", l.ID, l.Title, l.Position)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&boardID, "board", "", "board id")
	_ = list.MarkFlagRequired("board")
	cmd.AddCommand(list)

	var createBoard, title string
	var position int
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a list on a board",
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			l, err := svc.CreateList(c.Context(), storage.List{Title: title, BoardID: createBoard, Position: position})
			if err != nil {
				return err
			}
			fmt.Println(l.ID)
			return nil
		},
	}
	create.Flags().StringVar(&createBoard, "board", "", "board id")
	create.Flags().StringVar(&title, "title", "", "list title")
	create.Flags().IntVar(&position, "position", 0, "display position")
	_ = create.MarkFlagRequired("board")
	_ = create.MarkFlagRequired("title")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a list and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			return svc.DeleteList(c.Context(), args[0])
		},
	})

	return cmd
}

func newCardsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "cards", Short: "Manage cards"}

	var listID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the cards of a list",
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			cards, err := svc.ListCards(c.Context(), listID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPOSITION\tDUE")
			for _, card := range cards {
				due := "-"
				if card.DueDate != nil {
					due = card.DueDate.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", card.ID, card.Title, card.Position, due)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&listID, "list", "", "list id")
	_ = list.MarkFlagRequired("list")
	cmd.AddCommand(list)

	var createList, title, description string
	var position int
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a card on a list",
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			card, err := svc.CreateCard(c.Context(), storage.Card{
				Title:       title,
				Description: description,
				ListID:      createList,
				Position:    position,
			})
			if err != nil {
				return err
			}
			fmt.Println(card.ID)
			return nil
		},
	}
	create.Flags().StringVar(&createList, "list", "", "list id")
	create.Flags().StringVar(&title, "title", "", "card title")
	create.Flags().StringVar(&description, "description", "", "card description")
	create.Flags().IntVar(&position, "position", 0, "display position")
	_ = create.MarkFlagRequired("list")
	_ = create.MarkFlagRequired("title")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a card and its comments and attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			return svc.DeleteCard(c.Context(), args[0])
		},
	})

	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Erase every collection in the configured database",
		RunE: func(c *cobra.Command, args []string) error {
			svc, err := a.store(c.Context())
			if err != nil {
				return err
			}
			return svc.Clear(c.Context())
		},
	}
}
