package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/grasp/internal/identity"
	"github.com/abhisek/grasp/internal/store"
	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Browse saved study notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		notes, err := s.NoteRepo().List(context.Background(), identity.LearnerID())
		if err != nil {
			return fmt.Errorf("list notes: %w", err)
		}

		if len(notes) == 0 {
			fmt.Println("No saved notes yet. Press S on the notes screen during a study session.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-36s  %s\n", "ID", "Saved", "Title", "Mastered")
		fmt.Println(strings.Repeat("─", 80))
		for _, n := range notes {
			title := n.Title
			if len(title) > 36 {
				title = title[:36]
			}
			fmt.Printf("%-5d  %-19s  %-36s  %d/%d\n",
				n.ID,
				n.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				title,
				n.MasteredCount,
				n.ConceptCount,
			)
		}
		return nil
	},
}

var notesViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Print a saved note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		n, err := s.NoteRepo().Get(context.Background(), identity.LearnerID(), id)
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}
		if n == nil {
			return fmt.Errorf("note %d not found", id)
		}

		fmt.Printf("Title:     %s\n", n.Title)
		fmt.Printf("Source:    %s\n", n.SourcePath)
		fmt.Printf("Saved:     %s\n", n.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Mastered:  %d/%d concepts\n", n.MasteredCount, n.ConceptCount)
		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		fmt.Println(n.Content)
		return nil
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		deleted, err := s.NoteRepo().Delete(context.Background(), identity.LearnerID(), id)
		if err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		if !deleted {
			return fmt.Errorf("note %d not found", id)
		}

		fmt.Printf("Deleted note %d.\n", id)
		return nil
	},
}

func init() {
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesViewCmd)
	notesCmd.AddCommand(notesDeleteCmd)
}
