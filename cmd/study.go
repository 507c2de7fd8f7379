package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/abhisek/grasp/internal/app"
	"github.com/abhisek/grasp/internal/concept"
	"github.com/abhisek/grasp/internal/extract"
	"github.com/abhisek/grasp/internal/identity"
	"github.com/abhisek/grasp/internal/ingest"
	"github.com/abhisek/grasp/internal/llm"
	"github.com/abhisek/grasp/internal/quiz"
	"github.com/abhisek/grasp/internal/store"
	"github.com/abhisek/grasp/internal/summary"
	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study <file>",
	Short: "Extract concepts from a text file and start a study session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, args[0])
	},
}

// runStudy loads the document, extracts its concept graph, and launches
// the TUI.
func runStudy(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	doc, err := ingest.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	fmt.Printf("Mapping the concepts in %s...\n", doc.Title)
	concepts, err := extract.NewService(provider, extract.DefaultConfig()).Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract concepts: %w", err)
	}

	graph, err := concept.NewGraph(concepts)
	if err != nil {
		return fmt.Errorf("build concept graph: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	return app.Run(app.Options{
		Graph:       graph,
		Provider:    provider,
		Quiz:        quiz.DefaultConfig(),
		Summary:     summary.NewService(provider, summary.DefaultConfig()),
		Notes:       st.NoteRepo(),
		Owner:       identity.LearnerID(),
		SourceTitle: doc.Title,
		SourcePath:  absPath,
	})
}
