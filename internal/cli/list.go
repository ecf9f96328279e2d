package cli

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"

	"github.com/docview/docview/internal/adapters/index"
	"github.com/docview/docview/internal/config"
	"github.com/docview/docview/internal/domain/usecases"
)

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "Print the documents that would appear in navigation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, argPath(args))
	if err != nil {
		return err
	}

	idx := index.New(cfg.Root, cfg.DefaultFile, cfg.Exclude)
	entries, err := usecases.NewListUseCase(idx).List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	tree := gotree.New(cfg.ProjectName)
	for _, entry := range entries {
		node := tree.Add(fmt.Sprintf("%s (%s)", entry.DisplayName, entry.Filename))
		if entry.Description != "" {
			node.Add(entry.Description)
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), tree.Print())

	return nil
}
