package nutrition

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save, restore, and exchange named food lists",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current list and settings under a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			if err := s.SaveSnapshot(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %q\n", args[0])
			return nil
		})
	},
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Replace the current list with a saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			if err := s.LoadSnapshot(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded snapshot %q (%d entries)\n", args[0], len(s.Entries))
			return nil
		})
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			names, snapshots, err := s.ListSnapshots()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshots saved")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tENTRIES\tMULTIPLIER\tSAVED AT")
			for _, name := range names {
				snap := snapshots[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.3f\t%s\n",
					name, len(snap.Foods), snap.Multiplier, snap.SavedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			if err := s.DeleteSnapshot(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %q\n", args[0])
			return nil
		})
	},
}

var snapshotExportName string

var snapshotExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the current list (or a named snapshot) to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := s.ExportSnapshot(f, snapshotExportName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		})
	},
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the current list with an exported snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()
			if err := s.ImportSnapshot(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries\n", len(s.Entries))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotLoadCmd, snapshotListCmd, snapshotDeleteCmd, snapshotExportCmd, snapshotImportCmd)
	snapshotExportCmd.Flags().StringVar(&snapshotExportName, "name", "", "Export a named snapshot instead of the current list")
}
