package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskpad/internal/export"
	"taskpad/internal/storage"
)

var (
	exportDir    string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the starting task list as a checklist file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", "", "directory to write into (default from config)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "print instead of writing a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	content := export.Format(storage.Seed(), a.exportOptions())
	if exportStdout {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}

	dir := exportDir
	if dir == "" {
		dir = a.cfg.ExportDir
	}
	sink := export.DirSink{Dir: dir}
	if err := sink.WriteTextFile(a.cfg.ExportFile, content); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", sink.Path(a.cfg.ExportFile))
	return nil
}
