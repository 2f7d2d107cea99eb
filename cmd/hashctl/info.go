package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/hashkit/pkg/hashdb"
	"github.com/spf13/cobra"
)

var infoIndexOnly bool

func init() {
	cmd := newInfoCmd()
	cmd.Flags().
		BoolVar(&infoIndexOnly, "index-only", false, "Open the index alone even if its source database exists")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <index>",
		Short: "Report hash database name, type, and capabilities",
		Long: `The info command opens a hash database index and displays its
display name, database type, hash type, and supported operations.

Example:
  hashctl info NSRLFile.txt-md5.idx
  hashctl info NSRLFile.txt-md5.idx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type dbInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	HashType     string `json:"hash_type"`
	Updateable   bool   `json:"updateable"`
	Capabilities string `json:"capabilities"`
	Size         int64  `json:"size,omitempty"`
}

func runInfo(args []string) error {
	idxPath := args[0]

	printVerbose("Opening index: %s\n", idxPath)

	db, err := hashdb.Open(idxPath, hashdb.OpenOptions{
		IndexOnly: infoIndexOnly,
		Logger:    newLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to open hash database: %w", err)
	}
	defer db.Close()

	info := dbInfo{
		Path:         idxPath,
		Name:         db.PrintableName(),
		Type:         db.Type().String(),
		HashType:     db.HashType().String(),
		Updateable:   db.Updateable(),
		Capabilities: db.Capabilities().String(),
	}
	if stat, err := os.Stat(idxPath); err == nil {
		info.Size = stat.Size()
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nHash Database Information:\n")
	printInfo("  Index: %s\n", info.Path)
	if info.Size > 0 {
		printInfo("  Size: %s\n", formatSize(info.Size))
	}
	printInfo("  Name: %s\n", info.Name)
	printInfo("  Type: %s\n", info.Type)
	printInfo("  Hash type: %s\n", info.HashType)
	printInfo("  Updateable: %t\n", info.Updateable)
	printInfo("  Operations: %s\n", info.Capabilities)
	return nil
}

func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
