package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joshuapare/hashkit/pkg/hashdb"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	lookupHashFile  string
	lookupJobs      int
	lookupIndexOnly bool
)

func init() {
	cmd := newLookupCmd()
	cmd.Flags().StringVarP(&lookupHashFile, "hash-file", "f", "", "Read hashes from a file, one per line")
	cmd.Flags().IntVarP(&lookupJobs, "jobs", "j", 4, "Number of concurrent lookups")
	cmd.Flags().
		BoolVar(&lookupIndexOnly, "index-only", false, "Open the index alone even if its source database exists")
	rootCmd.AddCommand(cmd)
}

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <index> [hash...]",
		Short: "Check whether hashes are in a hash database",
		Long: `The lookup command searches a hash database index for one or more
MD5 or SHA-1 hashes. Hashes come from the command line, from --hash-file, or
both. Blank lines and lines starting with # in the hash file are skipped.

Example:
  hashctl lookup NSRLFile.txt-md5.idx d41d8cd98f00b204e9800998ecf8427e
  hashctl lookup NSRLFile.txt-md5.idx --hash-file evidence.md5 --jobs 8
  hashctl lookup NSRLFile.txt-md5.idx --hash-file evidence.md5 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(args)
		},
	}
	return cmd
}

type lookupResult struct {
	Hash  string `json:"hash"`
	Found bool   `json:"found"`
}

func runLookup(args []string) error {
	idxPath := args[0]
	hashes := append([]string(nil), args[1:]...)

	if lookupHashFile != "" {
		fromFile, err := readHashFile(lookupHashFile)
		if err != nil {
			return err
		}
		hashes = append(hashes, fromFile...)
	}
	if len(hashes) == 0 {
		return fmt.Errorf("no hashes given\nUsage: hashctl lookup <index> [hash...] [--hash-file file]")
	}

	printVerbose("Opening index: %s\n", idxPath)

	db, err := hashdb.Open(idxPath, hashdb.OpenOptions{
		IndexOnly: lookupIndexOnly,
		Logger:    newLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to open hash database: %w", err)
	}
	defer db.Close()

	results := make([]lookupResult, len(hashes))
	var g errgroup.Group
	g.SetLimit(max(lookupJobs, 1))
	for i, h := range hashes {
		g.Go(func() error {
			found, err := db.Lookup(h, hashdb.FlagQuick, nil)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", h, err)
			}
			results[i] = lookupResult{Hash: h, Found: found}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"index":   idxPath,
			"name":    db.PrintableName(),
			"results": results,
		})
	}

	hits := 0
	for _, r := range results {
		status := "not found"
		if r.Found {
			status = "found"
			hits++
		}
		printInfo("%s\t%s\n", r.Hash, status)
	}
	printVerbose("%d of %d hashes found in %s\n", hits, len(results), db.PrintableName())
	return nil
}

// readHashFile returns the hashes listed in path. The first
// whitespace-separated field of each line is taken, so md5sum output works.
func readHashFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hash file: %w", err)
	}
	defer f.Close()

	var hashes []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hashes = append(hashes, strings.Fields(line)[0])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hash file: %w", err)
	}
	return hashes, nil
}
