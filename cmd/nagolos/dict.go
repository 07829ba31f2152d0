// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nagolos/internal/dictionary"
)

const defaultDB = "nagolos.db"

func newDictCmd(a *app) *cobra.Command {
	dictCmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage stress dictionaries (import, lookup)",
		Long: `Dict maintains a local SQLite stress dictionary. Word lists are YAML
files with a "words" list; each entry marks the stressed vowel with a plus
sign ("за+мок"). Forms with several readings are listed once per reading.`,
	}

	// --- import subcommand ---

	importCmd := &cobra.Command{
		Use:   "import <words.yaml>",
		Short: "Import a YAML word list into a SQLite dictionary",
		Long: `Import reads a YAML word list and adds its readings to the database
given by --db, creating it when missing. Readings already present are
skipped, so importing the same list twice is harmless.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _ := cmd.Flags().GetString("db")
			if db == "" {
				db = defaultDB
			}

			entries, err := dictionary.LoadYAMLFile(args[0])
			if err != nil {
				return err
			}

			store, err := dictionary.OpenStore(db)
			if err != nil {
				return err
			}
			defer store.Close()

			added, err := store.Import(cmd.Context(), entries)
			if err != nil {
				return err
			}
			total, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d readings into %s (%d total)\n",
				added, len(entries), db, total)
			return nil
		},
	}
	importCmd.Flags().String("db", defaultDB, "SQLite dictionary to write")

	// --- lookup subcommand ---

	lookupCmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Show the known stress readings of a word",
		Long: `Lookup prints every reading the dictionary holds for a word, one per
line, in dictionary order. Without --db the configured dictionary is used
(stress.dictionary), falling back to the built-in list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("db")
			if path == "" {
				path = a.cfg.Stress.Dictionary
			}

			d, err := dictionary.Open(path)
			if err != nil {
				return err
			}
			defer d.Close()

			form := dictionary.Normalize(args[0])
			readings, err := d.Lookup(cmd.Context(), form)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(readings) == 0 {
				fmt.Fprintf(out, "%s: no readings\n", form)
				return nil
			}
			for _, v := range readings {
				fmt.Fprintln(out, dictionary.Entry{Form: form, Vowel: v}.String())
			}
			return nil
		},
	}
	lookupCmd.Flags().String("db", "", "dictionary to query: .yaml word list or SQLite database")

	dictCmd.AddCommand(importCmd)
	dictCmd.AddCommand(lookupCmd)
	return dictCmd
}
