package main

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/wbrown/janus-columnar/field"
	"github.com/wbrown/janus-columnar/field/storage"
)

var dbPath string

func main() {
	root := &cobra.Command{
		Use:           "fieldtool",
		Short:         "Inspect and edit a field store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "fields.db", "database path")

	root.AddCommand(newPutCmd(), newGetCmd(), newLsCmd(), newDelCmd(), newVerifyCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func openStore() (*storage.BadgerStore, error) {
	store, err := storage.NewBadgerStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	return store, nil
}

func newPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <name> <dump>",
		Short: "Store a field given in dump form, e.g. 'UInt64_42'",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := field.RestoreFromDump(args[1])
			if err != nil {
				return fmt.Errorf("failed to parse field: %w", err)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Put(args[0], &f); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], f.Dump())
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print a stored field in dump form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(f.Dump())
			return nil
		},
	}
}

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List stored fields as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			it, err := store.Scan(prefix)
			if err != nil {
				return err
			}
			defer it.Close()

			tableString := &strings.Builder{}
			table := tablewriter.NewTable(tableString,
				tablewriter.WithRenderer(renderer.NewMarkdown()),
				tablewriter.WithHeaderAutoFormat(tw.Off),
			)
			table.Header([]string{"Name", "Type", "Value"})

			rows := 0
			for it.Next() {
				f, err := it.Field()
				if err != nil {
					return fmt.Errorf("failed to decode %q: %w", it.Name(), err)
				}
				table.Append([]string{it.Name(), f.TypeName(), f.Dump()})
				rows++
			}
			table.Render()
			fmt.Print(tableString.String())
			fmt.Printf("\n_%d fields_\n", rows)
			return nil
		},
	}
}

func newDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <name>",
		Short: "Delete a stored field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Delete(args[0])
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [prefix]",
		Short: "Round-trip stored fields through the dump and binary codecs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			it, err := store.Scan(prefix)
			if err != nil {
				return err
			}
			defer it.Close()

			failures := 0
			total := 0
			for it.Next() {
				total++
				name := it.Name()
				f, err := it.Field()
				if err != nil {
					fmt.Printf("%s %s: %v\n", color.RedString("FAIL"), name, err)
					failures++
					continue
				}
				if err := verifyField(&f); err != nil {
					fmt.Printf("%s %s: %v\n", color.RedString("FAIL"), name, err)
					failures++
					continue
				}
				fmt.Printf("%s %s: %s\n", color.GreenString("OK"), name, f.Dump())
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d fields failed verification", failures, total)
			}
			fmt.Printf("verified %d fields\n", total)
			return nil
		},
	}
}

// verifyField checks that f survives both codecs unchanged.
func verifyField(f *field.Field) error {
	restored, err := field.RestoreFromDump(f.Dump())
	if err != nil {
		return fmt.Errorf("dump round-trip: %w", err)
	}
	if eq, err := f.Equal(&restored); err != nil {
		return fmt.Errorf("dump round-trip compare: %w", err)
	} else if !eq {
		return fmt.Errorf("dump round-trip mismatch: %s != %s", f.Dump(), restored.Dump())
	}

	var buf bytes.Buffer
	if err := field.WriteFieldBinary(f, &buf); err != nil {
		return fmt.Errorf("binary encode: %w", err)
	}
	decoded, err := field.ReadFieldBinary(&buf)
	if err != nil {
		return fmt.Errorf("binary decode: %w", err)
	}
	if eq, err := f.Equal(&decoded); err != nil {
		return fmt.Errorf("binary round-trip compare: %w", err)
	} else if !eq {
		return fmt.Errorf("binary round-trip mismatch: %s != %s", f.Dump(), decoded.Dump())
	}
	return nil
}
