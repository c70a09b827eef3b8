package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/pkg/idgen"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/systemassets"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
)

func newIDsCmd(a *app) *cobra.Command {
	var (
		file      string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "ids [key...]",
		Short: "Look up identifiers in a written sf-ids.json",
		Long: `Prints the identifier assigned to each given $id key together with the
document and item it decodes to. Without keys every entry is printed.

  ids "Moves / Face Danger"
  ids --file build/sf-ids.json "Moves / Pay the Price"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") {
				a.cfg.OutputDir = outputDir
			}
			data, err := readIDs(cmd, a, file)
			if err != nil {
				return err
			}

			ids := idmap.New()
			if err := ids.UnmarshalJSON(data); err != nil {
				return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode identifier map")
			}

			keys := args
			if len(keys) == 0 {
				keys = ids.Keys()
			}
			return printIDs(cmd, ids, keys)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to an sf-ids.json file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory holding sf-ids.json (env IRONSWORN_OUTPUT_DIR)")

	return cmd
}

func readIDs(cmd *cobra.Command, a *app, file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file) // nolint:gosec // path comes from the operator
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NotFoundf("%s does not exist", file)
			}
			return nil, errors.Wrapf(err, "failed to read %s", file)
		}
		return data, nil
	}

	repo, err := systemassets.NewFilesystem(&systemassets.Config{Dir: a.cfg.OutputDir})
	if err != nil {
		return nil, err
	}
	return repo.Read(cmd.Context(), dataforged.OutputIDs)
}

func printIDs(cmd *cobra.Command, ids *idmap.IDMap, keys []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	var missing int
	for _, key := range keys {
		id, ok := ids.Lookup(key)
		if !ok {
			missing++
			fmt.Fprintf(w, "%s\t%s\t\n", key, idmap.Unresolved)
			continue
		}

		fileIndex, itemIndex, err := idgen.Parse(id)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t(not a content identifier)\n", key, id)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s #%d\n", key, id, documentName(fileIndex), itemIndex)
	}

	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	if missing > 0 {
		return errors.NotFoundf("%d of %d keys have no identifier", missing, len(keys))
	}
	return nil
}

// documentName maps a 1-based file index back to its document
func documentName(fileIndex uint64) string {
	if fileIndex == 0 || fileIndex > uint64(len(dataforged.Names)) {
		return fmt.Sprintf("document %d", fileIndex)
	}
	return string(dataforged.Names[fileIndex-1])
}
