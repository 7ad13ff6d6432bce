package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocabplan/internal/excel"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	cfg := excel.DefaultImportConfig()
	var listSize int

	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Import words and split them into study lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg.FilePath = args[0]
			cfg.ListSize = a.cfg.Study.WordsPerDay
			if listSize > 0 {
				cfg.ListSize = listSize
			}

			result, err := excel.ImportWords(cmd.Context(), cfg, a.words)
			if err != nil {
				return err
			}
			a.logger.Info("words imported",
				"file", cfg.FilePath,
				"imported", result.Imported,
				"skipped", result.Skipped)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "processed: %d  imported: %d  skipped: %d\n",
				result.TotalProcessed, result.Imported, result.Skipped)
			if result.Imported > 0 {
				fmt.Fprintf(out, "lists: %s-%s\n", listName(result.FirstList), listName(result.LastList))
			}
			for _, e := range result.Errors {
				fmt.Fprintln(out, wrongStyle.Render(e))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Grade, "grade", "", "Grade assigned to the words")
	f.StringVar(&cfg.Textbook, "textbook", "", "Textbook assigned to the words")
	f.StringVar(&cfg.SheetName, "sheet", cfg.SheetName, "Sheet name (xlsx)")
	f.IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "First data row, 1-based")
	f.StringVar(&cfg.WordColumn, "word-col", cfg.WordColumn, "Column with the word")
	f.StringVar(&cfg.TranslationColumn, "translation-col", cfg.TranslationColumn, "Column with the translation")
	f.StringVar(&cfg.PhoneticColumn, "phonetic-col", cfg.PhoneticColumn, "Column with the transcription")
	f.StringVar(&cfg.UnitColumn, "unit-col", cfg.UnitColumn, "Column with the unit number")
	f.IntVar(&listSize, "list-size", 0, "Words per list (default: study.words_per_day)")
	return cmd
}
