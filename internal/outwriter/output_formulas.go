package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
)

// PrintFormulas outputs the metric definitions to stdout or the configured output file.
func PrintFormulas(model schema.FormulasRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteFormulas(w, model, cfg)
	}, successMessage(cfg.Output))
}

// WriteFormulas writes the metric definitions in the configured output format.
func WriteFormulas(w io.Writer, model schema.FormulasRenderModel, cfg *contract.Config) error {
	if ok, err := writeStructured(w, cfg.Output, model); ok {
		return err
	}

	if cfg.Output == schema.CSVOut {
		header := []string{"key", "name", "direction", "inputs", "formula", "rounding"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, f := range model.Formulas {
				row := []string{string(f.Key), f.Name, string(f.Direction), inputList(f.Inputs, ";"), f.Formula, f.Rounding}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if _, err := fmt.Fprintf(w, "🧮 %s\n%s\n\n", model.Title, model.Description); err != nil {
		return err
	}
	maxWidth := GetMaxTextWidth(cfg, 4)
	for _, f := range model.Formulas {
		_, err := fmt.Fprintf(w, "%s (%s is better)\n  %s\n  = %s\n  inputs: %s, rounding: %s\n\n",
			f.Name, f.Direction,
			contract.TruncateText(f.Purpose, maxWidth),
			f.Formula,
			inputList(f.Inputs, ", "), f.Rounding)
		if err != nil {
			return err
		}
	}
	return nil
}

// inputList joins constraint ids, or returns "-" when there are none.
func inputList(ids []schema.ConstraintID, sep string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return joinOrDash(names, sep)
}
