package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/schema"
)

// PrintTimelineResult outputs the decision timeline to stdout or the configured output file.
func PrintTimelineResult(result schema.TimelineResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteTimelineResult(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteTimelineResult writes every event of the timeline through its lens.
func WriteTimelineResult(w io.Writer, result schema.TimelineResult, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(w, cfg.Output, result); ok {
		return err
	}

	if cfg.Output == schema.CSVOut {
		header := []string{"id", "timestamp", "title", "category", "lens", "summary"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, view := range result.Views {
				h := viewHeader(view)
				row := []string{h.ID, h.Timestamp, h.Title, string(h.Category), string(view.Lens()), viewSummary(view)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	for i := range result.Views {
		if err := WriteTimelineStep(w, result, i, cfg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Showed %d events in %v\n", len(result.Views), duration)
	return err
}

// WriteTimelineStep writes the text block of the i-th event, preceded by the
// lens header when i is the first event.
func WriteTimelineStep(w io.Writer, result schema.TimelineResult, i int, cfg *contract.Config) error {
	if i < 0 || i >= len(result.Views) {
		return fmt.Errorf("event index %d out of range [0, %d)", i, len(result.Views))
	}
	if i == 0 {
		if _, err := fmt.Fprintf(w, "🧭 %s lens. Focus: %s\n\n", result.Name, joinOrDash(result.Focus, ", ")); err != nil {
			return err
		}
	}

	view := result.Views[i]
	h := viewHeader(view)
	maxWidth := GetMaxTextWidth(cfg, 4)
	var b strings.Builder
	fmt.Fprintf(&b, "[%d/%d] %s | %s (%s)\n", i+1, len(result.Views), h.Timestamp, h.Title, h.Category)
	fmt.Fprintf(&b, "  %s\n", contract.TruncateText(h.Description, maxWidth))

	switch v := view.(type) {
	case schema.ExecutiveView:
		for _, k := range v.KPIChanges {
			fmt.Fprintf(&b, "  %s: %g → %g %s\n", k.Metric, k.Before, k.After, k.Unit)
		}
		fmt.Fprintf(&b, "  Rationale: %s\n", contract.TruncateText(v.Rationale, maxWidth))
		writeAlternatives(&b, v.Alternatives, maxWidth)
	case schema.ProductView:
		writeImpact(&b, v.Impact)
		fmt.Fprintf(&b, "  Artifacts: %s\n", artifactNames(v.Artifacts))
		fmt.Fprintf(&b, "  Stakeholders: %s\n", joinOrDash(v.Stakeholders, ", "))
	case schema.EngineeringView:
		writeImpact(&b, v.Impact)
		fmt.Fprintf(&b, "  Diagrams: %s\n", artifactNames(v.Diagrams))
		writeAlternatives(&b, v.Alternatives, maxWidth)
	case schema.DesignView:
		writeImpact(&b, v.Impact)
		fmt.Fprintf(&b, "  Artifacts: %s\n", artifactNames(v.Artifacts))
		fmt.Fprintf(&b, "  Rationale: %s\n", contract.TruncateText(v.Rationale, maxWidth))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// viewHeader returns the fields shared by every lens view.
func viewHeader(view schema.LensView) schema.EventHeader {
	switch v := view.(type) {
	case schema.ExecutiveView:
		return v.EventHeader
	case schema.ProductView:
		return v.EventHeader
	case schema.EngineeringView:
		return v.EventHeader
	case schema.DesignView:
		return v.EventHeader
	default:
		return schema.EventHeader{}
	}
}

// viewSummary condenses the lens-specific part of a view to one line.
func viewSummary(view schema.LensView) string {
	switch v := view.(type) {
	case schema.ExecutiveView:
		kpis := make([]string, len(v.KPIChanges))
		for i, k := range v.KPIChanges {
			kpis[i] = fmt.Sprintf("%s %g→%g%s", k.Metric, k.Before, k.After, k.Unit)
		}
		return joinOrDash(kpis, "; ")
	case schema.ProductView:
		return joinOrDash(v.Stakeholders, "; ")
	case schema.EngineeringView:
		return artifactNames(v.Diagrams)
	case schema.DesignView:
		return v.Rationale
	default:
		return ""
	}
}

func writeImpact(b *strings.Builder, impact schema.Impact) {
	fmt.Fprintf(b, "  + %s\n", joinOrDash(impact.Positive, "; "))
	fmt.Fprintf(b, "  - %s\n", joinOrDash(impact.Negative, "; "))
	fmt.Fprintf(b, "  ~ %s\n", joinOrDash(impact.Neutral, "; "))
}

func writeAlternatives(b *strings.Builder, alternatives []schema.Alternative, maxWidth int) {
	for _, a := range alternatives {
		line := fmt.Sprintf("%s (%s): %s", a.Option, a.Reason, a.Impact)
		fmt.Fprintf(b, "  Rejected: %s\n", contract.TruncateText(line, maxWidth))
	}
}

func artifactNames(artifacts []schema.Artifact) string {
	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
	}
	return joinOrDash(names, ", ")
}
