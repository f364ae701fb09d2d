package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/tradeoff/schema"
)

// Artifact types that lenses filter on.
const (
	diagramArtifact     = "diagram"
	spreadsheetArtifact = "spreadsheet"
)

// lensInfo is the display name and focus areas of a lens.
type lensInfo struct {
	name  string
	focus []string
}

var lenses = map[schema.Lens]lensInfo{
	schema.ExecutiveLens:   {"Executive", []string{"ROI", "Time to Market", "Competitive Advantage", "Revenue Impact"}},
	schema.ProductLens:     {"Product Manager", []string{"User Needs", "Market Fit", "Feature Prioritization", "Stakeholder Alignment"}},
	schema.EngineeringLens: {"Engineering", []string{"Technical Feasibility", "Architecture", "Scalability", "Development Time"}},
	schema.DesignLens:      {"Design Lead", []string{"User Experience", "Design Consistency", "Accessibility", "Brand Alignment"}},
}

// DecisionTimeline returns the recorded decision events in chronological order.
func DecisionTimeline() []schema.DecisionEvent {
	return []schema.DecisionEvent{
		{
			ID:          "1",
			Timestamp:   "Week 1 - Day 3",
			Title:       "Initial User Research Findings",
			Description: "Discovery interviews revealed critical usability issues in the current platform",
			Category:    schema.ResearchEvent,
			Impact: schema.Impact{
				Positive: []string{"Clear user pain points identified", "Stakeholder alignment on problems"},
				Negative: []string{"Scope expansion required", "Additional research needed"},
				Neutral:  []string{"Timeline adjustment required"},
			},
			Artifacts: []schema.Artifact{
				{Name: "User Interview Summary", Type: "document"},
				{Name: "Pain Point Analysis", Type: spreadsheetArtifact},
				{Name: "User Journey Maps", Type: diagramArtifact},
			},
			Stakeholders: []string{"Product Manager", "UX Researcher", "Design Lead"},
			Rationale:    "Early user research was critical to understand the core problems before investing in solutions",
			Alternatives: []schema.Alternative{
				{Option: "Skip research and use existing data", Reason: "Faster timeline", Impact: "Risk of solving wrong problems"},
				{Option: "Extended research phase", Reason: "More comprehensive understanding", Impact: "Delayed project start"},
			},
			KPIChanges: []schema.KPIChange{
				{Metric: "User Understanding", Before: 30, After: 85, Unit: "%"},
				{Metric: "Problem Clarity", Before: 40, After: 90, Unit: "%"},
			},
		},
		{
			ID:          "2",
			Timestamp:   "Week 2 - Day 5",
			Title:       "Design System Selection",
			Description: "Decision to build custom design system vs. using existing framework",
			Category:    schema.TechnicalEvent,
			Impact: schema.Impact{
				Positive: []string{"Complete control over components", "Better brand alignment"},
				Negative: []string{"Initial development overhead", "Maintenance responsibility"},
				Neutral:  []string{"Team skill development required"},
			},
			Artifacts: []schema.Artifact{
				{Name: "Design System Audit", Type: "document"},
				{Name: "Component Analysis", Type: spreadsheetArtifact},
				{Name: "Technical Architecture", Type: diagramArtifact},
			},
			Stakeholders: []string{"Engineering Lead", "Design Lead", "CTO"},
			Rationale:    "Custom design system needed for unique enterprise requirements and scalability",
			Alternatives: []schema.Alternative{
				{Option: "Use Material Design", Reason: "Rapid development", Impact: "Limited customization, generic appearance"},
				{Option: "Use Ant Design", Reason: "Enterprise-focused", Impact: "Asian market aesthetic, limited flexibility"},
			},
			KPIChanges: []schema.KPIChange{
				{Metric: "Development Speed", Before: 80, After: 60, Unit: "%"},
				{Metric: "Design Consistency", Before: 50, After: 95, Unit: "%"},
			},
		},
		{
			ID:          "3",
			Timestamp:   "Week 4 - Day 2",
			Title:       "MVP Feature Prioritization",
			Description: "Difficult decisions about which features to include in the initial release",
			Category:    schema.BusinessEvent,
			Impact: schema.Impact{
				Positive: []string{"Faster time to market", "Focused user feedback"},
				Negative: []string{"Reduced initial functionality", "Competitive gap"},
				Neutral:  []string{"Phased rollout approach"},
			},
			Artifacts: []schema.Artifact{
				{Name: "Feature Prioritization Matrix", Type: spreadsheetArtifact},
				{Name: "MVP Scope Document", Type: "document"},
				{Name: "Stakeholder Alignment Summary", Type: "presentation"},
			},
			Stakeholders: []string{"Product Manager", "CEO", "Sales Lead", "Customer Success"},
			Rationale:    "Balancing speed to market with comprehensive solution delivery",
			Alternatives: []schema.Alternative{
				{Option: "Full feature release", Reason: "Complete solution", Impact: "6 month delay, higher risk"},
				{Option: "Phased release over 3 months", Reason: "Gradual value delivery", Impact: "Complex coordination, user confusion"},
			},
			KPIChanges: []schema.KPIChange{
				{Metric: "Time to Market", Before: 180, After: 90, Unit: "days"},
				{Metric: "Feature Coverage", Before: 100, After: 60, Unit: "%"},
			},
		},
		{
			ID:          "4",
			Timestamp:   "Week 6 - Day 4",
			Title:       "User Testing Results & Iteration",
			Description: "Usability testing revealed critical issues requiring design changes",
			Category:    schema.UserEvent,
			Impact: schema.Impact{
				Positive: []string{"Critical issues identified early", "User validation of approach"},
				Negative: []string{"Design revisions required", "Timeline impact"},
				Neutral:  []string{"Improved user satisfaction"},
			},
			Artifacts: []schema.Artifact{
				{Name: "Usability Test Report", Type: "document"},
				{Name: "Session Recordings", Type: "video"},
				{Name: "Issue Analysis", Type: spreadsheetArtifact},
			},
			Stakeholders: []string{"UX Researcher", "Design Lead", "Product Manager"},
			Rationale:    "User testing is essential for validating design decisions before development",
			Alternatives: []schema.Alternative{
				{Option: "Skip user testing", Reason: "Save time and resources", Impact: "Higher risk of usability issues"},
				{Option: "Extended testing phase", Reason: "More comprehensive validation", Impact: "Additional 2 weeks delay"},
			},
			KPIChanges: []schema.KPIChange{
				{Metric: "Usability Score", Before: 45, After: 78, Unit: "%"},
				{Metric: "User Confidence", Before: 60, After: 85, Unit: "%"},
			},
		},
	}
}

// ViewEvent projects an event through a lens. It returns an error for an unknown lens.
func ViewEvent(event schema.DecisionEvent, lens schema.Lens) (schema.LensView, error) {
	header := schema.EventHeader{
		ID:          event.ID,
		Timestamp:   event.Timestamp,
		Title:       event.Title,
		Description: event.Description,
		Category:    event.Category,
	}

	switch lens {
	case schema.ExecutiveLens:
		return schema.ExecutiveView{
			EventHeader:  header,
			KPIChanges:   slices.Clone(event.KPIChanges),
			Rationale:    event.Rationale,
			Alternatives: slices.Clone(event.Alternatives),
		}, nil
	case schema.ProductLens:
		return schema.ProductView{
			EventHeader:  header,
			Impact:       event.Impact,
			Artifacts:    slices.Clone(event.Artifacts),
			Stakeholders: slices.Clone(event.Stakeholders),
		}, nil
	case schema.EngineeringLens:
		return schema.EngineeringView{
			EventHeader:  header,
			Impact:       event.Impact,
			Diagrams:     filterArtifacts(event.Artifacts, func(a schema.Artifact) bool { return a.Type == diagramArtifact }),
			Alternatives: slices.Clone(event.Alternatives),
		}, nil
	case schema.DesignLens:
		return schema.DesignView{
			EventHeader: header,
			Impact:      event.Impact,
			Artifacts:   filterArtifacts(event.Artifacts, func(a schema.Artifact) bool { return a.Type != spreadsheetArtifact }),
			Rationale:   event.Rationale,
		}, nil
	default:
		return nil, fmt.Errorf("invalid lens '%s'. must be executive, product, engineering, design", lens)
	}
}

// BuildTimeline projects every event through the given lens.
func BuildTimeline(events []schema.DecisionEvent, lens schema.Lens) (schema.TimelineResult, error) {
	info, ok := lenses[lens]
	if !ok {
		return schema.TimelineResult{}, fmt.Errorf("invalid lens '%s'. must be executive, product, engineering, design", lens)
	}
	result := schema.TimelineResult{
		Lens:  lens,
		Name:  info.name,
		Focus: slices.Clone(info.focus),
		Views: make([]schema.LensView, 0, len(events)),
	}
	for _, ev := range events {
		view, err := ViewEvent(ev, lens)
		if err != nil {
			return schema.TimelineResult{}, err
		}
		result.Views = append(result.Views, view)
	}
	return result, nil
}

func filterArtifacts(artifacts []schema.Artifact, keep func(schema.Artifact) bool) []schema.Artifact {
	out := make([]schema.Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
