// Package analysis evaluates tracker runs against ground truth and
// aggregates the resulting skill scores.
//
// Responsibilities: single-simulation analysis (one skill score per skill
// and tracker run), multi-simulation tables, bootstrap summaries across
// scenarios, tracker run selection, loading simulations from disk and the
// text reports printed by the trackeval command.
// Key types: SkillScoreTable, TrackerRun, SimulationInput, MultiAnalysis,
// ScenarioAnalysis.
//
// Tracker runs are scored concurrently, each into its own column, so the
// result never depends on scheduling.
package analysis

import "github.com/banshee-data/trackeval/internal/monitoring"

var logf = monitoring.Scoped("analysis")
