// Package verify compares a predicted set of trajectories against ground
// truth.
//
// Responsibilities: greedy exact segment and false alarm matching into a
// 2×2 contingency table, and the skill scores computed from that table.
// Key types: ContingencyTable, Counts, Matcher, SkillName.
//
// Matching is deterministic for a fixed input order: each true segment takes
// the first still-unmatched predicted segment that agrees with it, so results
// are reproducible against earlier evaluations. No optimal assignment is
// attempted.
package verify
