package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/trackeval/internal/analysis"
	"github.com/banshee-data/trackeval/internal/bootstrap"
	"github.com/banshee-data/trackeval/internal/timeutil"
	"github.com/banshee-data/trackeval/internal/verify"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("not found")

// EvalRun is one invocation of an evaluation command.
type EvalRun struct {
	RunID      string          `json:"run_id"`
	Name       string          `json:"name"`
	Command    string          `json:"command"`
	ParamsJSON json.RawMessage `json:"params_json,omitempty"`
	CreatedAt  int64           `json:"created_at"`
}

// SkillScore is the score of one tracker run on one simulation.
type SkillScore struct {
	RunID      string  `json:"run_id"`
	Scenario   string  `json:"scenario"`
	Simulation string  `json:"simulation"`
	Skill      string  `json:"skill"`
	Tracker    string  `json:"tracker"`
	Value      float64 `json:"value"`
}

// BootstrapRecord is the bootstrap summary of a tracker run over a
// scenario's simulations.
type BootstrapRecord struct {
	RunID    string  `json:"run_id"`
	Scenario string  `json:"scenario"`
	Skill    string  `json:"skill"`
	Tracker  string  `json:"tracker"`
	Lower    float64 `json:"lower"`
	Mean     float64 `json:"mean"`
	Upper    float64 `json:"upper"`
	Reps     int     `json:"reps"`
	Alpha    float64 `json:"alpha"`
}

// ScoreStore provides persistence for evaluation results.
type ScoreStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewScoreStore creates a new ScoreStore.
func NewScoreStore(db *sql.DB) *ScoreStore {
	return NewScoreStoreWithClock(db, timeutil.RealClock{})
}

// NewScoreStoreWithClock creates a ScoreStore that stamps runs from clock.
func NewScoreStoreWithClock(db *sql.DB, clock timeutil.Clock) *ScoreStore {
	return &ScoreStore{db: db, clock: clock}
}

// CreateRun records a new evaluation run and returns its generated ID.
// params, when non-nil, is stored as JSON.
func (s *ScoreStore) CreateRun(name, command string, params any) (string, error) {
	run := &EvalRun{
		RunID:     uuid.New().String(),
		Name:      name,
		Command:   command,
		CreatedAt: s.clock.Now().UnixNano(),
	}

	var paramsStr interface{}
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return "", fmt.Errorf("encode run params: %w", err)
		}
		paramsStr = string(data)
	}

	err := retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO eval_runs (run_id, name, command, params_json, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			run.RunID, run.Name, run.Command, paramsStr, run.CreatedAt,
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return run.RunID, nil
}

// InsertScores stores every cell of table for one simulation in a single
// transaction.
func (s *ScoreStore) InsertScores(runID, scenario, simulation string, table *analysis.SkillScoreTable) error {
	return retryOnBusy(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		stmt, err := tx.Prepare(`
			INSERT INTO skill_scores (run_id, scenario, simulation, skill, tracker, value)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, skill := range table.Skills {
			for _, tracker := range table.Trackers {
				v, err := table.Get(skill, tracker)
				if err != nil {
					return err
				}
				if _, err := stmt.Exec(runID, scenario, simulation, string(skill), tracker, v); err != nil {
					return fmt.Errorf("insert score %s/%s: %w", skill, tracker, err)
				}
			}
		}
		return tx.Commit()
	})
}

// InsertBootstrap stores a bootstrap summary.
func (s *ScoreStore) InsertBootstrap(runID, scenario string, skill verify.SkillName, tracker string,
	res bootstrap.Result, reps int, alpha float64) error {
	return retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO bootstrap_results (run_id, scenario, skill, tracker, lower, mean, upper, reps, alpha)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, scenario, string(skill), tracker, res.Lower, res.Mean, res.Upper, reps, alpha,
		)
		return err
	})
}

// GetRun returns a single run by ID.
func (s *ScoreStore) GetRun(runID string) (*EvalRun, error) {
	row := s.db.QueryRow(`
		SELECT run_id, name, command, params_json, created_at
		FROM eval_runs
		WHERE run_id = ?`, runID)

	var r EvalRun
	var paramsStr sql.NullString
	if err := row.Scan(&r.RunID, &r.Name, &r.Command, &paramsStr, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if paramsStr.Valid {
		r.ParamsJSON = json.RawMessage(paramsStr.String)
	}
	return &r, nil
}

// ListRuns returns all runs, newest first.
func (s *ScoreStore) ListRuns() ([]*EvalRun, error) {
	rows, err := s.db.Query(`
		SELECT run_id, name, command, params_json, created_at
		FROM eval_runs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*EvalRun
	for rows.Next() {
		var r EvalRun
		var paramsStr sql.NullString
		if err := rows.Scan(&r.RunID, &r.Name, &r.Command, &paramsStr, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if paramsStr.Valid {
			r.ParamsJSON = json.RawMessage(paramsStr.String)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// ListScores returns the scores of a run in insertion order.
func (s *ScoreStore) ListScores(runID string) ([]*SkillScore, error) {
	rows, err := s.db.Query(`
		SELECT run_id, scenario, simulation, skill, tracker, value
		FROM skill_scores
		WHERE run_id = ?
		ORDER BY score_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var scores []*SkillScore
	for rows.Next() {
		var sc SkillScore
		if err := rows.Scan(&sc.RunID, &sc.Scenario, &sc.Simulation, &sc.Skill, &sc.Tracker, &sc.Value); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		scores = append(scores, &sc)
	}
	return scores, rows.Err()
}

// ListBootstrap returns the bootstrap summaries of a run in insertion order.
func (s *ScoreStore) ListBootstrap(runID string) ([]*BootstrapRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, scenario, skill, tracker, lower, mean, upper, reps, alpha
		FROM bootstrap_results
		WHERE run_id = ?
		ORDER BY result_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query bootstrap results: %w", err)
	}
	defer rows.Close()

	var out []*BootstrapRecord
	for rows.Next() {
		var b BootstrapRecord
		if err := rows.Scan(&b.RunID, &b.Scenario, &b.Skill, &b.Tracker,
			&b.Lower, &b.Mean, &b.Upper, &b.Reps, &b.Alpha); err != nil {
			return nil, fmt.Errorf("scan bootstrap row: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// DeleteRun removes a run together with its scores and summaries.
func (s *ScoreStore) DeleteRun(runID string) error {
	return retryOnBusy(func() error {
		result, err := s.db.Exec(`DELETE FROM eval_runs WHERE run_id = ?`, runID)
		if err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil
	})
}
