package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store serves the catalog tables from an in-memory SQLite database. The
// database lives as long as the Store; nothing is written to disk.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	difficulty TEXT NOT NULL,
	description TEXT NOT NULL,
	duration TEXT NOT NULL,
	skills TEXT NOT NULL,
	tags TEXT NOT NULL,
	icon TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS learning_paths (
	id INTEGER PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	duration TEXT NOT NULL,
	difficulty TEXT NOT NULL,
	project_ids TEXT NOT NULL,
	milestones TEXT NOT NULL,
	skills TEXT NOT NULL,
	icon TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS plans (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	monthly_price INTEGER NOT NULL,
	features TEXT NOT NULL,
	call_to_action TEXT NOT NULL,
	highlighted INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS features (
	position INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL
);`

// OpenStore creates the in-memory database and its tables.
func OpenStore(ctx context.Context) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create catalog tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed replaces the table contents with c.
func (s *Store) Seed(ctx context.Context, c *Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"projects", "learning_paths", "plans", "features"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, p := range c.Projects {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO projects (id, position, title, difficulty, description, duration, skills, tags, icon) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.ID, i, p.Title, p.Difficulty, p.Description, p.Duration, mustJSON(p.Skills), mustJSON(p.Tags), p.Icon,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project %d: %w", p.ID, err)
		}
	}

	for i, lp := range c.LearningPaths {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO learning_paths (id, position, title, description, duration, difficulty, project_ids, milestones, skills, icon) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			lp.ID, i, lp.Title, lp.Description, lp.Duration, lp.Difficulty, mustJSON(lp.ProjectIDs), mustJSON(lp.Milestones), mustJSON(lp.Skills), lp.Icon,
		)
		if err != nil {
			return fmt.Errorf("failed to insert learning path %d: %w", lp.ID, err)
		}
	}

	for i, p := range c.Plans {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO plans (position, name, monthly_price, features, call_to_action, highlighted) VALUES (?, ?, ?, ?, ?, ?)",
			i, p.Name, p.MonthlyPrice, mustJSON(p.Features), p.CallToAction, p.Highlighted,
		)
		if err != nil {
			return fmt.Errorf("failed to insert plan %q: %w", p.Name, err)
		}
	}

	for i, f := range c.Features {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO features (position, title, description) VALUES (?, ?, ?)",
			i, f.Title, f.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert feature %q: %w", f.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Load reads every table back in catalog order.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	c := &Catalog{}
	var err error

	if c.Projects, err = s.projects(ctx); err != nil {
		return nil, err
	}
	if c.LearningPaths, err = s.learningPaths(ctx); err != nil {
		return nil, err
	}
	if c.Plans, err = s.plans(ctx); err != nil {
		return nil, err
	}
	if c.Features, err = s.features(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) projects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, difficulty, description, duration, skills, tags, icon FROM projects ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		var p Project
		var skills, tags string
		if err := rows.Scan(&p.ID, &p.Title, &p.Difficulty, &p.Description, &p.Duration, &skills, &tags, &p.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills of project %d: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of project %d: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) learningPaths(ctx context.Context) ([]LearningPath, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description, duration, difficulty, project_ids, milestones, skills, icon FROM learning_paths ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to load learning paths: %w", err)
	}
	defer rows.Close()

	out := []LearningPath{}
	for rows.Next() {
		var lp LearningPath
		var ids, milestones, skills string
		if err := rows.Scan(&lp.ID, &lp.Title, &lp.Description, &lp.Duration, &lp.Difficulty, &ids, &milestones, &skills, &lp.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan learning path: %w", err)
		}
		for _, field := range []struct {
			raw string
			dst any
		}{{ids, &lp.ProjectIDs}, {milestones, &lp.Milestones}, {skills, &lp.Skills}} {
			if err := json.Unmarshal([]byte(field.raw), field.dst); err != nil {
				return nil, fmt.Errorf("failed to decode learning path %d: %w", lp.ID, err)
			}
		}
		out = append(out, lp)
	}
	return out, rows.Err()
}

func (s *Store) plans(ctx context.Context) ([]Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, monthly_price, features, call_to_action, highlighted FROM plans ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	defer rows.Close()

	out := []Plan{}
	for rows.Next() {
		var p Plan
		var feats string
		if err := rows.Scan(&p.Name, &p.MonthlyPrice, &feats, &p.CallToAction, &p.Highlighted); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(feats), &p.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features of plan %q: %w", p.Name, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) features(ctx context.Context) ([]Feature, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title, description FROM features ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to load features: %w", err)
	}
	defer rows.Close()

	out := []Feature{}
	for rows.Next() {
		var f Feature
		if err := rows.Scan(&f.Title, &f.Description); err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// mustJSON encodes string and int slices, which cannot fail to marshal.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("catalog: marshal %T: %v", v, err))
	}
	return string(b)
}
