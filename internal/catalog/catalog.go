// Package catalog keeps the résumé lists in an in-memory SQLite database
// that is rebuilt from the content profile at every start.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/samber/lo"
	_ "modernc.org/sqlite"

	"github.com/akshaysalvi/portfolio/internal/content"
)

// DefaultDSN keeps the database in memory; nothing touches the disk.
const DefaultDSN = "file::memory:"

const schema = `
CREATE TABLE IF NOT EXISTS experience (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	duration TEXT
);
CREATE TABLE IF NOT EXISTS experience_highlights (
	experience_id INTEGER NOT NULL REFERENCES experience(id),
	position INTEGER NOT NULL,
	text TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS skill_groups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	position INTEGER NOT NULL,
	category TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS skills (
	group_id INTEGER NOT NULL REFERENCES skill_groups(id),
	position INTEGER NOT NULL,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS proficiency (
	position INTEGER NOT NULL,
	skill TEXT NOT NULL,
	level INTEGER NOT NULL CHECK (level BETWEEN 0 AND 100)
);
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	impact TEXT
);
CREATE TABLE IF NOT EXISTS project_technologies (
	project_id INTEGER NOT NULL REFERENCES projects(id),
	position INTEGER NOT NULL,
	name TEXT NOT NULL
);`

// Catalog serves section data. Safe for concurrent use.
type Catalog struct {
	db *sql.DB
}

// Open creates the schema in a fresh database.
func Open(ctx context.Context, dsn string) (*Catalog, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// New opens a catalog and seeds it with p.
func New(ctx context.Context, dsn string, p *content.Profile) (*Catalog, error) {
	c, err := Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := c.Seed(ctx, p); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Seed replaces all catalog rows with the lists from p.
func (c *Catalog) Seed(ctx context.Context, p *content.Profile) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"experience_highlights", "experience", "skills", "skill_groups",
		"proficiency", "project_technologies", "projects",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, e := range p.Experience {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO experience (position, title, company, duration) VALUES (?, ?, ?, ?)`,
			i, e.Title, e.Company, e.Duration)
		if err != nil {
			return fmt.Errorf("insert experience %q: %w", e.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for j, h := range e.Highlights {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO experience_highlights (experience_id, position, text) VALUES (?, ?, ?)`,
				id, j, h); err != nil {
				return fmt.Errorf("insert highlight: %w", err)
			}
		}
	}

	for i, g := range p.SkillGroups {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO skill_groups (position, category) VALUES (?, ?)`, i, g.Category)
		if err != nil {
			return fmt.Errorf("insert skill group %q: %w", g.Category, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for j, s := range g.Skills {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO skills (group_id, position, name) VALUES (?, ?, ?)`, id, j, s); err != nil {
				return fmt.Errorf("insert skill: %w", err)
			}
		}
	}

	for i, pr := range p.Proficiency {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO proficiency (position, skill, level) VALUES (?, ?, ?)`,
			i, pr.Skill, pr.Level); err != nil {
			return fmt.Errorf("insert proficiency %q: %w", pr.Skill, err)
		}
	}

	for i, pj := range p.Projects {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO projects (position, title, description, impact) VALUES (?, ?, ?, ?)`,
			i, pj.Title, pj.Description, pj.Impact)
		if err != nil {
			return fmt.Errorf("insert project %q: %w", pj.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for j, tech := range pj.Technologies {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO project_technologies (project_id, position, name) VALUES (?, ?, ?)`,
				id, j, tech); err != nil {
				return fmt.Errorf("insert technology: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

type childRow struct {
	parentID int64
	value    string
}

func (c *Catalog) children(ctx context.Context, query string) (map[int64][]string, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []childRow
	for rows.Next() {
		var r childRow
		if err := rows.Scan(&r.parentID, &r.value); err != nil {
			return nil, err
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	grouped := lo.GroupBy(all, func(r childRow) int64 { return r.parentID })
	return lo.MapValues(grouped, func(rs []childRow, _ int64) []string {
		return lo.Map(rs, func(r childRow, _ int) string { return r.value })
	}), nil
}

// Experience returns work history in display order.
func (c *Catalog) Experience(ctx context.Context) ([]content.Experience, error) {
	highlights, err := c.children(ctx,
		`SELECT experience_id, text FROM experience_highlights ORDER BY experience_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query highlights: %w", err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, title, company, COALESCE(duration, '') FROM experience ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query experience: %w", err)
	}
	defer rows.Close()

	var out []content.Experience
	for rows.Next() {
		var id int64
		var e content.Experience
		if err := rows.Scan(&id, &e.Title, &e.Company, &e.Duration); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		e.Highlights = highlights[id]
		out = append(out, e)
	}
	return out, rows.Err()
}

// SkillGroups returns the skills taxonomy in display order.
func (c *Catalog) SkillGroups(ctx context.Context) ([]content.SkillGroup, error) {
	skills, err := c.children(ctx,
		`SELECT group_id, name FROM skills ORDER BY group_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `SELECT id, category FROM skill_groups ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query skill groups: %w", err)
	}
	defer rows.Close()

	var out []content.SkillGroup
	for rows.Next() {
		var id int64
		var g content.SkillGroup
		if err := rows.Scan(&id, &g.Category); err != nil {
			return nil, fmt.Errorf("scan skill group: %w", err)
		}
		g.Skills = skills[id]
		out = append(out, g)
	}
	return out, rows.Err()
}

// Proficiency returns chart rows in the order they were authored.
func (c *Catalog) Proficiency(ctx context.Context) ([]content.Proficiency, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT skill, level FROM proficiency ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query proficiency: %w", err)
	}
	defer rows.Close()

	var out []content.Proficiency
	for rows.Next() {
		var p content.Proficiency
		if err := rows.Scan(&p.Skill, &p.Level); err != nil {
			return nil, fmt.Errorf("scan proficiency: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Projects returns case studies in display order.
func (c *Catalog) Projects(ctx context.Context) ([]content.Project, error) {
	techs, err := c.children(ctx,
		`SELECT project_id, name FROM project_technologies ORDER BY project_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query technologies: %w", err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(impact, '') FROM projects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var out []content.Project
	for rows.Next() {
		var id int64
		var p content.Project
		if err := rows.Scan(&id, &p.Title, &p.Description, &p.Impact); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Technologies = techs[id]
		out = append(out, p)
	}
	return out, rows.Err()
}

// Ping checks the database is reachable.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
