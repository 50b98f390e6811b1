package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ojasvatstyagi/Collabro/internal/project"
	"github.com/ojasvatstyagi/Collabro/internal/search"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
)

const projectColumns = `id, creator_id, team_id, title, description, category,
	level, status, created_at, updated_at`

func scanProject(row rowScanner) (project.Project, error) {
	var (
		p         project.Project
		teamID    sql.NullString
		level     string
		status    string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&p.ID,
		&p.CreatorID,
		&teamID,
		&p.Title,
		&p.Description,
		&p.Category,
		&level,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return project.Project{}, err
	}
	p.TeamID = teamID.String
	p.Level = project.LevelFromLabel(level)
	p.Status = project.StatusFromLabel(status)
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

// PutProject upserts one project and replaces its technology list.
func (s *Store) PutProject(ctx context.Context, p project.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(p.CreatorID) == "" {
		return fmt.Errorf("creator id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put project: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var teamID any
	if strings.TrimSpace(p.TeamID) != "" {
		teamID = p.TeamID
	}
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO projects (id, creator_id, team_id, title, description, category,
		   level, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   team_id = excluded.team_id,
		   title = excluded.title,
		   description = excluded.description,
		   category = excluded.category,
		   level = excluded.level,
		   status = excluded.status,
		   updated_at = excluded.updated_at`,
		p.ID,
		p.CreatorID,
		teamID,
		p.Title,
		p.Description,
		p.Category,
		project.LevelLabel(p.Level),
		project.StatusLabel(p.Status),
		toMillis(p.CreatedAt),
		toMillis(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put project: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_technologies WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("put project technologies: %w", err)
	}
	for position, technology := range p.Technologies {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO project_technologies (project_id, position, technology) VALUES (?, ?, ?)`,
			p.ID,
			position,
			technology,
		); err != nil {
			return fmt.Errorf("put project technologies: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put project: %w", err)
	}
	return nil
}

// GetProject returns one project by ID.
func (s *Store) GetProject(ctx context.Context, projectID string) (project.Project, error) {
	if err := ctx.Err(); err != nil {
		return project.Project{}, err
	}
	if err := s.ready(); err != nil {
		return project.Project{}, err
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return project.Project{}, fmt.Errorf("project id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`,
		projectID,
	)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return project.Project{}, storage.ErrNotFound
		}
		return project.Project{}, fmt.Errorf("get project: %w", err)
	}
	if err := s.loadTechnologies(ctx, []*project.Project{&p}); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

// ListProjectsByCreator returns a creator's projects, newest first.
func (s *Store) ListProjectsByCreator(ctx context.Context, creatorID string) ([]project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return nil, fmt.Errorf("creator id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE creator_id = ?
		 ORDER BY created_at DESC, id DESC`,
		creatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects by creator: %w", err)
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("list projects by creator: %w", err)
	}
	if err := s.loadTechnologiesForSlice(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SearchProjects returns one page of projects matching the compiled filter.
func (s *Store) SearchProjects(ctx context.Context, filter search.ProjectFilter, pageSize int, pageToken string) (storage.ProjectPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.ProjectPage{}, err
	}
	if err := s.ready(); err != nil {
		return storage.ProjectPage{}, err
	}
	if pageSize <= 0 {
		return storage.ProjectPage{}, fmt.Errorf("page size must be greater than zero")
	}

	conditions, args, err := projectFilterSQL(filter)
	if err != nil {
		return storage.ProjectPage{}, err
	}
	pageToken = strings.TrimSpace(pageToken)
	if pageToken != "" {
		conditions = append(conditions, "id > ?")
		args = append(args, pageToken)
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id ASC LIMIT ?`
	args = append(args, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return storage.ProjectPage{}, fmt.Errorf("search projects: %w", err)
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return storage.ProjectPage{}, fmt.Errorf("search projects: %w", err)
	}

	page := storage.ProjectPage{Projects: projects}
	if len(page.Projects) > pageSize {
		page.NextPageToken = page.Projects[pageSize-1].ID
		page.Projects = page.Projects[:pageSize]
	}
	if err := s.loadTechnologiesForSlice(ctx, page.Projects); err != nil {
		return storage.ProjectPage{}, err
	}
	return page, nil
}

func collectProjects(rows *sql.Rows) ([]project.Project, error) {
	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) loadTechnologiesForSlice(ctx context.Context, projects []project.Project) error {
	refs := make([]*project.Project, 0, len(projects))
	for i := range projects {
		refs = append(refs, &projects[i])
	}
	return s.loadTechnologies(ctx, refs)
}

func (s *Store) loadTechnologies(ctx context.Context, projects []*project.Project) error {
	if len(projects) == 0 {
		return nil
	}
	byID := make(map[string]*project.Project, len(projects))
	ids := make([]any, 0, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT project_id, technology FROM project_technologies
		 WHERE project_id IN (`+placeholders(len(ids))+`)
		 ORDER BY project_id, position`,
		ids...,
	)
	if err != nil {
		return fmt.Errorf("load project technologies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID, technology string
		if err := rows.Scan(&projectID, &technology); err != nil {
			return fmt.Errorf("load project technologies: %w", err)
		}
		if p, ok := byID[projectID]; ok {
			p.Technologies = append(p.Technologies, technology)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load project technologies: %w", err)
	}
	return nil
}

func projectFilterSQL(filter search.ProjectFilter) ([]string, []any, error) {
	var (
		conditions []string
		args       []any
	)
	for _, clause := range filter.Clauses {
		switch clause.Kind {
		case search.ProjectClauseTextContains:
			conditions = append(conditions, `(instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0)`)
			needle := strings.ToLower(clause.Value)
			args = append(args, needle, needle)
		case search.ProjectClauseCategoryIs:
			conditions = append(conditions, `lower(category) = ?`)
			args = append(args, strings.ToLower(clause.Value))
		case search.ProjectClauseLevelIs:
			conditions = append(conditions, `level = ?`)
			args = append(args, project.LevelLabel(clause.Level))
		case search.ProjectClauseTechnologyAnyOf:
			conditions = append(conditions, `EXISTS (SELECT 1 FROM project_technologies
				 WHERE project_technologies.project_id = projects.id
				   AND lower(project_technologies.technology) IN (`+placeholders(len(clause.Values))+`))`)
			args = append(args, loweredArgs(clause.Values)...)
		default:
			return nil, nil, fmt.Errorf("unsupported project filter clause: %d", clause.Kind)
		}
	}
	return conditions, args, nil
}
