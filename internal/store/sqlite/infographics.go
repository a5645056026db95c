package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/store"
)

// infographicColumns is the ordered list of columns selected in infographic
// queries. Must match the scan order in scanInfographic.
const infographicColumns = `id, researcher_id, status,
	section_overview, section_methods, section_solutions,
	original_paper_text, researcher_notes,
	reviewed_by, reviewed_at, rejection_reason,
	created_at, updated_at`

// scanInfographic scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Infographic. Tags are not populated here; use GetInfographicTags
// or attachTags.
func scanInfographic(scanner interface{ Scan(dest ...any) error }) (*domain.Infographic, error) {
	var i domain.Infographic

	var (
		status          string
		overviewJSON    string
		methodsJSON     string
		solutionsJSON   string
		reviewedBy      sql.NullString
		reviewedAt      sql.NullString
		rejectionReason string
		createdAt       string
		updatedAt       string
	)

	err := scanner.Scan(
		&i.ID,
		&i.ResearcherID,
		&status,
		&overviewJSON,
		&methodsJSON,
		&solutionsJSON,
		&i.OriginalPaperText,
		&i.ResearcherNotes,
		&reviewedBy,
		&reviewedAt,
		&rejectionReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	i.Status = domain.InfographicStatus(status)
	i.RejectionReason = rejectionReason

	if err := json.Unmarshal([]byte(overviewJSON), &i.Content.Overview); err != nil {
		return nil, fmt.Errorf("unmarshal overview section: %w", err)
	}
	if err := json.Unmarshal([]byte(methodsJSON), &i.Content.Methods); err != nil {
		return nil, fmt.Errorf("unmarshal methods section: %w", err)
	}
	if err := json.Unmarshal([]byte(solutionsJSON), &i.Content.Solutions); err != nil {
		return nil, fmt.Errorf("unmarshal solutions section: %w", err)
	}

	if reviewedBy.Valid {
		i.ReviewedBy = reviewedBy.String
	}
	i.ReviewedAt, err = parseNullableTime(reviewedAt)
	if err != nil {
		return nil, err
	}

	i.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	i.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &i, nil
}

// marshalSections serializes the three content sections to JSON column values.
func marshalSections(c domain.InfographicContent) (overview, methods, solutions string, err error) {
	o, err := json.Marshal(c.Overview)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal overview section: %w", err)
	}
	m, err := json.Marshal(c.Methods)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal methods section: %w", err)
	}
	s, err := json.Marshal(c.Solutions)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal solutions section: %w", err)
	}
	return string(o), string(m), string(s), nil
}

// CreateInfographic inserts a new infographic and its tag associations in a
// single transaction. Nothing is written if any part fails.
// Returns store.ErrAlreadyExists if the infographic ID already exists.
func (s *Store) CreateInfographic(ctx context.Context, info *domain.Infographic, tagIDs []string) error {
	overview, methods, solutions, err := marshalSections(info.Content)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO infographics (
			id, researcher_id, status,
			section_overview, section_methods, section_solutions,
			original_paper_text, researcher_notes,
			reviewed_by, reviewed_at, rejection_reason,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		info.ID,
		info.ResearcherID,
		string(info.Status),
		overview,
		methods,
		solutions,
		info.OriginalPaperText,
		info.ResearcherNotes,
		nullString(info.ReviewedBy),
		nullTimeString(info.ReviewedAt),
		info.RejectionReason,
		formatTime(info.CreatedAt),
		formatTime(info.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	now := formatTime(time.Now().UTC())
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO infographic_tags (infographic_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			info.ID,
			tagID,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert infographic_tag: %w", err)
		}
	}

	return tx.Commit()
}

// GetInfographic retrieves an infographic by ID with its tags populated.
// Returns store.ErrNotFound if the infographic does not exist.
func (s *Store) GetInfographic(ctx context.Context, id string) (*domain.Infographic, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+infographicColumns+` FROM infographics WHERE id = ?`, id)

	info, err := scanInfographic(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	info.Tags, err = s.GetInfographicTags(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// UpdateInfographic performs a full row update on an existing infographic.
// Tag associations are not modified.
// Returns store.ErrNotFound if the infographic does not exist.
func (s *Store) UpdateInfographic(ctx context.Context, info *domain.Infographic) error {
	overview, methods, solutions, err := marshalSections(info.Content)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE infographics SET
			researcher_id = ?,
			status = ?,
			section_overview = ?,
			section_methods = ?,
			section_solutions = ?,
			original_paper_text = ?,
			researcher_notes = ?,
			reviewed_by = ?,
			reviewed_at = ?,
			rejection_reason = ?,
			created_at = ?,
			updated_at = ?
		WHERE id = ?`,
		info.ResearcherID,
		string(info.Status),
		overview,
		methods,
		solutions,
		info.OriginalPaperText,
		info.ResearcherNotes,
		nullString(info.ReviewedBy),
		nullTimeString(info.ReviewedAt),
		info.RejectionReason,
		formatTime(info.CreatedAt),
		formatTime(info.UpdatedAt),
		info.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListApprovedInfographics returns all approved infographics, newest first.
func (s *Store) ListApprovedInfographics(ctx context.Context) ([]*domain.Infographic, error) {
	return s.listInfographics(ctx,
		`SELECT `+infographicColumns+` FROM infographics
		WHERE status = ? ORDER BY created_at DESC`,
		string(domain.StatusApproved))
}

// ListApprovedInfographicsByTags returns approved infographics carrying at
// least one of the given tags, newest first. Each infographic appears once
// even when it matches several tags.
func (s *Store) ListApprovedInfographicsByTags(ctx context.Context, tagIDs []string) ([]*domain.Infographic, error) {
	if len(tagIDs) == 0 {
		return []*domain.Infographic{}, nil
	}

	placeholders := strings.Repeat("?, ", len(tagIDs)-1) + "?"
	args := make([]any, 0, len(tagIDs)+1)
	args = append(args, string(domain.StatusApproved))
	for _, id := range tagIDs {
		args = append(args, id)
	}

	query := `SELECT DISTINCT ` + prefixColumns("i", infographicColumns) + `
		FROM infographics i
		JOIN infographic_tags it ON it.infographic_id = i.id
		WHERE i.status = ? AND it.tag_id IN (` + placeholders + `)
		ORDER BY i.created_at DESC`

	return s.listInfographics(ctx, query, args...)
}

// ListPendingInfographics returns all pending infographics, newest first.
func (s *Store) ListPendingInfographics(ctx context.Context) ([]*domain.Infographic, error) {
	return s.listInfographics(ctx,
		`SELECT `+infographicColumns+` FROM infographics
		WHERE status = ? ORDER BY created_at DESC`,
		string(domain.StatusPending))
}

// ListInfographicsByResearcher returns all infographics submitted by a
// researcher regardless of status, newest first.
func (s *Store) ListInfographicsByResearcher(ctx context.Context, researcherID string) ([]*domain.Infographic, error) {
	return s.listInfographics(ctx,
		`SELECT `+infographicColumns+` FROM infographics
		WHERE researcher_id = ? ORDER BY created_at DESC`,
		researcherID)
}

// listInfographics runs a query returning infographic rows and attaches tags.
func (s *Store) listInfographics(ctx context.Context, query string, args ...any) ([]*domain.Infographic, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []*domain.Infographic
	for rows.Next() {
		info, err := scanInfographic(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if infos == nil {
		infos = []*domain.Infographic{}
	}

	for _, info := range infos {
		info.Tags, err = s.GetInfographicTags(ctx, info.ID)
		if err != nil {
			return nil, err
		}
	}

	return infos, nil
}

// GetInfographicTags returns the tags associated with an infographic,
// ordered by name.
func (s *Store) GetInfographicTags(ctx context.Context, infographicID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixColumns("t", tagColumns)+`
		FROM tags t
		JOIN infographic_tags it ON it.tag_id = t.id
		WHERE it.infographic_id = ?
		ORDER BY t.name_lower ASC`, infographicID)
	if err != nil {
		return nil, fmt.Errorf("query infographic_tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// prefixColumns qualifies each column in a comma-separated list with a table
// alias, for use in JOIN queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
