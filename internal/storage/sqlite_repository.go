package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteTimeLayout = time.RFC3339Nano
	sqliteDateLayout = "2006-01-02"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, in User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, display_name, department, created_at)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.DisplayName, in.Department, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, display_name, department, created_at FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		var u User
		var created string
		if err := rows.Scan(&u.ID, &u.DisplayName, &u.Department, &created); err != nil {
			return nil, err
		}
		createdAt, err := parseRequiredTime(created)
		if err != nil {
			return nil, err
		}
		u.CreatedAt = createdAt
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, in Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, created_at)
		VALUES (?, ?, ?)`,
		in.ID, in.Title, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, created_at FROM projects ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		var p Project
		var created string
		if err := rows.Scan(&p.ID, &p.Title, &created); err != nil {
			return nil, err
		}
		createdAt, err := parseRequiredTime(created)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = createdAt
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTemplate(ctx context.Context, in Template) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (id, title, description, frequency, day_of_week, days_of_week, day_of_month,
			month_of_year, active, finish_period, finish_at, signoff_approver, signoff_at, assignees, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.Frequency, nullInt(in.DayOfWeek), joinInts(in.DaysOfWeek),
		nullInt(in.DayOfMonth), nullInt(in.MonthOfYear), boolInt(in.Active), in.FinishPeriod, in.FinishAt,
		in.SignOffApprover, in.SignOffAt, joinStrings(in.AssigneeIDs), mustTime(in.CreatedAt),
	)
	return err
}

const templateColumns = `id, title, description, frequency, day_of_week, days_of_week, day_of_month,
	month_of_year, active, finish_period, finish_at, signoff_approver, signoff_at, assignees, created_at`

func (r *SQLiteRepository) GetTemplate(ctx context.Context, id string) (Template, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	tmpl, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	return tmpl, nil
}

func (r *SQLiteRepository) UpdateTemplate(ctx context.Context, in Template) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE templates
		SET title = ?, description = ?, frequency = ?, day_of_week = ?, days_of_week = ?, day_of_month = ?,
			month_of_year = ?, active = ?, finish_period = ?, finish_at = ?, signoff_approver = ?, signoff_at = ?, assignees = ?
		WHERE id = ?`,
		in.Title, in.Description, in.Frequency, nullInt(in.DayOfWeek), joinInts(in.DaysOfWeek),
		nullInt(in.DayOfMonth), nullInt(in.MonthOfYear), boolInt(in.Active), in.FinishPeriod, in.FinishAt,
		in.SignOffApprover, in.SignOffAt, joinStrings(in.AssigneeIDs), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTemplates(ctx context.Context, filter TemplateListFilter) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Active != nil {
		clauses = append(clauses, "active = ?")
		args = append(args, boolInt(*filter.Active))
	}
	if filter.AssigneeID != "" {
		clauses = append(clauses, "(',' || assignees || ',') LIKE ?")
		args = append(args, "%,"+filter.AssigneeID+",%")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Template, 0)
	for rows.Next() {
		tmpl, scanErr := scanTemplate(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, tmpl)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpsertOccurrence(ctx context.Context, in Occurrence) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO occurrences (template_id, occurred_on, status, comment, acted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (template_id, occurred_on)
		DO UPDATE SET status = excluded.status, comment = excluded.comment, acted_at = excluded.acted_at`,
		in.TemplateID, mustDate(in.Date), in.Status, in.Comment, nullTime(in.ActedAt),
	)
	return err
}

func (r *SQLiteRepository) GetOccurrence(ctx context.Context, templateID string, date time.Time) (Occurrence, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT template_id, occurred_on, status, comment, acted_at
		FROM occurrences WHERE template_id = ? AND occurred_on = ?`,
		templateID, mustDate(date))
	occ, err := scanOccurrence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Occurrence{}, ErrNotFound
		}
		return Occurrence{}, err
	}
	return occ, nil
}

func (r *SQLiteRepository) ListOccurrences(ctx context.Context, filter OccurrenceListFilter) ([]Occurrence, error) {
	query := `SELECT template_id, occurred_on, status, comment, acted_at FROM occurrences`
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 6)
	if filter.TemplateID != "" {
		clauses = append(clauses, "template_id = ?")
		args = append(args, filter.TemplateID)
	}
	if filter.On != nil {
		clauses = append(clauses, "occurred_on = ?")
		args = append(args, mustDate(*filter.On))
	}
	if filter.Before != nil {
		clauses = append(clauses, "occurred_on < ?")
		args = append(args, mustDate(*filter.Before))
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY occurred_on ASC, template_id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Occurrence, 0)
	for rows.Next() {
		occ, scanErr := scanOccurrence(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, occ)
	}
	return out, rows.Err()
}

const taskColumns = `id, project_id, title, description, kind, owner_id, assignees,
	start_date, due_date, completed_at, archived, created_at`

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, title, description, kind, owner_id, assignees,
			start_date, due_date, completed_at, archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, nullString(in.ProjectID), in.Title, in.Description, in.Kind, in.OwnerID, joinStrings(in.AssigneeIDs),
		nullDate(in.StartDate), nullDate(in.DueDate), nullTime(in.CompletedAt), boolInt(in.Archived), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET project_id = ?, title = ?, description = ?, kind = ?, owner_id = ?, assignees = ?,
			start_date = ?, due_date = ?, completed_at = ?, archived = ?
		WHERE id = ?`,
		nullString(in.ProjectID), in.Title, in.Description, in.Kind, in.OwnerID, joinStrings(in.AssigneeIDs),
		nullDate(in.StartDate), nullDate(in.DueDate), nullTime(in.CompletedAt), boolInt(in.Archived), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 6)
	if filter.ProjectID != "" {
		clauses = append(clauses, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.OwnerID != "" {
		clauses = append(clauses, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.Archived != nil {
		clauses = append(clauses, "archived = ?")
		args = append(args, boolInt(*filter.Archived))
	}
	if filter.ProjectLinked != nil {
		if *filter.ProjectLinked {
			clauses = append(clauses, "project_id IS NOT NULL")
		} else {
			clauses = append(clauses, "project_id IS NULL")
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func nullDate(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.Format(sqliteDateLayout)
}

func mustDate(v time.Time) string {
	return v.Format(sqliteDateLayout)
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func parseNullableDate(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteDateLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredDate(v string) (time.Time, error) {
	return time.Parse(sqliteDateLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func joinInts(vals []int) string {
	if len(vals) == 0 {
		return ""
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("storage: malformed int list %q: %w", raw, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func joinStrings(vals []string) string {
	return strings.Join(vals, ",")
}

func splitStrings(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func applyPagination(args *[]any, limit, offset int) string {
	clause := ""
	if limit > 0 {
		clause += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		clause += " OFFSET ?"
		*args = append(*args, offset)
	}
	return clause
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(s scanner) (Template, error) {
	var out Template
	var dayOfWeek, dayOfMonth, monthOfYear sql.NullInt64
	var daysOfWeek, assignees, created string
	var active int
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.Frequency, &dayOfWeek, &daysOfWeek,
		&dayOfMonth, &monthOfYear, &active, &out.FinishPeriod, &out.FinishAt,
		&out.SignOffApprover, &out.SignOffAt, &assignees, &created); err != nil {
		return Template{}, err
	}
	days, err := splitInts(daysOfWeek)
	if err != nil {
		return Template{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Template{}, err
	}
	out.DayOfWeek = intFromNull(dayOfWeek)
	out.DaysOfWeek = days
	out.DayOfMonth = intFromNull(dayOfMonth)
	out.MonthOfYear = intFromNull(monthOfYear)
	out.Active = active == 1
	out.AssigneeIDs = splitStrings(assignees)
	out.CreatedAt = createdAt
	return out, nil
}

func scanOccurrence(s scanner) (Occurrence, error) {
	var out Occurrence
	var date string
	var acted sql.NullString
	if err := s.Scan(&out.TemplateID, &date, &out.Status, &out.Comment, &acted); err != nil {
		return Occurrence{}, err
	}
	occurredOn, err := parseRequiredDate(date)
	if err != nil {
		return Occurrence{}, err
	}
	actedAt, err := parseNullableTime(acted)
	if err != nil {
		return Occurrence{}, err
	}
	out.Date = occurredOn
	out.ActedAt = actedAt
	return out, nil
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var project, start, due, completed sql.NullString
	var assignees, created string
	var archived int
	if err := s.Scan(&out.ID, &project, &out.Title, &out.Description, &out.Kind, &out.OwnerID, &assignees,
		&start, &due, &completed, &archived, &created); err != nil {
		return Task{}, err
	}
	startDate, err := parseNullableDate(start)
	if err != nil {
		return Task{}, err
	}
	dueDate, err := parseNullableDate(due)
	if err != nil {
		return Task{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	if project.Valid {
		out.ProjectID = project.String
	}
	out.AssigneeIDs = splitStrings(assignees)
	out.StartDate = startDate
	out.DueDate = dueDate
	out.CompletedAt = completedAt
	out.Archived = archived == 1
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
