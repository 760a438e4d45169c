package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/NikKohlmeier/job-helper/internal/job"
)

// ErrNotFound is returned when a posting with the requested id does not
// exist.
var ErrNotFound = errors.New("job not found")

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	company         TEXT NOT NULL,
	description     TEXT NOT NULL,
	url             TEXT NOT NULL DEFAULT '',
	location        TEXT NOT NULL DEFAULT '',
	remote          INTEGER NOT NULL DEFAULT 0,
	salary_min      INTEGER NOT NULL DEFAULT 0,
	salary_max      INTEGER NOT NULL DEFAULT 0,
	added_at        TIMESTAMP NOT NULL,
	technical_score REAL,
	culture_score   REAL,
	overall_score   REAL,
	passed_filters  INTEGER
);

CREATE TABLE IF NOT EXISTS profile_embeddings (
	hash       TEXT PRIMARY KEY,
	vector     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Store persists job postings and the profile embedding cache in a local
// sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Add saves a new posting.
func (s *Store) Add(ctx context.Context, j *job.Job) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, company, description, url, location, remote, salary_min, salary_max, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, j.Company, j.Description, j.URL, j.Location, j.Remote, j.SalaryMin, j.SalaryMax, j.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// Get retrieves one posting by id.
func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	row := s.db.QueryRowContext(ctx, selectJobs+` WHERE id = ?`, id)

	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select job: %w", err)
	}
	return j, nil
}

// All retrieves every posting, newest first.
func (s *Store) All(ctx context.Context) (*job.Jobs, error) {
	rows, err := s.db.QueryContext(ctx, selectJobs+` ORDER BY added_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select jobs: %w", err)
	}
	defer rows.Close()

	jobs := &job.Jobs{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs.Items = append(jobs.Items, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// Delete removes a posting. Deleting a posting has no effect on the profile.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateScores overwrites the derived score fields of a posting. All four
// columns are written in one statement so a posting is never stored
// partially scored.
func (s *Store) UpdateScores(ctx context.Context, id string, scores *job.Scores) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET technical_score = ?, culture_score = ?, overall_score = ?, passed_filters = ? WHERE id = ?`,
		scores.Technical, scores.Culture, scores.Overall, scores.Passed, id,
	)
	if err != nil {
		return fmt.Errorf("update job scores: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProfileEmbedding returns the cached profile embedding for the given
// summary-text hash, or nil when no cache entry exists.
func (s *Store) ProfileEmbedding(ctx context.Context, hash string) ([]float64, error) {
	var encoded string
	err := s.db.QueryRowContext(ctx,
		`SELECT vector FROM profile_embeddings WHERE hash = ?`, hash,
	).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select profile embedding: %w", err)
	}

	var vector []float64
	if err := json.Unmarshal([]byte(encoded), &vector); err != nil {
		return nil, fmt.Errorf("decode profile embedding: %w", err)
	}
	return vector, nil
}

// SaveProfileEmbedding stores the profile embedding under the summary-text
// hash, replacing stale entries for other hashes. A changed profile document
// therefore always triggers one recomputation.
func (s *Store) SaveProfileEmbedding(ctx context.Context, hash string, vector []float64) error {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encode profile embedding: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_embeddings`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear profile embeddings: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO profile_embeddings (hash, vector, created_at) VALUES (?, ?, ?)`,
		hash, string(encoded), time.Now().UTC(),
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert profile embedding: %w", err)
	}

	return tx.Commit()
}

const selectJobs = `SELECT id, title, company, description, url, location, remote, salary_min, salary_max, added_at,
	technical_score, culture_score, overall_score, passed_filters FROM jobs`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*job.Job, error) {
	var (
		j         job.Job
		technical sql.NullFloat64
		culture   sql.NullFloat64
		overall   sql.NullFloat64
		passed    sql.NullBool
	)

	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Description, &j.URL, &j.Location,
		&j.Remote, &j.SalaryMin, &j.SalaryMax, &j.AddedAt,
		&technical, &culture, &overall, &passed,
	)
	if err != nil {
		return nil, err
	}

	if technical.Valid && culture.Valid && overall.Valid && passed.Valid {
		j.Scores = &job.Scores{
			Technical: technical.Float64,
			Culture:   culture.Float64,
			Overall:   overall.Float64,
			Passed:    passed.Bool,
		}
	}

	return &j, nil
}
