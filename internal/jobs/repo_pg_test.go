package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	job := Job{
		ID:          "job-1",
		Title:       "Backend Engineer",
		Description: "Go services",
		WorkMode:    WorkModeRemote,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO job_descriptions").
		WithArgs(job.ID, job.Title, job.Description, job.WorkMode, job.IsActive, job.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id, title, description, work_mode, is_active, created_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "work_mode", "is_active", "created_at"}))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE job_descriptions").
		WithArgs("Title", "", WorkModeOnsite, false, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Job{ID: "missing", Title: "Title", WorkMode: WorkModeOnsite})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "title", "description", "work_mode", "is_active", "created_at"}).
		AddRow("job-2", "SRE", "", WorkModeHybrid, true, now).
		AddRow("job-1", "Backend Engineer", "Go services", WorkModeRemote, false, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT id, title, description, work_mode, is_active, created_at").
		WillReturnRows(rows)

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("jobs = %d, want 2", len(all))
	}
	if all[0].ID != "job-2" || all[1].Status() != StatusCompleted {
		t.Errorf("unexpected rows: %+v", all)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM job_descriptions").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
