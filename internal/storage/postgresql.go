// Package storage persists the accounts, reward profiles, app catalog and download tasks of the
// reference server. It defines the Storage interface along with a PostgreSQL implementation
// built on the pgx database/sql driver.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"appdownloader/internal/models"
	"appdownloader/internal/pkg/logger"
	"appdownloader/internal/pkg/security"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks appdownloader/internal/storage Storage

// Schema creates the tables used by PostgreSQL. It is idempotent.
const Schema = `
CREATE SCHEMA IF NOT EXISTS content;

CREATE TABLE IF NOT EXISTS content.users (
	id            SERIAL PRIMARY KEY,
	username      VARCHAR(150) NOT NULL UNIQUE,
	email         VARCHAR(254) NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	is_staff      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS content.user_profiles (
	user_id         INTEGER PRIMARY KEY REFERENCES content.users (id) ON DELETE CASCADE,
	points_earned   INTEGER NOT NULL DEFAULT 0 CHECK (points_earned >= 0),
	tasks_completed INTEGER NOT NULL DEFAULT 0 CHECK (tasks_completed >= 0),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS content.android_apps (
	id           SERIAL PRIMARY KEY,
	name         VARCHAR(100) NOT NULL,
	url          TEXT NOT NULL,
	category     VARCHAR(100) NOT NULL,
	sub_category VARCHAR(100) NOT NULL DEFAULT '',
	points       INTEGER NOT NULL CHECK (points >= 0)
);

CREATE TABLE IF NOT EXISTS content.tasks (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES content.users (id) ON DELETE CASCADE,
	app_id     INTEGER NOT NULL REFERENCES content.android_apps (id) ON DELETE CASCADE,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	screenshot TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT tasks_user_app_unique UNIQUE (user_id, app_id)
);
`

const (
	createUserQuery       = `INSERT INTO content.users (username, email, password_hash, is_staff) VALUES ($1, $2, $3, $4) RETURNING id;`
	createProfileQuery    = `INSERT INTO content.user_profiles (user_id) VALUES ($1);`
	checkUserQuery        = `SELECT id, email, password_hash, is_staff FROM content.users WHERE username = $1;`
	getProfileQuery       = `SELECT u.id, u.username, u.email, u.is_staff, p.points_earned, p.tasks_completed FROM content.users u JOIN content.user_profiles p ON p.user_id = u.id WHERE u.id = $1;`
	listAppsQuery         = `SELECT id, name, url, category, sub_category, points FROM content.android_apps ORDER BY id;`
	addAppQuery           = `INSERT INTO content.android_apps (name, url, category, sub_category, points) VALUES ($1, $2, $3, $4, $5) RETURNING id;`
	getAppQuery           = `SELECT id, name, url, category, sub_category, points FROM content.android_apps WHERE id = $1;`
	createTaskQuery       = `INSERT INTO content.tasks (user_id, app_id) VALUES ($1, $2);`
	addPointsQuery        = `UPDATE content.user_profiles SET points_earned = points_earned + $1, updated_at = NOW() WHERE user_id = $2;`
	listTasksQuery        = `SELECT id, app_id, completed, screenshot FROM content.tasks WHERE user_id = $1 ORDER BY id;`
	getTaskQuery          = `SELECT id, app_id, completed, screenshot FROM content.tasks WHERE id = $1 AND user_id = $2;`
	completeTaskQuery     = `UPDATE content.tasks SET completed = TRUE, screenshot = $1 WHERE id = $2 AND user_id = $3;`
	countCompletionQuery  = `UPDATE content.user_profiles SET tasks_completed = tasks_completed + 1, updated_at = NOW() WHERE user_id = $1;`
	getTaskForUpdateQuery = `SELECT id, app_id, completed, screenshot FROM content.tasks WHERE id = $1 AND user_id = $2 FOR UPDATE;`
)

// Storage defines the methods required for data storage operations.
type Storage interface {
	// Close closes the database connection.
	Close()
	// Migrate creates the schema if it does not exist yet.
	Migrate(ctx context.Context) error

	// Account methods.
	CheckUser(ctx context.Context, account *models.Account) (*models.Account, error)
	CreateUser(ctx context.Context, account *models.Account) (*models.Account, error)
	GetProfile(ctx context.Context, userID int) (*models.Profile, error)

	// Catalog methods.
	ListApps(ctx context.Context) ([]models.App, error)
	AddApp(ctx context.Context, req models.AddAppRequest) (*models.App, error)

	// Task methods.
	DownloadApp(ctx context.Context, userID, appID int) (*models.App, *models.Profile, error)
	ListTasks(ctx context.Context, userID int) ([]models.Task, error)
	GetTask(ctx context.Context, userID, taskID int) (*models.Task, error)
	CompleteTask(ctx context.Context, userID, taskID int, screenshot string) (*models.Task, *models.Profile, error)
}

// PostgreSQL implements the Storage interface using a PostgreSQL database.
type PostgreSQL struct {
	db  *sql.DB
	log *logger.Logger
}

// NewPostgreSQL opens a connection with the provided connection string and pings the database.
func NewPostgreSQL(configDBString string, l *logger.Logger) (*PostgreSQL, error) {
	db, err := sql.Open("pgx", configDBString)
	if err != nil {
		l.Sugar().Errorf("Failed to open a database: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	const defaultTimeout = 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		l.Sugar().Errorf("Database ping failed: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	return &PostgreSQL{db: db, log: l}, nil
}

// Close closes the database connection if it is open.
func (postgresql *PostgreSQL) Close() {
	if postgresql.db != nil {
		postgresql.db.Close()
	}
}

// Migrate applies Schema.
func (postgresql *PostgreSQL) Migrate(ctx context.Context) error {
	if _, err := postgresql.db.ExecContext(ctx, Schema); err != nil {
		postgresql.log.Sugar().Errorf("Failed to apply schema: %s", err)
		return err
	}
	return nil
}

// CheckUser looks the account up by username and verifies its password. An unknown username
// yields an account with ID 0 and no error; a wrong password yields the bcrypt mismatch error.
func (postgresql *PostgreSQL) CheckUser(ctx context.Context, account *models.Account) (*models.Account, error) {
	var encryptedPassword string

	err := postgresql.db.QueryRowContext(ctx, checkUserQuery, account.Username).
		Scan(&account.ID, &account.Email, &encryptedPassword, &account.IsStaff)
	if errors.Is(err, sql.ErrNoRows) {
		account.ID = 0
		return account, nil
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query checkUserQuery: %s", err)
		return account, err
	}

	if err = security.CheckPassword(encryptedPassword, account.Password); err != nil {
		return account, err
	}
	return account, nil
}

// CreateUser hashes the password and inserts the account together with an empty profile.
func (postgresql *PostgreSQL) CreateUser(ctx context.Context, account *models.Account) (*models.Account, error) {
	encryptedPassword, err := security.HashPassword(account.Password)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to hash password: %s", err)
		return account, err
	}

	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return account, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, createUserQuery, account.Username, account.Email, encryptedPassword, account.IsStaff).Scan(&account.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createUserQuery: %s", err)
		return account, err
	}
	if _, err = tx.ExecContext(ctx, createProfileQuery, account.ID); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createProfileQuery: %s", err)
		return account, err
	}

	if err = tx.Commit(); err != nil {
		return account, err
	}
	return account, nil
}

// GetProfile returns the reward profile of userID. sql.ErrNoRows reports an unknown user.
func (postgresql *PostgreSQL) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	return postgresql.getProfile(ctx, postgresql.db, userID)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (postgresql *PostgreSQL) getProfile(ctx context.Context, q queryRower, userID int) (*models.Profile, error) {
	profile := &models.Profile{}
	err := q.QueryRowContext(ctx, getProfileQuery, userID).Scan(
		&profile.User.ID, &profile.User.Username, &profile.User.Email, &profile.User.IsStaff,
		&profile.PointsEarned, &profile.TasksCompleted)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getProfileQuery: %s", err)
		return nil, err
	}
	return profile, nil
}

// ListApps returns the whole catalog ordered by ID.
func (postgresql *PostgreSQL) ListApps(ctx context.Context) ([]models.App, error) {
	rows, err := postgresql.db.QueryContext(ctx, listAppsQuery)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query listAppsQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	const initialCatalogCapacity = 10
	apps := make([]models.App, 0, initialCatalogCapacity)
	for rows.Next() {
		var app models.App
		if err := rows.Scan(&app.ID, &app.Name, &app.URL, &app.Category, &app.SubCategory, &app.Points); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan app in ListApps method: %s", err)
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListApps method: %s", err)
		return apps, err
	}
	return apps, nil
}

// AddApp inserts a catalog entry and returns it with its new ID.
func (postgresql *PostgreSQL) AddApp(ctx context.Context, req models.AddAppRequest) (*models.App, error) {
	app := &models.App{
		Name:        req.Name,
		URL:         req.URL,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Points:      req.Points,
	}
	err := postgresql.db.QueryRowContext(ctx, addAppQuery, app.Name, app.URL, app.Category, app.SubCategory, app.Points).Scan(&app.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query addAppQuery: %s", err)
		return nil, err
	}
	return app, nil
}

// DownloadApp records a task for userID on appID and credits the app's points in one
// transaction. sql.ErrNoRows reports an unknown app; a second download of the same app fails
// with a unique violation on tasks_user_app_unique.
func (postgresql *PostgreSQL) DownloadApp(ctx context.Context, userID, appID int) (*models.App, *models.Profile, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	app := &models.App{}
	err = tx.QueryRowContext(ctx, getAppQuery, appID).
		Scan(&app.ID, &app.Name, &app.URL, &app.Category, &app.SubCategory, &app.Points)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getAppQuery: %s", err)
		return nil, nil, err
	}

	if _, err = tx.ExecContext(ctx, createTaskQuery, userID, appID); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createTaskQuery: %s", err)
		return nil, nil, err
	}
	if _, err = tx.ExecContext(ctx, addPointsQuery, app.Points, userID); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query addPointsQuery: %s", err)
		return nil, nil, err
	}

	profile, err := postgresql.getProfile(ctx, tx, userID)
	if err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, err
	}
	return app, profile, nil
}

// ListTasks returns the tasks of userID ordered by ID.
func (postgresql *PostgreSQL) ListTasks(ctx context.Context, userID int) ([]models.Task, error) {
	rows, err := postgresql.db.QueryContext(ctx, listTasksQuery, userID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query listTasksQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.App, &task.Completed, &task.Screenshot); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan task in ListTasks method: %s", err)
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListTasks method: %s", err)
		return tasks, err
	}
	return tasks, nil
}

// GetTask returns taskID if it belongs to userID, sql.ErrNoRows otherwise.
func (postgresql *PostgreSQL) GetTask(ctx context.Context, userID, taskID int) (*models.Task, error) {
	task := &models.Task{}
	err := postgresql.db.QueryRowContext(ctx, getTaskQuery, taskID, userID).
		Scan(&task.ID, &task.App, &task.Completed, &task.Screenshot)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask attaches screenshot to taskID and marks it completed. The profile's completion
// count grows only the first time a task is completed.
func (postgresql *PostgreSQL) CompleteTask(ctx context.Context, userID, taskID int, screenshot string) (*models.Task, *models.Profile, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	task := &models.Task{}
	err = tx.QueryRowContext(ctx, getTaskForUpdateQuery, taskID, userID).
		Scan(&task.ID, &task.App, &task.Completed, &task.Screenshot)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getTaskForUpdateQuery: %s", err)
		return nil, nil, err
	}
	firstCompletion := !task.Completed

	if _, err = tx.ExecContext(ctx, completeTaskQuery, screenshot, taskID, userID); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query completeTaskQuery: %s", err)
		return nil, nil, err
	}
	if firstCompletion {
		if _, err = tx.ExecContext(ctx, countCompletionQuery, userID); err != nil {
			postgresql.log.Sugar().Errorf("Failed to execute a query countCompletionQuery: %s", err)
			return nil, nil, err
		}
	}

	profile, err := postgresql.getProfile(ctx, tx, userID)
	if err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, err
	}
	task.Completed = true
	task.Screenshot = screenshot
	return task, profile, nil
}
