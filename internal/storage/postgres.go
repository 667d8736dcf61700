package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/acs/internal/config"
	"github.com/your-org/acs/internal/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runMigrations(cfg); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// --- Users ---

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, role, card_number, photo_path) VALUES ($1, $2, $3, $4)
		 RETURNING id, registration_date`,
		u.Name, u.Role, u.CardNumber, u.PhotoPath,
	).Scan(&u.ID, &u.RegistrationDate)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCard
		}
		return fmt.Errorf("create user: %w", err)
	}

	if partition := models.PartitionForRole(u.Role); partition != "" {
		_, err = tx.Exec(ctx,
			`INSERT INTO photo_partitions (partition, user_id, photo_path) VALUES ($1, $2, $3)`,
			partition, u.ID, u.PhotoPath)
		if err != nil {
			return fmt.Errorf("register partition photo: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, role, card_number, photo_path, registration_date FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Role, &u.CardNumber, &u.PhotoPath, &u.RegistrationDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUserByCard(ctx context.Context, cardNumber string) (*models.User, error) {
	u := &models.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, role, card_number, photo_path, registration_date FROM users WHERE card_number = $1`,
		cardNumber,
	).Scan(&u.ID, &u.Name, &u.Role, &u.CardNumber, &u.PhotoPath, &u.RegistrationDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by card: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, role, card_number, photo_path, registration_date FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.CardNumber, &u.PhotoPath, &u.RegistrationDate); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// --- Access events ---

func (s *PostgresStore) AppendEvent(ctx context.Context, ev *models.AccessEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO access_events (user_id, method, result, timestamp, device_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		ev.UserID, ev.Method, ev.Result, ev.Timestamp, ev.DeviceID,
	).Scan(&ev.ID)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

const eventSelect = `SELECT e.id, e.user_id, u.name, u.card_number, e.method, e.result, e.timestamp, e.device_id
	 FROM access_events e LEFT JOIN users u ON u.id = e.user_id`

func (s *PostgresStore) RecentEvents(ctx context.Context, limit int) ([]models.AccessEvent, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.pool.Query(ctx,
		eventSelect+` ORDER BY e.timestamp DESC, e.id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *PostgresStore) QueryEvents(ctx context.Context, f QueryFilter) ([]models.AccessEvent, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	var conds []string
	var args []interface{}
	argIdx := 1

	if f.From != nil {
		conds = append(conds, fmt.Sprintf("e.timestamp >= $%d", argIdx))
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		conds = append(conds, fmt.Sprintf("e.timestamp <= $%d", argIdx))
		args = append(args, *f.To)
		argIdx++
	}

	query := eventSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY e.timestamp DESC, e.id DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]models.AccessEvent, error) {
	var events []models.AccessEvent
	for rows.Next() {
		var ev models.AccessEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.UserName, &ev.CardNumber,
			&ev.Method, &ev.Result, &ev.Timestamp, &ev.DeviceID); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// --- Enrollments ---

func (s *PostgresStore) AddEnrollments(ctx context.Context, recs []models.EnrollmentRecord) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add enrollments: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range recs {
		err := tx.QueryRow(ctx,
			`INSERT INTO enrollments (user_id, user_name, face_template, photo_key, enrolled_at)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			recs[i].UserID, recs[i].UserName, recs[i].FaceTemplate, recs[i].PhotoKey, recs[i].EnrolledAt,
		).Scan(&recs[i].ID)
		if err != nil {
			return fmt.Errorf("add enrollment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit add enrollments: %w", err)
	}
	return nil
}

func (s *PostgresStore) EnrollmentsByUser(ctx context.Context, userID int64) ([]models.EnrollmentRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, user_name, face_template, photo_key, enrolled_at
		 FROM enrollments WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var recs []models.EnrollmentRecord
	for rows.Next() {
		var r models.EnrollmentRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.UserName, &r.FaceTemplate, &r.PhotoKey, &r.EnrolledAt); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, nil
}
