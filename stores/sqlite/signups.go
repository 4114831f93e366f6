package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"stashspace/core"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type signupStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS business_signups (
	id              TEXT PRIMARY KEY,
	business_name   TEXT NOT NULL,
	email           TEXT NOT NULL,
	phone           TEXT NOT NULL DEFAULT '',
	website         TEXT NOT NULL DEFAULT '',
	order_volume    TEXT NOT NULL DEFAULT '',
	notes           TEXT NOT NULL DEFAULT '',
	user_type       TEXT NOT NULL,
	created_unix_ns INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS provider_signups (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	email           TEXT NOT NULL,
	phone           TEXT NOT NULL,
	address         TEXT NOT NULL,
	space_size      REAL NOT NULL,
	space_type      TEXT NOT NULL,
	availability    TEXT NOT NULL,
	user_type       TEXT NOT NULL,
	created_unix_ns INTEGER NOT NULL
);`

// NewSignupStore opens (and if needed creates) the signup database at
// dataSourceName.
func NewSignupStore(dataSourceName string) (core.SignupStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create signup tables: %w", err)
	}
	return &signupStore{db}, nil
}

func (s *signupStore) CreateBusiness(ctx context.Context, signup *core.BusinessSignup) (string, error) {
	if err := core.Prepare(signup, uuid.NewString(), time.Now().UTC()); err != nil {
		return "", err
	}
	log := logrus.WithFields(logrus.Fields{
		"signup_id": signup.ID,
		"user_type": signup.UserType,
	})

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO business_signups
			(id, business_name, email, phone, website, order_volume, notes, user_type, created_unix_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		signup.ID, signup.BusinessName, signup.Email, signup.Phone,
		signup.Website, signup.OrderVolume, signup.Notes,
		signup.UserType, signup.Timestamp.UnixNano())
	if err != nil {
		log.WithField("error", err).Error("Failed to create business signup")
		return "", err
	}
	log.Info("Business signup created successfully")
	return signup.ID, nil
}

func (s *signupStore) CreateProvider(ctx context.Context, signup *core.ProviderSignup) (string, error) {
	if err := core.Prepare(signup, uuid.NewString(), time.Now().UTC()); err != nil {
		return "", err
	}
	log := logrus.WithFields(logrus.Fields{
		"signup_id": signup.ID,
		"user_type": signup.UserType,
	})

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO provider_signups
			(id, name, email, phone, address, space_size, space_type, availability, user_type, created_unix_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		signup.ID, signup.Name, signup.Email, signup.Phone, signup.Address,
		*signup.SpaceSize, signup.SpaceType, signup.Availability,
		signup.UserType, signup.Timestamp.UnixNano())
	if err != nil {
		log.WithField("error", err).Error("Failed to create provider signup")
		return "", err
	}
	log.Info("Provider signup created successfully")
	return signup.ID, nil
}

func (s *signupStore) ListBusinesses(ctx context.Context) ([]core.BusinessSignup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, business_name, email, phone, website, order_volume, notes, user_type, created_unix_ns
		 FROM business_signups ORDER BY created_unix_ns DESC, id DESC`)
	if err != nil {
		logrus.WithField("error", err).Error("Failed to list business signups")
		return nil, err
	}
	defer rows.Close()

	out := []core.BusinessSignup{}
	for rows.Next() {
		var record core.BusinessSignup
		var createdNs int64
		if err := rows.Scan(&record.ID, &record.BusinessName, &record.Email,
			&record.Phone, &record.Website, &record.OrderVolume, &record.Notes,
			&record.UserType, &createdNs); err != nil {
			return nil, err
		}
		record.Timestamp = time.Unix(0, createdNs).UTC()
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *signupStore) ListProviders(ctx context.Context) ([]core.ProviderSignup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone, address, space_size, space_type, availability, user_type, created_unix_ns
		 FROM provider_signups ORDER BY created_unix_ns DESC, id DESC`)
	if err != nil {
		logrus.WithField("error", err).Error("Failed to list provider signups")
		return nil, err
	}
	defer rows.Close()

	out := []core.ProviderSignup{}
	for rows.Next() {
		var record core.ProviderSignup
		var size float64
		var createdNs int64
		if err := rows.Scan(&record.ID, &record.Name, &record.Email,
			&record.Phone, &record.Address, &size, &record.SpaceType,
			&record.Availability, &record.UserType, &createdNs); err != nil {
			return nil, err
		}
		record.SpaceSize = &size
		record.Timestamp = time.Unix(0, createdNs).UTC()
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *signupStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *signupStore) Close(ctx context.Context) error {
	return s.db.Close()
}
