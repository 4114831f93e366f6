package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"stashspace/core"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

const (
	businessDir = "businesses"
	providerDir = "providers"
)

type signupStore struct {
	basePath string // Directory where signup records are stored.
}

// NewSignupStore persists each signup as a JSON file under basePath, one
// subdirectory per record kind.
func NewSignupStore(basePath string) (core.SignupStore, error) {
	for _, dir := range []string{businessDir, providerDir} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0755); err != nil {
			return nil, fmt.Errorf("create signup directory: %w", err)
		}
	}
	return &signupStore{basePath: basePath}, nil
}

func (s *signupStore) CreateBusiness(ctx context.Context, signup *core.BusinessSignup) (string, error) {
	if err := core.Prepare(signup, ulid.Make().String(), time.Now().UTC()); err != nil {
		return "", err
	}
	return signup.ID, s.write(businessDir, signup.ID, signup)
}

func (s *signupStore) CreateProvider(ctx context.Context, signup *core.ProviderSignup) (string, error) {
	if err := core.Prepare(signup, ulid.Make().String(), time.Now().UTC()); err != nil {
		return "", err
	}
	return signup.ID, s.write(providerDir, signup.ID, signup)
}

func (s *signupStore) write(dir, id string, record any) error {
	filePath := filepath.Join(s.basePath, dir, id+".json")
	log := logrus.WithFields(logrus.Fields{
		"signup_id": id,
		"file_path": filePath,
	})

	data, err := json.Marshal(record)
	if err != nil {
		log.WithField("error", err).Error("Failed to encode signup")
		return err
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.WithField("error", err).Error("Failed to create signup")
		return err
	}
	log.Info("Signup created successfully")
	return nil
}

func (s *signupStore) ListBusinesses(ctx context.Context) ([]core.BusinessSignup, error) {
	out := []core.BusinessSignup{}
	err := s.readAll(businessDir, func(data []byte) error {
		var record core.BusinessSignup
		if err := json.Unmarshal(data, &record); err != nil {
			return err
		}
		out = append(out, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *signupStore) ListProviders(ctx context.Context) ([]core.ProviderSignup, error) {
	out := []core.ProviderSignup{}
	err := s.readAll(providerDir, func(data []byte) error {
		var record core.ProviderSignup
		if err := json.Unmarshal(data, &record); err != nil {
			return err
		}
		out = append(out, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *signupStore) readAll(dir string, decode func(data []byte) error) error {
	dirPath := filepath.Join(s.basePath, dir)
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"dir_path": dirPath,
			"error":    err,
		}).Error("Failed to list signups")
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"file_path": filepath.Join(dirPath, entry.Name()),
				"error":     err,
			}).Error("Failed to read signup")
			return err
		}
		if err := decode(data); err != nil {
			return fmt.Errorf("decode %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (s *signupStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.basePath)
	return err
}

func (s *signupStore) Close(ctx context.Context) error { return nil }
