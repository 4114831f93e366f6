package aws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"stashspace/core"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

const (
	businessPrefix = "businesses/"
	providerPrefix = "providers/"
)

type signupStore struct {
	s3Client *s3.Client
	bucket   string // Name of the S3 bucket
}

// NewSignupStore keeps each signup as a JSON object in an S3 bucket, one
// key prefix per record kind. Credentials and region come from the default
// SDK chain.
func NewSignupStore(ctx context.Context, bucketName string) (core.SignupStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}
	return &signupStore{
		s3Client: s3.NewFromConfig(cfg),
		bucket:   bucketName,
	}, nil
}

func (s *signupStore) CreateBusiness(ctx context.Context, signup *core.BusinessSignup) (string, error) {
	if err := core.Prepare(signup, ulid.Make().String(), time.Now().UTC()); err != nil {
		return "", err
	}
	return signup.ID, s.put(ctx, businessPrefix, signup.ID, signup)
}

func (s *signupStore) CreateProvider(ctx context.Context, signup *core.ProviderSignup) (string, error) {
	if err := core.Prepare(signup, ulid.Make().String(), time.Now().UTC()); err != nil {
		return "", err
	}
	return signup.ID, s.put(ctx, providerPrefix, signup.ID, signup)
}

func (s *signupStore) put(ctx context.Context, prefix, id string, record any) error {
	key := prefix + id + ".json"
	log := logrus.WithFields(logrus.Fields{
		"signup_id": id,
		"bucket":    s.bucket,
		"key":       key,
	})

	data, err := json.Marshal(record)
	if err != nil {
		log.WithField("error", err).Error("Failed to encode signup")
		return err
	}
	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		log.WithField("error", err).Error("Failed to create signup")
		return fmt.Errorf("upload signup: %w", err)
	}
	log.Info("Signup created successfully")
	return nil
}

func (s *signupStore) ListBusinesses(ctx context.Context) ([]core.BusinessSignup, error) {
	out := []core.BusinessSignup{}
	err := s.readAll(ctx, businessPrefix, func(data []byte) error {
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
	err := s.readAll(ctx, providerPrefix, func(data []byte) error {
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

func (s *signupStore) readAll(ctx context.Context, prefix string, decode func(data []byte) error) error {
	paginator := s3.NewListObjectsV2Paginator(s.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list signups: %w", err)
		}
		for _, object := range page.Contents {
			data, err := s.get(ctx, aws.ToString(object.Key))
			if err != nil {
				return err
			}
			if err := decode(data); err != nil {
				return fmt.Errorf("decode %s: %w", aws.ToString(object.Key), err)
			}
		}
	}
	return nil
}

func (s *signupStore) get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get signup %s: %w", key, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (s *signupStore) Ping(ctx context.Context) error {
	_, err := s.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	return err
}

func (s *signupStore) Close(ctx context.Context) error { return nil }
