package repository

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// MinioStore keeps one JSON object per key in a bucket.
type MinioStore struct {
	Client *minio.Client
	Bucket string
}

func NewMinioStore(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{Client: client, Bucket: bucket}
}

func objectName(key string) string {
	return key + ".json"
}

func (s *MinioStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, false, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *MinioStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.Client.PutObject(ctx, s.Bucket, objectName(key), bytes.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	return s.Client.RemoveObject(ctx, s.Bucket, objectName(key), minio.RemoveObjectOptions{})
}

func (s *MinioStore) Ping(ctx context.Context) error {
	_, err := s.Client.BucketExists(ctx, s.Bucket)
	return err
}

func (s *MinioStore) Close() error { return nil }
