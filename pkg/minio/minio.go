package minio

import (
	"context"
	"fmt"
	"os"
	"path"

	"guarantor/pkg/config"
	"guarantor/pkg/dump"

	"github.com/fr-str/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func minioErr(msg string, vars ...any) error {
	return fmt.Errorf("minio: "+msg+": %w", vars...)
}

// KeyRecorder remembers where an artifact was mirrored.
type KeyRecorder interface {
	SetMirrorKey(ctx context.Context, name, key string) error
}

// Mirror copies dump artifacts into a bucket so they outlive the host.
type Mirror struct {
	*minio.Client
	Bucket string
	// Prefix groups objects, usually the host name.
	Prefix string
	Keys   KeyRecorder
}

func NewMirror(ctx context.Context) (Mirror, error) {
	ret := Mirror{Bucket: config.MINIO_DUMP_BUCKET_NAME}
	host := config.MINIO_HOST
	accessKeyID := config.MINIO_ACCESS_KEY_ID
	secretKey := config.MINIO_SECRET_ACCESS_KEY

	minioClient, err := minio.New(host, &minio.Options{
		Creds: credentials.NewStaticV4(accessKeyID, secretKey, ""),
		// Secure: true,
	})
	if err != nil {
		return ret, minioErr("new client %s", host, err)
	}
	ret.Client = minioClient

	if hostname, err := os.Hostname(); err == nil {
		ret.Prefix = hostname
	}

	err = ret.createDefaultBucket(ctx)
	if err != nil {
		log.Error(err.Error())
	}

	return ret, nil
}

func (m *Mirror) createDefaultBucket(ctx context.Context) error {
	err := m.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{Region: "any"})
	if err != nil {
		// Check to see if we already own this bucket (which happens if you run this twice)
		exists, errBucketExists := m.BucketExists(ctx, m.Bucket)
		if errBucketExists == nil && exists {
			log.Trace("bucket exists", log.String("name", m.Bucket))
			return nil
		}
		return minioErr("make bucket %s", m.Bucket, err)
	}

	log.Info("Successfully created", log.String("name", m.Bucket))

	return nil
}

// ObjectKey is where an artifact named name ends up in the bucket.
func (m Mirror) ObjectKey(name string) string {
	if m.Prefix == "" {
		return name
	}
	return path.Join(m.Prefix, name)
}

// Upload copies the file at filePath and returns its object key.
func (m Mirror) Upload(ctx context.Context, name, filePath string) (string, error) {
	key := m.ObjectKey(name)
	info, err := m.FPutObject(ctx, m.Bucket, key, filePath, minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return "", minioErr("upload %s", filePath, err)
	}
	log.Trace("uploaded dump", log.String("bucket", info.Bucket), log.String("key", info.Key), log.Any("size", info.Size))
	return key, nil
}

// Store implements dump.Sink.
func (m Mirror) Store(ctx context.Context, a dump.Artifact) error {
	key, err := m.Upload(ctx, a.Name, a.Path)
	if err != nil {
		return err
	}
	if m.Keys == nil {
		return nil
	}
	return m.Keys.SetMirrorKey(ctx, a.Name, key)
}
