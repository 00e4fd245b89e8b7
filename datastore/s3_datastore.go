package datastore

import (
	"context"
	"fmt"
	"io"

	"github.com/danthegoodman1/frameclean/s3_helper"
	"github.com/danthegoodman1/frameclean/utils"
	"github.com/rs/zerolog"
)

type (
	S3DataStore struct {
		bucket string
	}
)

var parquetContentType = "application/vnd.apache.parquet"

func NewS3DataStore(bucket string) (*S3DataStore, error) {
	if bucket == "" {
		return nil, s3_helper.ErrNoBucket
	}
	return &S3DataStore{bucket: bucket}, nil
}

func (sds *S3DataStore) WriteFile(ctx context.Context, namespace, fileName string, r io.Reader) (string, error) {
	key := s3_helper.ObjectKey(namespace, fileName)
	_, err := s3_helper.WriteBytesToS3(ctx, sds.bucket, key, r, utils.Ptr(parquetContentType))
	if err != nil {
		return "", fmt.Errorf("error in WriteBytesToS3: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("bucket", sds.bucket).Str("key", key).Msg("wrote file to s3 datastore")
	return fmt.Sprintf("s3://%s/%s", sds.bucket, key), nil
}

func (sds *S3DataStore) Shutdown(_ context.Context) error {
	return nil
}
