package s3_helper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/UltimateTournament/backoff/v4"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/danthegoodman1/frameclean/utils"
	"github.com/rs/zerolog"
)

var (
	ErrNoBucket = utils.PermError("S3_BUCKET_NAME is not set")
)

// ObjectKey is where an exported file lives inside the bucket
func ObjectKey(namespace, fileName string) string {
	return fmt.Sprintf("ns=%s/%s", namespace, fileName)
}

func newUploader() (*s3manager.Uploader, error) {
	s3Config := &aws.Config{
		Region:      aws.String(utils.AWS_DEFAULT_REGION),
		Credentials: credentials.NewEnvCredentials(),
	}
	if utils.S3_ENDPOINT != "" {
		s3Config.Endpoint = aws.String(utils.S3_ENDPOINT)
		s3Config.S3ForcePathStyle = aws.Bool(true)
	}

	s3Session, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("error making new session: %w", err)
	}

	return s3manager.NewUploader(s3Session), nil
}

// WriteBytesToS3 uploads the stream to bucket, retrying with exponential backoff up to S3_MAX_RETRIES times.
// The stream is buffered in memory so every attempt sends the full body.
func WriteBytesToS3(ctx context.Context, bucket, fileName string, byteStream io.Reader, contentType *string) (*s3manager.UploadOutput, error) {
	logger := zerolog.Ctx(ctx)

	if bucket == "" {
		return nil, ErrNoBucket
	}

	body, err := io.ReadAll(byteStream)
	if err != nil {
		return nil, fmt.Errorf("error in io.ReadAll: %w", err)
	}

	uploader, err := newUploader()
	if err != nil {
		return nil, err
	}

	var output *s3manager.UploadOutput
	attempt := 0
	s := time.Now()
	err = backoff.Retry(func() error {
		attempt++
		input := &s3manager.UploadInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(fileName),
			Body:        bytes.NewReader(body),
			ContentType: contentType,
		}
		var err error
		output, err = uploader.UploadWithContext(ctx, input)
		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt).Str("fileName", fileName).Msg("error uploading to s3")
			if utils.IsPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(utils.S3_MAX_RETRIES)), ctx))
	if err != nil {
		return nil, fmt.Errorf("error uploading to s3: %w", err)
	}

	d := time.Since(s)
	logger.Debug().Str("fileName", fileName).Int("attempts", attempt).Int64("durationNS", d.Nanoseconds()).Str("durationHuman", d.String()).Msg("uploaded file to s3")

	return output, nil
}
