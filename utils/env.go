package utils

import "os"

var (
	HTTP_PORT          = GetEnvOrDefault("HTTP_PORT", "8080")
	SHUTDOWN_SLEEP_SEC = GetEnvOrDefaultInt("SHUTDOWN_SLEEP_SEC", 0)

	MISSING_THRESHOLD = GetEnvOrDefaultFloat("MISSING_THRESHOLD", 0.95)

	// DATASTORE is either "disk" or "s3"
	DATASTORE = GetEnvOrDefault("DATASTORE", "disk")
	DATA_DIR  = GetEnvOrDefault("DATA_DIR", "./data")

	AWS_ACCESS_KEY_ID     = os.Getenv("AWS_ACCESS_KEY_ID")
	AWS_SECRET_ACCESS_KEY = os.Getenv("AWS_SECRET_ACCESS_KEY")
	AWS_DEFAULT_REGION    = GetEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1")

	S3_BUCKET_NAME = os.Getenv("S3_BUCKET_NAME")
	S3_ENDPOINT    = os.Getenv("S3_ENDPOINT")
	S3_MAX_RETRIES = GetEnvOrDefaultInt("S3_MAX_RETRIES", 3)

	AUTH_USERNAME = os.Getenv("AUTH_USERNAME")
	AUTH_PASSWORD = os.Getenv("AUTH_PASSWORD")
)
