package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/danthegoodman1/frameclean/gologger"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/segmentio/ksuid"
)

var logger = gologger.NewLogger()

func GetEnvOrDefault(env, defaultVal string) string {
	e := os.Getenv(env)
	if e == "" {
		return defaultVal
	} else {
		return e
	}
}

func GetEnvOrDefaultInt(env string, defaultVal int64) int64 {
	e := os.Getenv(env)
	if e == "" {
		return defaultVal
	} else {
		intVal, err := strconv.ParseInt(e, 10, 64)
		if err != nil {
			logger.Error().Msg(fmt.Sprintf("Failed to parse string to int '%s'", env))
			os.Exit(1)
		}

		return intVal
	}
}

func GetEnvOrDefaultFloat(env string, defaultVal float64) float64 {
	e := os.Getenv(env)
	if e == "" {
		return defaultVal
	}
	floatVal, err := strconv.ParseFloat(e, 64)
	if err != nil {
		logger.Error().Msg(fmt.Sprintf("Failed to parse string to float '%s'", env))
		os.Exit(1)
	}
	return floatVal
}

func GenKSortedID(prefix string) string {
	return prefix + ksuid.New().String()
}

func GenRandomShortID() string {
	// reduced character set that's less probable to mis-type
	// change for conflicts is still only 1:128 trillion
	return gonanoid.MustGenerate("abcdefghikmonpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ0123456789", 8)
}

func Ptr[T any](s T) *T {
	return &s
}

func Deref[T any](ref *T, fallback T) T {
	if ref == nil {
		return fallback
	}
	return *ref
}

func ArrayOrEmpty[T any](ref []T) []T {
	if ref == nil {
		return make([]T, 0)
	}
	return ref
}

// IsPermanent reports whether err (or anything it wraps) says retrying is pointless
func IsPermanent(err error) bool {
	var perm interface{ IsPermanent() bool }
	return errors.As(err, &perm) && perm.IsPermanent()
}
