package datastore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danthegoodman1/frameclean/gologger"
	"github.com/danthegoodman1/frameclean/utils"
)

var (
	logger = gologger.NewLogger()

	ErrUnknownDataStore = errors.New("unknown datastore")
)

type (
	// DataStore is where exported tables are written
	DataStore interface {
		// WriteFile stores the contents of r under the namespace and returns its location
		WriteFile(ctx context.Context, namespace, fileName string, r io.Reader) (string, error)

		Shutdown(ctx context.Context) error
	}
)

// NewDataStoreFromEnv picks the implementation named by DATASTORE
func NewDataStoreFromEnv() (DataStore, error) {
	logger.Debug().Str("datastore", utils.DATASTORE).Msg("creating datastore")
	switch utils.DATASTORE {
	case "disk":
		dds, err := NewDiskDataStore(utils.DATA_DIR)
		if err != nil {
			return nil, fmt.Errorf("error in NewDiskDataStore: %w", err)
		}
		return dds, nil
	case "s3":
		sds, err := NewS3DataStore(utils.S3_BUCKET_NAME)
		if err != nil {
			return nil, fmt.Errorf("error in NewS3DataStore: %w", err)
		}
		return sds, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataStore, utils.DATASTORE)
	}
}
