package infra

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// bucket URL scheme drivers
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/riftcoach/backend/internal/app/appconfig"
)

// ArtifactBucket opens the blob bucket all match artifacts are persisted to.
// The bucket URL decides the backing store (local directory by default, S3 in
// deployment).
func ArtifactBucket(lc fx.Lifecycle, conf *appconfig.Config) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(context.Background(), conf.ArtifactBucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open artifact bucket %s", conf.ArtifactBucketURL)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return bucket, nil
}
