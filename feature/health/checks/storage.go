package checks

import (
	"context"
	"fmt"

	"model-diff/core/storage"
	"model-diff/feature/comparison"
	"model-diff/feature/model"

	"github.com/minio/minio-go/v7"
)

// RequiredPrefixes lists the object prefixes the services read from.
var RequiredPrefixes = []string{
	model.ObjectPrefix,
	comparison.ReportPrefix,
}

// CheckStorage verifies that the bucket exists and that each required prefix
// answers a list request. It returns the prefixes that failed their probe;
// an empty prefix is healthy, only a listing error counts as a failure.
func CheckStorage(ctx context.Context, client storage.Client, bucket string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var failed []string
	for _, prefix := range RequiredPrefixes {
		opts := minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: false,
			MaxKeys:   1,
		}

		// minio reports listing failures as an item with Err set.
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				failed = append(failed, fmt.Sprintf("%s: %v", prefix, obj.Err))
			}
			break
		}
	}

	return failed, nil
}
