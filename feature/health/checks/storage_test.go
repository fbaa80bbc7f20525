package checks

import (
	"context"
	"errors"
	"testing"

	"model-diff/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func listing(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, obj := range objs {
		ch <- obj
	}
	close(ch)
	return ch
}

func TestCheckStorage(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(false, nil)

		_, err := CheckStorage(context.Background(), mockClient, "diffs")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Bucket Check Fails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(false, errors.New("connection refused"))

		_, err := CheckStorage(context.Background(), mockClient, "diffs")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Empty Prefixes Are Healthy", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(true, nil)
		// A drained closed channel answers every probe with no items.
		mockClient.On("ListObjects", mock.Anything, "diffs", mock.Anything).Return(listing())

		failed, err := CheckStorage(context.Background(), mockClient, "diffs")
		assert.NoError(t, err)
		assert.Empty(t, failed)
	})

	t.Run("Populated Prefixes Are Healthy", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(true, nil)
		for _, prefix := range RequiredPrefixes {
			prefix := prefix
			mockClient.On("ListObjects", mock.Anything, "diffs", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == prefix
			})).Return(listing(minio.ObjectInfo{Key: prefix + "probe.json"}))
		}

		failed, err := CheckStorage(context.Background(), mockClient, "diffs")
		assert.NoError(t, err)
		assert.Empty(t, failed)
	})

	t.Run("Failing Prefix Is Reported", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "diffs", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == RequiredPrefixes[0]
		})).Return(listing(minio.ObjectInfo{Err: errors.New("access denied")}))
		mockClient.On("ListObjects", mock.Anything, "diffs", mock.Anything).Return(listing())

		failed, err := CheckStorage(context.Background(), mockClient, "diffs")
		assert.NoError(t, err)
		assert.Len(t, failed, 1)
		assert.Contains(t, failed[0], RequiredPrefixes[0])
		assert.Contains(t, failed[0], "access denied")
	})
}
