package reconcile

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// blobCache memoizes remote blobs for the duration of one run.
// Several languages commonly share one blob, so each locator is fetched once.
type blobCache struct {
	remote Remote
	mu     sync.RWMutex
	blobs  map[string][]byte
	sf     singleflight.Group
}

func newBlobCache(remote Remote) *blobCache {
	return &blobCache{
		remote: remote,
		blobs:  make(map[string][]byte),
	}
}

// Fetch returns the blob for loc, downloading it on first use.
// Failures are not cached.
func (c *blobCache) Fetch(ctx context.Context, loc Locator) ([]byte, error) {
	key := loc.Key()

	c.mu.RLock()
	blob, ok := c.blobs[key]
	c.mu.RUnlock()
	if ok {
		return blob, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		blob, ok := c.blobs[key]
		c.mu.RUnlock()
		if ok {
			return blob, nil
		}

		blob, err := c.remote.FetchBlob(ctx, loc)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.blobs[key] = blob
		c.mu.Unlock()
		return blob, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}
