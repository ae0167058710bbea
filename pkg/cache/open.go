package cache

import (
	"context"
	"fmt"
	"strings"
)

// Open creates a cache from a location string:
//
//	""  or "none"          caching disabled
//	"badger:<dir>"         Badger database in dir ("badger:" for in-memory)
//	"redis://..."          Redis at the given URL
//	"mongodb://..."        MongoDB collection "cache" in the URI's database
//	"file:<dir>" or <dir>  JSON files in dir
func Open(location string) (Cache, error) {
	switch {
	case location == "" || location == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(location, "badger:"):
		c, err := NewBadgerCache(strings.TrimPrefix(location, "badger:"))
		if err != nil {
			return nil, err
		}
		return c, nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		c, err := NewRedisCache(location)
		if err != nil {
			return nil, err
		}
		return c, nil
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		c, err := NewMongoCache(context.Background(), location)
		if err != nil {
			return nil, err
		}
		return c, nil
	case strings.HasPrefix(location, "file:"):
		return NewFileCache(strings.TrimPrefix(location, "file:"))
	case strings.Contains(location, "://"):
		return nil, fmt.Errorf("%w for %q", ErrUnknownBackend, location)
	default:
		return NewFileCache(location)
	}
}
