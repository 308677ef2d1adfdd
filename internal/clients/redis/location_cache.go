package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/observability"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

const (
	keyPrefix       = "tripcraft:locations:"
	DefaultCacheTTL = 10 * time.Minute
	// cityFetchLimit bounds the city list stored per key.
	cityFetchLimit = 2000
)

// CachedLocationStore is a read-through cache over another LocationStore.
// Whole city lists are cached; exclusions and limits are applied per call.
// Redis failures degrade to the underlying store.
type CachedLocationStore struct {
	inner   replacement.LocationStore
	backend Backend
	ttl     time.Duration
	log     *logger.Logger
}

var _ replacement.LocationStore = (*CachedLocationStore)(nil)

func NewCachedLocationStore(inner replacement.LocationStore, backend Backend, ttl time.Duration, baseLog *logger.Logger) *CachedLocationStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &CachedLocationStore{
		inner:   inner,
		backend: backend,
		ttl:     ttl,
		log:     baseLog.With("service", "CachedLocationStore"),
	}
}

func CityKey(city string, requirePlaceID bool) string {
	flag := "all"
	if requirePlaceID {
		flag = "placeid"
	}
	return keyPrefix + "city:" + strings.ToLower(strings.TrimSpace(city)) + ":" + flag
}

func idKey(id string) string { return keyPrefix + "id:" + id }

func (s *CachedLocationStore) GetLocation(ctx context.Context, id string) (*places.Location, error) {
	key := idKey(id)
	if raw, ok := s.read(ctx, "id", key); ok {
		var loc places.Location
		if err := json.Unmarshal(raw, &loc); err == nil {
			return &loc, nil
		}
	}
	loc, err := s.inner.GetLocation(ctx, id)
	if err != nil || loc == nil {
		return loc, err
	}
	s.write(ctx, key, loc)
	return loc, nil
}

func (s *CachedLocationStore) FetchLocationsByCity(ctx context.Context, city string, q replacement.Query) ([]*places.Location, error) {
	key := CityKey(city, q.RequirePlaceID)

	var all []*places.Location
	if raw, ok := s.read(ctx, "city", key); ok {
		if err := json.Unmarshal(raw, &all); err != nil {
			s.log.Warn("Dropping undecodable cache entry", "key", key, "error", err)
			all = nil
		}
	}
	if all == nil {
		fetched, err := s.inner.FetchLocationsByCity(ctx, city, replacement.Query{
			Limit:          cityFetchLimit,
			RequirePlaceID: q.RequirePlaceID,
		})
		if err != nil {
			return nil, err
		}
		all = fetched
		s.write(ctx, key, all)
	}
	return filterLocations(all, q), nil
}

// Invalidate drops the cached lists for the given cities.
func (s *CachedLocationStore) Invalidate(ctx context.Context, cities ...string) error {
	keys := make([]string, 0, len(cities)*2)
	for _, c := range cities {
		keys = append(keys, CityKey(c, false), CityKey(c, true))
	}
	return s.backend.Del(ctx, keys...)
}

// InvalidateLocations drops the cached single-location entries for ids.
func (s *CachedLocationStore) InvalidateLocations(ctx context.Context, ids ...string) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			keys = append(keys, idKey(id))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return s.backend.Del(ctx, keys...)
}

func (s *CachedLocationStore) read(ctx context.Context, kind, key string) ([]byte, bool) {
	raw, ok, err := s.backend.Get(ctx, key)
	switch {
	case err != nil:
		observability.Current().IncLocationCache(kind, "error")
		s.log.Warn("Location cache read failed", "key", key, "error", err)
		return nil, false
	case ok:
		observability.Current().IncLocationCache(kind, "hit")
	default:
		observability.Current().IncLocationCache(kind, "miss")
	}
	return raw, ok
}

func (s *CachedLocationStore) write(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.backend.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn("Location cache write failed", "key", key, "error", err)
	}
}

func filterLocations(all []*places.Location, q replacement.Query) []*places.Location {
	skip := make(map[string]struct{}, len(q.ExcludeIDs))
	for _, id := range q.ExcludeIDs {
		skip[id] = struct{}{}
	}
	out := make([]*places.Location, 0, len(all))
	for _, l := range all {
		if l == nil || l.IsPermanentlyClosed() {
			continue
		}
		if _, ok := skip[l.ID]; ok {
			continue
		}
		if q.RequirePlaceID && l.PlaceID == "" {
			continue
		}
		out = append(out, l)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out
}
