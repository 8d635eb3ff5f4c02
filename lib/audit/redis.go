package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

const redisKeyPrefix = "audit:"

type RedisConfig struct {
	Host string
	Port int
	// TTL of stored records; zero keeps them forever.
	TTL time.Duration
}

func NewRedisStore(conf RedisConfig) Store {
	return &redisStore{
		Client: redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%d", conf.Host, conf.Port)}),
		ttl: conf.TTL,
	}
}

type redisStore struct {
	*redis.Client
	ttl time.Duration
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *redisStore) Put(record *Record) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.Set(redisKey(record.ID), b, r.ttl).Err()
}

func (r *redisStore) Get(id string) (*Record, error) {
	b, err := r.Client.Get(redisKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *redisStore) Ready() bool {
	return r.Ping().Err() == nil
}
