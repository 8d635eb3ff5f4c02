/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package audit keeps the replacement records of anonymized documents so that a
// substitution can be traced back later. Stored records are never used to pick
// replacement values.
package audit

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
)

var ErrNotFound = errors.New("audit record not found")

// Record is the audit trail of one anonymized document.
type Record struct {
	ID           string            `json:"id"`
	Document     string            `json:"document"`
	CreatedAt    time.Time         `json:"created_at"`
	Replacements []lib.Replacement `json:"replacements"`
}

func NewRecord(document string, replacements []lib.Replacement) *Record {
	return &Record{
		ID:           uuid.NewString(),
		Document:     document,
		CreatedAt:    time.Now().UTC(),
		Replacements: replacements,
	}
}

type Store interface {
	Put(record *Record) error
	Get(id string) (*Record, error)
	Ready() bool
}

type Backend string

const (
	None          Backend = "none"
	Local         Backend = "local"
	Redis         Backend = "redis"
	Elasticsearch Backend = "elasticsearch"
)

type Config struct {
	Backend       Backend
	Redis         RedisConfig
	Elasticsearch ElasticsearchConfig
}

// NewStore returns the store selected by conf.Backend, or nil for None.
func NewStore(conf Config) (Store, error) {
	switch conf.Backend {
	case None, "":
		return nil, nil
	case Local:
		return NewLocalStore(), nil
	case Redis:
		return NewRedisStore(conf.Redis), nil
	case Elasticsearch:
		return NewElasticsearchStore(conf.Elasticsearch)
	default:
		return nil, fmt.Errorf("invalid audit backend %q", conf.Backend)
	}
}
