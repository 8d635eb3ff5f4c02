package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v7"
)

type ElasticsearchConfig struct {
	Host  string
	Port  int
	Index string
}

type esGetResponse struct {
	Found  bool   `json:"found"`
	Source Record `json:"_source"`
}

func NewElasticsearchStore(conf ElasticsearchConfig) (Store, error) {
	c, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%d", conf.Host, conf.Port)},
	})
	if err != nil {
		return nil, err
	}
	return &esStore{
		Client: c,
		index:  conf.Index,
	}, nil
}

type esStore struct {
	*elasticsearch.Client
	index string
}

func (e *esStore) Put(record *Record) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	res, err := e.Index(e.index, bytes.NewReader(b), e.Index.WithDocumentID(record.ID))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return errors.New(res.String())
	}
	return nil
}

func (e *esStore) Get(id string) (*Record, error) {
	res, err := e.Client.Get(e.index, id)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	} else if res.IsError() {
		return nil, errors.New(res.String())
	}

	var esresponse esGetResponse
	if err := json.NewDecoder(res.Body).Decode(&esresponse); err != nil {
		return nil, err
	}
	if !esresponse.Found {
		return nil, ErrNotFound
	}
	return &esresponse.Source, nil
}

func (e *esStore) Ready() bool {
	res, err := e.Info()
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}
