package main

import (
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/audit"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/pipeline"
)

type anonymizeRequest struct {
	Document string       `json:"document"`
	Text     string       `json:"text"`
	Entities []lib.Entity `json:"entities"`
}

type entitiesRequest struct {
	Text string `json:"text"`
}

type controller struct {
	pipeline *pipeline.Pipeline
}

// Anonymize uses the entities in the request if there are any (an explicit empty
// list included), and the configured extractors otherwise.
func (c controller) Anonymize(req anonymizeRequest) (*pipeline.Result, error) {
	if req.Entities == nil {
		return c.pipeline.AnonymizeText(req.Document, req.Text)
	}
	return c.pipeline.AnonymizeEntities(req.Document, req.Text, req.Entities)
}

func (c controller) Entities(req entitiesRequest) ([]lib.Entity, error) {
	entities, err := c.pipeline.Entities(req.Text)
	if err != nil {
		return nil, err
	}
	if entities == nil {
		entities = []lib.Entity{}
	}
	return entities, nil
}

func (c controller) AuditRecord(id string) (*audit.Record, error) {
	store := c.pipeline.Store()
	if store == nil {
		return nil, errNoAuditStore
	}
	return store.Get(id)
}

func (c controller) Ready() bool {
	store := c.pipeline.Store()
	return store == nil || store.Ready()
}
