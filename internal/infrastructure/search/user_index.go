package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

const requestTimeout = 3 * time.Second

// userDocument is the indexed projection. It never carries the password hash.
type userDocument struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (d userDocument) toResponse() user.UserResponse {
	return user.UserResponse{ID: d.ID, Name: d.Name, Email: d.Email, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

// IndexingUserRepository mirrors writes of the wrapped repository into an Elasticsearch
// index. The primary store stays authoritative: index failures are logged, never returned.
type IndexingUserRepository struct {
	repository.UserRepository
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewIndexingUserRepository(next repository.UserRepository, es *elasticsearch.Client, index string, logger *logrus.Logger) *IndexingUserRepository {
	return &IndexingUserRepository{UserRepository: next, es: es, index: index, logger: logger}
}

func (r *IndexingUserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := r.UserRepository.Create(ctx, u); err != nil {
		return err
	}
	r.indexUser(ctx, u)
	return nil
}

func (r *IndexingUserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := r.UserRepository.Update(ctx, u); err != nil {
		return err
	}
	r.indexUser(ctx, u)
	return nil
}

func (r *IndexingUserRepository) Delete(ctx context.Context, id string) error {
	if err := r.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: r.index, DocumentID: id}.Do(c, r.es)
	if err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		return nil
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		r.logger.WithField("status", res.Status()).WithField("user_id", id).Warn("es delete response error")
	}
	return nil
}

func (r *IndexingUserRepository) indexUser(ctx context.Context, u *entity.User) {
	doc := userDocument{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().String(),
		CreatedAt: u.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.IndexRequest{Index: r.index, DocumentID: doc.ID, Body: bytes.NewReader(b), Refresh: "false"}.Do(c, r.es)
	if err != nil {
		r.logger.WithError(err).WithField("user_id", doc.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		r.logger.WithField("status", res.Status()).WithField("user_id", doc.ID).Warn("es index response error")
	}
}

// usersIndexBody keeps email searchable as text with an exact keyword subfield.
const usersIndexBody = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "name":       {"type": "text"},
      "email":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"}
    }
  }
}`

// EnsureUsersIndex creates the users index with its mapping when it does not exist.
func EnsureUsersIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.EnsureIndex(c, es, index, usersIndexBody)
}

// Searcher runs a multi_match over email and name.
type Searcher struct {
	es    *elasticsearch.Client
	index string
}

func NewSearcher(es *elasticsearch.Client, index string) *Searcher {
	return &Searcher{es: es, index: index}
}

func (s *Searcher) Search(ctx context.Context, q string, size int) ([]user.UserResponse, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := s.es.Search(
		s.es.Search.WithContext(c),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == 404 {
		return []user.UserResponse{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source userDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]user.UserResponse, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.toResponse())
	}
	return out, nil
}
