package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/preppal/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

type favouriteDoc struct {
	Email       string   `json:"email"`
	RecipeID    string   `json:"recipe_id"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Details     string   `json:"details"`
	Ingredients []string `json:"ingredients"`
	UpdatedAt   string   `json:"updated_at"`
}

// FavouriteIndex mirrors favourites into Elasticsearch for full-text search.
type FavouriteIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewFavouriteIndex(es *elasticsearch.Client, index string) *FavouriteIndex {
	return &FavouriteIndex{es: es, index: index}
}

// favouriteMapping keeps email as text with a keyword subfield so the owner
// filter matches exact addresses.
const favouriteMapping = `{
  "mappings": {
    "properties": {
      "email":       {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "recipe_id":   {"type": "keyword"},
      "title":       {"type": "text"},
      "image":       {"type": "keyword", "index": false},
      "details":     {"type": "text"},
      "ingredients": {"type": "text"},
      "updated_at":  {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *FavouriteIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(c, x.es)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("check index %s: %s", x.index, res.Status())
	}
	res, err = esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(favouriteMapping)}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", x.index, res.Status())
	}
	return nil
}

func docID(owner, recipeID string) string {
	return owner + ":" + recipeID
}

func (x *FavouriteIndex) Index(ctx context.Context, f *entity.FavouriteRecipe) error {
	doc := favouriteDoc{
		Email:     f.OwnerEmail,
		RecipeID:  f.RecipeID,
		Title:     f.Title,
		Image:     f.Image,
		Details:   f.Details,
		UpdatedAt: f.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	for _, ing := range f.Ingredients {
		doc.Ingredients = append(doc.Ingredients, ing.Original)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: docID(f.OwnerEmail, f.RecipeID), Body: bytes.NewReader(b), Refresh: "false"}
	return x.do(ctx, req)
}

func (x *FavouriteIndex) Delete(ctx context.Context, owner, recipeID string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: docID(owner, recipeID)}
	return x.do(ctx, req)
}

// Search runs a multi_match over title, ingredients and details, filtered to owner.
func (x *FavouriteIndex) Search(ctx context.Context, owner, q string, size int) ([]entity.FavouriteHit, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^3", "ingredients^2", "details"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"email.keyword": owner},
				},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("search favourites: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source favouriteDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.FavouriteHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		// email.keyword may be unmapped on old indices
		if h.Source.Email != owner {
			continue
		}
		out = append(out, entity.FavouriteHit{RecipeID: h.Source.RecipeID, Title: h.Source.Title, Image: h.Source.Image})
	}
	return out, nil
}

func (x *FavouriteIndex) do(ctx context.Context, req esapi.Request) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch: %s", res.Status())
	}
	return nil
}
