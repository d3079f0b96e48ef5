// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikigraph

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/skozina/litfetch/pkg/types"
)

// wikidataAPIBase is the Wikidata MediaWiki API root. Declared as a var so
// tests can substitute an httptest server.
var wikidataAPIBase = "https://www.wikidata.org/w/api.php"

// disambiguationQID is Wikidata's "disambiguation page" entity; expanding
// it connects unrelated concepts, so it is never visited.
const disambiguationQID = "Q4167836"

// defaultProps are the ontology properties expanded for each entity:
// instance-of, subclass-of and the topic/part-of family.
var defaultProps = []string{
	"P31", "P279", "P301", "P361", "P366",
	"P527", "P910", "P921", "P2578", "P2579",
}

// Builder expands seed entities into a concept graph, visiting entities
// breadth-first up to MaxHops away from a seed.
type Builder struct {
	MaxHops int
	Props   map[string]struct{}

	client *http.Client
	cfg    types.GraphConfig
}

// NewBuilder returns a Builder configured from cfg. ExtraProps extend the
// default property list; MaxHops defaults to 2.
func NewBuilder(client *http.Client, cfg types.GraphConfig) *Builder {
	maxHops := cfg.MaxHops
	if maxHops <= 0 {
		maxHops = 2
	}

	props := make(map[string]struct{}, len(defaultProps)+len(cfg.ExtraProps))
	for _, p := range defaultProps {
		props[p] = struct{}{}
	}
	for _, p := range cfg.ExtraProps {
		props[p] = struct{}{}
	}

	return &Builder{
		MaxHops: maxHops,
		Props:   props,
		client:  client,
		cfg:     cfg,
	}
}

// wbgetentities response shapes; only the fields the builder reads.
type entityResponse struct {
	Entities map[string]entityInfo `json:"entities"`
}

type entityInfo struct {
	Labels       map[string]langValue    `json:"labels"`
	Descriptions map[string]langValue    `json:"descriptions"`
	Claims       map[string][]claimValue `json:"claims"`
}

type langValue struct {
	Value string `json:"value"`
}

type claimValue struct {
	MainSnak mainSnak `json:"mainsnak"`
}

type mainSnak struct {
	SnakType  string     `json:"snaktype"`
	DataValue *dataValue `json:"datavalue"`
}

type dataValue struct {
	Value entityRef `json:"value"`
}

type entityRef struct {
	ID string `json:"id"`
}

// queueItem is one pending entity visit: the entity, the entity it was
// reached from, and its distance from the seeds.
type queueItem struct {
	qid  string
	prev string
	hop  int
}

// Build expands the seed entities breadth-first and returns the resulting
// graph, so each node's hop is its shortest distance from a seed. A seed
// that cannot be fetched fails the build; fetch errors below the seeds are
// reported as warnings on w and the parent entity is kept as a leaf. Each
// entity is fetched at most once; reaching a known entity again only adds
// an edge.
func (b *Builder) Build(seeds []string, w io.Writer) (*Graph, error) {
	g := NewGraph()
	queue := make([]queueItem, 0, len(seeds))
	for _, seed := range seeds {
		queue = append(queue, queueItem{qid: seed})
	}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		if it.hop > b.MaxHops || it.qid == disambiguationQID {
			continue
		}
		if g.HasNode(it.qid) {
			g.AddEdge(it.prev, it.qid)
			continue
		}
		if it.hop == 0 {
			fmt.Fprintf(w, "expanding: %s\n", it.qid)
		}

		info, err := b.getEntity(it.qid)
		if err != nil {
			if it.hop == 0 {
				return nil, fmt.Errorf("expanding seed %s: %w", it.qid, err)
			}
			fmt.Fprintf(w, "  warning: %s: %v\n", it.qid, err)
			continue
		}

		g.AddNode(&Node{
			QID:         it.qid,
			Label:       info.Labels["en"].Value,
			Description: info.Descriptions["en"].Value,
			Hop:         it.hop,
		})
		if it.prev != "" {
			g.AddEdge(it.prev, it.qid)
		}

		for prop, claims := range info.Claims {
			if _, ok := b.Props[prop]; !ok {
				continue
			}
			for _, claim := range claims {
				// novalue/somevalue snaks carry no target entity.
				if claim.MainSnak.SnakType != "value" || claim.MainSnak.DataValue == nil {
					continue
				}
				next := claim.MainSnak.DataValue.Value.ID
				if next == "" {
					continue
				}
				queue = append(queue, queueItem{qid: next, prev: it.qid, hop: it.hop + 1})
			}
		}
	}

	fmt.Fprintf(w, "%s\n", g)
	return g, nil
}

// getEntity fetches one entity record from the wbgetentities API.
func (b *Builder) getEntity(qid string) (entityInfo, error) {
	url := fmt.Sprintf("%s?action=wbgetentities&ids=%s&languages=en&format=json", wikidataAPIBase, qid)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return entityInfo{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.cfg.UserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return entityInfo{}, fmt.Errorf("wikidata API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entityInfo{}, fmt.Errorf("wikidata API returned HTTP %d", resp.StatusCode)
	}

	var er entityResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return entityInfo{}, fmt.Errorf("parsing wikidata response: %w", err)
	}

	info, ok := er.Entities[qid]
	if !ok {
		return entityInfo{}, fmt.Errorf("entity %s not in response", qid)
	}
	return info, nil
}
