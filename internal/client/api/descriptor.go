package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Descriptor identifies one candidate endpoint for a logical operation.
// Chains of descriptors are attempted strictly in order; the first success
// wins and later descriptors are never touched.
type Descriptor struct {
	Name   string
	Method string
	URL    string
	Header http.Header
}

// Op names a logical backend operation. Auth marks operations that must not
// be attempted without a bearer token.
type Op struct {
	Name string
	Auth bool
}

// Endpoints builds the descriptor chains for the content backend. Bases is
// an ordered list of API roots (current deployment first, legacy second);
// within each base the known path variants are tried oldest-route-last.
type Endpoints struct {
	Bases []string
}

func NewEndpoints(bases []string) Endpoints {
	trimmed := make([]string, 0, len(bases))
	for _, b := range bases {
		b = strings.TrimRight(strings.TrimSpace(b), "/")
		if b != "" {
			trimmed = append(trimmed, b)
		}
	}
	return Endpoints{Bases: trimmed}
}

func (e Endpoints) expand(method string, variants ...string) []Descriptor {
	descs := make([]Descriptor, 0, len(e.Bases)*len(variants))
	for _, base := range e.Bases {
		for _, v := range variants {
			descs = append(descs, Descriptor{
				Name:   fmt.Sprintf("%s %s%s", method, base, v),
				Method: method,
				URL:    base + v,
			})
		}
	}
	return descs
}

func (e Endpoints) ListByCategory(category string) []Descriptor {
	q := url.QueryEscape(category)
	return e.expand(http.MethodGet,
		"/api/posts?category="+q,
		"/api/news?category="+q,
	)
}

func (e Endpoints) ApprovedByMe() []Descriptor {
	return e.expand(http.MethodGet,
		"/api/posts/mine?status=approved",
		"/api/news/my-approved",
	)
}

func (e Endpoints) PendingByMe() []Descriptor {
	return e.expand(http.MethodGet,
		"/api/posts/mine?status=pending",
		"/api/news/my-pending",
	)
}

func (e Endpoints) ItemByID(id string) []Descriptor {
	p := url.PathEscape(id)
	return e.expand(http.MethodGet,
		"/api/posts/"+p,
		"/api/news/"+p,
		"/api/v1/posts/"+p,
	)
}

func (e Endpoints) SetFeatured(id string) []Descriptor {
	p := url.PathEscape(id)
	return e.expand(http.MethodPut,
		"/api/posts/"+p+"/featured",
		"/api/news/"+p+"/featured",
	)
}

func (e Endpoints) DeleteItem(id string) []Descriptor {
	p := url.PathEscape(id)
	return e.expand(http.MethodDelete,
		"/api/posts/"+p,
		"/api/news/"+p,
	)
}

func (e Endpoints) CreateItem() []Descriptor {
	return e.expand(http.MethodPost,
		"/api/posts",
		"/api/news",
		"/api/v1/posts",
	)
}

func (e Endpoints) UpdateItem(id string) []Descriptor {
	p := url.PathEscape(id)
	return e.expand(http.MethodPut,
		"/api/posts/"+p,
		"/api/news/"+p,
	)
}
