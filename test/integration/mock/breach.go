package mock

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// BreachOracle is a stand-in for the k-anonymity breach range API.
type BreachOracle struct {
	mu     sync.Mutex
	ranges map[string][]string
	server *httptest.Server
}

// NewBreachOracle starts a mock oracle with an empty corpus.
func NewBreachOracle() *BreachOracle {
	o := &BreachOracle{
		ranges: make(map[string][]string),
	}
	o.server = httptest.NewServer(http.HandlerFunc(o.handle))
	return o
}

// URL returns the mock oracle's base URL.
func (o *BreachOracle) URL() string { return o.server.URL }

// Close shuts the mock server down.
func (o *BreachOracle) Close() { o.server.Close() }

// AddBreached marks a password as present in the corpus.
func (o *BreachOracle) AddBreached(password string) {
	digest := sha1.Sum([]byte(password))
	hexDigest := strings.ToUpper(hex.EncodeToString(digest[:]))
	prefix, suffix := hexDigest[:5], hexDigest[5:]

	o.mu.Lock()
	defer o.mu.Unlock()
	o.ranges[prefix] = append(o.ranges[prefix], suffix)
}

func (o *BreachOracle) handle(w http.ResponseWriter, r *http.Request) {
	prefix := strings.TrimPrefix(r.URL.Path, "/range/")
	if len(prefix) != 5 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	o.mu.Lock()
	suffixes := o.ranges[strings.ToUpper(prefix)]
	o.mu.Unlock()

	// A range response always carries unrelated suffixes as padding.
	fmt.Fprint(w, "0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n")
	for _, suffix := range suffixes {
		fmt.Fprintf(w, "%s:3\r\n", suffix)
	}
}
