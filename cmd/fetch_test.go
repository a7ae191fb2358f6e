package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestFetch(t *testing.T) {
	const sdl = "type Todo @model { id: ID! }"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schema.graphql" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer 1234" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		io.WriteString(w, sdl)
	}))
	defer srv.Close()

	client := &fetchClient{Client: srv.Client()}
	headers := http.Header{"Authorization": []string{"Bearer 1234"}}

	u, err := url.Parse(srv.URL + "/schema.graphql")
	if err != nil {
		t.Fatal(err)
	}

	rc, err := client.fetch(u, headers)
	if err != nil {
		t.Error(err)
		return
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		t.Error(err)
		return
	}
	if string(b) != sdl {
		t.Errorf("mismatched response: %s", b)
	}
}

func TestFetch_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := &fetchClient{Client: srv.Client()}

	u, err := url.Parse(srv.URL + "/nope.graphql")
	if err != nil {
		t.Fatal(err)
	}

	if _, err = client.fetch(u, make(http.Header)); err == nil {
		t.Error("expected error for non-200 response")
	}
}
