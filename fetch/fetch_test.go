package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndavid/robosat.pink/fetch"
	"github.com/ndavid/robosat.pink/tile"
)

func TestClientTile(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/tiles/7/10/12.png":
			w.Write([]byte("tiledata"))
		case "/tiles/7/0/0.png":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := fetch.NewClient(fetch.WithUserAgent("rsp-test/1.0"))
	template := srv.URL + "/tiles/{z}/{x}/{y}.png"
	ctx := context.Background()

	data, err := client.Tile(ctx, template, tile.ID{X: 10, Y: 12, Z: 7})
	if err != nil {
		t.Fatalf("Tile failed: %v", err)
	}
	if string(data) != "tiledata" {
		t.Errorf("Tile = %q, want %q", data, "tiledata")
	}
	if gotAgent != "rsp-test/1.0" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "rsp-test/1.0")
	}

	// Missing tiles and server failures both collapse to an empty result.
	for _, tileID := range []tile.ID{{X: 9, Y: 9, Z: 7}, {X: 0, Y: 0, Z: 7}} {
		data, err := client.Tile(ctx, template, tileID)
		if err != nil {
			t.Errorf("Tile(%v) failed: %v", tileID, err)
		}
		if len(data) != 0 {
			t.Errorf("Tile(%v) = %d bytes, want empty", tileID, len(data))
		}
	}
}

func TestClientTileBadTemplate(t *testing.T) {
	client := fetch.NewClient()

	_, err := client.Tile(context.Background(), "http://example.com/{z}/{x}.png", tile.ID{})
	if !errors.Is(err, fetch.ErrInvalidTemplate) {
		t.Errorf("Tile(no {y}) error = %v, want ErrInvalidTemplate", err)
	}
}

func TestClientTileTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	client := fetch.NewClient(fetch.WithTimeout(10 * time.Millisecond))
	data, err := client.Tile(context.Background(), srv.URL+"/{z}/{x}/{y}", tile.ID{X: 1, Y: 2, Z: 3})
	if err != nil {
		t.Fatalf("Tile failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Tile after timeout = %d bytes, want empty", len(data))
	}
}

func TestClientTileCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tiledata"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := fetch.NewClient()
	if _, err := client.Tile(ctx, srv.URL+"/{z}/{x}/{y}", tile.ID{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Tile(cancelled ctx) error = %v, want context.Canceled", err)
	}
}

func TestExpandTemplate(t *testing.T) {
	got, err := fetch.ExpandTemplate("https://a.tile.test/{z}/{x}/{y}.webp?key=k", tile.ID{X: 69623, Y: 104945, Z: 18})
	if err != nil {
		t.Fatalf("ExpandTemplate failed: %v", err)
	}
	if want := "https://a.tile.test/18/69623/104945.webp?key=k"; got != want {
		t.Errorf("ExpandTemplate = %q, want %q", got, want)
	}
}
