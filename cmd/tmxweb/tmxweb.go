// Command tmxweb serves a rendered TMX map over HTTP.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "golang.org/x/net/trace" // for /debug/requests

	"badc0de.net/pkg/go-tmxmap/assets"
	"badc0de.net/pkg/go-tmxmap/compositor"
	"badc0de.net/pkg/go-tmxmap/telemetry"
	"badc0de.net/pkg/go-tmxmap/things/full"
	"badc0de.net/pkg/go-tmxmap/tilemap"
	"badc0de.net/pkg/go-tmxmap/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for tmxweb")
	overlay       = flag.Bool("overlay", false, "whether to draw map info over rendered images")
)

func indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexPage))
}

// newRouter wires the index page, the map and tile routes and
// /debug/requests, with compressed responses.
func newRouter(m *tilemap.Map, renderer *compositor.Renderer, images *assets.Set) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", indexHandler)
	h := web.NewHandler(m, renderer)
	h.RegisterRoutes(r)
	h.RegisterTileRoutes(r, images)
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)
	return handlers.CompressHandler(r)
}

func main() {
	if err := godotenv.Load(); err != nil {
		// Variables may come from the environment directly.
		glog.V(2).Infof(".env not loaded: %v", err)
	}

	full.SetupFilePathFlags()
	flagutil.Parse()

	ctx := context.Background()
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			glog.Warningf("telemetry setup failed, continuing without: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					glog.Errorf("shutting down telemetry: %v", err)
				}
			}()
		}
	}

	registry, tt, err := full.FromFilePathFlags()
	if err != nil {
		glog.Exitf("building tile registry: %v", err)
	}
	m := full.MapFromFlags(registry)

	tw, th := full.TileSize()
	renderer, err := compositor.NewRenderer(m, compositor.Config{TileWidth: tw, TileHeight: th, Overlay: *overlay})
	if err != nil {
		glog.Exitf("creating renderer: %v", err)
	}

	glog.Infof("serving %s on %s", m.Info(), *listenAddress)
	logged := handlers.LoggingHandler(os.Stderr, newRouter(m, renderer, tt.Images()))
	if err := http.ListenAndServe(*listenAddress, logged); err != nil {
		glog.Errorf("serving: %v", err)
	}
}
