// Command apngweb serves the web package's assemble and unpack handlers.
//
// Request traces are available at /debug/requests.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/go-apng/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for apngweb")
	maxBodyBytes  = flag.Int64("max_body_bytes", web.DefaultMaxBodyBytes, "largest accepted request body")
	gzip          = flag.Bool("gzip", true, "whether to compress responses when the client accepts it")
)

func newHandler() http.Handler {
	r := mux.NewRouter()
	web.NewHandler(*maxBodyBytes).RegisterRoutes(r)

	var h http.Handler = r
	if *gzip {
		h = handlers.CompressHandler(h)
	}
	return handlers.LoggingHandler(os.Stderr, h)
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	// /debug/requests is registered on the default mux by the trace package.
	http.Handle("/", newHandler())

	glog.Infof("listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, nil))
}
