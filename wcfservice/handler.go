package wcfservice

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/ceidion/wcf/servicedef"
	"github.com/ceidion/wcf/soap"
)

// HandlerOptions configures the test service HTTP handler.
type HandlerOptions struct {
	Service        Service
	MaxRequestSize int
	Logger         soap.Logger
	// OnStop is called when the harness asks the service to exit.
	OnStop func()
}

// NewHandler returns the HTTP handler of the test service: a status resource at the root and
// one SOAP endpoint per supported binding.
func NewHandler(opts HandlerOptions) http.Handler {
	if opts.Service == nil {
		opts.Service = EchoService{}
	}
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = soap.DefaultMaxRequestSize
	}

	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		status := servicedef.ServiceStatus{
			Description:    "SOAP echo test service",
			Capabilities:   servicedef.AllCapabilities,
			MaxRequestSize: ldvalue.NewOptionalInt(opts.MaxRequestSize),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status)
	}).Methods(http.MethodGet)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if opts.Logger != nil {
			opts.Logger.Printf("Test harness has told us to exit")
		}
		w.WriteHeader(http.StatusNoContent)
		if opts.OnStop != nil {
			go opts.OnStop()
		}
	}).Methods(http.MethodDelete)

	for path, version := range map[string]soap.MessageVersion{
		servicedef.BasicHTTPPath: soap.MessageVersionSoap11,
		servicedef.Soap12Path:    soap.MessageVersionSoap12WSAddressing10,
	} {
		d := soap.NewDispatcher(version, opts.Logger)
		d.MaxRequestSize = int64(opts.MaxRequestSize)
		Register(d, opts.Service)
		router.Handle(path, d)
	}
	return router
}
