package web

import (
	"encoding/json"
	"fmt"
	"geokit/config"
	ownIo "geokit/io"
	"geokit/validate"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"net/http"
	"time"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details error  `json:"details"`
}

func NewErrorResponse(message string, err error) ErrorResponse {
	return ErrorResponse{
		Error:   message,
		Details: err,
	}
}

func StartServer(serverConfig config.ServerConfig, defaults config.DefaultsConfig) {
	server := newServer(serverConfig, defaults)
	sigolo.Infof("Start server without TLS support on port %d", serverConfig.Port)
	err := server.ListenAndServe()
	sigolo.FatalCheck(err)
}

func StartServerTls(serverConfig config.ServerConfig, defaults config.DefaultsConfig) {
	server := newServer(serverConfig, defaults)
	sigolo.Infof("Start server with TLS support on port %d", serverConfig.Port)
	err := server.ListenAndServeTLS(serverConfig.CertFile, serverConfig.KeyFile)
	sigolo.FatalCheck(err)
}

func newServer(serverConfig config.ServerConfig, defaults config.DefaultsConfig) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", serverConfig.Port),
		Handler:      newHandler(defaults),
		ReadTimeout:  time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(serverConfig.WriteTimeout) * time.Second,
	}
}

// newHandler wraps the router with CORS support for browser clients and turns panics into 500 responses.
func newHandler(defaults config.DefaultsConfig) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet}),
	)
	return handlers.RecoveryHandler()(cors(initRouter(defaults)))
}

func initRouter(defaults config.DefaultsConfig) *mux.Router {
	h := &handler{defaults: defaults}

	r := mux.NewRouter()
	r.Use(logRequest)

	r.HandleFunc("/encode", h.encode).Methods(http.MethodGet)
	r.HandleFunc("/decode/{hash}", h.decode).Methods(http.MethodGet)
	r.HandleFunc("/neighbors/{hash}", h.neighbors).Methods(http.MethodGet)
	r.HandleFunc("/neighbors/{hash}/{direction}", h.neighbor).Methods(http.MethodGet)
	r.HandleFunc("/bboxes", h.boundingBoxes).Methods(http.MethodGet)
	r.HandleFunc("/query/{hash}", h.query).Methods(http.MethodGet)
	r.HandleFunc("/circle", h.circle).Methods(http.MethodGet)
	r.HandleFunc("/distance", h.distance).Methods(http.MethodGet)
	r.HandleFunc("/destination", h.destination).Methods(http.MethodGet)

	return r
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		next.ServeHTTP(writer, request)
		sigolo.Debugf("%s %s took %s", request.Method, request.URL.String(), time.Since(startTime))
	})
}

func writeJson(writer http.ResponseWriter, value any) {
	writer.Header().Set("Content-Type", "application/json")

	responseBytes, err := json.Marshal(value)
	if err != nil {
		writeError(writer, http.StatusInternalServerError, "Error marshalling response", err)
		return
	}

	_, err = writer.Write(responseBytes)
	if err != nil {
		sigolo.Errorf("Error writing response: %+v", err)
	}
}

func writeGeoJson(writer http.ResponseWriter, features []*geojson.Feature) {
	writer.Header().Set("Content-Type", "application/geo+json")

	err := ownIo.WriteFeaturesAsGeoJson(features, writer)
	if err != nil {
		sigolo.Errorf("Error writing GeoJSON response: %+v", err)
	}
}

// writeOperationError answers with 400 for invalid input and with 500 for everything else.
func writeOperationError(writer http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	if validate.IsValidationError(err) {
		status = http.StatusBadRequest
	}
	writeError(writer, status, message, err)
}

func writeError(writer http.ResponseWriter, status int, message string, err error) {
	sigolo.Errorf("%s: %+v", message, err)

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	errorResponseBytes, marshalErr := json.Marshal(NewErrorResponse(fmt.Sprintf("%s: %s", message, err.Error()), err))
	if marshalErr != nil {
		// Details like an unbounded range can't be represented in JSON
		sigolo.Debugf("Error marshalling error details, omit them: %+v", marshalErr)
		errorResponseBytes, marshalErr = json.Marshal(NewErrorResponse(fmt.Sprintf("%s: %s", message, err.Error()), nil))
		if marshalErr != nil {
			sigolo.Errorf("Error creating and marshalling error response object: %+v", marshalErr)
		}
	}

	_, err = writer.Write(errorResponseBytes)
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
