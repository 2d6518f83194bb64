package httpservice

import "context"
import "net"
import "net/http"

import "github.com/gorilla/mux"

import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== HTTP Service


/*
	create a new service instance with passable options
	--> initialize the router and register every client route on it, each route maps onto one replica operation
*/

func NewHTTPService(opts *HTTPServiceOpts) *HTTPService {
	httpService := &HTTPService{
		Router: mux.NewRouter(),
		Port: utils.NormalizePort(opts.Port),
		Operations: opts.Operations,
		Log: *clog.NewCustomLog(NAME),
	}

	httpService.RegisterRoutes()
	return httpService
}

/*
	Start HTTP Service
		serve on the given listener in a separate go routine, the returned channel yields the serve error
		once the server stops
*/

func (httpService *HTTPService) StartHTTPService(listener net.Listener) <-chan error {
	httpService.server = &http.Server{
		Handler: httpService.Router,
		ReadTimeout: HTTPTimeout,
		WriteTimeout: HTTPTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		httpService.Log.Info("http service starting up on:", listener.Addr().String())

		srvErr := httpService.server.Serve(listener)
		if srvErr != nil && srvErr != http.ErrServerClosed { serveErr <- srvErr }
		close(serveErr)
	}()

	return serveErr
}

func (httpService *HTTPService) Shutdown(ctx context.Context) error {
	if httpService.server == nil { return nil }
	return httpService.server.Shutdown(ctx)
}
