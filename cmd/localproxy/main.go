// localproxy runs a ferryman dispatcher behind a plain net/http server so
// handler authors can exercise the shim locally without an invocation host.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/proxyforge/ferryman/config"
	"github.com/proxyforge/ferryman/mediatype"
	"github.com/proxyforge/ferryman/proxy"
)

const port = 42069

type echoHandler struct{}

func (echoHandler) Handle(req proxy.Request, contentTypes, acceptTypes []mediatype.MediaType, _ *proxy.InvocationContext) (proxy.Response, error) {
	accepted := make([]string, 0, len(acceptTypes))
	for _, mt := range acceptTypes {
		accepted = append(accepted, mt.String())
	}
	body := fmt.Sprintf("method=%s path=%s accept=%s", req.HTTPMethod, req.Path, strings.Join(accepted, ","))
	return proxy.NewResponse().
		WithHeader("Content-Type", "text/plain").
		WithBody(body), nil
}

func (echoHandler) RequiredHeaders() []string { return nil }

type submitHandler struct{}

func (submitHandler) Handle(req proxy.Request, _, _ []mediatype.MediaType, _ *proxy.InvocationContext) (proxy.Response, error) {
	return proxy.NewResponse().
		WithStatusCode(http.StatusCreated).
		WithHeader("Content-Type", "text/plain").
		WithBody("accepted " + req.Body), nil
}

// declared so preflights against POST exercise the required-header check
func (submitHandler) RequiredHeaders() []string { return []string{"x-api-key"} }

func toProxyRequest(r *http.Request) (proxy.Request, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return proxy.Request{}, err
	}
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[name] = strings.Join(values, ", ")
	}
	query := map[string]string{}
	for name, values := range r.URL.Query() {
		query[name] = values[0]
	}
	return proxy.Request{
		HTTPMethod:            r.Method,
		Path:                  r.URL.Path,
		QueryStringParameters: query,
		Headers:               headers,
		Body:                  string(body),
	}, nil
}

func writeResponse(w http.ResponseWriter, resp proxy.Response) {
	for key, value := range resp.Headers() {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode())
	io.WriteString(w, resp.Body())
}

func getStatusCodeStyle(statusCode int) lipgloss.Style {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	case statusCode >= 300 && statusCode < 400:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	case statusCode >= 400 && statusCode < 500:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	case statusCode >= 500:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	}
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("no deployment config in env, using local defaults")
		cfg = &config.Config{Stage: "local", EnableCors: true, LogLevel: "info"}
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	registry := proxy.NewRegistry()
	registry.Register("GET", func(proxy.Configuration) proxy.Handler { return echoHandler{} })
	registry.Register("POST", func(proxy.Configuration) proxy.Handler { return submitHandler{} })

	dispatcher := proxy.NewDispatcher(proxy.DispatcherOpts{
		Registry: registry,
		ConfigFactory: func(proxy.Request, *proxy.InvocationContext) (proxy.Configuration, error) {
			return cfg, nil
		},
		EnableCors: cfg.EnableCors,
		Logger:     &logger,
	})

	methodStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Background(lipgloss.Color("12")).
		Width(8).
		Align(lipgloss.Center)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		req, err := toProxyRequest(r)
		if err != nil {
			http.Error(w, "unreadable request body", http.StatusBadRequest)
			return
		}
		ctx := &proxy.InvocationContext{
			RequestID:    fmt.Sprintf("local-%d", start.UnixNano()),
			FunctionName: "localproxy",
		}
		resp := dispatcher.Dispatch(req, ctx)
		writeResponse(w, resp)

		styledMethod := methodStyle.Render(r.Method)
		styledStatus := getStatusCodeStyle(resp.StatusCode()).Render(fmt.Sprintf("%d", resp.StatusCode()))
		fmt.Printf("%s %s %s in %s\n", styledMethod, r.URL.Path, styledStatus, time.Since(start))
	})

	logger.Info().Int("port", port).Str("stage", cfg.Stage).Msg("localproxy listening")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
