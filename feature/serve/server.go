package serve

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"deploy-launcher/core/logger"
	"deploy-launcher/core/process"
	"deploy-launcher/core/server"

	"go.uber.org/zap"
)

// Server starts the application server process.
type Server struct {
	cfg       server.Config
	port      int
	appModule string
	args      []string
	logger    *zap.Logger
}

// New creates a Server bound to cfg.Host and port. appModule is the value of
// the application-identifying variable, available to the arguments as
// ${APP_MODULE}.
func New(cfg server.Config, port int, appModule string, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := server.ValidatePort(port); err != nil {
		return nil, err
	}
	args, err := process.Split(cfg.Args)
	if err != nil {
		return nil, fmt.Errorf("invalid server args: %w", err)
	}
	return &Server{cfg: cfg, port: port, appModule: appModule, args: args, logger: logger}, nil
}

// Bind returns the address the server listens on.
func (s *Server) Bind() string {
	return s.cfg.Bind(s.port)
}

// Args returns the full command line. Quoting in the configured arguments is
// resolved before expansion, and arguments that expand to nothing are dropped.
func (s *Server) Args() []string {
	args := []string{s.cfg.Command}
	for _, arg := range s.args {
		if expanded := os.Expand(arg, s.lookup); expanded != "" {
			args = append(args, expanded)
		}
	}
	return args
}

func (s *Server) lookup(key string) string {
	switch key {
	case "BIND":
		return s.Bind()
	case "HOST":
		return s.cfg.Host
	case "PORT":
		return strconv.Itoa(s.port)
	case "WORKERS":
		return strconv.Itoa(server.Workers)
	case "APP_MODULE":
		return s.appModule
	default:
		return os.Getenv(key)
	}
}

// Env returns the server environment: the launcher environment with PORT and
// WEB_CONCURRENCY pinned to the launcher's values.
func (s *Server) Env() []string {
	pinned := map[string]string{
		"PORT":            strconv.Itoa(s.port),
		"WEB_CONCURRENCY": strconv.Itoa(server.Workers),
	}

	env := make([]string, 0, len(os.Environ())+len(pinned))
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if _, ok := pinned[name]; ok {
			continue
		}
		env = append(env, kv)
	}
	for _, name := range []string{"PORT", "WEB_CONCURRENCY"} {
		env = append(env, name+"="+pinned[name])
	}
	return env
}

// Run starts the server and blocks until it exits. A clean exit returns nil;
// otherwise the error carries the server's exit code. In exec mode Run only
// returns if the exec itself fails.
func (s *Server) Run(ctx context.Context) error {
	cmd := process.Command{Name: "server", Args: s.Args(), Env: s.Env()}

	s.logger.Info("Starting server",
		zap.String("bind", s.Bind()),
		zap.Int("workers", server.Workers),
		zap.String("log_sink", s.cfg.LogSink),
		zap.Bool("exec", s.cfg.Exec),
		zap.Strings("command", cmd.Args),
	)

	if s.cfg.Exec {
		_ = s.logger.Sync()
		return process.Exec(cmd)
	}

	if s.cfg.LogSink != server.SinkGCP {
		return process.Run(ctx, cmd)
	}
	return s.runWithSink(ctx, cmd)
}

func (s *Server) runWithSink(ctx context.Context, cmd process.Command) error {
	serverLog := s.logger.Named("server")

	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	cmd.Stdout = outW
	cmd.Stderr = errW

	var wg sync.WaitGroup
	wg.Add(2)
	go s.forward(&wg, serverLog, "stdout", outR)
	go s.forward(&wg, serverLog, "stderr", errR)

	err := process.Run(ctx, cmd)

	_ = outW.Close()
	_ = errW.Close()
	wg.Wait()

	return err
}

func (s *Server) forward(wg *sync.WaitGroup, l *zap.Logger, stream string, r io.Reader) {
	defer wg.Done()
	if err := logger.Forward(l, stream, r); err != nil {
		s.logger.Warn("Server output sink failed, discarding output", zap.String("stream", stream), zap.Error(err))
		// Keep draining so the server never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, r)
	}
}
