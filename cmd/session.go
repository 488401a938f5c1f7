package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/state"
)

// session wires a client and a store to the run log of one invocation.
type session struct {
	client remote.Client
	store  *state.Store
	logger *log.Logger
	runLog *logging.RunLogger
}

func (c *cli) openSession() (*session, error) {
	opts, err := logging.ParseOptions(c.cfg.LogLevel, c.cfg.LogFormat, c.cfg.LogTimestamps, c.cfg.LogCaller)
	if err != nil {
		return nil, err
	}

	var logger *log.Logger
	runLog, err := logging.NewRunLogger(c.cfg.LogDir, c.cfg.BaseURL)
	if err != nil {
		console := logging.New(c.stderr, opts)
		console.Warn("run log disabled", "dir", c.cfg.LogDir, "err", err)
		logger = log.New(io.Discard)
	} else {
		logger = runLog.Logger(opts)
	}
	logger.Info("session started",
		"base_url", c.cfg.BaseURL,
		"api_path", c.cfg.APIPath,
		"pid", os.Getpid(),
	)

	client := remote.NewHTTPClient(c.cfg.BaseURL,
		remote.WithAPIPath(c.cfg.APIPath),
		remote.WithLogger(logger),
	)
	return &session{
		client: client,
		store:  state.NewStore(client, logger),
		logger: logger,
		runLog: runLog,
	}, nil
}

func (s *session) Close() error {
	return s.runLog.Close()
}
