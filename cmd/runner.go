package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tareas/internal/formatter"
	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/services"
	"github.com/desertthunder/tareas/internal/shared"
	"github.com/desertthunder/tareas/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	service     services.TaskService
	ownsService bool
	controller  *tasks.Controller
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	input       io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Service    services.TaskService // Built from config when nil
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		service:    opts.Service,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}
	r.wire()
	return r
}

// SetLogger swaps the logger and rebuilds every component that captured the old one.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.wire()
}

// wire builds the task client (unless one was injected) and the controller from the current config.
func (r *Runner) wire() {
	if r.service == nil || r.ownsService {
		api := r.newTaskAPI()
		r.service = api
		r.ownsService = true
		r.logger.Debug("task endpoint", "base_url", api.BaseURL())
	}
	r.controller = tasks.NewController(r.service, tasks.ControllerOpts{
		Serialize: r.config.Client.Serialize,
		Logger:    shared.WithLogger(r.logger, "component", "controller"),
	})
}

func (r *Runner) newTaskAPI() *services.TaskAPI {
	client := r.httpClient
	if client == nil {
		client = &http.Client{Timeout: r.config.API.Timeout.Duration}
	}
	return services.NewTaskAPI(services.TaskAPIOpts{
		BaseURL:           r.config.API.BaseURL,
		HTTPClient:        client,
		RequestsPerSecond: r.config.API.RequestsPerSecond,
		Logger:            shared.WithLogger(r.logger, "component", "api"),
	})
}

// Configure is the root Before hook: it loads the config file, applies flag overrides and rewires the runner.
//
// A missing file at the default path is not an error; the embedded defaults are used.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			r.config = config
			r.configPath = path
		} else if cmd.IsSet("config") {
			return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		}
	}

	if cmd.IsSet("base-url") {
		r.config.API.BaseURL = cmd.String("base-url")
	}
	if cmd.IsSet("log-level") {
		r.config.Log.Level = cmd.String("log-level")
	}
	if err := shared.SetLogLevel(r.logger, r.config.Log.Level); err != nil {
		return ctx, err
	}
	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	r.wire()
	r.logger.Debug("configured", "config", r.configPath)
	return ctx, nil
}

// stdinPrompter reads one line from the runner's input after printing the label.
//
// EOF or a read error resolves as a cancelled prompt.
func (r *Runner) stdinPrompter() tasks.Prompter {
	reader := bufio.NewReader(r.input)
	return tasks.PromptFunc(func(ctx context.Context, label, initial string) <-chan tasks.PromptResult {
		ch := make(chan tasks.PromptResult, 1)
		if initial != "" {
			r.writePlain("%s [%s] ", label, initial)
		} else {
			r.writePlain("%s ", label)
		}

		go func() {
			defer close(ch)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				ch <- tasks.PromptResult{}
				return
			}
			ch <- tasks.PromptResult{Value: strings.TrimRight(line, "\r\n"), OK: true}
		}()
		return ch
	})
}

func (r *Runner) writeTasks(list []models.Task, f formatter.Format) error {
	data, err := formatter.Render(list, f)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}
