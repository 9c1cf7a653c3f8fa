package cli

import (
	goerrors "errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/skshetry/uv/internal/config"
	"github.com/skshetry/uv/internal/errors"
	"github.com/skshetry/uv/internal/initproj"
	"github.com/skshetry/uv/internal/netclient"
	"github.com/skshetry/uv/internal/python"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new Python project",
	Long: `Initialize a project with a pyproject.toml, a src layout, and a README.

Outside a workspace, the resolved interpreter version is pinned in a
.python-version file. Inside a workspace, the project is registered as a
member of the enclosing workspace instead, and no pin is written.

Examples:
  uv init                    # Initialize in the current directory
  uv init path/to/foo        # Initialize at the given path
  uv init --python 3.12      # Pin against a Python 3.12 interpreter
  uv init --no-readme        # Skip README.md creation`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("name", "", "Package name (default: final segment of the project directory)")
	initCmd.Flags().Bool("no-readme", false, "Skip README.md creation")
	initCmd.Flags().Bool("no-pin", false, "Skip writing the .python-version pin")
	initCmd.Flags().String("python", "", "Interpreter request for the pin, e.g. \"3.12\" or \">=3.11\"")
	initCmd.Flags().String("python-preference", "", "only-managed | managed | system | only-system")
	initCmd.Flags().String("python-fetch", "", "automatic | manual | never")
	initCmd.Flags().Bool("offline", false, "Disable all network access")
	initCmd.Flags().Bool("native-tls", false, "Verify downloads against the platform certificate store")
	initCmd.Flags().Bool("preview", false, "Acknowledge the experimental status and suppress the warning")
	initCmd.Flags().String("vcs", "none", "Version control to initialize: none | git")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, errors.Configuration,
			"Check the syntax of .uv/config.yml",
			"Run 'uv init --help' for flag equivalents")
	}

	req, err := buildInitRequest(cmd, args, settings)
	if err != nil {
		return err
	}

	orchestrator := &initproj.Orchestrator{
		Resolver: buildResolver(settings),
	}
	if _, err := orchestrator.Run(cmd.Context(), *req); err != nil {
		return classifyInitError(err)
	}
	return nil
}

// buildInitRequest merges flags over loaded settings into an init request.
// Flags win when set; settings fill the rest.
func buildInitRequest(cmd *cobra.Command, args []string, settings *config.Settings) (*initproj.Request, error) {
	req := &initproj.Request{}
	if len(args) == 1 {
		req.Path = args[0]
	}

	req.Name, _ = cmd.Flags().GetString("name")
	req.NoReadme, _ = cmd.Flags().GetBool("no-readme")
	req.NoPin, _ = cmd.Flags().GetBool("no-pin")
	req.NativeTLS, _ = cmd.Flags().GetBool("native-tls")
	req.Preview, _ = cmd.Flags().GetBool("preview")

	req.Python, _ = cmd.Flags().GetString("python")
	if req.Python == "" {
		req.Python = settings.Python
	}

	preference, _ := cmd.Flags().GetString("python-preference")
	if preference == "" {
		preference = settings.PythonPreference
	}
	pref, err := python.ParsePreference(preference)
	if err != nil {
		return nil, errors.NewArgumentErrorWithUsage(err.Error(),
			"uv init --python-preference {only-managed|managed|system|only-system}")
	}
	req.PythonPreference = pref

	fetch, _ := cmd.Flags().GetString("python-fetch")
	if fetch == "" {
		fetch = settings.PythonFetch
	}
	fetchPolicy, err := python.ParseFetchPolicy(fetch)
	if err != nil {
		return nil, errors.NewArgumentErrorWithUsage(err.Error(),
			"uv init --python-fetch {automatic|manual|never}")
	}
	req.PythonFetch = fetchPolicy

	if !req.NativeTLS {
		req.NativeTLS = settings.NativeTLS
	}
	offline, _ := cmd.Flags().GetBool("offline")
	if offline || settings.Offline {
		req.Connectivity = netclient.Offline
	}

	vcsValue, _ := cmd.Flags().GetString("vcs")
	vcsOption, err := initproj.ParseVCSOption(vcsValue)
	if err != nil {
		return nil, errors.NewArgumentErrorWithUsage(err.Error(), "uv init --vcs {none|git}")
	}
	req.VCS = vcsOption

	return req, nil
}

// buildResolver constructs the interpreter resolver from settings: cache
// location and release index override.
func buildResolver(settings *config.Settings) *python.Resolver {
	root := settings.CacheDir
	if root == "" {
		if defaultRoot, err := python.DefaultCacheRoot(); err == nil {
			root = defaultRoot
		}
	}
	return python.NewResolver(python.NewCache(root), settings.PythonIndexURL)
}

// classifyInitError maps the orchestrator's failure taxonomy onto CLI error
// categories and remediation.
func classifyInitError(err error) error {
	var invalidName *initproj.InvalidNameError
	var resolution *python.ResolutionError
	var pathErr *os.PathError

	switch {
	case goerrors.Is(err, initproj.ErrAlreadyInitialized):
		return errors.NewArgumentError(err.Error(),
			"Choose a different directory",
			"Or remove the existing pyproject.toml")
	case goerrors.As(err, &invalidName):
		return errors.NewArgumentError(err.Error(),
			"Pass an explicit name with --name",
			"Package names use letters, digits, and interior . _ - characters")
	case goerrors.As(err, &resolution):
		return errors.Wrap(err, errors.Network,
			"Install a matching Python interpreter",
			"Or allow downloads with --python-fetch automatic")
	case goerrors.Is(err, netclient.ErrOffline):
		return errors.Wrap(err, errors.Network,
			"Remove --offline to allow interpreter downloads",
			"Or skip the pin with --no-pin")
	case goerrors.As(err, &pathErr):
		return errors.Wrap(err, errors.Filesystem,
			"Check permissions on the project directory")
	default:
		return err
	}
}
