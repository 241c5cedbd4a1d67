// Command e2e runs the browser test suite with a chosen browser,
// environment, and headless toggle. It is a thin front over `go test`:
// flags become environment variables the fixture layer reads, and the
// exit code reflects the aggregate pass/fail of all executed tests.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storefront-qa/e2e/internal/browser"
	"github.com/storefront-qa/e2e/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	browserFlag  string
	envFlag      string
	headlessFlag bool
	runFlag      string
	verboseFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "e2e",
	Short: "Storefront browser test runner",
	Long: `Runs the storefront e2e suite against a configured environment.

Environment credentials come from <ENV>_BASE_URL, <ENV>_TEST_EMAIL and
<ENV>_TEST_PASSWORD (or config/environments/<env>.yaml); see .env.example.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage: true,
	RunE:         runSuite,
}

var browsersCmd = &cobra.Command{
	Use:   "browsers",
	Short: "List supported browser names",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range browser.SupportedBrowsers {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&browserFlag, "browser", browser.Chromium, "browser to run: chromium, firefox, edge, or 'all'")
	rootCmd.Flags().StringVar(&envFlag, "env", "", "environment: dev, staging, prod (default: TEST_ENV or dev)")
	rootCmd.Flags().BoolVar(&headlessFlag, "headless", true, "run browsers without a visible window")
	rootCmd.Flags().StringVar(&runFlag, "run", "", "run only tests matching this regexp (go test -run)")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose test output")

	rootCmd.AddCommand(browsersCmd)
}

func runSuite(cmd *cobra.Command, args []string) error {
	if browserFlag != "all" {
		if _, err := browser.NormalizeBrowser(browserFlag); err != nil {
			return err
		}
	}

	// Fail fast on configuration errors instead of inside every test,
	// and materialize the resolved values so the test processes see
	// them regardless of their working directory.
	cfg, err := config.Resolve(envFlag)
	if err != nil {
		return err
	}
	prefix := strings.ToUpper(cfg.Environment) + "_"
	resolved := []string{
		prefix + "BASE_URL=" + cfg.BaseURL,
		prefix + "TEST_EMAIL=" + cfg.TestEmail,
		prefix + "TEST_PASSWORD=" + cfg.TestPassword,
		fmt.Sprintf("IMPLICIT_WAIT=%d", int(cfg.ImplicitWait.Seconds())),
		fmt.Sprintf("PAGE_LOAD_TIMEOUT=%d", int(cfg.PageLoadTimeout.Seconds())),
	}
	if cfg.APIURL != "" {
		resolved = append(resolved, prefix+"API_URL="+cfg.APIURL)
	}
	if cfg.LogLevel != "" {
		resolved = append(resolved, prefix+"LOG_LEVEL="+cfg.LogLevel)
	}

	goArgs := []string{"test", "./tests/e2e/..."}
	if verboseFlag {
		goArgs = append(goArgs, "-v")
	}
	if runFlag != "" {
		goArgs = append(goArgs, "-run", runFlag)
	}

	test := exec.Command("go", goArgs...)
	test.Env = append(os.Environ(),
		"E2E_TESTS=1",
		"BROWSER="+browserFlag,
		fmt.Sprintf("HEADLESS=%t", headlessFlag),
		"TEST_ENV="+cfg.Environment,
	)
	test.Env = append(test.Env, resolved...)
	test.Stdout = os.Stdout
	test.Stderr = os.Stderr

	err = test.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
