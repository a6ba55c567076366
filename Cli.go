package main

import (
	_ "embed"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/unicodeguard/unicodeguard/core"
	"github.com/unicodeguard/unicodeguard/processors"
	"github.com/unicodeguard/unicodeguard/reporters"
	"github.com/unicodeguard/unicodeguard/repositories"
	"github.com/unicodeguard/unicodeguard/scanners"
	"github.com/unicodeguard/unicodeguard/utils"
	"gopkg.in/yaml.v3"
)

//go:embed data/queries.yaml
var queriesYaml []byte

// Cli represents the command-line interface
type Cli struct {
	reportFormat  string
	whitelistPath string
	configPath    string
	excludes      []string
	gitlabToken   string
	noCache       bool
}

// Execute sets up and runs the root command
func (cli *Cli) Execute() error {
	rootCmd := &cobra.Command{
		Use:   "unicodeguard",
		Short: "unicodeguard tracks every non-ASCII character in a codebase against a reviewed whitelist.",
	}

	rootCmd.AddCommand(cli.createScanCommand())

	return rootCmd.Execute()
}

// createScanCommand creates the 'scan' command with its flags and subcommands
func (cli *Cli) createScanCommand() *cobra.Command {

	scanCmd := &cobra.Command{
		Use:     "scan",
		Short:   "Scan the git-tracked files of the working tree against the whitelist.",
		Version: Version,
		Run: func(cmd *cobra.Command, args []string) {
			cwd, err := os.Getwd()
			if err != nil {
				log.Fatalf("Failed to get current working directory: %v", err)
			}
			reporter, whitelistStore, excludes := cli.setup()
			scanner := scanners.NewWorktreeScanner(
				reporter,
				processors.InitializeProcessors(),
				repositories.NewFileBasedFindingRepository(),
				whitelistStore,
				excludes)
			scanner.Scan(cwd, cli.reportFormat)
		},
	}

	scanCmd.PersistentFlags().StringVar(&cli.reportFormat, "report", "console", "Report format (console, json, xlsx)")
	scanCmd.PersistentFlags().StringVar(&cli.whitelistPath, "whitelist", repositories.DefaultWhitelistPath, "Path of the whitelist file")
	scanCmd.PersistentFlags().StringVar(&cli.configPath, "config", DefaultConfigPath, "Path of the config file")
	scanCmd.PersistentFlags().StringArrayVar(&cli.excludes, "exclude", nil, "Path prefix or glob to exclude (repeatable)")
	scanCmd.PersistentFlags().StringVar(&cli.gitlabToken, "gitlab-token", "", "GitLab access token for 'scan gitlab'")
	scanCmd.PersistentFlags().BoolVar(&cli.noCache, "no-cache", false, "Bypass the forge project list cache")

	scanDirCmd := &cobra.Command{
		Use:   "dir [DIRECTORY]",
		Short: "Scan a plain directory tree (no version control) against the whitelist.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var directory string
			if len(args) == 0 {
				cwd, err := os.Getwd()
				if err != nil {
					log.Fatalf("Failed to get current working directory: %v", err)
				}
				directory = cwd
			} else {
				directory = args[0]
			}

			info, err := os.Stat(directory)
			if err != nil {
				log.Fatalf("Error accessing directory '%s': %v", directory, err)
			}
			if !info.IsDir() {
				log.Fatalf("Provided path '%s' is not a directory.", directory)
			}

			reporter, whitelistStore, excludes := cli.setup()
			scanner := scanners.NewDirectoryScanner(
				reporter,
				processors.InitializeProcessors(),
				repositories.NewFileBasedFindingRepository(),
				whitelistStore,
				excludes)
			scanner.Scan(directory, cli.reportFormat)
		},
	}

	scanRepoCmd := &cobra.Command{
		Use:   "repo <REPO_URL>",
		Short: "Audit a single remote repository for non-ASCII content.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reporter, _, excludes := cli.setup()
			scanner := scanners.NewRepoScanner(
				reporter,
				processors.InitializeProcessors(),
				repositories.NewFileBasedFindingRepository(),
				excludes)
			scanner.Scan(args[0], cli.reportFormat)
		},
	}

	scanOrgCmd := &cobra.Command{
		Use:   "github_org <ORG_NAME>",
		Short: "Audit every repository of a GitHub organization for non-ASCII content.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reporter, _, excludes := cli.setup()
			scanner := scanners.NewGithubOrgScanner(
				reporter,
				processors.InitializeProcessors(),
				repositories.NewFileBasedFindingRepository(),
				excludes)
			scanner.Scan(args[0], cli.reportFormat)
		},
	}

	scanGitlabCmd := &cobra.Command{
		Use:   "gitlab <BASE_URL>",
		Short: "Audit every project visible on a GitLab instance for non-ASCII content.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reporter, _, excludes := cli.setup()
			gitlabApi := utils.NewGitlabApiClient(cli.gitlabToken, args[0], cli.noCache)
			scanner := scanners.NewGitlabScanner(
				reporter,
				processors.InitializeProcessors(),
				repositories.NewFileBasedFindingRepository(),
				gitlabApi,
				excludes)
			scanner.Scan()
		},
	}

	scanCmd.AddCommand(scanDirCmd)
	scanCmd.AddCommand(scanRepoCmd)
	scanCmd.AddCommand(scanOrgCmd)
	scanCmd.AddCommand(scanGitlabCmd)
	return scanCmd
}

// setup resolves config and flags into the pieces every scan variant needs.
func (cli *Cli) setup() (core.Reporter, repositories.WhitelistStore, *scanners.ExcludeSet) {
	config, err := LoadConfig(cli.configPath)
	if err != nil {
		log.Fatal(err)
	}

	whitelistPath := cli.whitelistPath
	if whitelistPath == repositories.DefaultWhitelistPath && config.WhitelistPath != "" {
		whitelistPath = config.WhitelistPath
	}

	if cli.reportFormat == "console" && config.ReportFormat != "" {
		cli.reportFormat = config.ReportFormat
	}

	reporter, err := reporters.CreateReporter(cli.reportFormat, loadSummaryQueries())
	if err != nil {
		log.Fatal(err)
	}

	patterns := config.ExcludePrefixes
	if len(patterns) == 0 {
		patterns = scanners.DefaultExcludePrefixes
	}
	patterns = append(patterns, cli.excludes...)
	excludes, err := scanners.NewExcludeSet(patterns)
	if err != nil {
		log.Fatal(err)
	}

	return reporter, repositories.NewJsonWhitelistStore(whitelistPath), excludes
}

func loadSummaryQueries() core.SqlQueries {
	var queries core.SqlQueries
	if err := yaml.Unmarshal(queriesYaml, &queries); err != nil {
		log.Fatalf("Failed to parse embedded summary queries: %v", err)
	}
	return queries
}
