package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bdlens/bdlens-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
	Long: `Settings live in ~/.bdlens/config.toml (or --config-dir).

Keys:
  api.base_url             backend URL (overridden by --base-url and env vars)
  api.timeout_seconds      per-request timeout, 0 for none
  api.requests_per_second  client-side throttle, 0 for none
  upload.check_pdf         check PDFs locally before upload`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "output as JSON")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

type configView struct {
	BaseURL           string  `json:"base_url"`
	BaseURLSource     string  `json:"base_url_source"`
	TimeoutSeconds    float64 `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CheckPDF          bool    `json:"check_pdf"`
	Path              string  `json:"path,omitempty"`
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	view := configView{
		BaseURL:           settings.BaseURL,
		BaseURLSource:     settings.BaseURLSource,
		TimeoutSeconds:    settings.Timeout.Seconds(),
		RequestsPerSecond: settings.RequestsPerSecond,
		CheckPDF:          settings.CheckPDF,
	}
	if configStore != nil {
		view.Path = configStore.Path()
	}
	if configJSON {
		return printJSON(cmd, view)
	}

	cmd.Printf("Backend:        %s (from %s)\n", view.BaseURL, view.BaseURLSource)
	if settings.Timeout > 0 {
		cmd.Printf("Timeout:        %s\n", settings.Timeout)
	} else {
		cmd.Println("Timeout:        none")
	}
	if view.RequestsPerSecond > 0 {
		cmd.Printf("Rate limit:     %g req/s\n", view.RequestsPerSecond)
	} else {
		cmd.Println("Rate limit:     none")
	}
	cmd.Printf("Check PDFs:     %s\n", yesNo(view.CheckPDF))
	if view.Path != "" {
		cmd.Printf("Config file:    %s\n", view.Path)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errNoConfigStore
	}

	key := args[0]
	value, err := config.ParseValue(key, args[1])
	if err != nil {
		return err
	}
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNoConfigStore
	}
	cmd.Println(configStore.Path())
	return nil
}
