// Package setup provides the interactive configuration wizard.
package setup

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/earnwatch/config"
)

// ErrCancelled is returned when the user declines to save the configuration.
var ErrCancelled = errors.New("setup cancelled by user")

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// Answers values collected by the wizard.
type Answers struct {
	PriceSource string
	Stablecoin  string
	Testnet     bool
	HistoryDir  string
	XLSXPath    string
}

func defaultAnswers() Answers {
	d := config.Default()
	return Answers{
		PriceSource: d.PriceSource,
		Stablecoin:  d.Stablecoin,
		HistoryDir:  "./wal/valuations",
	}
}

// RunTUI launches the terminal configuration wizard and writes the result to path.
func RunTUI(path string) error {
	a := defaultAnswers()
	var confirm bool

	// step 1: market data
	clearScreen()
	fmt.Println(headerStyle.Render("EARNWATCH CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Binance flexible earn balance, valued in a stablecoin.\n"))
	fmt.Println(stepStyle.Render("STEP 1: PRICES"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Ticker price source").
				Options(
					huh.NewOption("Binance", config.PlatformBinance),
					huh.NewOption("Bybit", config.PlatformBybit),
				).
				Value(&a.PriceSource),
			huh.NewInput().
				Title("Stablecoin").
				Description("Valuation currency and quote of every priced pair (e.g. USDT)").
				Value(&a.Stablecoin).
				Validate(validateStablecoin),
			huh.NewConfirm().
				Title("Use Binance testnet?").
				Value(&a.Testnet),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 2: outputs
	clearScreen()
	fmt.Println(headerStyle.Render("EARNWATCH CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: OUTPUTS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("History directory").
				Description("Keep every valuation in a WAL here; empty disables history").
				Value(&a.HistoryDir),
			huh.NewInput().
				Title("Spreadsheet export").
				Description("Write the breakdown to this .xlsx file; empty disables export").
				Value(&a.XLSXPath).
				Validate(validateXLSXPath),
		),
	).Run()
	if err != nil {
		return err
	}

	conf, err := a.Config()
	if err != nil {
		return err
	}

	// confirmation
	clearScreen()
	fmt.Println(headerStyle.Render("EARNWATCH CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary(conf)))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return ErrCancelled
	}

	if err := config.Save(path, conf); err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(
		fmt.Sprintf("\nConfiguration saved to %s\nRun: earnwatch --config %s", path, path)))
	return nil
}

// Config converts the answers into a validated configuration.
func (a Answers) Config() (config.Config, error) {
	conf := config.Default()
	conf.PriceSource = a.PriceSource
	conf.Stablecoin = strings.ToUpper(strings.TrimSpace(a.Stablecoin))
	conf.Testnet = a.Testnet
	conf.HistoryDir = strings.TrimSpace(a.HistoryDir)
	conf.XLSXPath = strings.TrimSpace(a.XLSXPath)

	if err := validateStablecoin(conf.Stablecoin); err != nil {
		return config.Config{}, err
	}
	if err := validateXLSXPath(conf.XLSXPath); err != nil {
		return config.Config{}, err
	}
	switch conf.PriceSource {
	case config.PlatformBinance, config.PlatformBybit:
	default:
		return config.Config{}, errors.Wrapf(config.ErrInvalidConfig, "unsupported price source %q", a.PriceSource)
	}

	return conf, nil
}

func summary(c config.Config) string {
	history := c.HistoryDir
	if history == "" {
		history = "off"
	}
	export := c.XLSXPath
	if export == "" {
		export = "off"
	}
	return fmt.Sprintf(
		"Price source: %s\nStablecoin: %s\nTestnet: %t\nHistory: %s\nExport: %s\n",
		c.PriceSource, c.Stablecoin, c.Testnet, history, export,
	)
}

func validateStablecoin(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("stablecoin cannot be empty")
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("invalid symbol: letters and digits only (e.g. USDT)")
		}
	}
	return nil
}

func validateXLSXPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(strings.ToLower(s), ".xlsx") {
		return fmt.Errorf("must end with .xlsx")
	}
	return nil
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}
