package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the AI providers, the documents folder, extraction
and chunking parameters, and chat behaviour.

Run without a subcommand to show the current configuration.`,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Long: `Prints the value of a single setting, e.g.:

  lifta settings get chunking.size
  lifta settings get llm.model`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Sets a single setting by its dotted key, e.g.:

  lifta settings set index.docs_dir ~/manuals
  lifta settings set chunking.size 800
  lifta settings set llm.provider ollama

API keys cannot be set this way; use 'lifta settings set-key'.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key [embedding|llm]",
	Short: "Set a provider API key",
	Long: `Prompts for an API key without echoing it and stores it for the
embedding or LLM provider.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSetKey,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runSettingsPath,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the documents folder and both AI providers step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Documents]")
	cmd.Printf("  Folder: %s\n", settings.Index.DocsDir)
	cmd.Println()

	cmd.Println("[Embedding]")
	printProviderSettings(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	printProviderSettings(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())
	cmd.Printf("  Temperature: %g\n", settings.LLM.Temperature)
	cmd.Printf("  Max tokens: %d\n", settings.LLM.MaxTokens)
	cmd.Println()

	cmd.Println("[Vector Store]")
	cmd.Printf("  Host: %s\n", settings.VectorStore.Host)
	cmd.Printf("  Port: %d\n", settings.VectorStore.Port)
	cmd.Printf("  Collection: %s\n", settings.VectorStore.Collection)
	cmd.Println()

	cmd.Println("[Extraction]")
	cmd.Printf("  Min text length: %d\n", settings.Extraction.MinTextLength)
	cmd.Printf("  Min alnum ratio: %g\n", settings.Extraction.MinAlnumRatio)
	cmd.Printf("  Tables: %s  Layout: %s  OCR: %s  Cleaning: %s\n",
		onOff(settings.Extraction.EnableTables), onOff(settings.Extraction.EnableLayout),
		onOff(settings.Extraction.EnableOCR), onOff(settings.Extraction.EnableCleaning))
	cmd.Printf("  OCR languages: %s (%d dpi)\n",
		settings.Extraction.OCRLanguages, settings.Extraction.OCRResolution)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Chat]")
	cmd.Printf("  Top K: %d\n", settings.Chat.TopK)
	cmd.Printf("  Max history chars: %d\n", settings.Chat.MaxHistoryChars)
	cmd.Printf("  Initial data fields: %s\n", strings.Join(settings.Chat.InitialDataFields, ", "))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'lifta settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printProviderSettings(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value, err := settingValue(settings, args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := applySetting(key, value); err != nil {
		return err
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

// settingValue renders a single setting for 'settings get'.
func settingValue(s *domain.AppSettings, key string) (string, error) {
	switch key {
	case "embedding.provider":
		return s.Embedding.Provider.String(), nil
	case "embedding.model":
		return s.Embedding.Model, nil
	case "embedding.base_url":
		return s.Embedding.BaseURL, nil
	case "llm.provider":
		return s.LLM.Provider.String(), nil
	case "llm.model":
		return s.LLM.Model, nil
	case "llm.base_url":
		return s.LLM.BaseURL, nil
	case "llm.temperature":
		return strconv.FormatFloat(s.LLM.Temperature, 'g', -1, 64), nil
	case "llm.max_tokens":
		return strconv.Itoa(s.LLM.MaxTokens), nil
	case "vector_store.host":
		return s.VectorStore.Host, nil
	case "vector_store.port":
		return strconv.Itoa(s.VectorStore.Port), nil
	case "vector_store.collection":
		return s.VectorStore.Collection, nil
	case "extraction.min_text_length":
		return strconv.Itoa(s.Extraction.MinTextLength), nil
	case "extraction.min_alnum_ratio":
		return strconv.FormatFloat(s.Extraction.MinAlnumRatio, 'g', -1, 64), nil
	case "extraction.enable_tables":
		return strconv.FormatBool(s.Extraction.EnableTables), nil
	case "extraction.enable_layout":
		return strconv.FormatBool(s.Extraction.EnableLayout), nil
	case "extraction.enable_ocr":
		return strconv.FormatBool(s.Extraction.EnableOCR), nil
	case "extraction.enable_cleaning":
		return strconv.FormatBool(s.Extraction.EnableCleaning), nil
	case "extraction.ocr_languages":
		return s.Extraction.OCRLanguages, nil
	case "extraction.ocr_resolution":
		return strconv.Itoa(s.Extraction.OCRResolution), nil
	case "extraction.max_layout_pages":
		return strconv.Itoa(s.Extraction.MaxLayoutPages), nil
	case "chunking.size":
		return strconv.Itoa(s.Chunking.Size), nil
	case "chunking.overlap":
		return strconv.Itoa(s.Chunking.Overlap), nil
	case "index.docs_dir":
		return s.Index.DocsDir, nil
	case "chat.top_k":
		return strconv.Itoa(s.Chat.TopK), nil
	case "chat.max_history_chars":
		return strconv.Itoa(s.Chat.MaxHistoryChars), nil
	case "chat.initial_data_fields":
		return strings.Join(s.Chat.InitialDataFields, ","), nil
	case "embedding.api_key", "llm.api_key":
		return "", fmt.Errorf("%s is write-only, use 'lifta settings set-key'", key)
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}

// applySetting parses and stores a single setting for 'settings set'.
//
//nolint:gocyclo // Flat key switch, one case per setting.
func applySetting(key, value string) error {
	// Provider switches go through the service so model defaults and
	// base URLs are filled in consistently.
	switch key {
	case "embedding.provider":
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		return settingsService.SetEmbeddingProvider(domain.AIProvider(value), "", settings.Embedding.APIKey)
	case "llm.provider":
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		return settingsService.SetLLMProvider(domain.AIProvider(value), "", settings.LLM.APIKey)
	case "index.docs_dir":
		return settingsService.SetDocsDir(value)
	case "embedding.api_key", "llm.api_key":
		return errors.New("use 'lifta settings set-key' to store API keys")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	switch key {
	case "embedding.model":
		settings.Embedding.Model = value
	case "embedding.base_url":
		settings.Embedding.BaseURL = value
	case "llm.model":
		settings.LLM.Model = value
	case "llm.base_url":
		settings.LLM.BaseURL = value
	case "llm.temperature":
		settings.LLM.Temperature, err = strconv.ParseFloat(value, 64)
	case "llm.max_tokens":
		settings.LLM.MaxTokens, err = strconv.Atoi(value)
	case "vector_store.host":
		settings.VectorStore.Host = value
	case "vector_store.port":
		settings.VectorStore.Port, err = strconv.Atoi(value)
	case "vector_store.collection":
		settings.VectorStore.Collection = value
	case "extraction.min_text_length":
		settings.Extraction.MinTextLength, err = strconv.Atoi(value)
	case "extraction.min_alnum_ratio":
		settings.Extraction.MinAlnumRatio, err = strconv.ParseFloat(value, 64)
	case "extraction.enable_tables":
		settings.Extraction.EnableTables, err = strconv.ParseBool(value)
	case "extraction.enable_layout":
		settings.Extraction.EnableLayout, err = strconv.ParseBool(value)
	case "extraction.enable_ocr":
		settings.Extraction.EnableOCR, err = strconv.ParseBool(value)
	case "extraction.enable_cleaning":
		settings.Extraction.EnableCleaning, err = strconv.ParseBool(value)
	case "extraction.ocr_languages":
		settings.Extraction.OCRLanguages = value
	case "extraction.ocr_resolution":
		settings.Extraction.OCRResolution, err = strconv.Atoi(value)
	case "extraction.max_layout_pages":
		settings.Extraction.MaxLayoutPages, err = strconv.Atoi(value)
	case "chunking.size":
		settings.Chunking.Size, err = strconv.Atoi(value)
	case "chunking.overlap":
		settings.Chunking.Overlap, err = strconv.Atoi(value)
	case "chat.top_k":
		settings.Chat.TopK, err = strconv.Atoi(value)
	case "chat.max_history_chars":
		settings.Chat.MaxHistoryChars, err = strconv.Atoi(value)
	case "chat.initial_data_fields":
		settings.Chat.InitialDataFields = splitFields(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	return settingsService.Save(settings)
}

func splitFields(value string) []string {
	parts := strings.Split(value, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

func runSettingsSetKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	target := args[0]
	if target != "embedding" && target != "llm" {
		return fmt.Errorf("unknown target %q, expected embedding or llm", target)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	provider := settings.Embedding.Provider
	if target == "llm" {
		provider = settings.LLM.Provider
	}

	cmd.Printf("Enter API key for %s: ", provider)
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("no API key entered")
	}

	if target == "embedding" {
		settings.Embedding.APIKey = apiKey
	} else {
		settings.LLM.APIKey = apiKey
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	// Validate the stored key by pinging the provider.
	cmd.Print("Validating configuration... ")
	if target == "embedding" {
		err = settingsService.ValidateEmbeddingConfig()
	} else {
		err = settingsService.ValidateLLMConfig()
	}
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("API key validation failed: %w", err)
	}
	cmd.Println("OK")

	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if configPath == "" {
		return errors.New("config path not configured")
	}
	cmd.Println(configPath)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Lifta Settings Wizard")
	cmd.Println("=====================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	// Step 1: Documents folder
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Step 1: Documents Folder")
	cmd.Println("------------------------")
	cmd.Printf("Enter documents folder [%s]: ", settings.Index.DocsDir)
	folder := readLine(reader)
	if folder != "" {
		if err := settingsService.SetDocsDir(folder); err != nil {
			return fmt.Errorf("failed to set documents folder: %w", err)
		}
		cmd.Printf("Documents folder set to: %s\n", folder)
	}
	cmd.Println()

	// Step 2: Embedding provider
	cmd.Println("Step 2: Configure Embedding Provider")
	cmd.Println("------------------------------------")
	if err := configureEmbeddingProvider(cmd, reader); err != nil {
		return err
	}

	// Step 3: LLM provider
	cmd.Println("Step 3: Configure LLM Provider")
	cmd.Println("------------------------------")
	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

//nolint:dupl // Similar to configureLLMProvider but for embeddings - intentional for CLI flow clarity
func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultEmbeddingModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetEmbeddingProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

//nolint:dupl // Similar to configureEmbeddingProvider but for LLM - intentional for CLI flow clarity
func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
