// Command gist sends a prompt to the Groq chat-completions API, prints a
// summary of the response and saves the full JSON document.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/EphemeralEpoch/smart-book-gist/internal/chat"
	"github.com/EphemeralEpoch/smart-book-gist/internal/client"
	"github.com/EphemeralEpoch/smart-book-gist/internal/config"
	"github.com/EphemeralEpoch/smart-book-gist/internal/logging"
	"github.com/EphemeralEpoch/smart-book-gist/internal/processor"
)

const defaultPrompt = "Explain the importance of fast language models in 3 concise bullet points."

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code: 0 on success, 2 on any handled failure.
func run(args []string) int {
	flags := pflag.NewFlagSet("gist", pflag.ContinueOnError)
	promptFlag := flags.StringP("prompt", "p", "", "Prompt text to send")
	fileFlag := flags.StringP("file", "f", "", "Path to a file containing prompt text")
	outFlag := flags.StringP("out", "o", "", "Output file path (optional)")
	temperature := flags.Float64P("temperature", "t", 0.2, "Sampling temperature")
	maxTokens := flags.Int("max-tokens", 800, "Max tokens for generation")
	model := flags.String("model", "", "Model to use (overrides GROQ_MODEL env)")
	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if *promptFlag != "" && *fileFlag != "" {
		fmt.Fprintln(os.Stderr, "Error: --prompt and --file are mutually exclusive")
		return 2
	}

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	logger := logging.New(cfg.LogLevel)

	prompt := *promptFlag
	if *fileFlag != "" {
		b, err := os.ReadFile(*fileFlag)
		if err != nil {
			return fail(err)
		}
		prompt = strings.TrimSpace(string(b))
	}
	if prompt == "" {
		prompt = defaultPrompt
	}

	gist, err := client.New(cfg, logger)
	if err != nil {
		return fail(err)
	}

	fmt.Println("Sending request to Groq...")
	doc, err := gist.SendChat(context.Background(), chat.BuildConversation(prompt), chat.Params{
		Model:       *model,
		Temperature: *temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return fail(err)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = defaultOutputPath(cfg.OutputDir)
	}
	if err := processor.ProcessAndSave(doc, outPath); err != nil {
		return fail(err)
	}
	return 0
}

// defaultOutputPath stamps the file with the current UTC time at second
// precision, colons replaced so the name is portable.
func defaultOutputPath(outputDir string) string {
	ts := strings.ReplaceAll(time.Now().UTC().Format("2006-01-02T15:04:05"), ":", "-")
	return filepath.Join(outputDir, "groq-response-"+ts+".json")
}

func fail(err error) int {
	fmt.Println("Error:", err)
	return 2
}
