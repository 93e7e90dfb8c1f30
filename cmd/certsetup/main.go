// Command certsetup merges a custom corporate root certificate into the
// public CA bundle and points the env file's SSL_CERT_FILE and
// REQUESTS_CA_BUNDLE keys at the result. It runs offline, ahead of time;
// the API client picks the bundle up through the environment or the
// project-local path.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/EphemeralEpoch/smart-book-gist/internal/certs"
	"github.com/EphemeralEpoch/smart-book-gist/internal/envfile"
)

func main() {
	certFlag := pflag.String("zscaler", "", "Path to the custom root cert (optional)")
	outFlag := pflag.String("out", certs.DefaultBundlePath, "Output combined bundle path")
	envFlag := pflag.String("env", ".env", "Env file to update")
	caFlag := pflag.String("ca-bundle", "", "Public CA bundle to use (default: first standard location)")
	pflag.Parse()

	customPath := *certFlag
	if customPath != "" {
		if _, err := os.Stat(customPath); err != nil {
			fmt.Println("Provided custom cert does not exist:", customPath)
			os.Exit(2)
		}
	} else {
		found, err := certs.FindCustomCert()
		if errors.Is(err, certs.ErrNoCustomCert) {
			fmt.Println("No custom root cert found in known locations. Re-run with --zscaler /path/to/zscaler_root.cer")
			fmt.Println("Searched: /etc/ssl/certs/zscaler_root.pem, /usr/local/share/ca-certificates/, and Windows Downloads (WSL)")
			os.Exit(2)
		}
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(2)
		}
		customPath = found
		fmt.Println("Using custom cert:", customPath)
	}

	publicPath := *caFlag
	if publicPath == "" {
		found, err := certs.FindPublicBundle()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(2)
		}
		publicPath = found
	}

	if err := certs.WriteBundle(publicPath, customPath, *outFlag); err != nil {
		fmt.Println("Error:", err)
		os.Exit(2)
	}
	fmt.Println("Combined bundle written to:", *outFlag)

	absOut, err := filepath.Abs(*outFlag)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(2)
	}
	pairs := []envfile.Pair{
		{Key: "SSL_CERT_FILE", Value: absOut},
		{Key: "REQUESTS_CA_BUNDLE", Value: absOut},
	}
	if err := envfile.Update(*envFlag, pairs); err != nil {
		fmt.Println("Error:", err)
		os.Exit(2)
	}

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	fmt.Printf("%s updated (merged) with keys: %s\n", *envFlag, strings.Join(keys, ", "))
	fmt.Printf("Done. %s was backed up to %s%s (if it existed) and merged safely.\n", *envFlag, *envFlag, envfile.BackupSuffix)
}
