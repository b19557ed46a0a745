package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// ErrNoFile is returned by Load when none of the files exist.
var ErrNoFile = errors.New("no .env file found")

// Load reads the first existing file into the environment without overriding
// variables that are already set. With no arguments it looks for ".env".
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		_, err := os.Stat(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", file, err)
		}

		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
		return nil
	}

	return ErrNoFile
}

// ApplyFlags lets command line flags override the environment. Only -port is
// recognised.
func ApplyFlags(args []string) error {
	flags := flag.NewFlagSet("grubdash", flag.ContinueOnError)

	var portFlag string
	flags.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}
