package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Validate the environment before a report run",
	Run: func(cmd *cobra.Command, args []string) {
		fail := func(msg string) {
			fmt.Fprintln(os.Stderr, "✖", msg)
			os.Exit(1)
		}
		warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
		ok := func(msg string) { fmt.Println("✔", msg) }

		target := strings.TrimSpace(os.Getenv("TARGET_URL"))
		key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		outDir := strings.TrimSpace(os.Getenv("OUT_DIR"))
		addr := strings.TrimSpace(os.Getenv("ADDR"))

		if target == "" {
			warn("TARGET_URL is empty; the built-in default will be checked.")
		} else if err := validateTarget(target); err != nil {
			fail("TARGET_URL is not a valid http(s) URL: " + target)
		} else {
			ok("TARGET_URL=" + target)
		}

		if key == "" {
			warn("OPENAI_API_KEY empty — non-OK results get the disabled summary line.")
		} else {
			ok("OPENAI_API_KEY present")
		}

		if outDir == "" {
			warn("OUT_DIR empty; reports land in the working directory.")
		} else if st, err := os.Stat(outDir); err != nil || !st.IsDir() {
			fail("OUT_DIR does not exist or is not a directory: " + outDir)
		} else {
			ok("OUT_DIR=" + outDir)
		}

		if addr == "" {
			warn("ADDR empty; serve mode will use the default bind address.")
		} else {
			ok("ADDR=" + addr)
		}

		ok("preflight passed")
	},
}

// validateTarget rejects anything that is not an absolute http(s) URL with
// a host; preflight exits nonzero on these before a run wastes a probe.
func validateTarget(target string) error {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("not an http(s) URL: %s", target)
	}
	return nil
}
