// Command scamcheck runs the risk engine locally, without the API server.
//
//	scamcheck url https://paypa1-login.com http://192.168.1.1/verify
//	scamcheck message "URGENT! Send a gift card to unlock your account"
//	echo "..." | scamcheck message -
//	scamcheck page --url https://secure-login.example.com saved-page.html
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
)

type options struct {
	jsonOut bool
	failOn  string
	pageURL string
}

func main() {
	var opts options
	fs := flag.NewFlagSet("scamcheck", flag.ContinueOnError)
	fs.BoolVar(&opts.jsonOut, "json", false, "print assessments as JSON")
	fs.StringVar(&opts.failOn, "fail-on", "dangerous", "exit with status 2 at this risk level or above (safe, suspicious, dangerous)")
	fs.StringVar(&opts.pageURL, "url", "", "page URL for the page command")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: scamcheck [flags] url|message|page args...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	args := fs.Args()
	if len(args) < 2 {
		fs.Usage()
		os.Exit(1)
	}

	threshold, err := parseLevel(opts.failOn)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	engine := services.NewEngine(nil)
	results, err := run(engine, args[0], args[1:], opts, os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	exit := 0
	for _, r := range results {
		if err := printResult(os.Stdout, r, opts.jsonOut); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if severity(r.assessment.RiskLevel) >= threshold {
			exit = 2
		}
	}
	os.Exit(exit)
}

type result struct {
	subject    string
	assessment *models.RiskAssessment
}

func run(engine *services.Engine, cmd string, args []string, opts options, stdin io.Reader) ([]result, error) {
	switch cmd {
	case "url":
		out := make([]result, 0, len(args))
		for _, u := range args {
			out = append(out, result{subject: u, assessment: engine.AnalyzeURL(u)})
		}
		return out, nil

	case "message":
		text := strings.Join(args, " ")
		if text == "-" {
			b, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(b)
		}
		return []result{{subject: services.MessageDigest(text), assessment: engine.AnalyzeMessage(text)}}, nil

	case "page":
		if opts.pageURL == "" {
			return nil, fmt.Errorf("page requires --url")
		}
		b, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read page: %w", err)
		}
		snap, err := services.ParseHTMLSnapshot(opts.pageURL, string(b))
		if err != nil {
			return nil, err
		}
		return []result{{subject: opts.pageURL, assessment: engine.AnalyzeWebsite(opts.pageURL, snap)}}, nil
	}

	return nil, fmt.Errorf("unknown command %q", cmd)
}

func printResult(w io.Writer, r result, jsonOut bool) error {
	if jsonOut {
		return json.NewEncoder(w).Encode(struct {
			Subject    string                 `json:"subject"`
			Assessment *models.RiskAssessment `json:"assessment"`
		}{r.subject, r.assessment})
	}

	a := r.assessment
	_, err := fmt.Fprintf(w, "%s\n  %s  score=%d confidence=%d type=%q\n  %s\n\n",
		r.subject, strings.ToUpper(string(a.RiskLevel)), a.Score, a.Confidence, a.ScamType,
		strings.ReplaceAll(a.Explanation, "\n", "\n  "))
	return err
}

func severity(level models.RiskLevel) int {
	switch level {
	case models.RiskLevelDangerous:
		return 2
	case models.RiskLevelSuspicious:
		return 1
	}
	return 0
}

func parseLevel(s string) (int, error) {
	switch strings.ToLower(s) {
	case "safe":
		return 0, nil
	case "suspicious":
		return 1, nil
	case "dangerous":
		return 2, nil
	}
	return 0, fmt.Errorf("invalid --fail-on level %q", s)
}
