package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptText asks for one URL per line.
const PromptText = "Enter a URL to scrape (or type 'done' to finish): "

// PromptURLs reads URLs interactively until "done" or end of input. Lines
// that do not start with "http" are refused; full validation happens in
// the pipeline.
func PromptURLs(r io.Reader, w io.Writer) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, PromptText)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "done") {
			break
		}
		if !strings.HasPrefix(line, "http") {
			fmt.Fprintln(w, "Please enter a valid URL.")
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return urls, nil
}
