package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/heartmarshall/dndsheet/internal/domain"
	"github.com/heartmarshall/dndsheet/internal/transport/rest"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printState(w io.Writer, s domain.State, asJSON bool) error {
	if asJSON {
		return writeJSON(w, rest.NewStateResponse(s))
	}
	for i, t := range s.Topics {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := printTopic(w, t); err != nil {
			return err
		}
	}
	mode := "off"
	if s.DarkMode {
		mode = "on"
	}
	_, err := fmt.Fprintf(w, "\ndark mode: %s\n", mode)
	return err
}

func printTopic(w io.Writer, t domain.Topic) error {
	fmt.Fprintf(w, "%s  %s  (%d/%d)\n", t.ID, t.Title, t.CompletedQuestions, t.TotalQuestions)
	for _, q := range t.Questions {
		mark := " "
		if q.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s  %s", mark, q.ID, q.Title)
		if q.Link != "" {
			line += "  " + q.Link
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
