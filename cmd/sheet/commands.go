package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dndsheet/internal/app"
	"github.com/heartmarshall/dndsheet/internal/domain"
	"github.com/heartmarshall/dndsheet/internal/service/sheet"
	"github.com/heartmarshall/dndsheet/internal/transport/rest"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every topic and question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			return printState(cmd.OutOrStdout(), svc.State(cmd.Context()), c.jsonOut)
		},
	}
}

func newTopicCmd(c *cli) *cobra.Command {
	topic := &cobra.Command{
		Use:   "topic",
		Short: "Add, rename, remove or move topics",
	}

	var id string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a new empty topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			t, err := svc.AddTopic(cmd.Context(), sheet.AddTopicInput{Title: args[0], ID: id})
			if err != nil {
				return err
			}
			return c.printTopic(cmd, t)
		},
	}
	add.Flags().StringVar(&id, "id", "", "use this id instead of a generated one")

	rename := &cobra.Command{
		Use:   "rename <topic-id> <title>",
		Short: "Change a topic's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			t, err := svc.EditTopic(cmd.Context(), sheet.EditTopicInput{ID: args[0], Title: args[1]})
			if err != nil {
				return err
			}
			return c.printTopic(cmd, t)
		},
	}

	rm := &cobra.Command{
		Use:     "rm <topic-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a topic and all of its questions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			return svc.DeleteTopic(cmd.Context(), args[0])
		},
	}

	move := &cobra.Command{
		Use:   "move <topic-id> <over-topic-id>",
		Short: "Move a topic to the position of another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			return c.printMoved(cmd, svc.ReorderTopics(cmd.Context(), args[0], args[1]))
		},
	}

	topic.AddCommand(add, rename, rm, move)
	return topic
}

func newQuestionCmd(c *cli) *cobra.Command {
	question := &cobra.Command{
		Use:     "question",
		Aliases: []string{"q"},
		Short:   "Add, edit, complete, remove or move questions",
	}

	var link string
	add := &cobra.Command{
		Use:   "add <topic-id> <title>",
		Short: "Append a question to a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			q, err := svc.AddQuestion(cmd.Context(), sheet.AddQuestionInput{TopicID: args[0], Title: args[1], Link: link})
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), rest.QuestionDTO{ID: q.ID, Title: q.Title, Link: q.Link, Completed: q.Completed})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), q.ID)
			return err
		},
	}
	add.Flags().StringVar(&link, "link", "", "problem URL")

	edit := func(use, short string, nargs int, update func(args []string) sheet.QuestionUpdate) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := c.sheet(cmd)
				if err != nil {
					return err
				}
				t, err := svc.EditQuestion(cmd.Context(), args[0], update(args), args[1])
				if err != nil {
					return err
				}
				return c.printTopic(cmd, t)
			},
		}
	}

	rename := edit("rename <topic-id> <question-id> <title>", "Change a question's title", 3,
		func(args []string) sheet.QuestionUpdate { return sheet.QuestionUpdate{Title: &args[2]} })
	setLink := edit("link <topic-id> <question-id> <url>", "Set a question's link; an empty url clears it", 3,
		func(args []string) sheet.QuestionUpdate { return sheet.QuestionUpdate{Link: &args[2]} })
	done := edit("done <topic-id> <question-id>", "Mark a question completed", 2,
		func([]string) sheet.QuestionUpdate { v := true; return sheet.QuestionUpdate{Completed: &v} })
	undone := edit("undone <topic-id> <question-id>", "Mark a question not completed", 2,
		func([]string) sheet.QuestionUpdate { v := false; return sheet.QuestionUpdate{Completed: &v} })

	rm := &cobra.Command{
		Use:     "rm <topic-id> <question-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a question",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			return svc.DeleteQuestion(cmd.Context(), args[0], args[1])
		},
	}

	move := &cobra.Command{
		Use:   "move <topic-id> <question-id> <over-question-id>",
		Short: "Move a question to the position of another in the same topic",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			moved, err := svc.ReorderQuestions(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return c.printMoved(cmd, moved)
		},
	}

	question.AddCommand(add, rename, setLink, done, undone, rm, move)
	return question
}

func newDarkModeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dark-mode",
		Short: "Toggle the dark mode preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			on := svc.ToggleDarkMode(cmd.Context())
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]bool{"darkMode": on})
			}
			state := "off"
			if on {
				state = "on"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "dark mode", state)
			return err
		},
	}
}

func newResetCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all progress and reload the bundled questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset discards every change; pass --yes to confirm")
			}
			svc, err := c.sheet(cmd)
			if err != nil {
				return err
			}
			if err := svc.Reset(cmd.Context()); err != nil {
				return err
			}
			return printState(cmd.OutOrStdout(), svc.State(cmd.Context()), c.jsonOut)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
			return err
		},
	}
}

func (c *cli) printTopic(cmd *cobra.Command, t domain.Topic) error {
	if c.jsonOut {
		return writeJSON(cmd.OutOrStdout(), rest.NewTopicDTO(t))
	}
	return printTopic(cmd.OutOrStdout(), t)
}

func (c *cli) printMoved(cmd *cobra.Command, moved bool) error {
	if c.jsonOut {
		return writeJSON(cmd.OutOrStdout(), map[string]bool{"moved": moved})
	}
	if !moved {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "nothing moved")
		return err
	}
	return nil
}
