// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/concurseiro/simulados/cliparse"
	"github.com/concurseiro/simulados/db"
	"github.com/concurseiro/simulados/exercises"
	"github.com/concurseiro/simulados/models"
	"github.com/concurseiro/simulados/session"
)

const defaultMinutes = 60

var errUsage = errors.New("missing or unknown command")

type options struct {
	DatabaseURL  string
	DatabaseType string
	OwnerID      int64
	EnvFile      string
}

func parseOptions(args []string) (options, []string, error) {
	var opts options
	fs := flag.NewFlagSet("simulado", flag.ContinueOnError)
	fs.StringVar(&opts.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&opts.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.Int64Var(&opts.OwnerID, "owner", 0, "Owner id whose lists are used")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Env file loaded before reading the environment")
	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}

	if err := cliparse.LoadEnv(opts.EnvFile); err != nil {
		return options{}, nil, err
	}
	if opts.DatabaseURL == "" {
		opts.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if opts.DatabaseURL == "" {
		return options{}, nil, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if opts.DatabaseType == "" {
		opts.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if opts.DatabaseType == "" {
		opts.DatabaseType = cliparse.DatabaseSQLite
	}
	if opts.OwnerID == 0 {
		if env := os.Getenv("DEFAULT_OWNER_ID"); env != "" {
			id, err := strconv.ParseInt(env, 10, 64)
			if err != nil {
				return options{}, nil, errors.New("invalid DEFAULT_OWNER_ID env variable")
			}
			opts.OwnerID = id
		} else {
			opts.OwnerID = 1
		}
	}
	if opts.OwnerID <= 0 {
		return options{}, nil, errors.New("owner id must be a positive integer")
	}
	return opts, fs.Args(), nil
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	opts, rest, err := parseOptions(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errUsage
	}

	conn, err := db.Open(opts.DatabaseType, opts.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.CreateSchema(conn, opts.DatabaseType); err != nil {
		return err
	}
	store := db.NewStore(conn)

	switch rest[0] {
	case "lists":
		return printLists(ctx, store, opts.OwnerID, out)
	case "take":
		return take(ctx, store, opts.OwnerID, rest[1:], in, out)
	default:
		return fmt.Errorf("%w: %s", errUsage, rest[0])
	}
}

func printLists(ctx context.Context, store *db.Store, ownerID int64, out io.Writer) error {
	lists, err := exercises.NewListService(store).ListAll(ctx, ownerID)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No exercise lists yet.")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Title", "Questions", "Created"})
	for _, l := range lists {
		table.Append([]string{
			strconv.FormatInt(l.ID, 10),
			l.Title,
			strconv.Itoa(len(l.Questions)),
			humanize.Time(l.CreatedAt),
		})
	}
	table.Render()
	return nil
}

func take(ctx context.Context, store *db.Store, ownerID int64, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("take", flag.ContinueOnError)
	minutes := fs.Int("minutes", defaultMinutes, "Session length in minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: take needs a list id", errUsage)
	}
	listID, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || listID <= 0 {
		return fmt.Errorf("invalid list id %q", fs.Arg(0))
	}
	if *minutes <= 0 {
		return errors.New("minutes must be positive")
	}

	list, err := exercises.NewListService(store).GetList(ctx, ownerID, listID)
	if err != nil {
		return err
	}
	if len(list.Questions) == 0 {
		return fmt.Errorf("list %d has no questions", listID)
	}
	questions := make([]models.PublicQuestion, 0, len(list.Questions))
	for _, q := range list.Questions {
		questions = append(questions, q.PublicQuestion)
	}

	color.New(color.FgCyan, color.Bold).Fprintf(out, "\n=== %s ===\n", list.Title)
	fmt.Fprintf(out, "%d questions, %d minutes. Answer with a letter, Enter to skip, q to finish.\n",
		len(questions), *minutes)

	scorer := exercises.NewScorer(store)
	sess := session.New(questions, time.Duration(*minutes)*time.Minute, scorer.Score)
	outcome := runSession(ctx, sess, in, out)
	printOutcome(out, outcome, len(questions))
	return outcome.Err
}

// runSession drives sess from the lines read on in until every question was
// shown, the user quits, input ends or the countdown expires.
func runSession(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) session.Outcome {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess.OnTick(func(remaining time.Duration) {
		if remaining == time.Minute || remaining == 10*time.Second {
			color.New(color.FgYellow).Fprintf(out, "\n%s left\n", remaining)
		}
	})
	go sess.Start(runCtx)

	lines := readLines(runCtx.Done(), in)

questions:
	for i, q := range sess.Questions() {
		printQuestion(out, i+1, len(sess.Questions()), q, sess.Remaining())
		for {
			select {
			case <-sess.Done():
				color.New(color.FgRed).Fprintln(out, "\nTime is up.")
				break questions
			case <-ctx.Done():
				break questions
			case line, ok := <-lines:
				if !ok {
					break questions
				}
				idx, act := parseAnswer(line, len(q.Alternatives))
				switch act {
				case actionQuit:
					break questions
				case actionSkip:
					continue questions
				case actionInvalid:
					fmt.Fprintf(out, "Enter a letter A-%c, Enter to skip or q to finish.\n", 'A'+len(q.Alternatives)-1)
					continue
				}
				if err := sess.Answer(q.ID, idx); err != nil {
					if errors.Is(err, session.ErrFinalized) {
						break questions
					}
					fmt.Fprintln(out, err)
					continue
				}
				continue questions
			}
		}
	}

	return sess.Finish(runCtx)
}

// readLines feeds lines from in until input ends or done is closed. The
// returned channel is closed either way.
func readLines(done <-chan struct{}, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

type action int

const (
	actionAnswer action = iota
	actionSkip
	actionQuit
	actionInvalid
)

// parseAnswer maps a typed line to an alternative index. Letters are
// case-insensitive.
func parseAnswer(line string, alternatives int) (int, action) {
	line = strings.ToUpper(strings.TrimSpace(line))
	switch {
	case line == "":
		return -1, actionSkip
	case line == "Q":
		return -1, actionQuit
	case len(line) == 1 && line[0] >= 'A' && int(line[0]-'A') < alternatives:
		return int(line[0] - 'A'), actionAnswer
	}
	return -1, actionInvalid
}

func printQuestion(out io.Writer, n, total int, q models.PublicQuestion, remaining time.Duration) {
	fmt.Fprintln(out)
	color.New(color.Bold).Fprintf(out, "Question %d/%d", n, total)
	fmt.Fprintf(out, " (%s left)\n%s\n\n", remaining, q.Statement)
	for i, alt := range q.Alternatives {
		fmt.Fprintf(out, "  %c) %s\n", 'A'+i, alt)
	}
	fmt.Fprint(out, "> ")
}

func printOutcome(out io.Writer, outcome session.Outcome, total int) {
	if outcome.Err != nil {
		color.New(color.FgRed).Fprintln(out, "\nScoring failed:", outcome.Err)
		return
	}

	banner := color.New(color.FgRed, color.Bold)
	switch p := outcome.Score.Percentage; {
	case p >= 70:
		banner = color.New(color.FgGreen, color.Bold)
	case p >= 50:
		banner = color.New(color.FgYellow, color.Bold)
	}
	banner.Fprintf(out, "\nScore: %d%%\n", outcome.Score.Percentage)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Finished by", "Answered", "Correct", "Graded"})
	table.Append([]string{
		string(outcome.Reason),
		fmt.Sprintf("%d/%d", outcome.Answered, total),
		humanize.Comma(int64(outcome.Score.CorrectCount)),
		humanize.Comma(int64(outcome.Score.Total)),
	})
	table.Render()
}
