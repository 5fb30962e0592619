package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/someonegg/snailmail"
	"github.com/someonegg/snailmail/exchange"
	"github.com/someonegg/snailmail/internal/config"
	"github.com/someonegg/snailmail/internal/logging"
	"github.com/someonegg/snailmail/notify"
)

func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet("input") {
		cfg.Input = ctx.String("input")
	}
	if ctx.IsSet("output") {
		cfg.Output = ctx.String("output")
	}
	if ctx.IsSet("assignment") {
		cfg.Assignment = ctx.String("assignment")
	}
	if ctx.IsSet("seed") {
		seed := ctx.Uint64("seed")
		cfg.Seed = &seed
	}
	if ctx.IsSet("attempts") {
		cfg.Attempts = ctx.Int("attempts")
	}
	if ctx.IsSet("strict") {
		cfg.Strict = ctx.Bool("strict")
	}
	if ctx.IsSet("contact-by") {
		cfg.ContactBy = ctx.String("contact-by")
	}
	if ctx.IsSet("mail-by") {
		cfg.MailBy = ctx.String("mail-by")
	}
	if ctx.IsSet("log-level") {
		cfg.Log.Level = ctx.String("log-level")
	}
	if ctx.IsSet("env") {
		cfg.Log.Environment = logging.Environment(ctx.String("env"))
	}

	return cfg, cfg.Validate()
}

func doMatch(ctx *cli.Context, cfg config.Config) error {
	logger, _, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}

	res, err := runAttempts(reg, cfg, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%+v\n", res.Summary)

	in := bufio.NewReader(ctx.App.Reader)
	contactBy, err := resolveDate(in, ctx.App.Writer, cfg.ContactBy,
		`When should the user contact you if they don't receive mail? (e.g. "Saturday, July 8, 2023") `)
	if err != nil {
		return err
	}
	mailBy, err := resolveDate(in, ctx.App.Writer, cfg.MailBy,
		`When should mail be sent out by? (e.g. "Saturday, July 8, 2023") `)
	if err != nil {
		return err
	}

	if err := writeEmails(cfg.Output, res, notify.Dates{ContactBy: contactBy, MailBy: mailBy}); err != nil {
		return fmt.Errorf("write emails failed: %w", err)
	}
	logger.Info("emails written", zap.String("path", cfg.Output))

	if cfg.Assignment != "" {
		if err := writeAssignment(cfg.Assignment, res); err != nil {
			return fmt.Errorf("write assignment failed: %w", err)
		}
		logger.Info("assignment written", zap.String("path", cfg.Assignment))
	}

	return nil
}

func loadRegistry(cfg config.Config, logger *zap.Logger) (*snailmail.Registry, error) {
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("load sign-up sheet failed: %w", err)
	}
	defer f.Close()

	reg, err := exchange.LoadCSV(f, cfg.Columns)
	if reg == nil {
		return nil, fmt.Errorf("load sign-up sheet failed: %w", err)
	}
	for _, e := range multierr.Errors(err) {
		logger.Warn("unrecognized option", zap.Error(e))
	}
	if err != nil && cfg.Strict {
		return nil, err
	}

	logger.Info("sign-up sheet loaded", zap.String("path", cfg.Input), zap.Int("participants", reg.Len()))
	return reg, nil
}

// runAttempts runs the exchange until it commits or the attempts are used
// up. A supply deficit is not retried since no seed can fix it.
func runAttempts(reg *snailmail.Registry, cfg config.Config, logger *zap.Logger) (*exchange.Result, error) {
	var err error
	for n := 0; n < cfg.Attempts; n++ {
		seed := rand.Uint64()
		if cfg.Seed != nil {
			seed = *cfg.Seed + uint64(n)
		}

		var res *exchange.Result
		x := &exchange.Exchange{Seed: seed, Logger: logger.With(zap.Int("attempt", n+1))}
		res, err = x.Run(reg)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, snailmail.ErrInfeasible) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no valid assignment after %d attempt(s): %w", cfg.Attempts, err)
}

// resolveDate parses preset, or prompts until a valid date is entered.
func resolveDate(in *bufio.Reader, out io.Writer, preset, prompt string) (time.Time, error) {
	if preset != "" {
		return notify.ParseDate(preset)
	}
	for {
		fmt.Fprint(out, prompt)
		line, err := in.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			d, perr := notify.ParseDate(line)
			if perr == nil {
				return d, nil
			}
			fmt.Fprintln(out, "Error:", perr)
		}
		if err != nil {
			return time.Time{}, fmt.Errorf("read date: %w", err)
		}
	}
}

func writeEmails(file string, res *exchange.Result, dates notify.Dates) error {
	var buf bytes.Buffer
	if err := notify.Render(&buf, res.Registry, res.Assignment, dates); err != nil {
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}

type assignmentFile struct {
	RunID   string           `json:"run_id"`
	Seed    uint64           `json:"seed"`
	Summary exchange.Summary `json:"summary"`
	Senders []senderEntry    `json:"senders"`
}

type senderEntry struct {
	Sender    string   `json:"sender"`
	Receivers []string `json:"receivers"`
}

func writeAssignment(file string, res *exchange.Result) error {
	af := assignmentFile{
		RunID:   res.RunID.String(),
		Seed:    res.Seed,
		Summary: res.Summary,
	}
	for _, p := range res.Registry.Participants() {
		if receivers, ok := res.Assignment[p.Name]; ok {
			af.Senders = append(af.Senders, senderEntry{p.Name, receivers})
		}
	}

	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(af); err != nil {
		return err
	}

	return os.WriteFile(file, buf.Bytes(), 0644)
}
