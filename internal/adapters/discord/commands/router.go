package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"
	"unicode"

	"yasen/internal/adapters/discord/formatting"
	"yasen/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

const reportTimeout = 10 * time.Second

const (
	outcomeOK          = "ok"
	outcomeCheckFailed = "check_failed"
	outcomeBadArgs     = "bad_args"
	outcomeFault       = "fault"
)

type Router struct {
	registry *Registry
	prefixes PrefixResolver
	reporter IncidentReporter
	timeout  time.Duration
}

func NewRouter(registry *Registry, prefixes PrefixResolver, reporter IncidentReporter, timeout time.Duration) *Router {
	slog.Info("Router initialized", "commands", len(registry.Commands()), "timeout", timeout)
	return &Router{
		registry: registry,
		prefixes: prefixes,
		reporter: reporter,
		timeout:  timeout,
	}
}

// Handle dispatches one message. Messages without the guild prefix or with
// an unknown command produce no output.
func (r *Router) Handle(ctx context.Context, s Session, m *discordgo.Message) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	prefix := r.prefixes.Resolve(m.GuildID)
	body, ok := strings.CutPrefix(m.Content, prefix)
	if !ok {
		return
	}

	token, raw := nextToken(body)
	cmd, ok := r.registry.Lookup(token)
	if !ok {
		return
	}

	req := &Request{
		Session: s,
		Message: m,
		Prefix:  prefix,
		Command: cmd,
		RawArgs: strings.TrimLeftFunc(raw, unicode.IsSpace),
	}

	start := time.Now()
	outcome := r.dispatch(ctx, req)
	metrics.CommandsHandled.WithLabelValues(cmd.Name, outcome).Inc()
	metrics.CommandDuration.WithLabelValues(cmd.Name).Observe(time.Since(start).Seconds())

	slog.Debug("Command handled", "command", cmd.Name, "guild_id", m.GuildID, "outcome", outcome, "duration", time.Since(start))
}

func (r *Router) HandleFunc(ctx context.Context) func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		r.Handle(ctx, s, m.Message)
	}
}

func (r *Router) dispatch(ctx context.Context, req *Request) (outcome string) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			r.fault(ctx, req, fmt.Errorf("panic: %v", rec), string(debug.Stack()))
			outcome = outcomeFault
		}
	}()

	for _, check := range req.Command.Checks {
		if err := check(ctx, req); err != nil {
			var failure *CheckFailure
			if errors.As(err, &failure) {
				r.reply(req, Text(failure.Message))
				return outcomeCheckFailed
			}
			r.fault(ctx, req, err, "")
			return outcomeFault
		}
	}

	args, err := ParseArgs(req.Command.Params, req.RawArgs)
	if err != nil {
		var argErr *ArgError
		if errors.As(err, &argErr) {
			r.reply(req, Text(argErr.Message()))
			return outcomeBadArgs
		}
		r.fault(ctx, req, err, "")
		return outcomeFault
	}
	req.Args = args

	responses, err := req.Command.Handler(ctx, req)
	if err != nil {
		r.fault(ctx, req, err, "")
		return outcomeFault
	}

	for _, resp := range responses {
		if err := resp.Send(req.Session, req.ChannelID()); err != nil {
			r.fault(ctx, req, fmt.Errorf("send response: %w", err), "")
			return outcomeFault
		}
	}

	return outcomeOK
}

// fault logs the failure, apologises once in the invoking channel and reports
// the trace to the error log channel.
func (r *Router) fault(ctx context.Context, req *Request, err error, stack string) {
	trace := err.Error()
	if stack != "" {
		trace += "\n\n" + stack
	}

	slog.Error("Command failed",
		"command", req.Command.Name,
		"guild_id", req.GuildID(),
		"channel_id", req.ChannelID(),
		"author_id", req.AuthorID(),
		"error", err,
		"trace", trace,
	)

	r.reply(req, Text(formatting.MsgFault))

	if r.reporter == nil {
		return
	}

	reportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportTimeout)
	defer cancel()

	header := fmt.Sprintf("**ERROR**\nIgnoring exception in command %s", req.Command.Name)
	r.reporter.Report(reportCtx, header, trace)
}

func (r *Router) reply(req *Request, resp Response) {
	if err := resp.Send(req.Session, req.ChannelID()); err != nil {
		slog.Error("Failed to send reply", "command", req.Command.Name, "channel_id", req.ChannelID(), "error", err)
	}
}
